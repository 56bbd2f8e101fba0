package domain

import "fmt"

// Category identifies one of the reminder kinds managed by the scheduler.
type Category string

const (
	CategoryDebtReminder     Category = "debt_reminder"
	CategoryLowStock         Category = "low_stock"
	CategorySalesMilestone   Category = "sales_milestone"
	CategoryCreditorReminder Category = "creditor_reminder"
)

// Categories returns every category in a fixed order.
func Categories() []Category {
	return []Category{
		CategoryDebtReminder,
		CategoryLowStock,
		CategorySalesMilestone,
		CategoryCreditorReminder,
	}
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) String() string {
	return string(c)
}

// IsReactive reports whether the category fires in response to data changes
// (stock deductions, completed sales) rather than at a future scheduled time.
func (c Category) IsReactive() bool {
	return c == CategoryLowStock || c == CategorySalesMilestone
}

// Channel is the notification channel the host platform files alarms under.
func (c Category) Channel() string {
	switch c {
	case CategoryDebtReminder:
		return "debt_reminders"
	case CategoryLowStock:
		return "low_stock"
	case CategorySalesMilestone:
		return "sales_milestones"
	case CategoryCreditorReminder:
		return "creditor_reminders"
	default:
		return ""
	}
}

// IDRange is a closed interval of alarm ids reserved for one category.
type IDRange struct {
	Start int
	End   int
}

func (r IDRange) Capacity() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

func (r IDRange) Contains(id int) bool {
	return id >= r.Start && id <= r.End
}

func (r IDRange) Overlaps(other IDRange) bool {
	return r.Start <= other.End && other.Start <= r.End
}

func (r IDRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}
