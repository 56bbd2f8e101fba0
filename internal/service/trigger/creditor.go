package trigger

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

const creditorTitle = "💳 Creditor Payment Reminder"

// CreditorReminders produces three daily-repeating reminders per owing
// creditor, bounded to the configured creditor count. A time of day that has
// already passed starts tomorrow.
func (c *Calculator) CreditorReminders(now time.Time, creditors []domain.Creditor, capacity int) (candidates []domain.Candidate, skipped int) {
	loc := c.cfg.Location
	now = now.In(loc)

	maxCreditors := c.cfg.CreditorMaxCount
	if perSlot := capacity / len(creditorFireTimes); capacity > 0 && perSlot < maxCreditors {
		maxCreditors = perSlot
	}

	owing := OwingCreditors(creditors)
	if len(owing) > maxCreditors {
		owing = owing[:maxCreditors]
	}

	candidates = make([]domain.Candidate, 0, len(owing)*len(creditorFireTimes))
	for _, creditor := range owing {
		name := creditor.Name
		if name == "" {
			name = "Creditor"
		}

		label, err := c.purchaseLabel(now, creditor.LastPurchase)
		if err != nil {
			skipped++
		}

		body := fmt.Sprintf("%s still owes %s the amount of %s for purchasing cargoes on credit%s.",
			c.cfg.BusinessName, name, formatCurrency(creditor.Balance), label)

		for _, at := range creditorFireTimes {
			fireAt := time.Date(now.Year(), now.Month(), now.Day(), at.hour, at.minute, 0, 0, loc)
			if !fireAt.After(now) {
				fireAt = fireAt.AddDate(0, 0, 1)
			}

			candidates = append(candidates, domain.Candidate{
				Identity:   fmt.Sprintf("%s@%02d:%02d", name, at.hour, at.minute),
				FireAt:     fireAt,
				Title:      creditorTitle,
				Body:       body,
				Recurrence: domain.RecurrenceDaily,
			})
		}
	}

	return candidates, skipped
}

// OwingCreditors keeps creditors with a positive balance in source order.
func OwingCreditors(creditors []domain.Creditor) []domain.Creditor {
	owing := make([]domain.Creditor, 0, len(creditors))
	for _, creditor := range creditors {
		if creditor.Balance > 0 {
			owing = append(owing, creditor)
		}
	}
	return owing
}

// purchaseLabel returns " yesterday", " on <date>" or "" when no usable
// purchase date is known.
func (c *Calculator) purchaseLabel(now time.Time, lastPurchase string) (string, error) {
	if lastPurchase == "" {
		return "", nil
	}
	purchased, err := parseDate(lastPurchase, c.cfg.Location)
	if err != nil {
		return "", err
	}
	diffDays := int(now.Sub(purchased).Hours() / 24)
	if now.Before(purchased) || diffDays <= 1 {
		return " yesterday", nil
	}
	return " on " + formatDate(purchased), nil
}
