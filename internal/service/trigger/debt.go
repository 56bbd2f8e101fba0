package trigger

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

const debtTitle = "📋 Debt Repayment Due Tomorrow"

// DebtReminders produces one reminder per owing debtor at 08:00 local time
// on the day before the repayment date. Reminders whose fire time is not in
// the future are skipped, as are records with an unparseable date.
// The result keeps source order.
func (c *Calculator) DebtReminders(now time.Time, debtors []domain.Debtor) (candidates []domain.Candidate, skipped int) {
	loc := c.cfg.Location
	now = now.In(loc)

	candidates = make([]domain.Candidate, 0, len(debtors))
	for _, debtor := range debtors {
		if debtor.Balance <= 0 || debtor.RepaymentDate == "" {
			continue
		}

		repayDate, err := parseDate(debtor.RepaymentDate, loc)
		if err != nil {
			skipped++
			continue
		}

		y, m, d := repayDate.Date()
		fireAt := time.Date(y, m, d-1, debtReminderHour, 0, 0, 0, loc)
		if !fireAt.After(now) {
			continue
		}

		name := debtor.Name
		if name == "" {
			name = "Debtor"
		}

		candidates = append(candidates, domain.Candidate{
			Identity: name,
			FireAt:   fireAt,
			Title:    debtTitle,
			Body: fmt.Sprintf("%s owes %s — repayment due %s. Follow up today.",
				name, formatCurrency(debtor.Balance), formatDate(repayDate)),
			Recurrence: domain.RecurrenceNone,
		})
	}

	return candidates, skipped
}
