package trigger

import (
	"fmt"
	"math"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

const milestoneTitle = "🎉 Sales Milestone!"

type MilestoneResult struct {
	// Total is the sum of today's non-voided sales.
	Total float64
	// Milestone is the highest step boundary at or below Total.
	Milestone int
	// Candidate is nil unless Milestone exceeds the stored watermark.
	Candidate *domain.Candidate
	Skipped   int
}

// SalesMilestone sums today's completed sales and returns a candidate when
// the total has crossed a step boundary above watermark.
func (c *Calculator) SalesMilestone(now time.Time, sales []domain.Sale, watermark int) MilestoneResult {
	loc := c.cfg.Location
	now = now.In(loc)
	today := now.Format(dayLayout)

	var result MilestoneResult
	for _, sale := range sales {
		if sale.IsVoided() {
			continue
		}
		saleTime, err := parseDate(sale.Date, loc)
		if err != nil {
			result.Skipped++
			continue
		}
		if saleTime.Format(dayLayout) != today {
			continue
		}
		result.Total += sale.Total
	}

	step := c.cfg.MilestoneStep
	result.Milestone = int(math.Floor(result.Total/float64(step))) * step

	if result.Milestone > watermark && result.Milestone > 0 {
		result.Candidate = &domain.Candidate{
			Identity: fmt.Sprintf("%s:%d", today, result.Milestone),
			FireAt:   now.Add(immediateDelay),
			Title:    milestoneTitle,
			Body: fmt.Sprintf("Daily sales just passed %s! Total so far: %s.",
				formatCurrency(float64(result.Milestone)), formatCurrency(result.Total)),
			Recurrence: domain.RecurrenceNone,
		}
	}

	return result
}
