package trigger

import (
	"fmt"
	"math"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

const lowStockTitle = "⚠️ Low Stock Alert"

// LowStockAlerts returns an immediate alert for every good whose stock is in
// (0, threshold] and whose id is not in notified. At most the configured
// batch limit is returned; the rest wait for the next check.
func (c *Calculator) LowStockAlerts(now time.Time, goods []domain.Good, notified map[string]struct{}) (candidates []domain.Candidate, skipped int) {
	fireAt := now.In(c.cfg.Location).Add(immediateDelay)

	candidates = make([]domain.Candidate, 0)
	for _, good := range goods {
		if good.ID == "" {
			skipped++
			continue
		}
		if good.StockQuantity <= 0 || good.StockQuantity > c.cfg.LowStockThreshold {
			continue
		}
		if _, seen := notified[good.ID]; seen {
			continue
		}
		if len(candidates) == c.cfg.LowStockBatchLimit {
			break
		}

		units := int(math.Round(good.StockQuantity))
		candidates = append(candidates, domain.Candidate{
			Identity: good.ID,
			FireAt:   fireAt,
			Title:    lowStockTitle,
			Body: fmt.Sprintf("%s has only %d %s left in stock. Consider reordering.",
				good.Name, units, pluralUnits(units)),
			Recurrence: domain.RecurrenceNone,
		})
	}

	return candidates, skipped
}
