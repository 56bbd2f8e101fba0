package reminder

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

type computeFunc func(ctx context.Context, now time.Time) (candidates []domain.Candidate, skipped int, err error)

func (m *Manager) passFor(category domain.Category, goods []domain.Good) passFunc {
	switch category {
	case domain.CategoryDebtReminder:
		return m.replacePass(category, m.computeDebt)
	case domain.CategoryCreditorReminder:
		return m.replacePass(category, m.computeCreditor)
	case domain.CategoryLowStock:
		return func(ctx context.Context, r *PassResult) error {
			return m.lowStockPass(ctx, r, goods)
		}
	case domain.CategorySalesMilestone:
		return m.milestonePass
	default:
		return nil
	}
}

func (m *Manager) computeDebt(ctx context.Context, now time.Time) ([]domain.Candidate, int, error) {
	debtors, err := m.facts.Debtors(ctx)
	if err != nil {
		return nil, 0, err
	}
	candidates, skipped := m.calculator.DebtReminders(now, debtors)
	return candidates, skipped, nil
}

func (m *Manager) computeCreditor(ctx context.Context, now time.Time) ([]domain.Candidate, int, error) {
	creditors, err := m.facts.Creditors(ctx)
	if err != nil {
		return nil, 0, err
	}
	capacity := m.allocator.Capacity(domain.CategoryCreditorReminder)
	candidates, skipped := m.calculator.CreditorReminders(now, creditors, capacity)
	return candidates, skipped, nil
}

// replacePass cancels every pending id in the category's range, then
// submits the freshly computed batch. Candidates that no longer exist lose
// their alarm. A pass that leaves nothing to submit ends as no_change.
func (m *Manager) replacePass(category domain.Category, compute computeFunc) passFunc {
	return func(ctx context.Context, r *PassResult) error {
		m.setState(ctx, category, StateCancelling)
		cancelled, err := m.cancelInRange(ctx, category)
		if err != nil {
			return err
		}
		r.Cancelled = cancelled

		m.setState(ctx, category, StateRecomputing)
		candidates, skipped, err := compute(ctx, m.now())
		r.Skipped = skipped
		if err != nil {
			return failure(OutcomeFactSourceFailure, err)
		}

		alarms, dropped := m.allocator.Assign(category, 0, candidates)
		r.Dropped = dropped
		if dropped > 0 {
			slog.WarnContext(ctx, "id range full, dropping candidates",
				slog.String("category", category.String()),
				slog.Int("dropped_count", dropped),
			)
		}

		m.setState(ctx, category, StateSubmitting)
		if err := m.submit(ctx, alarms); err != nil {
			return err
		}
		r.Scheduled = domain.AlarmIDs(alarms)
		if len(alarms) == 0 {
			r.Outcome = OutcomeNoChange
			return nil
		}
		r.Outcome = OutcomeScheduled
		return nil
	}
}

func (m *Manager) lowStockPass(ctx context.Context, r *PassResult, goods []domain.Good) error {
	category := domain.CategoryLowStock
	now := m.now()
	day := m.calculator.DayKey(now)

	m.setState(ctx, category, StateRecomputing)
	notified, err := m.dedupStore.Markers(ctx, category, day)
	if err != nil {
		return failure(OutcomeDedupStoreFailure, err)
	}
	if goods == nil {
		goods, err = m.facts.Goods(ctx)
		if err != nil {
			return failure(OutcomeFactSourceFailure, err)
		}
	}

	candidates, skipped := m.calculator.LowStockAlerts(now, goods, notified)
	r.Skipped = skipped
	if len(candidates) == 0 {
		r.Outcome = OutcomeNoChange
		return nil
	}

	alarms, dropped := m.allocator.Assign(category, len(notified), candidates)
	r.Dropped = dropped

	identities := make([]string, 0, len(alarms))
	for _, c := range candidates[:len(alarms)] {
		identities = append(identities, c.Identity)
	}

	return m.reusePass(ctx, r, alarms, func(ctx context.Context) error {
		return m.dedupStore.AddMarkers(ctx, category, day, identities)
	})
}

func (m *Manager) milestonePass(ctx context.Context, r *PassResult) error {
	category := domain.CategorySalesMilestone
	now := m.now()
	day := m.calculator.DayKey(now)

	m.setState(ctx, category, StateRecomputing)
	watermark, err := m.dedupStore.Watermark(ctx, day)
	if err != nil {
		return failure(OutcomeDedupStoreFailure, err)
	}
	sales, err := m.facts.Sales(ctx)
	if err != nil {
		return failure(OutcomeFactSourceFailure, err)
	}

	result := m.calculator.SalesMilestone(now, sales, watermark)
	r.Skipped = result.Skipped
	if result.Candidate == nil {
		slog.DebugContext(ctx, "no new sales milestone",
			slog.Float64("total", result.Total),
			slog.Int("milestone", result.Milestone),
			slog.Int("watermark", watermark),
		)
		r.Outcome = OutcomeNoChange
		return nil
	}

	id := m.allocator.MilestoneID(result.Milestone, m.calculator.MilestoneStep())
	alarm := domain.NewAlarm(id, category, *result.Candidate)

	return m.reusePass(ctx, r, []domain.Alarm{alarm}, func(ctx context.Context) error {
		_, err := m.dedupStore.RaiseWatermark(ctx, day, result.Milestone)
		return err
	})
}

// reusePass cancels only the pending ids the new alarms are about to take
// over, submits, then records the dedup state. A failed submit leaves the
// dedup state untouched so the next trigger retries.
func (m *Manager) reusePass(ctx context.Context, r *PassResult, alarms []domain.Alarm, record func(ctx context.Context) error) error {
	category := r.Category
	ids := domain.AlarmIDs(alarms)

	m.setState(ctx, category, StateCancelling)
	pending, err := m.gateway.ListPending(ctx)
	if err != nil {
		return gatewayFailure("list pending", err)
	}
	reused := make([]int, 0)
	for _, id := range m.allocator.InRange(category, pending) {
		if slices.Contains(ids, id) {
			reused = append(reused, id)
		}
	}
	if err := m.cancel(ctx, reused); err != nil {
		return err
	}
	r.Cancelled = reused

	m.setState(ctx, category, StateSubmitting)
	if err := m.submit(ctx, alarms); err != nil {
		return err
	}
	r.Scheduled = ids
	if err := record(ctx); err != nil {
		return failure(OutcomeDedupStoreFailure, err)
	}
	r.Outcome = OutcomeScheduled
	return nil
}
