package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/observability/logging"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/observability/tracing"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/dedup"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/idalloc"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/trigger"
)

// Manager runs scheduling passes for the four reminder categories. Passes
// for one category are serialized; different categories run independently.
type Manager struct {
	gateway         domain.Gateway
	facts           domain.FactSource
	prefs           domain.PreferenceSource
	dedupStore      *dedup.Store
	allocator       *idalloc.Allocator
	calculator      *trigger.Calculator
	reminderMetrics *metrics.ReminderMetrics
	recorder        domain.PassRecorder
	now             func() time.Time

	locks  map[domain.Category]*sync.Mutex
	states map[domain.Category]*atomic.Int32
}

func NewManager(
	gateway domain.Gateway,
	facts domain.FactSource,
	prefs domain.PreferenceSource,
	dedupStore *dedup.Store,
	allocator *idalloc.Allocator,
	calculator *trigger.Calculator,
	reminderMetrics *metrics.ReminderMetrics,
	recorder domain.PassRecorder,
	now func() time.Time,
) *Manager {
	if now == nil {
		now = time.Now
	}

	m := &Manager{
		gateway:         gateway,
		facts:           facts,
		prefs:           prefs,
		dedupStore:      dedupStore,
		allocator:       allocator,
		calculator:      calculator,
		reminderMetrics: reminderMetrics,
		recorder:        recorder,
		now:             now,
		locks:           make(map[domain.Category]*sync.Mutex),
		states:          make(map[domain.Category]*atomic.Int32),
	}
	for _, c := range domain.Categories() {
		m.locks[c] = &sync.Mutex{}
		m.states[c] = &atomic.Int32{}
	}
	return m
}

// State reports the pass state of a category.
func (m *Manager) State(category domain.Category) State {
	s, ok := m.states[category]
	if !ok {
		return StateIdle
	}
	return State(s.Load())
}

// Enable runs a full pass for a category the user just switched on. The
// stored preference flag is not consulted.
func (m *Manager) Enable(ctx context.Context, category domain.Category) PassResult {
	return m.run(ctx, category, TriggerEnable, false, m.passFor(category, nil))
}

// Disable cancels every pending alarm in the category's range and submits
// nothing.
func (m *Manager) Disable(ctx context.Context, category domain.Category) PassResult {
	return m.run(ctx, category, TriggerDisable, false, func(ctx context.Context, r *PassResult) error {
		m.setState(ctx, category, StateCancelling)
		cancelled, err := m.cancelInRange(ctx, category)
		r.Cancelled = cancelled
		if err != nil {
			return err
		}
		r.Outcome = OutcomeDisabled
		return nil
	})
}

// Refresh recomputes a category if its preference flag is on.
func (m *Manager) Refresh(ctx context.Context, category domain.Category) PassResult {
	return m.run(ctx, category, TriggerRefresh, true, m.passFor(category, nil))
}

// OnCreditSale reacts to a new or edited credit sale.
func (m *Manager) OnCreditSale(ctx context.Context) PassResult {
	return m.run(ctx, domain.CategoryDebtReminder, TriggerCreditSale, true,
		m.passFor(domain.CategoryDebtReminder, nil))
}

// OnStockDeducted checks the given post-deduction goods snapshot for low
// stock. A nil snapshot reads goods from the fact source.
func (m *Manager) OnStockDeducted(ctx context.Context, goods []domain.Good) PassResult {
	return m.run(ctx, domain.CategoryLowStock, TriggerStockDeducted, true,
		m.passFor(domain.CategoryLowStock, goods))
}

func (m *Manager) OnSaleCompleted(ctx context.Context) PassResult {
	return m.run(ctx, domain.CategorySalesMilestone, TriggerSaleCompleted, true,
		m.passFor(domain.CategorySalesMilestone, nil))
}

func (m *Manager) OnCreditorChanged(ctx context.Context) PassResult {
	return m.run(ctx, domain.CategoryCreditorReminder, TriggerCreditorChanged, true,
		m.passFor(domain.CategoryCreditorReminder, nil))
}

// OnSettingsChanged enables or disables every category whose flag flipped.
func (m *Manager) OnSettingsChanged(ctx context.Context, prev, next domain.Preferences) []PassResult {
	results := make([]PassResult, 0)
	for _, c := range domain.Categories() {
		was, is := prev.Enabled(c), next.Enabled(c)
		switch {
		case !was && is:
			results = append(results, m.Enable(ctx, c))
		case was && !is:
			results = append(results, m.Disable(ctx, c))
		}
	}
	return results
}

// Pending lists the gateway's pending alarm ids grouped by owning category.
func (m *Manager) Pending(ctx context.Context) (map[domain.Category][]int, error) {
	pending, err := m.gateway.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}

	out := make(map[domain.Category][]int, len(domain.Categories()))
	for _, c := range domain.Categories() {
		out[c] = m.allocator.InRange(c, pending)
	}
	return out, nil
}

type passFunc func(ctx context.Context, r *PassResult) error

// passError tags a failure with the outcome it maps to.
type passError struct {
	outcome Outcome
	err     error
}

func (e *passError) Error() string { return e.err.Error() }
func (e *passError) Unwrap() error { return e.err }

func failure(outcome Outcome, err error) error {
	return &passError{outcome: outcome, err: err}
}

func (m *Manager) run(ctx context.Context, category domain.Category, trig Trigger, gated bool, body passFunc) PassResult {
	result := PassResult{
		PassID:    uuid.NewString(),
		Category:  category,
		Trigger:   trig,
		Cancelled: []int{},
		Scheduled: []int{},
	}

	lock, ok := m.locks[category]
	if !ok || body == nil {
		result.Outcome = OutcomeUnsupportedCategory
		result.Error = fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category).Error()
		return result
	}
	lock.Lock()
	defer lock.Unlock()

	ctx = logging.WithPassID(ctx, result.PassID)
	ctx, span := tracing.StartPassSpan(ctx, category.String(), string(trig), result.PassID)
	defer span.End()

	startedAt := m.now()
	started := time.Now()

	err := m.execute(ctx, category, gated, &result, body)
	m.setState(ctx, category, StateIdle)
	duration := time.Since(started)

	if err != nil {
		result.Error = err.Error()
		var pe *passError
		if errors.As(err, &pe) {
			result.Outcome = pe.outcome
		} else if result.Outcome == "" {
			result.Outcome = OutcomeGatewayFailure
		}
		slog.WarnContext(ctx, "reminder pass failed",
			slog.String("category", category.String()),
			slog.String("trigger", string(trig)),
			slog.String("outcome", string(result.Outcome)),
			slog.String("error", err.Error()),
		)
	} else {
		slog.InfoContext(ctx, "reminder pass completed",
			slog.String("category", category.String()),
			slog.String("trigger", string(trig)),
			slog.String("outcome", string(result.Outcome)),
			slog.Int("cancelled_count", len(result.Cancelled)),
			slog.Int("scheduled_count", len(result.Scheduled)),
			slog.Int("dropped_count", result.Dropped),
			slog.Int("skipped_count", result.Skipped),
			slog.Duration("duration", duration),
		)
	}

	tracing.RecordPassResult(span, string(result.Outcome),
		len(result.Cancelled), len(result.Scheduled), result.Dropped, result.Skipped, err)

	if m.reminderMetrics != nil {
		m.reminderMetrics.RecordPass(ctx, category.String(), string(trig), string(result.Outcome), duration)
		m.reminderMetrics.RecordAlarms(ctx, category.String(), len(result.Scheduled), len(result.Cancelled), result.Dropped)
		m.reminderMetrics.RecordSkipped(ctx, category.String(), result.Skipped)
	}

	if m.recorder != nil {
		record := result.toRecord()
		record.StartedAt = startedAt
		record.Duration = duration
		if err := m.recorder.RecordPass(ctx, record); err != nil {
			slog.WarnContext(ctx, "failed to record pass result",
				slog.String("error", err.Error()),
			)
		}
	}

	return result
}

func (m *Manager) execute(ctx context.Context, category domain.Category, gated bool, r *PassResult, body passFunc) error {
	if gated {
		prefs, err := m.prefs.Preferences(ctx)
		if err != nil {
			return failure(OutcomeFactSourceFailure, fmt.Errorf("read preferences: %w", err))
		}
		if !prefs.Enabled(category) {
			r.Outcome = OutcomePreferenceOff
			return nil
		}
	}

	granted, err := m.gateway.RequestPermission(ctx)
	if err != nil {
		return failure(OutcomeGatewayFailure, fmt.Errorf("request permission: %w", err))
	}
	if !granted {
		slog.DebugContext(ctx, "notification permission not granted, skipping pass",
			slog.String("category", category.String()),
		)
		r.Outcome = OutcomePermissionDenied
		return nil
	}

	return body(ctx, r)
}

func (m *Manager) setState(ctx context.Context, category domain.Category, s State) {
	prev := State(m.states[category].Swap(int32(s)))
	if prev == s {
		return
	}
	slog.DebugContext(ctx, "pass state changed",
		slog.String("category", category.String()),
		slog.String("from", prev.String()),
		slog.String("to", s.String()),
	)
}

func (m *Manager) cancelInRange(ctx context.Context, category domain.Category) ([]int, error) {
	pending, err := m.gateway.ListPending(ctx)
	if err != nil {
		return nil, gatewayFailure("list pending", err)
	}
	ids := m.allocator.InRange(category, pending)
	if err := m.cancel(ctx, ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (m *Manager) cancel(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	if err := m.gateway.Cancel(ctx, ids); err != nil {
		return gatewayFailure("cancel", err)
	}
	return nil
}

func (m *Manager) submit(ctx context.Context, alarms []domain.Alarm) error {
	if len(alarms) == 0 {
		return nil
	}
	if err := m.gateway.Schedule(ctx, alarms); err != nil {
		return gatewayFailure("schedule", err)
	}
	return nil
}

func gatewayFailure(op string, err error) error {
	outcome := OutcomeGatewayFailure
	if errors.Is(err, domain.ErrPermissionDenied) {
		outcome = OutcomePermissionDenied
	}
	return failure(outcome, fmt.Errorf("%s: %w", op, err))
}
