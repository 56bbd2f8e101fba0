package gateway

import (
	"context"
	"slices"
	"sync"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

// MemoryGateway keeps pending alarms in process. It backs local runs and
// tests where no device bridge is available.
type MemoryGateway struct {
	mu      sync.RWMutex
	granted bool
	pending map[int]domain.Alarm
}

var _ domain.Gateway = (*MemoryGateway)(nil)

func NewMemoryGateway(granted bool) *MemoryGateway {
	return &MemoryGateway{
		granted: granted,
		pending: make(map[int]domain.Alarm),
	}
}

func (g *MemoryGateway) SetPermission(granted bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.granted = granted
}

func (g *MemoryGateway) RequestPermission(_ context.Context) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.granted, nil
}

// Schedule replaces any pending alarm that shares an id.
func (g *MemoryGateway) Schedule(_ context.Context, alarms []domain.Alarm) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.granted {
		return domain.ErrPermissionDenied
	}
	for _, a := range alarms {
		g.pending[a.ID] = a
	}
	return nil
}

func (g *MemoryGateway) ListPending(_ context.Context) ([]domain.PendingAlarm, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make([]int, 0, len(g.pending))
	for id := range g.pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]domain.PendingAlarm, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.PendingAlarm{ID: id})
	}
	return out, nil
}

// Cancel ignores ids that are not pending.
func (g *MemoryGateway) Cancel(_ context.Context, ids []int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, id := range ids {
		delete(g.pending, id)
	}
	return nil
}

// Alarms returns the pending alarms ordered by id.
func (g *MemoryGateway) Alarms() []domain.Alarm {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]domain.Alarm, 0, len(g.pending))
	for _, a := range g.pending {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b domain.Alarm) int { return a.ID - b.ID })
	return out
}

// Reset drops every pending alarm.
func (g *MemoryGateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = make(map[int]domain.Alarm)
}
