package idalloc

import (
	"fmt"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

// Ranges reserves a closed id interval per category inside the platform's
// global alarm id space. The intervals must not intersect.
var Ranges = map[domain.Category]domain.IDRange{
	domain.CategorySalesMilestone:   {Start: 6001, End: 6009},
	domain.CategoryLowStock:         {Start: 7001, End: 7099},
	domain.CategoryDebtReminder:     {Start: 8001, End: 8099},
	domain.CategoryCreditorReminder: {Start: 9001, End: 9099},
}

type Allocator struct {
	ranges map[domain.Category]domain.IDRange
}

func NewAllocator() *Allocator {
	return NewAllocatorWithRanges(Ranges)
}

func NewAllocatorWithRanges(ranges map[domain.Category]domain.IDRange) *Allocator {
	copied := make(map[domain.Category]domain.IDRange, len(ranges))
	for c, r := range ranges {
		copied[c] = r
	}
	return &Allocator{ranges: copied}
}

// Validate checks that every category has a non-empty range and that no two
// ranges intersect.
func (a *Allocator) Validate() error {
	categories := domain.Categories()
	for i, c := range categories {
		r, ok := a.ranges[c]
		if !ok || r.Capacity() == 0 {
			return fmt.Errorf("no id range for category %s", c)
		}
		for _, other := range categories[i+1:] {
			if r.Overlaps(a.ranges[other]) {
				return fmt.Errorf("id ranges overlap: %s %s and %s %s", c, r, other, a.ranges[other])
			}
		}
	}
	return nil
}

func (a *Allocator) RangeFor(c domain.Category) domain.IDRange {
	return a.ranges[c]
}

func (a *Allocator) Capacity(c domain.Category) int {
	return a.ranges[c].Capacity()
}

// Allocate maps the k-th candidate of a category onto its ring of ids.
// The same (category, k) always yields the same id.
func (a *Allocator) Allocate(c domain.Category, k int) int {
	r := a.ranges[c]
	capacity := r.Capacity()
	if capacity == 0 {
		return 0
	}
	slot := k % capacity
	if slot < 0 {
		slot += capacity
	}
	return r.Start + slot
}

// MilestoneID folds the watermark into the index so the same milestone
// always lands on the same id.
func (a *Allocator) MilestoneID(watermark, step int) int {
	if step <= 0 {
		return a.Allocate(domain.CategorySalesMilestone, 0)
	}
	return a.Allocate(domain.CategorySalesMilestone, watermark/step)
}

// Assign truncates candidates to the category capacity, keeping the first N
// in input order, and allocates ids starting at offset. It returns the
// number of dropped candidates.
func (a *Allocator) Assign(c domain.Category, offset int, candidates []domain.Candidate) ([]domain.Alarm, int) {
	kept, dropped := Truncate(candidates, a.Capacity(c))

	alarms := make([]domain.Alarm, 0, len(kept))
	for i, candidate := range kept {
		alarms = append(alarms, domain.NewAlarm(a.Allocate(c, offset+i), c, candidate))
	}
	return alarms, dropped
}

// InRange filters pending alarms down to the ids owned by a category.
func (a *Allocator) InRange(c domain.Category, pending []domain.PendingAlarm) []int {
	r := a.ranges[c]
	ids := make([]int, 0, len(pending))
	for _, p := range pending {
		if r.Contains(p.ID) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// Truncate keeps at most limit candidates by stable input order.
func Truncate(candidates []domain.Candidate, limit int) ([]domain.Candidate, int) {
	if limit < 0 {
		limit = 0
	}
	if len(candidates) <= limit {
		return candidates, 0
	}
	return candidates[:limit], len(candidates) - limit
}
