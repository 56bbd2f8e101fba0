package trigger

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

func TestLowStockAlerts_Range(t *testing.T) {
	calc := newTestCalculator()
	now := time.Date(2024, 3, 9, 10, 0, 0, 0, testLoc)

	goods := []domain.Good{
		{ID: "1", Name: "Rice", StockQuantity: 0},
		{ID: "2", Name: "Sugar", StockQuantity: 0.4},
		{ID: "3", Name: "Flour", StockQuantity: 3},
		{ID: "4", Name: "Oil", StockQuantity: 5},
		{ID: "5", Name: "Salt", StockQuantity: 5.5},
		{ID: "6", Name: "Tea", StockQuantity: 1},
	}

	candidates, skipped := calc.LowStockAlerts(now, goods, nil)

	require.Len(t, candidates, 4)
	assert.Zero(t, skipped)
	assert.Equal(t, []string{"2", "3", "4", "6"}, identities(candidates))
	assert.Equal(t, "Flour has only 3 units left in stock. Consider reordering.", candidates[1].Body)
	assert.Equal(t, "Tea has only 1 unit left in stock. Consider reordering.", candidates[3].Body)
	assert.True(t, candidates[0].FireAt.Equal(now.Add(time.Second)))
}

func TestLowStockAlerts_SkipsAlreadyNotified(t *testing.T) {
	calc := newTestCalculator()
	now := time.Date(2024, 3, 9, 10, 0, 0, 0, testLoc)

	goods := []domain.Good{
		{ID: "a", Name: "A", StockQuantity: 3},
		{ID: "b", Name: "B", StockQuantity: 2},
	}

	candidates, _ := calc.LowStockAlerts(now, goods, map[string]struct{}{"a": {}})

	require.Len(t, candidates, 1)
	assert.Equal(t, "b", candidates[0].Identity)
}

func TestLowStockAlerts_BatchLimit(t *testing.T) {
	calc := newTestCalculator()
	now := time.Date(2024, 3, 9, 10, 0, 0, 0, testLoc)

	goods := make([]domain.Good, 0, 15)
	for i := 0; i < 15; i++ {
		goods = append(goods, domain.Good{ID: fmt.Sprintf("g%d", i), Name: "G", StockQuantity: 2})
	}

	candidates, _ := calc.LowStockAlerts(now, goods, nil)

	require.Len(t, candidates, DefaultLowStockBatchLimit)
	assert.Equal(t, "g0", candidates[0].Identity)
	assert.Equal(t, "g9", candidates[9].Identity)
}

func TestLowStockAlerts_MissingIDIsSkipped(t *testing.T) {
	calc := newTestCalculator()

	candidates, skipped := calc.LowStockAlerts(time.Now(), []domain.Good{{Name: "nameless", StockQuantity: 1}}, nil)

	assert.Empty(t, candidates)
	assert.Equal(t, 1, skipped)
}

func identities(candidates []domain.Candidate) []string {
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.Identity)
	}
	return ids
}
