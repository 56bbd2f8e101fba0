package trigger

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

func TestCreditorReminders_ThreeDailySlots(t *testing.T) {
	calc := newTestCalculator()
	now := time.Date(2024, 3, 9, 10, 0, 0, 0, testLoc)

	candidates, skipped := calc.CreditorReminders(now, []domain.Creditor{
		{Name: "Island Wholesale", Balance: 250},
	}, 99)

	require.Len(t, candidates, 3)
	assert.Zero(t, skipped)

	want := []time.Time{
		time.Date(2024, 3, 10, 8, 30, 0, 0, testLoc),
		time.Date(2024, 3, 9, 12, 0, 0, 0, testLoc),
		time.Date(2024, 3, 9, 16, 30, 0, 0, testLoc),
	}
	for i, c := range candidates {
		assert.True(t, c.FireAt.Equal(want[i]), "slot %d fire time = %v, want %v", i, c.FireAt, want[i])
		assert.Equal(t, domain.RecurrenceDaily, c.Recurrence)
	}
	assert.Equal(t,
		"Kadaele Services still owes Island Wholesale the amount of $250.00 for purchasing cargoes on credit.",
		candidates[0].Body)
}

func TestCreditorReminders_AllSlotsPassed(t *testing.T) {
	calc := newTestCalculator()
	now := time.Date(2024, 3, 9, 16, 30, 0, 0, testLoc)

	candidates, _ := calc.CreditorReminders(now, []domain.Creditor{{Name: "c", Balance: 1}}, 99)

	require.Len(t, candidates, 3)
	for _, c := range candidates {
		assert.Equal(t, 10, c.FireAt.Day(), "expected every slot tomorrow, got %v", c.FireAt)
	}
}

func TestCreditorReminders_PurchaseLabel(t *testing.T) {
	calc := newTestCalculator()
	now := time.Date(2024, 3, 9, 10, 0, 0, 0, testLoc)

	tests := []struct {
		name         string
		lastPurchase string
		wantSuffix   string
		wantSkipped  int
	}{
		{"no purchase date", "", "on credit.", 0},
		{"purchased yesterday", "2024-03-08", "on credit yesterday.", 0},
		{"purchased today", "2024-03-09T08:00:00+11:00", "on credit yesterday.", 0},
		{"purchased last week", "2024-03-02", "on credit on 3/2/2024.", 0},
		{"garbage date", "soon", "on credit.", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, skipped := calc.CreditorReminders(now, []domain.Creditor{
				{Name: "c", Balance: 1, LastPurchase: tt.lastPurchase},
			}, 99)

			require.Len(t, candidates, 3)
			assert.Contains(t, candidates[0].Body, tt.wantSuffix)
			assert.Equal(t, tt.wantSkipped, skipped)
		})
	}
}

func TestCreditorReminders_OnlyOwingAndBounded(t *testing.T) {
	calc := newTestCalculator()
	now := time.Date(2024, 3, 9, 10, 0, 0, 0, testLoc)

	creditors := []domain.Creditor{{Name: "paid", Balance: 0}}
	for i := 0; i < 12; i++ {
		creditors = append(creditors, domain.Creditor{Name: fmt.Sprintf("c%d", i), Balance: 1})
	}

	candidates, _ := calc.CreditorReminders(now, creditors, 99)
	assert.Len(t, candidates, DefaultCreditorMaxCount*3)
	assert.Equal(t, "c0@08:30", candidates[0].Identity)

	small, _ := calc.CreditorReminders(now, creditors, 9)
	assert.Len(t, small, 9)
}

func TestCreditorReminders_NoneOwing(t *testing.T) {
	calc := newTestCalculator()

	candidates, _ := calc.CreditorReminders(time.Now(), []domain.Creditor{{Name: "x", Balance: 0}}, 99)
	assert.Empty(t, candidates)
}
