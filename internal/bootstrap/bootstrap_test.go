package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/config"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/infra/factstore"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/infra/gateway"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/reminder"
)

func testConfig(backend config.StoreBackend, path string) *config.Config {
	return &config.Config{
		Store:   &config.StoreConfig{Backend: backend, SQLitePath: path},
		Redis:   &config.RedisConfig{Addr: "localhost:6379"},
		Gateway: &config.GatewayConfig{Permission: "granted", Timeout: time.Second},
		Scheduler: &config.SchedulerConfig{
			Location:           time.UTC,
			MilestoneStep:      500,
			DedupRetentionDays: 7,
		},
	}
}

func TestBuild_SQLiteEndToEnd(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.StoreBackendSQLite, filepath.Join(t.TempDir(), "reminder.db"))

	c, err := Build(ctx, cfg, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Facts.Seed(ctx, factstore.Snapshot{
		Creditors: []domain.Creditor{{Name: "Ema", Balance: 12}},
	}))

	result := c.Manager.Enable(ctx, domain.CategoryCreditorReminder)
	assert.Equal(t, reminder.OutcomeScheduled, result.Outcome)
	assert.Equal(t, []int{9001, 9002, 9003}, result.Scheduled)
	assert.IsType(t, &gateway.MemoryGateway{}, c.Gateway)
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	_, err := OpenStore(context.Background(), testConfig("etcd", ""))
	assert.ErrorIs(t, err, config.ErrInvalidStoreBackend)
}

func TestNewGateway(t *testing.T) {
	assert.IsType(t, &gateway.MemoryGateway{}, NewGateway(&config.GatewayConfig{Permission: "granted"}))
	assert.IsType(t, &gateway.HTTPGateway{}, NewGateway(&config.GatewayConfig{URL: "http://bridge:7070"}))
}
