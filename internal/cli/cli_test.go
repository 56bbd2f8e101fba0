package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/bootstrap"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/bridgestub"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/config"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/infra/gateway"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/reminder"
)

const fixtureYAML = `
settings:
  debt_reminder: true
  creditor_reminder: false
debtors:
  - name: Alice
    balance: 120
    repayment_date: "2099-03-10"
  - name: Bob
    balance: 0
    repayment_date: "2099-03-11"
creditors:
  - name: Mill Co
    balance: 40
goods:
  - id: g1
    name: Rice
    stock_quantity: 2
sales:
  - date: "2099-03-01T10:00:00Z"
    total: 250
`

// sqliteFactory builds fresh components per command against one database
// file and one bridge stub so state persists between invocations like the
// real binary.
func sqliteFactory(t *testing.T) Factory {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.db")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	bridgestub.NewHandler(gateway.NewMemoryGateway(true)).Register(r)
	bridge := httptest.NewServer(r)
	t.Cleanup(bridge.Close)

	return func(ctx context.Context, _ *RootOptions) (*bootstrap.Components, func() error, error) {
		cfg := &config.Config{
			Store:   &config.StoreConfig{Backend: config.StoreBackendSQLite, SQLitePath: path},
			Redis:   &config.RedisConfig{Addr: "localhost:6379"},
			Gateway: &config.GatewayConfig{URL: bridge.URL, Timeout: 5 * time.Second},
			Scheduler: &config.SchedulerConfig{
				Location:           time.UTC,
				MilestoneStep:      500,
				DedupRetentionDays: 7,
			},
		}
		c, err := bootstrap.Build(ctx, cfg, nil, nil)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	}
}

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o600))
	return path
}

func execute(t *testing.T, factory Factory, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(factory)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoadFixture(t *testing.T) {
	f, err := LoadFixture(writeFixture(t))
	require.NoError(t, err)

	require.NotNil(t, f.Settings)
	assert.True(t, f.Settings.DebtReminder)
	assert.False(t, f.Settings.CreditorReminder)

	s := f.Snapshot()
	require.Len(t, s.Debtors, 2)
	assert.Equal(t, domain.Debtor{Name: "Alice", Balance: 120, RepaymentDate: "2099-03-10"}, s.Debtors[0])
	assert.Equal(t, "Mill Co", s.Creditors[0].Name)
	assert.Equal(t, domain.Good{ID: "g1", Name: "Rice", StockQuantity: 2}, s.Goods[0])
	assert.Equal(t, 250.0, s.Sales[0].Total)
}

func TestLoadFixture_Errors(t *testing.T) {
	_, err := LoadFixture(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("debtors: [unterminated"), 0o600))
	_, err = LoadFixture(bad)
	assert.Error(t, err)
}

func TestSeedRefreshPendingDisable(t *testing.T) {
	factory := sqliteFactory(t)

	out, err := execute(t, factory, "seed", writeFixture(t))
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 2 debtors, 1 creditors, 1 goods, 1 sales")

	out, err = execute(t, factory, "refresh", "debt_reminder", "--format", "json")
	require.NoError(t, err)

	var result reminder.PassResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, reminder.OutcomeScheduled, result.Outcome)
	require.NotEmpty(t, result.Scheduled)
	for _, id := range result.Scheduled {
		assert.GreaterOrEqual(t, id, 8001)
		assert.LessOrEqual(t, id, 8099)
	}

	// Creditor preference is off in the fixture.
	out, err = execute(t, factory, "refresh", "creditor_reminder", "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, reminder.OutcomePreferenceOff, result.Outcome)

	out, err = execute(t, factory, "disable", "debt_reminder")
	require.NoError(t, err)
	assert.Contains(t, out, "debt_reminder")
	assert.Contains(t, out, string(reminder.OutcomeDisabled))

	out, err = execute(t, factory, "pending", "--format", "json")
	require.NoError(t, err)
	var pending map[string][]int
	require.NoError(t, json.Unmarshal([]byte(out), &pending))
	assert.Empty(t, pending["debt_reminder"])
	assert.Contains(t, pending, "creditor_reminder")
}

func TestPendingText(t *testing.T) {
	out, err := execute(t, sqliteFactory(t), "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "debt_reminder")
	assert.Contains(t, out, "8001-8099")
	assert.Contains(t, out, "6001-6009")
}

func TestPendingGolden(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	factory := sqliteFactory(t)
	_, err := execute(t, factory, "seed", writeFixture(t))
	require.NoError(t, err)
	_, err = execute(t, factory, "refresh", "debt_reminder")
	require.NoError(t, err)

	out, err := execute(t, factory, "pending")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "pending_after_refresh", []byte(out))
}

func TestPurge(t *testing.T) {
	out, err := execute(t, sqliteFactory(t), "purge")
	require.NoError(t, err)
	assert.Contains(t, out, "purged 0 marker keys (retention 7 days)")
}

func TestCommandErrors(t *testing.T) {
	factory := sqliteFactory(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown category", args: []string{"refresh", "payroll"}},
		{name: "missing category", args: []string{"enable"}},
		{name: "invalid format", args: []string{"pending", "--format", "xml"}},
		{name: "missing fixture", args: []string{"seed", "/nonexistent/fixture.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, factory, tt.args...)
			assert.Error(t, err)
		})
	}
}
