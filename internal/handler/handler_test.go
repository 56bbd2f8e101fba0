package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/infra/factstore"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/infra/gateway"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/infra/kvstore"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/dedup"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/idalloc"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/reminder"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/retention"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/trigger"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/testutil"
)

var testLoc = time.FixedZone("UTC+11", 11*60*60)

type testServer struct {
	router  *gin.Engine
	gateway *gateway.MemoryGateway
	facts   *factstore.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	kv := kvstore.NewMemoryStore()
	facts := factstore.NewStore(kv)
	gw := gateway.NewMemoryGateway(true)
	dedupStore := dedup.NewStore(kv, dedup.DefaultRetentionDays)
	clock := testutil.NewClock(time.Date(2024, 3, 5, 10, 0, 0, 0, testLoc))

	manager := reminder.NewManager(gw, facts, facts, dedupStore,
		idalloc.NewAllocator(),
		trigger.NewCalculator(trigger.Config{Location: testLoc}),
		nil, nil, clock.Now,
	)
	job := retention.NewJob(dedupStore, "", testLoc, nil, clock.Now)

	r := gin.New()
	Register(r, NewReminderHandler(manager), NewSettingsHandler(facts, manager, job))

	require.NoError(t, facts.Seed(context.Background(), factstore.Snapshot{
		Debtors: []domain.Debtor{{Name: "Alice", Balance: 100, RepaymentDate: "2024-03-10"}},
	}))

	return &testServer{router: r, gateway: gw, facts: facts}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestReminderHandler_EnableAndDisable(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodPost, "/api/v1/categories/debt_reminder/enable", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "scheduled", body["outcome"])
	assert.Equal(t, []any{float64(8001)}, body["scheduled"])
	assert.NotEmpty(t, body["pass_id"])

	w, body = s.do(t, http.MethodGet, "/api/v1/alarms/pending", "")
	require.Equal(t, http.StatusOK, w.Code)
	pending := body["pending"].(map[string]any)
	assert.Equal(t, []any{float64(8001)}, pending["debt_reminder"])

	w, body = s.do(t, http.MethodPost, "/api/v1/categories/debt_reminder/disable", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "disabled", body["outcome"])
	assert.Empty(t, s.gateway.Alarms())
}

func TestReminderHandler_UnknownCategory(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodPost, "/api/v1/categories/birthdays/refresh", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "unknown_category", body["error"])
}

func TestReminderHandler_State(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodGet, "/api/v1/categories/low_stock/state", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "idle", body["state"])
}

func TestReminderHandler_StockDeducted(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.facts.SavePreferences(context.Background(), domain.Preferences{LowStock: true}))

	w, body := s.do(t, http.MethodPost, "/api/v1/events/stock-deducted",
		`{"goods":[{"id":"g-1","name":"Rice","stock_quantity":3}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "scheduled", body["outcome"])

	w, body = s.do(t, http.MethodPost, "/api/v1/events/stock-deducted", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no_change", body["outcome"])

	w, body = s.do(t, http.MethodPost, "/api/v1/events/stock-deducted", `{"goods":[{"name":"no id"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", body["error"])
}

func TestReminderHandler_EventsRespectPreferences(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{
		"/api/v1/events/credit-sale",
		"/api/v1/events/sale-completed",
		"/api/v1/events/creditor-changed",
	} {
		w, body := s.do(t, http.MethodPost, path, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "preference_off", body["outcome"], path)
	}
}

func TestSettingsHandler_UpdateTriggersPasses(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodPut, "/api/v1/settings", `{"notifDebtReminder":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	passes := body["passes"].([]any)
	require.Len(t, passes, 1)
	assert.Equal(t, "enable", passes[0].(map[string]any)["trigger"])
	assert.Len(t, s.gateway.Alarms(), 1)

	w, body = s.do(t, http.MethodGet, "/api/v1/settings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["notifDebtReminder"])
	assert.Equal(t, false, body["notifLowStock"])

	w, body = s.do(t, http.MethodPut, "/api/v1/settings", `{"notifDebtReminder":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	passes = body["passes"].([]any)
	require.Len(t, passes, 1)
	assert.Equal(t, "disabled", passes[0].(map[string]any)["outcome"])
	assert.Empty(t, s.gateway.Alarms())
}

func TestSettingsHandler_RejectsBadJSON(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodPut, "/api/v1/settings", `{"notifDebtReminder":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettingsHandler_Purge(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodPost, "/api/v1/maintenance/purge", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body["deleted"])
}
