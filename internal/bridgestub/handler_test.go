package bridgestub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/infra/gateway"
)

func newServer(t *testing.T, granted bool) (*httptest.Server, *gateway.MemoryGateway) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	alarms := gateway.NewMemoryGateway(granted)
	r := gin.New()
	NewHandler(alarms).Register(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, alarms
}

func TestHTTPGatewayAgainstStub(t *testing.T) {
	ctx := context.Background()
	srv, alarms := newServer(t, true)
	gw := gateway.NewHTTPGateway(srv.URL, time.Second)

	granted, err := gw.RequestPermission(ctx)
	require.NoError(t, err)
	assert.True(t, granted)

	fireAt := time.Date(2099, 1, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, gw.Schedule(ctx, []domain.Alarm{
		{ID: 8001, Category: domain.CategoryDebtReminder, FireAt: fireAt, Title: "Debt Repayment Reminder"},
		{ID: 8002, Category: domain.CategoryDebtReminder, FireAt: fireAt},
	}))

	pending, err := gw.ListPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.PendingAlarm{{ID: 8001}, {ID: 8002}}, pending)

	stored := alarms.Alarms()
	require.Len(t, stored, 2)
	assert.Equal(t, "Debt Repayment Reminder", stored[0].Title)
	assert.True(t, fireAt.Equal(stored[0].FireAt))

	require.NoError(t, gw.Cancel(ctx, []int{8001, 9999}))
	pending, err = gw.ListPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.PendingAlarm{{ID: 8002}}, pending)
}

func TestHTTPGatewayAgainstStub_PermissionDenied(t *testing.T) {
	ctx := context.Background()
	srv, _ := newServer(t, false)
	gw := gateway.NewHTTPGateway(srv.URL, time.Second)

	granted, err := gw.RequestPermission(ctx)
	require.NoError(t, err)
	assert.False(t, granted)

	err = gw.Schedule(ctx, []domain.Alarm{{ID: 7001, Category: domain.CategoryLowStock}})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestAdminEndpoints(t *testing.T) {
	srv, alarms := newServer(t, false)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/admin/permission", strings.NewReader(`{"granted":true}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	granted, err := alarms.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.True(t, granted)

	require.NoError(t, alarms.Schedule(context.Background(), []domain.Alarm{{ID: 6002}}))

	resp, err = http.Post(srv.URL+"/admin/reset", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, alarms.Alarms())

	resp, err = http.Post(srv.URL+"/admin/permission", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBadRequests(t *testing.T) {
	srv, _ := newServer(t, true)

	for _, path := range []string{"/api/v1/alarms/schedule", "/api/v1/alarms/cancel", "/admin/permission"} {
		method := http.MethodPost
		if path == "/admin/permission" {
			method = http.MethodPut
		}
		req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(`{`))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}
