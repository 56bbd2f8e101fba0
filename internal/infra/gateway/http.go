package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/observability/logging"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/observability/tracing"
)

const (
	permissionPath = "/api/v1/permission"
	schedulePath   = "/api/v1/alarms/schedule"
	pendingPath    = "/api/v1/alarms/pending"
	cancelPath     = "/api/v1/alarms/cancel"
)

// HTTPGateway talks to the device bridge that owns the platform alarm
// scheduler.
type HTTPGateway struct {
	baseURL    string
	httpClient *http.Client
}

var _ domain.Gateway = (*HTTPGateway)(nil)

func NewHTTPGateway(baseURL string, timeout time.Duration) *HTTPGateway {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPGateway{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (g *HTTPGateway) RequestPermission(ctx context.Context) (bool, error) {
	var resp permissionResponse
	if err := g.do(ctx, "request_permission", http.MethodPost, permissionPath, nil, &resp); err != nil {
		return false, err
	}
	return resp.Granted, nil
}

func (g *HTTPGateway) Schedule(ctx context.Context, alarms []domain.Alarm) error {
	if len(alarms) == 0 {
		return nil
	}
	return g.do(ctx, "schedule", http.MethodPost, schedulePath, scheduleRequest{Alarms: alarms}, nil)
}

func (g *HTTPGateway) ListPending(ctx context.Context) ([]domain.PendingAlarm, error) {
	var resp pendingResponse
	if err := g.do(ctx, "list_pending", http.MethodGet, pendingPath, nil, &resp); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "fetched pending alarms",
		slog.Int("count", len(resp.Alarms)),
	)

	return resp.Alarms, nil
}

func (g *HTTPGateway) Cancel(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	return g.do(ctx, "cancel", http.MethodPost, cancelPath, cancelRequest{IDs: ids}, nil)
}

func (g *HTTPGateway) do(ctx context.Context, operation, method, path string, in, out any) error {
	u, err := url.Parse(g.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = path

	ctx, span := tracing.StartGatewaySpan(ctx, operation, u.String())
	defer span.End()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			tracing.RecordError(span, err)
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set("x-request-id", requestID)
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send request to device bridge",
			slog.String("operation", operation),
			slog.String("url", u.String()),
			slog.String("error", err.Error()),
		)
		err = fmt.Errorf("%w: %s: %v", domain.ErrGatewayUnavailable, operation, err)
		tracing.RecordError(span, err)
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		tracing.RecordError(span, domain.ErrPermissionDenied)
		return domain.ErrPermissionDenied
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		slog.ErrorContext(ctx, "unexpected status code from device bridge",
			slog.String("operation", operation),
			slog.String("url", u.String()),
			slog.Int("status_code", resp.StatusCode),
		)
		err := fmt.Errorf("%w: %s: unexpected status code: %d", domain.ErrGatewayUnavailable, operation, resp.StatusCode)
		tracing.RecordError(span, err)
		return err
	}

	if out == nil {
		tracing.RecordError(span, nil)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.ErrorContext(ctx, "failed to decode response from device bridge",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to decode response: %w", err)
	}

	tracing.RecordError(span, nil)
	return nil
}
