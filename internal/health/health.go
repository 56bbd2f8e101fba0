package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

// Status represents the health status of a service or dependency.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult represents the health check result for a single dependency.
type CheckResult struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HealthStatus represents the overall health status of the service.
type HealthStatus struct {
	Status  Status                 `json:"status"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// Checker performs health checks on service dependencies.
type Checker struct {
	store   domain.KeyValueStore
	gateway domain.Gateway
	version string
}

// NewChecker creates a new health checker with the given dependencies.
// A nil dependency is not checked.
func NewChecker(store domain.KeyValueStore, gateway domain.Gateway, version string) *Checker {
	return &Checker{
		store:   store,
		gateway: gateway,
		version: version,
	}
}

// Check performs health checks on all dependencies and returns the overall status.
func (c *Checker) Check(ctx context.Context) *HealthStatus {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := &HealthStatus{
		Status:  StatusHealthy,
		Version: c.version,
		Checks:  make(map[string]CheckResult),
	}

	if c.store != nil {
		start := time.Now()
		if err := c.store.Ping(checkCtx); err != nil {
			status.Status = StatusUnhealthy
			status.Checks["store"] = CheckResult{
				Status: StatusUnhealthy,
				Error:  err.Error(),
			}
		} else {
			status.Checks["store"] = CheckResult{
				Status:    StatusHealthy,
				LatencyMs: time.Since(start).Milliseconds(),
			}
		}
	}

	// A denied permission leaves every pass a no-op but the service itself
	// stays ready; only an unreachable gateway is unhealthy.
	if c.gateway != nil {
		start := time.Now()
		granted, err := c.gateway.RequestPermission(checkCtx)
		switch {
		case err != nil:
			status.Status = StatusUnhealthy
			status.Checks["gateway"] = CheckResult{
				Status: StatusUnhealthy,
				Error:  err.Error(),
			}
		default:
			result := CheckResult{
				Status:    StatusHealthy,
				LatencyMs: time.Since(start).Milliseconds(),
			}
			if !granted {
				result.Error = "notification permission not granted"
			}
			status.Checks["gateway"] = result
		}
	}

	return status
}

// LiveHandler returns a Gin handler for liveness probes.
func (c *Checker) LiveHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ReadyHandler returns a Gin handler for readiness probes.
func (c *Checker) ReadyHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := c.Check(ctx.Request.Context())

		httpStatus := http.StatusOK
		if status.Status != StatusHealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		ctx.JSON(httpStatus, status)
	}
}
