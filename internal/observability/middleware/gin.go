package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/observability/logging"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/observability/tracing"
)

const requestIDHeader = "x-request-id"

type GinConfig struct {
	SkipPaths   []string
	Module      logging.Module
	TracerName  string
	HTTPMetrics *metrics.HTTPMetrics
}

// Gin starts a server span, attaches a request id and logs each request.
func Gin(cfg GinConfig) gin.HandlerFunc {
	tracer := otel.Tracer(cfg.TracerName)

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		ctx := tracing.ExtractFromHTTPRequest(c.Request)
		requestID := logging.ValidateAndExtractRequestID(c.GetHeader(requestIDHeader))
		ctx = logging.WithRequestID(ctx, requestID)
		if cfg.Module != "" {
			ctx = logging.WithModule(ctx, cfg.Module)
		}

		route := c.FullPath()
		if route == "" {
			route = path
		}

		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		duration := time.Since(start)
		span.SetAttributes(attribute.Int("http.status_code", status))

		if cfg.HTTPMetrics != nil {
			cfg.HTTPMetrics.RecordRequest(ctx, c.Request.Method, route, status, duration)
		}

		if slices.Contains(cfg.SkipPaths, path) {
			return
		}

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		} else if status >= http.StatusBadRequest {
			level = slog.LevelWarn
		}

		slog.Log(ctx, level, "request completed",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("duration", duration),
		)
	}
}

func PanicRecoveryGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(c.Request.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(r)),
					slog.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
		}()
		c.Next()
	}
}
