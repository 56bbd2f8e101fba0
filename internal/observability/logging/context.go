package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type (
	requestIDKey struct{}
	passIDKey    struct{}
	moduleKey    struct{}
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ValidateAndExtractRequestID returns id when it is a UUID and a fresh one
// otherwise.
func ValidateAndExtractRequestID(id string) string {
	if id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	return uuid.NewString()
}

func WithPassID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, passIDKey{}, id)
}

func PassIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(passIDKey{}).(string)
	return id
}

func WithModule(ctx context.Context, m Module) context.Context {
	return context.WithValue(ctx, moduleKey{}, m)
}

func traceAttrs(ctx context.Context) []slog.Attr {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []slog.Attr{
		slog.String("trace_id", sc.TraceID().String()),
		slog.String("span_id", sc.SpanID().String()),
	}
}
