package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const reminderTracerName = "github.com/KasumiMercury/primind-reminder-scheduler/internal/service/reminder"

func ReminderTracer() trace.Tracer {
	return otel.Tracer(reminderTracerName)
}

func StartPassSpan(ctx context.Context, category, trigger, passID string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.pass",
		trace.WithAttributes(
			attribute.String("reminder.category", category),
			attribute.String("reminder.trigger", trigger),
			attribute.String("reminder.pass_id", passID),
		),
	)
}

func StartGatewaySpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.gateway."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordPassResult(span trace.Span, outcome string, cancelled, scheduled, dropped, skipped int, err error) {
	span.SetAttributes(
		attribute.String("pass.outcome", outcome),
		attribute.Int("pass.cancelled_count", cancelled),
		attribute.Int("pass.scheduled_count", scheduled),
		attribute.Int("pass.dropped_count", dropped),
		attribute.Int("pass.skipped_count", skipped),
	)
	RecordError(span, err)
}

func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

func ExtractFromHTTPRequest(req *http.Request) context.Context {
	return otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))
}
