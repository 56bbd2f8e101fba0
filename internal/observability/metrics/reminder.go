package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	reminderMeterName = "reminder.service"
)

type ReminderMetrics struct {
	passes          metric.Int64Counter
	alarmsScheduled metric.Int64Counter
	alarmsCancelled metric.Int64Counter
	alarmsDropped   metric.Int64Counter
	recordsSkipped  metric.Int64Counter
	passDuration    metric.Float64Histogram
	markersPurged   metric.Int64Counter
}

func NewReminderMetrics() (*ReminderMetrics, error) {
	meter := otel.Meter(reminderMeterName)

	passes, err := meter.Int64Counter(
		"reminder_passes_total",
		metric.WithDescription("Total number of scheduling passes"),
		metric.WithUnit("{pass}"),
	)
	if err != nil {
		return nil, err
	}

	alarmsScheduled, err := meter.Int64Counter(
		"reminder_alarms_scheduled_total",
		metric.WithDescription("Alarms handed to the gateway"),
		metric.WithUnit("{alarm}"),
	)
	if err != nil {
		return nil, err
	}

	alarmsCancelled, err := meter.Int64Counter(
		"reminder_alarms_cancelled_total",
		metric.WithDescription("Pending alarms cancelled before rescheduling"),
		metric.WithUnit("{alarm}"),
	)
	if err != nil {
		return nil, err
	}

	alarmsDropped, err := meter.Int64Counter(
		"reminder_alarms_dropped_total",
		metric.WithDescription("Candidates dropped because the id range was full"),
		metric.WithUnit("{alarm}"),
	)
	if err != nil {
		return nil, err
	}

	recordsSkipped, err := meter.Int64Counter(
		"reminder_records_skipped_total",
		metric.WithDescription("Business records skipped during calculation"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	passDuration, err := meter.Float64Histogram(
		"reminder_pass_duration_seconds",
		metric.WithDescription("Scheduling pass duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
		),
	)
	if err != nil {
		return nil, err
	}

	markersPurged, err := meter.Int64Counter(
		"reminder_markers_purged_total",
		metric.WithDescription("Expired dedup marker keys removed"),
		metric.WithUnit("{key}"),
	)
	if err != nil {
		return nil, err
	}

	return &ReminderMetrics{
		passes:          passes,
		alarmsScheduled: alarmsScheduled,
		alarmsCancelled: alarmsCancelled,
		alarmsDropped:   alarmsDropped,
		recordsSkipped:  recordsSkipped,
		passDuration:    passDuration,
		markersPurged:   markersPurged,
	}, nil
}

func (m *ReminderMetrics) RecordPass(ctx context.Context, category, trigger, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("category", category),
		attribute.String("trigger", trigger),
		attribute.String("outcome", outcome),
	)
	m.passes.Add(ctx, 1, attrs)
	m.passDuration.Record(ctx, duration.Seconds(), attrs)
}

func (m *ReminderMetrics) RecordAlarms(ctx context.Context, category string, scheduled, cancelled, dropped int) {
	attrs := metric.WithAttributes(attribute.String("category", category))
	if scheduled > 0 {
		m.alarmsScheduled.Add(ctx, int64(scheduled), attrs)
	}
	if cancelled > 0 {
		m.alarmsCancelled.Add(ctx, int64(cancelled), attrs)
	}
	if dropped > 0 {
		m.alarmsDropped.Add(ctx, int64(dropped), attrs)
	}
}

func (m *ReminderMetrics) RecordSkipped(ctx context.Context, category string, skipped int) {
	if skipped <= 0 {
		return
	}
	m.recordsSkipped.Add(ctx, int64(skipped), metric.WithAttributes(
		attribute.String("category", category),
	))
}

func (m *ReminderMetrics) RecordPurge(ctx context.Context, deleted int) {
	m.markersPurged.Add(ctx, int64(deleted))
}
