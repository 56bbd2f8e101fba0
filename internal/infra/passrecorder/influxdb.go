package passrecorder

import (
	"context"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

const measurement = "reminder_pass"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

// NewRecorder returns an InfluxDB-backed recorder, or a no-op one when
// recording is disabled or not configured.
func NewRecorder(ctx context.Context, cfg *Config) domain.PassRecorder {
	if cfg.Disabled {
		slog.InfoContext(ctx, "pass result recording disabled")
		return NewNoopRecorder()
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, pass result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder()
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "pass result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
	}
}

func (r *influxDBRecorder) RecordPass(ctx context.Context, record domain.PassRecord) error {
	if err := r.writeAPI.WritePoint(ctx, passPoint(record)); err != nil {
		slog.WarnContext(ctx, "failed to write pass result to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("category", record.Category.String()),
			slog.String("outcome", record.Outcome),
		)
	}
	return nil
}

func passPoint(record domain.PassRecord) *write.Point {
	return influxdb2.NewPoint(
		measurement,
		map[string]string{
			"category": record.Category.String(),
			"trigger":  record.Trigger,
			"outcome":  record.Outcome,
		},
		map[string]any{
			"pass_id":         record.PassID,
			"cancelled_count": record.Cancelled,
			"scheduled_count": record.Scheduled,
			"dropped_count":   record.Dropped,
			"skipped_count":   record.Skipped,
			"duration_ms":     record.Duration.Milliseconds(),
		},
		record.StartedAt,
	)
}

func (r *influxDBRecorder) Flush(_ context.Context) error {
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
