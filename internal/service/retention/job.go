package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/observability/logging"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/dedup"
)

const (
	DefaultSpec = "15 3 * * *"

	module = logging.Module("retention")
)

// Job purges expired dedup markers on a cron schedule.
type Job struct {
	cronEngine      *cron.Cron
	store           *dedup.Store
	spec            string
	loc             *time.Location
	reminderMetrics *metrics.ReminderMetrics
	now             func() time.Time
}

func NewJob(store *dedup.Store, spec string, loc *time.Location, reminderMetrics *metrics.ReminderMetrics, now func() time.Time) *Job {
	if spec == "" {
		spec = DefaultSpec
	}
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Job{
		cronEngine:      cron.New(cron.WithLocation(loc)),
		store:           store,
		spec:            spec,
		loc:             loc,
		reminderMetrics: reminderMetrics,
		now:             now,
	}
}

// Start registers the purge and starts the cron engine in its own goroutine.
func (j *Job) Start(ctx context.Context) error {
	ctx = logging.WithModule(ctx, module)

	_, err := j.cronEngine.AddFunc(j.spec, func() {
		if _, err := j.RunOnce(ctx); err != nil {
			slog.ErrorContext(ctx, "dedup marker purge failed",
				slog.String("error", err.Error()),
			)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid purge schedule %q: %w", j.spec, err)
	}

	j.cronEngine.Start()
	slog.InfoContext(ctx, "retention job started",
		slog.String("spec", j.spec),
		slog.Int("retention_days", j.store.RetentionDays()),
	)
	return nil
}

// Stop waits for a running purge to finish or ctx to expire.
func (j *Job) Stop(ctx context.Context) {
	select {
	case <-j.cronEngine.Stop().Done():
	case <-ctx.Done():
	}
}

// RunOnce purges against today's date in the job's zone, the zone day keys
// are written in.
func (j *Job) RunOnce(ctx context.Context) (int, error) {
	deleted, err := j.store.Purge(ctx, j.now().In(j.loc))
	if err != nil {
		return deleted, err
	}
	if j.reminderMetrics != nil {
		j.reminderMetrics.RecordPurge(ctx, deleted)
	}
	return deleted, nil
}
