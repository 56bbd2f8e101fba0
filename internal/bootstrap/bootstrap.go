package bootstrap

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/config"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/infra/factstore"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/infra/gateway"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/infra/kvstore"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/dedup"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/idalloc"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/reminder"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/retention"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/trigger"
)

// Components is the wired scheduling core shared by the server and the
// operator CLI.
type Components struct {
	Store     domain.KeyValueStore
	Facts     *factstore.Store
	Gateway   domain.Gateway
	Dedup     *dedup.Store
	Manager   *reminder.Manager
	Retention *retention.Job
}

// Build opens the configured store and gateway and assembles the manager.
// reminderMetrics and recorder may be nil.
func Build(ctx context.Context, cfg *config.Config, reminderMetrics *metrics.ReminderMetrics, recorder domain.PassRecorder) (*Components, error) {
	allocator := idalloc.NewAllocator()
	if err := allocator.Validate(); err != nil {
		return nil, fmt.Errorf("invalid id ranges: %w", err)
	}

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sc := cfg.Scheduler
	calculator := trigger.NewCalculator(trigger.Config{
		Location:           sc.Location,
		BusinessName:       sc.BusinessName,
		MilestoneStep:      sc.MilestoneStep,
		LowStockThreshold:  sc.LowStockThreshold,
		LowStockBatchLimit: sc.LowStockBatchLimit,
		CreditorMaxCount:   sc.CreditorMaxCount,
	})

	facts := factstore.NewStore(store)
	gw := NewGateway(cfg.Gateway)
	dedupStore := dedup.NewStore(store, sc.DedupRetentionDays)

	manager := reminder.NewManager(
		gw,
		facts,
		facts,
		dedupStore,
		allocator,
		calculator,
		reminderMetrics,
		recorder,
		nil,
	)

	return &Components{
		Store:     store,
		Facts:     facts,
		Gateway:   gw,
		Dedup:     dedupStore,
		Manager:   manager,
		Retention: retention.NewJob(dedupStore, sc.PurgeCron, sc.Location, reminderMetrics, nil),
	}, nil
}

func (c *Components) Close() error {
	return c.Store.Close()
}

// OpenStore connects the key-value backend selected by STORE_BACKEND.
func OpenStore(ctx context.Context, cfg *config.Config) (domain.KeyValueStore, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		slog.WarnContext(ctx, "using in-memory store, state is lost on exit")
		return kvstore.NewMemoryStore(), nil

	case config.StoreBackendSQLite:
		store, err := kvstore.OpenSQLiteStore(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "sqlite store opened",
			slog.String("path", cfg.Store.SQLitePath),
		)
		return store, nil

	case config.StoreBackendRedis:
		return openRedis(ctx, cfg.Redis)

	default:
		return nil, config.ErrInvalidStoreBackend
	}
}

func openRedis(ctx context.Context, cfg *config.RedisConfig) (domain.KeyValueStore, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.ErrorContext(ctx, "failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return nil, errors.Join(err, redisClient.Close())
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.ErrorContext(ctx, "failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return nil, errors.Join(err, redisClient.Close())
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return nil, errors.Join(err, redisClient.Close())
	}

	slog.InfoContext(ctx, "redis connected",
		slog.String("addr", cfg.Addr),
	)

	return kvstore.NewRedisStore(redisClient, cfg.KeyPrefix), nil
}

// NewGateway returns the device bridge client, or the in-process gateway
// when no bridge URL is configured.
func NewGateway(cfg *config.GatewayConfig) domain.Gateway {
	if cfg.URL == "" {
		slog.Warn("GATEWAY_URL not set, using in-process alarm gateway",
			slog.Bool("permission_granted", cfg.Granted()),
		)
		return gateway.NewMemoryGateway(cfg.Granted())
	}

	slog.Info("alarm gateway initialized",
		slog.String("type", "http"),
		slog.String("url", cfg.URL),
	)
	return gateway.NewHTTPGateway(cfg.URL, cfg.Timeout)
}
