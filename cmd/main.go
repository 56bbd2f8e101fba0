package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/bootstrap"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/config"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/handler"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/health"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/infra/passrecorder"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/observability/middleware"
)

// Version and Revision are set via ldflags at build time
var (
	Version  = "dev"
	Revision = ""
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := config.LoadDotEnv(os.Getenv("ENV_FILE")); err != nil {
		slog.Error("failed to load .env file", slog.String("error", err.Error()))
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	reminderMetrics, err := metrics.NewReminderMetrics()
	if err != nil {
		slog.Error("failed to initialize reminder metrics", slog.String("error", err.Error()))
		return 1
	}

	recorder := passrecorder.NewRecorder(ctx, passrecorder.LoadConfig())
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close pass result recorder", slog.String("error", err.Error()))
		}
	}()

	components, err := bootstrap.Build(ctx, cfg, reminderMetrics, recorder)
	if err != nil {
		slog.Error("failed to initialize scheduler", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := components.Close(); err != nil {
			slog.Warn("failed to close store", slog.String("error", err.Error()))
		}
	}()

	if err := components.Retention.Start(ctx); err != nil {
		slog.Error("failed to start retention job", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		components.Retention.Stop(stopCtx)
	}()

	reminderHandler := handler.NewReminderHandler(components.Manager)
	settingsHandler := handler.NewSettingsHandler(components.Facts, components.Manager, components.Retention)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      serviceModule,
		TracerName:  "github.com/KasumiMercury/primind-reminder-scheduler/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(components.Store, components.Gateway, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	handler.Register(r, reminderHandler, settingsHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("store_backend", string(cfg.Store.Backend)),
			slog.String("timezone", cfg.Scheduler.Location.String()),
			slog.Int("milestone_step", cfg.Scheduler.MilestoneStep),
			slog.Int("dedup_retention_days", cfg.Scheduler.DedupRetentionDays),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
