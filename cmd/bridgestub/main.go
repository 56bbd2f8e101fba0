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

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/bridgestub"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/infra/gateway"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/observability/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := logging.NewLogger(logging.Config{
		ServiceInfo:   logging.ServiceInfo{Name: "reminder-bridge-stub", Version: "dev"},
		Environment:   logging.EnvDev,
		Level:         logging.ParseLevel(os.Getenv("LOG_LEVEL")),
		DefaultModule: logging.Module("bridgestub"),
	})
	slog.SetDefault(logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	bridgestub.NewHandler(gateway.NewMemoryGateway(os.Getenv("STUB_PERMISSION") != "denied")).Register(r)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting bridge stub", slog.String("port", port))
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown bridge stub", slog.String("error", err.Error()))
			return 1
		}
		return 0
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("bridge stub exited with error", slog.String("error", err.Error()))
		return 1
	}
}
