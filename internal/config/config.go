package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort        = "8080"
	defaultServiceName = "reminder-scheduler"
	defaultEnv         = "dev"
)

type Config struct {
	Port         string
	LogLevel     slog.Level
	Env          string
	ServiceName  string
	OTLPEndpoint string
	Store        *StoreConfig
	Redis        *RedisConfig
	Gateway      *GatewayConfig
	Scheduler    *SchedulerConfig
}

// LoadDotEnv reads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = defaultEnv
	}

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	gatewayConfig, err := LoadGatewayConfig()
	if err != nil {
		return nil, err
	}

	schedulerConfig, err := LoadSchedulerConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:         port,
		LogLevel:     parseLogLevel(os.Getenv("LOG_LEVEL")),
		Env:          env,
		ServiceName:  serviceName,
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		Store:        LoadStoreConfig(),
		Redis:        redisConfig,
		Gateway:      gatewayConfig,
		Scheduler:    schedulerConfig,
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
