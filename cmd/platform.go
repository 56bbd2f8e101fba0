package main

import (
	"context"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/config"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/observability"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/observability/logging"
)

const serviceModule = logging.Module("reminder-scheduler")

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     cfg.ServiceName,
			Version:  Version,
			Revision: Revision,
		},
		Environment:   logging.Environment(cfg.Env),
		Level:         cfg.LogLevel,
		SamplingRate:  1.0,
		DefaultModule: serviceModule,
		OTLPEndpoint:  cfg.OTLPEndpoint,
	})
}
