package main

import (
	"context"

	"go-chi-simpson/internal/calculator"
	"go-chi-simpson/internal/config"
	"go-chi-simpson/internal/observability"
)

// initMetrics initialises all metric providers and application-specific
// metric instruments. Add new domain InitMetrics calls here as the project grows.
func initMetrics(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx, cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}

// initLogging ships logs over OTLP when OTEL_LOGS_ENABLED is set. The returned
// shutdown is a no-op otherwise.
func initLogging(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	if !cfg.OTelLogs {
		return func(context.Context) error { return nil }, nil
	}
	return observability.InitLogging(ctx, cfg.ServiceName)
}
