package main

import (
	"context"

	"bmi-tracker/internal/config"
	"bmi-tracker/internal/observability"
	"bmi-tracker/internal/records"
)

// initTelemetry starts the OTLP exporters and then registers the
// domain-specific metric instruments against the new meter provider.
func initTelemetry(ctx context.Context, cfg config.TelemetryConfig) (func(context.Context) error, error) {
	shutdown, err := observability.Setup(ctx, observability.TelemetryOptions{
		ServiceName: cfg.ServiceName,
		ExportLogs:  cfg.ExportLogs,
	})
	if err != nil {
		return nil, err
	}

	if err := records.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}
