package observability

import (
	"context"
	"errors"
	"fmt"
)

// TelemetryOptions selects which OTLP exporters Setup starts.
type TelemetryOptions struct {
	ServiceName string
	ExportLogs  bool
}

// Setup starts trace and metric export, and log export when requested. The
// returned function flushes and stops everything that was started, in
// reverse order.
func Setup(ctx context.Context, opts TelemetryOptions) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	res, err := NewResource(ctx, opts.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("telemetry resource: %w", err)
	}

	traceShutdown, err := InitTracing(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	shutdowns = append(shutdowns, traceShutdown)

	metricShutdown, err := InitMetrics(ctx, res)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("init metrics: %w", err)
	}
	shutdowns = append(shutdowns, metricShutdown)

	if opts.ExportLogs {
		logShutdown, err := InitLogging(ctx, res, opts.ServiceName)
		if err != nil {
			_ = shutdown(ctx)
			return nil, fmt.Errorf("init log export: %w", err)
		}
		shutdowns = append(shutdowns, logShutdown)
	}

	return shutdown, nil
}
