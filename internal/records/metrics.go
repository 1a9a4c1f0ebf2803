package records

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metric instruments. They are no-ops until InitMetrics runs so handlers can
// be exercised without a meter provider.
var (
	opsCounter   metric.Int64Counter     = noop.Int64Counter{}
	errorCounter metric.Int64Counter     = noop.Int64Counter{}
	opsHistogram metric.Float64Histogram = noop.Float64Histogram{}
	bmiHistogram metric.Float64Histogram = noop.Float64Histogram{}
)

// InitMetrics registers the records instruments on the global meter provider.
// Call it once at startup, after observability.Setup.
func InitMetrics() error {
	meter := otel.Meter("records")

	var err error

	opsCounter, err = meter.Int64Counter("records.operations.total",
		metric.WithDescription("Record operations completed successfully"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("records.errors.total",
		metric.WithDescription("Record operations that failed"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("records.operation.duration",
		metric.WithDescription("Duration of record operations including storage"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 2.5, 5, 10, 25, 50, 100, 250),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	bmiHistogram, err = meter.Float64Histogram("records.bmi",
		metric.WithDescription("BMI of newly created records"),
		metric.WithUnit("kg/m2"),
		metric.WithExplicitBucketBoundaries(16, 18.5, 25, 30, 35, 40),
	)
	if err != nil {
		return fmt.Errorf("creating bmi histogram: %w", err)
	}

	return nil
}
