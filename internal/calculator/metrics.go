package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, initialized once via InitMetrics().
var (
	integrationsCounter metric.Int64Counter
	durationHistogram   metric.Float64Histogram
	errorCounter        metric.Int64Counter
	resultGauge         metric.Float64Gauge
	samplesHistogram    metric.Int64Histogram
)

// InitMetrics registers custom OTel metric instruments for the calculator domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	integrationsCounter, err = meter.Int64Counter("calculator.integrations.total",
		metric.WithDescription("Total number of successful integrations"),
		metric.WithUnit("{integration}"),
	)
	if err != nil {
		return fmt.Errorf("creating integrations counter: %w", err)
	}

	durationHistogram, err = meter.Float64Histogram("calculator.integration.duration",
		metric.WithDescription("Duration of integrations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100),
	)
	if err != nil {
		return fmt.Errorf("creating duration histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of calculator errors by kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The value of the last successful integration"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	samplesHistogram, err = meter.Int64Histogram("calculator.sample_points",
		metric.WithDescription("Number of function samples per integration"),
		metric.WithUnit("{sample}"),
		metric.WithExplicitBucketBoundaries(3, 11, 101, 1001, 10001),
	)
	if err != nil {
		return fmt.Errorf("creating sample points histogram: %w", err)
	}

	return nil
}
