package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OperationMetrics are the instruments every calculation domain reports:
// operation count, duration, errors and the last result. Instruments are safe
// for concurrent use.
type OperationMetrics struct {
	Operations metric.Int64Counter
	Duration   metric.Float64Histogram
	Errors     metric.Int64Counter
	LastResult metric.Float64Gauge
}

// NewOperationMetrics creates the instruments for domain on meter, named
// "<domain>.operations.total", "<domain>.operation.duration",
// "<domain>.errors.total" and "<domain>.last_result".
func NewOperationMetrics(meter metric.Meter, domain string) (*OperationMetrics, error) {
	var (
		m   OperationMetrics
		err error
	)

	m.Operations, err = meter.Int64Counter(domain+".operations.total",
		metric.WithDescription(fmt.Sprintf("Total number of %s operations performed", domain)),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ops counter: %w", err)
	}

	m.Duration, err = meter.Float64Histogram(domain+".operation.duration",
		metric.WithDescription(fmt.Sprintf("Duration of %s operations in milliseconds", domain)),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ops histogram: %w", err)
	}

	m.Errors, err = meter.Int64Counter(domain+".errors.total",
		metric.WithDescription(fmt.Sprintf("Total number of %s errors", domain)),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error counter: %w", err)
	}

	m.LastResult, err = meter.Float64Gauge(domain+".last_result",
		metric.WithDescription(fmt.Sprintf("The result of the last %s operation", domain)),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating result gauge: %w", err)
	}

	return &m, nil
}

// RecordSuccess counts one completed operation with its duration and result.
func (m *OperationMetrics) RecordSuccess(ctx context.Context, opName string, elapsed time.Duration, result float64) {
	attrs := metric.WithAttributes(attribute.String("operation", opName))
	m.Operations.Add(ctx, 1, attrs)
	m.Duration.Record(ctx, Milliseconds(elapsed), attrs)
	m.LastResult.Record(ctx, result, attrs)
}

// Milliseconds converts d to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
