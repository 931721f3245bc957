package diag

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"
)

const ServiceName = "presupuesto"

var (
	opKey      = attribute.Key("op")
	outcomeKey = attribute.Key("outcome")
)

// NewPrometheusExporter installs a global meter provider backed by a
// Prometheus exporter. The exporter serves the scrape endpoint.
func NewPrometheusExporter() (*prometheus.Exporter, error) {
	config := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(config.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)

	exporter, err := prometheus.New(config, c)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prometheus exporter: %w", err)
	}
	global.SetMeterProvider(exporter.MeterProvider())

	return exporter, nil
}

// Metrics records article operations. Without a meter provider installed the
// instruments are no-ops.
type Metrics struct {
	ops      metric.Int64Counter
	duration metric.Float64ValueRecorder
	requests metric.Int64Counter
}

func NewMetrics(meter metric.Meter) *Metrics {
	must := metric.Must(meter)

	return &Metrics{
		ops: must.NewInt64Counter(
			"articles/operations_total",
			metric.WithDescription("Count of article operations, by operation and outcome"),
		),
		duration: must.NewFloat64ValueRecorder(
			"articles/operation_duration_ms",
			metric.WithDescription("Article operation latency in milliseconds"),
		),
		requests: must.NewInt64Counter(
			"http/server/completed_count",
			metric.WithDescription("Count of completed requests, by HTTP method and response status"),
		),
	}
}

// DefaultMetrics uses the global meter provider.
func DefaultMetrics() *Metrics {
	return NewMetrics(global.Meter(ServiceName))
}

func (m *Metrics) Observe(ctx context.Context, op, outcome string, d time.Duration) {
	labels := []attribute.KeyValue{opKey.String(op), outcomeKey.String(outcome)}
	m.ops.Add(ctx, 1, labels...)
	m.duration.Record(ctx, float64(d)/float64(time.Millisecond), labels...)
}

func (m *Metrics) Request(ctx context.Context, method string, status int) {
	m.requests.Add(ctx, 1,
		attribute.String("method", method),
		attribute.Int("status", status),
	)
}
