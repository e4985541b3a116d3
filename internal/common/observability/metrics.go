package observability

import (
	"context"
	"log"
	"time"

	"collab-workers/internal/common/config"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "collab-workers/collaboration"

type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider shutdowner
	tracer         trace.Tracer
	meter          otelmetric.Meter
	jobCounter     otelmetric.Int64Counter
	jobDuration    otelmetric.Float64Histogram
	pairCount      otelmetric.Int64Histogram
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// Options configure New. A nil Registerer uses the prometheus default
// registry.
type Options struct {
	Tracing    config.TracingConfig
	Registerer promclient.Registerer
}

// New wires the otel meter provider to a Prometheus exporter and installs a
// tracer provider. Failures degrade to no-op instruments.
func New(serviceName string, opts Options) *Observability {
	o := &Observability{tracer: otel.Tracer(tracerName)}

	if tp, err := newTracerProvider(serviceName, opts.Tracing); err != nil {
		log.Printf("Failed to create tracer provider: %v", err)
	} else {
		otel.SetTracerProvider(tp)
		o.tracerProvider = tp
		o.tracer = tp.Tracer(tracerName)
	}

	var exporterOpts []prometheus.Option
	if opts.Registerer != nil {
		exporterOpts = append(exporterOpts, prometheus.WithRegisterer(opts.Registerer))
	}
	exporter, err := prometheus.New(exporterOpts...)
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return o
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	jobCounter, _ := meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)

	jobDuration, _ := meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)

	pairCount, _ := meter.Int64Histogram(
		"collaboration.pairs",
		otelmetric.WithDescription("Ranked pairs produced per run"),
	)

	o.meterProvider = provider
	o.meter = meter
	o.jobCounter = jobCounter
	o.jobDuration = jobDuration
	o.pairCount = pairCount
	return o
}

// Tracer returns the tracer used for pipeline spans.
func (o *Observability) Tracer() trace.Tracer {
	if o == nil || o.tracer == nil {
		return otel.Tracer(tracerName)
	}
	return o.tracer
}

// StartSpan opens a span named name under ctx.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return o.Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// The Record methods are no-ops on a nil *Observability.

func (o *Observability) RecordJobProcessed(ctx context.Context, status string) {
	if o != nil && o.jobCounter != nil {
		o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordJobDuration(ctx context.Context, duration time.Duration, status string) {
	if o != nil && o.jobDuration != nil {
		o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordPairCount(ctx context.Context, pairs int) {
	if o != nil && o.pairCount != nil {
		o.pairCount.Record(ctx, int64(pairs))
	}
}

func (o *Observability) Shutdown() {
	if o == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
}
