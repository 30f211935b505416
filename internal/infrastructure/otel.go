package infrastructure

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	ServiceName    = "orderpulse-etl"
	ServiceVersion = "1.2.0"
	MeterName      = "ordercli"
	TracerName     = "ordercli.pipeline"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	EnableTracing bool
	SampleRatio   float64
}

// OTelProviders holds the OpenTelemetry providers for a single run.
// A one-shot batch has no scrape endpoint, so metrics go through a manual
// reader and are collected once at the end of the run.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Logger         *slog.Logger

	reader *sdkmetric.ManualReader
}

// DefaultOTelConfig returns a default OpenTelemetry configuration
func DefaultOTelConfig() *OTelConfig {
	return &OTelConfig{
		EnableTracing: false,
		SampleRatio:   1.0,
	}
}

// InitializeOTel initializes tracing and metrics for a pipeline run.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &OTelProviders{Logger: logger}

	if cfg.EnableTracing {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}

		sampleRatio := cfg.SampleRatio
		if sampleRatio <= 0 {
			sampleRatio = 1.0
		}

		providers.TracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.TraceIDRatioBased(sampleRatio)),
		)
		otel.SetTracerProvider(providers.TracerProvider)
		providers.Tracer = providers.TracerProvider.Tracer(TracerName)
	} else {
		providers.Tracer = noop.NewTracerProvider().Tracer(TracerName)
	}

	providers.reader = sdkmetric.NewManualReader()
	providers.MeterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(providers.reader),
		sdkmetric.WithResource(res),
	)
	providers.Meter = providers.MeterProvider.Meter(MeterName)

	return providers, nil
}

// CollectAndLogMetrics drains the manual reader and logs every recorded
// instrument. Called once after the last stage completes.
func (p *OTelProviders) CollectAndLogMetrics(ctx context.Context) {
	if p.reader == nil {
		return
	}

	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		p.Logger.WarnContext(ctx, "failed to collect metrics", slog.String("error", err.Error()))
		return
	}

	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					p.Logger.InfoContext(ctx, "pipeline metric",
						slog.String("name", m.Name),
						slog.Int64("value", dp.Value),
						slog.String("attributes", attrsString(dp.Attributes.ToSlice())))
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					p.Logger.InfoContext(ctx, "pipeline metric",
						slog.String("name", m.Name),
						slog.Uint64("count", dp.Count),
						slog.Float64("sum", dp.Sum),
						slog.String("attributes", attrsString(dp.Attributes.ToSlice())))
				}
			}
		}
	}
}

// Shutdown flushes and stops the providers.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			return err
		}
	}
	if p.TracerProvider != nil {
		return p.TracerProvider.Shutdown(ctx)
	}
	return nil
}

// AddSpanEvent adds an event to the current span if one is recording.
func AddSpanEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, val))
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case int64:
			attrs = append(attrs, attribute.Int64(k, val))
		case float64:
			attrs = append(attrs, attribute.Float64(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}

	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// RecordError records an error on the current span if one is recording.
func RecordError(ctx context.Context, err error, opts ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.RecordError(err, opts...)
	}
}

func attrsString(attrs []attribute.KeyValue) string {
	out := ""
	for i, kv := range attrs {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%v", kv.Key, kv.Value.AsInterface())
	}
	return out
}
