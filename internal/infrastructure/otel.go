package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	ServiceName    = "sapflow-reporting"
	ServiceVersion = "1.4.0"
	MeterName      = "sapflow"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string // "stdout" or "none"
	EnableMetrics  bool
	EnableTracing  bool
	SampleRatio    float64
}

// OTelProviders holds the initialized OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger

	// Domain instruments shared across services
	SourceFetches   metric.Int64Counter
	SourceFetchTime metric.Float64Histogram
	RowsLoaded      metric.Int64Counter
	CacheHits       metric.Int64Counter
	CacheMisses     metric.Int64Counter
}

// DefaultOTelConfig returns a default OpenTelemetry configuration
func DefaultOTelConfig() *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: ServiceVersion,
		Environment:    env,
		TraceExporter:  "none",
		EnableMetrics:  true,
		EnableTracing:  false,
		SampleRatio:    1.0,
	}
}

// InitializeOTel initializes tracing and metrics and registers the
// global providers. The returned PrometheusHTTP handler serves the
// /metrics endpoint.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}

	ctx := context.Background()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironmentName(cfg.Environment),
			attribute.String("service.instance.id", uuid.New().String()),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &OTelProviders{Logger: logger}

	if cfg.EnableTracing && cfg.TraceExporter == "stdout" {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		providers.TracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
		)
		otel.SetTracerProvider(providers.TracerProvider)
		providers.Tracer = providers.TracerProvider.Tracer(MeterName)
	}

	if cfg.EnableMetrics {
		exporter, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		providers.MeterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(exporter),
			sdkmetric.WithResource(res),
		)
		otel.SetMeterProvider(providers.MeterProvider)
		providers.Meter = providers.MeterProvider.Meter(MeterName)
		providers.PrometheusHTTP = promhttp.Handler()

		if err := providers.createInstruments(); err != nil {
			return nil, fmt.Errorf("failed to create instruments: %w", err)
		}
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.InfoContext(ctx, "observability initialized",
		slog.Bool("tracing_enabled", providers.TracerProvider != nil),
		slog.Bool("metrics_enabled", providers.MeterProvider != nil))

	return providers, nil
}

func (p *OTelProviders) createInstruments() error {
	var err error

	p.SourceFetches, err = p.Meter.Int64Counter("sapflow.source.fetches",
		metric.WithDescription("Number of source fetches by table and outcome"))
	if err != nil {
		return err
	}

	p.SourceFetchTime, err = p.Meter.Float64Histogram("sapflow.source.fetch_duration_seconds",
		metric.WithDescription("Source fetch duration in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return err
	}

	p.RowsLoaded, err = p.Meter.Int64Counter("sapflow.source.rows",
		metric.WithDescription("Rows loaded per table"))
	if err != nil {
		return err
	}

	p.CacheHits, err = p.Meter.Int64Counter("sapflow.cache.hits",
		metric.WithDescription("Data cache hits"))
	if err != nil {
		return err
	}

	p.CacheMisses, err = p.Meter.Int64Counter("sapflow.cache.misses",
		metric.WithDescription("Data cache misses"))
	return err
}

// RecordFetch records one source fetch with its duration and outcome
func (p *OTelProviders) RecordFetch(ctx context.Context, table string, rows int, elapsed time.Duration, err error) {
	if p == nil || p.SourceFetches == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("table", table),
		attribute.String("outcome", outcome),
	)
	p.SourceFetches.Add(ctx, 1, attrs)
	p.SourceFetchTime.Record(ctx, elapsed.Seconds(), attrs)
	if err == nil {
		p.RowsLoaded.Add(ctx, int64(rows), metric.WithAttributes(attribute.String("table", table)))
	}
}

// RecordCache records a cache hit or miss for a table
func (p *OTelProviders) RecordCache(ctx context.Context, table string, hit bool) {
	if p == nil || p.CacheHits == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("table", table))
	if hit {
		p.CacheHits.Add(ctx, 1, attrs)
	} else {
		p.CacheMisses.Add(ctx, 1, attrs)
	}
}

// Shutdown flushes and stops the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var firstErr error
	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
