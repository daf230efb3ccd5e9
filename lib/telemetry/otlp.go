package telemetry

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

// otlpConnConfig picks grpc when GrpcEndpoint is set, http when only
// HttpEndpoint is set and no exporter at all when both are empty.
type otlpConnConfig struct {
	GrpcEndpoint string            `json:"grpc_endpoint"`
	HttpEndpoint string            `json:"http_endpoint"`
	Headers      map[string]string `json:"headers"`
}

func (c otlpConnConfig) enabled() bool {
	return c.GrpcEndpoint != "" || c.HttpEndpoint != ""
}

func (c otlpConnConfig) logValues(kind string) []any {
	transport := "http"
	endpoint := c.HttpEndpoint
	if c.GrpcEndpoint != "" {
		transport = "grpc"
		endpoint = c.GrpcEndpoint
	}
	return []any{
		"signal", kind,
		"type", transport,
		"endpoint", endpoint,
		"headers", len(c.Headers) > 0,
	}
}

type otlpConfig struct {
	Traces  otlpConnConfig `json:"traces"`
	Metrics otlpConnConfig `json:"metrics"`
}

type config struct {
	Otlp otlpConfig `json:"otlp"`
	// how often metrics are pushed, defaults to 5s. short lived cli runs
	// still flush on Shutdown.
	MetricIntervalSeconds int `json:"metric_interval_seconds"`
}

func newTraceProvider(ctx context.Context, r *resource.Resource, cfg config) (*trace.TracerProvider, error) {
	opts := []trace.TracerProviderOption{trace.WithResource(r)}
	if cfg.Otlp.Traces.enabled() {
		exporter, err := traceExporter(ctx, cfg.Otlp.Traces)
		if err != nil {
			return nil, err
		}
		opts = append(opts, trace.WithBatcher(exporter))
	}
	return trace.NewTracerProvider(opts...), nil
}

func traceExporter(ctx context.Context, conn otlpConnConfig) (trace.SpanExporter, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	slog.Debug("exporter initialized", conn.logValues("traces")...)
	if conn.GrpcEndpoint != "" {
		return otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(conn.GrpcEndpoint),
			otlptracegrpc.WithHeaders(conn.Headers),
		)
	}
	return otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpointURL(conn.HttpEndpoint),
		otlptracehttp.WithHeaders(conn.Headers),
	)
}

func newMetricProvider(ctx context.Context, r *resource.Resource, cfg config) (*metric.MeterProvider, error) {
	opts := []metric.Option{metric.WithResource(r)}
	if cfg.Otlp.Metrics.enabled() {
		exporter, err := metricExporter(ctx, cfg.Otlp.Metrics)
		if err != nil {
			return nil, err
		}
		interval := time.Second * 5
		if cfg.MetricIntervalSeconds > 0 {
			interval = time.Duration(cfg.MetricIntervalSeconds) * time.Second
		}
		opts = append(opts, metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(interval))))
	}
	return metric.NewMeterProvider(opts...), nil
}

func metricExporter(ctx context.Context, conn otlpConnConfig) (metric.Exporter, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	slog.Debug("exporter initialized", conn.logValues("metrics")...)
	if conn.GrpcEndpoint != "" {
		return otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(conn.GrpcEndpoint),
			otlpmetricgrpc.WithHeaders(conn.Headers),
		)
	}
	return otlpmetrichttp.New(
		ctx,
		otlpmetrichttp.WithEndpointURL(conn.HttpEndpoint),
		otlpmetrichttp.WithHeaders(conn.Headers),
	)
}
