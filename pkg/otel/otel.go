// Package otel wires OpenTelemetry tracing into the application.
package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"

	"maeled/pkg/logger"
)

// Config holds the tracing settings.
type Config struct {
	ServiceName string
	Host        string // OTLP gRPC collector; empty means stdout exporter
	Probability float64
}

type ctxKey int

const tracerKey ctxKey = 1

// InitTracing sets up the global tracer provider. The returned shutdown
// function flushes pending spans.
func InitTracing(log *logger.Logger, cfg Config) (*sdktrace.TracerProvider, func(context.Context) error, error) {
	exp, err := newExporter(cfg.Host)
	if err != nil {
		return nil, nil, fmt.Errorf("creating exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.Probability)),
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
		)),
	)
	otel.SetTracerProvider(tp)

	log.Info(context.Background(), "tracing initialized", "exporter", exporterName(cfg.Host))
	return tp, tp.Shutdown, nil
}

func newExporter(host string) (sdktrace.SpanExporter, error) {
	if host == "" {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	return otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(host),
		otlptracegrpc.WithInsecure(),
	)
}

func exporterName(host string) string {
	if host == "" {
		return "stdout"
	}
	return "otlp:" + host
}

// InjectTracing stores the tracer in the context so handlers can start
// spans without a package-level dependency.
func InjectTracing(ctx context.Context, tracer trace.Tracer) context.Context {
	return context.WithValue(ctx, tracerKey, tracer)
}

// AddSpan starts a child span when a tracer is present in the context;
// otherwise the current (possibly no-op) span is returned.
func AddSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	tracer, ok := ctx.Value(tracerKey).(trace.Tracer)
	if !ok || tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name)
}

// GetTraceID returns the current trace id, or "" when not recording.
func GetTraceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
