// Package tracing 基于 OpenTelemetry 提供分布式追踪，
// 支持 OTLP(HTTP/gRPC) 与 Zipkin 导出后端.
//
// 初始化后通过 StartSpan 为删除编排等关键路径打点：
//
//	ctx, span := tracing.StartSpan(ctx, "tenant.delete")
//	defer span.End()
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/yeisme/tenantvault/pkg/configs"
)

var tracerProvider *sdktrace.TracerProvider

// newExporter 按配置的导出器类型创建 SpanExporter.
func newExporter(config configs.TracingConfig) (sdktrace.SpanExporter, error) {
	switch config.ExporterType {
	case "otlp-http":
		return otlptracehttp.New(context.Background(), otlptracehttp.WithEndpointURL(config.Endpoint))
	case "otlp-grpc":
		return otlptracegrpc.New(context.Background(), otlptracegrpc.WithEndpoint(config.Endpoint))
	case "zipkin":
		return zipkin.New(config.Endpoint)
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", config.ExporterType)
	}
}

// InitTracer 初始化全局 TracerProvider，config.Enabled 为 false 时不做任何事.
func InitTracer(config configs.TracingConfig) error {
	if !config.Enabled {
		return nil
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := newExporter(config)
	if err != nil {
		return fmt.Errorf("failed to create %s exporter: %w", config.ExporterType, err)
	}

	sampleRate := config.SampleRate
	if sampleRate <= 0 || sampleRate > 1 {
		sampleRate = 1
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(sampleRate)),
	)

	otel.SetTracerProvider(tracerProvider)

	return nil
}

// ShutdownTracer 刷新并关闭 TracerProvider.
func ShutdownTracer(ctx context.Context) error {
	if tracerProvider != nil {
		return tracerProvider.Shutdown(ctx)
	}

	return nil
}

// StartSpan 开始一个新的 Span，结束时调用 span.End().
func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer("tenantvault").Start(ctx, spanName, opts...)
}

// GetTracer 获取指定名称的 Tracer.
func GetTracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
