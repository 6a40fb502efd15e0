// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"go.opentelemetry.io/contrib/propagators/jaeger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	// OTelProtocolGRPC sends OTLP over gRPC
	OTelProtocolGRPC = "grpc"
	// OTelProtocolHTTP sends OTLP over HTTP/protobuf
	OTelProtocolHTTP = "http"

	// OTelExporterOTLP enables the OTLP exporter for a signal
	OTelExporterOTLP = "otlp"
	// OTelExporterNone disables exporting for a signal
	OTelExporterNone = "none"

	defaultServiceName = "lfx-v2-meeting-attendance"
)

// OTelConfig holds the OpenTelemetry SDK settings read from OTEL_* variables.
type OTelConfig struct {
	ServiceName       string
	ServiceVersion    string
	Protocol          string
	Endpoint          string
	Insecure          bool
	TracesExporter    string
	TracesSampleRatio float64
	MetricsExporter   string
	LogsExporter      string
}

// OTelConfigFromEnv reads the SDK configuration from the environment. Every
// exporter defaults to none, so nothing leaves the process unless asked to.
func OTelConfigFromEnv() OTelConfig {
	sampleRatio := 1.0
	if v := os.Getenv("OTEL_TRACES_SAMPLE_RATIO"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			sampleRatio = f
		}
	}

	return OTelConfig{
		ServiceName:       envOrDefault("OTEL_SERVICE_NAME", defaultServiceName),
		ServiceVersion:    os.Getenv("OTEL_SERVICE_VERSION"),
		Protocol:          envOrDefault("OTEL_EXPORTER_OTLP_PROTOCOL", OTelProtocolGRPC),
		Endpoint:          os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		Insecure:          os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true",
		TracesExporter:    envOrDefault("OTEL_TRACES_EXPORTER", OTelExporterNone),
		TracesSampleRatio: sampleRatio,
		MetricsExporter:   envOrDefault("OTEL_METRICS_EXPORTER", OTelExporterNone),
		LogsExporter:      envOrDefault("OTEL_LOGS_EXPORTER", OTelExporterNone),
	}
}

// SetupOTelSDK installs the global tracer, meter and logger providers using
// the configuration from the environment.
func SetupOTelSDK(ctx context.Context) (shutdown func(context.Context) error, err error) {
	return SetupOTelSDKWithConfig(ctx, OTelConfigFromEnv())
}

// SetupOTelSDKWithConfig installs the global providers for cfg. The returned
// shutdown flushes and stops every provider and may be called more than once.
func SetupOTelSDKWithConfig(ctx context.Context, cfg OTelConfig) (shutdown func(context.Context) error, err error) {
	var shutdownFuncs []func(context.Context) error

	shutdown = func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFuncs {
			err = errors.Join(err, fn(ctx))
		}
		shutdownFuncs = nil
		return err
	}

	// release what was already started when a later provider fails
	handleErr := func(inErr error) {
		err = errors.Join(inErr, shutdown(ctx))
	}

	res, err := newResource(cfg)
	if err != nil {
		handleErr(err)
		return shutdown, err
	}

	otel.SetTextMapPropagator(newPropagator())

	tracerProvider, err := newTracerProvider(ctx, cfg, res)
	if err != nil {
		handleErr(err)
		return shutdown, err
	}
	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)
	otel.SetTracerProvider(tracerProvider)

	meterProvider, err := newMeterProvider(ctx, cfg, res)
	if err != nil {
		handleErr(err)
		return shutdown, err
	}
	shutdownFuncs = append(shutdownFuncs, meterProvider.Shutdown)
	otel.SetMeterProvider(meterProvider)

	loggerProvider, err := newLoggerProvider(ctx, cfg, res)
	if err != nil {
		handleErr(err)
		return shutdown, err
	}
	shutdownFuncs = append(shutdownFuncs, loggerProvider.Shutdown)
	global.SetLoggerProvider(loggerProvider)

	return shutdown, nil
}

func newResource(cfg OTelConfig) (*resource.Resource, error) {
	attrs := resource.NewSchemaless(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
	)
	return resource.Merge(resource.Default(), attrs)
}

func newPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
		jaeger.Jaeger{},
	)
}

// newTracerProvider always records spans so trace ids reach the logs, and
// only attaches an exporter when traces are enabled.
func newTracerProvider(ctx context.Context, cfg OTelConfig, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.TracesSampleRatio))),
	}

	if cfg.TracesExporter == OTelExporterOTLP {
		var exporter sdktrace.SpanExporter
		var err error
		if cfg.Protocol == OTelProtocolHTTP {
			var httpOpts []otlptracehttp.Option
			if cfg.Endpoint != "" {
				httpOpts = append(httpOpts, otlptracehttp.WithEndpoint(cfg.Endpoint))
			}
			if cfg.Insecure {
				httpOpts = append(httpOpts, otlptracehttp.WithInsecure())
			}
			exporter, err = otlptracehttp.New(ctx, httpOpts...)
		} else {
			var grpcOpts []otlptracegrpc.Option
			if cfg.Endpoint != "" {
				grpcOpts = append(grpcOpts, otlptracegrpc.WithEndpoint(cfg.Endpoint))
			}
			if cfg.Insecure {
				grpcOpts = append(grpcOpts, otlptracegrpc.WithInsecure())
			}
			exporter, err = otlptracegrpc.New(ctx, grpcOpts...)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	return sdktrace.NewTracerProvider(opts...), nil
}

func newMeterProvider(ctx context.Context, cfg OTelConfig, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}

	if cfg.MetricsExporter == OTelExporterOTLP {
		var exporter sdkmetric.Exporter
		var err error
		if cfg.Protocol == OTelProtocolHTTP {
			var httpOpts []otlpmetrichttp.Option
			if cfg.Endpoint != "" {
				httpOpts = append(httpOpts, otlpmetrichttp.WithEndpoint(cfg.Endpoint))
			}
			if cfg.Insecure {
				httpOpts = append(httpOpts, otlpmetrichttp.WithInsecure())
			}
			exporter, err = otlpmetrichttp.New(ctx, httpOpts...)
		} else {
			var grpcOpts []otlpmetricgrpc.Option
			if cfg.Endpoint != "" {
				grpcOpts = append(grpcOpts, otlpmetricgrpc.WithEndpoint(cfg.Endpoint))
			}
			if cfg.Insecure {
				grpcOpts = append(grpcOpts, otlpmetricgrpc.WithInsecure())
			}
			exporter, err = otlpmetricgrpc.New(ctx, grpcOpts...)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create metric exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)))
	}

	return sdkmetric.NewMeterProvider(opts...), nil
}

func newLoggerProvider(ctx context.Context, cfg OTelConfig, res *resource.Resource) (*sdklog.LoggerProvider, error) {
	opts := []sdklog.LoggerProviderOption{sdklog.WithResource(res)}

	if cfg.LogsExporter == OTelExporterOTLP {
		var exporter sdklog.Exporter
		var err error
		if cfg.Protocol == OTelProtocolHTTP {
			var httpOpts []otlploghttp.Option
			if cfg.Endpoint != "" {
				httpOpts = append(httpOpts, otlploghttp.WithEndpoint(cfg.Endpoint))
			}
			if cfg.Insecure {
				httpOpts = append(httpOpts, otlploghttp.WithInsecure())
			}
			exporter, err = otlploghttp.New(ctx, httpOpts...)
		} else {
			var grpcOpts []otlploggrpc.Option
			if cfg.Endpoint != "" {
				grpcOpts = append(grpcOpts, otlploggrpc.WithEndpoint(cfg.Endpoint))
			}
			if cfg.Insecure {
				grpcOpts = append(grpcOpts, otlploggrpc.WithInsecure())
			}
			exporter, err = otlploggrpc.New(ctx, grpcOpts...)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create log exporter: %w", err)
		}
		opts = append(opts, sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)))
	}

	return sdklog.NewLoggerProvider(opts...), nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
