package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/fx"

	"github.com/smallbiznis/paperpress/internal/config"
	"github.com/smallbiznis/paperpress/internal/observability/metrics"
	"github.com/smallbiznis/paperpress/internal/observability/tracing"
)

func newTracingConfig(cfg config.Config) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.Tracing.Enabled,
		ServiceName:      cfg.ServiceName,
		ServiceVersion:   cfg.Version,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.Tracing.ExporterEndpoint,
		ExporterProtocol: cfg.Tracing.ExporterProtocol,
		SamplingRatio:    cfg.Tracing.SamplingRatio,
	}
}

func newMetricsConfig(cfg config.Config) metrics.Config {
	return metrics.Config{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	}
}

func newMeterProvider() metric.MeterProvider {
	return otel.GetMeterProvider()
}

// Module wires tracing and metrics into the application.
var Module = fx.Module("observability",
	fx.Provide(
		newTracingConfig,
		newMetricsConfig,
		newMeterProvider,
		metrics.NewHTTPMetrics,
	),
	fx.Invoke(tracing.NewProvider),
	fx.Invoke(func(cfg metrics.Config) {
		metrics.RenderWithConfig(cfg)
	}),
)
