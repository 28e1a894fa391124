package config

import (
	"os"
	"strconv"
	"strings"

	"go.uber.org/fx"
)

// DatabaseConfig selects the gorm driver and its DSN.
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// TracingConfig controls the OTLP exporter.
type TracingConfig struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	SamplingRatio    float64
}

// BootstrapConfig controls startup seeding. Organizations are provisioned by
// the surrounding platform; OrgID names the org that receives the starter
// catalog on first boot.
type BootstrapConfig struct {
	SeedSystemTemplates bool
	OrgID               int64
}

// Config is the full service configuration, read once at startup.
type Config struct {
	ServiceName string
	Version     string
	Environment string
	HTTPAddr    string
	Database    DatabaseConfig
	Tracing     TracingConfig
	Bootstrap   BootstrapConfig
}

// IsProduction reports whether the service runs with production hardening.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Default returns the local development configuration.
func Default() Config {
	return Config{
		ServiceName: "paperpress",
		Version:     "dev",
		Environment: "development",
		HTTPAddr:    ":8080",
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "file:paperpress.db?cache=shared",
		},
		Tracing: TracingConfig{
			Enabled:          false,
			ExporterProtocol: "grpc",
			SamplingRatio:    0.1,
		},
		Bootstrap: BootstrapConfig{
			SeedSystemTemplates: true,
			OrgID:               1,
		},
	}
}

// FromEnv overlays environment variables onto the defaults.
func FromEnv() Config {
	cfg := Default()
	cfg.ServiceName = envString("PAPERPRESS_SERVICE_NAME", cfg.ServiceName)
	cfg.Version = envString("PAPERPRESS_VERSION", cfg.Version)
	cfg.Environment = envString("PAPERPRESS_ENVIRONMENT", cfg.Environment)
	cfg.HTTPAddr = envString("PAPERPRESS_HTTP_ADDR", cfg.HTTPAddr)
	cfg.Database.Driver = envString("PAPERPRESS_DB_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = envString("PAPERPRESS_DB_DSN", cfg.Database.DSN)
	cfg.Tracing.Enabled = envBool("PAPERPRESS_TRACING_ENABLED", cfg.Tracing.Enabled)
	cfg.Tracing.ExporterEndpoint = envString("PAPERPRESS_TRACING_ENDPOINT", cfg.Tracing.ExporterEndpoint)
	cfg.Tracing.ExporterProtocol = envString("PAPERPRESS_TRACING_PROTOCOL", cfg.Tracing.ExporterProtocol)
	cfg.Tracing.SamplingRatio = envFloat("PAPERPRESS_TRACING_SAMPLING_RATIO", cfg.Tracing.SamplingRatio)
	cfg.Bootstrap.SeedSystemTemplates = envBool("PAPERPRESS_SEED_SYSTEM_TEMPLATES", cfg.Bootstrap.SeedSystemTemplates)
	cfg.Bootstrap.OrgID = envInt64("PAPERPRESS_BOOTSTRAP_ORG_ID", cfg.Bootstrap.OrgID)
	return cfg
}

func envString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envInt64(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

func envFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

// Module provides the configuration to the fx graph.
var Module = fx.Module("config",
	fx.Provide(FromEnv),
)
