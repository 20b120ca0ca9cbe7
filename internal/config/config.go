package config

import (
	"fmt"
	"time"

	"github.com/utafrali/storefront/internal/service"
	pkgconfig "github.com/utafrali/storefront/pkg/config"
	"github.com/utafrali/storefront/pkg/tracing"
)

// Config holds all configuration for the storefront server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Catalog data. An empty fixture path serves the embedded dataset.
	FixturePath string `env:"CATALOG_FIXTURE_PATH"`
	Seed        int64  `env:"CATALOG_SEED" envDefault:"1"`

	// Simulated latency of deferred catalog queries
	FetchAllDelay time.Duration `env:"CATALOG_FETCH_ALL_DELAY" envDefault:"500ms"`
	QueryDelay    time.Duration `env:"CATALOG_QUERY_DELAY" envDefault:"300ms"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	if c.FetchAllDelay < 0 || c.QueryDelay < 0 {
		return fmt.Errorf("catalog delays must not be negative")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	return nil
}

// Delays returns the deferred query latencies.
func (c *Config) Delays() service.Delays {
	return service.Delays{
		FetchAll: c.FetchAllDelay,
		Query:    c.QueryDelay,
	}
}

// Tracing returns the OpenTelemetry configuration for the given service name.
func (c *Config) Tracing(serviceName string) tracing.Config {
	cfg := tracing.DefaultConfig(serviceName)
	cfg.Environment = c.Environment
	cfg.Enabled = c.OTELEnabled
	cfg.OTLPEndpoint = c.OTELEndpoint
	cfg.SampleRate = c.OTELSampleRate
	return cfg
}
