// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and the environment.
// - External errors are wrapped with this package's sentinels.
package config

import (
	"path/filepath"
	"time"

	"github.com/okian/indiacovid/internal/adapters/repository"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address. The dashboard binds all
	// interfaces on a fixed port by default.
	Addr string `koanf:"addr" validate:"required,hostname_port"`

	// DataDir is prepended to relative dataset file names.
	DataDir string `koanf:"data_dir"`

	// Dataset file names.
	AgeFile        string `koanf:"age_file" validate:"required"`
	StateFile      string `koanf:"state_file" validate:"required"`
	IndividualFile string `koanf:"individual_file" validate:"required"`

	// SeriesMode picks how the state time series becomes one line:
	// "aggregate" sums per date, "rows" plots every row.
	SeriesMode string `koanf:"series_mode" validate:"oneof=aggregate rows"`

	// Title overrides the page header.
	Title string `koanf:"title" validate:"max=120"`

	// MetricsEnabled toggles Prometheus recording.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace is the first segment of every metric name.
	MetricsNamespace string `koanf:"metrics_namespace" validate:"required,metric_name"`

	// MetricsRefreshInterval paces the runtime gauges (memory, goroutines, GC).
	MetricsRefreshInterval time.Duration `koanf:"metrics_refresh_interval" validate:"min=1s"`

	// MetricsBuckets are the latency histogram bounds in milliseconds,
	// strictly increasing. Empty keeps the Prometheus defaults.
	MetricsBuckets []float64 `koanf:"metrics_buckets" validate:"omitempty,dive,gt=0"`

	// MetricsLabels are constant labels added to every series.
	MetricsLabels map[string]string `koanf:"metrics_labels" validate:"omitempty,dive,keys,metric_name,endkeys"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           "0.0.0.0:8080",
		DataDir:        "data",
		AgeFile:        "AgeGroupDetails.csv",
		StateFile:      "covid_19_india.csv",
		IndividualFile: "IndividualDetails.csv",
		SeriesMode:     "aggregate",
		Title:          "Corona Virus - India's Perspective",
		MetricsEnabled: true,

		MetricsNamespace:       "indiacovid",
		MetricsRefreshInterval: 10 * time.Second,
	}
}

// Sources resolves the dataset paths against DataDir.
func (c *Config) Sources() repository.Sources {
	return repository.Sources{
		Age:         c.resolve(c.AgeFile),
		States:      c.resolve(c.StateFile),
		Individuals: c.resolve(c.IndividualFile),
	}
}

func (c *Config) resolve(name string) string {
	if name == "" || c.DataDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}
