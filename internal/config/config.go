// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load layers a YAML file and environment variables on top of New().
// - External errors are wrapped with this package's sentinel kinds.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// AllowedOrigins lists host applications allowed to embed the dashboard.
	AllowedOrigins []string `koanf:"allowed_origins"`

	// MaxChartPoints caps the series length accepted by the chart endpoints.
	MaxChartPoints int `koanf:"max_chart_points"`

	// PageTitle is the document title of the full page.
	PageTitle string `koanf:"page_title"`

	// FederationName is the remote name announced to host applications.
	FederationName string `koanf:"federation_name"`

	// RemoteEntry is the path of the remote entry advertised in the manifest.
	RemoteEntry string `koanf:"remote_entry"`

	// ExposedModule is the module key under which the dashboard is exposed.
	ExposedModule string `koanf:"exposed_module"`

	// MetricsEnabled switches Prometheus recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace and MetricsSubsystem form the metric name prefix.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsRefreshInterval is how often runtime gauges are sampled.
	MetricsRefreshInterval time.Duration `koanf:"metrics_refresh_interval"`

	// MetricsLatencyBuckets overrides the millisecond latency buckets.
	MetricsLatencyBuckets []float64 `koanf:"metrics_latency_buckets"`

	// MetricsLabels are constant labels added to every series.
	MetricsLabels map[string]string `koanf:"metrics_labels"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		AllowedOrigins: []string{"*"},
		MaxChartPoints: 500,
		PageTitle:      "Recruitment Dashboard",
		FederationName: "recruitment-remote",
		RemoteEntry:    "/fragments/recruitment-home",
		ExposedModule:  "./RecruitmentHome",

		MetricsEnabled:         true,
		MetricsNamespace:       "recruit",
		MetricsSubsystem:       "dashboard",
		MetricsRefreshInterval: 10 * time.Second,
	}
}
