// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file and SUWEN_* env vars.
// - External errors are wrapped with this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log record encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":5545".
	Addr string `koanf:"addr"`

	// APIBaseURL is prefixed to every relative backend API path.
	APIBaseURL string `koanf:"api_base_url"`

	// Lang is sent as ?lang= on content endpoints.
	Lang string `koanf:"lang"`

	// HomeArticleLimit and HomeShortLimit bound the home page lists.
	HomeArticleLimit int `koanf:"home_article_limit"`
	HomeShortLimit   int `koanf:"home_short_limit"`

	// ListLimit bounds the article, short and tag listing pages.
	ListLimit int `koanf:"list_limit"`

	// OTelEndpoint is the OTLP/HTTP traces URL; empty disables span export.
	OTelEndpoint string `koanf:"otel_endpoint"`

	// ServiceName is reported as the OpenTelemetry service.name.
	ServiceName string `koanf:"service_name"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":5545",
		APIBaseURL:       "http://127.0.0.1:3000",
		Lang:             "zh-CN",
		HomeArticleLimit: 10,
		HomeShortLimit:   6,
		ListLimit:        100,
		ServiceName:      "suwen-web",
	}
}
