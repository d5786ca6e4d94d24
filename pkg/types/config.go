// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"time"

	"github.com/spf13/viper"
)

// HTTPConfig holds shared HTTP settings used by the network-calling adapters.
type HTTPConfig struct {
	// Timeout bounds a whole adapter fetch, retries included.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `mapstructure:"user_agent" json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retries on HTTP 429 (0 disables retrying).
	MaxRetries int `mapstructure:"max_retries" json:"max_retries" yaml:"max_retries"`

	// RateLimit is the sustained requests per second allowed per source.
	RateLimit float64 `mapstructure:"rate_limit" json:"rate_limit" yaml:"rate_limit"`
}

// SearchConfig holds settings for the search pipeline.
type SearchConfig struct {
	HTTPConfig `mapstructure:",squash" yaml:",inline"`

	// Sources are the source identifiers enabled by default.
	Sources []string `mapstructure:"sources" json:"sources" yaml:"sources"`

	// Limit is the default per-source result count (default 10).
	Limit int `mapstructure:"limit" json:"limit" yaml:"limit"`

	// AutoKeywords is how many extracted keywords are folded into the query
	// when the caller selects none (default 2).
	AutoKeywords int `mapstructure:"auto_keywords" json:"auto_keywords" yaml:"auto_keywords"`

	// Dedupe merges records sharing a normalized title or URL before ranking.
	Dedupe bool `mapstructure:"dedupe" json:"dedupe" yaml:"dedupe"`

	// InterBackendDelay staggers the launch of consecutive source fetches.
	InterBackendDelay time.Duration `mapstructure:"inter_backend_delay" json:"inter_backend_delay" yaml:"inter_backend_delay"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `mapstructure:"semantic_scholar_api_key" json:"-" yaml:"-"`

	// OpenAlexEmail is sent as mailto for OpenAlex polite pool access.
	OpenAlexEmail string `mapstructure:"openalex_email" json:"-" yaml:"-"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `mapstructure:"level" json:"level" yaml:"level"`

	// Format is json or console.
	Format string `mapstructure:"format" json:"format" yaml:"format"`

	// Output is stdout or stderr.
	Output string `mapstructure:"output" json:"output" yaml:"output"`
}

// LibraryConfig holds settings for the saved-paper library.
type LibraryConfig struct {
	// Path is the SQLite database file.
	Path string `mapstructure:"path" json:"path" yaml:"path"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Address         string        `mapstructure:"address" json:"address" yaml:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" json:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Config groups all settings.
type Config struct {
	Search  SearchConfig  `mapstructure:"search" json:"search" yaml:"search"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging" yaml:"logging"`
	Library LibraryConfig `mapstructure:"library" json:"library" yaml:"library"`
	Server  ServerConfig  `mapstructure:"server" json:"server" yaml:"server"`
}

// SetDefaults registers default values for every config key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("search.sources", DefaultSources)
	v.SetDefault("search.limit", 10)
	v.SetDefault("search.auto_keywords", 2)
	v.SetDefault("search.dedupe", false)
	v.SetDefault("search.inter_backend_delay", time.Duration(0))
	v.SetDefault("search.timeout", 10*time.Second)
	v.SetDefault("search.user_agent", "paper-finder/0.1")
	v.SetDefault("search.max_retries", 2)
	v.SetDefault("search.rate_limit", 1.0)
	v.SetDefault("search.semantic_scholar_api_key", "")
	v.SetDefault("search.openalex_email", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("library.path", "paper-finder.db")

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// LoadConfig unmarshals v into a Config.
func LoadConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
