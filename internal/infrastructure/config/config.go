package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all client configuration.
type Config struct {
	Transport TransportConfig
	Codecs    CodecConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Breaker   BreakerConfig
	Tracing   TracingConfig
}

// TransportConfig holds defaults passed to the transport on every request.
type TransportConfig struct {
	Timeout         time.Duration `envconfig:"COURIER_TIMEOUT" default:"30s"`
	RetryCount      int           `envconfig:"COURIER_RETRY_COUNT" default:"3"`
	RetryWaitMin    time.Duration `envconfig:"COURIER_RETRY_WAIT_MIN" default:"1s"`
	RetryWaitMax    time.Duration `envconfig:"COURIER_RETRY_WAIT_MAX" default:"30s"`
	UserAgent       string        `envconfig:"COURIER_USER_AGENT" default:"courier/1.0"`
	FollowRedirects bool          `envconfig:"COURIER_FOLLOW_REDIRECTS" default:"false"`
	MaxRedirects    int           `envconfig:"COURIER_MAX_REDIRECTS" default:"25"`
	VerifyTLS       bool          `envconfig:"COURIER_VERIFY_TLS" default:"true"`
	Proxy           string        `envconfig:"COURIER_PROXY"`
}

// CodecConfig holds response handling switches.
type CodecConfig struct {
	Extended      bool `envconfig:"COURIER_EXTENDED_CODECS" default:"true"`
	Sniff         bool `envconfig:"COURIER_SNIFF" default:"false"`
	TranscodeUTF8 bool `envconfig:"COURIER_TRANSCODE_UTF8" default:"false"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"COURIER_LOG_LEVEL" default:"warn"`
	Development bool   `envconfig:"COURIER_LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration. Zero RPS is unlimited.
type RateLimitConfig struct {
	RequestsPerSecond float64 `envconfig:"COURIER_RATE_LIMIT_RPS" default:"0"`
	Burst             int     `envconfig:"COURIER_RATE_LIMIT_BURST" default:"1"`
}

// BreakerConfig holds circuit breaker configuration.
type BreakerConfig struct {
	Enabled             bool          `envconfig:"COURIER_BREAKER_ENABLED" default:"true"`
	ConsecutiveFailures uint32        `envconfig:"COURIER_BREAKER_FAILURES" default:"10"`
	Timeout             time.Duration `envconfig:"COURIER_BREAKER_TIMEOUT" default:"30s"`
}

// TracingConfig holds request tracing configuration.
type TracingConfig struct {
	Enabled bool `envconfig:"COURIER_TRACING" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Transport: TransportConfig{
			Timeout:         30 * time.Second,
			RetryCount:      3,
			RetryWaitMin:    time.Second,
			RetryWaitMax:    30 * time.Second,
			UserAgent:       "courier/1.0",
			FollowRedirects: false,
			MaxRedirects:    25,
			VerifyTLS:       true,
		},
		Codecs: CodecConfig{
			Extended: true,
		},
		Logging: LogConfig{
			Level:       "warn",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 0,
			Burst:             1,
		},
		Breaker: BreakerConfig{
			Enabled:             true,
			ConsecutiveFailures: 10,
			Timeout:             30 * time.Second,
		},
		Tracing: TracingConfig{
			Enabled: false,
		},
	}
}
