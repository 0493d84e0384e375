// Package config provides application configuration loading from environment variables and .env files.
// It uses viper for flexible configuration management with sensible defaults.
package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all application configuration loaded from environment variables or .env file.
// Configuration priority: environment variables > .env file > defaults.
type Config struct {
	AppEnv         string        // Application environment (dev, staging, prod)
	HTTPAddr       string        // HTTP server bind address (e.g., ":8080")
	MetricsAddr    string        // Metrics server bind address
	ModelPath      string        // Path of the serialized churn model artifact
	LogLevel       string        // zerolog level name
	LogFormat      string        // console or json
	RateLimitPerIP int           // Predictions per minute per client IP (0 disables)
	RequestTimeout time.Duration // Per-request deadline
	TrustProxy     bool          // Take client IPs from X-Forwarded-For/X-Real-IP; only behind a trusted proxy
}

// setConfigDefaults sets default values for all configuration options.
func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_HTTP_ADDR", ":8080")
	v.SetDefault("METRICS_ADDR", ":9090")
	v.SetDefault("MODEL_PATH", "models/churn_model.json")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("RATE_LIMIT_PER_IP", 60)
	v.SetDefault("REQUEST_TIMEOUT", "5s")
	v.SetDefault("TRUST_PROXY", false)
}

// Load reads configuration from environment variables and .env file (if present).
// Environment variables take precedence over .env file values.
// Use Validate() to check the result before starting the server.
func Load() (*Config, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigFile(".env") // Optional; silently ignored if file doesn't exist
	_ = viperInstance.ReadInConfig()    // Ignore error - .env is optional
	viperInstance.AutomaticEnv()        // Read from environment variables

	setConfigDefaults(viperInstance)

	return &Config{
		AppEnv:         viperInstance.GetString("APP_ENV"),
		HTTPAddr:       viperInstance.GetString("APP_HTTP_ADDR"),
		MetricsAddr:    viperInstance.GetString("METRICS_ADDR"),
		ModelPath:      viperInstance.GetString("MODEL_PATH"),
		LogLevel:       viperInstance.GetString("LOG_LEVEL"),
		LogFormat:      viperInstance.GetString("LOG_FORMAT"),
		RateLimitPerIP: viperInstance.GetInt("RATE_LIMIT_PER_IP"),
		RequestTimeout: viperInstance.GetDuration("REQUEST_TIMEOUT"),
		TrustProxy:     viperInstance.GetBool("TRUST_PROXY"),
	}, nil
}

// ValidationError represents a configuration validation error with details about what failed.
type ValidationError struct {
	Field   string // Name of the configuration field
	Message string // Human-readable error message
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation failed [%s]: %s", e.Field, e.Message)
}

// Validate checks the configuration at startup so misconfiguration fails fast.
//
// Validation Rules:
//  1. HTTPAddr and MetricsAddr must be non-empty
//  2. ModelPath must be non-empty
//  3. LogLevel must be a zerolog level name
//  4. LogFormat must be "console" or "json"
//  5. RateLimitPerIP must not be negative
//  6. RequestTimeout must be positive
//
// In production (AppEnv "prod" or "production") LogFormat must be "json".
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return ValidationError{Field: "APP_HTTP_ADDR", Message: "HTTP server address cannot be empty"}
	}
	if c.MetricsAddr == "" {
		return ValidationError{Field: "METRICS_ADDR", Message: "metrics server address cannot be empty"}
	}
	if c.ModelPath == "" {
		return ValidationError{Field: "MODEL_PATH", Message: "model artifact path cannot be empty"}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return ValidationError{Field: "LOG_LEVEL", Message: fmt.Sprintf("unknown log level '%s'", c.LogLevel)}
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return ValidationError{
			Field:   "LOG_FORMAT",
			Message: fmt.Sprintf("must be 'console' or 'json', got '%s'", c.LogFormat),
		}
	}
	if c.RateLimitPerIP < 0 {
		return ValidationError{Field: "RATE_LIMIT_PER_IP", Message: "rate limit cannot be negative"}
	}
	if c.RequestTimeout <= 0 {
		return ValidationError{Field: "REQUEST_TIMEOUT", Message: "request timeout must be positive"}
	}

	if c.IsProduction() && c.LogFormat != "json" {
		return ValidationError{Field: "LOG_FORMAT", Message: "json log format is required in production"}
	}

	return nil
}

// IsProduction reports whether AppEnv names a production deployment.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}
