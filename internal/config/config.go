// Package config provides configuration loading and management for the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/yourorg/agent-gdp/internal/model"
	"github.com/yourorg/agent-gdp/internal/series"
)

// Config holds all application configuration
type Config struct {
	// HTTP server port
	Port string

	// Logging setup (LOG_LEVEL, LOG_FORMAT)
	LogLevel  string
	LogFormat string

	// OpenTelemetry endpoint for observability
	OtelEndpoint string

	// Per-request deadline for rendering
	RequestTimeout time.Duration

	// Token bucket for incoming requests; zero RPS disables limiting
	RateLimitRPS   float64
	RateLimitBurst int

	EnableMetrics    bool
	EnableValidation bool

	// Seed pins every page load to the same series when HasSeed is set
	Seed    uint64
	HasSeed bool

	// Random walk tuning
	Series series.Params
}

// LoadDotEnv loads variables from .env style files without overriding the environment.
// Missing files are ignored.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			logrus.Warnf("Failed to load %s: %v", p, err)
		}
	}
}

// Load creates a new Config from environment variables
func Load() Config {
	LoadDotEnv()

	defaults := series.DefaultParams()
	params := series.Params{
		Start:      GetEnvAsDate("START_DATE", defaults.Start),
		StartGDP:   GetEnvAsFloat("START_GDP", defaults.StartGDP),
		Weeks:      GetEnvAsInt("WEEKS", defaults.Weeks),
		GrowthMin:  GetEnvAsFloat("GROWTH_MIN", defaults.GrowthMin),
		GrowthMax:  GetEnvAsFloat("GROWTH_MAX", defaults.GrowthMax),
		TVLRatio:   GetEnvAsFloat("TVL_RATIO", defaults.TVLRatio),
		TVLNoise:   GetEnvAsFloat("TVL_NOISE", defaults.TVLNoise),
		TxBase:     defaults.TxBase,
		TxSpan:     defaults.TxSpan,
		AgentsBase: defaults.AgentsBase,
		AgentsSpan: defaults.AgentsSpan,
		AgentsStep: GetEnvAsInt("AGENTS_STEP", defaults.AgentsStep),
	}

	seed, hasSeed := GetEnvAsUint64("SEED")

	return Config{
		Port:             GetEnvOrDefault("PORT", "8080"),
		LogLevel:         strings.ToLower(GetEnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:        strings.ToLower(GetEnvOrDefault("LOG_FORMAT", "text")),
		OtelEndpoint:     GetEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		RequestTimeout:   GetEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
		RateLimitRPS:     GetEnvAsFloat("RATE_LIMIT_RPS", 20.0),
		RateLimitBurst:   GetEnvAsInt("RATE_LIMIT_BURST", 40),
		EnableMetrics:    GetEnvAsBool("ENABLE_METRICS", true),
		EnableValidation: GetEnvAsBool("ENABLE_VALIDATION", true),
		Seed:             seed,
		HasSeed:          hasSeed,
		Series:           params,
	}
}

// Validate checks the loaded configuration for values the server cannot run with.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return errors.New("rate limit settings must not be negative")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if err := c.Series.Validate(); err != nil {
		return fmt.Errorf("series parameters: %w", err)
	}
	return nil
}

// GetEnv retrieves an environment variable and whether it exists
func GetEnv(key string) (string, bool) {
	value, exists := os.LookupEnv(key)
	return value, exists
}

// GetEnvOrDefault retrieves an environment variable or returns the default value if not set
func GetEnvOrDefault(key, defaultValue string) string {
	if value, exists := GetEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt retrieves an environment variable as an integer with a default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value, exists := GetEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		logrus.Warnf("Invalid integer in %s, using default: %v", key, defaultValue)
	}
	return defaultValue
}

// GetEnvAsUint64 retrieves an environment variable as an unsigned integer and whether it was set and valid
func GetEnvAsUint64(key string) (uint64, bool) {
	value, exists := GetEnv(key)
	if !exists || value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		logrus.Warnf("Invalid unsigned integer in %s: %v, ignoring", key, err)
		return 0, false
	}
	return parsed, true
}

// GetEnvAsFloat retrieves an environment variable as a float with a default value
func GetEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := GetEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
		logrus.Warnf("Invalid float in %s, using default: %v", key, defaultValue)
	}
	return defaultValue
}

// GetEnvAsBool retrieves an environment variable as a boolean with a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := GetEnv(key); exists {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
		logrus.Warnf("Invalid boolean in %s, using default: %v", key, defaultValue)
	}
	return defaultValue
}

// GetEnvAsDuration retrieves an environment variable as a duration with a default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := GetEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		logrus.Warnf("Invalid duration in %s, using default: %v", key, defaultValue)
	}
	return defaultValue
}

// GetEnvAsDate retrieves an environment variable as an ISO date (UTC) with a default value
func GetEnvAsDate(key string, defaultValue time.Time) time.Time {
	if value, exists := GetEnv(key); exists {
		if date, err := time.Parse(model.DateLayout, value); err == nil {
			return date
		}
		logrus.Warnf("Invalid date in %s, using default: %v", key, defaultValue.Format(model.DateLayout))
	}
	return defaultValue
}
