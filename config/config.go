package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/plateful/pricing-service/internal/catalog"
	"github.com/plateful/pricing-service/internal/optimizer"
	"github.com/plateful/pricing-service/internal/pricing"
)

// Config holds the application configuration
type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Catalog   CatalogConfig    `mapstructure:"catalog"`
	RateLimit RateLimitConfig  `mapstructure:"rate_limit"`
	Pricing   pricing.Config   `mapstructure:"pricing"`
	Optimizer optimizer.Config `mapstructure:"optimizer"`
	Logging   LoggingConfig    `mapstructure:"logging"`
	Telemetry TelemetryConfig  `mapstructure:"telemetry"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port          int           `mapstructure:"port"`
	Host          string        `mapstructure:"host"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	InternalToken string        `mapstructure:"internal_token"`
}

// CatalogConfig holds the external grocery catalog API configuration
type CatalogConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	TokenURL          string        `mapstructure:"token_url"`
	ClientID          string        `mapstructure:"client_id"`
	ClientSecret      string        `mapstructure:"client_secret"`
	Scope             string        `mapstructure:"scope"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxRetries        int           `mapstructure:"max_retries"`
	InitialBackoffMs  int           `mapstructure:"initial_backoff_ms"`
	MaxBackoffMs      int           `mapstructure:"max_backoff_ms"`
	DefaultLocationID string        `mapstructure:"default_location_id"`
}

// RateLimitConfig holds inbound per-client rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond int `mapstructure:"requests_per_second"`
	Burst             int `mapstructure:"burst"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
	Endpoint    string `mapstructure:"endpoint"`
}

var globalConfig *Config

// Load loads the configuration from file, .env, and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// Load .env file
	if err := loadEnvFile(); err != nil {
		// .env is optional, log but don't fail
		log.Warn().Err(err).Msg("Warning: .env file not loaded")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvPrefix("PRICING_SERVICE")

	// Bind env keys for nested config
	bindEnvVars(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Pricing.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}
	if err := cfg.Optimizer.Validate(); err != nil {
		return nil, fmt.Errorf("invalid optimizer config: %w", err)
	}

	globalConfig = &cfg
	return &cfg, nil
}

// CatalogClientConfig converts the catalog section into the client's
// configuration type.
func (c *Config) CatalogClientConfig() catalog.ClientConfig {
	cc := catalog.DefaultClientConfig()
	cc.BaseURL = c.Catalog.BaseURL
	cc.TokenURL = c.Catalog.TokenURL
	cc.ClientID = c.Catalog.ClientID
	cc.ClientSecret = c.Catalog.ClientSecret
	if c.Catalog.Scope != "" {
		cc.Scope = c.Catalog.Scope
	}
	if c.Catalog.RequestTimeout > 0 {
		cc.RequestTimeout = c.Catalog.RequestTimeout
	}
	if c.Catalog.RequestsPerSecond > 0 {
		cc.RequestsPerSecond = c.Catalog.RequestsPerSecond
	}
	if c.Catalog.Burst > 0 {
		cc.Burst = c.Catalog.Burst
	}
	if c.Catalog.MaxRetries > 0 {
		cc.MaxRetries = c.Catalog.MaxRetries
	}
	if c.Catalog.InitialBackoffMs > 0 {
		cc.InitialBackoff = time.Duration(c.Catalog.InitialBackoffMs) * time.Millisecond
	}
	if c.Catalog.MaxBackoffMs > 0 {
		cc.MaxBackoff = time.Duration(c.Catalog.MaxBackoffMs) * time.Millisecond
	}
	return cc
}

// loadEnvFile loads .env file by parsing KEY=VALUE lines and setting them as environment variables
func loadEnvFile() error {
	envPaths := []string{
		".",
		"./config",
	}

	for _, path := range envPaths {
		envFile := fmt.Sprintf("%s/.env", path)
		if _, err := os.Stat(envFile); err == nil {
			if err := loadDotEnvFile(envFile); err == nil {
				return nil
			}
		}
	}
	return fmt.Errorf("no .env file found")
}

// loadDotEnvFile reads a .env file and sets environment variables
func loadDotEnvFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			// Remove quotes if present
			value = strings.Trim(value, "\"'")
			os.Setenv(key, value)
		}
	}
	return scanner.Err()
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.host", "HOST")
	v.BindEnv("server.internal_token", "INTERNAL_API_TOKEN")

	// Catalog credentials
	v.BindEnv("catalog.client_id", "CATALOG_CLIENT_ID")
	v.BindEnv("catalog.client_secret", "CATALOG_CLIENT_SECRET")
	v.BindEnv("catalog.base_url", "CATALOG_BASE_URL")
	v.BindEnv("catalog.token_url", "CATALOG_TOKEN_URL")
	v.BindEnv("catalog.default_location_id", "CATALOG_LOCATION_ID")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")

	// Telemetry
	v.BindEnv("telemetry.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	// Catalog defaults
	v.SetDefault("catalog.base_url", "https://api.kroger.com/v1")
	v.SetDefault("catalog.token_url", "https://api.kroger.com/v1/connect/oauth2/token")
	v.SetDefault("catalog.scope", "product.compact")
	v.SetDefault("catalog.request_timeout", 10*time.Second)
	v.SetDefault("catalog.requests_per_second", 5.0)
	v.SetDefault("catalog.burst", 10)
	v.SetDefault("catalog.max_retries", 3)
	v.SetDefault("catalog.initial_backoff_ms", 100)
	v.SetDefault("catalog.max_backoff_ms", 5000)

	// Inbound rate limit defaults
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)

	// Pricing defaults
	v.SetDefault("pricing.max_ingredients", 100)
	v.SetDefault("pricing.max_alternatives", 3)
	v.SetDefault("pricing.concurrency", 8)
	v.SetDefault("pricing.search_limit", 10)
	v.SetDefault("pricing.candidate_saturation", 20)

	// Optimizer defaults
	v.SetDefault("optimizer.max_ingredients", 100)
	v.SetDefault("optimizer.max_alternatives", 3)
	v.SetDefault("optimizer.travel_penalty_minutes", 10)
	v.SetDefault("optimizer.default_shopping_minutes", 20)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.no_color", false)

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "pricing-service")
}

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}
