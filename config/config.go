package config

import (
	"fmt"
	"strings"
	"time"

	"invoicepay/utils"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	Env               string        `mapstructure:"ENV"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`
	RequestTimeout    time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	// Checkout provider.
	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY"`

	// Record store, reached with the service-level credential.
	DatabaseURL         string `mapstructure:"DATABASE_URL"`
	DatabaseName        string `mapstructure:"DATABASE_NAME"`
	DatabaseServiceUser string `mapstructure:"DATABASE_SERVICE_USER"`
	DatabaseServiceKey  string `mapstructure:"DATABASE_SERVICE_KEY"`

	// Redis configuration. An empty address disables the invoice cache.
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int           `mapstructure:"REDIS_CACHE_DB"`
	InvoiceCacheTTL time.Duration `mapstructure:"INVOICE_CACHE_TTL"`

	// Redirect targets for the hosted checkout page.
	PublicBaseURL  string `mapstructure:"PUBLIC_BASE_URL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
}

// Load reads config.yaml (current dir or ./config) when present and overlays
// environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("REQUEST_TIMEOUT", "15s")
	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_NAME", "invoicepay")
	v.SetDefault("DATABASE_SERVICE_USER", "service")
	v.SetDefault("DATABASE_SERVICE_KEY", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("INVOICE_CACHE_TTL", "5m")
	v.SetDefault("PUBLIC_BASE_URL", "")
	v.SetDefault("ALLOWED_ORIGINS", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Validate fails with a configuration error naming every missing secret.
func (c *Config) Validate() error {
	var missing []string
	if c.StripeSecretKey == "" {
		missing = append(missing, "STRIPE_SECRET_KEY")
	}
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.DatabaseServiceKey == "" {
		missing = append(missing, "DATABASE_SERVICE_KEY")
	}
	if len(missing) > 0 {
		return utils.ConfigurationError(strings.Join(missing, ", ") + " is not set")
	}
	if c.MaxRequestsPerMin <= 0 {
		return utils.ConfigurationError("MAX_REQUESTS_PER_MIN must be positive")
	}
	return nil
}

// Origins returns the redirect-origin allow-list. Empty means any origin.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
