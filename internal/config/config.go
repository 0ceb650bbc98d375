// Package config loads the storefront API configuration.
package config

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

const defaultAddr = "0.0.0.0:8080"

// Config holds the complete application configuration, loadable from
// environment variables (SHOP_ prefix), flags, or YAML config files.
type Config struct {
	Addr     string `default:"0.0.0.0:8080" usage:"API server listen address"`
	Debug    bool   `default:"false" usage:"Expose raw error text in error responses"`
	Database DatabaseConfig
	Auth     AuthConfig
	Logger   LoggerConfig
	CORS     CORSConfig
	Orders   OrdersConfig
	Admin    AdminConfig
	Graceful GracefulConfig
}

// DatabaseConfig controls the MySQL connection pool.
type DatabaseConfig struct {
	DSN             string        `usage:"MySQL DSN (SHOP_DATABASE_DSN or DATABASE_DSN)" flag:"database-dsn"`
	MaxOpenConns    int           `default:"25" usage:"Max open connections"`
	MaxIdleConns    int           `default:"25" usage:"Max idle connections"`
	ConnMaxLifetime time.Duration `default:"5m" usage:"Max lifetime of a pooled connection"`
	Migrate         bool          `default:"false" usage:"Apply the embedded schema on startup"`
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET" usage:"HMAC secret for signing access tokens" flag:"jwt-secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" default:"72h" usage:"Access token lifetime" flag:"token-ttl"`
}

// LoggerConfig mirrors the zap builder options.
type LoggerConfig struct {
	Level             string `default:"info" usage:"Log level (debug, info, warn, error)"`
	Encoding          string `default:"json" usage:"Log encoding (json or console)"`
	Development       bool   `default:"false" usage:"Development logger"`
	DisableCaller     bool   `default:"false" usage:"Omit caller from log lines"`
	DisableStacktrace bool   `default:"false" usage:"Omit stack traces from error logs"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"http://localhost:5173" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"true" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// OrdersConfig tunes the order workflow.
type OrdersConfig struct {
	DefaultPaymentMethod string `env:"DEFAULT_PAYMENT_METHOD" default:"cash" usage:"Payment method recorded when the request omits one"`
	TrustClientPrices    bool   `env:"TRUST_CLIENT_PRICES" default:"false" usage:"Keep client-supplied unit prices instead of catalog prices"`
}

type AdminConfig struct {
	LowStockThreshold int `default:"5" usage:"Stock level counted as low on the dashboard"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// Load reads configuration from environment variables and YAML config files,
// then applies platform defaults and validates required fields.
func Load() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SHOP",
		SkipFlags: true,
		Files:     []string{"config.yaml", "/etc/storefront/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks fields that have no usable default.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database DSN is required: set SHOP_DATABASE_DSN or DATABASE_DSN")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT secret is required: set SHOP_AUTH_JWT_SECRET or JWT_SECRET")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.Errorf("token TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	return nil
}

// applyPlatformDefaults maps unprefixed variables used by hosting platforms
// and the legacy .env layout onto the SHOP_ configuration.
func (c *Config) applyPlatformDefaults() {
	if c.Database.DSN == "" {
		if v := os.Getenv("DATABASE_DSN"); v != "" {
			c.Database.DSN = v
		}
	}
	if c.Auth.JWTSecret == "" {
		if v := os.Getenv("JWT_SECRET"); v != "" {
			c.Auth.JWTSecret = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == defaultAddr {
		c.Addr = "0.0.0.0:" + port
	}
}
