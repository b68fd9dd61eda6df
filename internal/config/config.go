package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Catalog CatalogConfig
	DB      DBConfig
}

// Load reads the STOREFRONT_* environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env       string `envconfig:"STOREFRONT_APP_ENV" default:"dev" validate:"oneof=dev staging prod"`
	Port      int    `envconfig:"STOREFRONT_APP_PORT" default:"8080" validate:"gt=0,lte=65535"`
	LogLevel  string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"STOREFRONT_LOG_FORMAT" default:"json" validate:"oneof=json console"`
}

type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `envconfig:"STOREFRONT_HTTP_READ_HEADER_TIMEOUT" default:"5s"`
	ReadTimeout       time.Duration `envconfig:"STOREFRONT_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout      time.Duration `envconfig:"STOREFRONT_HTTP_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout       time.Duration `envconfig:"STOREFRONT_HTTP_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout   time.Duration `envconfig:"STOREFRONT_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

type CatalogConfig struct {
	BaseURL string        `envconfig:"STOREFRONT_CATALOG_BASE_URL" default:"https://fakestoreapi.com" validate:"required,url"`
	Timeout time.Duration `envconfig:"STOREFRONT_CATALOG_TIMEOUT" default:"10s" validate:"gt=0"`
}

// DBConfig is optional; without a DSN checkout is disabled.
type DBConfig struct {
	DSN      string `envconfig:"STOREFRONT_DB_DSN"`
	MaxConns int32  `envconfig:"STOREFRONT_DB_MAX_CONNS" default:"10" validate:"gt=0"`
}

func (d DBConfig) Enabled() bool {
	return strings.TrimSpace(d.DSN) != ""
}
