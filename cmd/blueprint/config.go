package main

import (
	"github.com/dmitrymomot/blueprint/pkg/httpserver"
	"github.com/dmitrymomot/blueprint/pkg/logger"
)

// envPrefix namespaces every variable read by AppConfig.
const envPrefix = "BLUEPRINT_"

// AppConfig holds the settings shared by all commands.
type AppConfig struct {
	Environment string        `env:"ENV" envDefault:"development"`
	ServiceName string        `env:"SERVICE_NAME" envDefault:"blueprint" validate:"required"`
	LogLevel    string        `env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	LogFormat   logger.Format `env:"LOG_FORMAT" validate:"omitempty,oneof=json text"`

	BlueprintsDir   string `env:"BLUEPRINTS_DIR" envDefault:"blueprints" validate:"required"`
	TranslationsDir string `env:"TRANSLATIONS_DIR"`
	SiteConfig      string `env:"SITE_CONFIG"`
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en" validate:"required"`
	MaxDepth        int    `env:"MAX_DEPTH" validate:"gte=0"`
	MaxBodySize     int64  `env:"MAX_BODY_SIZE" envDefault:"10485760" validate:"gt=0"`

	// TrustedProxyHeaders name the headers the client address is read from.
	// Set it empty when the API is exposed directly.
	TrustedProxyHeaders []string `env:"TRUSTED_PROXY_HEADERS" envDefault:"CF-Connecting-IP,X-Forwarded-For,X-Real-IP"`

	Watch   bool `env:"WATCH" envDefault:"false"`
	Metrics bool `env:"METRICS" envDefault:"true"`

	HTTP httpserver.Config
}
