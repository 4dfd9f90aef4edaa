// Package config provides centralized configuration for the price-list tool.
// Settings come from environment variables (optionally seeded from a .env file)
// with defaults, and are validated on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Row error policies for CatalogConfig.RowPolicy.
const (
	RowPolicySkip = "skip"
	RowPolicyFail = "fail"
)

// Config holds all application configuration.
type Config struct {
	Catalog CatalogConfig
	Report  ReportConfig
	Server  ServerConfig
	Logging LoggingConfig
}

// CatalogConfig controls discovery and ingestion of price-list files.
type CatalogConfig struct {
	// Directory is scanned (non-recursively) for price-list files (default: .)
	Directory string `env:"PRICE_DIR" envAlt:"PRICE_DIRECTORY" default:"."`

	// RowPolicy decides what happens to a row whose price or weight is not a number:
	// "skip" drops the row, "fail" drops the whole file (default: skip)
	RowPolicy string `env:"ROW_ERROR_POLICY" default:"skip"`

	// MaxFileSize is the largest candidate file ingested, in bytes (default: 100MB)
	MaxFileSize int64 `env:"PRICE_MAX_FILE_SIZE" default:"104857600"`
}

// ReportConfig holds static report settings.
type ReportConfig struct {
	// Path is where the HTML report is written on exit (default: output.html)
	Path string `env:"REPORT_PATH" default:"output.html"`

	// Title is the document title of the report
	Title string `env:"REPORT_TITLE" default:"Позиции продуктов"`
}

// ServerConfig holds settings for the optional HTTP query surface.
type ServerConfig struct {
	// Enabled serves queries over HTTP instead of the interactive console (default: false)
	Enabled bool `env:"SERVER_ENABLED" default:"false"`

	Host string `env:"SERVER_HOST" default:"127.0.0.1"`
	Port int    `env:"SERVER_PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`

	// AllowedOrigins is a comma-separated CORS allow list; empty disables CORS
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
