// Package config provides centralized configuration management for the
// service. It loads settings from environment variables with sensible
// defaults and validates everything on startup to fail fast on
// misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Upload   UploadConfig
	Profile  ProfileConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// StorageConfig holds dataset storage settings.
type StorageConfig struct {
	// Backend selects the dataset store: "local" or "s3" (default: local)
	Backend string `env:"STORAGE_BACKEND" default:"local"`

	// DataDir is the directory for the local backend (default: ./data)
	DataDir string `env:"STORAGE_DATA_DIR" envAlt:"MEDIA_ROOT" default:"./data"`

	// S3Bucket is the bucket name, required for the s3 backend
	S3Bucket string `env:"STORAGE_S3_BUCKET"`

	// S3Region is the bucket region (default: us-east-1)
	S3Region string `env:"STORAGE_S3_REGION" default:"us-east-1"`

	// S3Prefix is the object key prefix for stored datasets (default: datasets)
	S3Prefix string `env:"STORAGE_S3_PREFIX" default:"datasets"`

	// S3AccessKeyID optionally pins static credentials; when empty the
	// default AWS credential chain is used
	S3AccessKeyID string `env:"STORAGE_S3_ACCESS_KEY_ID"`

	// S3SecretAccessKey pairs with S3AccessKeyID
	S3SecretAccessKey string `env:"STORAGE_S3_SECRET_ACCESS_KEY"`
}

// UploadConfig holds CSV upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed upload size in bytes (default: 100MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"104857600"`
}

// ProfileConfig holds profiling engine settings.
type ProfileConfig struct {
	// DuplicateSampleSize is the number of duplicated rows returned in the
	// duplicates report sample (default: 5)
	DuplicateSampleSize int `env:"PROFILE_DUPLICATE_SAMPLE_SIZE" default:"5"`
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the per-IP rate limit (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
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
	return c.Host + ":" + strconv.Itoa(c.Port)
}
