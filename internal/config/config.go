// Package config loads server settings from the environment, with optional
// .env support handled by the command layer.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the settings of the upload-handling server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// UploadDir receives uploaded source files.
	UploadDir string
	// ProcessedDir receives the two result workbooks per request.
	ProcessedDir string
	// MaxUploadMB caps the accepted upload size.
	MaxUploadMB int64
	// Retention is how long processed files are kept before the janitor
	// removes them. Zero disables the janitor.
	Retention time.Duration
	// DefaultSheet is used when a request names no input sheet.
	DefaultSheet string
}

// Load reads configuration from environment variables, applying defaults
// for anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:         getEnvOrDefault("ACENG_ADDR", ":8080"),
		UploadDir:    getEnvOrDefault("ACENG_UPLOAD_DIR", "uploads"),
		ProcessedDir: getEnvOrDefault("ACENG_PROCESSED_DIR", "processed_files"),
		MaxUploadMB:  getEnvInt64OrDefault("ACENG_MAX_UPLOAD_MB", 50),
		DefaultSheet: getEnvOrDefault("ACENG_DEFAULT_SHEET", "Sheet1"),
	}

	retention, err := getEnvDurationOrDefault("ACENG_RETENTION", time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid ACENG_RETENTION: %w", err)
	}
	cfg.Retention = retention

	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("ACENG_MAX_UPLOAD_MB must be positive, got %d", cfg.MaxUploadMB)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(value)
}
