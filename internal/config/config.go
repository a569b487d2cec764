package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Batch processing
	InputDir  string
	OutputDir string

	// Worker pool
	WorkerCount int

	// HTTP API
	Port   string
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Logging
	LogLevel string

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		InputDir:  envOr("INPUT_DIR", "./input"),
		OutputDir: envOr("OUTPUT_DIR", "./output"),

		WorkerCount: envInt("WORKER_COUNT", 4),

		Port:   envOr("PORT", "8090"),
		APIKey: os.Getenv("PDFOUTLINE_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		LogLevel: envOr("LOG_LEVEL", "info"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}

	return cfg
}

func (c Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("INPUT_DIR is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR is required")
	}
	return nil
}

// SlogLevel maps the configured verbosity onto a slog level, defaulting to
// info for anything unrecognized.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
