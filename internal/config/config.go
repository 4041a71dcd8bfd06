// Package config loads ingestion settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/Thiru152003/s3-lamda/internal/model"
)

// Config holds the settings shared by the Lambda entry point and ingestctl.
type Config struct {
	TableName   string // DynamoDB table receiving metadata rows
	EventSource string // eventSource value accepted by the handler
	LogLevel    string // debug, info, warn, error (default "info")
	Endpoint    string // optional DynamoDB base endpoint, e.g. DynamoDB Local
}

// Load reads the configuration, filling documented defaults for unset values.
func Load() Config {
	return Config{
		TableName:   getenv("DYNAMODB_TABLE_NAME", model.DefaultTableName),
		EventSource: getenv("EVENT_SOURCE", model.EventSourceS3),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		Endpoint:    os.Getenv("DYNAMODB_ENDPOINT"),
	}
}

// SlogLevel maps the LogLevel string to an slog.Level.
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

// NewLogger returns a JSON logger on stderr at the configured level.
func (c Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: c.SlogLevel()}))
}

func getenv(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}
