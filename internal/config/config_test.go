package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DYNAMODB_TABLE_NAME", "")
	t.Setenv("EVENT_SOURCE", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DYNAMODB_ENDPOINT", "")

	cfg := Load()
	assert.Equal(t, "FileMetadata", cfg.TableName)
	assert.Equal(t, "aws:s3", cfg.EventSource)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Endpoint)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DYNAMODB_TABLE_NAME", "uploads-metadata")
	t.Setenv("EVENT_SOURCE", "minio:s3")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DYNAMODB_ENDPOINT", "http://localhost:8000")

	cfg := Load()
	assert.Equal(t, "uploads-metadata", cfg.TableName)
	assert.Equal(t, "minio:s3", cfg.EventSource)
	assert.Equal(t, "http://localhost:8000", cfg.Endpoint)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_WhitespaceTableNameUsesDefault(t *testing.T) {
	t.Setenv("DYNAMODB_TABLE_NAME", "   ")
	assert.Equal(t, "FileMetadata", Load().TableName)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Config{LogLevel: tt.in}.SlogLevel())
		})
	}
}
