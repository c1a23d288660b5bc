package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer

	config := Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: "test",
		AddSource:   false,
	}

	InitLoggerWithWriter(config, &buf)
	t.Cleanup(func() { InitLoggerWithWriter(DefaultConfig(), &bytes.Buffer{}) })

	Info("test message", "key", "value", "number", 42)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

	assert.Equal(t, "test-service", logEntry["service"])
	assert.Equal(t, "1.0.0", logEntry["version"])
	assert.Equal(t, "test", logEntry["environment"])
	assert.Equal(t, "test message", logEntry["msg"])
	assert.Equal(t, "INFO", logEntry["level"])
	assert.Equal(t, "value", logEntry["key"])
	assert.Equal(t, float64(42), logEntry["number"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(NewConfig("warn", "text", "svc", "v", "test"), &buf)
	t.Cleanup(func() { InitLoggerWithWriter(DefaultConfig(), &bytes.Buffer{}) })

	Info("hidden")
	FromContext(context.Background()).Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "test-req-123")

	assert.Equal(t, "test-req-123", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))

	var buf bytes.Buffer
	InitLoggerWithWriter(NewConfig("info", "json", "svc", "v", "test"), &buf)
	t.Cleanup(func() { InitLoggerWithWriter(DefaultConfig(), &bytes.Buffer{}) })

	FromContext(ctx).Info("with id")
	assert.True(t, strings.Contains(buf.String(), `"request_id":"test-req-123"`))
}

func TestGenerateRequestID(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestNewConfig(t *testing.T) {
	t.Run("explicit values win", func(t *testing.T) {
		t.Setenv("SERVICE_NAME", "from-env")
		t.Setenv("VERSION", "9.9.9")

		cfg := NewConfig("DEBUG", "JSON", "wheel-api", "1.2.3", EnvironmentProduction)

		assert.Equal(t, "wheel-api", cfg.ServiceName)
		assert.Equal(t, "1.2.3", cfg.Version)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
		assert.True(t, cfg.IsJSON())
		assert.False(t, cfg.AddSource)
	})

	t.Run("service name and version follow the environment", func(t *testing.T) {
		t.Setenv("SERVICE_NAME", "wheel-canary")
		t.Setenv("VERSION", "2.0.0-rc1")

		cfg := NewConfig("info", "text", "", "", "")

		assert.Equal(t, "wheel-canary", cfg.ServiceName)
		assert.Equal(t, "2.0.0-rc1", cfg.Version)
		assert.Equal(t, EnvironmentDev, cfg.Environment)
		assert.True(t, cfg.AddSource)
	})

	t.Run("built-in defaults", func(t *testing.T) {
		t.Setenv("SERVICE_NAME", "")
		t.Setenv("VERSION", "")

		cfg := NewConfig("bogus", "text", "", "", "development")

		assert.Equal(t, DefaultServiceName, cfg.ServiceName)
		assert.Equal(t, DefaultVersion, cfg.Version)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
		assert.True(t, cfg.AddSource)
	})
}

func TestDefaultConfig_UsesServiceName(t *testing.T) {
	t.Setenv("SERVICE_NAME", "wheel-worker")
	t.Setenv("ENVIRONMENT", EnvironmentProduction)

	cfg := DefaultConfig()

	assert.Equal(t, "wheel-worker", cfg.ServiceName)
	assert.Equal(t, EnvironmentProduction, cfg.Environment)
	assert.False(t, cfg.IsJSON())
	assert.False(t, cfg.AddSource)
}
