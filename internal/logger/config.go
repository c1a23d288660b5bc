package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Config represents logger configuration
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Format      string // "json", "text"
	ServiceName string
	Version     string
	Environment string // "dev", "prod"
	AddSource   bool   // Include source file/line in logs
}

// NewConfig builds a logger config from the service settings.
// An empty service name or version falls back to $SERVICE_NAME and $VERSION,
// so processes that never load the full config still tag their lines.
// Source locations are added in development only.
func NewConfig(level, format, serviceName, version, environment string) Config {
	if environment == "" {
		environment = EnvironmentDev
	}
	return Config{
		Level:       strings.ToLower(level),
		Format:      strings.ToLower(format),
		ServiceName: firstNonEmpty(serviceName, os.Getenv("SERVICE_NAME"), DefaultServiceName),
		Version:     firstNonEmpty(version, os.Getenv("VERSION"), DefaultVersion),
		Environment: environment,
		AddSource:   isDevelopment(environment),
	}
}

// DefaultConfig is used before the service config is loaded
func DefaultConfig() Config {
	return NewConfig(LogLevelInfo, LogFormatText, "", "", os.Getenv("ENVIRONMENT"))
}

// LogLevel converts the level string to a slog.Level, info when unrecognised
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) IsJSON() bool {
	return strings.ToLower(c.Format) == LogFormatJSON
}

// BaseAttributes are attached to every log line
func (c Config) BaseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}

func isDevelopment(environment string) bool {
	switch strings.ToLower(environment) {
	case EnvironmentDev, "development":
		return true
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
