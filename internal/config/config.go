package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/WheelPortal_Go/internal/database"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	ServiceName string
	Version     string

	PortalAPIURL     string
	PortalAPITimeout time.Duration

	HistorySource string
	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int

	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	AnimationDuration time.Duration
	MinFullTurns      int
	GraceDelay        time.Duration
	MaxAttempts       int
	InterDelay        time.Duration

	SessionCacheSize int
	SessionIdleTTL   time.Duration
	ShutdownTimeout  time.Duration

	// TrustedProxies are the auth proxies allowed to assert the caller identity.
	// Empty trusts every peer, which is only suitable for local development.
	TrustedProxies  []string
	RateLimit       int
	RateLimitWindow time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogDir:      getEnv("LOG_DIR", ""),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		PortalAPIURL:     strings.TrimRight(getEnv("PORTAL_API_URL", ""), "/"),
		PortalAPITimeout: getEnvAsDuration("PORTAL_API_TIMEOUT", DefaultPortalTimeout),

		HistorySource: strings.ToLower(getEnv("HISTORY_SOURCE", DefaultHistorySource)),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBName:        getEnv("DB_NAME", DefaultDBName),
		DBSSLMode:     getEnv("DB_SSLMODE", DefaultDBSSLMode),
		DBMaxConns:    getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),

		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		AnimationDuration: getEnvAsDuration("WHEEL_ANIMATION_DURATION", DefaultAnimationDuration),
		MinFullTurns:      getEnvAsInt("WHEEL_MIN_FULL_TURNS", DefaultMinFullTurns),
		GraceDelay:        getEnvAsDuration("RECONCILE_GRACE_DELAY", DefaultGraceDelay),
		MaxAttempts:       getEnvAsInt("RECONCILE_MAX_ATTEMPTS", DefaultMaxAttempts),
		InterDelay:        getEnvAsDuration("RECONCILE_INTER_DELAY", DefaultInterDelay),

		SessionCacheSize: getEnvAsInt("SESSION_CACHE_SIZE", DefaultSessionCacheSize),
		SessionIdleTTL:   getEnvAsDuration("SESSION_IDLE_TTL", DefaultSessionIdleTTL),
		ShutdownTimeout:  getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),

		TrustedProxies:  getEnvAsList("TRUSTED_PROXIES"),
		RateLimit:       getEnvAsInt("RATE_LIMIT_REQUESTS", DefaultRateLimit),
		RateLimitWindow: getEnvAsDuration("RATE_LIMIT_WINDOW", DefaultRateLimitWindow),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.PortalAPIURL == "" {
		return fmt.Errorf("PORTAL_API_URL environment variable must be set")
	}
	if c.HistorySource != HistorySourcePortal && c.HistorySource != HistorySourcePostgres {
		return fmt.Errorf("invalid HISTORY_SOURCE %q: expected %s or %s", c.HistorySource, HistorySourcePortal, HistorySourcePostgres)
	}
	if c.AnimationDuration <= 0 {
		return fmt.Errorf("WHEEL_ANIMATION_DURATION must be positive")
	}
	if c.MinFullTurns < 1 {
		return fmt.Errorf("WHEEL_MIN_FULL_TURNS must be at least 1")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("RECONCILE_MAX_ATTEMPTS must be at least 1")
	}
	if c.RateLimit < 1 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// UsePostgresHistory reports whether reconciliation reads the local history mirror
func (c *Config) UsePostgresHistory() bool {
	return c.HistorySource == HistorySourcePostgres
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to defaultValue when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a Go duration ("800ms", "5s"), falling back to defaultValue when unset or invalid
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return database.ConnString(c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}
