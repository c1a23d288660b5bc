package config

import "time"

// History sources
const (
	HistorySourcePortal   = "portal"
	HistorySourcePostgres = "postgres"
)

// Defaults
const (
	DefaultPort               = 8080
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
	DefaultEnvironment        = "dev"
	DefaultServiceName        = "wheel-portal"
	DefaultVersion            = "dev"
	DefaultPortalTimeout      = 10 * time.Second
	DefaultAnimationDuration  = 5 * time.Second
	DefaultMinFullTurns       = 5
	DefaultGraceDelay         = 1500 * time.Millisecond
	DefaultMaxAttempts        = 15
	DefaultInterDelay         = 800 * time.Millisecond
	DefaultSessionCacheSize   = 10000
	DefaultSessionIdleTTL     = 30 * time.Minute
	DefaultDBMaxConns         = 10
	DefaultDBMaxConnIdleTime  = 5 * time.Minute
	DefaultDBMaxConnLifetime  = time.Hour
	DefaultShutdownTimeout    = 15 * time.Second
	DefaultDBName             = "wheel"
	DefaultDBSSLMode          = "disable"
	DefaultHistorySource      = HistorySourcePortal
	InsecureExampleDBPassword = "change_this_secure_password"
	DefaultRateLimit          = 1000
	DefaultRateLimitWindow    = 5 * time.Minute
)
