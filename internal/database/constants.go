package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 1
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
)

// Migration settings
const (
	// MigrationDialect is the goose dialect of the history mirror
	MigrationDialect = "postgres"
	// DriverName is the database/sql driver registered by pgx/stdlib
	DriverName = "pgx"
)

// Error Messages - Migrations
const (
	ErrMsgFailedToOpenDatabase = "failed to open database"
	ErrMsgFailedToMigrate      = "failed to run migration"
)
