package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new one
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingWheelPortal = "Starting Wheel Portal"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Event System
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventStreamSubscribed      = "Event stream subscribed to spin events"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// =============================================================================
// History Source
// =============================================================================

const (
	LogMsgHistoryFromPortal   = "Reading spin history from the portal backend"
	LogMsgHistoryFromPostgres = "Reading spin history from the postgres mirror"
	ErrMsgFailedConnectDB     = "failed to connect to history database"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer      = "Shutting down server..."
	LogMsgShuttingDownSessions    = "Cancelling spin sessions..."
	LogMsgServerStopped           = "Server stopped"
	LogMsgServerForcedShutdown    = "Server forced to shutdown"
	LogMsgSessionShutdownFailed   = "Spin sessions did not stop cleanly"
	LogMsgShuttingDownEventStream = "Closing event streams..."
	LogMsgClosingDatabase         = "Closing database pool..."
)
