package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetForTest(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestValidateEnv_MissingVersion(t *testing.T) {
	unsetForTest(t, "ENV_SCHEMA_VERSION")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION mismatch")
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_MissingRequired(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	unsetForTest(t, "PORTAL_API_URL")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required environment variables: PORTAL_API_URL")
}

func TestValidateEnv_PostgresNeedsDatabase(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("PORTAL_API_URL", "https://portal.example.com")
	unsetForTest(t, PostgresEnvVars...)

	t.Setenv("HISTORY_SOURCE", HistorySourcePortal)
	assert.NoError(t, ValidateEnv())

	t.Setenv("HISTORY_SOURCE", HistorySourcePostgres)
	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "DB_NAME")
}

func TestValidateEnvWithWarnings_InsecureDefaults(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("PORTAL_API_URL", "http://portal.internal")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("HISTORY_SOURCE", HistorySourcePortal)
	t.Setenv("DB_PASSWORD", InsecureExampleDBPassword)
	t.Setenv("TRUSTED_PROXIES", "")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err, "Should not error even with warnings")
	require.Len(t, warnings, 3, "Should have 3 warnings")
	assert.Contains(t, warnings[0], "DB_PASSWORD")
	assert.Contains(t, warnings[1], "PORTAL_API_URL")
	assert.Contains(t, warnings[2], "TRUSTED_PROXIES")
}
