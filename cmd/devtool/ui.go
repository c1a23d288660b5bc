package main

import (
	"fmt"
	"os"

	"github.com/osse101/WheelPortal_Go/internal/database"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorReset  = "\033[0m"
)

func PrintSuccess(format string, a ...interface{}) {
	fmt.Printf(colorGreen+"✓ "+format+colorReset+"\n", a...)
}

func PrintWarning(format string, a ...interface{}) {
	fmt.Printf(colorYellow+"⚠ "+format+colorReset+"\n", a...)
}

func PrintError(format string, a ...interface{}) {
	fmt.Printf(colorRed+"✗ "+format+colorReset+"\n", a...)
}

func PrintHeader(title string) {
	fmt.Printf("\n"+colorYellow+"=== %s ==="+colorReset+"\n", title)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// dbURL reads DB_URL, falling back to the DB_* parts
func dbURL() string {
	if url := os.Getenv("DB_URL"); url != "" {
		return url
	}
	return database.ConnString(
		getEnv("DB_USER", "dev"),
		getEnv("DB_PASSWORD", "change_this_secure_password"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "wheel"),
		getEnv("DB_SSLMODE", "disable"),
	)
}
