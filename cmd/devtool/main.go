package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	registry := NewRegistry(
		&MigrateCommand{},
		&WaitForDBCommand{},
		&HealthCheckCommand{},
	)

	if err := registry.Dispatch(os.Args[1:]); err != nil {
		PrintError("%v", err)
		os.Exit(1)
	}
}
