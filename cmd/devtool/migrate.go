package main

import (
	"context"
	"fmt"

	"github.com/osse101/WheelPortal_Go/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage history mirror migrations (up, down, status, version)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status, version")
	}

	PrintHeader(fmt.Sprintf("Migrate %s", args[0]))
	if err := database.Migrate(context.Background(), dbURL(), args[0], args[1:]...); err != nil {
		return err
	}
	PrintSuccess("Migration %s complete", args[0])
	return nil
}
