package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/WheelPortal_Go/migrations"
)

// Migrate runs a goose command ("up", "down", "status", ...) against the embedded migrations
func Migrate(ctx context.Context, connString, command string, args ...string) error {
	db, err := sql.Open(DriverName, connString)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToOpenDatabase, err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(MigrationDialect); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}

	if err := goose.RunContext(ctx, command, db, ".", args...); err != nil {
		return fmt.Errorf("%s %q: %w", ErrMsgFailedToMigrate, command, err)
	}

	slog.Default().Info("Migration finished", "command", command)
	return nil
}
