package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// WaitForDBCommand blocks until the history mirror accepts connections
type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Block until the history mirror accepts connections (-retries, -interval)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	retries := fs.Int("retries", 30, "connection attempts before giving up")
	interval := fs.Duration("interval", 2*time.Second, "delay between attempts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	PrintHeader("Waiting for history mirror")
	url := dbURL()

	var lastErr error
	for attempt := 1; attempt <= *retries; attempt++ {
		if lastErr = ping(url, *interval); lastErr == nil {
			PrintSuccess("History mirror is ready (attempt %d)", attempt)
			return nil
		}
		PrintWarning("not ready (%d/%d): %v", attempt, *retries, lastErr)
		time.Sleep(*interval)
	}
	return fmt.Errorf("history mirror unreachable after %d attempts: %w", *retries, lastErr)
}

func ping(url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())
	return conn.Ping(ctx)
}
