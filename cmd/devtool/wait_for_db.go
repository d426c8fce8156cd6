package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// WaitForDBCommand blocks until the database accepts connections
type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string { return "wait-for-db" }

func (c *WaitForDBCommand) Description() string {
	return "Block until the database accepts connections"
}

func (c *WaitForDBCommand) Run(args []string) error {
	url := dbURL()
	PrintInfo("Waiting for database at %s", redactPassword(url))

	db, err := sql.Open("pgx", url)
	if err != nil {
		return fmt.Errorf("failed to open database handle: %w", err)
	}
	defer db.Close()

	const maxRetries = 30
	for i := 1; i <= maxRetries; i++ {
		if err := db.Ping(); err == nil {
			PrintSuccess("Database is ready")
			return nil
		}
		if i < maxRetries {
			time.Sleep(2 * time.Second)
		}
	}

	return fmt.Errorf("database not reachable after %d attempts", maxRetries)
}
