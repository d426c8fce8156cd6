package main

import (
	"fmt"
)

// MigrateCommand runs goose database migrations
type MigrateCommand struct{}

func (c *MigrateCommand) Name() string { return "migrate" }

func (c *MigrateCommand) Description() string {
	return "Run database migrations (up, down, status, create <name>)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) == 0 {
		args = []string{"up"}
	}
	subcmd := args[0]

	// create only touches the migrations dir, no database needed
	if subcmd == "create" {
		if len(args) < 2 {
			return fmt.Errorf("usage: devtool migrate create <name>")
		}
		return runCommandVerbose("go", "run", "github.com/pressly/goose/v3/cmd/goose",
			"-dir", "migrations", "create", args[1], "sql")
	}

	switch subcmd {
	case "up", "down", "status", "version", "redo":
	default:
		return fmt.Errorf("unknown migrate subcommand: %s", subcmd)
	}

	url := dbURL()
	PrintInfo("Running goose %s against %s", subcmd, redactPassword(url))

	gooseArgs := append([]string{
		"run", "github.com/pressly/goose/v3/cmd/goose",
		"-dir", "migrations", "postgres", url, subcmd,
	}, args[1:]...)

	if err := runCommandVerbose("go", gooseArgs...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	PrintSuccess("Migrations complete")
	return nil
}
