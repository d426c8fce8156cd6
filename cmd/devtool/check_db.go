package main

import (
	"fmt"
	"strings"
	"time"
)

// CheckDBCommand verifies the local database container is up and accepting connections
type CheckDBCommand struct{}

func (c *CheckDBCommand) Name() string { return "check-db" }

func (c *CheckDBCommand) Description() string {
	return "Check that the local Postgres container is running"
}

func (c *CheckDBCommand) Run(args []string) error {
	PrintHeader("Checking database")

	out, err := getCommandOutput("docker", "compose", "ps", "--status=running", "db")
	if err != nil || !strings.Contains(out, "db") {
		PrintWarning("Database container is not running, starting it")
		if err := runCommandVerbose("docker", "compose", "up", "-d", "db"); err != nil {
			return fmt.Errorf("failed to start database container: %w", err)
		}
	}

	user := getEnvOrDefault("DB_USER", "postgres")
	dbName := getEnvOrDefault("DB_NAME", "fmhrewards")

	for i := 0; i < 15; i++ {
		if err := runCommand("docker", "compose", "exec", "-T", "db",
			"pg_isready", "-U", user, "-d", dbName); err == nil {
			PrintSuccess("Database is accepting connections")
			return nil
		}
		time.Sleep(2 * time.Second)
	}

	return fmt.Errorf("database did not become ready in time")
}
