package main

import (
	"fmt"
	"os/exec"
)

// CheckDepsCommand verifies that required development tools are installed
type CheckDepsCommand struct{}

func (c *CheckDepsCommand) Name() string { return "check-deps" }

func (c *CheckDepsCommand) Description() string {
	return "Verify required development tools are installed"
}

func (c *CheckDepsCommand) Run(args []string) error {
	PrintHeader("Checking development dependencies")

	deps := []struct {
		binary   string
		required bool
		hint     string
	}{
		{"go", true, "https://go.dev/dl/"},
		{"docker", true, "https://docs.docker.com/get-docker/"},
		{"psql", false, "apt install postgresql-client"},
		{"curl", false, "apt install curl"},
	}

	missing := 0
	for _, dep := range deps {
		if _, err := exec.LookPath(dep.binary); err != nil {
			if dep.required {
				PrintError("%s not found (install: %s)", dep.binary, dep.hint)
				missing++
			} else {
				PrintWarning("%s not found, some commands will be unavailable (install: %s)", dep.binary, dep.hint)
			}
			continue
		}
		PrintSuccess("%s", dep.binary)
	}

	if missing > 0 {
		return fmt.Errorf("%d required dependencies missing", missing)
	}

	PrintSuccess("All required dependencies are installed")
	return nil
}
