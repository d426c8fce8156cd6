package main

import "fmt"

// DoctorCommand runs the full environment health check
type DoctorCommand struct{}

func (c *DoctorCommand) Name() string { return "doctor" }

func (c *DoctorCommand) Description() string {
	return "Run all environment checks (deps, database)"
}

func (c *DoctorCommand) Run(args []string) error {
	PrintHeader("Environment doctor for " + appName)

	checks := []Command{
		&CheckDepsCommand{},
		&CheckDBCommand{},
	}

	failed := 0
	for _, check := range checks {
		if err := check.Run(nil); err != nil {
			PrintError("%s: %v", check.Name(), err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d checks failed", failed)
	}

	PrintSuccess("Environment looks healthy")
	return nil
}
