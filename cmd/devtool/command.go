package main

import (
	"fmt"
	"sort"
)

// Command is the interface all devtool commands implement
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

const (
	appName = "reward-service"

	envDev     = "dev"
	envStaging = "staging"
)

// Registry holds all registered commands
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates a new command registry
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds a command to the registry
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns all registered command names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrintHelp prints usage information for all commands
func (r *Registry) PrintHelp() {
	fmt.Printf("Usage: devtool <command> [args]\n\n")
	fmt.Println("Available commands:")
	for _, name := range r.List() {
		cmd, _ := r.Get(name)
		fmt.Printf("  %-14s %s\n", name, cmd.Description())
	}
}
