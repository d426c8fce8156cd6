package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func PrintInfo(format string, args ...interface{}) {
	fmt.Printf(colorCyan+"==> "+colorReset+format+"\n", args...)
}

func PrintSuccess(format string, args ...interface{}) {
	fmt.Printf(colorGreen+"✓ "+colorReset+format+"\n", args...)
}

func PrintWarning(format string, args ...interface{}) {
	fmt.Printf(colorYellow+"! "+colorReset+format+"\n", args...)
}

func PrintError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, colorRed+"✗ "+colorReset+format+"\n", args...)
}

func PrintHeader(title string) {
	fmt.Printf("\n%s%s%s\n%s\n", colorCyan, title, colorReset, strings.Repeat("-", len(title)))
}

// checkHostile rejects arguments containing shell metacharacters.
// Devtool commands shell out with user-supplied values (DB names,
// migration args), so refuse anything that could smuggle a command.
func checkHostile(args ...string) error {
	for _, arg := range args {
		if strings.ContainsAny(arg, ";|&`$<>\\\n") {
			return fmt.Errorf("argument contains shell metacharacters: %q", arg)
		}
	}
	return nil
}

// getCommandOutput runs a command and returns its combined output
func getCommandOutput(name string, args ...string) (string, error) {
	if err := checkHostile(args...); err != nil {
		return "", err
	}
	out, err := exec.Command(name, args...).CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// runCommand runs a command, discarding output unless it fails
func runCommand(name string, args ...string) error {
	if err := checkHostile(args...); err != nil {
		return err
	}
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w\n%s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// runCommandVerbose runs a command with output streamed to the terminal
func runCommandVerbose(name string, args ...string) error {
	if err := checkHostile(args...); err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}
