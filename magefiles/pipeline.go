//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// runBinary executes the built CLI with the given subcommand.
func runBinary(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %v: %w", binName, args, err)
	}
	return nil
}

// Fetch builds the CLI and runs the feed ingestion stage.
func Fetch() error {
	mg.Deps(Build)
	return runBinary("fetch")
}

// Summarize builds the CLI and runs the summary generation stage.
func Summarize() error {
	mg.Deps(Build)
	return runBinary("summarize")
}