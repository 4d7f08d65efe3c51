// Package main is the entry point for the tracker CLI.
package main

import (
	"fmt"
	"os"

	"github.com/runoshun/tasktracker/internal/app"
	"github.com/runoshun/tasktracker/internal/cli"
	"github.com/runoshun/tasktracker/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	dataDir := domain.ResolveDataDir(cli.DataDirFromArgs(args))

	// Create dependency injection container
	container, err := app.New(dataDir)
	if err != nil {
		if canRunWithoutContainer(args) {
			return cli.NewRootCommand(nil, version).Execute()
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	rootCmd := cli.NewRootCommand(container, version)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// canRunWithoutContainer reports whether args only ask for help or the
// version, which work even when the config cannot be loaded.
func canRunWithoutContainer(args []string) bool {
	if len(args) == 0 {
		return true
	}
	if args[0] == "help" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
