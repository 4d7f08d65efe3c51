// Package cli provides the command-line interface for the tracker.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/tasktracker/internal/app"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupItem  = "item"
	groupView  = "view"
)

const dirFlag = "dir"

var errNoContainer = errors.New("tracker is not initialized")

// NewRootCommand creates the root command for the tracker.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "tracker",
		Short: "Task, epic and subtask tracker",
		Long: `tracker keeps tasks, epics and subtasks in a local store.

Scheduled items never overlap. An epic's status, duration and time
span are derived from its subtasks.

The data directory is ./.tracker unless --dir or $TRACKER_DIR is set.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil || c.ConfigLoader == nil {
				return nil
			}
			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				// Reported by the commands that need the config
				return nil
			}
			for _, w := range cfg.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	// Consumed by main before the container is built; declared here for help and parsing.
	root.PersistentFlags().String(dirFlag, "", "Data directory (default: $TRACKER_DIR or ./.tracker)")

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupItem, Title: "Item Management:"},
		&cobra.Group{ID: groupView, Title: "Views:"},
	)

	// Setup commands
	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupSetup

	// Item management commands
	newCmd := newNewCommand(c)
	newCmd.GroupID = groupItem

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupItem

	deleteCmd := newDeleteCommand(c)
	deleteCmd.GroupID = groupItem

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupItem

	// View commands
	showCmd := newShowCommand(c)
	showCmd.GroupID = groupView

	listCmd := newListCommand(c)
	listCmd.GroupID = groupView

	subtasksCmd := newSubtasksCommand(c)
	subtasksCmd.GroupID = groupView

	prioritizedCmd := newPrioritizedCommand(c)
	prioritizedCmd.GroupID = groupView

	root.AddCommand(
		initCmd,
		configCmd,
		serveCmd,
		newCmd,
		editCmd,
		deleteCmd,
		importCmd,
		showCmd,
		listCmd,
		subtasksCmd,
		prioritizedCmd,
	)

	return root
}

// DataDirFromArgs returns the value of --dir in args, or "".
// main needs the data directory before the command tree exists.
func DataDirFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--"+dirFlag+"="); ok {
			return v
		}
		if arg == "--"+dirFlag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// openItems loads the item store for commands that read or write items.
func openItems(cmd *cobra.Command, c *app.Container) error {
	if c == nil {
		return errNoContainer
	}
	return c.Open(cmd.Context())
}
