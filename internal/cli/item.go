package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/runoshun/tasktracker/internal/app"
	"github.com/runoshun/tasktracker/internal/domain"
	"github.com/runoshun/tasktracker/internal/usecase"
)

// newNewCommand creates the new command for creating items.
func newNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Type        string
		Title       string
		Description string
		Status      string
		Start       string
		Duration    string
		EpicID      int
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a task, epic or subtask",
		Long: `Create a task, epic or subtask.

Start times use the layout 2006-01-02T15:04:05 in local time.
Durations accept Go syntax (90m, 1h30m) or a number of minutes.
A scheduled item that overlaps another scheduled item is rejected.

Examples:
  # Create an unscheduled task
  tracker new --title "Write report"

  # Create a scheduled task
  tracker new --title "Standup" --start 2025-02-28T09:00:00 --duration 15

  # Create an epic and a subtask under it
  tracker new --type epic --title "Release"
  tracker new --epic 2 --title "Tag" --duration 30m`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind := domain.KindTask
			if opts.EpicID > 0 {
				kind = domain.KindSubtask
			}
			if opts.Type != "" {
				k, err := domain.ParseKind(opts.Type)
				if err != nil {
					return err
				}
				kind = k
			}

			status, err := domain.ParseStatus(opts.Status)
			if err != nil {
				return err
			}
			start, err := domain.ParseStartTime(opts.Start)
			if err != nil {
				return err
			}
			duration, err := domain.ParseDuration(opts.Duration)
			if err != nil {
				return err
			}

			if err := openItems(cmd, c); err != nil {
				return err
			}
			out, err := c.CreateItemUseCase().Execute(cmd.Context(), usecase.CreateItemInput{
				Kind:        kind,
				Title:       opts.Title,
				Description: opts.Description,
				Status:      status,
				StartTime:   start,
				Duration:    duration,
				EpicID:      opts.EpicID,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", domain.ItemRef(out.Item))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", "", "Item type: task, epic or subtask (default: task, or subtask with --epic)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "Title (required)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Description")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Status: NEW, IN_PROGRESS or DONE (default: NEW)")
	cmd.Flags().StringVar(&opts.Start, "start", "", "Start time (2006-01-02T15:04:05)")
	cmd.Flags().StringVar(&opts.Duration, "duration", "", "Duration (e.g. 90m, 1h30m or minutes)")
	cmd.Flags().IntVar(&opts.EpicID, "epic", 0, "Owning epic ID (creates a subtask)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// newShowCommand creates the show command for displaying item details.
func newShowCommand(c *app.Container) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show item details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			kind, err := parseOptionalKind(typeName)
			if err != nil {
				return err
			}

			if err := openItems(cmd, c); err != nil {
				return err
			}
			out, err := c.ShowItemUseCase().Execute(cmd.Context(), usecase.ShowItemInput{Kind: kind, ID: id})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printItem(w, out.Item)
			if out.Item.Kind() == domain.KindEpic {
				_, _ = fmt.Fprintln(w)
				if len(out.Subtasks) == 0 {
					_, _ = fmt.Fprintln(w, mutedStyle.Render("  No subtasks"))
					return nil
				}
				printTable(w, subtaskItems(out.Subtasks))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "Only look up this item type")

	return cmd
}

// newEditCommand creates the edit command for updating items.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Status      string
		Start       string
		Duration    string
		EpicID      int
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an item",
		Long: `Edit an item. Only the given flags are changed.

Epics accept --title and --body only; their status and timing are
derived from their subtasks. Pass --start "" to unschedule a task.

Examples:
  tracker edit 1 --status IN_PROGRESS
  tracker edit 3 --start 2025-02-28T14:00:00 --duration 45m
  tracker edit 5 --epic 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			in := usecase.EditItemInput{ID: id}
			flags := cmd.Flags()
			if flags.Changed("title") {
				in.Title = &opts.Title
			}
			if flags.Changed("body") {
				in.Description = &opts.Description
			}
			if flags.Changed("status") {
				status, err := domain.ParseStatus(opts.Status)
				if err != nil {
					return err
				}
				in.Status = &status
			}
			if flags.Changed("start") {
				start, err := domain.ParseStartTime(opts.Start)
				if err != nil {
					return err
				}
				in.StartTime = &start
			}
			if flags.Changed("duration") {
				duration, err := domain.ParseDuration(opts.Duration)
				if err != nil {
					return err
				}
				in.Duration = &duration
			}
			if flags.Changed("epic") {
				in.EpicID = &opts.EpicID
			}

			if err := openItems(cmd, c); err != nil {
				return err
			}
			out, err := c.EditItemUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", domain.ItemRef(out.Item))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Description, "body", "", "New description")
	cmd.Flags().StringVar(&opts.Status, "status", "", "New status")
	cmd.Flags().StringVar(&opts.Start, "start", "", "New start time (empty to unschedule)")
	cmd.Flags().StringVar(&opts.Duration, "duration", "", "New duration")
	cmd.Flags().IntVar(&opts.EpicID, "epic", 0, "Move a subtask to this epic")

	return cmd
}

// newDeleteCommand creates the delete command.
func newDeleteCommand(c *app.Container) *cobra.Command {
	var (
		typeName string
		all      bool
	)

	cmd := &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete an item or all items of a type",
		Long: `Delete an item. Deleting an epic also deletes its subtasks.

Examples:
  tracker delete 3
  tracker delete --all --type subtask`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseOptionalKind(typeName)
			if err != nil {
				return err
			}

			in := usecase.DeleteItemInput{Kind: kind, All: all}
			switch {
			case all && len(args) > 0:
				return fmt.Errorf("cannot use --all with an id")
			case all && kind == "":
				return fmt.Errorf("--all requires --type")
			case !all && len(args) == 0:
				return fmt.Errorf("an id or --all is required")
			case !all:
				if in.ID, err = parseID(args[0]); err != nil {
					return err
				}
			}

			if err := openItems(cmd, c); err != nil {
				return err
			}
			out, err := c.DeleteItemUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Item != nil {
				_, _ = fmt.Fprintf(w, "Deleted %s", domain.ItemRef(out.Item))
				if cascaded := out.Removed - 1; cascaded > 0 {
					_, _ = fmt.Fprintf(w, " and %d subtasks", cascaded)
				}
				_, _ = fmt.Fprintln(w)
				return nil
			}
			_, _ = fmt.Fprintf(w, "Deleted %d items\n", out.Removed)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "Item type (required with --all)")
	cmd.Flags().BoolVar(&all, "all", false, "Delete every item of --type")

	return cmd
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", s)
	}
	return id, nil
}

func parseOptionalKind(s string) (domain.Kind, error) {
	if s == "" {
		return "", nil
	}
	return domain.ParseKind(s)
}
