package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/tasktracker/internal/app"
	"github.com/runoshun/tasktracker/internal/domain"
	"github.com/runoshun/tasktracker/internal/usecase"
)

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var typeName, statusName string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List items",
		Long: `List items ordered by ID: tasks, then epics, then subtasks.

Examples:
  tracker list
  tracker list --type epic
  tracker list --status IN_PROGRESS`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := parseOptionalKind(typeName)
			if err != nil {
				return err
			}
			var status domain.Status
			if statusName != "" {
				if status, err = domain.ParseStatus(statusName); err != nil {
					return err
				}
			}

			if err := openItems(cmd, c); err != nil {
				return err
			}
			out, err := c.ListItemsUseCase().Execute(cmd.Context(), usecase.ListItemsInput{Kind: kind, Status: status})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Total() == 0 {
				_, _ = fmt.Fprintln(w, mutedStyle.Render("No items"))
				return nil
			}
			items := make([]domain.Item, 0, out.Total())
			for _, t := range out.Tasks {
				items = append(items, t)
			}
			for _, e := range out.Epics {
				items = append(items, e)
			}
			items = append(items, subtaskItems(out.Subtasks)...)
			printTable(w, items)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "Only list this item type")
	cmd.Flags().StringVar(&statusName, "status", "", "Only list items in this status")

	return cmd
}

// newSubtasksCommand creates the subtasks command.
func newSubtasksCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "subtasks <epic-id>",
		Short: "List the subtasks of an epic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := openItems(cmd, c); err != nil {
				return err
			}
			out, err := c.ListEpicSubtasksUseCase().Execute(cmd.Context(), usecase.ListEpicSubtasksInput{EpicID: id})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Subtasks) == 0 {
				_, _ = fmt.Fprintln(w, mutedStyle.Render("No subtasks"))
				return nil
			}
			printTable(w, subtaskItems(out.Subtasks))
			return nil
		},
	}
}

// newPrioritizedCommand creates the prioritized command.
func newPrioritizedCommand(c *app.Container) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "prioritized",
		Short: "List scheduled tasks and subtasks by start time",
		Long: `List scheduled tasks and subtasks ordered by start time.
Unscheduled items and epics are not listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fromTime, err := domain.ParseStartTime(from)
			if err != nil {
				return err
			}

			if err := openItems(cmd, c); err != nil {
				return err
			}
			out, err := c.ShowPrioritizedUseCase().Execute(cmd.Context(), usecase.ShowPrioritizedInput{From: fromTime})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Items) == 0 {
				_, _ = fmt.Fprintln(w, mutedStyle.Render("Nothing scheduled"))
				return nil
			}
			printTable(w, out.Items)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Skip items that end at or before this time")

	return cmd
}
