package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/runoshun/tasktracker/internal/app"
	"github.com/runoshun/tasktracker/internal/domain"
	"github.com/runoshun/tasktracker/internal/usecase"
)

// newImportCommand creates the import command for YAML plans.
func newImportCommand(c *app.Container) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Create items from a YAML plan",
		Long: `Create tasks, epics and subtasks from a YAML plan.
The plan is rejected as a whole if any item is invalid or overlaps.

File format:
  tasks:
    - title: Write report
      start: 2025-02-28T10:00:00
      duration: 1h
  epics:
    - title: Release
      subtasks:
        - title: Tag
          status: DONE`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				content []byte
				err     error
			)
			if args[0] == "-" {
				content, err = io.ReadAll(cmd.InOrStdin())
			} else {
				content, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read plan: %w", err)
			}

			if err := openItems(cmd, c); err != nil {
				return err
			}
			out, err := c.ImportPlanUseCase().Execute(cmd.Context(), usecase.ImportPlanInput{
				Content: content,
				DryRun:  dryRun,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if dryRun {
				_, _ = fmt.Fprintf(w, "Dry run - %d items would be created:\n", len(out.Items))
				for _, it := range out.Items {
					_, _ = fmt.Fprintf(w, "  %s: %s\n", it.Kind(), it.Heading())
				}
				return nil
			}
			for _, it := range out.Items {
				_, _ = fmt.Fprintf(w, "Created %s: %s\n", domain.ItemRef(it), it.Heading())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the plan without creating anything")

	return cmd
}
