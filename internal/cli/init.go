package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/tasktracker/internal/app"
	"github.com/runoshun/tasktracker/internal/domain"
	"github.com/runoshun/tasktracker/internal/usecase"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the data directory",
		Long: `Initialize the data directory with a config file.

The store file is created on the first change.

Error conditions:
- Config file already exists: "config file already exists"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil {
				return errNoContainer
			}

			cfg := domain.NewDefaultConfig()
			if backend != "" {
				cfg.Store.Backend = backend
				cfg.Store.Path = domain.DefaultStoreFile(backend)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{Config: cfg})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized tracker in %s (%s store)\n", c.Config.DataDir, cfg.Store.Backend)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "backend", "", "Store backend: csv, json or sqlite (default: csv)")

	return cmd
}
