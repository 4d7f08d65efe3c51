package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/runoshun/tasktracker/internal/app"
)

// newServeCommand creates the serve command for the HTTP API.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON HTTP API",
		Long: `Serve the JSON HTTP API until interrupted.

Routes:
  GET/POST /tasks      GET/DELETE /tasks/:id
  GET/POST /subtasks   GET/DELETE /subtasks/:id
  GET/POST /epics      GET/DELETE /epics/:id   GET /epics/:id/subtasks
  GET /history[?limit=N]
  GET /prioritized[?from=2006-01-02T15:04:05]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := openItems(cmd, c); err != nil {
				return err
			}
			if addr == "" {
				addr = c.Config.ServerAddr
			}
			c.Console(cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.HTTPServer().Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: [server] addr from config)")

	return cmd
}
