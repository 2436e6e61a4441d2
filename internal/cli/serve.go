package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/creativeforge/internal/server"
	"github.com/matzehuels/creativeforge/pkg/pipeline"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Start the HTTP API for editors and pipelines.

Uploaded images are stored in the configured cache, so use the file or
redis backend when uploads must survive a restart.`,
		Example: `  # Listen on the configured address (default :8080)
  creativeforge serve

  # Share reports between instances through redis
  CREATIVEFORGE_CACHE=redis CREATIVEFORGE_REDIS_ADDR=localhost:6379 creativeforge serve --addr :9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			srv := server.New(runner, server.Options{
				Guidelines: c.cfg.Guidelines,
				Ingestor:   pipeline.NewCacheIngestor(runner.Cache, runner.Keyer),
				Logger:     loggerFromContext(ctx),
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config server.addr or $CREATIVEFORGE_ADDR)")

	return cmd
}
