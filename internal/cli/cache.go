package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/creativeforge/pkg/cache"
	"github.com/matzehuels/creativeforge/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the report and variant cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached reports, variants and uploads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			store, err := c.newCache(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				printInfo(w, "Nothing to clear")
				printDetail(w, "Backend: %s", c.backendName())
				return nil
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if count == 0 {
				printInfo(w, "Cache is empty")
				return nil
			}
			printSuccess(w, "Cleared %d cached entries", count)
			if fc, ok := store.(*cache.FileCache); ok {
				printDetail(w, "Directory: %s", fc.Dir())
			} else {
				printDetail(w, "Backend: %s", c.backendName())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func (c *CLI) backendName() string {
	if c.noCache {
		return config.BackendNone
	}
	return c.cfg.Cache.Backend
}
