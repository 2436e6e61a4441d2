// Package cli implements the creativeforge command-line interface.
//
// # Commands
//
//   - check: Score a scene file against the brand guidelines
//   - adapt: Write one adapted scene per export format
//   - formats: List the registered export formats
//   - serve: Run the HTTP API
//   - config: Show, locate or initialize the configuration file
//   - cache: Manage the report and variant cache
//
// # Configuration
//
// Settings come from the TOML file named by --config (or the user config
// file), then from the environment. A .env file in the working directory is
// loaded first, so CREATIVEFORGE_* variables can live there.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matzehuels/creativeforge/pkg/buildinfo"
	"github.com/matzehuels/creativeforge/pkg/cache"
	"github.com/matzehuels/creativeforge/pkg/config"
	"github.com/matzehuels/creativeforge/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "creativeforge"

// skipConfig marks commands that must run without a readable config file.
const skipConfig = "skip-config"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "CreativeForge checks ad creatives and adapts them to every placement",
		Long:         `CreativeForge scores ad creatives against brand guidelines and reshapes them for social media placements such as feeds and stories.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			if _, skip := cmd.Annotations[skipConfig]; !skip {
				if err := c.loadConfig(); err != nil {
					return err
				}
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/creativeforge/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable caching")

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.adaptCommand())
	root.AddCommand(c.formatsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and applies environment overrides.
func (c *CLI) loadConfig() error {
	var (
		cfg config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped to
// the build so that a new release never serves reports of an older rule set.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	reg, err := c.cfg.Registry()
	if err != nil {
		store.Close()
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	r := pipeline.NewRunner(store, keyer, loggerFromContext(ctx))
	r.Registry = reg
	return r, nil
}

// newCache opens the configured cache backend.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendMemory:
		return cache.NewMemoryCache(c.cfg.Cache.MemoryEntries)
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: c.cfg.Cache.RedisAddr})
	default:
		dir, err := c.cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured file cache directory, or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/creativeforge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated list of format keys. An empty
// string selects every registered format.
func parseFormats(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
