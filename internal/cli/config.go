package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/creativeforge/pkg/config"
)

func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize the configuration file",
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configInitCommand())

	return cmd
}

// configShowCommand prints the effective configuration, env overrides included.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.cfg.Encode(cmd.OutOrStdout())
		},
	}
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the configuration file path",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configFile()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the default configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			path, err := c.configFile()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				printInfo(w, "Config file already exists")
				printDetail(w, "Use --force to overwrite %s", path)
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("create config dir: %w", err)
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create config: %w", err)
			}
			if err := config.Default().Encode(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			printSuccess(w, "Wrote default configuration")
			printFile(w, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

// configFile returns --config, $CREATIVEFORGE_CONFIG or the default path.
func (c *CLI) configFile() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	if path := os.Getenv(config.EnvConfig); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}
