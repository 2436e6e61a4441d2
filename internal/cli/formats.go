package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func (c *CLI) formatsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the registered export formats",
		Long: `List the built-in export formats together with those added by the
[[formats]] tables of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.cfg.Registry()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(reg.All())
			}
			printFormats(w, reg.All())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print formats as JSON")

	return cmd
}
