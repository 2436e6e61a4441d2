package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for creativeforge.

To load completions:

Bash:
  $ source <(creativeforge completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ creativeforge completion bash > /etc/bash_completion.d/creativeforge
  # macOS:
  $ creativeforge completion bash > $(brew --prefix)/etc/bash_completion.d/creativeforge

Zsh:
  $ creativeforge completion zsh > "${fpath[1]}/_creativeforge"

Fish:
  $ creativeforge completion fish > ~/.config/fish/completions/creativeforge.fish

PowerShell:
  PS> creativeforge completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(w)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}
