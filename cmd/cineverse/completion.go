package main

import "github.com/spf13/cobra"

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for cineverse.

To load completions:

Bash:
  $ source <(cineverse completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ cineverse completion bash > /etc/bash_completion.d/cineverse
  # macOS:
  $ cineverse completion bash > $(brew --prefix)/etc/bash_completion.d/cineverse

Zsh:
  $ source <(cineverse completion zsh)
  # To load completions for each session, execute once:
  $ cineverse completion zsh > "${fpath[1]}/_cineverse"

Fish:
  $ cineverse completion fish | source
  # To load completions for each session, execute once:
  $ cineverse completion fish > ~/.config/fish/completions/cineverse.fish

PowerShell:
  PS> cineverse completion powershell | Out-String | Invoke-Expression
  # To load completions for each session, execute once:
  PS> cineverse completion powershell > cineverse.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
