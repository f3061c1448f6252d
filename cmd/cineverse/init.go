package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vmunix/cineverse/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Long: `Write a commented default config.toml.

Without a path the file is written to the XDG config directory
(usually ~/.config/cineverse/config.toml).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInitCmd,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

func runInitCmd(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}

	if err := config.WriteDefault(path, force); err != nil {
		if errors.Is(err, config.ErrExists) {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
		return fmt.Errorf("write config: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Wrote %s\n\n", path)
	fmt.Fprintf(w, "Set %s to your TMDB API read access token, or edit the file.\n", config.EnvToken)
	return nil
}
