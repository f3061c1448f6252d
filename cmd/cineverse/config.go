package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/vmunix/cineverse/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields, and environment variable substitution without contacting TMDB.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "List the config search locations",
	Long:  "Lists, in order, the locations searched for config.toml and marks the one that would be used.",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd, configShowCmd, configPathCmd)
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return err
		}
		path = found
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(w, configErr)
			return errors.New("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(w, cfg)
	fmt.Fprintln(w, "\nConfiguration valid!")
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, path, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	shown := cfg.Redacted()

	w := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(w, shown)
	}
	if path == "" {
		path = "defaults"
	}
	fmt.Fprintf(w, "# source: %s\n", path)
	return toml.NewEncoder(w).Encode(shown)
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	found, err := config.Discover()
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return err
	}

	type location struct {
		config.Candidate
		Selected bool `json:"selected"`
	}
	var locs []location
	for _, c := range config.Candidates() {
		locs = append(locs, location{Candidate: c, Selected: c.Path == found})
	}

	w := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(w, locs)
	}
	for _, l := range locs {
		mark := " "
		if l.Selected {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-7s %s\n", mark, l.Source, l.Path)
	}
	if found == "" {
		fmt.Fprintln(w, "\nNo config file found, defaults apply.")
	}
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	token := "not set"
	if cfg.TMDB.Token != "" {
		token = "set"
	}
	fmt.Fprintln(w, "TMDB:")
	fmt.Fprintf(w, "  base_url:  %s\n", cfg.TMDB.BaseURL)
	fmt.Fprintf(w, "  images:    %s\n", cfg.TMDB.ImageBaseURL)
	fmt.Fprintf(w, "  language:  %s\n", cfg.TMDB.Language)
	fmt.Fprintf(w, "  token:     %s\n", token)
	fmt.Fprintln(w, "Storage:")
	fmt.Fprintf(w, "  driver:    %s\n", cfg.Storage.Driver)
	if cfg.Storage.Path != "" {
		fmt.Fprintf(w, "  path:      %s\n", cfg.Storage.Path)
	}
	fmt.Fprintln(w, "Server:")
	fmt.Fprintf(w, "  listen:    %s:%d\n", cfg.Server.Host, cfg.Server.Port)
}
