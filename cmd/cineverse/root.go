package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "cineverse",
	Short: "Browse TMDB and keep favorites and a watchlist",
	Long: `cineverse - movie discovery with favorites and a watchlist

Browse now playing, popular and top rated listings, search TMDB,
inspect movie details and keep local favorites and watchlist
collections that survive restarts.

Run 'cineverse serve' to expose the same operations over HTTP.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("cineverse {{.Version}}\n")
}
