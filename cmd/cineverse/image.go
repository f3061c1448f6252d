package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vmunix/cineverse/internal/config"
	"github.com/vmunix/cineverse/internal/tmdb"
)

var imageCmd = &cobra.Command{
	Use:   "image <path>",
	Short: "Resolve a TMDB image path to a URL",
	Long: `Resolve a poster or backdrop path to a full image URL.

Sizes: w92, w154, w185, w342, w500 (default), w780, original.

Examples:
  cineverse image /kqjL17yufvn9OVLyXYpvtyrFfak.jpg
  cineverse image /kqjL17yufvn9OVLyXYpvtyrFfak.jpg --size original`,
	Args: cobra.ExactArgs(1),
	RunE: runImageCmd,
}

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.Flags().String("size", tmdb.DefaultImageSize, "Image size")
}

func runImageCmd(cmd *cobra.Command, args []string) error {
	size, _ := cmd.Flags().GetString("size")

	cfg, _, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	path := args[0]
	fmt.Fprintln(cmd.OutOrStdout(), tmdb.ImageURL(cfg.TMDB.ImageBaseURL, &path, size))
	return nil
}
