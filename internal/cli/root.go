// Package cli provides the command-line interface for chromagen.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chromagen/chromagen/internal/version"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "chromagen",
	Short: "Extract colour palettes from images",
	Long: `Chromagen extracts dominant colour palettes from images using
deterministic k-means clustering.

Point it at a wallpaper, a photo, or a URL and it produces a ranked
palette with hex, RGB, and HSL encodings plus per-colour pixel counts.
External optimizer plugins can reorder or filter the palette before it
is emitted.`,
	Version:      version.Short(),
	SilenceUsage: true,
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(optimizerCmd)
}

// versionCmd prints detailed version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
