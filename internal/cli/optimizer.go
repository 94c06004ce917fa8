package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chromagen/chromagen/internal/optimizer"
)

// optimizerCmd groups optimizer plugin management commands.
var optimizerCmd = &cobra.Command{
	Use:   "optimizer",
	Short: "Manage optimizer plugins",
	Long: `Manage optimizer plugins.

Optimizer plugins are external executables that reorder or filter an
extracted palette. They are installed into a per-user plugin directory
and selected at extraction time with --optimizer.`,
}

var optimizerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed optimizer plugins",
	RunE: func(cmd *cobra.Command, args []string) error {
		plugins, err := optimizer.List()
		if err != nil {
			return err
		}

		if len(plugins) == 0 {
			dir, dirErr := optimizer.PluginDir()
			if dirErr != nil {
				return dirErr
			}
			fmt.Printf("No optimizer plugins installed in %s\n", dir)
			return nil
		}

		table := NewTable([]string{"NAME", "VERSION", "PROTOCOL", "DESCRIPTION"})
		table.SetColumnMaxWidth(3, 60)
		for _, p := range plugins {
			protocol := p.Info.PluginProtocol
			if protocol == "" {
				protocol = "json-stdio"
			}
			table.AddRow([]string{p.Info.Name, p.Info.Version, protocol, p.Info.Description})
		}
		fmt.Print(table.Render())
		return nil
	},
}

var optimizerInstallCmd = &cobra.Command{
	Use:   "install <source>",
	Short: "Install an optimizer plugin",
	Long: `Install an optimizer plugin from a local file or an HTTPS URL.

Archives (.tar.gz, .tar.xz, .tar.bz2, .zip) and compressed files are
extracted automatically. The installed binary must answer --plugin-info
with valid plugin metadata.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := optimizer.Install(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			fmt.Printf("Installed optimizer plugin to %s\n", path)
		}
		return nil
	},
}

var optimizerRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an installed optimizer plugin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := optimizer.Remove(args[0]); err != nil {
			return err
		}
		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			fmt.Printf("Removed optimizer plugin %s\n", args[0])
		}
		return nil
	},
}

func init() {
	optimizerCmd.AddCommand(optimizerListCmd)
	optimizerCmd.AddCommand(optimizerInstallCmd)
	optimizerCmd.AddCommand(optimizerRemoveCmd)
}
