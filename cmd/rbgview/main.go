package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recera/rbgview/pkg/debug"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// globalFlags are shared by every command
type globalFlags struct {
	configPath string
	debug      bool
}

func main() {
	var flags globalFlags

	var rootCmd = &cobra.Command{
		Use:   "rbgview",
		Short: "rbgview - viewer for RBG graph files",
		Long: `rbgview renders RBG graph files: a live browser preview that follows
edits to the file, a terminal viewer, and static SVG/HTML export.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.debug {
				debug.EnableLogging()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (default rbgview.yaml or rbgview.toml in the working directory)")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")

	// Add commands
	rootCmd.AddCommand(newPreviewCommand(&flags))
	rootCmd.AddCommand(newViewCommand(&flags))
	rootCmd.AddCommand(newRenderCommand(&flags))
	rootCmd.AddCommand(newInfoCommand(&flags))

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}
