package main

import (
	"github.com/spf13/cobra"

	"github.com/kurobon/smartlog/internal/app"
)

// showCmd is an explicit alias for the root command, for scripts that
// prefer not to rely on the default action.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the smartlog (default command)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode = app.RenderSmartlog(loadConfig(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
