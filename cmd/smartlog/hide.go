package main

import (
	"github.com/spf13/cobra"

	"github.com/kurobon/smartlog/internal/app"
)

var hideCmd = &cobra.Command{
	Use:   "hide <commit>...",
	Short: "Hide commits from the smartlog",
	Long: `Hide the given commits from the smartlog. Descendants of a hidden
commit are hidden with it. The ancestry of the currently checked-out commit
is always shown, even when hidden.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitCode = app.HideCommits(loadConfig(), cmd.OutOrStdout(), args)
	},
}

var unhideCmd = &cobra.Command{
	Use:   "unhide <commit>...",
	Short: "Unhide previously hidden commits",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitCode = app.UnhideCommits(loadConfig(), cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(hideCmd)
	rootCmd.AddCommand(unhideCmd)
}
