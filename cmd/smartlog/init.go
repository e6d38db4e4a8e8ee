package main

import (
	"github.com/spf13/cobra"

	"github.com/kurobon/smartlog/internal/app"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the smartlog database for this repository",
	Long: `Create the per-repository state database (hidden commits and the
merge-base cache) inside the .git directory. Running this is optional; the
database is created on first use.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode = app.InitDB(loadConfig(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
