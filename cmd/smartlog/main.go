// Package main provides the smartlog CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kurobon/smartlog/internal/app"
	"github.com/kurobon/smartlog/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

// asciiOutput forces plain-text glyphs even on a terminal
var asciiOutput bool

// exitCode is set by the command handlers and used on clean exit
var exitCode int

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
	os.Exit(exitCode)
}

var rootCmd = &cobra.Command{
	Use:   "smartlog",
	Short: "Show a graph of the commits you've recently worked on",
	Long: `smartlog renders a pruned graph of the commits you've recently worked
on: your recent history, the master trunk, and the commit you have checked
out. Commits you've hidden, and commits superseded by later work on master,
are left out.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode = app.RenderSmartlog(loadConfig(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&asciiOutput, "ascii", false, "Use plain ASCII glyphs and no color")
	rootCmd.Version = Version
}

// loadConfig merges flag state into the environment-derived configuration.
func loadConfig() *config.Config {
	cfg := config.DefaultConfig()
	if asciiOutput {
		cfg.ForceText = true
	}
	return cfg
}
