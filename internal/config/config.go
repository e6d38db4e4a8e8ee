// Package config provides centralized configuration for the smartlog CLI.
package config

import "os"

// Config holds application-wide configuration.
type Config struct {
	// RepoPath is the directory the repository is located from.
	RepoPath string
	// DBFile is the state database filename inside the .git directory.
	DBFile string
	// ForceText disables unicode glyphs and color regardless of the
	// output's terminal detection.
	ForceText bool
}

// DefaultConfig returns the default configuration, reading from environment
// variables.
func DefaultConfig() *Config {
	repoPath := os.Getenv("SMARTLOG_REPO")
	if repoPath == "" {
		repoPath = "."
	}
	dbFile := os.Getenv("SMARTLOG_DB")
	if dbFile == "" {
		dbFile = "smartlog.sqlite3"
	}
	return &Config{
		RepoPath:  repoPath,
		DBFile:    dbFile,
		ForceText: os.Getenv("SMARTLOG_ASCII") != "",
	}
}
