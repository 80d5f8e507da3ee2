// Package main provides the bibliocollect CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibliocollect",
	Short: "Incremental bibliometric data collector",
	Long: `bibliocollect collects publication and citation data for the authors of
one institution from OpenAlex, enriches it via Crossref and optional
sources, and exports relational CSV tables, an analytics report and
optionally a SQLite database.

Configuration is read from config.yaml and BIBLIO_* environment
variables; command-line flags override both.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
}
