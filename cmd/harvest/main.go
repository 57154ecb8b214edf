// Package main provides the harvest CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Turn the IVOA document repository into ADS tagged records",
	Long: `harvest walks the IVOA document repository, screen-scrapes the
landing page of every finished standard and published note, and renders
the metadata as ADS tagged records.

Warning: a full run walks a major portion of the document repository,
which translates into hundreds of requests; use --cache while debugging.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
