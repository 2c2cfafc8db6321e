// Package main provides the entry point for the lituus CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TemporalInept/lituus/cmd/lituus/commands"
	"github.com/TemporalInept/lituus/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "lituus",
		Short: "lituus - Magic: The Gathering oracle text parser",
		Long: `lituus parses Magic: The Gathering oracle text into attributed
parse trees through four inspectable stages.

Commands:
  tag       Show tagged spans for one line of oracle text
  lex       Show the token stream for one line
  parse     Show recognized clauses for one line
  graph     Build parse trees for a card corpus
  report    Render a grammar coverage chart from a graph run
  diff      Compare two serialized parse trees`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewTagCommand())
	rootCmd.AddCommand(commands.NewLexCommand())
	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewGraphCommand())
	rootCmd.AddCommand(commands.NewReportCommand())
	rootCmd.AddCommand(commands.NewDiffCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "lituus %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
