// Package cmd implements the lox command-line interface: run, tokenize,
// parse, and repl subcommands wired with cobra.
package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags at release time.
	Version = "0.1.0-dev"

	noColor bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:     "lox",
	Short:   "A tree-walking interpreter for the Lox language",
	Version: Version,
	Long: `lox runs Lox programs: lexer -> parser -> resolver -> evaluator.

Examples:
  lox run script.lox
  lox run -e "print 1 + 2 * 3;"
  lox repl`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
	})
}
