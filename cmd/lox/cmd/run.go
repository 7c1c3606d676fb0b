package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/loxlang/golox/pkg/lox"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lox program",
	Long: `Execute a Lox program from a file, stdin, or an inline expression.

Examples:
  lox run script.lox
  lox run -e "print 1 + 2 * 3;"
  cat script.lox | lox run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline source instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Running: %s (%d bytes)\n", filename, len(source))
	}

	result := lox.Run(source, os.Stdout)
	if result.HasErrors() {
		fmt.Fprintln(os.Stderr, result.Format(!noColor))
		return fmt.Errorf("%s produced %d error(s)", filename, len(result.Diagnostics))
	}
	return nil
}

func readSource(args []string) (source, filename string, err error) {
	switch {
	case evalExpr != "":
		return evalExpr, "<eval>", nil
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	default:
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), "<stdin>", nil
	}
}
