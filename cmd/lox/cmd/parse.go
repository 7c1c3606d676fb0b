package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loxlang/golox/internal/errors"
	"github.com/loxlang/golox/internal/lexer"
	"github.com/loxlang/golox/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Print the parsed AST as S-expressions",
	Args:  cobra.MaximumNArgs(1),
	RunE:  parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline source instead of reading from file")
}

func parseScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}

	sink := errors.NewSink(source)
	l := lexer.New(source, sink)
	tokens := l.ScanTokens()
	if sink.HasStage(errors.Lex) {
		fmt.Fprintln(os.Stderr, sink.Format(!noColor))
		return fmt.Errorf("%s produced lex errors", filename)
	}

	p := parser.New(tokens, sink)
	program := p.ParseProgram()
	for _, stmt := range program.Statements {
		fmt.Println(stmt.String())
	}

	if sink.HasErrors() {
		fmt.Fprintln(os.Stderr, sink.Format(!noColor))
		return fmt.Errorf("%s produced %d parse error(s)", filename, len(sink.Diagnostics()))
	}
	return nil
}
