package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loxlang/golox/internal/errors"
	"github.com/loxlang/golox/internal/lexer"
)

var showPos bool

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Print the tokens produced by the lexer",
	Args:  cobra.MaximumNArgs(1),
	RunE:  tokenizeScript,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline source instead of reading from file")
	tokenizeCmd.Flags().BoolVar(&showPos, "show-pos", false, "show each token's line number")
}

func tokenizeScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}

	sink := errors.NewSink(source)
	l := lexer.New(source, sink)
	for _, tok := range l.ScanTokens() {
		if showPos {
			fmt.Printf("%-14s %-20q line=%d\n", tok.Type, tok.Lexeme, tok.Pos.Line)
		} else {
			fmt.Printf("%-14s %q\n", tok.Type, tok.Lexeme)
		}
	}

	if sink.HasErrors() {
		fmt.Fprintln(os.Stderr, sink.Format(!noColor))
		return fmt.Errorf("%s produced %d lex error(s)", filename, len(sink.Diagnostics()))
	}
	return nil
}
