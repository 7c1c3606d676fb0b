package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/loxlang/golox/pkg/lox"
)

var (
	replBlue   = color.New(color.FgBlue)
	replGreen  = color.New(color.FgGreen)
	replRed    = color.New(color.FgRed)
	replYellow = color.New(color.FgYellow)
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Lox session",
	RunE: func(*cobra.Command, []string) error {
		return runRepl(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(stdout io.Writer) error {
	cfg := loadReplConfig()
	if cfg.Color != nil {
		color.NoColor = !*cfg.Color
	}

	printBanner(stdout)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      cfg.Prompt,
		HistoryFile: cfg.HistoryFile,
	})
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}
	defer rl.Close()

	ctx := lox.NewContext(stdout)

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(stdout, "\nbye.")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" || line == ".quit" {
			fmt.Fprintln(stdout, "bye.")
			return nil
		}

		result := ctx.RunRepl(line)
		if result.HasErrors() {
			replRed.Fprintln(stdout, result.Format(!color.NoColor))
		}
	}
}

func printBanner(w io.Writer) {
	replBlue.Fprintln(w, strings.Repeat("-", 40))
	replGreen.Fprintf(w, "lox %s\n", Version)
	replYellow.Fprintln(w, "Type an expression or statement, or .exit to quit.")
	replBlue.Fprintln(w, strings.Repeat("-", 40))
}
