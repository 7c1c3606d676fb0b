// Package errors implements Lox's diagnostic reporting: source-span
// underlining shared by the lexer, parser, resolver, and evaluator.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/loxlang/golox/pkg/token"
)

// Stage identifies which pipeline stage raised a Diagnostic.
type Stage int

const (
	Lex Stage = iota
	Parse
	Resolve
	Runtime
)

func (s Stage) String() string {
	switch s {
	case Lex:
		return "lex error"
	case Parse:
		return "parse error"
	case Resolve:
		return "resolve error"
	case Runtime:
		return "runtime error"
	default:
		return "error"
	}
}

// Diagnostic is a single reported problem, carrying enough of the source
// span to underline the offending text beneath the source line.
type Diagnostic struct {
	Stage   Stage
	Message string
	Pos     token.Position
}

var (
	boldRed = color.New(color.FgRed, color.Bold)
	dim     = color.New(color.Faint)
)

// Format renders a diagnostic with its source line and a caret underline:
//
//	    var x = x;
//	            ^
//	3: Can't reference a variable in its own initialization
func (d Diagnostic) Format(source string, useColor bool) string {
	var sb strings.Builder

	if line := sourceLine(source, d.Pos.Line); line != "" {
		rendered := line
		if useColor {
			rendered = dim.Sprint(line)
		}
		sb.WriteString("    " + rendered + "\n")
		sb.WriteString("    " + strings.Repeat(" ", caretColumn(source, d.Pos)))
		caret := "^"
		if useColor {
			caret = boldRed.Sprint(caret)
		}
		sb.WriteString(caret + "\n")
	}

	sb.WriteString(fmt.Sprintf("%d: %s", d.Pos.Line, d.Message))
	return sb.String()
}

// caretColumn estimates how far into the rendered line the span begins,
// using the offset of the span within the full line text.
func caretColumn(source string, pos token.Position) int {
	if pos.Start <= 0 || pos.Start > len(source) {
		return 0
	}
	return pos.Start - (strings.LastIndex(source[:pos.Start], "\n") + 1)
}

func sourceLine(source string, line int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// Sink collects diagnostics across one run of the pipeline. The lexer,
// parser, resolver, and evaluator each hold a reference to the same Sink,
// so a single pass can report errors from every stage without aborting.
type Sink struct {
	Source      string
	diagnostics []Diagnostic
}

// NewSink creates a diagnostic sink bound to the given source text, used
// to render source-span context when a diagnostic is later formatted.
func NewSink(source string) *Sink {
	return &Sink{Source: source}
}

// Report records a diagnostic; it does not stop the current stage.
func (s *Sink) Report(stage Stage, pos token.Position, format string, args ...any) {
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	})
}

// HasErrors reports whether any diagnostic has been recorded.
func (s *Sink) HasErrors() bool {
	return len(s.diagnostics) > 0
}

// HasStage reports whether any diagnostic of the given stage was recorded.
func (s *Sink) HasStage(stage Stage) bool {
	for _, d := range s.diagnostics {
		if d.Stage == stage {
			return true
		}
	}
	return false
}

// Diagnostics returns every diagnostic recorded so far, in report order.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diagnostics
}

// Format renders every diagnostic, one per blank-line-separated block.
func (s *Sink) Format(useColor bool) string {
	var sb strings.Builder
	for i, d := range s.diagnostics {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(d.Format(s.Source, useColor))
	}
	return sb.String()
}

// RuntimeError is raised by the evaluator for a single failed statement;
// it carries enough information for the driver to print a diagnostic and
// abort only the current top-level statement or REPL input.
type RuntimeError struct {
	Message string
	Pos     token.Position
}

func (e *RuntimeError) Error() string { return e.Message }

// NewRuntimeError constructs a RuntimeError at the given source position.
func NewRuntimeError(pos token.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Pos: pos}
}
