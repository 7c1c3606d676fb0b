// Package lox is the public facade over the pipeline: lex, parse,
// resolve, evaluate, collecting diagnostics from every stage behind one
// Sink so a CLI or REPL driver has a single place to report from.
package lox

import (
	"io"

	"github.com/loxlang/golox/internal/errors"
	"github.com/loxlang/golox/internal/interp"
	"github.com/loxlang/golox/internal/lexer"
	"github.com/loxlang/golox/internal/parser"
	"github.com/loxlang/golox/internal/resolver"
	"github.com/loxlang/golox/pkg/ast"
)

// Context runs one Lox program against a persistent interpreter state,
// so a REPL can evaluate successive inputs against the same globals.
type Context struct {
	interpreter *interp.Interpreter
	stdout      io.Writer
}

// NewContext creates a Context writing `print` output to stdout.
func NewContext(stdout io.Writer) *Context {
	return &Context{stdout: stdout}
}

// Result reports what happened running one chunk of source.
type Result struct {
	// Diagnostics collects every lex, parse, resolve, or runtime error.
	Diagnostics []errors.Diagnostic
	// Source is the text the diagnostics are rendered against.
	Source string
}

// HasErrors reports whether the run produced any diagnostic.
func (r Result) HasErrors() bool { return len(r.Diagnostics) > 0 }

// Format renders every diagnostic in r, source-span annotated.
func (r Result) Format(useColor bool) string {
	sink := errors.NewSink(r.Source)
	for _, d := range r.Diagnostics {
		sink.Report(d.Stage, d.Pos, "%s", d.Message)
	}
	return sink.Format(useColor)
}

// frontend runs the lex/parse/resolve stages shared by Run and RunRepl,
// stopping at the first stage that reports an error and returning the
// program and depth map only when every static stage succeeded.
func frontend(source string, sink *errors.Sink) (program *ast.Block, depths map[ast.Expr]int, ok bool) {
	l := lexer.New(source, sink)
	tokens := l.ScanTokens()
	if sink.HasStage(errors.Lex) {
		return nil, nil, false
	}

	p := parser.New(tokens, sink)
	program = p.ParseProgram()
	if sink.HasStage(errors.Parse) {
		return nil, nil, false
	}

	res := resolver.New(sink)
	depths = res.Resolve(program)
	if sink.HasStage(errors.Resolve) {
		return nil, nil, false
	}

	return program, depths, true
}

// Run lexes, parses, resolves, and evaluates source with a fresh
// interpreter, writing `print` output to stdout and returning every
// diagnostic collected along the way.
func Run(source string, stdout io.Writer) Result {
	sink := errors.NewSink(source)
	program, depths, ok := frontend(source, sink)
	if !ok {
		return Result{Diagnostics: sink.Diagnostics(), Source: source}
	}

	in := interp.New(sink, stdout)
	in.Resolve(depths)
	in.Interpret(program.Statements)

	return Result{Diagnostics: sink.Diagnostics(), Source: source}
}

// RunRepl evaluates one line of REPL input against ctx's persistent
// interpreter and globals, so declarations from earlier lines stay live.
func (c *Context) RunRepl(source string) Result {
	sink := errors.NewSink(source)
	program, depths, ok := frontend(source, sink)
	if !ok {
		return Result{Diagnostics: sink.Diagnostics(), Source: source}
	}

	if c.interpreter == nil {
		c.interpreter = interp.New(sink, c.stdout)
	} else {
		c.interpreter.SetSink(sink)
	}
	c.interpreter.Resolve(depths)
	c.interpreter.Interpret(program.Statements)

	return Result{Diagnostics: sink.Diagnostics(), Source: source}
}
