package resolver

import (
	"testing"

	"github.com/loxlang/golox/internal/errors"
	"github.com/loxlang/golox/internal/lexer"
	"github.com/loxlang/golox/internal/parser"
	"github.com/loxlang/golox/pkg/ast"
)

func resolveSource(t *testing.T, source string) (*ast.Block, map[ast.Expr]int, *errors.Sink) {
	t.Helper()
	sink := errors.NewSink(source)
	l := lexer.New(source, sink)
	p := parser.New(l.ScanTokens(), sink)
	program := p.ParseProgram()
	if sink.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", sink.Format(false))
	}
	r := New(sink)
	depths := r.Resolve(program)
	return program, depths, sink
}

func TestLocalDepthResolved(t *testing.T) {
	_, depths, sink := resolveSource(t, `
{
  var a = 1;
  {
    print a;
  }
}
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected resolve errors: %s", sink.Format(false))
	}

	var found bool
	for expr, depth := range depths {
		if v, ok := expr.(*ast.Variable); ok && v.Name.Lexeme == "a" {
			found = true
			if depth != 1 {
				t.Errorf("depth of `a` = %d, want 1", depth)
			}
		}
	}
	if !found {
		t.Fatal("no Variable node for `a` found in depth map")
	}
}

func TestGlobalReferenceUnresolved(t *testing.T) {
	_, depths, sink := resolveSource(t, `
var g = 1;
print g;
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected resolve errors: %s", sink.Format(false))
	}
	for expr := range depths {
		if v, ok := expr.(*ast.Variable); ok && v.Name.Lexeme == "g" {
			t.Fatalf("global reference `g` should be absent from the depth map (falls back to globals), found depth %d", depths[expr])
		}
	}
}

func TestSelfReferenceInInitializerIsError(t *testing.T) {
	_, _, sink := resolveSource(t, `
{
  var a = a;
}
`)
	if !sink.HasStage(errors.Resolve) {
		t.Fatal("expected a resolve error for `var a = a;`")
	}
}

func TestReturnOutsideFunctionIsError(t *testing.T) {
	_, _, sink := resolveSource(t, `return 1;`)
	if !sink.HasStage(errors.Resolve) {
		t.Fatal("expected a resolve error for top-level return")
	}
}

func TestThisOutsideClassIsError(t *testing.T) {
	_, _, sink := resolveSource(t, `print this;`)
	if !sink.HasStage(errors.Resolve) {
		t.Fatal("expected a resolve error for `this` outside a class")
	}
}

func TestSuperOutsideClassIsError(t *testing.T) {
	_, _, sink := resolveSource(t, `print super.foo;`)
	if !sink.HasStage(errors.Resolve) {
		t.Fatal("expected a resolve error for `super` outside a class")
	}
}

func TestClassInheritsFromItselfIsError(t *testing.T) {
	_, _, sink := resolveSource(t, `class Oops < Oops {}`)
	if !sink.HasStage(errors.Resolve) {
		t.Fatal("expected a resolve error for a class inheriting from itself")
	}
}

func TestReturnValueFromInitializerIsError(t *testing.T) {
	_, _, sink := resolveSource(t, `
class Foo {
  init() { return 1; }
}
`)
	if !sink.HasStage(errors.Resolve) {
		t.Fatal("expected a resolve error for returning a value from init()")
	}
}

func TestBareReturnFromInitializerIsAllowed(t *testing.T) {
	_, _, sink := resolveSource(t, `
class Foo {
  init() { return; }
}
`)
	if sink.HasErrors() {
		t.Fatalf("bare return from init() should be allowed, got: %s", sink.Format(false))
	}
}
