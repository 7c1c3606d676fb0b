package parser

import (
	"testing"

	"github.com/loxlang/golox/internal/errors"
	"github.com/loxlang/golox/internal/lexer"
	"github.com/loxlang/golox/pkg/ast"
)

func parseSource(t *testing.T, source string) (*ast.Block, *errors.Sink) {
	t.Helper()
	sink := errors.NewSink(source)
	l := lexer.New(source, sink)
	p := New(l.ScanTokens(), sink)
	return p.ParseProgram(), sink
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3;", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3;", "(* (group (+ 1 2)) 3)"},
		{"-1 + 2;", "(+ (- 1) 2)"},
		{"1 < 2 == 3 < 4;", "(== (< 1 2) (< 3 4))"},
		{"!true and false;", "(and (! true) false)"},
	}

	for _, tt := range tests {
		program, sink := parseSource(t, tt.input)
		if sink.HasErrors() {
			t.Fatalf("parse(%q): unexpected errors: %s", tt.input, sink.Format(false))
		}
		if len(program.Statements) != 1 {
			t.Fatalf("parse(%q): got %d statements, want 1", tt.input, len(program.Statements))
		}
		exprStmt := program.Statements[0].(*ast.ExprStmt)
		if got := exprStmt.Expr.String(); got != tt.want {
			t.Errorf("parse(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestForDesugarsToWhile(t *testing.T) {
	program, sink := parseSource(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %s", sink.Format(false))
	}
	if len(program.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(program.Statements))
	}

	block, ok := program.Statements[0].(*ast.Block)
	if !ok {
		t.Fatalf("top-level for-statement did not desugar into a block, got %T", program.Statements[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("desugared block has %d statements, want 2 (init, while)", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*ast.VarDecl); !ok {
		t.Errorf("first statement = %T, want *ast.VarDecl", block.Statements[0])
	}
	loop, ok := block.Statements[1].(*ast.While)
	if !ok {
		t.Fatalf("second statement = %T, want *ast.While", block.Statements[1])
	}
	body, ok := loop.Body.(*ast.Block)
	if !ok {
		t.Fatalf("while body = %T, want *ast.Block (body + increment)", loop.Body)
	}
	if len(body.Statements) != 2 {
		t.Fatalf("while body has %d statements, want 2 (print, increment)", len(body.Statements))
	}
}

func TestForWithoutConditionDefaultsTrue(t *testing.T) {
	program, sink := parseSource(t, "for (;;) print 1;")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %s", sink.Format(false))
	}
	loop := program.Statements[0].(*ast.While)
	lit, ok := loop.Test.(*ast.Literal)
	if !ok || lit.Kind != ast.LitBool || lit.Bool != true {
		t.Fatalf("bare `for(;;)` condition = %#v, want literal true", loop.Test)
	}
}

func TestAssignmentTargets(t *testing.T) {
	program, sink := parseSource(t, "x = 1; obj.field = 2;")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %s", sink.Format(false))
	}
	if _, ok := program.Statements[0].(*ast.ExprStmt).Expr.(*ast.Assign); !ok {
		t.Errorf("first statement expr = %T, want *ast.Assign", program.Statements[0].(*ast.ExprStmt).Expr)
	}
	if _, ok := program.Statements[1].(*ast.ExprStmt).Expr.(*ast.Set); !ok {
		t.Errorf("second statement expr = %T, want *ast.Set", program.Statements[1].(*ast.ExprStmt).Expr)
	}
}

func TestInvalidAssignmentTargetReportsError(t *testing.T) {
	_, sink := parseSource(t, "1 + 2 = 3;")
	if !sink.HasStage(errors.Parse) {
		t.Fatal("expected a parse error for an invalid assignment target")
	}
}

func TestClassDeclWithSuperclassAndMethods(t *testing.T) {
	program, sink := parseSource(t, `
class Animal {
  speak() { print "..."; }
}
class Dog < Animal {
  speak() { print "Woof"; }
}
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %s", sink.Format(false))
	}
	if len(program.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(program.Statements))
	}
	dog := program.Statements[1].(*ast.ClassDecl)
	if dog.Superclass == nil || dog.Superclass.Name.Lexeme != "Animal" {
		t.Fatalf("Dog.Superclass = %#v, want Animal", dog.Superclass)
	}
	if len(dog.Methods) != 1 || dog.Methods[0].Name.Lexeme != "speak" {
		t.Fatalf("Dog.Methods = %#v, want [speak]", dog.Methods)
	}
}

func TestSyncAfterParseErrorSurfacesLaterErrors(t *testing.T) {
	_, sink := parseSource(t, "var; var y = 1 + ;")
	if len(sink.Diagnostics()) < 2 {
		t.Fatalf("expected resync to surface both errors, got %d: %s", len(sink.Diagnostics()), sink.Format(false))
	}
}
