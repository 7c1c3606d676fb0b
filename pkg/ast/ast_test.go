package ast

import (
	"strings"
	"testing"

	"github.com/loxlang/golox/pkg/token"
)

func tok(typ token.Type, lexeme string) token.Token {
	return token.New(typ, lexeme, token.Position{Line: 1})
}

func TestLiteralStringRendering(t *testing.T) {
	tests := []struct {
		lit  *Literal
		want string
	}{
		{&Literal{Kind: LitNil}, "nil"},
		{&Literal{Kind: LitBool, Bool: true}, "true"},
		{&Literal{Kind: LitBool, Bool: false}, "false"},
		{&Literal{Kind: LitNumber, Number: 3}, "3"},
		{&Literal{Kind: LitNumber, Number: 3.5}, "3.5"},
		{&Literal{Kind: LitString, Str: "hi"}, `"hi"`},
	}
	for _, tt := range tests {
		if got := tt.lit.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.lit, got, tt.want)
		}
	}
}

func TestBinaryAndGroupingSExpression(t *testing.T) {
	expr := &Binary{
		Left:  &Grouping{Inner: &Binary{Left: &Literal{Kind: LitNumber, Number: 1}, Op: tok(token.PLUS, "+"), Right: &Literal{Kind: LitNumber, Number: 2}}},
		Op:    tok(token.STAR, "*"),
		Right: &Literal{Kind: LitNumber, Number: 3},
	}
	want := "(* (group (+ 1 2)) 3)"
	if got := expr.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCallAndGetSExpression(t *testing.T) {
	call := &Call{
		Callee: &Get{Object: &Variable{Name: tok(token.IDENTIFIER, "obj")}, Name: tok(token.IDENTIFIER, "method")},
		Paren:  tok(token.RIGHT_PAREN, ")"),
		Args:   []Expr{&Literal{Kind: LitNumber, Number: 1}, &Literal{Kind: LitNumber, Number: 2}},
	}
	want := "(call (get obj method) 1 2)"
	if got := call.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestIfStmtSExpressionWithAndWithoutElse(t *testing.T) {
	noElse := &If{Test: &Literal{Kind: LitBool, Bool: true}, Then: &Print{Expr: &Literal{Kind: LitString, Str: "yes"}}}
	if got, want := noElse.String(), `(if true (print "yes"))`; got != want {
		t.Errorf("no-else String() = %q, want %q", got, want)
	}

	withElse := &If{
		Test: &Literal{Kind: LitBool, Bool: false},
		Then: &Print{Expr: &Literal{Kind: LitString, Str: "yes"}},
		Else: &Print{Expr: &Literal{Kind: LitString, Str: "no"}},
	}
	if got, want := withElse.String(), `(if false (print "yes") (print "no"))`; got != want {
		t.Errorf("with-else String() = %q, want %q", got, want)
	}
}

// completeVisitor implements both ExprVisitor and StmtVisitor with no
// extra methods, so CheckVisitor must accept it.
type completeVisitor struct{}

func (completeVisitor) VisitLiteral(*Literal) any   { return nil }
func (completeVisitor) VisitVariable(*Variable) any { return nil }
func (completeVisitor) VisitAssign(*Assign) any     { return nil }
func (completeVisitor) VisitUnary(*Unary) any       { return nil }
func (completeVisitor) VisitBinary(*Binary) any     { return nil }
func (completeVisitor) VisitLogical(*Logical) any   { return nil }
func (completeVisitor) VisitGrouping(*Grouping) any { return nil }
func (completeVisitor) VisitCall(*Call) any         { return nil }
func (completeVisitor) VisitGet(*Get) any           { return nil }
func (completeVisitor) VisitSet(*Set) any           { return nil }
func (completeVisitor) VisitThis(*This) any         { return nil }
func (completeVisitor) VisitSuper(*Super) any       { return nil }

func (completeVisitor) VisitExprStmt(*ExprStmt) any   { return nil }
func (completeVisitor) VisitPrint(*Print) any         { return nil }
func (completeVisitor) VisitIf(*If) any               { return nil }
func (completeVisitor) VisitWhile(*While) any         { return nil }
func (completeVisitor) VisitReturn(*Return) any       { return nil }
func (completeVisitor) VisitBlock(*Block) any         { return nil }
func (completeVisitor) VisitVarDecl(*VarDecl) any     { return nil }
func (completeVisitor) VisitFuncDecl(*FuncDecl) any   { return nil }
func (completeVisitor) VisitClassDecl(*ClassDecl) any { return nil }

func TestCheckVisitorAcceptsCompleteVisitor(t *testing.T) {
	if err := CheckVisitor(completeVisitor{}); err != nil {
		t.Fatalf("CheckVisitor rejected a valid visitor: %v", err)
	}
}

// invalidVisitor declares a Visit* method naming a variant that does not
// exist in the closed family.
type invalidVisitor struct{ completeVisitor }

func (invalidVisitor) VisitTernary(any) any { return nil }

func TestCheckVisitorRejectsInventedVariant(t *testing.T) {
	err := CheckVisitor(invalidVisitor{})
	if err == nil {
		t.Fatal("CheckVisitor accepted a method naming a nonexistent variant")
	}
	if !strings.Contains(err.Error(), "VisitTernary") {
		t.Errorf("error = %v, want it to mention VisitTernary", err)
	}
}

func TestAcceptExprAndAcceptStmtDispatch(t *testing.T) {
	var v completeVisitor
	exprs := []Expr{
		&Literal{}, &Variable{}, &Assign{Value: &Literal{}}, &Unary{Operand: &Literal{}},
		&Binary{Left: &Literal{}, Right: &Literal{}}, &Logical{Left: &Literal{}, Right: &Literal{}},
		&Grouping{Inner: &Literal{}}, &Call{Callee: &Literal{}}, &Get{Object: &Literal{}},
		&Set{Object: &Literal{}, Value: &Literal{}}, &This{}, &Super{},
	}
	for _, e := range exprs {
		AcceptExpr(e, v)
	}

	stmts := []Stmt{
		&ExprStmt{Expr: &Literal{}}, &Print{Expr: &Literal{}}, &If{Test: &Literal{}, Then: &ExprStmt{Expr: &Literal{}}},
		&While{Test: &Literal{}, Body: &ExprStmt{Expr: &Literal{}}}, &Return{Value: &Literal{}}, &Block{},
		&VarDecl{}, &FuncDecl{}, &ClassDecl{},
	}
	for _, s := range stmts {
		AcceptStmt(s, v)
	}
}
