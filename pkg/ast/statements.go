package ast

import (
	"fmt"
	"strings"

	"github.com/loxlang/golox/pkg/token"
)

// ExprStmt evaluates an expression and discards the result.
type ExprStmt struct {
	Span
	Expr Expr
}

func (*ExprStmt) stmtNode() {}
func (e *ExprStmt) String() string { return e.Expr.String() }

// Print evaluates an expression and writes its canonical rendering.
type Print struct {
	Span
	Expr Expr
}

func (*Print) stmtNode() {}
func (p *Print) String() string { return fmt.Sprintf("(print %s)", p.Expr) }

// If is a conditional with an optional else branch.
type If struct {
	Span
	Test Expr
	Then Stmt
	Else Stmt // nil if absent
}

func (*If) stmtNode() {}
func (i *If) String() string {
	if i.Else != nil {
		return fmt.Sprintf("(if %s %s %s)", i.Test, i.Then, i.Else)
	}
	return fmt.Sprintf("(if %s %s)", i.Test, i.Then)
}

// While is a pre-test loop. `for` is desugared into this by the parser.
type While struct {
	Span
	Test Expr
	Body Stmt
}

func (*While) stmtNode() {}
func (w *While) String() string {
	return fmt.Sprintf("(while %s %s)", w.Test, w.Body)
}

// Return unwinds to the nearest enclosing function call with Value.
// Value is never nil: a bare `return;` carries a synthetic nil literal.
type Return struct {
	Span
	Keyword token.Token
	Value   Expr
}

func (*Return) stmtNode() {}
func (r *Return) String() string { return fmt.Sprintf("(return %s)", r.Value) }

// Block introduces a new lexical scope around a sequence of statements.
type Block struct {
	Span
	Statements []Stmt
}

func (*Block) stmtNode() {}
func (b *Block) String() string {
	parts := make([]string, len(b.Statements))
	for i, s := range b.Statements {
		parts[i] = s.String()
	}
	return "(block " + strings.Join(parts, " ") + ")"
}

// VarDecl introduces a binding in the current frame. Initializer is nil
// when the declaration has no `= expr` part (the value defaults to nil).
type VarDecl struct {
	Span
	Name        token.Token
	Initializer Expr
}

func (*VarDecl) stmtNode() {}
func (v *VarDecl) String() string {
	if v.Initializer != nil {
		return fmt.Sprintf("(var %s %s)", v.Name.Lexeme, v.Initializer)
	}
	return fmt.Sprintf("(var %s)", v.Name.Lexeme)
}

// FuncDecl is a named function (top-level) or method (inside a class).
type FuncDecl struct {
	Span
	Name   token.Token
	Params []token.Token
	Body   *Block
}

func (*FuncDecl) stmtNode() {}
func (f *FuncDecl) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Lexeme
	}
	return fmt.Sprintf("(fun %s (%s) %s)", f.Name.Lexeme, strings.Join(params, " "), f.Body)
}

// ClassDecl declares a class, optionally extending Superclass, with a
// flat list of method declarations (no field declarations: fields are
// created ad hoc by the first `this.field = ...` assignment).
type ClassDecl struct {
	Span
	Name       token.Token
	Superclass *Variable // nil if no `< Super` clause
	Methods    []*FuncDecl
}

func (*ClassDecl) stmtNode() {}
func (c *ClassDecl) String() string {
	methods := make([]string, len(c.Methods))
	for i, m := range c.Methods {
		methods[i] = m.String()
	}
	if c.Superclass != nil {
		return fmt.Sprintf("(class %s %s %s)", c.Name.Lexeme, c.Superclass.Name.Lexeme, strings.Join(methods, " "))
	}
	return fmt.Sprintf("(class %s %s)", c.Name.Lexeme, strings.Join(methods, " "))
}
