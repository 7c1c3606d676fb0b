package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/loxlang/golox/pkg/token"
)

// LitKind identifies which of Literal's value fields (Bool, Number, Str)
// holds the literal's value; LitNil uses none of them.
type LitKind int

const (
	LitNil LitKind = iota
	LitBool
	LitNumber
	LitString
)

// Literal is a compile-time constant: nil, a bool, a float64, or a string.
type Literal struct {
	Span
	Kind   LitKind
	Bool   bool
	Number float64
	Str    string
}

func (*Literal) exprNode() {}

func (l *Literal) String() string {
	switch l.Kind {
	case LitNil:
		return "nil"
	case LitBool:
		return strconv.FormatBool(l.Bool)
	case LitNumber:
		return formatNumber(l.Number)
	case LitString:
		return strconv.Quote(l.Str)
	default:
		return "<bad-literal>"
	}
}

// formatNumber renders a double the way Print does: integral values drop
// their trailing ".0".
func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// Variable is a bare name reference, e.g. `x`.
type Variable struct {
	Span
	Name token.Token
}

func (*Variable) exprNode()     {}
func (v *Variable) String() string { return v.Name.Lexeme }

// Assign is `name = value`.
type Assign struct {
	Span
	Name  token.Token
	Value Expr
}

func (*Assign) exprNode() {}
func (a *Assign) String() string {
	return fmt.Sprintf("(assign %s %s)", a.Name.Lexeme, a.Value)
}

// Unary is a prefix `-` or `!` applied to Operand.
type Unary struct {
	Span
	Op      token.Token
	Operand Expr
}

func (*Unary) exprNode() {}
func (u *Unary) String() string {
	return fmt.Sprintf("(%s %s)", u.Op.Lexeme, u.Operand)
}

// Binary is a two-operand arithmetic, comparison, or equality expression.
type Binary struct {
	Span
	Left  Expr
	Op    token.Token
	Right Expr
}

func (*Binary) exprNode() {}
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Op.Lexeme, b.Left, b.Right)
}

// Logical is `and`/`or`, kept distinct from Binary because it short-circuits.
type Logical struct {
	Span
	Left  Expr
	Op    token.Token
	Right Expr
}

func (*Logical) exprNode() {}
func (l *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", l.Op.Lexeme, l.Left, l.Right)
}

// Grouping is a parenthesized expression, kept as its own node so the
// debug printer can render "(group ...)" distinctly from precedence.
type Grouping struct {
	Span
	Inner Expr
}

func (*Grouping) exprNode() {}
func (g *Grouping) String() string {
	return fmt.Sprintf("(group %s)", g.Inner)
}

// Call is `callee(args...)`.
type Call struct {
	Span
	Callee Expr
	Paren  token.Token // closing ')', kept for runtime-error spans
	Args   []Expr
}

func (*Call) exprNode() {}
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("(call %s %s)", c.Callee, strings.Join(parts, " "))
}

// Get is `object.name`, a property or method read.
type Get struct {
	Span
	Object Expr
	Name   token.Token
}

func (*Get) exprNode() {}
func (g *Get) String() string {
	return fmt.Sprintf("(get %s %s)", g.Object, g.Name.Lexeme)
}

// Set is `object.name = value`, a field write.
type Set struct {
	Span
	Object Expr
	Name   token.Token
	Value  Expr
}

func (*Set) exprNode() {}
func (s *Set) String() string {
	return fmt.Sprintf("(set %s %s %s)", s.Object, s.Name.Lexeme, s.Value)
}

// This is the `this` keyword inside a method body.
type This struct {
	Span
	Keyword token.Token
}

func (*This) exprNode()       {}
func (*This) String() string  { return "this" }

// Super is `super.method_name` inside a subclass method.
type Super struct {
	Span
	Keyword token.Token
	Method  token.Token
}

func (*Super) exprNode() {}
func (s *Super) String() string {
	return fmt.Sprintf("(super %s)", s.Method.Lexeme)
}
