// Package ast defines the Abstract Syntax Tree node types for Lox: a
// closed family of Expression and Statement variants, each
// carrying its source span for diagnostics and usable as a stable
// identity key in the resolver's node -> scope-depth side map.
package ast

import "github.com/loxlang/golox/pkg/token"

// Node is the base interface implemented by every AST node.
type Node interface {
	// Pos returns the node's source span, for diagnostics.
	Pos() token.Position
	// String renders the node as an S-expression, e.g. "(+ 2 3)".
	String() string
}

// Expr is any node that produces a value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action when executed.
type Stmt interface {
	Node
	stmtNode()
}

// Span is embedded in every node to satisfy Pos() without repeating the
// field everywhere. Exported so parser code outside this package can
// construct nodes directly.
type Span struct {
	Position token.Position
}

func (s Span) Pos() token.Position { return s.Position }
