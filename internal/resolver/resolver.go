// Package resolver performs a static pass over the AST between parsing
// and evaluation, computing for every Variable and Assign node how many
// enclosing environment frames separate it from its declaring scope.
// The evaluator consults this side map instead of walking the
// environment chain at run time.
package resolver

import (
	"github.com/loxlang/golox/internal/errors"
	"github.com/loxlang/golox/pkg/ast"
	"github.com/loxlang/golox/pkg/token"
)

type funcKind int

const (
	funcNone funcKind = iota
	funcFunction
	funcMethod
	funcInitializer
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// scope maps a name to whether its declaration has finished initializing:
// false between `var x` being declared and its initializer completing
// (so `var x = x;` can be flagged), true afterward.
type scope map[string]bool

// Resolver walks the AST produced by the parser, maintaining a stack of
// lexical scopes that mirrors the Environment chain the evaluator will
// build at run time.
type Resolver struct {
	sink     *errors.Sink
	scopes   []scope
	depths   map[ast.Expr]int
	curFunc  funcKind
	curClass classKind
}

// New creates a Resolver reporting static errors to sink.
func New(sink *errors.Sink) *Resolver {
	return &Resolver{sink: sink, depths: make(map[ast.Expr]int)}
}

// Resolve walks program and returns the node -> scope-depth map used by
// the evaluator's environment lookups. Depths are only recorded for
// names resolved to an enclosing local scope; a name resolved to no
// scope on the stack is left out of the map entirely and falls back to
// the global frame at run time, matching how unresolved names are
// treated as implicit global references rather than static errors.
func (r *Resolver) Resolve(program *ast.Block) map[ast.Expr]int {
	r.resolveStatements(program.Statements)
	return r.depths
}

// ---- scope stack ----

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, scope{}) }

func (r *Resolver) endScope() { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	sc := r.scopes[len(r.scopes)-1]
	if _, ok := sc[name.Lexeme]; ok {
		r.sink.Report(errors.Resolve, name.Pos, "Already a variable named '%s' in this scope.", name.Lexeme)
	}
	sc[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal records how many scopes separate the reference `expr`
// (named `name`) from the innermost scope that declares it.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.depths[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any local scope: falls back to the globals frame.
}

// ---- statements ----

func (r *Resolver) resolveStatements(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) { ast.AcceptStmt(s, r) }
func (r *Resolver) resolveExpr(e ast.Expr) { ast.AcceptExpr(e, r) }

func (r *Resolver) VisitBlock(b *ast.Block) any {
	r.beginScope()
	r.resolveStatements(b.Statements)
	r.endScope()
	return nil
}

func (r *Resolver) VisitVarDecl(v *ast.VarDecl) any {
	r.declare(v.Name)
	if v.Initializer != nil {
		r.resolveExpr(v.Initializer)
	}
	r.define(v.Name)
	return nil
}

func (r *Resolver) VisitFuncDecl(f *ast.FuncDecl) any {
	r.declare(f.Name)
	r.define(f.Name)
	r.resolveFunction(f, funcFunction)
	return nil
}

func (r *Resolver) resolveFunction(f *ast.FuncDecl, kind funcKind) {
	enclosing := r.curFunc
	r.curFunc = kind
	defer func() { r.curFunc = enclosing }()

	r.beginScope()
	for _, param := range f.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(f.Body.Statements)
	r.endScope()
}

func (r *Resolver) VisitClassDecl(c *ast.ClassDecl) any {
	enclosingClass := r.curClass
	r.curClass = classClass
	defer func() { r.curClass = enclosingClass }()

	r.declare(c.Name)
	r.define(c.Name)

	if c.Superclass != nil {
		if c.Superclass.Name.Lexeme == c.Name.Lexeme {
			r.sink.Report(errors.Resolve, c.Superclass.Pos(), "A class can't inherit from itself.")
		} else {
			r.curClass = classSubclass
			r.resolveExpr(c.Superclass)
		}

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, m := range c.Methods {
		kind := funcMethod
		if m.Name.Lexeme == "init" {
			kind = funcInitializer
		}
		r.resolveFunction(m, kind)
	}

	r.endScope()

	if c.Superclass != nil {
		r.endScope()
	}

	return nil
}

func (r *Resolver) VisitExprStmt(s *ast.ExprStmt) any {
	r.resolveExpr(s.Expr)
	return nil
}

func (r *Resolver) VisitPrint(s *ast.Print) any {
	r.resolveExpr(s.Expr)
	return nil
}

func (r *Resolver) VisitIf(s *ast.If) any {
	r.resolveExpr(s.Test)
	r.resolveStmt(s.Then)
	if s.Else != nil {
		r.resolveStmt(s.Else)
	}
	return nil
}

func (r *Resolver) VisitWhile(s *ast.While) any {
	r.resolveExpr(s.Test)
	r.resolveStmt(s.Body)
	return nil
}

func (r *Resolver) VisitReturn(s *ast.Return) any {
	if r.curFunc == funcNone {
		r.sink.Report(errors.Resolve, s.Keyword.Pos, "Can't return from top-level code.")
	}
	if lit, ok := s.Value.(*ast.Literal); !ok || lit.Kind != ast.LitNil {
		if r.curFunc == funcInitializer {
			r.sink.Report(errors.Resolve, s.Keyword.Pos, "Can't return a value from an initializer.")
		}
	}
	r.resolveExpr(s.Value)
	return nil
}

// ---- expressions ----

func (r *Resolver) VisitVariable(v *ast.Variable) any {
	if len(r.scopes) > 0 {
		if defined, ok := r.scopes[len(r.scopes)-1][v.Name.Lexeme]; ok && !defined {
			r.sink.Report(errors.Resolve, v.Name.Pos, "Can't reference a variable in its own initialization")
		}
	}
	r.resolveLocal(v, v.Name)
	return nil
}

func (r *Resolver) VisitAssign(a *ast.Assign) any {
	r.resolveExpr(a.Value)
	r.resolveLocal(a, a.Name)
	return nil
}

func (r *Resolver) VisitUnary(u *ast.Unary) any {
	r.resolveExpr(u.Operand)
	return nil
}

func (r *Resolver) VisitBinary(b *ast.Binary) any {
	r.resolveExpr(b.Left)
	r.resolveExpr(b.Right)
	return nil
}

func (r *Resolver) VisitLogical(l *ast.Logical) any {
	r.resolveExpr(l.Left)
	r.resolveExpr(l.Right)
	return nil
}

func (r *Resolver) VisitGrouping(g *ast.Grouping) any {
	r.resolveExpr(g.Inner)
	return nil
}

func (r *Resolver) VisitCall(c *ast.Call) any {
	r.resolveExpr(c.Callee)
	for _, a := range c.Args {
		r.resolveExpr(a)
	}
	return nil
}

func (r *Resolver) VisitGet(g *ast.Get) any {
	r.resolveExpr(g.Object)
	return nil
}

func (r *Resolver) VisitSet(s *ast.Set) any {
	r.resolveExpr(s.Value)
	r.resolveExpr(s.Object)
	return nil
}

func (r *Resolver) VisitThis(t *ast.This) any {
	if r.curClass == classNone {
		r.sink.Report(errors.Resolve, t.Keyword.Pos, "Can't use 'this' outside of a class.")
		return nil
	}
	r.resolveLocal(t, t.Keyword)
	return nil
}

func (r *Resolver) VisitSuper(s *ast.Super) any {
	switch r.curClass {
	case classNone:
		r.sink.Report(errors.Resolve, s.Keyword.Pos, "Can't use 'super' outside of a class.")
	case classClass:
		r.sink.Report(errors.Resolve, s.Keyword.Pos, "Can't use 'super' in a class with no superclass.")
	}
	r.resolveLocal(s, s.Keyword)
	return nil
}

func (r *Resolver) VisitLiteral(*ast.Literal) any { return nil }

var (
	_ ast.ExprVisitor = (*Resolver)(nil)
	_ ast.StmtVisitor = (*Resolver)(nil)
)
