// Package interp implements the tree-walking evaluator: it executes the
// AST directly against a chain of lexical Environments, using the
// resolver's node -> depth side map to jump straight to the frame that
// declares each variable reference.
package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/loxlang/golox/internal/errors"
	"github.com/loxlang/golox/pkg/ast"
	"github.com/loxlang/golox/pkg/token"
)

// Interpreter holds the mutable state of one program run: the global
// frame, the currently active frame, the resolver's depth map, and the
// sink every runtime diagnostic is reported through.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	depths      map[ast.Expr]int
	sink        *errors.Sink
	stdout      io.Writer
}

// New creates an Interpreter whose globals frame carries the clock()
// builtin, a host capability exposed through the globals frame rather
// than a syntactic language feature.
func New(sink *errors.Sink, stdout io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	in := &Interpreter{globals: globals, environment: globals, sink: sink, stdout: stdout}
	globals.Define("clock", &NativeFunction{
		name:  "clock",
		arity: 0,
		fn: func(*Interpreter, []any) (any, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})
	return in
}

// Resolve adds the resolver's node -> scope-depth entries for one
// program to the interpreter's map before Interpret is called. Entries
// from earlier calls are kept, so functions declared by an earlier REPL
// input still find their local variables.
func (in *Interpreter) Resolve(depths map[ast.Expr]int) {
	if in.depths == nil {
		in.depths = depths
		return
	}
	for e, d := range depths {
		in.depths[e] = d
	}
}

// SetSink redirects runtime diagnostics to sink, used by a REPL that
// reuses one Interpreter (and its globals) across several inputs, each
// with its own source text and Sink.
func (in *Interpreter) SetSink(sink *errors.Sink) {
	in.sink = sink
}

// Interpret runs each top-level statement in order. A runtime error
// aborts only the statement that raised it — matching the Sink-reported
// diagnostic stages used by every other pipeline phase — so one bad
// statement in a REPL session doesn't kill the rest of the program.
func (in *Interpreter) Interpret(stmts []ast.Stmt) {
	for _, s := range stmts {
		in.runStatement(s)
	}
}

func (in *Interpreter) runStatement(s ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(*errors.RuntimeError); ok {
				in.sink.Report(errors.Runtime, rerr.Pos, "%s", rerr.Message)
				return
			}
			panic(r)
		}
	}()
	in.execute(s)
}

func (in *Interpreter) execute(s ast.Stmt) { ast.AcceptStmt(s, in) }

func (in *Interpreter) eval(e ast.Expr) any { return ast.AcceptExpr(e, in) }

func throwRuntime(pos token.Position, format string, args ...any) {
	panic(errors.NewRuntimeError(pos, format, args...))
}

// executeBlock runs stmts with environment as the active frame, always
// restoring the previous frame afterward — including when a return or
// runtime error unwinds through it.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, environment *Environment) {
	previous := in.environment
	in.environment = environment
	defer func() { in.environment = previous }()

	for _, s := range stmts {
		in.execute(s)
	}
}

// ---- statements ----

func (in *Interpreter) VisitBlock(b *ast.Block) any {
	in.executeBlock(b.Statements, NewEnvironment(in.environment))
	return nil
}

func (in *Interpreter) VisitExprStmt(s *ast.ExprStmt) any {
	in.eval(s.Expr)
	return nil
}

func (in *Interpreter) VisitPrint(s *ast.Print) any {
	fmt.Fprintln(in.stdout, stringify(in.eval(s.Expr)))
	return nil
}

func (in *Interpreter) VisitVarDecl(s *ast.VarDecl) any {
	var value any
	if s.Initializer != nil {
		value = in.eval(s.Initializer)
	}
	in.environment.Define(s.Name.Lexeme, value)
	return nil
}

func (in *Interpreter) VisitFuncDecl(s *ast.FuncDecl) any {
	fn := &Function{decl: s, closure: in.environment}
	in.environment.Define(s.Name.Lexeme, fn)
	return nil
}

func (in *Interpreter) VisitClassDecl(s *ast.ClassDecl) any {
	var super *Class
	if s.Superclass != nil {
		v := in.eval(s.Superclass)
		sc, ok := v.(*Class)
		if !ok {
			throwRuntime(s.Superclass.Pos(), "Superclass must be a class.")
		}
		super = sc
	}

	in.environment.Define(s.Name.Lexeme, nil)

	env := in.environment
	if s.Superclass != nil {
		env = NewEnvironment(in.environment)
		env.Define("super", super)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{decl: m, closure: env, isInitializer: m.Name.Lexeme == "init"}
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: super, Methods: methods}
	in.environment.Assign(s.Name, class)
	return nil
}

func (in *Interpreter) VisitIf(s *ast.If) any {
	if isTruthy(in.eval(s.Test)) {
		in.execute(s.Then)
	} else if s.Else != nil {
		in.execute(s.Else)
	}
	return nil
}

func (in *Interpreter) VisitWhile(s *ast.While) any {
	for isTruthy(in.eval(s.Test)) {
		in.execute(s.Body)
	}
	return nil
}

func (in *Interpreter) VisitReturn(s *ast.Return) any {
	panic(returnSignal{value: in.eval(s.Value)})
}

// ---- expressions ----

func (in *Interpreter) VisitLiteral(e *ast.Literal) any {
	switch e.Kind {
	case ast.LitNil:
		return nil
	case ast.LitBool:
		return e.Bool
	case ast.LitNumber:
		return e.Number
	case ast.LitString:
		return e.Str
	default:
		return nil
	}
}

func (in *Interpreter) VisitGrouping(e *ast.Grouping) any {
	return in.eval(e.Inner)
}

func (in *Interpreter) VisitVariable(e *ast.Variable) any {
	if distance, ok := in.depths[e]; ok {
		return in.environment.GetAt(distance, e.Name.Lexeme)
	}
	v, err := in.globals.Get(e.Name)
	if err != nil {
		panic(err)
	}
	return v
}

func (in *Interpreter) VisitAssign(e *ast.Assign) any {
	value := in.eval(e.Value)
	if distance, ok := in.depths[e]; ok {
		in.environment.AssignAt(distance, e.Name.Lexeme, value)
		return value
	}
	if err := in.globals.Assign(e.Name, value); err != nil {
		panic(err)
	}
	return value
}

func (in *Interpreter) VisitUnary(e *ast.Unary) any {
	operand := in.eval(e.Operand)
	switch e.Op.Type {
	case token.MINUS:
		n, ok := operand.(float64)
		if !ok {
			throwRuntime(e.Op.Pos, "Operand must be a number.")
		}
		return -n
	case token.BANG:
		return !isTruthy(operand)
	default:
		throwRuntime(e.Op.Pos, "Unknown unary operator '%s'.", e.Op.Lexeme)
		return nil
	}
}

func (in *Interpreter) VisitLogical(e *ast.Logical) any {
	left := in.eval(e.Left)
	if e.Op.Type == token.OR {
		if isTruthy(left) {
			return left
		}
	} else if !isTruthy(left) {
		return left
	}
	return in.eval(e.Right)
}

func (in *Interpreter) VisitBinary(e *ast.Binary) any {
	left := in.eval(e.Left)
	right := in.eval(e.Right)

	switch e.Op.Type {
	case token.PLUS:
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs
			}
		}
		throwRuntime(e.Op.Pos, "Operands must be two numbers or two strings.")
	case token.MINUS:
		return numOp(e.Op, left, right, func(a, b float64) float64 { return a - b })
	case token.STAR:
		return numOp(e.Op, left, right, func(a, b float64) float64 { return a * b })
	case token.SLASH:
		ln, rn := requireNumbers(e.Op, left, right)
		if rn == 0 {
			throwRuntime(e.Op.Pos, "Division by zero.")
		}
		return ln / rn
	case token.GREATER:
		ln, rn := requireNumbers(e.Op, left, right)
		return ln > rn
	case token.GREATER_EQUAL:
		ln, rn := requireNumbers(e.Op, left, right)
		return ln >= rn
	case token.LESS:
		ln, rn := requireNumbers(e.Op, left, right)
		return ln < rn
	case token.LESS_EQUAL:
		ln, rn := requireNumbers(e.Op, left, right)
		return ln <= rn
	case token.EQUAL_EQUAL:
		return isEqual(left, right)
	case token.BANG_EQUAL:
		return !isEqual(left, right)
	}

	throwRuntime(e.Op.Pos, "Unknown binary operator '%s'.", e.Op.Lexeme)
	return nil
}

func numOp(op token.Token, left, right any, f func(a, b float64) float64) float64 {
	ln, rn := requireNumbers(op, left, right)
	return f(ln, rn)
}

func requireNumbers(op token.Token, left, right any) (float64, float64) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		throwRuntime(op.Pos, "Operands must be numbers.")
	}
	return ln, rn
}

func (in *Interpreter) VisitCall(e *ast.Call) any {
	callee := in.eval(e.Callee)

	args := make([]any, len(e.Args))
	for i, a := range e.Args {
		args[i] = in.eval(a)
	}

	fn, ok := callee.(Callable)
	if !ok {
		throwRuntime(e.Paren.Pos, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		throwRuntime(e.Paren.Pos, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	result, err := fn.Call(in, args)
	if err != nil {
		panic(err)
	}
	return result
}

func (in *Interpreter) VisitGet(e *ast.Get) any {
	obj := in.eval(e.Object)
	inst, ok := obj.(*Instance)
	if !ok {
		throwRuntime(e.Name.Pos, "Only instances have properties.")
	}
	v, ok := inst.Get(e.Name.Lexeme)
	if !ok {
		throwRuntime(e.Name.Pos, "Undefined property '%s'.", e.Name.Lexeme)
	}
	return v
}

func (in *Interpreter) VisitSet(e *ast.Set) any {
	obj := in.eval(e.Object)
	inst, ok := obj.(*Instance)
	if !ok {
		throwRuntime(e.Name.Pos, "Only instances have fields.")
	}
	value := in.eval(e.Value)
	inst.Set(e.Name.Lexeme, value)
	return value
}

func (in *Interpreter) VisitThis(e *ast.This) any {
	distance, ok := in.depths[e]
	if !ok {
		throwRuntime(e.Keyword.Pos, "Can't use 'this' outside of a class.")
	}
	return in.environment.GetAt(distance, "this")
}

func (in *Interpreter) VisitSuper(e *ast.Super) any {
	distance := in.depths[e]
	super := in.environment.GetAt(distance, "super").(*Class)
	instance := in.environment.GetAt(distance-1, "this").(*Instance)

	method, ok := super.FindMethod(e.Method.Lexeme)
	if !ok {
		throwRuntime(e.Method.Pos, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.bind(instance)
}

var (
	_ ast.ExprVisitor = (*Interpreter)(nil)
	_ ast.StmtVisitor = (*Interpreter)(nil)
)
