package interp

import (
	"fmt"

	"github.com/loxlang/golox/pkg/ast"
)

// Callable is anything invocable with `(args...)`: user-defined
// functions and methods, classes (instantiation), and native functions.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []any) (any, error)
	String() string
}

// Function is a user-defined function or method, closing over the
// environment active at its declaration site, not the caller's.
type Function struct {
	decl          *ast.FuncDecl
	closure       *Environment
	isInitializer bool
}

func (f *Function) Arity() int { return len(f.decl.Params) }

func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.decl.Name.Lexeme) }

// bind returns a copy of f whose closure is extended with `this` bound
// to instance — used when a method is looked up off an Instance.
func (f *Function) bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return &Function{decl: f.decl, closure: env, isInitializer: f.isInitializer}
}

// Call pushes a frame on top of the closure (not the caller's current
// environment), binds parameters, and runs the body. A `return` inside
// unwinds via returnSignal, caught here.
func (f *Function) Call(in *Interpreter, args []any) (result any, err error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	defer func() {
		if r := recover(); r != nil {
			if ret, ok := r.(returnSignal); ok {
				if f.isInitializer {
					result = f.closure.GetAt(0, "this")
				} else {
					result = ret.value
				}
				return
			}
			panic(r)
		}
	}()

	in.executeBlock(f.decl.Body.Statements, env)

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

// returnSignal unwinds the Go call stack from a `return` statement back
// up to the enclosing Function.Call, panic/recover standing in for the
// non-local control transfer a tree-walking evaluator needs.
type returnSignal struct{ value any }

// NativeFunction wraps a host-provided builtin, e.g. clock().
type NativeFunction struct {
	name  string
	arity int
	fn    func(in *Interpreter, args []any) (any, error)
}

func (n *NativeFunction) Arity() int                                   { return n.arity }
func (n *NativeFunction) String() string                               { return fmt.Sprintf("<native fn %s>", n.name) }
func (n *NativeFunction) Call(in *Interpreter, args []any) (any, error) { return n.fn(in, args) }
