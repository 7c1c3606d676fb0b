package interp

import (
	"github.com/dolthub/swiss"

	"github.com/loxlang/golox/internal/errors"
	"github.com/loxlang/golox/pkg/token"
)

// Environment is one frame of the lexical scope chain: a name -> value
// map plus a link to the enclosing frame. The resolver precomputes how
// many frames back a given reference lives, so the evaluator can jump
// straight to the right frame via GetAt/AssignAt instead of walking the
// chain; Get/Assign still walk it for names the resolver left
// unresolved, falling back all the way to the global frame.
type Environment struct {
	values    *swiss.Map[string, any]
	enclosing *Environment
}

// NewEnvironment creates a frame nested inside enclosing, or a fresh
// global frame when enclosing is nil.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{values: swiss.NewMap[string, any](8), enclosing: enclosing}
}

// Define binds name to value in this frame, overwriting any existing
// binding. Redeclaring `var x` at global scope is allowed; the resolver
// rejects a redeclaration inside a local scope before evaluation.
func (e *Environment) Define(name string, value any) {
	e.values.Put(name, value)
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads the binding `distance` frames up, as computed by the
// resolver.
func (e *Environment) GetAt(distance int, name string) any {
	v, _ := e.ancestor(distance).values.Get(name)
	return v
}

// AssignAt writes the binding `distance` frames up.
func (e *Environment) AssignAt(distance int, name string, value any) {
	e.ancestor(distance).values.Put(name, value)
}

// Get walks the frame chain to the global frame, for references the
// resolver could not bind to a local scope.
func (e *Environment) Get(name token.Token) (any, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values.Get(name.Lexeme); ok {
			return v, nil
		}
	}
	return nil, errors.NewRuntimeError(name.Pos, "Undefined variable '%s'.", name.Lexeme)
}

// Assign walks the frame chain to the global frame and overwrites the
// first existing binding found, for references the resolver could not
// bind to a local scope.
func (e *Environment) Assign(name token.Token, value any) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values.Get(name.Lexeme); ok {
			env.values.Put(name.Lexeme, value)
			return nil
		}
	}
	return errors.NewRuntimeError(name.Pos, "Undefined variable '%s'.", name.Lexeme)
}
