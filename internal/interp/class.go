package interp

import "fmt"

// Class is a Lox class: a name, an optional superclass for single
// inheritance, and its own methods. Calling a Class instantiates it.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) String() string { return c.Name }

// FindMethod looks up a method on c, then its superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call instantiates c, running its `init` method (if any) against the
// new Instance.
func (c *Class) Call(in *Interpreter, args []any) (any, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a runtime object produced by instantiating a Class. Fields
// are created ad hoc by the first assignment to them; method lookups
// fall through to the class (and its superclass chain) and are bound to
// this instance on access.
type Instance struct {
	class  *Class
	fields map[string]any
}

// NewInstance creates a zero-field instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]any)}
}

func (i *Instance) String() string { return fmt.Sprintf("%s instance", i.class.Name) }

func (i *Instance) Get(name string) (any, bool) {
	if v, ok := i.fields[name]; ok {
		return v, true
	}
	if m, ok := i.class.FindMethod(name); ok {
		return m.bind(i), true
	}
	return nil, false
}

func (i *Instance) Set(name string, value any) {
	i.fields[name] = value
}
