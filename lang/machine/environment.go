package machine

import "github.com/dolthub/swiss"

// Environment is a lexical scope: a map of names to values, chained to its
// enclosing scope. The global environment is the one with a nil enclosing
// scope.
type Environment struct {
	vars      *swiss.Map[string, Value]
	enclosing *Environment
}

// NewEnvironment returns an environment enclosed by parent, or a fresh global
// environment if parent is nil.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{vars: swiss.NewMap[string, Value](8), enclosing: parent}
}

// Define binds name to v in this environment, shadowing any binding of the
// same name in an enclosing scope. Lox allows redefining a name in the same
// scope (`var a = 1; var a = 2;` at global scope is legal), so Define never
// fails.
func (e *Environment) Define(name string, v Value) {
	e.vars.Put(name, v)
}

// Get returns the value bound to name in this environment or its ancestors.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.vars.Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// GetAt returns the value bound to name in the ancestor environment exactly
// distance scopes up from e, as computed by the resolver.
func (e *Environment) GetAt(distance int, name string) Value {
	env := e.ancestor(distance)
	v, _ := env.vars.Get(name)
	return v
}

// Assign rebinds name to v wherever it is already bound in this environment
// or an ancestor, reporting false if it is undefined anywhere in the chain.
func (e *Environment) Assign(name string, v Value) bool {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.vars.Get(name); ok {
			env.vars.Put(name, v)
			return true
		}
	}
	return false
}

// AssignAt rebinds name to v in the ancestor environment exactly distance
// scopes up from e.
func (e *Environment) AssignAt(distance int, name string, v Value) {
	env := e.ancestor(distance)
	env.vars.Put(name, v)
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}
