// Package machine implements the runtime value model and the tree-walking
// evaluator that executes a resolved program directly over its AST, without
// an intermediate bytecode representation.
package machine

import "fmt"

// Value is the interface implemented by every value a Lox program can
// produce or operate on.
type Value interface {
	// String returns the value's representation as printed by the `print`
	// statement and the REPL.
	String() string

	// Type returns a short string naming the value's runtime type.
	Type() string
}

// Callable is implemented by any value that may appear as the callee of a
// call expression: user-defined functions, classes (as constructors) and
// native functions.
type Callable interface {
	Value
	Name() string
	Arity() int
	Call(i *Interp, args []Value) (Value, error)
}

// HasAttrs is implemented by values that support property reads via `.`,
// namely class instances and classes themselves (for static methods). i is
// threaded through so that a getter — a property read that runs code — can
// evaluate its body.
type HasAttrs interface {
	Value
	GetAttr(i *Interp, name string) (Value, bool, error)
}

// HasSetAttr is implemented by values that support property writes via `.`.
type HasSetAttr interface {
	HasAttrs
	SetAttr(name string, v Value)
}

// NilType is the type of the nil value; Nil is its only inhabitant.
type NilType byte

// Nil is the value of the `nil` literal.
const Nil = NilType(0)

var _ Value = Nil

func (NilType) String() string { return "nil" }
func (NilType) Type() string   { return "nil" }

// Bool is a boolean value.
type Bool bool

var _ Value = Bool(false)

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (Bool) Type() string { return "bool" }

// Number is a double-precision floating point value; Lox has no separate
// integer type.
type Number float64

var _ Value = Number(0)

// String formats the number the way the reference implementation does:
// trailing ".0" is stripped for integral values.
func (n Number) String() string {
	s := fmt.Sprintf("%g", float64(n))
	return s
}
func (Number) Type() string { return "number" }

// String is a Lox string value.
type String string

var _ Value = String("")

func (s String) String() string { return string(s) }
func (String) Type() string     { return "string" }

// IsTruthy implements Lox's truthiness rule: everything is truthy except
// `nil` and `false`.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case NilType:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// Equal implements Lox's `==`/`!=` semantics: values of different runtime
// types are never equal, nil equals only nil, and everything else compares
// by value (strings, numbers, booleans) or identity (functions, classes,
// instances).
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case NilType:
		_, ok := b.(NilType)
		return ok
	case Bool:
		bb, ok := b.(Bool)
		return ok && a == bb
	case Number:
		bb, ok := b.(Number)
		return ok && a == bb
	case String:
		bb, ok := b.(String)
		return ok && a == bb
	default:
		return a == b
	}
}
