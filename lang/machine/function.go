package machine

import (
	"fmt"

	"github.com/mna/loxi/lang/ast"
)

// LoxFunction is a function or method defined by a Lox function declaration,
// together with the environment in which it was declared — its closure.
type LoxFunction struct {
	Decl          *ast.Function
	Closure       *Environment
	IsInitializer bool
}

var (
	_ Value    = (*LoxFunction)(nil)
	_ Callable = (*LoxFunction)(nil)
)

func (f *LoxFunction) String() string { return fmt.Sprintf("<fun %s>", f.Decl.Name.Lexeme) }
func (f *LoxFunction) Type() string   { return "function" }
func (f *LoxFunction) Name() string   { return f.Decl.Name.Lexeme }
func (f *LoxFunction) Arity() int     { return len(f.Decl.Params) }

// bind returns a copy of f whose closure additionally binds `this` to
// receiver, used to produce the method value returned by an instance
// property lookup. receiver is usually an *Instance, but a class method is
// bound to its *Class instead, so `this` inside a class method refers to the
// class itself.
func (f *LoxFunction) bind(receiver Value) *LoxFunction {
	env := NewEnvironment(f.Closure)
	env.Define("this", receiver)
	return &LoxFunction{Decl: f.Decl, Closure: env, IsInitializer: f.IsInitializer}
}

// Call invokes f with args already checked for arity by the caller. A bare
// `return;` or falling off the end of the body yields nil, except inside an
// initializer, which always yields the instance it was bound to regardless
// of what (if anything) it returns.
func (f *LoxFunction) Call(i *Interp, args []Value) (result Value, err error) {
	env := NewEnvironment(f.Closure)
	for idx, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[idx])
	}

	defer func() {
		if r := recover(); r != nil {
			ret, ok := r.(returnSignal)
			if !ok {
				panic(r)
			}
			if f.IsInitializer {
				result = f.Closure.GetAt(0, "this")
			} else {
				result = ret.value
			}
		}
	}()

	err = i.execBlock(f.Decl.Body, env)
	if err != nil {
		return nil, err
	}
	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	return Nil, nil
}
