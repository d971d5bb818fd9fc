package machine

import (
	"fmt"

	"github.com/mna/loxi/lang/ast"
)

func (i *Interp) execStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Block:
		return i.execBlock(s.Stmts, NewEnvironment(i.env))

	case *ast.Break:
		panic(breakSignal{})

	case *ast.Class:
		return i.execClass(s)

	case *ast.Expression:
		_, err := i.evaluate(s.Expr)
		return err

	case *ast.Function:
		fn := &LoxFunction{Decl: s, Closure: i.env}
		i.env.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.If:
		cond, err := i.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if IsTruthy(cond) {
			return i.execStmt(s.Then)
		}
		if s.Else != nil {
			return i.execStmt(s.Else)
		}
		return nil

	case *ast.Print:
		v, err := i.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.Output, v.String())
		return nil

	case *ast.Return:
		var v Value = Nil
		if s.Value != nil {
			val, err := i.evaluate(s.Value)
			if err != nil {
				return err
			}
			v = val
		}
		panic(returnSignal{value: v})

	case *ast.Var:
		var v Value = Nil
		if s.Initializer != nil {
			val, err := i.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			v = val
		}
		i.env.Define(s.Name.Lexeme, v)
		return nil

	case *ast.While:
		return i.execWhile(s)

	default:
		panic("machine: unhandled statement type")
	}
}

// execBlock runs stmts in env, restoring the previous environment on the way
// out even if a statement panics with a return or break signal.
func (i *Interp) execBlock(stmts []ast.Stmt, env *Environment) error {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, s := range stmts {
		if err := i.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// execWhile recovers a breakSignal panicked by a break statement anywhere in
// the loop body, ending the loop without propagating further.
func (i *Interp) execWhile(s *ast.While) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(breakSignal); ok {
				return
			}
			panic(r)
		}
	}()

	for {
		cond, cerr := i.evaluate(s.Cond)
		if cerr != nil {
			return cerr
		}
		if !IsTruthy(cond) {
			return nil
		}
		if err = i.execStmt(s.Body); err != nil {
			return err
		}
	}
}

func (i *Interp) execClass(s *ast.Class) error {
	methods := make(map[string]*LoxFunction, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &LoxFunction{Decl: m, Closure: i.env, IsInitializer: m.Name.Lexeme == "init"}
	}
	getters := make(map[string]*LoxFunction, len(s.Getters))
	for _, g := range s.Getters {
		getters[g.Name.Lexeme] = &LoxFunction{Decl: g, Closure: i.env}
	}
	classMethods := make(map[string]*LoxFunction, len(s.ClassMethods))
	for _, m := range s.ClassMethods {
		classMethods[m.Name.Lexeme] = &LoxFunction{Decl: m, Closure: i.env}
	}

	class := NewClass(s.Name.Lexeme, methods, getters, classMethods)
	i.env.Define(s.Name.Lexeme, class)
	return nil
}
