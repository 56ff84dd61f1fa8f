package evaluator

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/nightjar-lang/nightjar/internal/ast"
	"github.com/nightjar-lang/nightjar/internal/diagnostics"
)

// execStmt executes one statement in env, returning a non-none signal
// if it triggered a return or break that must propagate to an
// enclosing loop or call.
func (e *Evaluator) execStmt(s ast.Stmt, env *Environment) (signal, *diagnostics.Error) {
	switch n := s.(type) {
	case *ast.Block:
		return e.execBlock(n.Statements, NewEnclosedEnvironment(env))

	case *ast.Class:
		return e.execClass(n, env)

	case *ast.Expression:
		_, err := e.evalExpr(n.Expression, env)
		return noSignal, err

	case *ast.Function:
		fn := &Function{Declaration: n, Closure: env}
		env.Define(n.Name.Lexeme, fn)
		return noSignal, nil

	case *ast.If:
		cond, err := e.evalExpr(n.Condition, env)
		if err != nil {
			return noSignal, err
		}
		if Truthy(cond) {
			return e.execStmt(n.Then, env)
		} else if n.Else != nil {
			return e.execStmt(n.Else, env)
		}
		return noSignal, nil

	case *ast.Print:
		val, err := e.evalExpr(n.Expression, env)
		if err != nil {
			return noSignal, err
		}
		fmt.Fprintln(e.out, Stringify(val))
		return noSignal, nil

	case *ast.Return:
		var val Object = Nil
		if n.Value != nil {
			v, err := e.evalExpr(n.Value, env)
			if err != nil {
				return noSignal, err
			}
			val = v
		}
		return signal{kind: signalReturn, value: val}, nil

	case *ast.Var:
		// A global not yet bound is bound to nil before its initializer
		// runs, so a top-level `var a = a;` reads nil.
		if env == e.Globals {
			if _, ok := env.Get(n.Name.Lexeme); !ok {
				env.Define(n.Name.Lexeme, Nil)
			}
		}
		val := Object(Nil)
		if n.Initializer != nil {
			v, err := e.evalExpr(n.Initializer, env)
			if err != nil {
				return noSignal, err
			}
			val = v
		}
		env.Define(n.Name.Lexeme, val)
		return noSignal, nil

	case *ast.While:
		for {
			cond, err := e.evalExpr(n.Condition, env)
			if err != nil {
				return noSignal, err
			}
			if !Truthy(cond) {
				return noSignal, nil
			}
			sig, err := e.execStmt(n.Body, env)
			if err != nil {
				return noSignal, err
			}
			if sig.kind == signalBreak {
				return noSignal, nil
			}
			if sig.kind == signalReturn {
				return sig, nil
			}
		}

	case *ast.Break:
		return signal{kind: signalBreak}, nil
	}

	return noSignal, nil
}

// execBlock runs a sequence of statements in env (already a fresh
// child scope for Block; call sites that need the enclosing scope
// itself, like a function body, pass it directly).
func (e *Evaluator) execBlock(stmts []ast.Stmt, env *Environment) (signal, *diagnostics.Error) {
	for _, stmt := range stmts {
		sig, err := e.execStmt(stmt, env)
		if err != nil {
			return noSignal, err
		}
		if sig.kind != signalNone {
			return sig, nil
		}
	}
	return noSignal, nil
}

// execClass implements spec §4.4's Class-statement procedure: resolve
// an optional superclass (must be a Class object), bind the class name
// to a placeholder so methods may refer to it recursively, open a
// `super` scope if there is a superclass, build the method table, then
// assemble and assign the finished Class.
func (e *Evaluator) execClass(n *ast.Class, env *Environment) (signal, *diagnostics.Error) {
	var superclass *Class
	if n.Superclass != nil {
		sup, err := e.evalExpr(n.Superclass, env)
		if err != nil {
			return noSignal, err
		}
		sc, ok := sup.(*Class)
		if !ok {
			return noSignal, diagnostics.New(diagnostics.Runtime, diagnostics.ErrNotAClass, n.Superclass.Name,
				"Superclass must be a class.")
		}
		superclass = sc
	}

	env.Define(n.Name.Lexeme, Nil)

	methodEnv := env
	if superclass != nil {
		methodEnv = NewEnclosedEnvironment(env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(n.Methods))
	for _, m := range n.Methods {
		methods[m.Name.Lexeme] = &Function{
			Declaration:   m,
			Closure:       methodEnv,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &Class{ID: uuid.New(), Name: n.Name.Lexeme, Superclass: superclass, Methods: methods}

	if !env.Assign(n.Name.Lexeme, class) {
		return noSignal, diagnostics.New(diagnostics.Runtime, diagnostics.ErrUndefinedVar, n.Name,
			fmt.Sprintf("Undefined variable '%s'.", n.Name.Lexeme))
	}
	return noSignal, nil
}
