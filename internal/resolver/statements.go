package resolver

import (
	"github.com/nightjar-lang/nightjar/internal/ast"
	"github.com/nightjar-lang/nightjar/internal/diagnostics"
)

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(n.Statements)
		r.endScope()

	case *ast.Class:
		r.resolveClass(n)

	case *ast.Expression:
		r.resolveExpr(n.Expression)

	case *ast.Function:
		r.declare(n.Name)
		r.define(n.Name.Lexeme)
		r.resolveFunction(n, fnFunction)

	case *ast.If:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.Then)
		if n.Else != nil {
			r.resolveStmt(n.Else)
		}

	case *ast.Print:
		r.resolveExpr(n.Expression)

	case *ast.Return:
		if r.currentFunction == fnNone {
			r.errorAt(n.Keyword, diagnostics.ErrReturnOutside, "Can't return from top-level code.")
		}
		if n.Value != nil {
			if r.currentFunction == fnInitializer {
				r.errorAt(n.Keyword, diagnostics.ErrReturnFromInit, "Can't return a value from an initializer.")
			}
			r.resolveExpr(n.Value)
		}

	case *ast.Var:
		r.declare(n.Name)
		if n.Initializer != nil {
			r.resolveExpr(n.Initializer)
		}
		r.define(n.Name.Lexeme)

	case *ast.While:
		r.resolveExpr(n.Condition)
		enclosingLoop := r.inLoop
		r.inLoop = true
		r.resolveStmt(n.Body)
		r.inLoop = enclosingLoop

	case *ast.Break:
		if !r.inLoop {
			r.errorAt(n.Keyword, diagnostics.ErrBreakOutside, "Can't use 'break' outside of a loop.")
		}
	}
}

// resolveFunction resolves a function/method body in its own scope,
// saving and restoring currentFunction around the traversal per spec
// §4.3.
func (r *Resolver) resolveFunction(fn *ast.Function, kind functionType) {
	enclosing := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param.Lexeme)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosing
}

// resolveClass implements spec §4.3's Class scope effects: declare the
// class name, track currentClass, resolve an optional superclass
// expression, open a `super` scope and a `this` scope around every
// method body.
func (r *Resolver) resolveClass(n *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(n.Name)
	r.define(n.Name.Lexeme)

	if n.Superclass != nil {
		if n.Superclass.Name.Lexeme == n.Name.Lexeme {
			r.errorAt(n.Superclass.Name, diagnostics.ErrSelfInherit, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpr(n.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range n.Methods {
		kind := fnMethod
		if method.Name.Lexeme == "init" {
			kind = fnInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope() // this

	if n.Superclass != nil {
		r.endScope() // super
	}

	r.currentClass = enclosingClass
}
