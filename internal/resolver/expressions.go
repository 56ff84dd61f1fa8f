package resolver

import (
	"github.com/nightjar-lang/nightjar/internal/ast"
	"github.com/nightjar-lang/nightjar/internal/diagnostics"
)

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][n.Name.Lexeme]; ok && !defined {
				r.errorAt(n.Name, diagnostics.ErrSelfRead, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(n, n.Name.Lexeme)

	case *ast.Assign:
		r.resolveExpr(n.Value)
		r.resolveLocal(n, n.Name.Lexeme)

	case *ast.Binary:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case *ast.Call:
		r.resolveExpr(n.Callee)
		for _, arg := range n.Arguments {
			r.resolveExpr(arg)
		}

	case *ast.Get:
		r.resolveExpr(n.Object)

	case *ast.Grouping:
		r.resolveExpr(n.Expression)

	case *ast.Literal:
		// nothing to resolve

	case *ast.Logical:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case *ast.Set:
		r.resolveExpr(n.Value)
		r.resolveExpr(n.Object)

	case *ast.This:
		if r.currentClass == classNone {
			r.errorAt(n.Keyword, diagnostics.ErrThisOutside, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(n, "this")

	case *ast.Super:
		if r.currentClass == classNone {
			r.errorAt(n.Keyword, diagnostics.ErrSuperOutside, "Can't use 'super' outside of a class.")
		} else if r.currentClass != classSubclass {
			r.errorAt(n.Keyword, diagnostics.ErrSuperNoSuperclass, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(n, "super")

	case *ast.Unary:
		r.resolveExpr(n.Right)
	}
}
