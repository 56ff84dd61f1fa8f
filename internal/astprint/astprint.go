// Package astprint renders an expression tree as a parenthesized
// s-expression for debugging, ported from the reference implementation's
// ast_printer.rs (there is no equivalent in the teacher project, which
// formats source rather than debug-printing an already-parsed tree).
package astprint

import (
	"fmt"
	"strings"

	"github.com/nightjar-lang/nightjar/internal/ast"
)

// Expr renders e as a parenthesized prefix expression, e.g.
// `(+ 1 (* 2 3))`.
func Expr(e ast.Expr) string {
	if e == nil {
		return "nil"
	}
	switch n := e.(type) {
	case *ast.Assign:
		return parenthesize("= "+n.Name.Lexeme, n.Value)
	case *ast.Binary:
		return parenthesize(n.Operator.Lexeme, n.Left, n.Right)
	case *ast.Call:
		parts := []ast.Expr{n.Callee}
		parts = append(parts, n.Arguments...)
		return parenthesize("call", parts...)
	case *ast.Get:
		return parenthesize("get "+n.Name.Lexeme, n.Object)
	case *ast.Grouping:
		return parenthesize("group", n.Expression)
	case *ast.Literal:
		return literalString(n.Value)
	case *ast.Logical:
		return parenthesize(n.Operator.Lexeme, n.Left, n.Right)
	case *ast.Set:
		return parenthesize("set "+n.Name.Lexeme, n.Object, n.Value)
	case *ast.This:
		return "this"
	case *ast.Super:
		return "(super " + n.Method.Lexeme + ")"
	case *ast.Unary:
		return parenthesize(n.Operator.Lexeme, n.Right)
	case *ast.Variable:
		return n.Name.Lexeme
	default:
		return fmt.Sprintf("<?%T>", e)
	}
}

func literalString(v interface{}) string {
	if v == nil {
		return "nil"
	}
	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", x)
	}
}

func parenthesize(name string, exprs ...ast.Expr) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		b.WriteString(Expr(e))
	}
	b.WriteByte(')')
	return b.String()
}

// Stmt renders a single statement for debugging; blocks and control
// flow recurse into Expr for their embedded expressions and into Stmt
// for embedded statements.
func Stmt(s ast.Stmt) string {
	if s == nil {
		return "nil"
	}
	switch n := s.(type) {
	case *ast.Block:
		var b strings.Builder
		b.WriteString("(block")
		for _, inner := range n.Statements {
			b.WriteByte(' ')
			b.WriteString(Stmt(inner))
		}
		b.WriteByte(')')
		return b.String()
	case *ast.Class:
		return "(class " + n.Name.Lexeme + ")"
	case *ast.Expression:
		return parenthesize(";", n.Expression)
	case *ast.Function:
		return "(fun " + n.Name.Lexeme + ")"
	case *ast.If:
		if n.Else != nil {
			return "(if " + Expr(n.Condition) + " " + Stmt(n.Then) + " " + Stmt(n.Else) + ")"
		}
		return "(if " + Expr(n.Condition) + " " + Stmt(n.Then) + ")"
	case *ast.Print:
		return parenthesize("print", n.Expression)
	case *ast.Return:
		if n.Value != nil {
			return parenthesize("return", n.Value)
		}
		return "(return)"
	case *ast.Var:
		if n.Initializer != nil {
			return parenthesize("var "+n.Name.Lexeme, n.Initializer)
		}
		return "(var " + n.Name.Lexeme + ")"
	case *ast.While:
		return "(while " + Expr(n.Condition) + " " + Stmt(n.Body) + ")"
	case *ast.Break:
		return "(break)"
	default:
		return fmt.Sprintf("<?%T>", s)
	}
}
