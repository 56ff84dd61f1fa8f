package evaluator

import (
	"fmt"

	"github.com/nightjar-lang/nightjar/internal/ast"
	"github.com/nightjar-lang/nightjar/internal/diagnostics"
	"github.com/nightjar-lang/nightjar/internal/token"
)

func (e *Evaluator) evalExpr(expr ast.Expr, env *Environment) (Object, *diagnostics.Error) {
	switch n := expr.(type) {
	case *ast.Literal:
		return literalObject(n.Value), nil

	case *ast.Grouping:
		return e.evalExpr(n.Expression, env)

	case *ast.Unary:
		right, err := e.evalExpr(n.Right, env)
		if err != nil {
			return nil, err
		}
		switch n.Operator.Type {
		case token.MINUS:
			num, ok := right.(Number)
			if !ok {
				return nil, runtimeErr(n.Operator, diagnostics.ErrNotANumber, "Operand must be a number.")
			}
			return -num, nil
		case token.BANG:
			return Bool(!Truthy(right)), nil
		}
		return nil, runtimeErr(n.Operator, diagnostics.ErrIllegalOperation, "Illegal operation.")

	case *ast.Binary:
		return e.evalBinary(n, env)

	case *ast.Logical:
		left, err := e.evalExpr(n.Left, env)
		if err != nil {
			return nil, err
		}
		if n.Operator.Type == token.OR {
			if Truthy(left) {
				return left, nil
			}
			return e.evalExpr(n.Right, env)
		}
		// AND
		if !Truthy(left) {
			return left, nil
		}
		return e.evalExpr(n.Right, env)

	case *ast.Variable:
		return e.lookupVariable(n.Name, n.ID(), env)

	case *ast.Assign:
		val, err := e.evalExpr(n.Value, env)
		if err != nil {
			return nil, err
		}
		if err := e.assignVariable(n.Name, n.ID(), env, val); err != nil {
			return nil, err
		}
		return val, nil

	case *ast.Call:
		return e.evalCall(n, env)

	case *ast.Get:
		obj, err := e.evalExpr(n.Object, env)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, runtimeErr(n.Name, diagnostics.ErrNotInstance, "Only instances have properties.")
		}
		val, ok := inst.Get(n.Name.Lexeme)
		if !ok {
			return nil, runtimeErr(n.Name, diagnostics.ErrUndefinedProp,
				fmt.Sprintf("Undefined property '%s'.", n.Name.Lexeme))
		}
		return val, nil

	case *ast.Set:
		obj, err := e.evalExpr(n.Object, env)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, runtimeErr(n.Name, diagnostics.ErrNotInstance, "Only instances have fields.")
		}
		val, err := e.evalExpr(n.Value, env)
		if err != nil {
			return nil, err
		}
		inst.Fields[n.Name.Lexeme] = val
		return val, nil

	case *ast.This:
		return e.lookupVariable(n.Keyword, n.ID(), env)

	case *ast.Super:
		return e.evalSuper(n, env)
	}

	return nil, runtimeErr(token.Token{}, diagnostics.ErrIllegalOperation, "Illegal operation.")
}

func literalObject(v interface{}) Object {
	switch val := v.(type) {
	case nil:
		return Nil
	case bool:
		return Bool(val)
	case float64:
		return Number(val)
	case string:
		return Str(val)
	default:
		return Nil
	}
}

func runtimeErr(tok token.Token, code, message string) *diagnostics.Error {
	return diagnostics.New(diagnostics.Runtime, code, tok, message)
}

func (e *Evaluator) evalBinary(n *ast.Binary, env *Environment) (Object, *diagnostics.Error) {
	left, err := e.evalExpr(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Operator.Type {
	case token.PLUS:
		if ln, ok := left.(Number); ok {
			if rn, ok := right.(Number); ok {
				return ln + rn, nil
			}
			if rs, ok := right.(Str); ok {
				return Str(Stringify(ln)) + rs, nil
			}
		}
		if ls, ok := left.(Str); ok {
			if rs, ok := right.(Str); ok {
				return ls + rs, nil
			}
			if rn, ok := right.(Number); ok {
				return ls + Str(Stringify(rn)), nil
			}
		}
		return nil, runtimeErr(n.Operator, diagnostics.ErrIllegalOperation, "Illegal operation.")

	case token.STAR:
		if ln, ok := left.(Number); ok {
			if rn, ok := right.(Number); ok {
				return ln * rn, nil
			}
			if rs, ok := right.(Str); ok {
				return RepeatString(string(rs), ln), nil
			}
		}
		if ls, ok := left.(Str); ok {
			if rn, ok := right.(Number); ok {
				return RepeatString(string(ls), rn), nil
			}
		}
		return nil, runtimeErr(n.Operator, diagnostics.ErrIllegalOperation, "Illegal operation.")

	case token.MINUS:
		ln, rn, ok := numberPair(left, right)
		if !ok {
			return nil, runtimeErr(n.Operator, diagnostics.ErrNotANumber, "Operands must be numbers.")
		}
		return ln - rn, nil

	case token.SLASH:
		ln, rn, ok := numberPair(left, right)
		if !ok {
			return nil, runtimeErr(n.Operator, diagnostics.ErrNotANumber, "Operands must be numbers.")
		}
		return ln / rn, nil

	case token.GREATER:
		ln, rn, ok := numberPair(left, right)
		if !ok {
			return nil, runtimeErr(n.Operator, diagnostics.ErrNotANumber, "Operands must be numbers.")
		}
		return Bool(ln > rn), nil

	case token.GREATER_EQUAL:
		ln, rn, ok := numberPair(left, right)
		if !ok {
			return nil, runtimeErr(n.Operator, diagnostics.ErrNotANumber, "Operands must be numbers.")
		}
		return Bool(ln >= rn), nil

	case token.LESS:
		ln, rn, ok := numberPair(left, right)
		if !ok {
			return nil, runtimeErr(n.Operator, diagnostics.ErrNotANumber, "Operands must be numbers.")
		}
		return Bool(ln < rn), nil

	case token.LESS_EQUAL:
		ln, rn, ok := numberPair(left, right)
		if !ok {
			return nil, runtimeErr(n.Operator, diagnostics.ErrNotANumber, "Operands must be numbers.")
		}
		return Bool(ln <= rn), nil

	case token.EQUAL_EQUAL:
		return Bool(Equal(left, right)), nil

	case token.BANG_EQUAL:
		return Bool(!Equal(left, right)), nil
	}

	return nil, runtimeErr(n.Operator, diagnostics.ErrIllegalOperation, "Illegal operation.")
}

func numberPair(left, right Object) (Number, Number, bool) {
	ln, ok := left.(Number)
	if !ok {
		return 0, 0, false
	}
	rn, ok := right.(Number)
	if !ok {
		return 0, 0, false
	}
	return ln, rn, true
}

func (e *Evaluator) evalCall(n *ast.Call, env *Environment) (Object, *diagnostics.Error) {
	callee, err := e.evalExpr(n.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]Object, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		v, err := e.evalExpr(a, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	switch callee := callee.(type) {
	case *Function:
		if len(args) != callee.Arity() {
			return nil, runtimeErr(n.Paren, diagnostics.ErrArity,
				fmt.Sprintf("Expected %d arguments but got %d.", callee.Arity(), len(args)))
		}
		return e.callFunction(callee, args)

	case *Class:
		if len(args) != callee.Arity() {
			return nil, runtimeErr(n.Paren, diagnostics.ErrArity,
				fmt.Sprintf("Expected %d arguments but got %d.", callee.Arity(), len(args)))
		}
		instance := NewInstance(callee)
		if init := callee.FindMethod("init"); init != nil {
			if _, err := e.callFunction(init.Bind(instance), args); err != nil {
				return nil, err
			}
		}
		return instance, nil

	case *Native:
		if len(args) != callee.Arity {
			return nil, runtimeErr(n.Paren, diagnostics.ErrArity,
				fmt.Sprintf("Expected %d arguments but got %d.", callee.Arity, len(args)))
		}
		return callee.Fn(args)

	default:
		return nil, runtimeErr(n.Paren, diagnostics.ErrNotCallable, "Can only call functions and classes.")
	}
}

// callFunction executes fn's body in a fresh environment enclosing its
// closure, with parameters bound to args. A Return signal supplies the
// result; normal completion yields Nil, except for initializers, which
// always return the `this` bound in their own closure (spec §4.4).
func (e *Evaluator) callFunction(fn *Function, args []Object) (Object, *diagnostics.Error) {
	callEnv := NewEnclosedEnvironment(fn.Closure)
	for i, param := range fn.Declaration.Params {
		callEnv.Define(param.Lexeme, args[i])
	}

	sig, err := e.execBlock(fn.Declaration.Body, callEnv)
	if err != nil {
		return nil, err
	}

	if fn.IsInitializer {
		return fn.Closure.GetAt(0, "this"), nil
	}
	if sig.kind == signalReturn {
		return sig.value, nil
	}
	return Nil, nil
}

// evalSuper resolves a `super.method` expression: the resolver-recorded
// distance locates the environment holding `super`; `this` lives one
// scope below it.
func (e *Evaluator) evalSuper(n *ast.Super, env *Environment) (Object, *diagnostics.Error) {
	distance, ok := e.depths[n.ID()]
	if !ok {
		return nil, runtimeErr(n.Keyword, diagnostics.ErrUndefinedVar, "Undefined variable 'super'.")
	}
	superclass, _ := env.GetAt(distance, "super").(*Class)
	instance, _ := env.GetAt(distance-1, "this").(*Instance)

	method := superclass.FindMethod(n.Method.Lexeme)
	if method == nil {
		return nil, runtimeErr(n.Method, diagnostics.ErrUndefinedProp,
			fmt.Sprintf("Undefined property '%s'.", n.Method.Lexeme))
	}
	return method.Bind(instance), nil
}
