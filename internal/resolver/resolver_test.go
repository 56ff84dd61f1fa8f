package resolver

import (
	"testing"

	"github.com/nightjar-lang/nightjar/internal/ast"
	"github.com/nightjar-lang/nightjar/internal/lexer"
	"github.com/nightjar-lang/nightjar/internal/parser"
)

func resolve(t *testing.T, src string) ([]ast.Stmt, *Resolver) {
	t.Helper()
	tokens, errs := lexer.New(src).ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	p := parser.New(tokens)
	stmts := p.Parse()
	if !p.Success() {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	r := New()
	r.Resolve(stmts)
	return stmts, r
}

func TestResolveLocalVariableDepth(t *testing.T) {
	stmts, r := resolve(t, `{ var a = 1; { var b = 2; print a; print b; } }`)
	if !r.Success() {
		t.Fatalf("unexpected resolve errors: %v", r.Errors())
	}

	outerBlock := stmts[0].(*ast.Block)
	innerBlock := outerBlock.Statements[1].(*ast.Block)
	printA := innerBlock.Statements[1].(*ast.Print)
	printB := innerBlock.Statements[2].(*ast.Print)

	aVar := printA.Expression.(*ast.Variable)
	bVar := printB.Expression.(*ast.Variable)

	if depth := r.depths[aVar.ID()]; depth != 1 {
		t.Errorf("depth of outer-scope read = %d, want 1", depth)
	}
	if depth := r.depths[bVar.ID()]; depth != 0 {
		t.Errorf("depth of same-scope read = %d, want 0", depth)
	}
}

func TestResolveSelfReadAtLocalScopeIsError(t *testing.T) {
	_, r := resolve(t, `{ var a = a; }`)
	if r.Success() {
		t.Fatal("expected a self-read resolve error")
	}
}

func TestResolveSelfReadAtGlobalScopeIsAllowed(t *testing.T) {
	_, r := resolve(t, `var a = a;`)
	if !r.Success() {
		t.Errorf("unexpected resolve errors: %v", r.Errors())
	}
}

func TestResolveDuplicateDeclarationInScope(t *testing.T) {
	_, r := resolve(t, `{ var a = 1; var a = 2; }`)
	if r.Success() {
		t.Fatal("expected a duplicate-declaration resolve error")
	}
}

func TestResolveThisOutsideClassIsError(t *testing.T) {
	_, r := resolve(t, `print this;`)
	if r.Success() {
		t.Fatal("expected a 'this' outside class resolve error")
	}
}

func TestResolveSuperWithoutSuperclassIsError(t *testing.T) {
	_, r := resolve(t, `class A { m() { print super.m; } }`)
	if r.Success() {
		t.Fatal("expected a 'super' without superclass resolve error")
	}
}

func TestResolveClassSelfInheritanceIsError(t *testing.T) {
	_, r := resolve(t, `class A < A {}`)
	if r.Success() {
		t.Fatal("expected a self-inheritance resolve error")
	}
}

func TestResolveBreakOutsideLoopIsError(t *testing.T) {
	_, r := resolve(t, `break;`)
	if r.Success() {
		t.Fatal("expected a break-outside-loop resolve error")
	}
}

func TestResolveReturnOutsideFunctionIsError(t *testing.T) {
	_, r := resolve(t, `return 1;`)
	if r.Success() {
		t.Fatal("expected a return-outside-function resolve error")
	}
}

func TestResolveReturnValueInInitializerIsError(t *testing.T) {
	_, r := resolve(t, `class A { init() { return 1; } }`)
	if r.Success() {
		t.Fatal("expected a return-value-in-initializer resolve error")
	}
}

func TestResolveBareReturnInInitializerIsAllowed(t *testing.T) {
	_, r := resolve(t, `class A { init() { return; } }`)
	if !r.Success() {
		t.Errorf("unexpected resolve errors: %v", r.Errors())
	}
}
