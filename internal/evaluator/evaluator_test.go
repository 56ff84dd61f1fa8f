package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nightjar-lang/nightjar/internal/lexer"
	"github.com/nightjar-lang/nightjar/internal/parser"
	"github.com/nightjar-lang/nightjar/internal/resolver"
)

func eval(t *testing.T, src string) (string, *Evaluator) {
	t.Helper()
	tokens, scanErrs := lexer.New(src).ScanTokens()
	if len(scanErrs) != 0 {
		t.Fatalf("unexpected scan errors: %v", scanErrs)
	}
	p := parser.New(tokens)
	stmts := p.Parse()
	if !p.Success() {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	res := resolver.New()
	depths := res.Resolve(stmts)
	if !res.Success() {
		t.Fatalf("unexpected resolve errors: %v", res.Errors())
	}

	e := New()
	var out bytes.Buffer
	if err := e.Run(stmts, depths, &out); err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return out.String(), e
}

func evalExpectError(t *testing.T, src string) string {
	t.Helper()
	tokens, _ := lexer.New(src).ScanTokens()
	p := parser.New(tokens)
	stmts := p.Parse()
	res := resolver.New()
	depths := res.Resolve(stmts)

	e := New()
	var out bytes.Buffer
	err := e.Run(stmts, depths, &out)
	if err == nil {
		t.Fatalf("expected a runtime error, got none (output: %q)", out.String())
	}
	return err.Error()
}

func TestEnvironmentChainLookupAndAssign(t *testing.T) {
	globals := NewEnvironment()
	globals.Define("x", Number(1))
	inner := NewEnclosedEnvironment(globals)

	if v, ok := inner.Get("x"); !ok || v != Number(1) {
		t.Fatalf("expected inherited read of x=1, got %v, %v", v, ok)
	}

	if !inner.Assign("x", Number(2)) {
		t.Fatal("expected assign to find x in the enclosing scope")
	}
	if v, _ := globals.Get("x"); v != Number(2) {
		t.Errorf("assign through a child scope should mutate the shared parent binding, got %v", v)
	}

	if inner.Assign("never_declared", Number(1)) {
		t.Error("assign to an undeclared name should fail")
	}
}

func TestEnvironmentGetAtAssignAt(t *testing.T) {
	globals := NewEnvironment()
	scope1 := NewEnclosedEnvironment(globals)
	scope2 := NewEnclosedEnvironment(scope1)
	scope1.Define("y", Number(10))

	if v := scope2.GetAt(1, "y"); v != Number(10) {
		t.Errorf("GetAt(1) = %v, want 10", v)
	}
	scope2.AssignAt(1, "y", Number(20))
	if v := scope1.values["y"]; v != Number(20) {
		t.Errorf("AssignAt(1) did not mutate scope1, got %v", v)
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Object
		want bool
	}{
		{Nil, false},
		{Bool(false), false},
		{Bool(true), true},
		{Number(0), true},
		{Str(""), true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal(Nil, Nil) {
		t.Error("Nil should equal Nil")
	}
	if Equal(Nil, Bool(false)) {
		t.Error("Nil should not equal false")
	}
	if !Equal(Str("a"), Str("a")) {
		t.Error("equal strings should compare equal")
	}
	inst1 := NewInstance(&Class{Name: "A"})
	inst2 := NewInstance(&Class{Name: "A"})
	if Equal(inst1, inst2) {
		t.Error("distinct instances should not be equal by identity")
	}
	if !Equal(inst1, inst1) {
		t.Error("an instance should equal itself by identity")
	}
}

func TestClosuresCaptureByReference(t *testing.T) {
	out, _ := eval(t, `
fun counter() {
  var n = 0;
  fun inc() { n = n + 1; return n; }
  return inc;
}
var f = counter();
print f();
print f();
print f();
`)
	if out != "1\n2\n3\n" {
		t.Errorf("got %q", out)
	}
}

func TestClassInheritanceAndMethodOverride(t *testing.T) {
	out, _ := eval(t, `
class Animal {
  init(name) { this.name = name; }
  speak() { return "..."; }
  describe() { return this.name + " says " + this.speak(); }
}
class Dog < Animal {
  speak() { return "Woof"; }
}
print Dog("Rex").describe();
`)
	if out != "Rex says Woof\n" {
		t.Errorf("got %q", out)
	}
}

func TestSuperCallsParentMethod(t *testing.T) {
	out, _ := eval(t, `
class A { greet() { return "A"; } }
class B < A { greet() { return super.greet() + "B"; } }
print B().greet();
`)
	if out != "AB\n" {
		t.Errorf("got %q", out)
	}
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	msg := evalExpectError(t, `fun f(a, b) { return a + b; } f(1);`)
	if !strings.Contains(msg, "Expected 2 arguments but got 1") {
		t.Errorf("got %q", msg)
	}
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	msg := evalExpectError(t, `var x = 1; x();`)
	if !strings.Contains(msg, "Can only call functions and classes") {
		t.Errorf("got %q", msg)
	}
}

func TestUnaryMinusRequiresNumber(t *testing.T) {
	msg := evalExpectError(t, `-"hi";`)
	if !strings.Contains(msg, "Operand must be a number") {
		t.Errorf("got %q", msg)
	}
}

func TestUndefinedPropertyIsRuntimeError(t *testing.T) {
	msg := evalExpectError(t, `class A {} A().missing;`)
	if !strings.Contains(msg, "Undefined property") {
		t.Errorf("got %q", msg)
	}
}

func TestNumberTimesStringRepeats(t *testing.T) {
	out, _ := eval(t, `print "ab" * 3; print 3 * "ab";`)
	if out != "ababab\nababab\n" {
		t.Errorf("got %q", out)
	}
}

func TestClockIsRegisteredAndZeroArity(t *testing.T) {
	out, _ := eval(t, `print clock() > 0;`)
	if out != "true\n" {
		t.Errorf("got %q", out)
	}
}

func TestClockReturnsMillisecondScale(t *testing.T) {
	// A seconds-since-epoch value at this point in history is around 1.7e9;
	// milliseconds-since-epoch is around 1.7e12. Assert the larger scale so
	// a regression to seconds (or some other wrong unit) is caught.
	out, _ := eval(t, `print clock() > 1e12;`)
	if out != "true\n" {
		t.Errorf("got %q", out)
	}
}
