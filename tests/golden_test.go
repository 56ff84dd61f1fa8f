// Package tests runs whole programs through the pipeline and checks
// their stdout, the same contract as the teacher's functional_test.go
// (compiled binary + .want diff), adapted to run the pipeline
// in-process rather than spawning a built binary, with each program and
// its expected stdout held inline in a table rather than in file pairs.
package tests

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nightjar-lang/nightjar/internal/evaluator"
	"github.com/nightjar-lang/nightjar/internal/lexer"
	"github.com/nightjar-lang/nightjar/internal/parser"
	"github.com/nightjar-lang/nightjar/internal/pipeline"
	"github.com/nightjar-lang/nightjar/internal/resolver"
)

func runSource(src string) (stdout string, errs []string) {
	ctx := pipeline.NewContext("<test>", src, evaluator.New())
	var out bytes.Buffer
	ctx.Out = &out

	p := pipeline.New(lexer.Processor{}, parser.Processor{}, resolver.Processor{}, evaluator.Processor{})
	ctx = p.Run(ctx)

	for _, e := range ctx.Errors {
		errs = append(errs, e.Error())
	}
	return out.String(), errs
}

func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"arithmetic_precedence", `print 1 + 2 * 3;`, "7\n"},
		{"mixed_number_string_concat", `var a = "hi"; print a + " " + 1;`, "hi 1\n"},
		{"block_shadowing", `var a = 1; { var a = 2; print a; } print a;`, "2\n1\n"},
		{"closures_share_state", `fun c(){var i=0; fun inc(){i=i+1; return i;} return inc;} var f=c(); print f(); print f(); print f();`, "1\n2\n3\n"},
		{"method_and_this", `class A{ greet(){ print "hi "+this.n; } } var a=A(); a.n="x"; a.greet();`, "hi x\n"},
		{"single_inheritance_super_init", `class A{ init(n){this.n=n;} } class B<A{ speak(){ print this.n;} } B("ok").speak();`, "ok\n"},
		{"for_desugaring", `for (var i=0; i<3; i=i+1) print i;`, "0\n1\n2\n"},
		{"equality_rules", `print "a" == "a"; print nil == false;`, "true\nfalse\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := runSource(tt.src)
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBoundaryBehaviors(t *testing.T) {
	t.Run("255_arguments_accepted", func(t *testing.T) {
		var args strings.Builder
		for i := 0; i < 255; i++ {
			if i > 0 {
				args.WriteString(", ")
			}
			args.WriteString("1")
		}
		src := "fun f() { return 0; } print f(" + args.String() + ");"
		_, errs := runSource(src)
		found := false
		for _, e := range errs {
			if strings.Contains(e, "Can't have more than 255 arguments") {
				found = true
			}
		}
		if found {
			t.Errorf("255 arguments should not report a too-many-arguments error, got %v", errs)
		}
	})

	t.Run("256_arguments_parse_error_but_continues", func(t *testing.T) {
		var args strings.Builder
		for i := 0; i < 256; i++ {
			if i > 0 {
				args.WriteString(", ")
			}
			args.WriteString("1")
		}
		src := "fun f() { return 0; } print f(" + args.String() + ");"
		_, errs := runSource(src)
		if len(errs) == 0 {
			t.Fatal("expected a parse error for 256 arguments")
		}
	})

	t.Run("self_read_at_global_scope_is_nil", func(t *testing.T) {
		got, errs := runSource(`var a = a; print a;`)
		if len(errs) > 0 {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if got != "nil\n" {
			t.Errorf("got %q, want %q", got, "nil\n")
		}
	})

	t.Run("self_read_at_local_scope_is_resolve_error", func(t *testing.T) {
		_, errs := runSource(`{ var a = a; }`)
		if len(errs) == 0 {
			t.Fatal("expected a resolve error for local self-read")
		}
	})

	t.Run("return_at_top_level_is_resolve_error", func(t *testing.T) {
		_, errs := runSource(`return 1;`)
		if len(errs) == 0 {
			t.Fatal("expected a resolve error for top-level return")
		}
	})

	t.Run("return_value_in_init_is_resolve_error", func(t *testing.T) {
		_, errs := runSource(`class A { init() { return 1; } }`)
		if len(errs) == 0 {
			t.Fatal("expected a resolve error for returning a value from init")
		}
	})

	t.Run("bare_return_in_init_returns_this", func(t *testing.T) {
		got, errs := runSource(`class A { init(n) { this.n = n; return; } } var a = A(1); print a.n;`)
		if len(errs) > 0 {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if got != "1\n" {
			t.Errorf("got %q, want %q", got, "1\n")
		}
	})

	t.Run("break_outside_loop_is_resolve_error", func(t *testing.T) {
		_, errs := runSource(`break;`)
		if len(errs) == 0 {
			t.Fatal("expected a resolve error for break outside a loop")
		}
	})
}

func TestForDesugaringMatchesWhile(t *testing.T) {
	forOut, forErrs := runSource(`for (var i=0; i<3; i=i+1) print i;`)
	whileOut, whileErrs := runSource(`{ var i=0; while (i<3) { print i; i=i+1; } }`)

	if len(forErrs) > 0 || len(whileErrs) > 0 {
		t.Fatalf("unexpected errors: for=%v while=%v", forErrs, whileErrs)
	}
	if forOut != whileOut {
		t.Errorf("for-desugaring mismatch: for=%q while=%q", forOut, whileOut)
	}
}

func TestClosuresAreByReference(t *testing.T) {
	got, errs := runSource(`
fun makePair() {
  var n = 0;
  fun get() { return n; }
  fun inc() { n = n + 1; }
  print get();
  inc();
  print get();
}
makePair();
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got != "0\n1\n" {
		t.Errorf("got %q, want %q", got, "0\n1\n")
	}
}
