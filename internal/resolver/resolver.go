// Package resolver is the static analysis pass described in spec §4.3:
// it walks the AST once after parsing, binds every variable reference to
// a lexical scope depth, and rejects a handful of misuses (self-read in
// an initializer, return/break/this/super outside their enclosing
// construct, duplicate declarations, self-inheriting classes) that are
// cheaper to catch statically than at every evaluation.
//
// This replaces the teacher's internal/analyzer, which additionally does
// Hindley-Milner type inference and trait-dictionary resolution — this
// language has no static type system (spec §9), so none of that
// carries over; what remains is exactly the scope-depth bookkeeping.
package resolver

import (
	"github.com/nightjar-lang/nightjar/internal/ast"
	"github.com/nightjar-lang/nightjar/internal/diagnostics"
	"github.com/nightjar-lang/nightjar/internal/token"
)

// functionType tracks what kind of function body is currently being
// resolved, so `return` can be validated against its context.
type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

// classType tracks whether `this`/`super` are currently legal.
type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// scope maps a name to whether its declaration has finished resolving
// its own initializer: false = declared but not yet defined.
type scope map[string]bool

// Resolver performs the single static analysis pass over a parsed
// program.
type Resolver struct {
	scopes []scope
	depths map[int]int

	currentFunction functionType
	currentClass    classType
	inLoop          bool

	errors []*diagnostics.Error
}

// New creates a Resolver ready to resolve a fresh program. Note there is
// no scope pushed for globals: an unresolved name falls through to the
// evaluator's global environment, matching spec §4.4's "Variable/Assign"
// rule.
func New() *Resolver {
	return &Resolver{depths: make(map[int]int)}
}

// Resolve walks stmts and returns the expr-node-id -> depth side table
// for the evaluator. Call Success/Errors afterward to check for
// resolve errors; a non-empty error set does not mean Resolve panicked,
// it means traversal continued past every reported misuse per spec §7.
func (r *Resolver) Resolve(stmts []ast.Stmt) map[int]int {
	r.resolveStmts(stmts)
	return r.depths
}

func (r *Resolver) Success() bool { return len(r.errors) == 0 }

func (r *Resolver) Errors() []*diagnostics.Error { return r.errors }

func (r *Resolver) errorAt(tok token.Token, code, message string) {
	r.errors = append(r.errors, diagnostics.New(diagnostics.Resolve, code, tok, message))
}

// --- scope stack ---------------------------------------------------------

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, scope{}) }

func (r *Resolver) endScope() { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	s := r.scopes[len(r.scopes)-1]
	if _, ok := s[name.Lexeme]; ok {
		r.errorAt(name, diagnostics.ErrDupDecl, "Already a variable with this name in this scope.")
	}
	s[name.Lexeme] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

// resolveLocal searches the scope stack innermost-first; a hit records
// (expr id -> depth) in the side table. A miss leaves the expression
// unresolved, which the evaluator treats as a global lookup.
func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.depths[expr.ID()] = len(r.scopes) - 1 - i
			return
		}
	}
}
