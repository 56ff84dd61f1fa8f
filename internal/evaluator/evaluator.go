package evaluator

import (
	"fmt"
	"io"

	"github.com/nightjar-lang/nightjar/internal/ast"
	"github.com/nightjar-lang/nightjar/internal/diagnostics"
	"github.com/nightjar-lang/nightjar/internal/token"
)

// signalKind distinguishes the two non-local control transfers a
// statement can produce, per spec §7's note that implementations may
// model these as a shared sum rather than as exceptions.
type signalKind int

const (
	signalNone signalKind = iota
	signalReturn
	signalBreak
)

// signal carries a Return's value (nil for bare `return;`, or for a
// Break, which carries none) up through nested statement execution.
type signal struct {
	kind  signalKind
	value Object
}

var noSignal = signal{kind: signalNone}

// Evaluator holds the long-lived runtime state across one program run:
// the global environment and the resolver's depth table. A REPL reuses
// one Evaluator across lines so that top-level var/fun/class
// declarations persist (spec §5).
type Evaluator struct {
	Globals *Environment
	depths  map[int]int
	out     io.Writer
}

// New constructs an Evaluator with its global environment populated
// with the native functions spec §5 names.
func New() *Evaluator {
	e := &Evaluator{Globals: NewEnvironment()}
	registerBuiltins(e.Globals)
	return e
}

// Run executes a resolved program, satisfying pipeline.Evaluator. It
// stops at the first runtime error, per spec §4.4/§7's failure
// semantics: evaluation is not resumed after an error within the same
// Run call.
func (e *Evaluator) Run(stmts []ast.Stmt, depths map[int]int, out io.Writer) *diagnostics.Error {
	e.depths = depths
	e.out = out

	for _, stmt := range stmts {
		if _, err := e.execStmt(stmt, e.Globals); err != nil {
			return err
		}
	}
	return nil
}

// lookupVariable resolves a name either via the resolver's depth table
// (a local/enclosing binding) or, if absent from the table, via the
// global environment — spec §3's fallback rule for names the resolver
// left unbound (top-level declarations, and forward references to
// them).
func (e *Evaluator) lookupVariable(name token.Token, exprID int, env *Environment) (Object, *diagnostics.Error) {
	if distance, ok := e.depths[exprID]; ok {
		return env.GetAt(distance, name.Lexeme), nil
	}
	if v, ok := e.Globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, diagnostics.New(diagnostics.Runtime, diagnostics.ErrUndefinedVar, name,
		fmt.Sprintf("Undefined variable '%s'.", name.Lexeme))
}

// assignVariable mirrors lookupVariable for assignment targets.
func (e *Evaluator) assignVariable(name token.Token, exprID int, env *Environment, val Object) *diagnostics.Error {
	if distance, ok := e.depths[exprID]; ok {
		env.AssignAt(distance, name.Lexeme, val)
		return nil
	}
	if e.Globals.Assign(name.Lexeme, val) {
		return nil
	}
	return diagnostics.New(diagnostics.Runtime, diagnostics.ErrUndefinedVar, name,
		fmt.Sprintf("Undefined variable '%s'.", name.Lexeme))
}
