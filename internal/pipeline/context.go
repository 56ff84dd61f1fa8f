package pipeline

import (
	"io"
	"os"

	"github.com/nightjar-lang/nightjar/internal/ast"
	"github.com/nightjar-lang/nightjar/internal/diagnostics"
	"github.com/nightjar-lang/nightjar/internal/token"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Evaluator is the subset of the evaluator package the pipeline needs
// to hand a resolved program to. It is declared here, rather than
// imported from internal/evaluator, so that this package stays a leaf
// that evaluator/parser/resolver all depend on instead of each other.
type Evaluator interface {
	Run(stmts []ast.Stmt, depths map[int]int, out io.Writer) *diagnostics.Error
}

// PipelineContext threads state between the scanner, parser, resolver
// and evaluator stages of a single run (one file, or one REPL line).
type PipelineContext struct {
	FilePath string
	Source   string

	Tokens     []token.Token
	Statements []ast.Stmt

	// Depths maps an expression node's id (ast.Expr.ID()) to the
	// lexical scope depth the resolver computed for it. Absence means
	// "treat as a global lookup" per spec §4.3/§4.4.
	Depths map[int]int

	// Evaluator is supplied by the caller (the CLI) and reused across
	// every run so that REPL state survives across lines, per spec §2
	// and §5.
	Evaluator Evaluator

	Out io.Writer

	Errors []*diagnostics.Error
}

// NewContext builds a context for running src (from path, which may be
// empty for REPL input) against a persistent evaluator.
func NewContext(path, src string, eval Evaluator) *PipelineContext {
	return &PipelineContext{
		FilePath:  path,
		Source:    src,
		Evaluator: eval,
		Out:       os.Stdout,
	}
}

// Success reports whether every stage that ran completed without error.
func (ctx *PipelineContext) Success() bool { return len(ctx.Errors) == 0 }
