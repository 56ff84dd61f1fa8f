package evaluator

import "github.com/nightjar-lang/nightjar/internal/pipeline"

// Processor is the pipeline's fourth and final stage. It declines to
// run if parsing produced no statements, or if any earlier stage
// recorded an error — a program is only ever executed once it is
// fully scanned, parsed, and resolved without diagnostics. The
// Evaluator itself lives on the context (ctx.Evaluator), supplied by
// the CLI so a REPL can reuse one across lines; Processor just wires
// it into the stage.
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Statements == nil || len(ctx.Errors) > 0 || ctx.Evaluator == nil {
		return ctx
	}

	if err := ctx.Evaluator.Run(ctx.Statements, ctx.Depths, ctx.Out); err != nil {
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}
