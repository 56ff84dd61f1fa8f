package resolver

import "github.com/nightjar-lang/nightjar/internal/pipeline"

// Processor is the pipeline's third stage: binds variable uses to
// lexical depths and validates the handful of static rules spec §4.3
// names. It runs even if the parser reported errors, since it may
// still surface useful diagnostics for a partially-recovered tree; the
// evaluator stage is the one that refuses to run on any prior error.
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Statements == nil {
		return ctx
	}
	res := New()
	ctx.Depths = res.Resolve(ctx.Statements)
	ctx.Errors = append(ctx.Errors, res.Errors()...)
	return ctx
}
