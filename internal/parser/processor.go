package parser

import "github.com/nightjar-lang/nightjar/internal/pipeline"

// Processor is the pipeline's second stage: tokens to AST.
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Tokens == nil {
		return ctx
	}
	p := New(ctx.Tokens)
	ctx.Statements = p.Parse()
	ctx.Errors = append(ctx.Errors, p.Errors()...)
	return ctx
}
