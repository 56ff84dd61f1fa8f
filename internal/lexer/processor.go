package lexer

import "github.com/nightjar-lang/nightjar/internal/pipeline"

// Processor is the pipeline's first stage: source text to tokens.
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.Source)
	tokens, errs := l.ScanTokens()
	ctx.Tokens = tokens
	ctx.Errors = append(ctx.Errors, errs...)
	return ctx
}
