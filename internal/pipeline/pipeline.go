// Package pipeline wires the scanner, parser, resolver and evaluator
// into the four-stage run described in spec §2. The shape — a
// Pipeline of Processors threading a single PipelineContext — is kept
// from the teacher's internal/pipeline package; PipelineContext itself
// is specific to this language's four stages.
package pipeline

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order. Stages continue running even
// after an earlier one reports errors: spec §2 says each stage halts
// the whole pipeline only on a *fatal* error, and a parse/resolve
// error is not fatal to a later stage's ability to still do useful
// work (the evaluator simply declines to run once it sees the AST
// slot empty or prior errors present — see evaluator.Processor).
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
