// Package pipeline threads one file's worth of analysis state through a
// small ordered sequence of stages, grounded on the teacher's own
// internal/pipeline/pipeline.go Pipeline/Processor/Run shape.
// cmd/doesitthrow's check subcommand runs the Standard pipeline per
// file; internal/batch calls analyzer.Analyze directly instead.
package pipeline

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue past a stage that recorded an error so later stages
		// (and the caller) still see everything collected so far.
	}
	return ctx
}
