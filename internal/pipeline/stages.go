package pipeline

import (
	"fmt"
	"os"

	"github.com/BLamy/does-it-throw/internal/analyzer"
)

// LoadProcessor fills ctx.Content from ctx.FilePath when the caller
// discovered the file (e.g. by following a relative import) but hasn't
// read it yet. A Context constructed with its entry source already set
// passes through unchanged.
type LoadProcessor struct{}

func (lp *LoadProcessor) Process(ctx *Context) *Context {
	if ctx.Content != "" {
		return ctx
	}
	data, err := os.ReadFile(ctx.FilePath)
	if err != nil {
		ctx.Errors = append(ctx.Errors, fmt.Errorf("pipeline: reading %s: %w", ctx.FilePath, err))
		return ctx
	}
	ctx.Content = string(data)
	return ctx
}

// AnalyzeProcessor runs the core analyzer.Analyze pass over ctx.Content
// once it has been loaded, recording a fatal parse error (spec.md §7)
// as ctx.Errors rather than stopping the pipeline outright — matching
// the teacher's own "continue on errors to collect diagnostics from
// all stages" Run contract.
type AnalyzeProcessor struct{}

func (ap *AnalyzeProcessor) Process(ctx *Context) *Context {
	if ctx.Content == "" {
		return ctx
	}
	settings := ctx.Settings
	if settings.ModuleID == "" {
		settings.ModuleID = ctx.FilePath
	}
	result, err := analyzer.Analyze(analyzer.Input{FileContent: ctx.Content, Settings: settings})
	if err != nil {
		ctx.Errors = append(ctx.Errors, fmt.Errorf("pipeline: analyzing %s: %w", ctx.FilePath, err))
		return ctx
	}
	ctx.Result = result
	return ctx
}

// Standard is the two-stage pipeline every file in a project run goes
// through: load, then analyze.
func Standard() *Pipeline {
	return New(&LoadProcessor{}, &AnalyzeProcessor{})
}
