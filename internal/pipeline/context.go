package pipeline

import "github.com/BLamy/does-it-throw/internal/analyzer"

// Context is the mutable record one file's worth of state is threaded
// through, mirroring the teacher's PipelineContext(SourceCode, ...)
// shape but carrying this module's own analyzer.Input/ParseResult
// instead of a token stream and AST.
type Context struct {
	FilePath string
	Content  string
	Settings analyzer.Settings

	Result *analyzer.ParseResult
	Errors []error
}

// NewContext mirrors the teacher's NewPipelineContext(content) helper.
func NewContext(filePath, content string, settings analyzer.Settings) *Context {
	return &Context{FilePath: filePath, Content: content, Settings: settings}
}
