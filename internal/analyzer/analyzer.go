// Package analyzer wires the seven passes (callables.go, catches.go,
// docs.go, effects.go, calls.go, bridge.go, suppression.go) plus the
// emitter into the single entry point spec.md §6 describes: Analyze.
// Grounded on the teacher's own orchestration shape —
// internal/analyzer/analyzer.go's `type walker struct` folding a
// Program through its own passes behind one exported Lint/Analyze call.
package analyzer

import (
	"github.com/BLamy/does-it-throw/internal/ast"
	"github.com/BLamy/does-it-throw/internal/config"
	"github.com/BLamy/does-it-throw/internal/diagnostics"
	"github.com/BLamy/does-it-throw/internal/lexer"
	"github.com/BLamy/does-it-throw/internal/parser"
)

// Settings configures one Analyze call (spec.md §6).
type Settings struct {
	ThrowStatementSeverity      diagnostics.Severity
	FunctionThrowSeverity       diagnostics.Severity
	CallToThrowSeverity         diagnostics.Severity
	CallToImportedThrowSeverity diagnostics.Severity
	IncludeTryStatementThrows   bool
	IgnoreStatements            []string
	ReportUnusedSuppressions    bool
	ModuleID                    string
}

// Input is Analyze's sole argument (spec.md §6).
type Input struct {
	FileContent string
	Settings    Settings
}

// ParseResult is Analyze's sole return value (spec.md §6).
type ParseResult struct {
	Diagnostics                   []diagnostics.Diagnostic
	RelativeImports               []string
	ThrowIDs                      []string
	ImportedIdentifierDiagnostics map[string]ImportedIdentifierBundle
}

// Analyze runs the full pipeline over one file's source text: lexical
// pre-scan, parse, enumerate, solve effects, link calls, bridge, apply
// suppressions, emit. It is deterministic and side-effect-free (spec.md
// §5): no package-level mutable state is touched, and every call builds
// its own analysisState from scratch.
func Analyze(input Input) (*ParseResult, error) {
	lx := lexer.New(input.FileContent)
	tokens := lx.All()
	p := parser.New(tokens)
	prog := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		// spec.md §7: "a malformed source that the parser cannot produce
		// an AST for is reported to the caller as a single fatal error;
		// no partial diagnostics." This parser does best-effort statement
		// recovery rather than aborting outright, so any recorded parse
		// error is treated as that fatal condition — the caller gets one
		// error and an empty diagnostic list, never a half-built result.
		return nil, errs[0]
	}

	st := &analysisState{
		filename:  input.Settings.ModuleID,
		source:    input.FileContent,
		lineIndex: diagnostics.NewLineIndex(input.FileContent),
		comments:  lexer.NewCommentIndex(lx.Comments()),
	}

	enumerate(st, prog, p.ExportedNames())
	solveEffects(st.callables)

	ignoreTokens := input.Settings.IgnoreStatements
	if len(ignoreTokens) == 0 {
		ignoreTokens = config.DefaultIgnoreStatements
	}
	applySuppressions(st, ignoreTokens)

	result := &ParseResult{
		RelativeImports: collectRelativeImports(prog),
	}

	if fileDisabled(st.comments) {
		result.Diagnostics = []diagnostics.Diagnostic{}
		result.ThrowIDs = []string{}
		result.ImportedIdentifierDiagnostics = map[string]ImportedIdentifierBundle{}
		return result, nil
	}

	result.Diagnostics = emit(st, input.Settings)
	result.ThrowIDs, result.ImportedIdentifierDiagnostics = buildBridge(st, input.Settings)
	return result, nil
}

func collectRelativeImports(prog *ast.Program) []string {
	var out []string
	for _, stmt := range prog.Body {
		imp, ok := stmt.(*ast.ImportDeclaration)
		if !ok {
			continue
		}
		if len(imp.Source) > 0 && (imp.Source[0] == '.' || imp.Source[0] == '/') {
			out = append(out, imp.Source)
		}
	}
	return out
}
