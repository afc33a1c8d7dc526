// Package diagnostics defines the wire-shaped output records of the
// analyzer (spec.md §3 Diagnostic, §6 ParseResult.diagnostics) and the
// fatal parse-failure error type (spec.md §7). Grounded on
// cmd/lsp/diagnostics.go's Diagnostic/Range/Position LSP shapes from
// the teacher, and on the DiagnosticError-carries-a-token pattern
// referenced throughout the teacher's analyzer/parser packages.
package diagnostics

import "fmt"

// Severity mirrors the LSP DiagnosticSeverity numbering used throughout
// the teacher's own cmd/lsp (1=Error .. 4=Hint), named in spec.md §6.
type Severity int

const (
	SeverityError       Severity = 1
	SeverityWarning     Severity = 2
	SeverityInformation Severity = 3
	SeverityHint        Severity = 4
)

// Kind enumerates the diagnostic categories spec.md §3 defines.
type Kind string

const (
	KindThrowStatement        Kind = "ThrowStatement"
	KindFunctionMayThrow      Kind = "FunctionMayThrow"
	KindCallMayThrow          Kind = "CallMayThrow"
	KindImportedCallMayThrow  Kind = "ImportedCallMayThrow"
	KindJSDocMismatch         Kind = "JSDocMismatch"
	KindExhaustiveCatchMissing Kind = "ExhaustiveCatchMissing"
	KindUnusedSuppression     Kind = "UnusedSuppression"
)

// Position is a one-based line, zero-based character pair (spec.md §3,
// §6), produced only at emission time from byte offsets via LineIndex.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a [Start, End) pair of Positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Data carries optional structured quick-fix hints (spec.md §3); the
// quick-fix text synthesizer itself is out of scope (spec.md §1) so
// this is a plain payload, not a behavior.
type Data struct {
	MissingKinds []string `json:"missingKinds,omitempty"`
	FunctionName string   `json:"functionName,omitempty"`
	EditKind     string   `json:"editKind,omitempty"`
}

// Diagnostic is one finding of an Analyze call (spec.md §3, §6).
type Diagnostic struct {
	Kind     Kind     `json:"-"`
	Range    Range    `json:"range"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Source   string   `json:"source"`
	Code     string   `json:"code,omitempty"`
	Data     *Data    `json:"data,omitempty"`
}

// Source is the fixed diagnostic source name carried on every emitted
// Diagnostic (spec.md §6).
const Source = "Does it Throw?"

// ParseError is the single fatal error returned when the parser cannot
// produce an AST for the input (spec.md §7: "no partial diagnostics").
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}
