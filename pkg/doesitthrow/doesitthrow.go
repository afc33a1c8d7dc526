// Package doesitthrow is the public embeddable API (spec.md §6):
// a thin, panic-recovering façade over internal/analyzer, grounded on
// the teacher's own pkg/embed/vm.go "New()/Eval() wraps the internal
// machine" embedding shape — not a god object reimplementing the
// analysis itself.
package doesitthrow

import (
	"fmt"

	"github.com/BLamy/does-it-throw/internal/analyzer"
	"github.com/BLamy/does-it-throw/internal/diagnostics"
)

// Settings configures one Analyze call. Re-exported verbatim from
// internal/analyzer so callers never import an internal package.
type Settings = analyzer.Settings

// Input is Analyze's sole argument.
type Input = analyzer.Input

// ParseResult is Analyze's sole return value.
type ParseResult = analyzer.ParseResult

// Diagnostic is one finding of an Analyze call.
type Diagnostic = diagnostics.Diagnostic

// ImportedIdentifierBundle is one exported symbol's cross-file bridge
// payload (spec.md §4.6).
type ImportedIdentifierBundle = analyzer.ImportedIdentifierBundle

// Analyze runs the full single-file pipeline (spec.md §6) over one
// file's source text. It recovers from any panic inside the analyzer —
// a parser or analyzer bug must never take down an embedding host — and
// turns it into an ordinary error.
func Analyze(input Input) (result *ParseResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("doesitthrow: internal panic: %v", r)
		}
	}()
	return analyzer.Analyze(input)
}
