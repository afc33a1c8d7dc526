// Package config holds the analyzer's small set of named constants:
// default pragma tokens, the fixed file-disable token, default
// severities, and the proximity window. Grounded on funvibe/funxy's
// internal/config/constants.go style of short, independently-exported
// const/var groups.
package config

import "github.com/BLamy/does-it-throw/internal/diagnostics"

// DefaultIgnoreStatements are the user-configurable suppression tokens
// (spec.md §4.7, §6 "Pragma surface") used when Settings.IgnoreStatements is empty.
var DefaultIgnoreStatements = []string{
	"@it-throws",
	"@what-does-it-throw-ignore",
}

// FileDisableToken is the one fixed, non-configurable file-level
// suppression switch (spec.md §4.7 item 1).
const FileDisableToken = "@it-throws-disable"

// FileDisableScanLines is how many leading source lines are scanned
// for FileDisableToken (spec.md §4.7: "within the first ten source lines").
const FileDisableScanLines = 10

// ProximityLines is the "three lines above" window for proximity
// suppression (spec.md §4.7 item 3). spec.md §9 calls this out as "a
// magic constant not derived from configuration" — it is intentionally
// not a Settings field, only a named constant, per that design note.
const ProximityLines = 3

// DefaultThrowStatementSeverity etc. are the severities applied when a
// Settings field is left at its zero value (spec.md §6).
const (
	DefaultThrowStatementSeverity      = diagnostics.SeverityHint
	DefaultFunctionThrowSeverity       = diagnostics.SeverityInformation
	DefaultCallToThrowSeverity         = diagnostics.SeverityInformation
	DefaultCallToImportedThrowSeverity = diagnostics.SeverityInformation
)

// JSDocThrowsTag is the doc-comment tag name the reconciler looks for (spec.md §4.4, §6).
const JSDocThrowsTag = "@throws"
