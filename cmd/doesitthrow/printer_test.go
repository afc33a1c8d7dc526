package main

import (
	"strings"
	"testing"

	"github.com/BLamy/does-it-throw/internal/diagnostics"
)

func TestFormatDiagnostic_PlainNoColor(t *testing.T) {
	d := diagnostics.Diagnostic{
		Range:    diagnostics.Range{Start: diagnostics.Position{Line: 3, Character: 5}},
		Severity: diagnostics.SeverityWarning,
		Message:  "Function f may throw: {Error}",
	}
	got := formatDiagnostic("f.js", d, false)
	want := "f.js:3:5: warning: Function f may throw: {Error}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatDiagnostic_ColorWrapsSeverityOnly(t *testing.T) {
	d := diagnostics.Diagnostic{Severity: diagnostics.SeverityError, Message: "boom"}
	got := formatDiagnostic("f.js", d, true)
	if !strings.Contains(got, ansiRed) || !strings.Contains(got, "boom") {
		t.Errorf("expected colorized error severity and message, got %q", got)
	}
}

func TestSeverityLabel(t *testing.T) {
	cases := map[diagnostics.Severity]string{
		diagnostics.SeverityError:       "error",
		diagnostics.SeverityWarning:     "warning",
		diagnostics.SeverityHint:        "hint",
		diagnostics.SeverityInformation: "info",
	}
	for sev, want := range cases {
		if got := severityLabel(sev); got != want {
			t.Errorf("severityLabel(%v) = %q, want %q", sev, got, want)
		}
	}
}
