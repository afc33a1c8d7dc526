package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/BLamy/does-it-throw/internal/diagnostics"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiFaint  = "\x1b[2m"
)

// stdoutIsTTY mirrors the teacher's own
// isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) color gate.
func stdoutIsTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printDiagnostics writes one line per Diagnostic in a
// file:line:col: severity: message shape, colorized when stdout is a
// terminal.
func printDiagnostics(path string, ds []diagnostics.Diagnostic) {
	color := stdoutIsTTY()
	for _, d := range ds {
		fmt.Println(formatDiagnostic(path, d, color))
	}
}

func formatDiagnostic(path string, d diagnostics.Diagnostic, color bool) string {
	label := severityLabel(d.Severity)
	if !color {
		return fmt.Sprintf("%s:%d:%d: %s: %s", path, d.Range.Start.Line, d.Range.Start.Character, label, d.Message)
	}
	return fmt.Sprintf("%s%s%s:%d:%d: %s%s%s: %s",
		ansiFaint, path, ansiReset,
		d.Range.Start.Line, d.Range.Start.Character,
		severityColor(d.Severity), label, ansiReset,
		d.Message)
}

func severityLabel(s diagnostics.Severity) string {
	switch s {
	case diagnostics.SeverityError:
		return "error"
	case diagnostics.SeverityWarning:
		return "warning"
	case diagnostics.SeverityHint:
		return "hint"
	default:
		return "info"
	}
}

func severityColor(s diagnostics.Severity) string {
	switch s {
	case diagnostics.SeverityError:
		return ansiRed
	case diagnostics.SeverityWarning:
		return ansiYellow
	default:
		return ansiCyan
	}
}
