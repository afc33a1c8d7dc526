package projectconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BLamy/does-it-throw/internal/diagnostics"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(""), "<inline>")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	settings := cfg.ToSettings()
	if settings.ThrowStatementSeverity != 0 {
		t.Errorf("expected zero-valued severity to fall back to the analyzer default, got %v", settings.ThrowStatementSeverity)
	}
}

func TestParseConfig_SeverityOverrides(t *testing.T) {
	src := `
severities:
  throw_statement: warning
  function_may_throw: error
include_try_statement_throws: true
report_unused_suppressions: true
ignore_statements:
  - "@ignore-this"
`
	cfg, err := ParseConfig([]byte(src), "<inline>")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	settings := cfg.ToSettings()
	if settings.ThrowStatementSeverity != diagnostics.SeverityWarning {
		t.Errorf("expected SeverityWarning, got %v", settings.ThrowStatementSeverity)
	}
	if settings.FunctionThrowSeverity != diagnostics.SeverityError {
		t.Errorf("expected SeverityError, got %v", settings.FunctionThrowSeverity)
	}
	if !settings.IncludeTryStatementThrows || !settings.ReportUnusedSuppressions {
		t.Errorf("expected both boolean flags to be true, got %+v", settings)
	}
	if len(settings.IgnoreStatements) != 1 || settings.IgnoreStatements[0] != "@ignore-this" {
		t.Errorf("expected overridden IgnoreStatements, got %+v", settings.IgnoreStatements)
	}
}

func TestParseConfig_RejectsUnknownSeverity(t *testing.T) {
	_, err := ParseConfig([]byte("severities:\n  throw_statement: catastrophic\n"), "<inline>")
	if err == nil {
		t.Fatalf("expected an error for an unknown severity name")
	}
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(""), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	found, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("FindConfig: %v", err)
	}
	want := filepath.Join(root, FileName)
	if found != want {
		t.Errorf("expected %q, got %q", want, found)
	}
}

func TestFindConfig_NotFound(t *testing.T) {
	dir := t.TempDir()
	found, err := FindConfig(dir)
	if err != nil {
		t.Fatalf("FindConfig: %v", err)
	}
	if found != "" {
		t.Errorf("expected empty string, got %q", found)
	}
}
