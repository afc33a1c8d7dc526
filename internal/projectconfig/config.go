// Package projectconfig loads a project-level `.doesitthrow.yaml` file
// into an analyzer.Settings, grounded on funvibe/funxy's own
// internal/ext/config.go Config/LoadConfig/ParseConfig/FindConfig shape
// for reading a YAML sidecar config that feeds a Go toolchain.
package projectconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/BLamy/does-it-throw/internal/analyzer"
	"github.com/BLamy/does-it-throw/internal/diagnostics"
)

// FileName is the config file this package looks for.
const FileName = ".doesitthrow.yaml"

// Config is the on-disk shape of .doesitthrow.yaml.
type Config struct {
	// Severities overrides the default severity of each diagnostic kind
	// (spec.md §6). Omitted entries keep the analyzer's own default.
	Severities SeverityOverrides `yaml:"severities,omitempty"`

	// IncludeTryStatementThrows mirrors Settings.IncludeTryStatementThrows.
	IncludeTryStatementThrows bool `yaml:"include_try_statement_throws,omitempty"`

	// IgnoreStatements overrides the default pragma token set
	// (spec.md §4.7). Empty means "use the analyzer's own defaults".
	IgnoreStatements []string `yaml:"ignore_statements,omitempty"`

	// ReportUnusedSuppressions mirrors Settings.ReportUnusedSuppressions.
	ReportUnusedSuppressions bool `yaml:"report_unused_suppressions,omitempty"`

	// Exclude lists glob patterns. They are parsed and kept here, but
	// ToSettings drops them and internal/batch does not read them, so no
	// file is skipped because of them.
	Exclude []string `yaml:"exclude,omitempty"`
}

// SeverityOverrides names each overridable severity by the same words
// used in spec.md §6, rather than by Settings' Go field names, since
// this is the user-facing config surface.
type SeverityOverrides struct {
	ThrowStatement      string `yaml:"throw_statement,omitempty"`
	FunctionMayThrow    string `yaml:"function_may_throw,omitempty"`
	CallMayThrow        string `yaml:"call_may_throw,omitempty"`
	CallToImportedThrow string `yaml:"call_to_imported_throw,omitempty"`
}

// LoadConfig reads and parses a .doesitthrow.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses .doesitthrow.yaml content from bytes. path is
// used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfig searches for .doesitthrow.yaml starting from dir and
// walking up to parent directories, the way funxy.yaml is located.
// Returns the empty string with a nil error when nothing is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) validate(path string) error {
	for field, raw := range map[string]string{
		"severities.throw_statement":        c.Severities.ThrowStatement,
		"severities.function_may_throw":     c.Severities.FunctionMayThrow,
		"severities.call_may_throw":         c.Severities.CallMayThrow,
		"severities.call_to_imported_throw": c.Severities.CallToImportedThrow,
	} {
		if raw == "" {
			continue
		}
		if _, ok := severityNames[raw]; !ok {
			return fmt.Errorf("%s: %s: unknown severity %q", path, field, raw)
		}
	}
	return nil
}

var severityNames = map[string]diagnostics.Severity{
	"error":       diagnostics.SeverityError,
	"warning":     diagnostics.SeverityWarning,
	"information": diagnostics.SeverityInformation,
	"hint":        diagnostics.SeverityHint,
}

// ToSettings projects the loaded Config onto an analyzer.Settings,
// leaving zero-valued severities for the analyzer's own defaults to
// fill in (spec.md §6's "zero value selects the default").
func (c *Config) ToSettings() analyzer.Settings {
	if c == nil {
		return analyzer.Settings{}
	}
	return analyzer.Settings{
		ThrowStatementSeverity:      severityNames[c.Severities.ThrowStatement],
		FunctionThrowSeverity:       severityNames[c.Severities.FunctionMayThrow],
		CallToThrowSeverity:         severityNames[c.Severities.CallMayThrow],
		CallToImportedThrowSeverity: severityNames[c.Severities.CallToImportedThrow],
		IncludeTryStatementThrows:   c.IncludeTryStatementThrows,
		IgnoreStatements:            c.IgnoreStatements,
		ReportUnusedSuppressions:    c.ReportUnusedSuppressions,
	}
}
