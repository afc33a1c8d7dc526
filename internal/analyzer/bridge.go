package analyzer

import (
	"fmt"
	"sort"

	"github.com/BLamy/does-it-throw/internal/config"
	"github.com/BLamy/does-it-throw/internal/diagnostics"
)

// ImportedIdentifierBundle is the per-throw-id lookup record of
// spec.md §4.6: a caller that sees a relative import reads that file,
// invokes Analyze on it, then appends the bundles whose ID matches an
// identifier it actually calls to its own Diagnostics, de-duplicating
// by ID. The core performs no I/O and no cross-file resolution itself
// — this is a lookup surface only.
type ImportedIdentifierBundle struct {
	ID          string
	Diagnostics []diagnostics.Diagnostic
}

// buildBridge is the Cross-File Bridge (spec.md §4.6): for every
// exported Callable whose Effective set is non-empty, emit a stable
// ThrowId of the form `<file-stable-id>::<qualified-name>` plus the
// diagnostic an importer would render at a call site of that
// identifier.
func buildBridge(st *analysisState, settings Settings) ([]string, map[string]ImportedIdentifierBundle) {
	var ids []string
	bundles := make(map[string]ImportedIdentifierBundle)

	for _, c := range st.callables {
		if c.IsModule || !c.Exported || len(c.Effective) == 0 {
			continue
		}
		id := fmt.Sprintf("%s::%s", settings.ModuleID, c.Qualified)
		ids = append(ids, id)
		bundles[id] = ImportedIdentifierBundle{
			ID:          id,
			Diagnostics: []diagnostics.Diagnostic{importedThrowDiagnostic(st, c, settings)},
		}
	}

	sort.Strings(ids)
	return ids, bundles
}

func importedThrowDiagnostic(st *analysisState, c *Callable, settings Settings) diagnostics.Diagnostic {
	rng := spanToRange(st.lineIndex, c.HeadSpan)
	return diagnostics.Diagnostic{
		Kind:     diagnostics.KindImportedCallMayThrow,
		Range:    rng,
		Severity: severityOrDefault(settings.CallToImportedThrowSeverity, config.DefaultCallToImportedThrowSeverity),
		Message:  fmt.Sprintf("Imported function %s may throw: %s", displayName(c), renderKinds(c.Effective)),
		Source:   diagnostics.Source,
	}
}
