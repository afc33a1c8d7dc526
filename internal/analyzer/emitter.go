package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BLamy/does-it-throw/internal/ast"
	"github.com/BLamy/does-it-throw/internal/config"
	"github.com/BLamy/does-it-throw/internal/diagnostics"
)

// emit is the Emitter (spec.md §4.8): it walks the solved Callables and
// turns them into Diagnostic records, honoring severities from
// Settings, the `include_try_statement_throws` gate, doc suppression,
// and per-site/per-Callable suppression, then stably sorts and
// deduplicates the result.
func emit(st *analysisState, settings Settings) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	for _, c := range st.callables {
		if c.IsModule || c.Suppressed {
			continue
		}
		out = append(out, emitFunctionMayThrow(st, c, settings)...)
		out = append(out, emitThrowStatements(st, c, settings)...)
		out = append(out, emitCallMayThrow(st, c, settings)...)
		out = append(out, emitExhaustiveCatchMissing(st, c, settings)...)
		out = append(out, emitJSDocMismatch(st, c, settings)...)
	}
	if settings.ReportUnusedSuppressions {
		out = append(out, emitUnusedSuppressions(st, settings)...)
	}
	return dedupDiagnostics(sortDiagnostics(out))
}

func emitFunctionMayThrow(st *analysisState, c *Callable, settings Settings) []diagnostics.Diagnostic {
	if len(c.Effective) == 0 {
		return nil
	}
	return []diagnostics.Diagnostic{{
		Kind:     diagnostics.KindFunctionMayThrow,
		Range:    spanToRange(st.lineIndex, c.HeadSpan),
		Severity: severityOrDefault(settings.FunctionThrowSeverity, config.DefaultFunctionThrowSeverity),
		Message:  fmt.Sprintf("%s may throw: %s", functionSubject(c), renderKinds(c.Effective)),
		Source:   diagnostics.Source,
	}}
}

func emitThrowStatements(st *analysisState, c *Callable, settings Settings) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	for _, r := range c.RaiseSites {
		if r.Suppressed {
			continue
		}
		if _, ok := c.Documented[r.Kind.Key()]; ok {
			continue
		}
		if r.TryFrame != nil && !settings.IncludeTryStatementThrows && r.TryFrame.Masked[r.Kind.Key()] {
			continue
		}
		out = append(out, diagnostics.Diagnostic{
			Kind:     diagnostics.KindThrowStatement,
			Range:    spanToRange(st.lineIndex, r.Span),
			Severity: severityOrDefault(settings.ThrowStatementSeverity, config.DefaultThrowStatementSeverity),
			Message:  "Throw statement.",
			Source:   diagnostics.Source,
		})
	}
	return out
}

func emitCallMayThrow(st *analysisState, c *Callable, settings Settings) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	for _, cs := range c.CallSites {
		if cs.Suppressed || cs.Linked == nil || len(cs.Linked.Effective) == 0 {
			continue
		}
		kinds := cs.Linked.Effective
		if cs.TryFrame != nil && !settings.IncludeTryStatementThrows {
			kinds = filterMasked(kinds, cs.TryFrame.Masked)
		}
		kinds = subtractDocumented(kinds, c.Documented)
		if len(kinds) == 0 {
			continue
		}
		out = append(out, diagnostics.Diagnostic{
			Kind:     diagnostics.KindCallMayThrow,
			Range:    spanToRange(st.lineIndex, cs.Span),
			Severity: severityOrDefault(settings.CallToThrowSeverity, config.DefaultCallToThrowSeverity),
			Message:  fmt.Sprintf("Function call may throw: %s.", renderKinds(kinds)),
			Source:   diagnostics.Source,
		})
	}
	return out
}

func emitExhaustiveCatchMissing(st *analysisState, c *Callable, settings Settings) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	for _, f := range c.TryFrames {
		if !f.HasHandler || len(f.Missing) == 0 {
			continue
		}
		names := make([]string, len(f.Missing))
		for i, k := range f.Missing {
			names[i] = k.Render()
		}
		out = append(out, diagnostics.Diagnostic{
			Kind:     diagnostics.KindExhaustiveCatchMissing,
			Range:    spanToRange(st.lineIndex, f.HandlerSpan),
			Severity: severityOrDefault(settings.FunctionThrowSeverity, config.DefaultFunctionThrowSeverity),
			Message:  fmt.Sprintf("Exhaustive catch is missing handlers for: %s", strings.Join(names, ", ")),
			Source:   diagnostics.Source,
			Data:     &diagnostics.Data{MissingKinds: names, FunctionName: c.Name},
		})
	}
	return out
}

func emitJSDocMismatch(st *analysisState, c *Callable, settings Settings) []diagnostics.Diagnostic {
	if len(c.Documented) == 0 {
		return nil
	}
	missing := subtractDocumented(c.RaisedFromBody, c.Documented)
	if len(missing) == 0 {
		return nil
	}
	rng := c.HeadSpan
	if c.DocSpan != nil {
		rng = *c.DocSpan
	}
	return []diagnostics.Diagnostic{{
		Kind:     diagnostics.KindJSDocMismatch,
		Range:    spanToRange(st.lineIndex, rng),
		Severity: severityOrDefault(settings.FunctionThrowSeverity, config.DefaultFunctionThrowSeverity),
		Message:  fmt.Sprintf("JSDoc defines %s, but not %s", strings.Join(documentedNameList(c.Documented), ", "), strings.Join(kindNameList(missing), ", ")),
		Source:   diagnostics.Source,
	}}
}

// emitUnusedSuppressions reports function-leading pragmas that ended
// up suppressing nothing — opt-in per spec.md §4.7.
func emitUnusedSuppressions(st *analysisState, settings Settings) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	for _, c := range st.callables {
		if c.IsModule || !c.Suppressed || c.SuppressionSpan == nil {
			continue
		}
		if wouldHaveDiagnostics(c, settings) {
			continue
		}
		out = append(out, diagnostics.Diagnostic{
			Kind:     diagnostics.KindUnusedSuppression,
			Range:    spanToRange(st.lineIndex, *c.SuppressionSpan),
			Severity: diagnostics.SeverityWarning,
			Message:  fmt.Sprintf("Unused suppression: %s never throws.", functionSubject(c)),
			Source:   diagnostics.Source,
		})
	}
	return out
}

func wouldHaveDiagnostics(c *Callable, settings Settings) bool {
	if len(c.Effective) > 0 {
		return true
	}
	for _, r := range c.RaiseSites {
		if r.TryFrame == nil || settings.IncludeTryStatementThrows || !r.TryFrame.Masked[r.Kind.Key()] {
			return true
		}
	}
	for _, cs := range c.CallSites {
		if cs.Linked != nil && len(cs.Linked.Effective) > 0 {
			return true
		}
	}
	for _, f := range c.TryFrames {
		if f.HasHandler && len(f.Missing) > 0 {
			return true
		}
	}
	return false
}

func filterMasked(kinds []ErrorKind, masked map[string]bool) []ErrorKind {
	out := make([]ErrorKind, 0, len(kinds))
	for _, k := range kinds {
		if masked[k.Key()] {
			continue
		}
		out = append(out, k)
	}
	return out
}

func functionSubject(c *Callable) string {
	if c.Name == "" {
		return "Anonymous function"
	}
	return "Function " + c.Name
}

func displayName(c *Callable) string {
	if c.Name == "" {
		return "<anonymous>"
	}
	return c.Name
}

// renderKinds joins ErrorKinds in their given (source-appearance)
// order as the emitter's `{K1, K2, …}` rendering (spec.md §4.8, §9
// "deterministic kind ordering").
func renderKinds(kinds []ErrorKind) string {
	names := kindNameList(kinds)
	return "{" + strings.Join(names, ", ") + "}"
}

func kindNameList(kinds []ErrorKind) []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Render()
	}
	return names
}

func documentedNameList(documented map[string]ErrorKind) []string {
	names := make([]string, 0, len(documented))
	for _, k := range documented {
		names = append(names, k.Render())
	}
	sort.Strings(names)
	return names
}

func severityOrDefault(s diagnostics.Severity, def diagnostics.Severity) diagnostics.Severity {
	if s == 0 {
		return def
	}
	return s
}

func spanToRange(li *diagnostics.LineIndex, span ast.Span) diagnostics.Range {
	return diagnostics.Range{Start: li.Position(span.Start), End: li.Position(span.End)}
}

// sortDiagnostics applies spec.md §5's ordering guarantee: stably
// sorted by start offset, then end offset, then message. Offsets have
// already been converted to line/character Positions by this point, so
// the sort key is the Position pair plus message text.
func sortDiagnostics(ds []diagnostics.Diagnostic) []diagnostics.Diagnostic {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i], ds[j]
		if a.Range.Start != b.Range.Start {
			return positionLess(a.Range.Start, b.Range.Start)
		}
		if a.Range.End != b.Range.End {
			return positionLess(a.Range.End, b.Range.End)
		}
		return a.Message < b.Message
	})
	return ds
}

func positionLess(a, b diagnostics.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Character < b.Character
}

// dedupDiagnostics drops later duplicates sharing the full tuple
// (message, range, severity, code) (spec.md §8 "Deduplication").
func dedupDiagnostics(ds []diagnostics.Diagnostic) []diagnostics.Diagnostic {
	type key struct {
		msg      string
		start    diagnostics.Position
		end      diagnostics.Position
		severity diagnostics.Severity
		code     string
	}
	seen := make(map[key]bool, len(ds))
	out := make([]diagnostics.Diagnostic, 0, len(ds))
	for _, d := range ds {
		k := key{d.Message, d.Range.Start, d.Range.End, d.Severity, d.Code}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, d)
	}
	return out
}
