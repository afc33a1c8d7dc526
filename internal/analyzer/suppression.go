package analyzer

import (
	"strings"

	"github.com/BLamy/does-it-throw/internal/ast"
	"github.com/BLamy/does-it-throw/internal/config"
	"github.com/BLamy/does-it-throw/internal/lexer"
)

// pragmaToken reports whether comment's trimmed text is exactly one of
// tokens — spec.md §4.7: "only whole-word token match after trimming",
// a line like `// TODO: add @it-throws` never matches because its
// trimmed body is not the bare token.
func pragmaToken(text string, tokens []string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	for _, t := range tokens {
		if trimmed == t {
			return t, true
		}
	}
	return "", false
}

// fileDisabled implements spec.md §4.7 item 1: a line- or block-comment
// matching config.FileDisableToken within the first
// config.FileDisableScanLines source lines silences the whole file.
func fileDisabled(comments *lexer.CommentIndex) bool {
	if comments == nil {
		return false
	}
	for _, cm := range comments.All() {
		if cm.StartLine > config.FileDisableScanLines {
			continue
		}
		if _, ok := pragmaToken(cm.Text, []string{config.FileDisableToken}); ok {
			return true
		}
	}
	return false
}

// leadingPragma returns the pragma comment immediately preceding
// offset, if any: the nearest preceding comment, separated from offset
// by whitespace only (no intervening statement, no other comment in
// between — spec.md §4.7 item 2), whose trimmed text matches one of tokens.
func leadingPragma(comments *lexer.CommentIndex, source string, offset int, tokens []string) *lexer.Comment {
	if comments == nil {
		return nil
	}
	cm := comments.ImmediatelyBefore(offset)
	if cm == nil {
		return nil
	}
	between := source[clampOffset(cm.EndOffset, len(source)):clampOffset(offset, len(source))]
	if strings.TrimSpace(between) != "" {
		return nil
	}
	if _, ok := pragmaToken(cm.Text, tokens); !ok {
		return nil
	}
	return cm
}

// nearbyPragma implements spec.md §4.7 item 3: a comment matching one
// of tokens whose end line is within config.ProximityLines lines above
// site's start line.
func nearbyPragma(st *analysisState, tokens []string, siteStart int) bool {
	if st.comments == nil {
		return false
	}
	siteLine := st.lineIndex.Position(siteStart).Line
	for _, cm := range st.comments.All() {
		if cm.StartOffset >= siteStart {
			continue
		}
		if siteLine-cm.EndLine < 0 || siteLine-cm.EndLine > config.ProximityLines {
			continue
		}
		if _, ok := pragmaToken(cm.Text, tokens); ok {
			return true
		}
	}
	return false
}

// applySuppressions is the Suppression Engine (spec.md §4.7): it marks
// every Callable preceded by a function-leading pragma as wholly
// suppressed, and flags individual RaiseSites/CallSites caught by
// proximity pragmas. File-level disable is reported separately (the
// emitter short-circuits to zero diagnostics rather than threading a
// flag through every record).
func applySuppressions(st *analysisState, tokens []string) {
	for _, c := range st.callables {
		if c.IsModule {
			continue
		}
		if cm := leadingPragma(st.comments, st.source, c.DeclStart, tokens); cm != nil {
			c.Suppressed = true
			span := ast.Span{Start: cm.StartOffset, End: cm.EndOffset}
			c.SuppressionSpan = &span
		}
		for _, r := range c.RaiseSites {
			if nearbyPragma(st, tokens, r.Span.Start) {
				r.Suppressed = true
			}
		}
		for _, cs := range c.CallSites {
			if nearbyPragma(st, tokens, cs.Span.Start) {
				cs.Suppressed = true
			}
		}
	}
}
