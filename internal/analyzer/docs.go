package analyzer

import (
	"strings"

	"github.com/BLamy/does-it-throw/internal/config"
)

// parseDocThrows implements the Doc Reconciler's tag parsing (spec.md
// §4.4): a DocComment's raw text (delimiters already stripped by the
// lexer) is scanned line by line for `@throws {Kind} …` or
// `@throws Kind[, Kind2, …] …`; multiple `@throws` lines accumulate
// into one documented set.
func parseDocThrows(commentText string) map[string]ErrorKind {
	out := make(map[string]ErrorKind)
	for _, raw := range strings.Split(commentText, "\n") {
		line := strings.TrimSpace(raw)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, config.JSDocThrowsTag) {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(line, config.JSDocThrowsTag))
		for _, name := range extractThrowsKindNames(rest) {
			k := ErrorKind{Variant: KindNamed, Name: name}
			out[k.Key()] = k
		}
	}
	return out
}

// extractThrowsKindNames accepts both `{Kind}` and bare `Kind[, Kind2]`
// forms following the `@throws` tag, stopping at the first description
// word that isn't a comma-separated identifier list.
func extractThrowsKindNames(rest string) []string {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil
	}
	if strings.HasPrefix(rest, "{") {
		end := strings.Index(rest, "}")
		if end < 0 {
			return nil
		}
		inner := rest[1:end]
		return splitKindList(inner)
	}

	// Bare form: `Kind1, Kind2 description text...` — take the leading
	// comma-separated run of fields, ending with the first field that has
	// no trailing comma. Fields are not checked for looking like type
	// names, so `@throws some text` yields the kind name "some".
	fields := strings.FieldsFunc(rest, func(r rune) bool { return r == ' ' || r == '\t' })
	if len(fields) == 0 {
		return nil
	}
	// Reassemble up to (and including) the first field that does not end
	// in a comma, then split that prefix on commas.
	var head strings.Builder
	for i, f := range fields {
		head.WriteString(f)
		if !strings.HasSuffix(f, ",") {
			_ = i
			break
		}
		head.WriteString(" ")
	}
	return splitKindList(head.String())
}

func splitKindList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}

// documentedNames returns the set of ErrorKind keys in a documented
// map. The emitter's JSDocMismatch message uses documentedNameList, not
// this set.
func documentedNames(documented map[string]ErrorKind) map[string]bool {
	out := make(map[string]bool, len(documented))
	for _, k := range documented {
		out[k.Key()] = true
	}
	return out
}
