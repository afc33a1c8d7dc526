package batch

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// sourceExtensions is the set of extensions a bare or extension-less
// relative import is resolved against, in priority order.
var sourceExtensions = []string{"", ".ts", ".tsx", ".js", ".jsx"}

// resolveImport turns one of fromFile's RelativeImports (spec.md §4's
// "./util"-style specifier, exactly as written in the source) into the
// absolute path of a file that exists on disk, trying each of
// sourceExtensions directly and then as an index file inside a
// directory of that name — the same resolution Node's own module
// loader falls back through for extension-less specifiers.
func resolveImport(fromFile, specifier string) (string, bool) {
	base := filepath.Join(filepath.Dir(fromFile), specifier)

	for _, ext := range sourceExtensions {
		candidate := base + ext
		if fileExists(candidate) {
			return candidate, true
		}
	}
	for _, ext := range sourceExtensions[1:] {
		candidate := filepath.Join(base, "index"+ext)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// qualifiedNameOf extracts the `<qualified-name>` half of a ThrowId
// (`<file-stable-id>::<qualified-name>`, spec.md §4.6).
func qualifiedNameOf(throwID string) string {
	idx := strings.LastIndex(throwID, "::")
	if idx < 0 {
		return throwID
	}
	return throwID[idx+2:]
}

// referencesQualifiedName reports whether source textually calls the
// last dotted segment of qualified (the whole identifier followed by
// `(`) — the cheap, type-free stand-in for true cross-file call-site
// resolution (see batch.go's mergeDiagnostics doc comment). A mention
// without a call, such as an import specifier, does not count.
func referencesQualifiedName(source, qualified string) bool {
	name := qualified
	if idx := strings.LastIndex(qualified, "."); idx >= 0 {
		name = qualified[idx+1:]
	}
	if name == "" {
		return false
	}
	pattern := `\b` + regexp.QuoteMeta(name) + `\s*\(`
	matched, err := regexp.MatchString(pattern, source)
	return err == nil && matched
}
