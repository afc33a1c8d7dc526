package analyzer

import (
	"testing"

	"github.com/BLamy/does-it-throw/internal/config"
	"github.com/BLamy/does-it-throw/internal/diagnostics"
	"github.com/BLamy/does-it-throw/internal/lexer"
)

func TestPragmaToken_ExactTrimMatchOnly(t *testing.T) {
	if _, ok := pragmaToken("// TODO: add @it-throws", config.DefaultIgnoreStatements); ok {
		t.Errorf("a comment merely mentioning the token must not match")
	}
	if _, ok := pragmaToken("@it-throws", config.DefaultIgnoreStatements); !ok {
		t.Errorf("expected an exact trimmed match to succeed")
	}
	if _, ok := pragmaToken("  @it-throws  ", config.DefaultIgnoreStatements); !ok {
		t.Errorf("expected surrounding whitespace to be trimmed before comparison")
	}
}

func TestFileDisabled_WithinScanWindow(t *testing.T) {
	idx := lexer.NewCommentIndex([]lexer.Comment{
		{Text: config.FileDisableToken, StartOffset: 0, EndOffset: 20, StartLine: 1, EndLine: 1},
	})
	if !fileDisabled(idx) {
		t.Errorf("expected the file-disable pragma to be recognized")
	}
}

func TestFileDisabled_OutsideScanWindowIsIgnored(t *testing.T) {
	idx := lexer.NewCommentIndex([]lexer.Comment{
		{Text: config.FileDisableToken, StartOffset: 500, EndOffset: 520, StartLine: config.FileDisableScanLines + 5, EndLine: config.FileDisableScanLines + 5},
	})
	if fileDisabled(idx) {
		t.Errorf("expected a pragma past the scan window to be ignored")
	}
}

func TestLeadingPragma_WhitespaceOnlyGapMatches(t *testing.T) {
	source := "// @it-throws\nfunction f(){}"
	idx := lexer.NewCommentIndex([]lexer.Comment{
		{Text: "@it-throws", StartOffset: 0, EndOffset: 13, StartLine: 1, EndLine: 1},
	})
	declStart := 14 // the "function" keyword, right after the newline
	cm := leadingPragma(idx, source, declStart, config.DefaultIgnoreStatements)
	if cm == nil {
		t.Fatalf("expected the leading pragma to be recognized")
	}
}

func TestLeadingPragma_NonWhitespaceGapDoesNotMatch(t *testing.T) {
	source := "// @it-throws\nconst x = 1;\nfunction f(){}"
	idx := lexer.NewCommentIndex([]lexer.Comment{
		{Text: "@it-throws", StartOffset: 0, EndOffset: 13, StartLine: 1, EndLine: 1},
	})
	declStart := len("// @it-throws\nconst x = 1;\n")
	if cm := leadingPragma(idx, source, declStart, config.DefaultIgnoreStatements); cm != nil {
		t.Errorf("expected no leading pragma across an intervening statement, got %+v", cm)
	}
}

func TestNearbyPragma_WithinProximityWindow(t *testing.T) {
	st := &analysisState{
		lineIndex: diagnostics.NewLineIndex("// @it-throws\nthrow new Error();\n"),
		comments: lexer.NewCommentIndex([]lexer.Comment{
			{Text: "@it-throws", StartOffset: 0, EndOffset: 13, StartLine: 1, EndLine: 1},
		}),
	}
	siteStart := len("// @it-throws\n")
	if !nearbyPragma(st, config.DefaultIgnoreStatements, siteStart) {
		t.Errorf("expected the throw to be covered by the proximity pragma")
	}
}

func TestNearbyPragma_BeyondProximityWindowDoesNotMatch(t *testing.T) {
	src := "// @it-throws\n\n\n\nthrow new Error();\n"
	st := &analysisState{
		lineIndex: diagnostics.NewLineIndex(src),
		comments: lexer.NewCommentIndex([]lexer.Comment{
			{Text: "@it-throws", StartOffset: 0, EndOffset: 13, StartLine: 1, EndLine: 1},
		}),
	}
	siteStart := len("// @it-throws\n\n\n\n")
	if nearbyPragma(st, config.DefaultIgnoreStatements, siteStart) {
		t.Errorf("expected a pragma 4 lines above the site to fall outside the window")
	}
}
