package analyzer

import (
	"strings"
	"testing"

	"github.com/BLamy/does-it-throw/internal/diagnostics"
)

func mustAnalyze(t *testing.T, src string) *ParseResult {
	t.Helper()
	res, err := Analyze(Input{FileContent: src})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	return res
}

func hasMessage(ds []diagnostics.Diagnostic, substr string) bool {
	for _, d := range ds {
		if strings.Contains(d.Message, substr) {
			return true
		}
	}
	return false
}

func kindAt(ds []diagnostics.Diagnostic, kind diagnostics.Kind) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	for _, d := range ds {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Scenario 1 (spec.md §8.1): a simple throw is both a FunctionMayThrow
// and a ThrowStatement.
func TestAnalyze_SimpleThrow(t *testing.T) {
	res := mustAnalyze(t, `function simpleThrow() { throw new Error("x"); }`)

	if !hasMessage(res.Diagnostics, "Function simpleThrow may throw: {Error}") {
		t.Errorf("missing FunctionMayThrow, got %+v", res.Diagnostics)
	}
	if !hasMessage(res.Diagnostics, "Throw statement.") {
		t.Errorf("missing ThrowStatement, got %+v", res.Diagnostics)
	}
	fn := kindAt(res.Diagnostics, diagnostics.KindFunctionMayThrow)
	if len(fn) != 1 || fn[0].Range.Start.Line != 1 {
		t.Errorf("FunctionMayThrow should anchor at line 1, got %+v", fn)
	}
}

// Scenario 2 (spec.md §8.2): a function-leading pragma suppresses
// everything attributable to that Callable.
func TestAnalyze_LeadingPragmaSuppressesAll(t *testing.T) {
	res := mustAnalyze(t, "// @it-throws\nfunction f() { throw new Error(); }")
	if len(res.Diagnostics) != 0 {
		t.Errorf("expected empty diagnostics, got %+v", res.Diagnostics)
	}
}

// Scenario 3 (spec.md §8.3): one-hop call propagation plus a
// CallMayThrow at the call site.
func TestAnalyze_OneHopCallPropagation(t *testing.T) {
	res := mustAnalyze(t, "function a(){ throw new Error(); }\nfunction b(){ a(); }")

	if !hasMessage(res.Diagnostics, "Function a may throw: {Error}") {
		t.Errorf("missing a's FunctionMayThrow, got %+v", res.Diagnostics)
	}
	if !hasMessage(res.Diagnostics, "Function b may throw: {Error}") {
		t.Errorf("missing b's propagated FunctionMayThrow, got %+v", res.Diagnostics)
	}
	call := kindAt(res.Diagnostics, diagnostics.KindCallMayThrow)
	if len(call) != 1 || !strings.Contains(call[0].Message, "Error") {
		t.Errorf("expected one CallMayThrow mentioning Error, got %+v", call)
	}
}

// Scenario 4 (spec.md §8.4): a matching `@throws` doc tag suppresses
// FunctionMayThrow for the documented kind.
func TestAnalyze_DocumentedThrowSuppressesFunctionMayThrow(t *testing.T) {
	res := mustAnalyze(t, "/** @throws {Error} */\nfunction d(){ throw new Error(); }")
	if len(res.Diagnostics) != 0 {
		t.Errorf("expected empty diagnostics, got %+v", res.Diagnostics)
	}
}

// Scenario 5 (spec.md §8.5): a catch that masks the only propagated
// kind with a `returns` guard leaves no FunctionMayThrow and no
// ExhaustiveCatchMissing.
func TestAnalyze_CatchMasksPropagatedKind(t *testing.T) {
	src := `function a(){ throw new Error(); }
function b(){
  try { a(); } catch(e){ if (e instanceof Error) { return 0; } }
}`
	res := mustAnalyze(t, src)

	for _, d := range res.Diagnostics {
		if d.Kind == diagnostics.KindExhaustiveCatchMissing {
			t.Errorf("unexpected ExhaustiveCatchMissing: %+v", d)
		}
	}
	if hasMessage(res.Diagnostics, "Function b may throw") {
		t.Errorf("b should not be reported as throwing, got %+v", res.Diagnostics)
	}
}

// Scenario 6 (spec.md §8.6): the same shape without the instanceof
// guard or a rethrow reports ExhaustiveCatchMissing.
func TestAnalyze_ExhaustiveCatchMissing(t *testing.T) {
	src := `function a(){ throw new Error(); }
function b(){
  try { a(); } catch(e){ console.log(e); }
}`
	res := mustAnalyze(t, src)

	missing := kindAt(res.Diagnostics, diagnostics.KindExhaustiveCatchMissing)
	if len(missing) != 1 {
		t.Fatalf("expected one ExhaustiveCatchMissing, got %+v", res.Diagnostics)
	}
	if !strings.Contains(missing[0].Message, "Error") {
		t.Errorf("expected message to list Error, got %q", missing[0].Message)
	}
}

// A bare re-raise `throw e` of the caught variable is not itself a
// RaiseSite (spec.md §4.2): it is already folded into the TryFrame's
// Rethrown kinds, so the enclosing function should report TypeError
// exactly once, via one ThrowStatement (the original `new TypeError()`)
// and one FunctionMayThrow — not a second, spurious `{variable: e}`.
func TestAnalyze_BareRethrowIsNotASeparateRaiseSite(t *testing.T) {
	res := mustAnalyze(t, `function f(){ try { throw new TypeError(); } catch(e){ throw e; } }`)

	fn := kindAt(res.Diagnostics, diagnostics.KindFunctionMayThrow)
	if len(fn) != 1 {
		t.Fatalf("expected exactly one FunctionMayThrow, got %+v", fn)
	}
	if fn[0].Message != "Function f may throw: {TypeError}" {
		t.Errorf("expected FunctionMayThrow to list only TypeError, got %q", fn[0].Message)
	}
	if hasMessage(res.Diagnostics, "variable: e") {
		t.Errorf("bare rethrow must not surface as its own {variable: e} kind, got %+v", res.Diagnostics)
	}

	thrown := kindAt(res.Diagnostics, diagnostics.KindThrowStatement)
	if len(thrown) != 1 {
		t.Fatalf("expected exactly one ThrowStatement diagnostic, got %+v", thrown)
	}
}

// A `new` expression whose callee is a locally defined class
// participates in one-hop propagation like any other call site
// (DESIGN.md Open Questions §1): the constructor's throw should
// surface as a CallMayThrow at the `new Widget()` site and propagate
// into the enclosing function's FunctionMayThrow.
func TestAnalyze_NewExpressionPropagatesConstructorThrow(t *testing.T) {
	src := `class Widget {
  constructor() { throw new Error("bad config"); }
}
function make() { return new Widget(); }`
	res := mustAnalyze(t, src)

	if !hasMessage(res.Diagnostics, "Function make may throw: {Error}") {
		t.Errorf("expected make's throw to propagate from the constructor, got %+v", res.Diagnostics)
	}
	call := kindAt(res.Diagnostics, diagnostics.KindCallMayThrow)
	if len(call) != 1 || !strings.Contains(call[0].Message, "Error") {
		t.Errorf("expected one CallMayThrow mentioning Error at the new Widget() site, got %+v", call)
	}
}

func TestAnalyze_ProximityPragmaSuppressesSingleThrow(t *testing.T) {
	src := `function f() {
  // @it-throws
  throw new Error();
  throw new TypeError();
}`
	res := mustAnalyze(t, src)
	throws := kindAt(res.Diagnostics, diagnostics.KindThrowStatement)
	if len(throws) != 1 {
		t.Fatalf("expected exactly one ThrowStatement to survive, got %+v", throws)
	}
	if !hasMessage(res.Diagnostics, "Function f may throw: {TypeError}") {
		t.Errorf("expected only TypeError to remain attributed to f, got %+v", res.Diagnostics)
	}
}

func TestAnalyze_FileDisablePragmaSilencesEverything(t *testing.T) {
	src := "// @it-throws-disable\nfunction f(){ throw new Error(); }"
	res := mustAnalyze(t, src)
	if len(res.Diagnostics) != 0 {
		t.Errorf("expected zero diagnostics, got %+v", res.Diagnostics)
	}
}

func TestAnalyze_JSDocMismatchListsUndocumentedKind(t *testing.T) {
	src := `/** @throws {Error} */
function f() {
  if (true) { throw new Error(); } else { throw new TypeError(); }
}`
	res := mustAnalyze(t, src)
	mismatch := kindAt(res.Diagnostics, diagnostics.KindJSDocMismatch)
	if len(mismatch) != 1 {
		t.Fatalf("expected one JSDocMismatch, got %+v", res.Diagnostics)
	}
	if !strings.Contains(mismatch[0].Message, "TypeError") {
		t.Errorf("expected mismatch to name TypeError, got %q", mismatch[0].Message)
	}
}

func TestAnalyze_ExportedThrowingFunctionProducesThrowID(t *testing.T) {
	res, err := Analyze(Input{
		FileContent: "export function risky(){ throw new Error(); }",
		Settings:    Settings{ModuleID: "file1"},
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(res.ThrowIDs) != 1 || res.ThrowIDs[0] != "file1::risky" {
		t.Errorf("expected ThrowIDs = [file1::risky], got %+v", res.ThrowIDs)
	}
	bundle, ok := res.ImportedIdentifierDiagnostics["file1::risky"]
	if !ok || len(bundle.Diagnostics) == 0 {
		t.Errorf("expected a non-empty imported-identifier bundle, got %+v", res.ImportedIdentifierDiagnostics)
	}
}

func TestAnalyze_RelativeImportsCollected(t *testing.T) {
	res := mustAnalyze(t, `import { helper } from "./util";
function f(){ helper(); }`)
	if len(res.RelativeImports) != 1 || res.RelativeImports[0] != "./util" {
		t.Errorf("expected [\"./util\"], got %+v", res.RelativeImports)
	}
}

func TestAnalyze_Determinism(t *testing.T) {
	src := "function a(){ throw new Error(); }\nfunction b(){ a(); }"
	r1 := mustAnalyze(t, src)
	r2 := mustAnalyze(t, src)
	if len(r1.Diagnostics) != len(r2.Diagnostics) {
		t.Fatalf("non-deterministic diagnostic count: %d vs %d", len(r1.Diagnostics), len(r2.Diagnostics))
	}
	for i := range r1.Diagnostics {
		if r1.Diagnostics[i] != r2.Diagnostics[i] {
			t.Errorf("non-deterministic diagnostic at %d: %+v vs %+v", i, r1.Diagnostics[i], r2.Diagnostics[i])
		}
	}
}

func TestAnalyze_FatalParseError(t *testing.T) {
	_, err := Analyze(Input{FileContent: "function (, { throw"})
	if err == nil {
		t.Fatalf("expected a fatal parse error")
	}
}
