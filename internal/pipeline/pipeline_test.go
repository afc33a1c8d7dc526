package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BLamy/does-it-throw/internal/analyzer"
)

func TestPipeline_RunsStagesInOrder(t *testing.T) {
	ctx := NewContext("inline.js", "function f(){ throw new Error(); }", analyzer.Settings{})
	out := Standard().Run(ctx)

	if len(out.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", out.Errors)
	}
	if out.Result == nil {
		t.Fatalf("expected a Result after the analyze stage")
	}
	if len(out.Result.Diagnostics) == 0 {
		t.Errorf("expected at least one diagnostic for a throwing function")
	}
}

func TestPipeline_LoadProcessorReadsFileWhenContentEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.js")
	if err := os.WriteFile(path, []byte("function f(){}"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ctx := NewContext(path, "", analyzer.Settings{})
	out := Standard().Run(ctx)

	if len(out.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", out.Errors)
	}
	if out.Content != "function f(){}" {
		t.Errorf("expected Content to be loaded from disk, got %q", out.Content)
	}
}

func TestPipeline_LoadProcessorRecordsMissingFileError(t *testing.T) {
	ctx := NewContext(filepath.Join(t.TempDir(), "missing.js"), "", analyzer.Settings{})
	out := Standard().Run(ctx)

	if len(out.Errors) == 0 {
		t.Fatalf("expected a load error for a missing file")
	}
	if out.Result != nil {
		t.Errorf("analyze stage should not run without Content, got %+v", out.Result)
	}
}

func TestPipeline_AnalyzeProcessorDefaultsModuleIDToFilePath(t *testing.T) {
	ctx := NewContext("src/risky.js", "export function risky(){ throw new Error(); }", analyzer.Settings{})
	out := Standard().Run(ctx)

	if out.Result == nil {
		t.Fatalf("expected a Result")
	}
	if len(out.Result.ThrowIDs) != 1 || out.Result.ThrowIDs[0] != "src/risky.js::risky" {
		t.Errorf("expected ThrowIDs = [src/risky.js::risky], got %+v", out.Result.ThrowIDs)
	}
}

func TestPipeline_AnalyzeProcessorRecordsFatalParseError(t *testing.T) {
	ctx := NewContext("bad.js", "function (, { throw", analyzer.Settings{})
	out := Standard().Run(ctx)

	if len(out.Errors) == 0 {
		t.Fatalf("expected a fatal parse error to be recorded")
	}
	if out.Result != nil {
		t.Errorf("expected no Result on fatal parse error, got %+v", out.Result)
	}
}
