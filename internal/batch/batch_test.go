package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/BLamy/does-it-throw/internal/diagnostics"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	return dir
}

func TestRun_WalksRelativeImportGraph(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.js": `import { risky } from "./util";
function run() { risky(); }`,
		"util.js": `export function risky(){ throw new Error(); }`,
	})

	res, err := Run(context.Background(), Options{EntryFile: filepath.Join(dir, "main.js")})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Files) != 2 {
		t.Fatalf("expected two files walked, got %+v", res.Files)
	}
	for _, fr := range res.Files {
		if fr.Err != nil {
			t.Errorf("file %s: unexpected error: %v", fr.Path, fr.Err)
		}
	}
}

func TestRun_MergesImportedIdentifierDiagnostics(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.js": `import { risky } from "./util";
function run() { risky(); }`,
		"util.js": `export function risky(){ throw new Error(); }`,
	})

	res, err := Run(context.Background(), Options{EntryFile: filepath.Join(dir, "main.js")})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	found := false
	for _, d := range res.Diagnostics {
		if d.Kind == diagnostics.KindImportedCallMayThrow {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a merged ImportedCallMayThrow diagnostic, got %+v", res.Diagnostics)
	}
}

func TestRun_UnreferencedImportIsNotMerged(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.js": `import { risky } from "./util";
function run() { return 1; }`,
		"util.js": `export function risky(){ throw new Error(); }`,
	})

	res, err := Run(context.Background(), Options{EntryFile: filepath.Join(dir, "main.js")})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, d := range res.Diagnostics {
		if d.Kind == diagnostics.KindImportedCallMayThrow {
			t.Errorf("did not expect a merged diagnostic for an unreferenced import, got %+v", res.Diagnostics)
		}
	}
}

func TestRun_MissingEntryFileIsRecordedAsError(t *testing.T) {
	dir := t.TempDir()
	res, err := Run(context.Background(), Options{EntryFile: filepath.Join(dir, "missing.js")})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Files) != 1 || res.Files[0].Err == nil {
		t.Fatalf("expected one file result with an error, got %+v", res.Files)
	}
}

func TestCache_RoundTripsKind(t *testing.T) {
	cache, err := OpenCache("")
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	defer cache.Close()

	dir := writeProject(t, map[string]string{"f.js": "function f(){ throw new Error(); }"})
	res, err := Run(context.Background(), Options{EntryFile: filepath.Join(dir, "f.js"), Cache: cache})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Files) != 1 || res.Files[0].Result == nil {
		t.Fatalf("expected one analyzed file, got %+v", res.Files)
	}

	second, err := Run(context.Background(), Options{EntryFile: filepath.Join(dir, "f.js"), Cache: cache})
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(second.Files) != 1 || second.Files[0].Result == nil {
		t.Fatalf("expected a cache hit to still produce a Result, got %+v", second.Files)
	}
	var kinds, cachedKinds []diagnostics.Kind
	for _, d := range res.Files[0].Result.Diagnostics {
		kinds = append(kinds, d.Kind)
	}
	for _, d := range second.Files[0].Result.Diagnostics {
		cachedKinds = append(cachedKinds, d.Kind)
	}
	if len(kinds) == 0 || len(kinds) != len(cachedKinds) {
		t.Fatalf("expected matching non-empty Kind lists, got %v vs %v", kinds, cachedKinds)
	}
	for i := range kinds {
		if kinds[i] != cachedKinds[i] {
			t.Errorf("cached diagnostic lost its Kind: got %v, want %v", cachedKinds[i], kinds[i])
		}
		if cachedKinds[i] == "" {
			t.Errorf("cached diagnostic Kind is empty — gob round-trip dropped it")
		}
	}
}
