// Package batch implements the project-level, multi-file run mode
// (SPEC_FULL.md §11 "Batch/project mode"): starting from an entry
// file, it follows the one-hop relative-import graph each
// analyzer.Analyze call reports, analyzes every reached file — in
// parallel, through a worker pool bounded by runtime.NumCPU() — and
// merges the cross-file bridge output of each file the entry file
// imports directly into the entry file's result. Grounded on the errgroup.Group+SetLimit worker-pool shape in
// other_examples' DeusData-codebase-memory-mcp pipeline-throws pass,
// the closest other-example match to this package's own per-file
// fan-out domain.
package batch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/BLamy/does-it-throw/internal/analyzer"
	"github.com/BLamy/does-it-throw/internal/diagnostics"
)

// Options configures a Run.
type Options struct {
	// EntryFile is the absolute or working-directory-relative path to
	// the root source file.
	EntryFile string
	Settings  analyzer.Settings

	// Cache, when non-nil, is consulted before and populated after
	// analyzing each file (internal/batch/cache.go).
	Cache *Cache

	// Concurrency bounds how many files are analyzed at once. Zero
	// means runtime.NumCPU().
	Concurrency int
}

// FileResult is one file's analysis outcome within a Run.
type FileResult struct {
	Path   string
	Result *analyzer.ParseResult
	Err    error
}

// Result is a full project-graph Run's combined outcome.
type Result struct {
	Files []FileResult

	// Diagnostics is the entry file's own diagnostics plus, for every
	// relative import of the entry file itself, the imported
	// identifier's bridge diagnostics (spec.md §4.6), deduplicated by
	// ThrowId. Bundles of files reached only through other imports are
	// not merged.
	Diagnostics []diagnostics.Diagnostic
}

// Run walks the import graph rooted at opts.EntryFile and returns the
// combined result. It never returns a partial Files list: a file that
// fails to analyze is still recorded, with Err set.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.EntryFile == "" {
		return nil, fmt.Errorf("batch: EntryFile is required")
	}
	entry, err := filepath.Abs(opts.EntryFile)
	if err != nil {
		return nil, fmt.Errorf("batch: resolving entry file: %w", err)
	}

	g := &grapher{
		opts:    opts,
		visited: map[string]bool{entry: true},
		order:   []string{entry},
	}
	frontier := []string{entry}
	for len(frontier) > 0 {
		discovered, err := g.analyzeLevel(ctx, frontier)
		if err != nil {
			return nil, err
		}
		frontier = discovered
	}

	return &Result{
		Files:       g.results(),
		Diagnostics: mergeDiagnostics(entry, g.byPath),
	}, nil
}

// grapher holds the BFS state for one Run: files are analyzed one
// level at a time so a file's own result (and the RelativeImports it
// reports) is always available before its neighbors are enqueued.
type grapher struct {
	opts    Options
	visited map[string]bool
	order   []string
	byPath  map[string]FileResult
}

func (g *grapher) analyzeLevel(ctx context.Context, level []string) ([]string, error) {
	if g.byPath == nil {
		g.byPath = make(map[string]FileResult, len(level))
	}

	limit := g.opts.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	if limit > len(level) {
		limit = len(level)
	}

	results := make([]FileResult, len(level))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i, path := range level {
		i, path := i, path
		eg.Go(func() error {
			if egCtx.Err() != nil {
				return egCtx.Err()
			}
			results[i] = analyzeFile(path, g.opts)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var next []string
	for _, fr := range results {
		g.byPath[fr.Path] = fr
		if fr.Result == nil {
			continue
		}
		for _, rel := range fr.Result.RelativeImports {
			target, ok := resolveImport(fr.Path, rel)
			if !ok || g.visited[target] {
				continue
			}
			g.visited[target] = true
			g.order = append(g.order, target)
			next = append(next, target)
		}
	}
	return next, nil
}

func (g *grapher) results() []FileResult {
	out := make([]FileResult, 0, len(g.order))
	for _, path := range g.order {
		out = append(out, g.byPath[path])
	}
	return out
}

// analyzeFile reads and analyzes one file, consulting the cache first
// when one is configured.
func analyzeFile(path string, opts Options) FileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("batch: reading %s: %w", path, err)}
	}
	content := string(data)
	hash := contentHash(content)

	if opts.Cache != nil {
		if cached, ok := opts.Cache.Get(path, hash); ok {
			return FileResult{Path: path, Result: cached}
		}
	}

	settings := opts.Settings
	settings.ModuleID = path
	result, err := analyzer.Analyze(analyzer.Input{FileContent: content, Settings: settings})
	if err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("batch: analyzing %s: %w", path, err)}
	}

	if opts.Cache != nil {
		if cacheErr := opts.Cache.Put(path, hash, result); cacheErr != nil {
			// A cache write failure degrades to "always re-analyze this
			// file"; it must never fail the run itself.
			_ = cacheErr
		}
	}
	return FileResult{Path: path, Result: result}
}

func contentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// mergeDiagnostics applies spec.md §4.6's bridge rule at the project
// level: the entry file's own diagnostics, plus — for every file the
// entry file imports from directly — that file's exported
// ImportedIdentifierDiagnostics bundles whose name is textually called
// in the importer's source, deduplicated by ThrowId. Files reached only
// through other imports contribute no bundles. The textual check (rather than true
// call-site resolution) matches this module's own declared one-hop,
// no-type-information scope (SPEC_FULL.md §12 Non-goals).
func mergeDiagnostics(entry string, byPath map[string]FileResult) []diagnostics.Diagnostic {
	entryResult, ok := byPath[entry]
	if !ok || entryResult.Result == nil {
		return nil
	}

	out := append([]diagnostics.Diagnostic{}, entryResult.Result.Diagnostics...)
	seen := make(map[string]bool, len(entryResult.Result.ThrowIDs))

	for _, rel := range entryResult.Result.RelativeImports {
		target, ok := resolveImport(entry, rel)
		if !ok {
			continue
		}
		targetResult, ok := byPath[target]
		if !ok || targetResult.Result == nil {
			continue
		}
		entrySource, err := os.ReadFile(entry)
		if err != nil {
			continue
		}
		for _, id := range targetResult.Result.ThrowIDs {
			if seen[id] {
				continue
			}
			bundle, ok := targetResult.Result.ImportedIdentifierDiagnostics[id]
			if !ok {
				continue
			}
			if !referencesQualifiedName(string(entrySource), qualifiedNameOf(id)) {
				continue
			}
			seen[id] = true
			out = append(out, bundle.Diagnostics...)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Range.Start != out[j].Range.Start {
			return positionLess(out[i].Range.Start, out[j].Range.Start)
		}
		return out[i].Message < out[j].Message
	})
	return out
}

func positionLess(a, b diagnostics.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Character < b.Character
}
