package main

import (
	"fmt"
	"os"

	"github.com/BLamy/does-it-throw/internal/analyzer"
	"github.com/BLamy/does-it-throw/internal/pipeline"
)

// checkFile analyzes a single file in isolation (no project-graph
// walk, no cross-file bridge) and prints its diagnostics. It returns
// false when the file failed to read, failed to parse, or produced at
// least one diagnostic — the caller folds that into the process exit
// code.
func checkFile(path string, settings analyzer.Settings) bool {
	ctx := pipeline.NewContext(path, "", settings)
	ctx = pipeline.Standard().Run(ctx)
	if len(ctx.Errors) > 0 {
		for _, err := range ctx.Errors {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		}
		return false
	}

	printDiagnostics(path, ctx.Result.Diagnostics)
	return len(ctx.Result.Diagnostics) == 0
}
