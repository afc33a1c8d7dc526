// Command doesitthrow is the CLI front end: manual os.Args dispatch
// (no flag/cobra library), grounded on cmd/funxy/main.go's own
// "Usage: %s <subcommand> ..." usage strings and switch-driven
// subcommand handling.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/BLamy/does-it-throw/internal/analyzer"
	"github.com/BLamy/does-it-throw/internal/batch"
	"github.com/BLamy/does-it-throw/internal/projectconfig"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "check":
		runCheck(os.Args[2:])
	case "project":
		runProject(os.Args[2:])
	case "-help", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "doesitthrow: unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  %s check <file> [file2...]     analyze each file independently
  %s project <entry-file>        walk the relative-import graph from entry-file
  %s help                        show this message
`, os.Args[0], os.Args[0], os.Args[0])
}

func runCheck(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s check <file> [file2...]\n", os.Args[0])
		os.Exit(2)
	}

	settings := loadProjectSettings()
	exitCode := 0
	for _, path := range args {
		if !checkFile(path, settings) {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func runProject(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s project <entry-file>\n", os.Args[0])
		os.Exit(2)
	}
	runID := uuid.New().String()

	settings := loadProjectSettings()
	res, err := batch.Run(context.Background(), batch.Options{
		EntryFile: args[0],
		Settings:  settings,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "[%s] doesitthrow: %v\n", runID, err)
		os.Exit(1)
	}

	exitCode := 0
	for _, fr := range res.Files {
		if fr.Err != nil {
			fmt.Fprintf(os.Stderr, "[%s] %s: %v\n", runID, fr.Path, fr.Err)
			exitCode = 1
		}
	}
	printDiagnostics(args[0], res.Diagnostics)
	if len(res.Diagnostics) > 0 {
		exitCode = 1
	}
	os.Exit(exitCode)
}

// loadProjectSettings looks for .doesitthrow.yaml in the working
// directory's ancestry; a missing config file is not an error, it just
// leaves every Settings field at its analyzer default.
func loadProjectSettings() analyzer.Settings {
	wd, err := os.Getwd()
	if err != nil {
		return analyzer.Settings{}
	}
	path, err := projectconfig.FindConfig(wd)
	if err != nil || path == "" {
		return analyzer.Settings{}
	}
	cfg, err := projectconfig.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "doesitthrow: %v (ignoring config)\n", err)
		return analyzer.Settings{}
	}
	return cfg.ToSettings()
}
