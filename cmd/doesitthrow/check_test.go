package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BLamy/does-it-throw/internal/analyzer"
)

func TestCheckFile_ReturnsFalseWhenDiagnosticsExist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.js")
	if err := os.WriteFile(path, []byte("function f(){ throw new Error(); }"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if checkFile(path, analyzer.Settings{}) {
		t.Errorf("expected checkFile to return false for a throwing function")
	}
}

func TestCheckFile_ReturnsTrueWhenClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.js")
	if err := os.WriteFile(path, []byte("function f(){ return 1; }"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !checkFile(path, analyzer.Settings{}) {
		t.Errorf("expected checkFile to return true for a non-throwing function")
	}
}

func TestCheckFile_MissingFileReturnsFalse(t *testing.T) {
	if checkFile(filepath.Join(t.TempDir(), "missing.js"), analyzer.Settings{}) {
		t.Errorf("expected checkFile to return false for a missing file")
	}
}
