package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chartsmith/internal/services"
)

func TestRunWithoutInputsFails(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.MkdirAll(filepath.Join(env.outputDir, "old"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCLI(t, env, "run")
	if !errors.Is(err, services.ErrNoInputs) {
		t.Fatalf("expected ErrNoInputs, got %v", err)
	}
	if !strings.Contains(err.Error(), env.inputDir) {
		t.Fatalf("error should name the input root: %v", err)
	}
	entries, err := os.ReadDir(env.outputDir)
	if err != nil {
		t.Fatalf("output root should be recreated: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("output root should be empty, got %d entries", len(entries))
	}
}

func TestRootCommandRunsBatch(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, env)
	if !errors.Is(err, services.ErrNoInputs) {
		t.Fatalf("expected bare invocation to run the batch, got %v", err)
	}
}
