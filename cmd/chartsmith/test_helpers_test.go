package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	inputDir   string
	outputDir  string
	converter  string
	stateDir   string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("INPUT_DIR", "")
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("MIDI_CH_ROOT", "")
	t.Chdir(base)

	env := &cliTestEnv{
		baseDir:    base,
		inputDir:   filepath.Join(base, "input"),
		outputDir:  filepath.Join(base, "charts"),
		converter:  filepath.Join(base, "midi-ch"),
		stateDir:   filepath.Join(base, "state"),
		configPath: filepath.Join(base, "chartsmith.toml"),
	}
	content := fmt.Sprintf(
		"[paths]\ninput_dir = %q\noutput_dir = %q\nconverter_dir = %q\nstate_dir = %q\nlog_dir = \"\"\n\n[logging]\nlevel = \"error\"\n",
		env.inputDir, env.outputDir, env.converter, env.stateDir,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q to contain %q", haystack, needle)
	}
}
