package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func TestParseSource_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.cumin")
	if err := os.WriteFile(path, []byte("1 + 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	prog, baseDir, err := parseSource(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if baseDir != dir {
		t.Errorf("baseDir = %q, want %q", baseDir, dir)
	}
	if prog.Final == nil {
		t.Fatal("expected a parsed program with a final expression")
	}
}

func TestParseSource_NonexistentFile(t *testing.T) {
	if _, _, err := parseSource(filepath.Join(t.TempDir(), "missing.cumin")); err == nil {
		t.Fatal("expected an error for a nonexistent path")
	}
}

// captureStdout runs fn with os.Stdout redirected to a pipe and
// returns whatever it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func runCompileWithArgs(t *testing.T, path string) (string, error) {
	t.Helper()
	var args []string
	if path != "" {
		args = []string{path}
	}
	var runErr error
	stdout := captureStdout(t, func() {
		runErr = runCompile(&cobra.Command{}, args)
	})
	return stdout, runErr
}

func TestRunCompile_PrintsJSONByDefault(t *testing.T) {
	format = "json"
	dir := t.TempDir()
	path := filepath.Join(dir, "main.cumin")
	if err := os.WriteFile(path, []byte("struct P { x: Nat } P(1)"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCompileWithArgs(t, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "{\"x\":1}\n" {
		t.Errorf("runCompile() stdout = %q, want %q", out, "{\"x\":1}\n")
	}
}

func TestRunCompile_PrintsYAMLWhenRequested(t *testing.T) {
	format = "yaml"
	defer func() { format = "json" }()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.cumin")
	if err := os.WriteFile(path, []byte("struct P { x: Nat } P(1)"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCompileWithArgs(t, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "x: 1\n\n" {
		t.Errorf("runCompile() stdout = %q, want %q", out, "x: 1\n\n")
	}
}

func TestRunCompile_ParseErrorIsReturnedNotPanicked(t *testing.T) {
	format = "json"
	dir := t.TempDir()
	path := filepath.Join(dir, "main.cumin")
	if err := os.WriteFile(path, []byte("let x = ;"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCompileWithArgs(t, path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestRunCompile_EvaluationErrorIsReturned(t *testing.T) {
	format = "json"
	dir := t.TempDir()
	path := filepath.Join(dir, "main.cumin")
	if err := os.WriteFile(path, []byte("undefined_name"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCompileWithArgs(t, path); err == nil {
		t.Fatal("expected an evaluation error for an undefined name")
	}
}

func TestRunCompile_DefaultsToStdinWhenNoPathGiven(t *testing.T) {
	format = "json"
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.WriteString("1 + 1"); err != nil {
		t.Fatal(err)
	}
	w.Close()

	origStdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = origStdin }()

	out, err := runCompileWithArgs(t, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "2\n" {
		t.Errorf("runCompile() stdout = %q, want %q", out, "2\n")
	}
}
