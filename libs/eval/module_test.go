package eval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cympfh/cumin/libs/parser/pkg/ast"
)

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "lib.cumin")
	if err := os.WriteFile(abs, []byte("let one = 1;\n0"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("resolves an as-is existing path", func(t *testing.T) {
		got, ok := resolvePath(abs, "")
		if !ok || got != abs {
			t.Fatalf("resolvePath(%q, \"\") = %q, %v", abs, got, ok)
		}
	})

	t.Run("joins a relative path against baseDir", func(t *testing.T) {
		got, ok := resolvePath("lib.cumin", dir)
		if !ok || got != abs {
			t.Fatalf("resolvePath(\"lib.cumin\", %q) = %q, %v, want %q, true", dir, got, ok, abs)
		}
	})

	t.Run("an unresolvable path reports false", func(t *testing.T) {
		if _, ok := resolvePath("does/not/exist.cumin", dir); ok {
			t.Fatal("expected resolvePath to fail for a nonexistent path")
		}
	})
}

func TestLoadModule_MergesDeclarationsIntoTheCallingScope(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.cumin")
	if err := os.WriteFile(path, []byte("let answer = 42;\n0"), 0o644); err != nil {
		t.Fatal(err)
	}

	env := NewEnvironment(dir)
	if err := loadModule(ast.UseStmt{Path: "lib.cumin"}, env, dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, ok := env.Vars["answer"]
	if !ok || b.Value.Nat == nil || b.Value.Nat.Int64() != 42 {
		t.Fatalf("expected answer=42 merged into env.Vars, got %+v, ok=%v", b, ok)
	}
}

func TestLoadModule_MissingImportIsNonFatal(t *testing.T) {
	env := NewEnvironment("")
	if err := loadModule(ast.UseStmt{Path: "nowhere.cumin"}, env, ""); err != nil {
		t.Fatalf("a missing import must be a warning, not a fatal error; got %v", err)
	}
	if len(*env.Warnings) != 1 {
		t.Fatalf("expected one warning recorded, got %d", len(*env.Warnings))
	}
}

func TestLoadModule_CyclePreventsReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.cumin")
	if err := os.WriteFile(path, []byte("let n = 1;\n0"), 0o644); err != nil {
		t.Fatal(err)
	}

	env := NewEnvironment(dir)
	clean := filepath.Clean(path)
	env.LoadedModules[clean] = true
	env.Vars["n"] = Binding{}

	if err := loadModule(ast.UseStmt{Path: "lib.cumin"}, env, dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Re-loading an already-loaded module must be a silent no-op: the
	// pre-seeded zero-value binding for n must survive untouched.
	if env.Vars["n"].Value.Nat != nil {
		t.Fatal("expected the already-loaded module to be skipped, not re-hoisted")
	}
}
