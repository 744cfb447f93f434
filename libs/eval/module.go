package eval

import (
	"os"
	"path/filepath"

	cerrors "github.com/cympfh/cumin/libs/errors"
	"github.com/cympfh/cumin/libs/parser"
	"github.com/cympfh/cumin/libs/parser/pkg/ast"
)

// resolvePath implements spec §4.4's path resolution: use the path
// as-is if it names an existing file, else join it to baseDir if it
// is relative and a base directory is known.
func resolvePath(path, baseDir string) (string, bool) {
	if _, err := os.Stat(path); err == nil {
		return path, true
	}
	if !filepath.IsAbs(path) && baseDir != "" {
		candidate := filepath.Join(baseDir, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// loadModule resolves, parses, and hoists the file named by use into
// env. A resolution or parse failure is recorded as a non-fatal
// ModuleError warning (spec §9's documented default); any other
// failure surfaced while hoisting the module's own statements is
// fatal and bubbles to the caller, matching top-level evaluation.
func loadModule(use ast.UseStmt, env *Environment, baseDir string) error {
	resolved, ok := resolvePath(use.Path, baseDir)
	if !ok {
		env.Warn(cerrors.ModuleErrorf("cannot resolve import %q", use.Path))
		return nil
	}
	clean := filepath.Clean(resolved)
	if env.LoadedModules[clean] {
		return nil
	}
	env.LoadedModules[clean] = true

	prog, err := parser.ParseFile(clean)
	if err != nil {
		env.Warn(cerrors.ModuleErrorf("failed to parse %q: %v", clean, err))
		return nil
	}
	return Hoist(prog, env, filepath.Dir(clean))
}
