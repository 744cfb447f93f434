// Package eval implements the Cumin evaluator: the four-pass hoisting
// procedure, the Environment a program is hoisted and evaluated
// against, operator semantics, application resolution, the built-in
// functions, and the module loader (spec §4.3, §4.4).
package eval

import (
	"github.com/cympfh/cumin/libs/parser/pkg/ast"
	"github.com/cympfh/cumin/libs/types"
	"github.com/cympfh/cumin/libs/value"
)

// Binding is an evaluated `let`: the declared (or defaulted-to-Any)
// type alongside the cast value.
type Binding struct {
	Type  types.Type
	Value value.Value
}

// StructDecl records a `struct Name { field [: T] [= e], ... }`.
type StructDecl struct {
	Name   string
	Fields []ast.Param
}

// EnumDecl records an `enum Name { V, ... }`.
type EnumDecl struct {
	Name     string
	Variants []string
}

// SumDecl records a `type Name = T1 | T2 | ...;`.
type SumDecl struct {
	Name     string
	Variants []types.Type
}

// FunctionDecl records a function declaration together with the
// environment snapshot captured at declaration time. Captured holds
// every binding, function, and type visible at that point; the
// function is non-recursive by construction (it is not inserted into
// its own Captured), per spec §9.
type FunctionDecl struct {
	Name     string
	Params   []ast.Param
	Body     ast.Expr
	Captured *Environment
}

// Environment holds every declaration visible at a point in a Cumin
// program. Vars/Funcs/Structs/Enums/Sums grow monotonically within one
// scope; LoadedModules and Warnings are shared by pointer across
// Clone() so module dedup and diagnostics persist across nested block
// and module evaluation, exactly as spec §3's "Lifecycles" describes.
type Environment struct {
	Sums    map[string]SumDecl
	Structs map[string]StructDecl
	Enums   map[string]EnumDecl
	Vars    map[string]Binding
	Funcs   map[string]FunctionDecl

	LoadedModules map[string]bool
	Warnings      *[]error

	// BaseDir is the directory `use` paths in the top-level program
	// resolve relative to. Nested modules resolve their own `use`
	// statements relative to their own directory instead (threaded
	// explicitly through Hoist, not read from here).
	BaseDir string
}

// NewEnvironment builds an empty Environment rooted at baseDir.
func NewEnvironment(baseDir string) *Environment {
	warnings := []error{}
	return &Environment{
		Sums:          map[string]SumDecl{},
		Structs:       map[string]StructDecl{},
		Enums:         map[string]EnumDecl{},
		Vars:          map[string]Binding{},
		Funcs:         map[string]FunctionDecl{},
		LoadedModules: map[string]bool{},
		Warnings:      &warnings,
		BaseDir:       baseDir,
	}
}

// Clone copies the declaration maps by value (a block or function call
// must not let its own declarations leak into the scope it was
// entered from) while keeping LoadedModules/Warnings shared, since
// those track state for the whole top-level evaluation.
func (e *Environment) Clone() *Environment {
	c := &Environment{
		Sums:          make(map[string]SumDecl, len(e.Sums)),
		Structs:       make(map[string]StructDecl, len(e.Structs)),
		Enums:         make(map[string]EnumDecl, len(e.Enums)),
		Vars:          make(map[string]Binding, len(e.Vars)),
		Funcs:         make(map[string]FunctionDecl, len(e.Funcs)),
		LoadedModules: e.LoadedModules,
		Warnings:      e.Warnings,
		BaseDir:       e.BaseDir,
	}
	for k, v := range e.Sums {
		c.Sums[k] = v
	}
	for k, v := range e.Structs {
		c.Structs[k] = v
	}
	for k, v := range e.Enums {
		c.Enums[k] = v
	}
	for k, v := range e.Vars {
		c.Vars[k] = v
	}
	for k, v := range e.Funcs {
		c.Funcs[k] = v
	}
	return c
}

// Warn records a non-fatal diagnostic (module-loading failures).
func (e *Environment) Warn(err error) {
	*e.Warnings = append(*e.Warnings, err)
}
