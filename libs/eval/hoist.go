package eval

import (
	"github.com/cympfh/cumin/libs/parser/pkg/ast"
	"github.com/cympfh/cumin/libs/types"
	"github.com/cympfh/cumin/libs/value"
)

// Hoist runs the four-pass pre-scan of spec §4.3 over prog's
// statements, mutating env in place: types, then structs, then enums,
// then `use`/`let`/`fn` in source order. baseDir is where relative
// `use` paths in THIS statement list resolve from; an imported
// module's own nested `use` statements resolve relative to its own
// directory (see loadModule).
//
// Only a failure that is not a module-loading problem is returned as
// a fatal error; missing or unparsable imports are recorded on
// env.Warnings and hoisting continues, per the source-compatible
// default documented in DESIGN.md.
func Hoist(prog *ast.Program, env *Environment, baseDir string) error {
	for _, s := range prog.Statements {
		if ts, ok := s.(ast.TypeStmt); ok {
			env.Sums[ts.Name] = SumDecl{Name: ts.Name, Variants: ts.Variants}
		}
	}
	for _, s := range prog.Statements {
		if ss, ok := s.(ast.StructStmt); ok {
			env.Structs[ss.Name] = StructDecl{Name: ss.Name, Fields: ss.Fields}
		}
	}
	for _, s := range prog.Statements {
		if es, ok := s.(ast.EnumStmt); ok {
			env.Enums[es.Name] = EnumDecl{Name: es.Name, Variants: es.Variants}
		}
	}
	for _, s := range prog.Statements {
		switch st := s.(type) {
		case ast.UseStmt:
			if err := loadModule(st, env, baseDir); err != nil {
				return err
			}
		case ast.LetStmt:
			val, err := Eval(st.Value, env)
			if err != nil {
				return err
			}
			t := types.Any()
			if st.Type != nil {
				t = *st.Type
			}
			cast, err := value.Cast(val, t)
			if err != nil {
				return err
			}
			env.Vars[st.Name] = Binding{Type: t, Value: cast}
		case ast.FnStmt:
			env.Funcs[st.Name] = FunctionDecl{
				Name:     st.Name,
				Params:   st.Params,
				Body:     st.Body,
				Captured: env.Clone(),
			}
		}
	}
	return nil
}
