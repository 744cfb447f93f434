package eval

import (
	cerrors "github.com/cympfh/cumin/libs/errors"
	"github.com/cympfh/cumin/libs/parser/pkg/ast"
	"github.com/cympfh/cumin/libs/types"
	"github.com/cympfh/cumin/libs/value"
)

// evaluatedArg is one actual argument after its expression has been
// reduced to a Value; Name is "" for a positional argument.
type evaluatedArg struct {
	Name  string
	Value value.Value
}

func evalArgs(args []ast.Arg, env *Environment) ([]evaluatedArg, error) {
	out := make([]evaluatedArg, len(args))
	for i, a := range args {
		v, err := Eval(a.Value, env)
		if err != nil {
			return nil, err
		}
		out[i] = evaluatedArg{Name: a.Name, Value: v}
	}
	return out, nil
}

func evalFields(fields []ast.DictField, env *Environment) ([]evaluatedArg, error) {
	out := make([]evaluatedArg, len(fields))
	for i, f := range fields {
		v, err := Eval(f.Value, env)
		if err != nil {
			return nil, err
		}
		out[i] = evaluatedArg{Name: f.Name, Value: v}
	}
	return out, nil
}

// evalApplyChain evaluates `X.Y.Z(args)` / `X.Y.Z{fields}`, desugared
// per spec §4.2 into nested single-segment applies: the innermost
// path segment receives the actual arguments, and each outer segment
// is then applied to the previous result as its sole positional
// argument.
func evalApplyChain(path []string, innerArgs []evaluatedArg, env *Environment) (value.Value, error) {
	result, err := applyResolved(path[len(path)-1], innerArgs, env)
	if err != nil {
		return value.Value{}, err
	}
	for i := len(path) - 2; i >= 0; i-- {
		result, err = applyResolved(path[i], []evaluatedArg{{Value: result}}, env)
		if err != nil {
			return value.Value{}, err
		}
	}
	return result, nil
}

// applyResolved implements spec §4.3's application resolution order:
// built-in, then struct constructor, then sum-type up-cast, then
// function call. A name matching none of those is a NameError.
func applyResolved(name string, args []evaluatedArg, env *Environment) (value.Value, error) {
	if bf, ok := builtins[name]; ok {
		return bf(args)
	}
	if decl, ok := env.Structs[name]; ok {
		_, fields, err := bindParams(decl.Fields, args, env)
		if err != nil {
			return value.Value{}, err
		}
		structName := name
		return value.NewDict(&structName, fields), nil
	}
	if decl, ok := env.Sums[name]; ok {
		return upcast(name, decl, args)
	}
	if fn, ok := env.Funcs[name]; ok {
		callEnv, _, err := bindParams(fn.Params, args, fn.Captured)
		if err != nil {
			return value.Value{}, err
		}
		return Eval(fn.Body, callEnv)
	}
	return value.Value{}, cerrors.NameErrorf("%q does not resolve to a built-in, struct, sum type, or function", name)
}

// upcast constructs a sum-type value by trying each declared variant
// in order and returning a Wrapped value at the first cast that
// succeeds ("first-match wins", spec §9).
func upcast(name string, decl SumDecl, args []evaluatedArg) (value.Value, error) {
	if len(args) != 1 || args[0].Name != "" {
		return value.Value{}, cerrors.ArgumentErrorf("%q is a sum type and takes exactly one positional argument", name)
	}
	for _, variant := range decl.Variants {
		if cast, err := value.Cast(args[0].Value, variant); err == nil {
			return value.NewWrapped(types.User(name), cast), nil
		}
	}
	return value.Value{}, cerrors.TypeErrorf("no variant of %q accepts %s", name, value.TypeOf(args[0].Value))
}

// bindParams matches positional and keyword arguments against a
// parameter/field list, falling back to each declared default (missing
// required parameters error), casting every bound value to its
// declared type. It returns both the resulting field list (struct
// construction order) and a scratch Environment with the bindings
// installed (so a function call can evaluate its body there); struct
// construction simply discards the returned environment.
//
// Default expressions are evaluated against the growing scratch
// environment, so a later default may reference an earlier
// parameter's bound value.
func bindParams(params []ast.Param, args []evaluatedArg, base *Environment) (*Environment, []value.Field, error) {
	var positional []value.Value
	keyword := map[string]value.Value{}
	for _, a := range args {
		if a.Name == "" {
			positional = append(positional, a.Value)
			continue
		}
		if _, dup := keyword[a.Name]; dup {
			return nil, nil, cerrors.ArgumentErrorf("duplicate keyword argument %q", a.Name)
		}
		keyword[a.Name] = a.Value
	}
	if len(positional) > len(params) {
		return nil, nil, cerrors.ArgumentErrorf("too many positional arguments: got %d, expected at most %d", len(positional), len(params))
	}

	scratch := base.Clone()
	fields := make([]value.Field, 0, len(params))
	posIdx := 0
	for _, param := range params {
		var v value.Value
		if kv, ok := keyword[param.Name]; ok {
			v = kv
			delete(keyword, param.Name)
		} else if posIdx < len(positional) {
			v = positional[posIdx]
			posIdx++
		} else if param.Default != nil {
			dv, err := Eval(param.Default, scratch)
			if err != nil {
				return nil, nil, err
			}
			v = dv
		} else {
			return nil, nil, cerrors.ArgumentErrorf("missing required argument %q", param.Name)
		}

		t := types.Any()
		if param.Type != nil {
			t = *param.Type
		}
		cast, err := value.Cast(v, t)
		if err != nil {
			return nil, nil, err
		}
		scratch.Vars[param.Name] = Binding{Type: t, Value: cast}
		fields = append(fields, value.Field{Name: param.Name, Value: cast})
	}
	for k := range keyword {
		return nil, nil, cerrors.ArgumentErrorf("unknown keyword argument %q", k)
	}
	return scratch, fields, nil
}
