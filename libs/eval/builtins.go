package eval

import (
	cerrors "github.com/cympfh/cumin/libs/errors"
	"github.com/cympfh/cumin/libs/types"
	"github.com/cympfh/cumin/libs/value"
)

// builtins are the four names spec §4.3 recognizes ahead of any
// user declaration: Some, not, concat, reverse. Confirmed against
// original_source/src/builtins.rs: concat is variadic over arrays,
// reverse takes exactly one.
var builtins = map[string]func([]evaluatedArg) (value.Value, error){
	"Some":    builtinSome,
	"not":     builtinNot,
	"concat":  builtinConcat,
	"reverse": builtinReverse,
}

func builtinSome(args []evaluatedArg) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, cerrors.ArgumentErrorf("Some expects exactly one argument, got %d", len(args))
	}
	v := args[0].Value
	return value.NewOptional(value.TypeOf(v), &v), nil
}

func builtinNot(args []evaluatedArg) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, cerrors.ArgumentErrorf("not expects exactly one argument, got %d", len(args))
	}
	v := args[0].Value
	if value.TypeOf(v).Kind != types.KindBool {
		return value.Value{}, cerrors.TypeErrorf("not expects a Bool argument, got %s", value.TypeOf(v))
	}
	return value.NewBool(!v.Bool), nil
}

func builtinConcat(args []evaluatedArg) (value.Value, error) {
	if len(args) == 0 {
		return value.Value{}, cerrors.ArgumentErrorf("concat expects at least one Array argument")
	}
	elemType := types.Any()
	var allElems []value.Value
	for _, a := range args {
		if value.TypeOf(a.Value).Kind != types.KindArray {
			return value.Value{}, cerrors.TypeErrorf("concat expects Array arguments, got %s", value.TypeOf(a.Value))
		}
		u, ok := types.Unify(elemType, a.Value.ElemType)
		if !ok {
			return value.Value{}, cerrors.TypeErrorf("concat: element types do not unify")
		}
		elemType = u
		allElems = append(allElems, a.Value.Elems...)
	}
	cast := make([]value.Value, len(allElems))
	for i, e := range allElems {
		c, err := value.Cast(e, elemType)
		if err != nil {
			return value.Value{}, err
		}
		cast[i] = c
	}
	return value.NewArray(elemType, cast), nil
}

func builtinReverse(args []evaluatedArg) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, cerrors.ArgumentErrorf("reverse expects exactly one argument, got %d", len(args))
	}
	v := args[0].Value
	if value.TypeOf(v).Kind != types.KindArray {
		return value.Value{}, cerrors.TypeErrorf("reverse expects an Array argument, got %s", value.TypeOf(v))
	}
	n := len(v.Elems)
	rev := make([]value.Value, n)
	for i, e := range v.Elems {
		rev[n-1-i] = e
	}
	return value.NewArray(v.ElemType, rev), nil
}
