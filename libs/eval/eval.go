package eval

import (
	"fmt"
	"os"

	cerrors "github.com/cympfh/cumin/libs/errors"
	"github.com/cympfh/cumin/libs/parser/pkg/ast"
	"github.com/cympfh/cumin/libs/types"
	"github.com/cympfh/cumin/libs/value"
)

// Result is the outcome of a top-level Evaluate: the program's value
// plus any non-fatal diagnostics collected along the way (currently
// only module-loading warnings).
type Result struct {
	Value    value.Value
	Warnings []error
}

// Evaluate hoists and evaluates prog against a fresh Environment
// rooted at baseDir, per spec §4.3's evaluator entrypoint.
func Evaluate(prog *ast.Program, baseDir string) (Result, error) {
	env := NewEnvironment(baseDir)
	if err := Hoist(prog, env, baseDir); err != nil {
		return Result{Warnings: *env.Warnings}, err
	}
	val, err := Eval(prog.Final, env)
	if err != nil {
		return Result{Warnings: *env.Warnings}, err
	}
	return Result{Value: val, Warnings: *env.Warnings}, nil
}

// Eval reduces a single expression node to a Value against env.
func Eval(e ast.Expr, env *Environment) (value.Value, error) {
	switch node := e.(type) {
	case ast.LiteralExpr:
		return node.Value, nil

	case ast.VarExpr:
		b, ok := env.Vars[node.Name]
		if !ok {
			return value.Value{}, cerrors.NameErrorf("undefined variable %q", node.Name)
		}
		return b.Value, nil

	case ast.EnvRefExpr:
		return evalEnvRef(node)

	case ast.EnumVariantExpr:
		return evalEnumVariant(node, env)

	case ast.ArrayExpr:
		return evalArray(node, env)

	case ast.TupleExpr:
		items := make([]value.Value, len(node.Elements))
		for i, el := range node.Elements {
			v, err := Eval(el, env)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = v
		}
		return value.NewTuple(items), nil

	case ast.DictExpr:
		return evalDict(node, env)

	case ast.BlockExpr:
		child := env.Clone()
		if err := Hoist(node.Body, child, env.BaseDir); err != nil {
			return value.Value{}, err
		}
		return Eval(node.Body.Final, child)

	case ast.UnaryExpr:
		return evalUnary(node, env)

	case ast.BinaryExpr:
		left, err := Eval(node.Left, env)
		if err != nil {
			return value.Value{}, err
		}
		right, err := Eval(node.Right, env)
		if err != nil {
			return value.Value{}, err
		}
		return evalBinary(node.Op, left, right)

	case ast.AsExpr:
		v, err := Eval(node.Operand, env)
		if err != nil {
			return value.Value{}, err
		}
		return value.Coerce(v, node.Target)

	case ast.ApplyExpr:
		args, err := evalArgs(node.Args, env)
		if err != nil {
			return value.Value{}, err
		}
		return evalApplyChain(node.Path, args, env)

	case ast.FieldedApplyExpr:
		args, err := evalFields(node.Fields, env)
		if err != nil {
			return value.Value{}, err
		}
		return evalApplyChain(node.Path, args, env)

	default:
		return value.Value{}, cerrors.ParseErrorf("unhandled expression node %T", e)
	}
}

func evalEnvRef(node ast.EnvRefExpr) (value.Value, error) {
	if v, ok := os.LookupEnv(node.Name); ok {
		return value.NewString(v), nil
	}
	if node.Default != nil {
		return value.NewString(*node.Default), nil
	}
	return value.Value{}, cerrors.NameErrorf("environment variable %q is not set", node.Name)
}

func evalEnumVariant(node ast.EnumVariantExpr, env *Environment) (value.Value, error) {
	decl, ok := env.Enums[node.EnumName]
	if !ok {
		return value.Value{}, cerrors.EnumErrorf("enum %q is not declared", node.EnumName)
	}
	for _, v := range decl.Variants {
		if v == node.VariantName {
			return value.NewEnumVariant(node.EnumName, node.VariantName), nil
		}
	}
	return value.Value{}, cerrors.EnumErrorf("enum %q has no variant %q", node.EnumName, node.VariantName)
}

func evalArray(node ast.ArrayExpr, env *Environment) (value.Value, error) {
	vals := make([]value.Value, len(node.Elements))
	elemType := types.Any()
	for i, el := range node.Elements {
		v, err := Eval(el, env)
		if err != nil {
			return value.Value{}, err
		}
		vals[i] = v
		u, ok := types.Unify(elemType, value.TypeOf(v))
		if !ok {
			return value.Value{}, cerrors.TypeErrorf("array elements do not unify: %s and %s", elemType, value.TypeOf(v))
		}
		elemType = u
	}
	cast := make([]value.Value, len(vals))
	for i, v := range vals {
		c, err := value.Cast(v, elemType)
		if err != nil {
			return value.Value{}, err
		}
		cast[i] = c
	}
	return value.NewArray(elemType, cast), nil
}

func evalDict(node ast.DictExpr, env *Environment) (value.Value, error) {
	fields := make([]value.Field, len(node.Fields))
	for i, f := range node.Fields {
		v, err := Eval(f.Value, env)
		if err != nil {
			return value.Value{}, err
		}
		if f.Type != nil {
			v, err = value.Cast(v, *f.Type)
			if err != nil {
				return value.Value{}, err
			}
		}
		fields[i] = value.Field{Name: f.Name, Value: v}
	}
	return value.NewDict(nil, fields), nil
}

func evalUnary(node ast.UnaryExpr, env *Environment) (value.Value, error) {
	v, err := Eval(node.Operand, env)
	if err != nil {
		return value.Value{}, err
	}
	switch node.Op {
	case ast.OpNot:
		if value.TypeOf(v).Kind != types.KindBool {
			return value.Value{}, cerrors.TypeErrorf("not expects Bool, got %s", value.TypeOf(v))
		}
		return value.NewBool(!v.Bool), nil
	case ast.OpNeg:
		return negate(v)
	default:
		return value.Value{}, fmt.Errorf("unknown unary operator %v", node.Op)
	}
}
