package eval

import (
	"math"
	"math/big"

	cerrors "github.com/cympfh/cumin/libs/errors"
	"github.com/cympfh/cumin/libs/parser/pkg/ast"
	"github.com/cympfh/cumin/libs/types"
	"github.com/cympfh/cumin/libs/value"
)

// evalBinary dispatches a BinaryExpr's two already-evaluated operands
// to the arithmetic, boolean, comparison, or concatenation semantics
// of spec §4.3.
func evalBinary(op ast.BinaryOp, l, r value.Value) (value.Value, error) {
	switch op {
	case ast.OpEq, ast.OpLt:
		return compare(op, l, r)
	case ast.OpAnd, ast.OpOr, ast.OpXor:
		return boolOp(op, l, r)
	case ast.OpConcat:
		return concatArrays(l, r)
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpPow:
		return arith(op, l, r)
	default:
		return value.Value{}, cerrors.ParseErrorf("unknown binary operator %v", op)
	}
}

func negate(v value.Value) (value.Value, error) {
	switch value.TypeOf(v).Kind {
	case types.KindNat:
		return value.NewInt(new(big.Int).Neg(v.Nat)), nil
	case types.KindInt:
		return value.NewInt(new(big.Int).Neg(v.Int)), nil
	case types.KindFloat:
		return value.NewFloat(-v.Float), nil
	default:
		return value.Value{}, cerrors.TypeErrorf("unary - expects a numeric operand, got %s", value.TypeOf(v))
	}
}

func boolOp(op ast.BinaryOp, l, r value.Value) (value.Value, error) {
	lt, rt := value.TypeOf(l), value.TypeOf(r)
	if lt.Kind != types.KindBool || rt.Kind != types.KindBool {
		return value.Value{}, cerrors.TypeErrorf("%v expects Bool operands, got %s and %s", op, lt, rt)
	}
	switch op {
	case ast.OpAnd:
		return value.NewBool(l.Bool && r.Bool), nil
	case ast.OpOr:
		return value.NewBool(l.Bool || r.Bool), nil
	case ast.OpXor:
		return value.NewBool(l.Bool != r.Bool), nil
	default:
		return value.Value{}, cerrors.ParseErrorf("unknown boolean operator %v", op)
	}
}

func compare(op ast.BinaryOp, l, r value.Value) (value.Value, error) {
	lt, rt := value.TypeOf(l), value.TypeOf(r)
	switch {
	case lt.IsNumeric() && rt.IsNumeric():
		c := numericCompare(l, r)
		if op == ast.OpEq {
			return value.NewBool(c == 0), nil
		}
		return value.NewBool(c < 0), nil
	case lt.Kind == types.KindBool && rt.Kind == types.KindBool:
		if op == ast.OpEq {
			return value.NewBool(l.Bool == r.Bool), nil
		}
		return value.NewBool(!l.Bool && r.Bool), nil
	case op == ast.OpEq && lt.Kind == types.KindString && rt.Kind == types.KindString:
		return value.NewBool(l.Str == r.Str), nil
	case op == ast.OpEq && l.Kind == value.KindEnumVariant && r.Kind == value.KindEnumVariant:
		return value.NewBool(l.EnumName == r.EnumName && l.VariantName == r.VariantName), nil
	default:
		return value.Value{}, cerrors.TypeErrorf("cannot compare %s and %s", lt, rt)
	}
}

// numericCompare returns -1, 0, or 1 comparing l and r widened to
// their common representation.
func numericCompare(l, r value.Value) int {
	lt, rt := value.TypeOf(l), value.TypeOf(r)
	if lt.Kind == types.KindFloat || rt.Kind == types.KindFloat {
		lf, rf := toFloat(l), toFloat(r)
		switch {
		case lf < rf:
			return -1
		case lf > rf:
			return 1
		default:
			return 0
		}
	}
	return toBigInt(l).Cmp(toBigInt(r))
}

func toBigInt(v value.Value) *big.Int {
	switch v.Kind {
	case value.KindNat:
		return v.Nat
	case value.KindInt:
		return v.Int
	default:
		return big.NewInt(0)
	}
}

func toFloat(v value.Value) float64 {
	switch v.Kind {
	case value.KindFloat:
		return v.Float
	case value.KindNat, value.KindInt:
		f, _ := new(big.Float).SetInt(toBigInt(v)).Float64()
		return f
	default:
		return 0
	}
}

// arith implements spec §4.3's arithmetic table: the Nat ⊆ Int ⊆
// Float widening chain for `+ - *`, truncating division/remainder for
// `/`, the Nat-Nat-stays-Nat-unless-it-goes-negative rule for `-`, and
// the `**` power rule (Nat**Nat→Nat, Int with a non-negative exponent
// stays Int, any Float operand or a negative integer exponent widens
// to Float).
func arith(op ast.BinaryOp, l, r value.Value) (value.Value, error) {
	lt, rt := value.TypeOf(l), value.TypeOf(r)

	if op == ast.OpAdd && lt.Kind == types.KindString && rt.Kind == types.KindString {
		return value.NewString(l.Str + r.Str), nil
	}
	if !lt.IsNumeric() || !rt.IsNumeric() {
		return value.Value{}, cerrors.TypeErrorf("%v expects numeric operands, got %s and %s", op, lt, rt)
	}

	if op == ast.OpMod {
		return modulo(l, r, lt, rt)
	}
	if op == ast.OpPow {
		return power(l, r, lt, rt)
	}
	if op == ast.OpSub && lt.Kind == types.KindNat && rt.Kind == types.KindNat {
		diff := new(big.Int).Sub(l.Nat, r.Nat)
		if diff.Sign() >= 0 {
			return value.NewNat(diff), nil
		}
		return value.NewInt(diff), nil
	}

	widened, ok := types.Unify(lt, rt)
	if !ok {
		return value.Value{}, cerrors.TypeErrorf("cannot unify %s and %s for %v", lt, rt, op)
	}
	switch widened.Kind {
	case types.KindNat:
		return natArith(op, l.Nat, r.Nat)
	case types.KindInt:
		return intArith(op, toBigInt(l), toBigInt(r))
	case types.KindFloat:
		return floatArith(op, toFloat(l), toFloat(r))
	default:
		return value.Value{}, cerrors.TypeErrorf("%v is not defined for %s", op, widened)
	}
}

func natArith(op ast.BinaryOp, l, r *big.Int) (value.Value, error) {
	switch op {
	case ast.OpAdd:
		return value.NewNat(new(big.Int).Add(l, r)), nil
	case ast.OpMul:
		return value.NewNat(new(big.Int).Mul(l, r)), nil
	case ast.OpDiv:
		if r.Sign() == 0 {
			return value.Value{}, cerrors.ArgumentErrorf("division by zero")
		}
		return value.NewNat(new(big.Int).Quo(l, r)), nil
	default:
		return value.Value{}, cerrors.ParseErrorf("unsupported Nat operator %v", op)
	}
}

func intArith(op ast.BinaryOp, l, r *big.Int) (value.Value, error) {
	switch op {
	case ast.OpAdd:
		return value.NewInt(new(big.Int).Add(l, r)), nil
	case ast.OpSub:
		return value.NewInt(new(big.Int).Sub(l, r)), nil
	case ast.OpMul:
		return value.NewInt(new(big.Int).Mul(l, r)), nil
	case ast.OpDiv:
		if r.Sign() == 0 {
			return value.Value{}, cerrors.ArgumentErrorf("division by zero")
		}
		return value.NewInt(new(big.Int).Quo(l, r)), nil
	default:
		return value.Value{}, cerrors.ParseErrorf("unsupported Int operator %v", op)
	}
}

func floatArith(op ast.BinaryOp, l, r float64) (value.Value, error) {
	switch op {
	case ast.OpAdd:
		return value.NewFloat(l + r), nil
	case ast.OpSub:
		return value.NewFloat(l - r), nil
	case ast.OpMul:
		return value.NewFloat(l * r), nil
	case ast.OpDiv:
		if r == 0 {
			return value.Value{}, cerrors.ArgumentErrorf("division by zero")
		}
		return value.NewFloat(l / r), nil
	default:
		return value.Value{}, cerrors.ParseErrorf("unsupported Float operator %v", op)
	}
}

// modulo is defined as Int-valued when both operands are integral,
// Float-valued otherwise, per the §9 open-question resolution
// recorded in DESIGN.md.
func modulo(l, r value.Value, lt, rt types.Type) (value.Value, error) {
	if lt.Kind != types.KindFloat && rt.Kind != types.KindFloat {
		ri := toBigInt(r)
		if ri.Sign() == 0 {
			return value.Value{}, cerrors.ArgumentErrorf("modulo by zero")
		}
		return value.NewInt(new(big.Int).Rem(toBigInt(l), ri)), nil
	}
	rf := toFloat(r)
	if rf == 0 {
		return value.Value{}, cerrors.ArgumentErrorf("modulo by zero")
	}
	return value.NewFloat(math.Mod(toFloat(l), rf)), nil
}

func power(l, r value.Value, lt, rt types.Type) (value.Value, error) {
	if lt.Kind == types.KindFloat || rt.Kind == types.KindFloat {
		return value.NewFloat(math.Pow(toFloat(l), toFloat(r))), nil
	}
	exp := toBigInt(r)
	if exp.Sign() < 0 {
		return value.NewFloat(math.Pow(toFloat(l), toFloat(r))), nil
	}
	res := new(big.Int).Exp(toBigInt(l), exp, nil)
	if lt.Kind == types.KindNat && rt.Kind == types.KindNat {
		return value.NewNat(res), nil
	}
	return value.NewInt(res), nil
}

// concatArrays implements the `++` operator: both operands must be
// Array; the result's element type is the pairwise unify of the two
// inputs' element types, per spec §4.3.
func concatArrays(l, r value.Value) (value.Value, error) {
	lt, rt := value.TypeOf(l), value.TypeOf(r)
	if lt.Kind != types.KindArray || rt.Kind != types.KindArray {
		return value.Value{}, cerrors.TypeErrorf("++ expects Array operands, got %s and %s", lt, rt)
	}
	elemType, ok := types.Unify(l.ElemType, r.ElemType)
	if !ok {
		return value.Value{}, cerrors.TypeErrorf("++ element types do not unify: %s and %s", l.ElemType, r.ElemType)
	}
	combined := make([]value.Value, 0, len(l.Elems)+len(r.Elems))
	for _, e := range append(append([]value.Value{}, l.Elems...), r.Elems...) {
		c, err := value.Cast(e, elemType)
		if err != nil {
			return value.Value{}, err
		}
		combined = append(combined, c)
	}
	return value.NewArray(elemType, combined), nil
}
