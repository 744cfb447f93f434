// Package value implements the Cumin runtime Value sum: the tagged
// union produced by literal evaluation and by the evaluator's
// expression reduction, plus the Cast/Coerce/TypeOf operations of the
// type algebra (spec §4.1) that operate on Values rather than bare
// Types.
//
// Nat and Int carry *big.Int payloads rather than a fixed machine
// width. The language calls for 128-bit Nat/Int; no third-party
// arbitrary/wide-integer library appears anywhere in the retrieved
// pack, so Nat/Int are built directly on the standard library's
// math/big, per the corpus's own absence of an alternative (recorded
// in the grounding ledger).
package value

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	cerrors "github.com/cympfh/cumin/libs/errors"
	"github.com/cympfh/cumin/libs/types"
)

// Kind tags which alternative of the Value sum a Value represents.
type Kind int

const (
	KindNat Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	// KindEnvRef is an unresolved `$NAME` / `${NAME:-default}` reference.
	KindEnvRef
	KindDict
	KindEnumVariant
	KindArray
	KindTuple
	KindOptional
	// KindWrapped tags a value with a user sum-type name.
	KindWrapped
)

// Field is one (name, value) pair of a Dict, in declaration order.
type Field struct {
	Name  string
	Value Value
}

// Value is a single node of the Cumin runtime value algebra. Only the
// fields relevant to Kind are populated; the rest are zero.
type Value struct {
	Kind Kind

	Nat   *big.Int
	Int   *big.Int
	Float float64
	Bool  bool
	Str   string

	// EnvRef
	EnvName    string
	EnvDefault *string

	// Dict: StructName is nil for an anonymous `{{ ... }}` dict, set
	// for a struct-constructor result.
	StructName *string
	Fields     []Field

	// EnumVariant
	EnumName    string
	VariantName string

	// Array
	ElemType types.Type
	Elems    []Value

	// Tuple
	Items []Value

	// Optional: Some is nil for the absent case.
	OptElemType types.Type
	Some        *Value

	// Wrapped
	DeclaredType types.Type
	Inner        *Value
}

func NewNat(n *big.Int) Value   { return Value{Kind: KindNat, Nat: n} }
func NewInt(n *big.Int) Value   { return Value{Kind: KindInt, Int: n} }
func NewFloat(f float64) Value  { return Value{Kind: KindFloat, Float: f} }
func NewBool(b bool) Value      { return Value{Kind: KindBool, Bool: b} }
func NewString(s string) Value  { return Value{Kind: KindString, Str: s} }

// NewEnvRef builds an unresolved environment-variable reference.
func NewEnvRef(name string, def *string) Value {
	return Value{Kind: KindEnvRef, EnvName: name, EnvDefault: def}
}

// NewDict builds a Dict value. structName is nil for an anonymous dict.
func NewDict(structName *string, fields []Field) Value {
	return Value{Kind: KindDict, StructName: structName, Fields: fields}
}

func NewEnumVariant(enumName, variantName string) Value {
	return Value{Kind: KindEnumVariant, EnumName: enumName, VariantName: variantName}
}

func NewArray(elemType types.Type, elems []Value) Value {
	return Value{Kind: KindArray, ElemType: elemType, Elems: elems}
}

func NewTuple(items []Value) Value { return Value{Kind: KindTuple, Items: items} }

// NewOptional builds a present (some != nil) or absent (some == nil)
// Optional value over elemType.
func NewOptional(elemType types.Type, some *Value) Value {
	return Value{Kind: KindOptional, OptElemType: elemType, Some: some}
}

func NewWrapped(declared types.Type, inner Value) Value {
	return Value{Kind: KindWrapped, DeclaredType: declared, Inner: &inner}
}

// Field looks up a Dict field by name.
func (v Value) Field(name string) (Value, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// TypeOf is a direct tag lookup into the Type sum, per spec §4.1.
func TypeOf(v Value) types.Type {
	switch v.Kind {
	case KindNat:
		return types.Nat()
	case KindInt:
		return types.Int()
	case KindFloat:
		return types.Float()
	case KindBool:
		return types.Bool()
	case KindString, KindEnvRef:
		// EnvRef resolves to String during evaluation; reporting its
		// eventual type here keeps type_of total before that happens.
		return types.String()
	case KindDict:
		if v.StructName != nil {
			return types.User(*v.StructName)
		}
		return types.Any()
	case KindEnumVariant:
		return types.User(v.EnumName)
	case KindArray:
		return types.Array(v.ElemType)
	case KindTuple:
		elems := make([]types.Type, len(v.Items))
		for i, it := range v.Items {
			elems[i] = TypeOf(it)
		}
		return types.Tuple(elems)
	case KindOptional:
		return types.Option(v.OptElemType)
	case KindWrapped:
		return v.DeclaredType
	default:
		return types.Any()
	}
}

// Cast implements the lossless coercion used during structural
// assembly (field assignment, array unification, Some packaging),
// per spec §4.1.
func Cast(v Value, t types.Type) (Value, error) {
	if t.Kind == types.KindAny {
		return v, nil
	}
	vt := TypeOf(v)
	if types.Equal(vt, t) {
		return v, nil
	}

	switch v.Kind {
	case KindNat:
		switch t.Kind {
		case types.KindInt:
			return NewInt(new(big.Int).Set(v.Nat)), nil
		case types.KindFloat:
			f := new(big.Float).SetInt(v.Nat)
			fv, _ := f.Float64()
			return NewFloat(fv), nil
		}
	case KindInt:
		if t.Kind == types.KindFloat {
			f := new(big.Float).SetInt(v.Int)
			fv, _ := f.Float64()
			return NewFloat(fv), nil
		}
	case KindArray:
		if t.Kind == types.KindArray {
			elemType, ok := types.Unify(v.ElemType, *t.Elem)
			if !ok {
				return Value{}, cerrors.TypeErrorf("cannot cast %s into %s: element types do not unify", vt, t)
			}
			elems := make([]Value, len(v.Elems))
			for i, e := range v.Elems {
				c, err := Cast(e, elemType)
				if err != nil {
					return Value{}, err
				}
				elems[i] = c
			}
			return NewArray(elemType, elems), nil
		}
	case KindOptional:
		if t.Kind == types.KindOption {
			if v.Some == nil {
				elemType, ok := types.Unify(v.OptElemType, *t.Elem)
				if !ok {
					elemType = *t.Elem
				}
				return NewOptional(elemType, nil), nil
			}
			inner, err := Cast(*v.Some, *t.Elem)
			if err != nil {
				return Value{}, err
			}
			return NewOptional(*t.Elem, &inner), nil
		}
	case KindDict:
		if t.Kind == types.KindUser && v.StructName != nil && *v.StructName == t.Name {
			return v, nil
		}
	case KindEnumVariant:
		if t.Kind == types.KindUser && v.EnumName == t.Name {
			return v, nil
		}
	}

	return Value{}, cerrors.TypeErrorf("cannot cast %s into %s", vt, t)
}

// Coerce implements the explicit `as T` operator: strictly wider than
// Cast, adding number/string conversions and the narrowing numeric
// casts, per spec §4.1.
func Coerce(v Value, t types.Type) (Value, error) {
	vt := TypeOf(v)

	if t.Kind == types.KindString && vt.IsNumeric() {
		return NewString(numberToString(v)), nil
	}

	if vt.Kind == types.KindString && (t.Kind == types.KindNat || t.Kind == types.KindInt || t.Kind == types.KindFloat) {
		return stringToNumber(v.Str, t)
	}

	if vt.Kind == types.KindString && t.Kind == types.KindBool {
		switch v.Str {
		case "true":
			return NewBool(true), nil
		case "false":
			return NewBool(false), nil
		}
		return Value{}, cerrors.TypeErrorf("cannot coerce %q into Bool", v.Str)
	}

	if vt.Kind == types.KindFloat && (t.Kind == types.KindInt || t.Kind == types.KindNat) {
		bi, _ := big.NewFloat(math.Trunc(v.Float)).Int(nil)
		return narrowToInteger(bi, t)
	}

	if vt.Kind == types.KindInt && t.Kind == types.KindNat {
		return narrowToInteger(v.Int, t)
	}

	return Cast(v, t)
}

// narrowToInteger rejects negative values when narrowing into Nat,
// per the deterministic choice documented in DESIGN.md (source
// behavior is undefined here; this port picks TypeError over wrap).
func narrowToInteger(bi *big.Int, t types.Type) (Value, error) {
	if t.Kind == types.KindNat {
		if bi.Sign() < 0 {
			return Value{}, cerrors.TypeErrorf("cannot coerce negative value %s into Nat", bi.String())
		}
		return NewNat(new(big.Int).Set(bi)), nil
	}
	return NewInt(new(big.Int).Set(bi)), nil
}

// numberToString renders a numeric Value in its canonical textual
// form: exact decimal for Nat/Int, shortest round-trip for Float.
func numberToString(v Value) string {
	switch v.Kind {
	case KindNat:
		return v.Nat.String()
	case KindInt:
		return v.Int.String()
	case KindFloat:
		return formatFloat(v.Float)
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !math.IsInf(f, 0) && !math.IsNaN(f) {
		s += ".0"
	}
	return s
}

// stringToNumber parses s strictly; any trailing garbage is an error.
func stringToNumber(s string, t types.Type) (Value, error) {
	switch t.Kind {
	case types.KindNat:
		n, ok := new(big.Int).SetString(s, 10)
		if !ok || n.Sign() < 0 {
			return Value{}, cerrors.TypeErrorf("cannot coerce %q into Nat", s)
		}
		return NewNat(n), nil
	case types.KindInt:
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return Value{}, cerrors.TypeErrorf("cannot coerce %q into Int", s)
		}
		return NewInt(n), nil
	case types.KindFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, cerrors.TypeErrorf("cannot coerce %q into Float", s)
		}
		return NewFloat(f), nil
	default:
		return Value{}, cerrors.TypeErrorf("cannot coerce %q into %s", s, t)
	}
}

// String renders a Value for diagnostics; it is not the JSON
// projection (see libs/json for that).
func (v Value) String() string {
	switch v.Kind {
	case KindNat:
		return v.Nat.String()
	case KindInt:
		return v.Int.String()
	case KindFloat:
		return formatFloat(v.Float)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindString:
		return strconv.Quote(v.Str)
	case KindEnvRef:
		return fmt.Sprintf("$%s", v.EnvName)
	case KindDict:
		name := "<anon>"
		if v.StructName != nil {
			name = *v.StructName
		}
		return fmt.Sprintf("%s{...}", name)
	case KindEnumVariant:
		return fmt.Sprintf("%s::%s", v.EnumName, v.VariantName)
	case KindArray:
		return fmt.Sprintf("Array(%s, len=%d)", v.ElemType, len(v.Elems))
	case KindTuple:
		return fmt.Sprintf("Tuple(len=%d)", len(v.Items))
	case KindOptional:
		if v.Some == nil {
			return "None"
		}
		return fmt.Sprintf("Some(%s)", v.Some.String())
	case KindWrapped:
		return fmt.Sprintf("%s(%s)", v.DeclaredType, v.Inner.String())
	default:
		return "?"
	}
}
