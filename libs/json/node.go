// Package json projects an evaluated Cumin Value into a JSON node
// tree, per spec §4.5's projection table: Dict fields keep their
// declaration order (Go's own encoding/json cannot do this for a
// map, since it always sorts keys, so Node carries an ordered field
// list and marshals itself by hand), integers print without a
// fractional part, and floats keep the shortest round-trip decimal
// form that value.Value already computes.
//
// ToNode is the seam `cmd/cuminc` and internal/serialize build on:
// the CLI marshals a Node straight to JSON text, while
// internal/serialize walks the same tree into a YAML document.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"

	cerrors "github.com/cympfh/cumin/libs/errors"
	"github.com/cympfh/cumin/libs/value"
)

// Kind tags which JSON shape a Node holds.
type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindString
	KindNull
	KindObject
	KindArray
)

// Field is one (name, value) member of a KindObject Node, in
// declaration order.
type Field struct {
	Name  string
	Value Node
}

// Node is a JSON value with object members kept in declaration
// order instead of the alphabetical order Go's map-based
// encoding/json would impose.
type Node struct {
	Kind Kind

	// KindNumber: the exact decimal text (Nat/Int render exactly;
	// Float renders via the shortest round-trip form, always with a
	// decimal point so it stays recognizably a Float on the way back).
	Number string

	Bool bool
	Str  string

	Fields []Field // KindObject
	Elems  []Node  // KindArray
}

func numberNode(s string) Node  { return Node{Kind: KindNumber, Number: s} }
func boolNode(b bool) Node      { return Node{Kind: KindBool, Bool: b} }
func stringNode(s string) Node  { return Node{Kind: KindString, Str: s} }
func nullNode() Node            { return Node{Kind: KindNull} }

// ToNode projects v into its JSON node tree.
func ToNode(v value.Value) (Node, error) {
	switch v.Kind {
	case value.KindNat:
		return numberNode(v.Nat.String()), nil
	case value.KindInt:
		return numberNode(v.Int.String()), nil
	case value.KindFloat:
		return numberNode(v.String()), nil
	case value.KindBool:
		return boolNode(v.Bool), nil
	case value.KindString:
		return stringNode(v.Str), nil
	case value.KindEnvRef:
		return Node{}, cerrors.FormatErrorf("environment reference %q was never resolved before projection", v.EnvName)
	case value.KindDict:
		fields := make([]Field, len(v.Fields))
		for i, f := range v.Fields {
			n, err := ToNode(f.Value)
			if err != nil {
				return Node{}, err
			}
			fields[i] = Field{Name: f.Name, Value: n}
		}
		return Node{Kind: KindObject, Fields: fields}, nil
	case value.KindEnumVariant:
		return stringNode(v.VariantName), nil
	case value.KindArray:
		return elemsToArray(v.Elems)
	case value.KindTuple:
		return elemsToArray(v.Items)
	case value.KindOptional:
		if v.Some == nil {
			return nullNode(), nil
		}
		return ToNode(*v.Some)
	case value.KindWrapped:
		return ToNode(*v.Inner)
	default:
		return Node{}, cerrors.FormatErrorf("value of kind %d has no JSON projection", v.Kind)
	}
}

func elemsToArray(elems []value.Value) (Node, error) {
	out := make([]Node, len(elems))
	for i, e := range elems {
		n, err := ToNode(e)
		if err != nil {
			return Node{}, err
		}
		out[i] = n
	}
	return Node{Kind: KindArray, Elems: out}, nil
}

// Marshal projects v straight to compact JSON text.
func Marshal(v value.Value) ([]byte, error) {
	node, err := ToNode(v)
	if err != nil {
		return nil, err
	}
	return node.MarshalJSON()
}

// MarshalJSON writes n as compact JSON, preserving KindObject's
// field order instead of sorting it.
func (n Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n Node) write(buf *bytes.Buffer) error {
	switch n.Kind {
	case KindNumber:
		buf.WriteString(n.Number)
	case KindBool:
		if n.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindString:
		return writeJSONString(buf, n.Str)
	case KindNull:
		buf.WriteString("null")
	case KindObject:
		buf.WriteByte('{')
		for i, f := range n.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, f.Name); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := f.Value.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindArray:
		buf.WriteByte('[')
		for i, e := range n.Elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("unknown node kind %d", n.Kind)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(enc)
	return nil
}
