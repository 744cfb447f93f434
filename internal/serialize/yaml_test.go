package serialize

import (
	"strings"
	"testing"

	cuminjson "github.com/cympfh/cumin/libs/json"
)

func TestToYAML_ScalarKinds(t *testing.T) {
	cases := []struct {
		name string
		node cuminjson.Node
		want string
	}{
		{"null", cuminjson.Node{Kind: cuminjson.KindNull}, "null\n"},
		{"bool true", cuminjson.Node{Kind: cuminjson.KindBool, Bool: true}, "true\n"},
		{"bool false", cuminjson.Node{Kind: cuminjson.KindBool, Bool: false}, "false\n"},
		{"number", cuminjson.Node{Kind: cuminjson.KindNumber, Number: "42"}, "42\n"},
		{"float number", cuminjson.Node{Kind: cuminjson.KindNumber, Number: "1.5"}, "1.5\n"},
		{"string", cuminjson.Node{Kind: cuminjson.KindString, Str: "hoge"}, "hoge\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := ToYAML(c.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(out) != c.want {
				t.Errorf("ToYAML() = %q, want %q", out, c.want)
			}
		})
	}
}

func TestToYAML_ObjectPreservesDeclarationOrder(t *testing.T) {
	node := dictNode(
		cuminjson.Field{Name: "zebra", Value: cuminjson.Node{Kind: cuminjson.KindNumber, Number: "1"}},
		cuminjson.Field{Name: "alpha", Value: cuminjson.Node{Kind: cuminjson.KindNumber, Number: "2"}},
	)

	out, err := ToYAML(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	zebra := strings.Index(string(out), "zebra")
	alpha := strings.Index(string(out), "alpha")
	if zebra == -1 || alpha == -1 || zebra > alpha {
		t.Errorf("ToYAML() = %q, want zebra to appear before alpha (declaration order, not sorted)", out)
	}
}

func TestToYAML_NestedArrayAndObject(t *testing.T) {
	node := dictNode(
		cuminjson.Field{Name: "items", Value: cuminjson.Node{
			Kind: cuminjson.KindArray,
			Elems: []cuminjson.Node{
				{Kind: cuminjson.KindNumber, Number: "1"},
				{Kind: cuminjson.KindNumber, Number: "2"},
			},
		}},
	)

	out, err := ToYAML(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "items:\n  - 1\n  - 2\n"
	if string(out) != want {
		t.Errorf("ToYAML() = %q, want %q", out, want)
	}
}

func TestToYAML_Deterministic(t *testing.T) {
	node := dictNode(
		cuminjson.Field{Name: "zebra", Value: cuminjson.Node{Kind: cuminjson.KindString, Str: "last"}},
		cuminjson.Field{Name: "alpha", Value: cuminjson.Node{Kind: cuminjson.KindString, Str: "first"}},
	)

	var first []byte
	for i := 0; i < 10; i++ {
		out, err := ToYAML(node)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if i == 0 {
			first = out
			continue
		}
		if string(out) != string(first) {
			t.Errorf("iteration %d: output differs from first iteration", i)
		}
	}
}
