package json

import (
	"math/big"
	"testing"

	"github.com/cympfh/cumin/libs/types"
	"github.com/cympfh/cumin/libs/value"
)

func TestMarshal(t *testing.T) {
	cases := []struct {
		name string
		v    value.Value
		want string
	}{
		{"nat", value.NewNat(big.NewInt(42)), `42`},
		{"negative int", value.NewInt(big.NewInt(-7)), `-7`},
		{"float keeps a decimal point", value.NewFloat(2), `2.0`},
		{"bool", value.NewBool(true), `true`},
		{"string escapes control chars", value.NewString("a\nb\"c"), `"a\nb\"c"`},
		{"enum variant projects to its name", value.NewEnumVariant("X", "Park"), `"Park"`},
		{"none projects to null", value.NewOptional(types.Nat(), nil), `null`},
		{
			"some projects to the inner value",
			func() value.Value {
				inner := value.NewNat(big.NewInt(1))
				return value.NewOptional(types.Nat(), &inner)
			}(),
			`1`,
		},
		{
			"wrapped projects to the inner value",
			value.NewWrapped(types.User("T"), value.NewString("hoge")),
			`"hoge"`,
		},
		{
			"array",
			value.NewArray(types.Nat(), []value.Value{value.NewNat(big.NewInt(1)), value.NewNat(big.NewInt(2))}),
			`[1,2]`,
		},
		{
			"tuple",
			value.NewTuple([]value.Value{value.NewNat(big.NewInt(1)), value.NewString("x")}),
			`[1,"x"]`,
		},
		{
			"dict keeps its field order",
			value.NewDict(nil, []value.Field{
				{Name: "x", Value: value.NewNat(big.NewInt(1))},
				{Name: "y", Value: value.NewNat(big.NewInt(2))},
			}),
			`{"x":1,"y":2}`,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Marshal(c.v)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			if string(got) != c.want {
				t.Errorf("Marshal() = %s, want %s", got, c.want)
			}
		})
	}
}

func TestMarshalUnresolvedEnvRefIsError(t *testing.T) {
	v := value.NewEnvRef("HOME", nil)
	if _, err := Marshal(v); err == nil {
		t.Fatal("expected an error projecting an unresolved EnvRef, got none")
	}
}
