package eval

import (
	"math/big"
	"testing"

	"github.com/cympfh/cumin/libs/types"
	"github.com/cympfh/cumin/libs/value"
)

func TestBuiltinSome(t *testing.T) {
	got, err := builtinSome([]evaluatedArg{{Value: nat(1)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != value.KindOptional || got.Some == nil || got.Some.Nat.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("got %+v, want Some(1)", got)
	}

	if _, err := builtinSome(nil); err == nil {
		t.Fatal("expected an error calling Some with no arguments")
	}
}

func TestBuiltinNot(t *testing.T) {
	got, err := builtinNot([]evaluatedArg{{Value: value.NewBool(false)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Bool {
		t.Fatal("expected not(false) = true")
	}

	if _, err := builtinNot([]evaluatedArg{{Value: nat(1)}}); err == nil {
		t.Fatal("expected an error calling not on a non-Bool")
	}
}

func TestBuiltinConcat(t *testing.T) {
	a := value.NewArray(types.Nat(), []value.Value{nat(1)})
	b := value.NewArray(types.Nat(), []value.Value{nat(2)})
	c := value.NewArray(types.Nat(), []value.Value{nat(3)})

	t.Run("variadic over more than two arrays", func(t *testing.T) {
		got, err := builtinConcat([]evaluatedArg{{Value: a}, {Value: b}, {Value: c}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.Elems) != 3 {
			t.Fatalf("expected 3 elements, got %d", len(got.Elems))
		}
	})

	t.Run("at least one argument is required", func(t *testing.T) {
		if _, err := builtinConcat(nil); err == nil {
			t.Fatal("expected an error calling concat with no arguments")
		}
	})

	t.Run("non-Array argument is a TypeError", func(t *testing.T) {
		if _, err := builtinConcat([]evaluatedArg{{Value: a}, {Value: nat(1)}}); err == nil {
			t.Fatal("expected an error when an argument is not an Array")
		}
	})
}

func TestBuiltinReverse(t *testing.T) {
	arr := value.NewArray(types.Nat(), []value.Value{nat(1), nat(2), nat(3)})
	got, err := builtinReverse([]evaluatedArg{{Value: arr}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int64{3, 2, 1}
	for i, w := range want {
		if got.Elems[i].Nat.Int64() != w {
			t.Fatalf("got %v, want %v", got.Elems, want)
		}
	}

	t.Run("exactly one argument is required", func(t *testing.T) {
		if _, err := builtinReverse([]evaluatedArg{{Value: arr}, {Value: arr}}); err == nil {
			t.Fatal("expected an error calling reverse with two arguments")
		}
	})

	t.Run("non-Array argument is a TypeError", func(t *testing.T) {
		if _, err := builtinReverse([]evaluatedArg{{Value: nat(1)}}); err == nil {
			t.Fatal("expected an error calling reverse on a non-Array")
		}
	})
}
