package eval

import (
	"math/big"
	"testing"

	"github.com/cympfh/cumin/libs/types"
	"github.com/cympfh/cumin/libs/value"
)

func TestEnvironment_CloneIsolatesDeclarations(t *testing.T) {
	base := NewEnvironment("")
	base.Vars["x"] = Binding{Type: types.Nat(), Value: value.NewNat(big.NewInt(1))}

	child := base.Clone()
	child.Vars["y"] = Binding{Type: types.Nat(), Value: value.NewNat(big.NewInt(2))}
	delete(child.Vars, "x")

	if _, ok := base.Vars["x"]; !ok {
		t.Fatal("deleting from the clone must not affect the base environment")
	}
	if _, ok := base.Vars["y"]; ok {
		t.Fatal("adding to the clone must not affect the base environment")
	}
}

func TestEnvironment_CloneSharesLoadedModulesAndWarnings(t *testing.T) {
	base := NewEnvironment("")
	child := base.Clone()

	child.LoadedModules["a.cumin"] = true
	if !base.LoadedModules["a.cumin"] {
		t.Fatal("LoadedModules must be shared across Clone(), not copied")
	}

	child.Warn(errTest("boom"))
	if len(*base.Warnings) != 1 {
		t.Fatalf("Warnings must be shared across Clone(), got %d entries on base", len(*base.Warnings))
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
