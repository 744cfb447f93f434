package ast

import (
	"math/big"
	"testing"

	"github.com/cympfh/cumin/libs/types"
	"github.com/cympfh/cumin/libs/value"
)

func TestNodesSatisfyExprAndStmt(t *testing.T) {
	var exprs = []Expr{
		LiteralExpr{Value: value.NewNat(big.NewInt(1))},
		EnumVariantExpr{EnumName: "X", VariantName: "Zoo"},
		EnvRefExpr{Name: "HOME"},
		VarExpr{Name: "x"},
		ArrayExpr{},
		TupleExpr{},
		DictExpr{},
		BlockExpr{Body: &Program{}},
		UnaryExpr{Op: OpNeg, Operand: VarExpr{Name: "x"}},
		BinaryExpr{Op: OpAdd, Left: VarExpr{Name: "x"}, Right: VarExpr{Name: "y"}},
		AsExpr{Operand: VarExpr{Name: "x"}, Target: types.Int()},
		ApplyExpr{Path: []string{"f"}},
		FieldedApplyExpr{Path: []string{"P"}},
	}
	if len(exprs) == 0 {
		t.Fatal("no expr nodes constructed")
	}

	var stmts = []Stmt{
		LetStmt{Name: "x"},
		FnStmt{Name: "f"},
		StructStmt{Name: "P"},
		EnumStmt{Name: "X"},
		TypeStmt{Name: "T"},
		UseStmt{Path: "a.cumin"},
	}
	if len(stmts) == 0 {
		t.Fatal("no stmt nodes constructed")
	}
}

func TestApplyExprDesugaredPathOrder(t *testing.T) {
	// X.Y.Z(args) desugars to nested single-segment applies; the
	// parser is expected to preserve outer-to-inner segment order so
	// the evaluator can apply the last segment first and walk outward.
	a := ApplyExpr{Path: []string{"X", "Y", "Z"}, Args: []Arg{{Value: LiteralExpr{Value: value.NewNat(big.NewInt(1))}}}}
	if len(a.Path) != 3 || a.Path[0] != "X" || a.Path[2] != "Z" {
		t.Fatalf("unexpected path order: %v", a.Path)
	}
}

func TestUnaryAndBinaryOpValues(t *testing.T) {
	if OpNeg == OpNot {
		t.Fatal("OpNeg and OpNot must be distinct")
	}
	ops := map[BinaryOp]bool{
		OpEq: true, OpLt: true, OpAnd: true, OpOr: true, OpXor: true,
		OpConcat: true, OpAdd: true, OpSub: true, OpMul: true, OpDiv: true,
		OpMod: true, OpPow: true,
	}
	if len(ops) != 12 {
		t.Fatalf("expected 12 distinct binary ops, got %d", len(ops))
	}
}
