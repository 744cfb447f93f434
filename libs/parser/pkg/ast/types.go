// Package ast defines the syntax tree produced by libs/parser: the
// Expr and Stmt node families, and the Program (a Cumin source file:
// a statement sequence followed by a final expression).
//
// Nodes carry no source-position information beyond what the parser
// needs to build a diagnostic suffix at the point of failure (see
// libs/errors); per spec, diagnostics are textual snippets, not
// line/column spans, so nodes stay plain data.
package ast

import (
	"github.com/cympfh/cumin/libs/types"
	"github.com/cympfh/cumin/libs/value"
)

// Program is a parsed Cumin source: declarations followed by a
// result expression. An imported module is parsed as a Program whose
// Final is the ignored literal Nat(0).
type Program struct {
	Statements []Stmt
	Final      Expr
}

// Expr is any node of the expression grammar (spec §4.2).
type Expr interface {
	expr()
}

// Stmt is any node of the statement grammar (spec §4.2).
type Stmt interface {
	stmt()
}

// LiteralExpr wraps a value that needs no environment to evaluate:
// Nat, Int, Float, Bool, String literals, and the None literal.
type LiteralExpr struct {
	Value value.Value
}

func (LiteralExpr) expr() {}

// EnumVariantExpr is an `Ident::Ident` literal; resolving whether the
// enum and variant exist happens at evaluation time.
type EnumVariantExpr struct {
	EnumName    string
	VariantName string
}

func (EnumVariantExpr) expr() {}

// EnvRefExpr is an unresolved `$NAME` / `${NAME}` / `${NAME:-default}`
// reference; resolved against the process environment at evaluation
// time.
type EnvRefExpr struct {
	Name    string
	Default *string
}

func (EnvRefExpr) expr() {}

// VarExpr is a bare identifier; the evaluator resolves it against
// let-bindings and bound parameters only, not functions or built-ins.
type VarExpr struct {
	Name string
}

func (VarExpr) expr() {}

// ArrayExpr is `[ e, ... ]`.
type ArrayExpr struct {
	Elements []Expr
}

func (ArrayExpr) expr() {}

// TupleExpr is `( e1, e2, ... )` with at least two elements.
type TupleExpr struct {
	Elements []Expr
}

func (TupleExpr) expr() {}

// DictField is one field of an anonymous dict literal or a
// fielded-apply's field list; Type is nil when unannotated.
type DictField struct {
	Name  string
	Type  *types.Type
	Value Expr
}

// DictExpr is `{{ name [: T] = e, ... }}`, an anonymous dict.
type DictExpr struct {
	Fields []DictField
}

func (DictExpr) expr() {}

// BlockExpr is `{ stmts... expr }`, a nested program with its own
// scope.
type BlockExpr struct {
	Body *Program
}

func (BlockExpr) expr() {}

// UnaryOp enumerates the prefix operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

// UnaryExpr is `-e` or `not e`.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

func (UnaryExpr) expr() {}

// BinaryOp enumerates the infix operators of the `logic`, `ab`, and
// `term` precedence levels.
type BinaryOp int

const (
	OpEq BinaryOp = iota
	OpLt
	OpAnd
	OpOr
	OpXor
	OpConcat // ++
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow // **
)

// String renders a BinaryOp using its surface-syntax spelling, for
// error messages.
func (op BinaryOp) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpLt:
		return "<"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpXor:
		return "xor"
	case OpConcat:
		return "++"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	default:
		return "?"
	}
}

// BinaryExpr is a single infix application. `!=`, `<=`, and `>=` are
// desugared by the parser into OpEq/OpLt wrapped in UnaryExpr{OpNot},
// and `>` into OpLt with its operands swapped, per spec §4.2, so OpEq
// and OpLt are the only comparison operators this set needs.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (BinaryExpr) expr() {}

// AsExpr is `<factor> as <type>`.
type AsExpr struct {
	Operand Expr
	Target  types.Type
}

func (AsExpr) expr() {}

// Arg is one actual argument of an Apply: Name is "" for a positional
// argument, set for a keyword argument.
type Arg struct {
	Name  string
	Value Expr
}

// ApplyExpr is `X.Y.Z(args)`, desugared by the parser into nested
// single-segment applies: `Apply("X", [Apply("Y", [Apply("Z",
// args)])])`. Path holds the segments in outer-to-inner order; Args
// belong to the innermost segment only (the outer segments always
// receive the inner apply's result as their single argument, which
// the evaluator threads through without a separate AST node).
type ApplyExpr struct {
	Path []string
	Args []Arg
}

func (ApplyExpr) expr() {}

// FieldedApplyExpr is `X.Y.Z{fields}`: like ApplyExpr but the
// innermost segment is a field-list construction rather than a
// positional/keyword call.
type FieldedApplyExpr struct {
	Path   []string
	Fields []DictField
}

func (FieldedApplyExpr) expr() {}

// LetStmt is `let id [: T] = e;`. Type is nil when omitted (defaults
// to Any at evaluation time).
type LetStmt struct {
	Name  string
	Type  *types.Type
	Value Expr
}

func (LetStmt) stmt() {}

// Param is one formal parameter of a function or one field of a
// struct declaration; Default is nil when the parameter/field is
// required.
type Param struct {
	Name    string
	Type    *types.Type
	Default Expr
}

// FnStmt is `fn f(params) = e;` / `let f(params) = e;` (identical
// semantics; the parser accepts either spelling).
type FnStmt struct {
	Name   string
	Params []Param
	Body   Expr
}

func (FnStmt) stmt() {}

// StructStmt is `struct Name { field [: T] [= e], ... }`.
type StructStmt struct {
	Name   string
	Fields []Param
}

func (StructStmt) stmt() {}

// EnumStmt is `enum Name { V, ... }`.
type EnumStmt struct {
	Name     string
	Variants []string
}

func (EnumStmt) stmt() {}

// TypeStmt is `type Name = T1 | T2 | ...;`, a sum-type alias.
type TypeStmt struct {
	Name     string
	Variants []types.Type
}

func (TypeStmt) stmt() {}

// UseStmt is `use "path";`, a module import.
type UseStmt struct {
	Path string
}

func (UseStmt) stmt() {}
