// Package parser implements Cumin's recursive-descent parser: the
// type grammar, the value (literal) grammar, the precedence-ordered
// expression grammar, and the statement/program grammar of spec §4.2.
//
// The parser accepts input via ParseFile (for filesystem paths) or
// Parse (for an io.Reader). Errors carry the unparsed source suffix
// rather than a line/column span, per spec §7/§9.
package parser

import (
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"

	cerrors "github.com/cympfh/cumin/libs/errors"
	"github.com/cympfh/cumin/libs/parser/internal/scanner"
	"github.com/cympfh/cumin/libs/parser/pkg/ast"
	"github.com/cympfh/cumin/libs/types"
	"github.com/cympfh/cumin/libs/value"
)

// Parser holds per-invocation state. Instances are not safe for
// concurrent use on the same Parse/ParseFile call but may be reused
// sequentially.
type Parser struct {
	sc *scanner.Scanner
}

// Option configures a Parser. No options are defined yet; the type
// exists as a forward-compatible extension point in the usual
// functional-options shape.
type Option func(*Parser)

// NewParser creates a Parser with the given options applied.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile parses a Cumin source file from the filesystem.
func ParseFile(path string) (*ast.Program, error) {
	return NewParser().ParseFile(path)
}

// ParseFile parses a file using this parser instance.
func (p *Parser) ParseFile(path string) (*ast.Program, error) {
	//nolint:gosec // G304: path is caller-controlled, the legitimate API surface for file parsing
	f, err := os.Open(path)
	if err != nil {
		return nil, cerrors.ModuleErrorf("cannot open %q: %v", path, err)
	}
	defer f.Close()
	return p.Parse(f, path)
}

// Parse parses Cumin source from r. filename is used only in error
// messages.
func Parse(r io.Reader, filename string) (*ast.Program, error) {
	return NewParser().Parse(r, filename)
}

// Parse parses Cumin source from r using this parser instance.
func (p *Parser) Parse(r io.Reader, filename string) (*ast.Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, cerrors.ModuleErrorf("cannot read %q: %v", filename, err)
	}
	return p.ParseString(string(data), filename)
}

// ParseString parses src, the full text of a Cumin source, into a
// Program.
func (p *Parser) ParseString(src, filename string) (*ast.Program, error) {
	p.sc = scanner.New(src, filename)
	prog, err := p.parseProgram(false)
	if err != nil {
		return nil, err
	}
	p.sc.SkipWhitespaceAndComments()
	if !p.sc.IsEOF() {
		return nil, p.errf("unexpected trailing input")
	}
	return prog, nil
}

// ParseString parses src using a fresh Parser.
func ParseString(src, filename string) (*ast.Program, error) {
	return NewParser().ParseString(src, filename)
}

func (p *Parser) errf(format string, args ...any) error {
	return cerrors.ParseErrorf(format, args...).WithSuffix(p.sc.Rest())
}

var stmtKeywords = map[string]bool{
	"let": true, "fn": true, "struct": true, "enum": true, "type": true, "use": true,
}

var reservedWords = map[string]bool{
	"let": true, "fn": true, "use": true, "struct": true, "enum": true, "type": true,
	"as": true, "true": true, "false": true, "None": true, "Some": true,
	"not": true, "and": true, "or": true, "xor": true,
}

// parseProgram parses a statement sequence followed by a final
// expression. block is true when parsing a `{ ... }` block body,
// which terminates on `}` instead of EOF. In either case a missing
// final expression defaults to the literal Nat(0), matching how an
// imported module's trailing expression is ignored (spec §4.3).
func (p *Parser) parseProgram(block bool) (*ast.Program, error) {
	var stmts []ast.Stmt
	for {
		p.sc.SkipWhitespaceAndComments()
		kw := p.sc.PeekIdentifier()
		if !stmtKeywords[kw] {
			break
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	p.sc.SkipWhitespaceAndComments()
	atEnd := block && p.sc.PeekChar() == '}'
	if !block {
		save := p.sc.Save()
		atEnd = p.sc.IsEOF()
		p.sc.Restore(save)
	}

	var final ast.Expr
	if atEnd {
		final = ast.LiteralExpr{Value: value.NewNat(big.NewInt(0))}
	} else {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		final = e
	}
	return &ast.Program{Statements: stmts, Final: final}, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	kw := p.sc.ReadIdentifier()
	switch kw {
	case "let":
		return p.parseLet()
	case "fn":
		return p.parseFn()
	case "struct":
		return p.parseStruct()
	case "enum":
		return p.parseEnum()
	case "type":
		return p.parseTypeStmt()
	case "use":
		return p.parseUse()
	default:
		return nil, p.errf("unknown statement keyword %q", kw)
	}
}

func (p *Parser) expectName() (string, error) {
	p.sc.SkipWhitespaceAndComments()
	name := p.sc.ReadIdentifier()
	if name == "" {
		return "", p.errf("expected identifier")
	}
	if reservedWords[name] {
		return "", p.errf("%q is a reserved word and cannot be used as a name", name)
	}
	return name, nil
}

func (p *Parser) expectChar(ch rune) error {
	p.sc.SkipWhitespaceAndComments()
	if !p.sc.Expect(ch) {
		return p.errf("expected %q", string(ch))
	}
	return nil
}

func (p *Parser) peekWord(word string) bool {
	p.sc.SkipWhitespaceAndComments()
	return p.sc.PeekIdentifier() == word
}

func (p *Parser) parseLet() (ast.Stmt, error) {
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	p.sc.SkipWhitespaceAndComments()
	if p.sc.PeekChar() == '(' {
		return p.parseFnBody(name)
	}

	var t *types.Type
	p.sc.SkipWhitespaceAndComments()
	if p.sc.Expect(':') {
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		t = &ty
	}
	if err := p.expectChar('='); err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar(';'); err != nil {
		return nil, err
	}
	return ast.LetStmt{Name: name, Type: t, Value: val}, nil
}

func (p *Parser) parseFn() (ast.Stmt, error) {
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	return p.parseFnBody(name)
}

func (p *Parser) parseFnBody(name string) (ast.Stmt, error) {
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar('='); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar(';'); err != nil {
		return nil, err
	}
	return ast.FnStmt{Name: name, Params: params, Body: body}, nil
}

// parseParamList parses `(name [: T] [= default], ...)`, accepting a
// trailing comma.
func (p *Parser) parseParamList() ([]ast.Param, error) {
	if err := p.expectChar('('); err != nil {
		return nil, err
	}
	var params []ast.Param
	for {
		p.sc.SkipWhitespaceAndComments()
		if p.sc.PeekChar() == ')' {
			p.sc.Advance()
			return params, nil
		}
		name, err := p.expectName()
		if err != nil {
			return nil, err
		}
		var t *types.Type
		p.sc.SkipWhitespaceAndComments()
		if p.sc.Expect(':') {
			ty, err := p.parseType()
			if err != nil {
				return nil, err
			}
			t = &ty
		}
		var def ast.Expr
		p.sc.SkipWhitespaceAndComments()
		if p.sc.Expect('=') {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			def = e
		}
		params = append(params, ast.Param{Name: name, Type: t, Default: def})

		p.sc.SkipWhitespaceAndComments()
		if p.sc.Expect(',') {
			continue
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
		return params, nil
	}
}

func (p *Parser) parseStruct() (ast.Stmt, error) {
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar('{'); err != nil {
		return nil, err
	}
	var fields []ast.Param
	for {
		p.sc.SkipWhitespaceAndComments()
		if p.sc.PeekChar() == '}' {
			p.sc.Advance()
			break
		}
		fname, err := p.expectName()
		if err != nil {
			return nil, err
		}
		var t *types.Type
		p.sc.SkipWhitespaceAndComments()
		if p.sc.Expect(':') {
			ty, err := p.parseType()
			if err != nil {
				return nil, err
			}
			t = &ty
		}
		var def ast.Expr
		p.sc.SkipWhitespaceAndComments()
		if p.sc.Expect('=') {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			def = e
		}
		fields = append(fields, ast.Param{Name: fname, Type: t, Default: def})
		p.sc.SkipWhitespaceAndComments()
		if p.sc.Expect(',') {
			continue
		}
		if err := p.expectChar('}'); err != nil {
			return nil, err
		}
		break
	}
	return ast.StructStmt{Name: name, Fields: fields}, nil
}

func (p *Parser) parseEnum() (ast.Stmt, error) {
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar('{'); err != nil {
		return nil, err
	}
	var variants []string
	for {
		p.sc.SkipWhitespaceAndComments()
		if p.sc.PeekChar() == '}' {
			p.sc.Advance()
			break
		}
		v, err := p.expectName()
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
		p.sc.SkipWhitespaceAndComments()
		if p.sc.Expect(',') {
			continue
		}
		if err := p.expectChar('}'); err != nil {
			return nil, err
		}
		break
	}
	return ast.EnumStmt{Name: name, Variants: variants}, nil
}

func (p *Parser) parseTypeStmt() (ast.Stmt, error) {
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar('='); err != nil {
		return nil, err
	}
	var variants []types.Type
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		variants = append(variants, t)
		p.sc.SkipWhitespaceAndComments()
		if p.sc.Expect('|') {
			continue
		}
		break
	}
	if err := p.expectChar(';'); err != nil {
		return nil, err
	}
	return ast.TypeStmt{Name: name, Variants: variants}, nil
}

func (p *Parser) parseUse() (ast.Stmt, error) {
	p.sc.SkipWhitespaceAndComments()
	path, ok := p.sc.ReadString()
	if !ok {
		return nil, p.errf("expected string literal path after 'use'")
	}
	if err := p.expectChar(';'); err != nil {
		return nil, err
	}
	return ast.UseStmt{Path: path}, nil
}

// parseType parses a single type expression (spec §3).
func (p *Parser) parseType() (types.Type, error) {
	p.sc.SkipWhitespaceAndComments()
	if p.sc.PeekChar() == '(' {
		p.sc.Advance()
		var elems []types.Type
		for {
			t, err := p.parseType()
			if err != nil {
				return types.Type{}, err
			}
			elems = append(elems, t)
			p.sc.SkipWhitespaceAndComments()
			if p.sc.Expect(',') {
				continue
			}
			break
		}
		if err := p.expectChar(')'); err != nil {
			return types.Type{}, err
		}
		return types.Tuple(elems), nil
	}

	name := p.sc.ReadIdentifier()
	if name == "" {
		return types.Type{}, p.errf("expected a type")
	}
	switch name {
	case "Any":
		return types.Any(), nil
	case "Nat":
		return types.Nat(), nil
	case "Int":
		return types.Int(), nil
	case "Float":
		return types.Float(), nil
	case "Bool":
		return types.Bool(), nil
	case "String":
		return types.String(), nil
	case "Array":
		elem, err := p.parseTypeArg()
		if err != nil {
			return types.Type{}, err
		}
		return types.Array(elem), nil
	case "Option":
		elem, err := p.parseTypeArg()
		if err != nil {
			return types.Type{}, err
		}
		return types.Option(elem), nil
	default:
		return types.User(name), nil
	}
}

// parseTypeArg parses `(T)`, the single-argument form used by
// `Array(T)` and `Option(T)`.
func (p *Parser) parseTypeArg() (types.Type, error) {
	if err := p.expectChar('('); err != nil {
		return types.Type{}, err
	}
	t, err := p.parseType()
	if err != nil {
		return types.Type{}, err
	}
	if err := p.expectChar(')'); err != nil {
		return types.Type{}, err
	}
	return t, nil
}

// parseExpr parses a full expression starting at the `logic` level.
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseLogic()
}

func (p *Parser) parseLogic() (ast.Expr, error) {
	left, err := p.parseAB()
	if err != nil {
		return nil, err
	}
	p.sc.SkipWhitespaceAndComments()
	switch {
	case p.sc.HasPrefix("=="):
		p.sc.Consume("==")
		right, err := p.parseAB()
		if err != nil {
			return nil, err
		}
		return ast.BinaryExpr{Op: ast.OpEq, Left: left, Right: right}, nil
	case p.sc.HasPrefix("!="):
		p.sc.Consume("!=")
		right, err := p.parseAB()
		if err != nil {
			return nil, err
		}
		return ast.UnaryExpr{Op: ast.OpNot, Operand: ast.BinaryExpr{Op: ast.OpEq, Left: left, Right: right}}, nil
	case p.sc.HasPrefix("<="):
		p.sc.Consume("<=")
		right, err := p.parseAB()
		if err != nil {
			return nil, err
		}
		return ast.UnaryExpr{Op: ast.OpNot, Operand: ast.BinaryExpr{Op: ast.OpLt, Left: right, Right: left}}, nil
	case p.sc.HasPrefix(">="):
		p.sc.Consume(">=")
		right, err := p.parseAB()
		if err != nil {
			return nil, err
		}
		return ast.UnaryExpr{Op: ast.OpNot, Operand: ast.BinaryExpr{Op: ast.OpLt, Left: left, Right: right}}, nil
	case p.sc.PeekChar() == '>':
		p.sc.Advance()
		right, err := p.parseAB()
		if err != nil {
			return nil, err
		}
		return ast.BinaryExpr{Op: ast.OpLt, Left: right, Right: left}, nil
	case p.sc.PeekChar() == '<':
		p.sc.Advance()
		right, err := p.parseAB()
		if err != nil {
			return nil, err
		}
		return ast.BinaryExpr{Op: ast.OpLt, Left: left, Right: right}, nil
	default:
		return left, nil
	}
}

var abWordOps = map[string]ast.BinaryOp{"and": ast.OpAnd, "or": ast.OpOr, "xor": ast.OpXor}

func (p *Parser) parseAB() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		p.sc.SkipWhitespaceAndComments()
		if word := p.sc.PeekIdentifier(); word != "" {
			if op, ok := abWordOps[word]; ok {
				p.sc.ReadIdentifier()
				right, err := p.parseTerm()
				if err != nil {
					return nil, err
				}
				left = ast.BinaryExpr{Op: op, Left: left, Right: right}
				continue
			}
		}
		switch {
		case p.sc.HasPrefix("++"):
			p.sc.Consume("++")
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = ast.BinaryExpr{Op: ast.OpConcat, Left: left, Right: right}
		case p.sc.PeekChar() == '+':
			p.sc.Advance()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = ast.BinaryExpr{Op: ast.OpAdd, Left: left, Right: right}
		case p.sc.PeekChar() == '-':
			p.sc.Advance()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = ast.BinaryExpr{Op: ast.OpSub, Left: left, Right: right}
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	left, err := p.parseAs()
	if err != nil {
		return nil, err
	}
	for {
		p.sc.SkipWhitespaceAndComments()
		switch {
		case p.sc.HasPrefix("**"):
			p.sc.Consume("**")
			right, err := p.parseAs()
			if err != nil {
				return nil, err
			}
			left = ast.BinaryExpr{Op: ast.OpPow, Left: left, Right: right}
		case p.sc.PeekChar() == '*':
			p.sc.Advance()
			right, err := p.parseAs()
			if err != nil {
				return nil, err
			}
			left = ast.BinaryExpr{Op: ast.OpMul, Left: left, Right: right}
		case p.sc.PeekChar() == '/':
			p.sc.Advance()
			right, err := p.parseAs()
			if err != nil {
				return nil, err
			}
			left = ast.BinaryExpr{Op: ast.OpDiv, Left: left, Right: right}
		case p.sc.PeekChar() == '%':
			p.sc.Advance()
			right, err := p.parseAs()
			if err != nil {
				return nil, err
			}
			left = ast.BinaryExpr{Op: ast.OpMod, Left: left, Right: right}
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseAs() (ast.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.peekWord("as") {
		p.sc.ReadIdentifier()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		left = ast.AsExpr{Operand: left, Target: t}
	}
	return left, nil
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	p.sc.SkipWhitespaceAndComments()

	if p.isNotKeyword() {
		p.sc.ReadIdentifier()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return ast.UnaryExpr{Op: ast.OpNot, Operand: operand}, nil
	}

	switch ch := p.sc.PeekChar(); {
	case ch == '(':
		return p.parseParenOrTuple()
	case ch == '[':
		return p.parseArray()
	case ch == '{':
		return p.parseDictOrBlock()
	case ch == '"':
		s, ok := p.sc.ReadString()
		if !ok {
			return nil, p.errf("unterminated string literal")
		}
		return ast.LiteralExpr{Value: value.NewString(s)}, nil
	case ch == '$':
		return p.parseEnvRef()
	case p.sc.PeekNumberStart():
		return p.parseNumber()
	case ch == '-':
		p.sc.Advance()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return ast.UnaryExpr{Op: ast.OpNeg, Operand: operand}, nil
	default:
		return p.parseIdentifierLed()
	}
}

// isNotKeyword reports whether the cursor is at the keyword `not`
// (not merely an identifier beginning with those letters): it must
// be followed by whitespace or `(`, per spec §4.2.
func (p *Parser) isNotKeyword() bool {
	if p.sc.PeekIdentifier() != "not" {
		return false
	}
	following := p.sc.PeekAt(3)
	return following == ' ' || following == '\t' || following == '\n' || following == '\r' || following == '(' || following == 0
}

func (p *Parser) parseParenOrTuple() (ast.Expr, error) {
	p.sc.Advance() // '('
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.sc.SkipWhitespaceAndComments()
	if !p.sc.Expect(',') {
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
		return first, nil
	}
	elems := []ast.Expr{first}
	for {
		p.sc.SkipWhitespaceAndComments()
		if len(elems) == 1 && p.sc.PeekChar() == ')' {
			// `(e,)` is a parenthesized expression with a trailing comma.
			p.sc.Advance()
			return first, nil
		}
		p.sc.SkipWhitespaceAndComments()
		if p.sc.PeekChar() == ')' {
			p.sc.Advance()
			break
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		p.sc.SkipWhitespaceAndComments()
		if p.sc.Expect(',') {
			continue
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
		break
	}
	return ast.TupleExpr{Elements: elems}, nil
}

func (p *Parser) parseArray() (ast.Expr, error) {
	p.sc.Advance() // '['
	var elems []ast.Expr
	for {
		p.sc.SkipWhitespaceAndComments()
		if p.sc.PeekChar() == ']' {
			p.sc.Advance()
			break
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		p.sc.SkipWhitespaceAndComments()
		if p.sc.Expect(',') {
			continue
		}
		if err := p.expectChar(']'); err != nil {
			return nil, err
		}
		break
	}
	return ast.ArrayExpr{Elements: elems}, nil
}

func (p *Parser) parseDictOrBlock() (ast.Expr, error) {
	if p.sc.HasPrefix("{{") {
		p.sc.Consume("{{")
		fields, err := p.parseFieldList("}}")
		if err != nil {
			return nil, err
		}
		return ast.DictExpr{Fields: fields}, nil
	}
	p.sc.Advance() // '{'
	body, err := p.parseProgram(true)
	if err != nil {
		return nil, err
	}
	if err := p.expectChar('}'); err != nil {
		return nil, err
	}
	return ast.BlockExpr{Body: body}, nil
}

// parseFieldList parses `name [: T] = e, ...` up to closing, which is
// either `}}` (anonymous dict) or `}` (fielded apply).
func (p *Parser) parseFieldList(closing string) ([]ast.DictField, error) {
	var fields []ast.DictField
	for {
		p.sc.SkipWhitespaceAndComments()
		if p.sc.HasPrefix(closing) {
			p.sc.Consume(closing)
			break
		}
		name, err := p.expectName()
		if err != nil {
			return nil, err
		}
		var t *types.Type
		p.sc.SkipWhitespaceAndComments()
		if p.sc.Expect(':') {
			ty, err := p.parseType()
			if err != nil {
				return nil, err
			}
			t = &ty
		}
		if err := p.expectChar('='); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.DictField{Name: name, Type: t, Value: val})
		p.sc.SkipWhitespaceAndComments()
		if p.sc.Expect(',') {
			continue
		}
		p.sc.SkipWhitespaceAndComments()
		if !p.sc.HasPrefix(closing) {
			return nil, p.errf("expected %q", closing)
		}
		p.sc.Consume(closing)
		break
	}
	return fields, nil
}

func (p *Parser) parseEnvRef() (ast.Expr, error) {
	p.sc.Advance() // '$'
	if p.sc.PeekChar() == '{' {
		p.sc.Advance()
		name := p.sc.ReadIdentifier()
		if name == "" {
			return nil, p.errf("expected environment variable name")
		}
		var def *string
		if p.sc.HasPrefix(":-") {
			p.sc.Consume(":-")
			start := p.sc.Pos()
			for !p.sc.IsEOF() && p.sc.PeekChar() != '}' {
				p.sc.Advance()
			}
			defaultText := p.sc.SliceBytes(start, p.sc.Pos())
			def = &defaultText
		}
		if !p.sc.Expect('}') {
			return nil, p.errf("expected '}' closing environment reference")
		}
		return ast.EnvRefExpr{Name: name, Default: def}, nil
	}
	name := p.sc.ReadIdentifier()
	if name == "" {
		return nil, p.errf("expected environment variable name")
	}
	return ast.EnvRefExpr{Name: name}, nil
}

func (p *Parser) parseNumber() (ast.Expr, error) {
	text, isFloat := p.sc.ReadNumber()
	clean := strings.ReplaceAll(text, "_", "")
	if isFloat {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return nil, p.errf("invalid float literal %q", text)
		}
		return ast.LiteralExpr{Value: value.NewFloat(f)}, nil
	}
	n, ok := new(big.Int).SetString(clean, 10)
	if !ok {
		return nil, p.errf("invalid numeric literal %q", text)
	}
	if strings.HasPrefix(clean, "-") {
		return ast.LiteralExpr{Value: value.NewInt(n)}, nil
	}
	return ast.LiteralExpr{Value: value.NewNat(n)}, nil
}

func (p *Parser) parseIdentifierLed() (ast.Expr, error) {
	ident := p.sc.ReadIdentifier()
	if ident == "" {
		return nil, p.errf("unexpected character %q", string(p.sc.PeekChar()))
	}
	switch ident {
	case "true":
		return ast.LiteralExpr{Value: value.NewBool(true)}, nil
	case "false":
		return ast.LiteralExpr{Value: value.NewBool(false)}, nil
	case "None":
		return ast.LiteralExpr{Value: value.NewOptional(types.Any(), nil)}, nil
	}

	if p.sc.HasPrefix("::") {
		p.sc.Consume("::")
		variant, err := p.expectName()
		if err != nil {
			return nil, err
		}
		return ast.EnumVariantExpr{EnumName: ident, VariantName: variant}, nil
	}

	path := []string{ident}
	for {
		save := p.sc.Save()
		p.sc.SkipWhitespaceAndComments()
		if p.sc.PeekChar() != '.' {
			p.sc.Restore(save)
			break
		}
		if !isIdentStartAt(p.sc, 1) {
			p.sc.Restore(save)
			break
		}
		p.sc.Advance() // '.'
		seg := p.sc.ReadIdentifier()
		path = append(path, seg)
	}

	p.sc.SkipWhitespaceAndComments()
	switch {
	case p.sc.PeekChar() == '(':
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return ast.ApplyExpr{Path: path, Args: args}, nil
	case p.sc.PeekChar() == '{' && !p.sc.HasPrefix("{{"):
		p.sc.Advance()
		fields, err := p.parseFieldList("}")
		if err != nil {
			return nil, err
		}
		return ast.FieldedApplyExpr{Path: path, Fields: fields}, nil
	default:
		if len(path) == 1 {
			return ast.VarExpr{Name: path[0]}, nil
		}
		return nil, p.errf("dotted path %q must be followed by '(' or '{'", strings.Join(path, "."))
	}
}

// isIdentStartAt reports whether the rune `offset` positions ahead of
// the scanner's cursor could begin an identifier.
func isIdentStartAt(sc *scanner.Scanner, offset int) bool {
	r := sc.PeekAt(offset)
	return r != 0 && scanner.IsIdentStart(r)
}

// parseArgList parses `(args)`: each arg is either `name = expr`
// (keyword) or a bare `expr` (positional).
func (p *Parser) parseArgList() ([]ast.Arg, error) {
	p.sc.Advance() // '('
	var args []ast.Arg
	for {
		p.sc.SkipWhitespaceAndComments()
		if p.sc.PeekChar() == ')' {
			p.sc.Advance()
			return args, nil
		}
		save := p.sc.Save()
		name := p.sc.ReadIdentifier()
		isKeyword := false
		if name != "" && !reservedWords[name] {
			p.sc.SkipWhitespaceAndComments()
			if p.sc.PeekChar() == '=' && p.sc.PeekAt(1) != '=' {
				p.sc.Advance()
				isKeyword = true
			}
		}
		if !isKeyword {
			p.sc.Restore(save)
			name = ""
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, ast.Arg{Name: name, Value: val})
		p.sc.SkipWhitespaceAndComments()
		if p.sc.Expect(',') {
			continue
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
		return args, nil
	}
}
