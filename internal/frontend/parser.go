// parser.go is a hand-written recursive-descent parser over the token stream
// produced by lexer.go. Unlike the teacher's goyacc-generated parser
// (src/frontend/tree.go + parser.y), there is no generated grammar table here:
// every production below is an ordinary Go function, following
// original_source/src/parser.rs's combinator structure but written directly
// against a token slice instead of nom's Span/IResult machinery.
package frontend

import (
	"fmt"
	"strconv"

	"dcc/internal/ast"
)

// parser walks a pre-scanned token stream and builds a Module.
type parser struct {
	items []item
	pos   int
	ctx   []string
}

// Parse lexes and parses a dummyc source string into a located Module.
func Parse(src string) (ast.Module, error) {
	l := newLexer(src, lexGlobal)
	l.run()
	if len(l.items) > 0 && l.items[len(l.items)-1].typ == itemError {
		last := l.items[len(l.items)-1]
		pos := ast.Position{Line: last.line, Col: last.pos}
		return ast.Module{}, newParseErrorAt(pos, nil, "%s", last.val)
	}
	p := &parser{items: l.items}
	return p.parseModule()
}

// TokenStream lexes src and returns its token stream as printable strings, for
// driver-side `-ts` diagnostics (mirrors the teacher's TokenStream).
func TokenStream(src string) ([]string, error) {
	l := newLexer(src, lexGlobal)
	l.run()
	out := make([]string, 0, len(l.items))
	for _, it := range l.items {
		out = append(out, it.String())
		if it.typ == itemError {
			return out, fmt.Errorf("%s", it.val)
		}
	}
	return out, nil
}

// ------------------------
// ----- token access -----
// ------------------------

func (p *parser) cur() item {
	if p.pos < len(p.items) {
		return p.items[p.pos]
	}
	return item{typ: itemEOF}
}

func (p *parser) curPos() ast.Position {
	c := p.cur()
	return ast.Position{Line: c.line, Col: c.pos}
}

func (p *parser) advance() item {
	it := p.cur()
	if p.pos < len(p.items)-1 || p.items[p.pos].typ != itemEOF {
		p.pos++
	}
	return it
}

func (p *parser) atEOF() bool { return p.cur().typ == itemEOF }

func (p *parser) atPunct(s string) bool {
	c := p.cur()
	return c.typ == itemPunct && c.val == s
}

func (p *parser) atKeyword(s string) bool {
	c := p.cur()
	return c.typ == itemKeyword && c.val == s
}

func (p *parser) err(format string, args ...interface{}) error {
	return newParseErrorAt(p.curPos(), p.ctx, format, args...)
}

func (p *parser) expectPunct(s string) error {
	if !p.atPunct(s) {
		return p.err("expected %q, found %q", s, p.cur().val)
	}
	p.advance()
	return nil
}

func (p *parser) expectKeyword(s string) error {
	if !p.atKeyword(s) {
		return p.err("expected keyword %q, found %q", s, p.cur().val)
	}
	p.advance()
	return nil
}

func (p *parser) expectIdent() (string, error) {
	if p.cur().typ != itemIdent {
		return "", p.err("expected identifier, found %q", p.cur().val)
	}
	return p.advance().val, nil
}

// typeName accepts a type-position name: either a user identifier (a struct
// name) or one of the built-in type keywords (i32, u8, void, ...), which the
// lexer classifies as itemKeyword alongside "fn"/"struct"/"return" since
// lang.go's reserved-word table covers both (see lang.go's doc comment).
func (p *parser) typeName() (string, error) {
	c := p.cur()
	if c.typ != itemIdent && c.typ != itemKeyword {
		return "", p.err("expected type name, found %q", c.val)
	}
	return p.advance().val, nil
}

// pushContext records a named grammar context, matching the teacher's context
// stack idiom; the returned func pops it and must be deferred by the caller.
func (p *parser) pushContext(name string) func() {
	p.ctx = append(p.ctx, name)
	return func() { p.ctx = p.ctx[:len(p.ctx)-1] }
}

// -----------------------------
// ----- location combinator -----
// -----------------------------

// located wraps a production: it records the start position, runs fn, then
// records the end position from the last consumed token, per spec.md §4.1's
// "location-aware combinator."
func located[T any](p *parser, fn func() (T, error)) (ast.Located[T], error) {
	start := p.curPos()
	v, err := fn()
	if err != nil {
		return ast.Located[T]{}, err
	}
	var end ast.Position
	if p.pos > 0 {
		last := p.items[p.pos-1]
		end = ast.Position{Line: last.line, Col: last.pos + len(last.val)}
	} else {
		end = start
	}
	return ast.NewLocated(ast.Range{From: start, To: end}, v), nil
}

// ------------------------
// ----- module/toplevel -----
// ------------------------

func (p *parser) parseModule() (ast.Module, error) {
	defer p.pushContext("module")()
	var tops []ast.Located[ast.TopLevel]
	for !p.atEOF() {
		tl, err := located(p, p.parseTopLevel)
		if err != nil {
			return ast.Module{}, err
		}
		tops = append(tops, tl)
	}
	return ast.Module{TopLevels: tops}, nil
}

func (p *parser) parseTopLevel() (ast.TopLevel, error) {
	switch {
	case p.atKeyword("fn"):
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		return ast.FunctionTopLevel{Function: fn}, nil
	case p.atKeyword("struct"):
		td, err := p.parseTypeDef()
		if err != nil {
			return nil, err
		}
		return ast.TypeDefTopLevel{TypeDef: td}, nil
	default:
		return nil, p.err("expected \"fn\" or \"struct\", found %q", p.cur().val)
	}
}

func (p *parser) parseFunction() (ast.Function, error) {
	defer p.pushContext("function")()
	decl, err := located(p, p.parseFunctionDecl)
	if err != nil {
		return ast.Function{}, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return ast.Function{}, err
	}
	return ast.Function{Decl: decl, Body: body}, nil
}

func (p *parser) parseFunctionDecl() (ast.FunctionDecl, error) {
	if err := p.expectKeyword("fn"); err != nil {
		return ast.FunctionDecl{}, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return ast.FunctionDecl{}, err
	}
	var gparams []ast.Located[string]
	if p.atPunct("<") {
		gparams, err = p.parseGenParams()
		if err != nil {
			return ast.FunctionDecl{}, err
		}
	}
	if err := p.expectPunct("("); err != nil {
		return ast.FunctionDecl{}, err
	}
	params, variadic, err := p.parseParams()
	if err != nil {
		return ast.FunctionDecl{}, err
	}
	if err := p.expectPunct(")"); err != nil {
		return ast.FunctionDecl{}, err
	}
	if err := p.expectPunct(":"); err != nil {
		return ast.FunctionDecl{}, err
	}
	retType, err := located(p, p.parseType)
	if err != nil {
		return ast.FunctionDecl{}, err
	}
	return ast.FunctionDecl{
		Name:          name,
		GenericParams: gparams,
		Params:        params,
		Variadic:      variadic,
		ReturnType:    retType,
	}, nil
}

func (p *parser) parseGenParams() ([]ast.Located[string], error) {
	if err := p.expectPunct("<"); err != nil {
		return nil, err
	}
	var out []ast.Located[string]
	for {
		name, err := located(p, p.expectIdent)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
		if p.atPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(">"); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) parseParams() ([]ast.Param, bool, error) {
	var params []ast.Param
	variadic := false
	if p.atPunct(")") {
		return params, variadic, nil
	}
	for {
		if p.atPunct(".") { // "..." lexes as three single-dot punctuation tokens
			if err := p.expectPunct("."); err != nil {
				return nil, false, err
			}
			if err := p.expectPunct("."); err != nil {
				return nil, false, err
			}
			if err := p.expectPunct("."); err != nil {
				return nil, false, err
			}
			variadic = true
		} else {
			name, err := p.expectIdent()
			if err != nil {
				return nil, false, err
			}
			if err := p.expectPunct(":"); err != nil {
				return nil, false, err
			}
			ty, err := located(p, p.parseType)
			if err != nil {
				return nil, false, err
			}
			params = append(params, ast.Param{Name: name, Type: ty})
		}
		if p.atPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return params, variadic, nil
}

func (p *parser) parseTypeDef() (ast.TypeDef, error) {
	defer p.pushContext("typedef")()
	if err := p.expectKeyword("struct"); err != nil {
		return ast.TypeDef{}, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return ast.TypeDef{}, err
	}
	var gparams []ast.Located[string]
	if p.atPunct("<") {
		gparams, err = p.parseGenParams()
		if err != nil {
			return ast.TypeDef{}, err
		}
	}
	if err := p.expectPunct("{"); err != nil {
		return ast.TypeDef{}, err
	}
	var fields []ast.Field
	for !p.atPunct("}") {
		fname, err := p.expectIdent()
		if err != nil {
			return ast.TypeDef{}, err
		}
		if err := p.expectPunct(":"); err != nil {
			return ast.TypeDef{}, err
		}
		fty, err := p.parseType()
		if err != nil {
			return ast.TypeDef{}, err
		}
		fields = append(fields, ast.Field{Name: fname, Type: fty})
		if p.atPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct("}"); err != nil {
		return ast.TypeDef{}, err
	}
	return ast.TypeDef{Name: name, Kind: ast.StructTypeDef{GenericParams: gparams, Fields: fields}}, nil
}

// ------------------
// ----- types -------
// ------------------

func (p *parser) parseType() (ast.UnresolvedType, error) {
	defer p.pushContext("type")()
	if p.atPunct("[") {
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}
		return ast.PointerType{Elem: elem}, nil
	}
	name, err := p.typeName()
	if err != nil {
		return nil, err
	}
	var args []ast.UnresolvedType
	if p.atPunct("<") {
		p.advance()
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.atPunct(",") {
				p.advance()
				continue
			}
			break
		}
		if err := p.expectPunct(">"); err != nil {
			return nil, err
		}
	}
	return ast.TypeRef{Name: name, Args: args}, nil
}

// ------------------------
// ----- block/statement -----
// ------------------------

func (p *parser) parseBlock() ([]ast.Located[ast.Statement], error) {
	defer p.pushContext("block")()
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var stmts []ast.Located[ast.Statement]
	for !p.atPunct("}") {
		st, err := located(p, p.parseStatement)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) parseStatement() (ast.Statement, error) {
	defer p.pushContext("statement")()
	st, err := p.parseStatementInner()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return st, nil
}

func (p *parser) parseStatementInner() (ast.Statement, error) {
	if p.atKeyword("return") {
		return p.parseReturn()
	}

	save := p.pos
	if st, err := p.tryVarDecl(); err == nil {
		return st, nil
	}
	p.pos = save

	if st, err := p.tryAssign(); err == nil {
		return st, nil
	}
	p.pos = save

	return p.parseEffect()
}

func (p *parser) parseReturn() (ast.Statement, error) {
	defer p.pushContext("return")()
	if err := p.expectKeyword("return"); err != nil {
		return nil, err
	}
	if p.atPunct(";") {
		return ast.ReturnStatement{}, nil
	}
	expr, err := located(p, p.parseExpression)
	if err != nil {
		return nil, err
	}
	return ast.ReturnStatement{Expression: &expr}, nil
}

func (p *parser) tryVarDecl() (ast.Statement, error) {
	defer p.pushContext("vardecl")()
	ty, err := located(p, p.parseType)
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	expr, err := located(p, p.parseExpression)
	if err != nil {
		return nil, err
	}
	return ast.VariableDeclStatement{Type: ty, Name: name, Expression: expr}, nil
}

func (p *parser) tryAssign() (ast.Statement, error) {
	defer p.pushContext("assign")()
	derefCount := 0
	for p.atPunct("*") {
		p.advance()
		derefCount++
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	var idx *ast.Located[ast.Expression]
	if p.atPunct("[") {
		p.advance()
		e, err := located(p, p.parseExpression)
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}
		idx = &e
	}
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	expr, err := located(p, p.parseExpression)
	if err != nil {
		return nil, err
	}
	return ast.AssignmentStatement{DerefCount: derefCount, IndexAccess: idx, Name: name, Expression: expr}, nil
}

func (p *parser) parseEffect() (ast.Statement, error) {
	defer p.pushContext("effect")()
	expr, err := located(p, p.parseExpression)
	if err != nil {
		return nil, err
	}
	return ast.EffectStatement{Expression: expr}, nil
}

// ------------------------
// ----- expressions -------
// ------------------------

func (p *parser) parseExpression() (ast.Expression, error) {
	return p.parseAdditive()
}

func (p *parser) parseAdditive() (ast.Expression, error) {
	defer p.pushContext("expression")()
	lhs, err := located(p, p.parseMultiplicative)
	if err != nil {
		return nil, err
	}
	for p.atPunct("+") || p.atPunct("-") {
		op := ast.Add
		if p.cur().val == "-" {
			op = ast.Sub
		}
		p.advance()
		rhs, err := located(p, p.parseMultiplicative)
		if err != nil {
			return nil, err
		}
		folded := ast.BinaryExpr{Op: op, LHS: lhs, RHS: rhs}
		lhs = ast.Located[ast.Expression]{
			Range: ast.Range{From: lhs.Range.From, To: rhs.Range.To},
			Value: folded,
		}
	}
	return lhs.Value, nil
}

func (p *parser) parseMultiplicative() (ast.Expression, error) {
	lhs, err := located(p, p.parsePostfix)
	if err != nil {
		return nil, err
	}
	for p.atPunct("*") || p.atPunct("/") {
		op := ast.Mul
		if p.cur().val == "/" {
			op = ast.Div
		}
		p.advance()
		rhs, err := located(p, p.parsePostfix)
		if err != nil {
			return nil, err
		}
		folded := ast.BinaryExpr{Op: op, LHS: lhs, RHS: rhs}
		lhs = ast.Located[ast.Expression]{
			Range: ast.Range{From: lhs.Range.From, To: rhs.Range.To},
			Value: folded,
		}
	}
	return lhs.Value, nil
}

func (p *parser) parsePostfix() (ast.Expression, error) {
	base, err := located(p, p.parsePrimaryOrCall)
	if err != nil {
		return nil, err
	}
	if p.atPunct("[") {
		p.advance()
		idx, err := located(p, p.parseExpression)
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}
		return ast.IndexAccessExpr{Target: base, Index: idx}, nil
	}
	return base.Value, nil
}

func (p *parser) parsePrimaryOrCall() (ast.Expression, error) {
	if p.cur().typ == itemIdent {
		save := p.pos
		if call, err := p.tryCall(); err == nil {
			return call, nil
		}
		p.pos = save
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (ast.Expression, error) {
	defer p.pushContext("primary")()
	switch {
	case p.cur().typ == itemNumber:
		return ast.NumberLiteralExpr{Lexeme: p.advance().val}, nil
	case p.cur().typ == itemString:
		return ast.StringLiteralExpr{Value: decodeString(p.advance().val)}, nil
	case p.cur().typ == itemIdent:
		return ast.VariableRefExpr{Name: p.advance().val}, nil
	case p.atPunct("("):
		p.advance()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return e, nil
	case p.atPunct("*"):
		p.advance()
		target, err := located(p, p.parsePostfix)
		if err != nil {
			return nil, err
		}
		return ast.DerefExpr{Target: target}, nil
	default:
		return nil, p.err("expected expression, found %q", p.cur().val)
	}
}

func (p *parser) tryCall() (ast.Expression, error) {
	defer p.pushContext("call")()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	var gargs []ast.UnresolvedType
	if p.atPunct("<") {
		p.advance()
		for {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			gargs = append(gargs, t)
			if p.atPunct(",") {
				p.advance()
				continue
			}
			break
		}
		if err := p.expectPunct(">"); err != nil {
			return nil, err
		}
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var args []ast.Located[ast.Expression]
	if !p.atPunct(")") {
		for {
			e, err := located(p, p.parseExpression)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
			if p.atPunct(",") {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return ast.CallExpr{Name: name, GenericArgs: gargs, Args: args}, nil
}

// decodeString un-escapes the backslash escapes lexString left raw.
func decodeString(lit string) string {
	unq, err := strconv.Unquote(lit)
	if err != nil {
		return lit[1 : len(lit)-1]
	}
	return unq
}
