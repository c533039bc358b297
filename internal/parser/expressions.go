package parser

import (
	"strconv"

	"github.com/quill-lang/quillc/internal/ast"
	"github.com/quill-lang/quillc/internal/token"
)

// parseExpression is the precedence-climbing core: it applies the
// prefix handler for the current token, then repeatedly applies infix
// handlers while the upcoming operator binds tighter than precedence.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.curTok.Kind]
	if !ok {
		p.noPrefixParseFnError(p.curTok.Kind)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.SEMI) && precedence < p.peekPrecedence() {
		if p.peekTokenIs(token.DOT) && p.peek(1).Kind == token.DOT {
			return left // ".." ends an array range's lower bound
		}
		infix, ok := p.infixParseFns[p.peekTok.Kind]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseVariableAccess() ast.Expression {
	tok := p.curTok
	return &ast.VariableAccess{Token: tok, Name: tok.Literal}
}

func (p *Parser) parseIntLiteral() ast.Expression {
	tok := p.curTok
	n, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.addError(tok.Pos, "invalid integer literal %q", tok.Literal)
	}
	return &ast.Constant{Token: tok, Kind: ast.ConstInt, Int: n}
}

func (p *Parser) parseCharLiteral() ast.Expression {
	tok := p.curTok
	r := []rune(tok.Literal)
	var n int64
	if len(r) > 0 {
		n = int64(r[0])
	}
	return &ast.Constant{Token: tok, Kind: ast.ConstChar, Int: n}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curTok
	return &ast.Constant{Token: tok, Kind: ast.ConstString, Str: tok.Literal}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	tok := p.curTok
	return &ast.Constant{Token: tok, Kind: ast.ConstBool, Bool: tok.Kind == token.TRUE}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.Constant{Token: p.curTok, Kind: ast.ConstNull}
}

func (p *Parser) parseLogicalNot() ast.Expression {
	tok := p.curTok
	p.nextToken()
	return &ast.LogicalNot{Token: tok, Value: p.parseExpression(PREFIX)}
}

func (p *Parser) parseUnaryMinus() ast.Expression {
	tok := p.curTok
	p.nextToken()
	return &ast.Unary{Token: tok, Op: ast.ArithNeg, Value: p.parseExpression(PREFIX)}
}

func (p *Parser) parseBitwiseNot() ast.Expression {
	tok := p.curTok
	p.nextToken()
	return &ast.BitwiseNot{Token: tok, Value: p.parseExpression(PREFIX)}
}

// parseGroupedOrCast handles "(" — either a parenthesized expression
// or, when the parenthesized content is itself a type expression
// immediately followed by another prefix expression, a cast "(Type) e".
func (p *Parser) parseGroupedOrCast() ast.Expression {
	tok := p.curTok
	if p.peekTokenIsTypeStart() {
		save := p.snapshot()
		p.nextToken()
		te := p.parseTypeExpr()
		if te != nil && p.peekTokenIs(token.RPAREN) {
			p.nextToken()
			if p.castFollowsHere() {
				p.nextToken()
				value := p.parseExpression(PREFIX)
				return &ast.Cast{Token: tok, Type: te, Value: value}
			}
		}
		p.restore(save)
	}
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return expr
	}
	return expr
}

// castFollowsHere reports whether, immediately after a "(Type)" we
// just spent speculatively parsing, the next token can start an
// expression — distinguishing a cast from a plain parenthesized type
// reference, which never occurs as a standalone expression so any
// follow-on prefix token settles it in favor of Cast.
func (p *Parser) castFollowsHere() bool {
	_, ok := p.prefixParseFns[p.peekTok.Kind]
	return ok
}

// peekTokenIsTypeStart is a light heuristic over the token immediately
// after "(": true for tokens that can only begin a type expression.
func (p *Parser) peekTokenIsTypeStart() bool {
	switch p.peekTok.Kind {
	case token.VOID, token.ANY, token.BOOL, token.BYTE, token.INT, token.AMP, token.LBRACE, token.FUNCTION, token.METHOD:
		return true
	default:
		return false
	}
}

type parserSnapshot struct {
	curTok  token.Token
	peekTok token.Token
	pos     int
	errs    int
}

func (p *Parser) snapshot() parserSnapshot {
	return parserSnapshot{curTok: p.curTok, peekTok: p.peekTok, pos: p.pos, errs: len(p.errs)}
}

func (p *Parser) restore(s parserSnapshot) {
	p.curTok = s.curTok
	p.peekTok = s.peekTok
	p.pos = s.pos
	p.errs = p.errs[:s.errs]
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.curTok
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return &ast.ArrayInitialiser{Token: tok}
	}
	p.nextToken()
	first := p.parseExpression(LOWEST)
	if p.peekTokenIs(token.SEMI) {
		p.nextToken()
		p.nextToken()
		init := p.parseExpression(LOWEST)
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return &ast.ArrayGenerator{Token: tok, Size: first, Init: init}
	}
	elems := []ast.Expression{first}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		elems = append(elems, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.ArrayInitialiser{Token: tok, Elements: elems}
}

func (p *Parser) parseArrayLength() ast.Expression {
	tok := p.curTok
	p.nextToken()
	// Bind at PREFIX precedence, like the other prefix operators, so the
	// closing "|" is never mistaken for the infix bitwise-or operator.
	v := p.parseExpression(PREFIX)
	if !p.expectPeek(token.PIPE) {
		return nil
	}
	return &ast.ArrayLength{Token: tok, Value: v}
}

// parseBorrow handles "&field-or-index-access" and, in record/array
// literal position, a bare reference type used as a value is never
// produced here — borrow only ever wraps a RecordAccess/ArrayAccess
// shape, surfaced by reparsing the operand and converting it.
func (p *Parser) parseBorrow() ast.Expression {
	tok := p.curTok
	lifetime := ""
	if p.peekTokenIs(token.IDENT) && p.peek(1).Kind == token.COLON {
		p.nextToken()
		lifetime = p.curTok.Literal
		p.nextToken() // consume ':'
	}
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	switch v := operand.(type) {
	case *ast.RecordAccess:
		return &ast.RecordBorrow{Token: tok, Base: v.Base, Field: v.Field, Lifetime: lifetime}
	case *ast.ArrayAccess:
		return &ast.ArrayBorrow{Token: tok, Base: v.Base, Index: v.Index, Lifetime: lifetime}
	default:
		p.addError(tok.Pos, "cannot borrow this expression")
		return operand
	}
}

// peek returns the token n positions past peekTok (peek(1) is the
// token after peekTok).
func (p *Parser) peek(n int) token.Token {
	idx := p.pos + n - 1
	if idx < 0 || idx >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[idx]
}

func (p *Parser) parseDereference() ast.Expression {
	tok := p.curTok
	p.nextToken()
	return &ast.Dereference{Token: tok, Value: p.parseExpression(PREFIX)}
}

func (p *Parser) parseNew() ast.Expression {
	tok := p.curTok
	p.nextToken()
	te := p.parseTypeExpr()
	return &ast.New{Token: tok, Type: te}
}

func (p *Parser) parseQuantifier() ast.Expression {
	tok := p.curTok
	kind := ast.Universal
	if tok.Kind == token.SOME {
		kind = ast.Existential
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	varName := p.curTok.Literal
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	source := p.parseExpression(LOWEST)
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	body := p.parseExpression(LOWEST)
	return &ast.Quantifier{Token: tok, Kind: kind, Var: varName, Source: source, Body: body}
}

func (p *Parser) parseRecordInitialiser() ast.Expression {
	tok := p.curTok
	var fields []ast.RecordFieldInit
	if !p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		fields = append(fields, p.parseRecordFieldInit())
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			fields = append(fields, p.parseRecordFieldInit())
		}
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return &ast.RecordInitialiser{Token: tok, Fields: fields}
}

func (p *Parser) parseRecordFieldInit() ast.RecordFieldInit {
	name := p.curTok.Literal
	if !p.expectPeek(token.COLON) {
		return ast.RecordFieldInit{Name: name}
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	return ast.RecordFieldInit{Name: name, Value: value}
}

func (p *Parser) parseLogicalBinary(left ast.Expression) ast.Expression {
	tok := p.curTok
	op := logicalOpFor(tok.Kind)
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.LogicalBinary{Token: tok, Op: op, Left: left, Right: right}
}

func logicalOpFor(k token.Kind) ast.LogicalOp {
	switch k {
	case token.AND:
		return ast.OpAnd
	case token.OR:
		return ast.OpOr
	case token.IFF:
		return ast.OpIff
	case token.IMPLIES:
		return ast.OpImplies
	default:
		return ast.OpAnd
	}
}

func (p *Parser) parseCompare(left ast.Expression) ast.Expression {
	tok := p.curTok
	op := compareOpFor(tok.Kind)
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.Compare{Token: tok, Op: op, Left: left, Right: right}
}

func compareOpFor(k token.Kind) ast.CompareOp {
	switch k {
	case token.EQ:
		return ast.CmpEqual
	case token.NEQ:
		return ast.CmpNotEqual
	case token.LT:
		return ast.CmpLess
	case token.LE:
		return ast.CmpLessEqual
	case token.GT:
		return ast.CmpGreater
	case token.GE:
		return ast.CmpGreaterEqual
	default:
		return ast.CmpEqual
	}
}

func (p *Parser) parseArith(left ast.Expression) ast.Expression {
	tok := p.curTok
	op := arithOpFor(tok.Kind)
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.Arith{Token: tok, Op: op, Left: left, Right: right}
}

func arithOpFor(k token.Kind) ast.ArithOp {
	switch k {
	case token.PLUS:
		return ast.ArithAdd
	case token.MINUS:
		return ast.ArithSub
	case token.STAR:
		return ast.ArithMul
	case token.SLASH:
		return ast.ArithDiv
	case token.PERCENT:
		return ast.ArithRem
	default:
		return ast.ArithAdd
	}
}

func (p *Parser) parseBitwise(left ast.Expression) ast.Expression {
	tok := p.curTok
	op := bitOpFor(tok.Kind)
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.Bitwise{Token: tok, Op: op, Left: left, Right: right}
}

func bitOpFor(k token.Kind) ast.BitOp {
	switch k {
	case token.AMP:
		return ast.BitAnd
	case token.PIPE:
		return ast.BitOr
	case token.BXOR:
		return ast.BitXor
	case token.SHL:
		return ast.BitShl
	case token.SHR:
		return ast.BitShr
	default:
		return ast.BitAnd
	}
}

func (p *Parser) parseIs(left ast.Expression) ast.Expression {
	tok := p.curTok
	p.nextToken()
	te := p.parseTypeExpr()
	return &ast.Is{Token: tok, Value: left, Type: te}
}

func (p *Parser) parseCallArgs(left ast.Expression) ast.Expression {
	tok := p.curTok
	args := p.parseExpressionList(token.RPAREN)
	name, ok := left.(*ast.VariableAccess)
	if !ok {
		return &ast.IndirectInvoke{Token: tok, Callee: left, Args: args}
	}
	return &ast.Invoke{Token: tok, Name: name.Name, Args: args}
}

func (p *Parser) parseExpressionList(end token.Kind) []ast.Expression {
	var list []ast.Expression
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

// parseIndexOrRangeOrUpdate handles "base[...]" in its three shapes:
// plain index, range "lo..hi" (lexed as two DOT tokens back to back),
// and functional update "index := value".
func (p *Parser) parseIndexOrRangeOrUpdate(left ast.Expression) ast.Expression {
	tok := p.curTok
	p.nextToken()
	first := p.parseExpression(LOWEST)
	switch {
	case p.peekTokenIs(token.DOT):
		p.nextToken()
		if !p.expectPeek(token.DOT) {
			return nil
		}
		p.nextToken()
		hi := p.parseExpression(LOWEST)
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return &ast.ArrayRange{Token: tok, Base: left, Lo: first, Hi: hi}
	case p.peekTokenIs(token.ASSIGN):
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return &ast.ArrayUpdate{Token: tok, Base: left, Index: first, Value: value}
	default:
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return &ast.ArrayAccess{Token: tok, Base: left, Index: first}
	}
}

// parseFieldAccessOrUpdate handles "base.field" and the functional
// update form "base.(field: value)".
func (p *Parser) parseFieldAccessOrUpdate(left ast.Expression) ast.Expression {
	tok := p.curTok
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		field := p.curTok.Literal
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return &ast.RecordUpdate{Token: tok, Base: left, Field: field, Value: value}
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return &ast.RecordAccess{Token: tok, Base: left, Field: p.curTok.Literal}
}

// parseLambdaDeclExpr handles an anonymous lambda literal used as an
// expression: "lambda(params) [-> returns] { body }". A named top-level
// lambda declaration is parsed separately in declarations.go.
func (p *Parser) parseLambdaDeclExpr() ast.Expression {
	tok := p.curTok
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseParamList()
	var returns []ast.TypeExpr
	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		returns = p.parseTypeExprList()
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	return &ast.LambdaDecl{Token: tok, Params: params, Returns: returns, Body: body}
}
