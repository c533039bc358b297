package parser

import (
	"github.com/quill-lang/quillc/internal/ast"
	"github.com/quill-lang/quillc/internal/token"
)

// parseTypeExpr parses a type expression with "|" (union) as the
// lowest-precedence operator; array suffixes bind tighter than union,
// so "int[]|null" is Array(int) unioned with null.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	first := p.parsePostfixType()
	if !p.peekTokenIs(token.PIPE) {
		return first
	}
	tok := p.peekTok
	children := []ast.TypeExpr{first}
	for p.peekTokenIs(token.PIPE) {
		p.nextToken()
		p.nextToken()
		children = append(children, p.parsePostfixType())
	}
	return &ast.UnionTypeExpr{Token: tok, Children: children}
}

func (p *Parser) parsePostfixType() ast.TypeExpr {
	t := p.parsePrimaryType()
	for p.peekTokenIs(token.LBRACKET) {
		tok := p.peekTok
		p.nextToken()
		if !p.expectPeek(token.RBRACKET) {
			return t
		}
		t = &ast.ArrayTypeExpr{Token: tok, Elem: t}
	}
	return t
}

func (p *Parser) parsePrimaryType() ast.TypeExpr {
	switch p.curTok.Kind {
	case token.VOID, token.ANY, token.BOOL, token.BYTE, token.INT:
		return &ast.AtomTypeExpr{Token: p.curTok, Name: p.curTok.Literal}
	case token.NULL:
		return &ast.AtomTypeExpr{Token: p.curTok, Name: "null"}
	case token.IDENT:
		return &ast.NamedTypeExpr{Token: p.curTok, Name: p.curTok.Literal}
	case token.AMP:
		return p.parseReferenceType()
	case token.LBRACE:
		return p.parseRecordType()
	case token.FUNCTION, token.METHOD:
		return p.parseCallableType()
	default:
		p.addError(p.curTok.Pos, "expected a type, got %v", p.curTok.Kind)
		return nil
	}
}

// parseReferenceType handles "&lifetime:Elem" and the unnamed "&Elem".
func (p *Parser) parseReferenceType() ast.TypeExpr {
	tok := p.curTok
	lifetime := ""
	if p.peekTokenIs(token.IDENT) && p.peek(1).Kind == token.COLON {
		p.nextToken()
		lifetime = p.curTok.Literal
		p.nextToken()
	}
	p.nextToken()
	elem := p.parsePostfixType()
	return &ast.ReferenceTypeExpr{Token: tok, Lifetime: lifetime, Elem: elem}
}

// parseRecordType handles "{Type name, Type name, ...}", where a
// trailing "..." (three DOT tokens, since the lexer has no dedicated
// ellipsis token) marks the record open.
func (p *Parser) parseRecordType() ast.TypeExpr {
	tok := p.curTok
	var fields []ast.RecordFieldExpr
	open := false
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return &ast.RecordTypeExpr{Token: tok, Fields: fields, Open: open}
	}
	p.nextToken()
	for {
		if p.curTokenIs(token.DOT) && p.peekTokenIs(token.DOT) {
			p.nextToken()
			p.nextToken()
			open = true
			break
		}
		ft := p.parseTypeExpr()
		if !p.expectPeek(token.IDENT) {
			break
		}
		fields = append(fields, ast.RecordFieldExpr{Name: p.curTok.Literal, Type: ft})
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return &ast.RecordTypeExpr{Token: tok, Fields: fields, Open: open}
}

// parseCallableType handles "function(...)->..." / "method<a>(...)->...".
func (p *Parser) parseCallableType() ast.TypeExpr {
	tok := p.curTok
	isMethod := tok.Kind == token.METHOD
	var lifetimes []string
	if p.peekTokenIs(token.LT) {
		p.nextToken()
		p.nextToken()
		lifetimes = append(lifetimes, p.curTok.Literal)
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			lifetimes = append(lifetimes, p.curTok.Literal)
		}
		if !p.expectPeek(token.GT) {
			return nil
		}
	}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseTypeExprListUntil(token.RPAREN)
	var returns []ast.TypeExpr
	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		returns = p.parseTypeExprList()
	}
	return &ast.CallableTypeExpr{Token: tok, IsMethod: isMethod, Params: params, Returns: returns, Lifetimes: lifetimes}
}

// parseTypeExprListUntil parses a comma-separated type list enclosed
// by a terminator already pending as the peek token (e.g. a param
// list's closing ")").
func (p *Parser) parseTypeExprListUntil(end token.Kind) []ast.TypeExpr {
	var list []ast.TypeExpr
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseTypeExpr())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseTypeExpr())
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

// parseTypeExprList parses a bare comma-separated type list with no
// enclosing delimiter (a return-type list after "->"), assuming curTok
// is already the first type's leading token.
func (p *Parser) parseTypeExprList() []ast.TypeExpr {
	list := []ast.TypeExpr{p.parseTypeExpr()}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseTypeExpr())
	}
	return list
}
