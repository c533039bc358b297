package parser

import (
	"github.com/quill-lang/quillc/internal/ast"
	"github.com/quill-lang/quillc/internal/token"
)

// parseDeclaration dispatches on the leading keyword of a top-level
// declaration. Returns nil (making no progress) for an unrecognised
// leading token, which ParseUnit reports and skips.
func (p *Parser) parseDeclaration() ast.Declaration {
	switch p.curTok.Kind {
	case token.TYPE:
		return p.parseTypeDecl()
	case token.STATIC:
		return p.parseStaticVariable()
	case token.PROPERTY:
		return p.parseProperty()
	case token.NATIVE, token.FUNCTION, token.METHOD:
		return p.parseFunctionOrMethod()
	case token.LAMBDA:
		return p.parseTopLevelLambda()
	default:
		return nil
	}
}

// parseTypeDecl handles "type Name is Body [where (param) cond];".
func (p *Parser) parseTypeDecl() ast.Declaration {
	tok := p.curTok
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curTok.Literal
	if !p.expectPeek(token.IS) {
		return nil
	}
	p.nextToken()
	body := p.parseTypeExpr()

	var param string
	var where ast.Expression
	if p.peekTokenIs(token.WHERE) {
		p.nextToken()
		if !p.expectPeek(token.LPAREN) {
			return nil
		}
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		param = p.curTok.Literal
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		p.nextToken()
		where = p.parseExpression(LOWEST)
	}
	if p.peekTokenIs(token.SEMI) {
		p.nextToken()
	}
	return &ast.TypeDecl{Token: tok, Name: name, Param: param, Body: body, Where: where}
}

// parseStaticVariable handles "static Type name [= init];".
func (p *Parser) parseStaticVariable() ast.Declaration {
	tok := p.curTok
	p.nextToken()
	te := p.parseTypeExpr()
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curTok.Literal
	var init ast.Expression
	if p.peekTokenIs(token.EQ) {
		p.nextToken()
		p.nextToken()
		init = p.parseExpression(LOWEST)
	}
	if p.peekTokenIs(token.SEMI) {
		p.nextToken()
	}
	return &ast.StaticVariable{Token: tok, Name: name, Type: te, Init: init}
}

// parseProperty handles "property Type name get getter [set setter];".
func (p *Parser) parseProperty() ast.Declaration {
	tok := p.curTok
	p.nextToken()
	te := p.parseTypeExpr()
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curTok.Literal
	var getter, setter string
	if p.peekTokenIs(token.GET) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		getter = p.curTok.Literal
	}
	if p.peekTokenIs(token.SET) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		setter = p.curTok.Literal
	}
	if p.peekTokenIs(token.SEMI) {
		p.nextToken()
	}
	return &ast.Property{Token: tok, Name: name, Type: te, Getter: getter, Setter: setter}
}

// parseFunctionOrMethod handles "[native] (function|method) name
// [<lifetimes>] (params) [-> returns] { body }", with a native
// declaration ending at the ";" instead of a body.
func (p *Parser) parseFunctionOrMethod() ast.Declaration {
	tok := p.curTok
	native := false
	if p.curTokenIs(token.NATIVE) {
		native = true
		p.nextToken()
	}
	isMethod := p.curTokenIs(token.METHOD)
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curTok.Literal

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
	params := p.parseParamList()
	var returns []ast.TypeExpr
	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		returns = p.parseTypeExprList()
	}

	fn := &ast.FunctionOrMethod{
		Token: tok, Name: name, IsMethod: isMethod, Native: native,
		Params: params, Returns: returns, Lifetimes: lifetimes,
	}
	if native {
		if p.peekTokenIs(token.SEMI) {
			p.nextToken()
		}
		return fn
	}
	if !p.expectPeek(token.LBRACE) {
		return fn
	}
	fn.Body = p.parseBlock()
	return fn
}

// parseTopLevelLambda handles "lambda name(params) [-> returns] { body }".
func (p *Parser) parseTopLevelLambda() ast.Declaration {
	tok := p.curTok
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curTok.Literal
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
	return &ast.Lambda{Token: tok, Name: name, Params: params, Returns: returns, Body: body}
}

// parseParamList parses "(Type name, Type name, ...)", assuming curTok
// is the opening "(" already consumed by the caller's expectPeek.
func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, p.parseParam())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.parseParam())
	}
	if !p.expectPeek(token.RPAREN) {
		return params
	}
	return params
}

func (p *Parser) parseParam() ast.Param {
	te := p.parseTypeExpr()
	if !p.expectPeek(token.IDENT) {
		return ast.Param{Type: te}
	}
	return ast.Param{Name: p.curTok.Literal, Type: te}
}
