package parser

import (
	"github.com/quill-lang/quillc/internal/ast"
	"github.com/quill-lang/quillc/internal/token"
)

// parseBlock assumes curTok is the opening "{" and consumes through
// the matching "}", leaving curTok on that closing brace.
func (p *Parser) parseBlock() *ast.BlockStatement {
	tok := p.curTok
	block := &ast.BlockStatement{Token: tok}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		before := p.curTok
		stmt := p.parseStatement()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if p.curTok == before {
			p.addError(p.curTok.Pos, "unexpected token %v in block", p.curTok.Kind)
			p.nextToken()
			continue
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curTok.Kind {
	case token.VAR:
		return p.parseVariableDecl()
	case token.RETURN:
		return p.parseReturn()
	case token.FAIL:
		return p.parseSimpleKeyword(func(tok token.Token) ast.Statement { return &ast.Fail{Token: tok} })
	case token.IF:
		return p.parseIfElse()
	case token.BLOCK:
		return p.parseNamedBlock()
	case token.WHILE:
		return p.parseWhile()
	case token.DO:
		return p.parseDoWhile()
	case token.SWITCH:
		return p.parseSwitch()
	case token.BREAK:
		return p.parseSimpleKeyword(func(tok token.Token) ast.Statement { return &ast.Break{Token: tok} })
	case token.CONTINUE:
		return p.parseSimpleKeyword(func(tok token.Token) ast.Statement { return &ast.Continue{Token: tok} })
	case token.SKIP:
		return p.parseSimpleKeyword(func(tok token.Token) ast.Statement { return &ast.Skip{Token: tok} })
	case token.ASSERT:
		return p.parseAssertOrAssume(true)
	case token.ASSUME:
		return p.parseAssertOrAssume(false)
	case token.DEBUG:
		return p.parseDebug()
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExpressionOrAssignStatement()
	}
}

func (p *Parser) parseSimpleKeyword(build func(token.Token) ast.Statement) ast.Statement {
	tok := p.curTok
	if p.peekTokenIs(token.SEMI) {
		p.nextToken()
	}
	return build(tok)
}

// parseVariableDecl handles "var Type name [= init];".
func (p *Parser) parseVariableDecl() ast.Statement {
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
	return &ast.VariableDecl{Token: tok, Name: name, Type: te, Init: init}
}

func (p *Parser) parseReturn() ast.Statement {
	tok := p.curTok
	var values []ast.Expression
	if !p.peekTokenIs(token.SEMI) {
		p.nextToken()
		values = append(values, p.parseExpression(LOWEST))
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			values = append(values, p.parseExpression(LOWEST))
		}
	}
	if p.peekTokenIs(token.SEMI) {
		p.nextToken()
	}
	return &ast.Return{Token: tok, Values: values}
}

func (p *Parser) parseIfElse() ast.Statement {
	tok := p.curTok
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.LBRACE) {
		return &ast.IfElse{Token: tok, Cond: cond}
	}
	then := p.parseBlock()

	var els ast.Statement
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			els = p.parseIfElse()
		} else if p.expectPeek(token.LBRACE) {
			els = p.parseBlock()
		}
	}
	return &ast.IfElse{Token: tok, Cond: cond, Then: then, Else: els}
}

// parseNamedBlock handles "block name { body }".
func (p *Parser) parseNamedBlock() ast.Statement {
	tok := p.curTok
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curTok.Literal
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	return &ast.NamedBlock{Token: tok, Name: name, Body: body}
}

// parseWhile handles "while cond [where inv, inv] { body }".
func (p *Parser) parseWhile() ast.Statement {
	tok := p.curTok
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	invariants := p.parseOptionalInvariants()
	if !p.expectPeek(token.LBRACE) {
		return &ast.While{Token: tok, Cond: cond, Invariants: invariants}
	}
	body := p.parseBlock()
	return &ast.While{Token: tok, Cond: cond, Invariants: invariants, Body: body}
}

// parseDoWhile handles "do { body } [where inv, inv] while cond;".
func (p *Parser) parseDoWhile() ast.Statement {
	tok := p.curTok
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	invariants := p.parseOptionalInvariants()
	if !p.expectPeek(token.WHILE) {
		return &ast.DoWhile{Token: tok, Body: body, Invariants: invariants}
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if p.peekTokenIs(token.SEMI) {
		p.nextToken()
	}
	return &ast.DoWhile{Token: tok, Body: body, Invariants: invariants, Cond: cond}
}

// parseOptionalInvariants handles a "where e1, e2, ..." clause,
// reusing the WHERE keyword already used by refinement type
// declarations rather than introducing a dedicated invariant keyword.
func (p *Parser) parseOptionalInvariants() []ast.Expression {
	if !p.peekTokenIs(token.WHERE) {
		return nil
	}
	p.nextToken()
	p.nextToken()
	invariants := []ast.Expression{p.parseExpression(LOWEST)}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		invariants = append(invariants, p.parseExpression(LOWEST))
	}
	return invariants
}

// parseSwitch handles "switch subject { case v, v: body ... default: body }".
func (p *Parser) parseSwitch() ast.Statement {
	tok := p.curTok
	p.nextToken()
	subject := p.parseExpression(LOWEST)
	if !p.expectPeek(token.LBRACE) {
		return &ast.Switch{Token: tok, Subject: subject}
	}
	p.nextToken()

	sw := &ast.Switch{Token: tok, Subject: subject}
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		switch p.curTok.Kind {
		case token.CASE:
			p.nextToken()
			values := []ast.Expression{p.parseExpression(LOWEST)}
			for p.peekTokenIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				values = append(values, p.parseExpression(LOWEST))
			}
			if !p.expectPeek(token.COLON) {
				return sw
			}
			p.nextToken()
			sw.Cases = append(sw.Cases, ast.CaseArm{Values: values, Body: p.parseCaseBody()})
		case token.DEFAULT:
			if !p.expectPeek(token.COLON) {
				return sw
			}
			p.nextToken()
			sw.Default = p.parseCaseBody()
		default:
			p.addError(p.curTok.Pos, "expected case or default, got %v", p.curTok.Kind)
			p.nextToken()
		}
	}
	return sw
}

// parseCaseBody collects statements up to (not including) the next
// "case"/"default"/"}", leaving curTok on that boundary token.
func (p *Parser) parseCaseBody() ast.Statement {
	startTok := p.curTok
	block := &ast.BlockStatement{Token: startTok}
	for !p.curTokenIs(token.CASE) && !p.curTokenIs(token.DEFAULT) && !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		before := p.curTok
		stmt := p.parseStatement()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if p.curTok == before {
			p.nextToken()
			continue
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseAssertOrAssume(isAssert bool) ast.Statement {
	tok := p.curTok
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if p.peekTokenIs(token.SEMI) {
		p.nextToken()
	}
	if isAssert {
		return &ast.Assert{Token: tok, Cond: cond}
	}
	return &ast.Assume{Token: tok, Cond: cond}
}

func (p *Parser) parseDebug() ast.Statement {
	tok := p.curTok
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if p.peekTokenIs(token.SEMI) {
		p.nextToken()
	}
	return &ast.Debug{Token: tok, Value: value}
}

// parseExpressionOrAssignStatement parses a leading expression, then
// distinguishes a tuple assignment ("lvals := rhss;") from a bare
// expression statement based on what follows it.
func (p *Parser) parseExpressionOrAssignStatement() ast.Statement {
	tok := p.curTok
	first := p.parseExpression(LOWEST)
	if first == nil {
		if p.peekTokenIs(token.SEMI) {
			p.nextToken()
		}
		return &ast.ExpressionStatement{Token: tok, Expr: first}
	}

	if p.peekTokenIs(token.COMMA) || p.peekTokenIs(token.ASSIGN) {
		lvals := []ast.LValue{p.exprToLValue(first)}
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			lvals = append(lvals, p.exprToLValue(p.parseExpression(LOWEST)))
		}
		if !p.expectPeek(token.ASSIGN) {
			return &ast.ExpressionStatement{Token: tok, Expr: first}
		}
		p.nextToken()
		rhss := []ast.Expression{p.parseExpression(LOWEST)}
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			rhss = append(rhss, p.parseExpression(LOWEST))
		}
		if p.peekTokenIs(token.SEMI) {
			p.nextToken()
		}
		return &ast.Assign{Token: tok, LHS: lvals, RHS: rhss}
	}

	if p.peekTokenIs(token.SEMI) {
		p.nextToken()
	}
	return &ast.ExpressionStatement{Token: tok, Expr: first}
}

// exprToLValue converts the shape of a just-parsed expression into the
// equivalent LValue, the two node families mirroring each other
// exactly except at the root (VariableAccess/VarLValue) per §4.6's
// read/write distinction.
func (p *Parser) exprToLValue(e ast.Expression) ast.LValue {
	switch v := e.(type) {
	case *ast.VariableAccess:
		return &ast.VarLValue{Token: v.Token, Name: v.Name}
	case *ast.RecordAccess:
		return &ast.FieldLValue{Token: v.Token, Base: p.exprToLValue(v.Base), Field: v.Field}
	case *ast.ArrayAccess:
		return &ast.IndexLValue{Token: v.Token, Base: p.exprToLValue(v.Base), Index: v.Index}
	case *ast.Dereference:
		return &ast.DerefLValue{Token: v.Token, Base: p.exprToLValue(v.Value)}
	default:
		pos := token.Position{}
		if e != nil {
			pos = e.Pos()
		}
		p.addError(pos, "not a valid assignment target")
		return &ast.VarLValue{}
	}
}
