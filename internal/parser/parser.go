// Package parser implements a recursive-descent, precedence-climbing
// parser that turns a Quill token stream into an internal/ast tree. It
// performs no semantic analysis: a well-formed parse can still fail
// the flow checker, and a malformed one is reported through the same
// internal/errors.CompilerError the checker uses, under the
// SYNTAX_ERROR code.
package parser

import (
	"fmt"

	"github.com/quill-lang/quillc/internal/ast"
	"github.com/quill-lang/quillc/internal/errors"
	"github.com/quill-lang/quillc/internal/lexer"
	"github.com/quill-lang/quillc/internal/token"
)

// Operator precedence levels, lowest to highest.
const (
	LOWEST int = iota
	IMPLIES_PREC
	IFF_PREC
	OR_PREC
	AND_PREC
	IS_PREC
	EQUALS
	LESSGREATER
	BOR_PREC
	BXOR_PREC
	BAND_PREC
	SHIFT
	SUM
	PRODUCT
	PREFIX
	CALL
)

var precedences = map[token.Kind]int{
	token.IMPLIES: IMPLIES_PREC,
	token.IFF:     IFF_PREC,
	token.OR:      OR_PREC,
	token.AND:     AND_PREC,
	token.IS:      IS_PREC,
	token.EQ:      EQUALS,
	token.NEQ:     EQUALS,
	token.LT:      LESSGREATER,
	token.LE:      LESSGREATER,
	token.GT:      LESSGREATER,
	token.GE:      LESSGREATER,
	token.PIPE:    BOR_PREC,
	token.BXOR:    BXOR_PREC,
	token.AMP:     BAND_PREC,
	token.SHL:     SHIFT,
	token.SHR:     SHIFT,
	token.PLUS:    SUM,
	token.MINUS:   SUM,
	token.STAR:    PRODUCT,
	token.SLASH:   PRODUCT,
	token.PERCENT: PRODUCT,
	token.LPAREN:  CALL,
	token.LBRACKET: CALL,
	token.DOT:     CALL,
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser scans the entire token stream up front (internal/lexer.All)
// and walks it with a simple current/peek cursor, in the style of the
// teacher's recursive-descent expression parser but without its
// cursor/mark/reflection position-tracking machinery — every ast node
// here captures its own Token directly at construction time.
type Parser struct {
	toks []token.Token
	pos  int

	curTok  token.Token
	peekTok token.Token

	source string
	file   string

	errs []*errors.CompilerError

	prefixParseFns map[token.Kind]prefixParseFn
	infixParseFns  map[token.Kind]infixParseFn
}

// New creates a Parser over source, tagging any reported errors with file.
func New(source, file string) *Parser {
	p := &Parser{
		toks:   lexer.New(source).All(),
		source: source,
		file:   file,
	}
	p.prefixParseFns = map[token.Kind]prefixParseFn{}
	p.infixParseFns = map[token.Kind]infixParseFn{}

	p.registerPrefix(token.IDENT, p.parseVariableAccess)
	p.registerPrefix(token.INT_LIT, p.parseIntLiteral)
	p.registerPrefix(token.CHAR_LIT, p.parseCharLiteral)
	p.registerPrefix(token.STRING_LIT, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolLiteral)
	p.registerPrefix(token.FALSE, p.parseBoolLiteral)
	p.registerPrefix(token.NULL, p.parseNullLiteral)
	p.registerPrefix(token.NOT, p.parseLogicalNot)
	p.registerPrefix(token.MINUS, p.parseUnaryMinus)
	p.registerPrefix(token.TILDE, p.parseBitwiseNot)
	p.registerPrefix(token.LPAREN, p.parseGroupedOrCast)
	p.registerPrefix(token.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(token.PIPE, p.parseArrayLength)
	p.registerPrefix(token.AMP, p.parseBorrow)
	p.registerPrefix(token.STAR, p.parseDereference)
	p.registerPrefix(token.NEW, p.parseNew)
	p.registerPrefix(token.LAMBDA, p.parseLambdaDeclExpr)
	p.registerPrefix(token.ALL, p.parseQuantifier)
	p.registerPrefix(token.SOME, p.parseQuantifier)
	p.registerPrefix(token.LBRACE, p.parseRecordInitialiser)

	p.registerInfix(token.AND, p.parseLogicalBinary)
	p.registerInfix(token.OR, p.parseLogicalBinary)
	p.registerInfix(token.IFF, p.parseLogicalBinary)
	p.registerInfix(token.IMPLIES, p.parseLogicalBinary)
	p.registerInfix(token.EQ, p.parseCompare)
	p.registerInfix(token.NEQ, p.parseCompare)
	p.registerInfix(token.LT, p.parseCompare)
	p.registerInfix(token.LE, p.parseCompare)
	p.registerInfix(token.GT, p.parseCompare)
	p.registerInfix(token.GE, p.parseCompare)
	p.registerInfix(token.PLUS, p.parseArith)
	p.registerInfix(token.MINUS, p.parseArith)
	p.registerInfix(token.STAR, p.parseArith)
	p.registerInfix(token.SLASH, p.parseArith)
	p.registerInfix(token.PERCENT, p.parseArith)
	p.registerInfix(token.AMP, p.parseBitwise)
	p.registerInfix(token.PIPE, p.parseBitwise)
	p.registerInfix(token.BXOR, p.parseBitwise)
	p.registerInfix(token.SHL, p.parseBitwise)
	p.registerInfix(token.SHR, p.parseBitwise)
	p.registerInfix(token.IS, p.parseIs)
	p.registerInfix(token.LPAREN, p.parseCallArgs)
	p.registerInfix(token.LBRACKET, p.parseIndexOrRangeOrUpdate)
	p.registerInfix(token.DOT, p.parseFieldAccessOrUpdate)

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(k token.Kind, fn prefixParseFn) { p.prefixParseFns[k] = fn }
func (p *Parser) registerInfix(k token.Kind, fn infixParseFn)   { p.infixParseFns[k] = fn }

// Errors returns the syntax errors accumulated during parsing.
func (p *Parser) Errors() []*errors.CompilerError { return p.errs }

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	if p.pos < len(p.toks) {
		p.peekTok = p.toks[p.pos]
		p.pos++
	} else {
		p.peekTok = token.Token{Kind: token.EOF}
	}
}

func (p *Parser) curTokenIs(k token.Kind) bool  { return p.curTok.Kind == k }
func (p *Parser) peekTokenIs(k token.Kind) bool { return p.peekTok.Kind == k }

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curTok.Kind]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekTok.Kind]; ok {
		return prec
	}
	return LOWEST
}

// expectPeek advances past the peek token if it matches k, reporting a
// syntax error and leaving the cursor unmoved otherwise.
func (p *Parser) expectPeek(k token.Kind) bool {
	if p.peekTokenIs(k) {
		p.nextToken()
		return true
	}
	p.peekError(k)
	return false
}

func (p *Parser) peekError(k token.Kind) {
	p.addError(p.peekTok.Pos, "expected next token to be %v, got %v instead", k, p.peekTok.Kind)
}

func (p *Parser) addError(pos token.Position, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.errs = append(p.errs, errors.New(errors.SyntaxError, pos, msg, p.source, p.file))
}

func (p *Parser) noPrefixParseFnError(k token.Kind) {
	p.addError(p.curTok.Pos, "no prefix parse function for %v found", k)
}

// ParseUnit parses the entire token stream as one compilation unit.
// Every parse*Declaration/parse*Statement method leaves curTok on the
// last token it consumed (typically a terminating ";" or "}"); callers
// always advance exactly once before parsing the next item. A
// declaration that makes no progress is skipped with a syntax error so
// one malformed top-level form does not suppress the rest of the unit.
func (p *Parser) ParseUnit() *ast.Unit {
	unit := &ast.Unit{}
	for p.curTokenIs(token.IMPORT) {
		unit.Imports = append(unit.Imports, p.parseImport())
		p.nextToken()
	}
	for !p.curTokenIs(token.EOF) {
		before := p.curTok
		d := p.parseDeclaration()
		if d != nil {
			unit.Declarations = append(unit.Declarations, d)
		}
		if p.curTok == before {
			p.addError(p.curTok.Pos, "unexpected token %v at top level", p.curTok.Kind)
			p.nextToken()
			continue
		}
		p.nextToken()
	}
	return unit
}

func (p *Parser) parseImport() *ast.Import {
	tok := p.curTok
	if !p.expectPeek(token.IDENT) {
		return &ast.Import{Token: tok}
	}
	imp := &ast.Import{Token: tok, Name: p.curTok.Literal}
	if p.peekTokenIs(token.SEMI) {
		p.nextToken()
	}
	return imp
}
