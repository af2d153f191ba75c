// Package parser implements the Rutaceae parser using Pratt parsing. It
// fuses grammar recognition with AST construction: there is no separate
// parse-tree stage (spec.md §4.1 Non-goals) — each parse method returns
// the finished ast.Node directly.
package parser

import (
	"strconv"
	"strings"

	"github.com/Legendyboi/rutaceae/internal/ast"
	"github.com/Legendyboi/rutaceae/internal/errors"
	"github.com/Legendyboi/rutaceae/internal/lexer"
)

// Precedence levels, lowest to highest (spec.md §4.1).
const (
	_ int = iota
	LOWEST
	LOGICAL_OR  // ||
	LOGICAL_AND // &&
	EQUALS      // == !=
	RELATIONAL  // < <= > >=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x !x
	CALL        // f(args)
)

var precedences = map[lexer.TokenType]int{
	lexer.OR_OR:   LOGICAL_OR,
	lexer.AND_AND: LOGICAL_AND,
	lexer.EQ_EQ:   EQUALS,
	lexer.NOT_EQ:  EQUALS,
	lexer.LT:      RELATIONAL,
	lexer.LE:      RELATIONAL,
	lexer.GT:      RELATIONAL,
	lexer.GE:      RELATIONAL,
	lexer.PLUS:    SUM,
	lexer.MINUS:   SUM,
	lexer.STAR:    PRODUCT,
	lexer.SLASH:   PRODUCT,
	lexer.PERCENT: PRODUCT,
	lexer.LPAREN:  CALL,
}

var compoundAssignOps = map[lexer.TokenType]string{
	lexer.PLUS_ASSIGN:    "+=",
	lexer.MINUS_ASSIGN:   "-=",
	lexer.STAR_ASSIGN:    "*=",
	lexer.SLASH_ASSIGN:   "/=",
	lexer.PERCENT_ASSIGN: "%=",
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser turns a token stream into a Program, accumulating every error it
// finds rather than stopping at the first one.
type Parser struct {
	l *lexer.Lexer

	curToken  lexer.Token
	peekToken lexer.Token

	errors []*errors.CompilerError

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New creates a Parser over l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:       p.parseIdentifier,
		lexer.INT:         p.parseIntegerLiteral,
		lexer.FLOAT:       p.parseFloatLiteral,
		lexer.STRING:      p.parseStringLiteral,
		lexer.TRUE:        p.parseBooleanLiteral,
		lexer.FALSE:       p.parseBooleanLiteral,
		lexer.BANG:        p.parseUnaryExpression,
		lexer.MINUS:       p.parseUnaryExpression,
		lexer.LPAREN:      p.parseGroupedExpression,
		lexer.TYPE_INT:    p.parseCastExpression,
		lexer.TYPE_FLOAT:  p.parseCastExpression,
		lexer.TYPE_BOOL:   p.parseCastExpression,
		lexer.TYPE_STRING: p.parseCastExpression,
	}

	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:    p.parseBinaryExpression,
		lexer.MINUS:   p.parseBinaryExpression,
		lexer.STAR:    p.parseBinaryExpression,
		lexer.SLASH:   p.parseBinaryExpression,
		lexer.PERCENT: p.parseBinaryExpression,
		lexer.EQ_EQ:   p.parseBinaryExpression,
		lexer.NOT_EQ:  p.parseBinaryExpression,
		lexer.LT:      p.parseBinaryExpression,
		lexer.LE:      p.parseBinaryExpression,
		lexer.GT:      p.parseBinaryExpression,
		lexer.GE:      p.parseBinaryExpression,
		lexer.AND_AND: p.parseBinaryExpression,
		lexer.OR_OR:   p.parseBinaryExpression,
		lexer.LPAREN:  p.parseCallExpression,
	}

	// Prime curToken/peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every parse/AST-build error accumulated so far.
func (p *Parser) Errors() []*errors.CompilerError {
	all := make([]*errors.CompilerError, 0, len(p.errors)+len(p.l.Errors()))
	for _, le := range p.l.Errors() {
		all = append(all, errors.Parse(le.Pos, "%s", le.Message))
	}
	all = append(all, p.errors...)
	return all
}

func (p *Parser) addError(err *errors.CompilerError) {
	p.errors = append(p.errors, err)
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t lexer.TokenType) bool { return p.peekToken.Type == t }

// expectPeek advances past peekToken if it matches t, recording a
// ParseError otherwise.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError(errors.Parse(p.peekToken.Pos, "expected %s, got %s (%q)", t, p.peekToken.Type, p.peekToken.Literal))
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// synchronize skips tokens until a likely statement boundary, so a single
// malformed statement doesn't cascade into spurious downstream errors.
func (p *Parser) synchronize() {
	for !p.curTokenIs(lexer.EOF) {
		if p.curTokenIs(lexer.SEMICOLON) {
			p.nextToken()
			return
		}
		if p.curTokenIs(lexer.RBRACE) {
			return
		}
		p.nextToken()
	}
}

// ParseProgram parses the entire token stream into a Program containing
// every function definition found, accumulating errors along the way.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(lexer.EOF) {
		if !p.curTokenIs(lexer.FN) {
			p.addError(errors.Parse(p.curToken.Pos, "expected function definition, got %s (%q)", p.curToken.Type, p.curToken.Literal))
			p.synchronize()
			if p.curTokenIs(lexer.RBRACE) {
				p.nextToken()
			}
			continue
		}
		fn := p.parseFunctionDef()
		if fn != nil {
			program.Functions = append(program.Functions, fn)
		}
		p.nextToken()
	}

	return program
}

func (p *Parser) parseTypeTag() (ast.TypeTag, bool) {
	if !lexer.IsTypeTag(p.curToken.Type) {
		p.addError(errors.Parse(p.curToken.Pos, "expected a type, got %s (%q)", p.curToken.Type, p.curToken.Literal))
		return "", false
	}
	tag, ok := ast.ValidTypeTag(p.curToken.Literal)
	return tag, ok
}

func (p *Parser) parseFunctionDef() *ast.FunctionDef {
	fn := &ast.FunctionDef{Token: p.curToken}

	if !lexer.IsTypeTag(p.peekToken.Type) {
		p.addError(errors.Parse(p.peekToken.Pos, "expected a return type, got %s (%q)", p.peekToken.Type, p.peekToken.Literal))
		return nil
	}
	p.nextToken()
	returnType, ok := p.parseTypeTag()
	if !ok {
		return nil
	}
	fn.ReturnType = returnType

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	fn.Name = p.curToken.Literal

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	fn.Parameters = p.parseParameterList()

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlock()

	return fn
}

func (p *Parser) parseParameterList() []*ast.Param {
	params := []*ast.Param{}

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return params
	}

	p.nextToken()
	for {
		tag, ok := p.parseTypeTag()
		if !ok {
			return params
		}
		if !p.expectPeek(lexer.IDENT) {
			return params
		}
		name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
		params = append(params, &ast.Param{Name: name, Type: tag})

		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(lexer.RPAREN) {
		return params
	}
	return params
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Token: p.curToken}

	p.nextToken()
	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	return block
}

// decodeStringLiteral resolves the backslash escapes in a raw string
// literal body (AST-build time, spec.md §4.2): \n \t \r \\ \" \0 are
// recognized; any other escape keeps its backslash literally.
func decodeStringLiteral(raw string) string {
	var out strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i == len(raw)-1 {
			out.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case 'r':
			out.WriteByte('\r')
		case '\\':
			out.WriteByte('\\')
		case '"':
			out.WriteByte('"')
		case '0':
			out.WriteByte(0)
		default:
			out.WriteByte('\\')
			out.WriteByte(raw[i])
		}
	}
	return out.String()
}

func parseIntLiteral(lit string) int32 {
	v, _ := strconv.ParseInt(lit, 10, 32)
	return int32(v)
}

func parseFloatLiteral(lit string) float64 {
	v, _ := strconv.ParseFloat(lit, 64)
	return v
}
