package parser

import (
	"github.com/Legendyboi/rutaceae/internal/ast"
	"github.com/Legendyboi/rutaceae/internal/errors"
	"github.com/Legendyboi/rutaceae/internal/lexer"
)

// parseExpression is the Pratt-parsing entry point: it parses a prefix
// expression, then repeatedly folds in infix operators whose precedence
// exceeds precedence (spec.md §4.1's precedence ladder, lowest to
// highest: || && == != relational + - * / % unary call).
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.addError(errors.Parse(p.curToken.Pos, "unexpected token %s (%q) in expression", p.curToken.Type, p.curToken.Literal))
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(lexer.SEMICOLON) && precedence < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	return &ast.IntegerLiteral{Token: p.curToken, Value: parseIntLiteral(p.curToken.Literal)}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	return &ast.FloatLiteral{Token: p.curToken, Value: parseFloatLiteral(p.curToken.Literal)}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curToken.Type == lexer.TRUE}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: decodeStringLiteral(p.curToken.Literal)}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	expr := &ast.UnaryExpr{Token: p.curToken, Operator: p.curToken.Literal}
	p.nextToken()
	expr.Operand = p.parseExpression(PREFIX)
	return expr
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpr{Token: p.curToken, Left: left, Operator: p.curToken.Literal}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return expr
}

// parseCallExpression parses `callee(args)`, where callee was already
// parsed as an identifier.
func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	ident, ok := callee.(*ast.Identifier)
	if !ok {
		p.addError(errors.Parse(p.curToken.Pos, "call target must be a plain function name"))
		return nil
	}
	expr := &ast.CallExpr{Token: ident.Token, Callee: ident.Value}
	expr.Args = p.parseExpressionList(lexer.RPAREN)
	return expr
}

func (p *Parser) parseExpressionList(end lexer.TokenType) []ast.Expression {
	var list []ast.Expression

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(end) {
		return list
	}
	return list
}

// parseCastExpression parses `TYPE(expr)`, the explicit conversion form
// (spec.md §4.3.4). A type tag is only a cast when immediately followed
// by '(': this keeps the type keywords usable as return-type/parameter
// tags everywhere else without becoming reserved as expression prefixes.
func (p *Parser) parseCastExpression() ast.Expression {
	typeTok := p.curToken
	targetType, ok := p.parseTypeTag()
	if !ok {
		return nil
	}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	inner := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	return &ast.CastExpr{Token: typeTok, TargetType: targetType, Inner: inner}
}
