package parser

import (
	"github.com/Legendyboi/rutaceae/internal/ast"
	"github.com/Legendyboi/rutaceae/internal/errors"
	"github.com/Legendyboi/rutaceae/internal/lexer"
)

// parseStatement dispatches on the current token's type. p.curToken is
// left on the statement's last token; the caller advances past it.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case lexer.LET:
		return p.parseDeclStatement(false)
	case lexer.CONST:
		return p.parseDeclStatement(true)
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.BREAK:
		return p.parseBreakStatement()
	case lexer.CONTINUE:
		return p.parseContinueStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.PRINT:
		return p.parsePrintStatement()
	case lexer.IDENT:
		return p.parseIdentifierLedStatement()
	default:
		p.addError(errors.Parse(p.curToken.Pos, "unexpected token %s (%q) at start of statement", p.curToken.Type, p.curToken.Literal))
		return nil
	}
}

// parseDeclStatement parses `let NAME [: TYPE] [= EXPR];` or the const
// equivalent. A missing initializer on a const declaration is flagged as
// an AstBuildError (spec.md §4.2): a const without a value has nothing to
// be constant about.
func (p *Parser) parseDeclStatement(isConst bool) ast.Statement {
	decl := &ast.DeclStatement{Token: p.curToken, IsConst: isConst}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	decl.Name = p.curToken.Literal

	explicitType := ast.TypeTag("")
	if p.peekTokenIs(lexer.COLON) {
		p.nextToken()
		if !lexer.IsTypeTag(p.peekToken.Type) {
			p.addError(errors.Parse(p.peekToken.Pos, "expected a type after ':', got %s (%q)", p.peekToken.Type, p.peekToken.Literal))
			return nil
		}
		p.nextToken()
		tag, _ := p.parseTypeTag()
		explicitType = tag
	}

	if p.peekTokenIs(lexer.ASSIGN) {
		p.nextToken()
		p.nextToken()
		decl.Init = p.parseExpression(LOWEST)
	} else if isConst {
		p.addError(errors.AstBuild(decl.Token.Pos, "const %q must have an initializer", decl.Name))
		if p.peekTokenIs(lexer.SEMICOLON) {
			p.nextToken()
		}
		return nil
	}

	if explicitType != "" {
		decl.Type = explicitType
	} else {
		decl.Type = inferDeclType(decl.Init)
	}

	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}
	return decl
}

// inferDeclType implements the declaration type-inference order (spec.md
// §4.2): bool literal -> bool, float literal -> float, string literal ->
// string, a cast -> its target type, anything else (including no
// initializer) -> int.
func inferDeclType(init ast.Expression) ast.TypeTag {
	switch e := init.(type) {
	case *ast.CastExpr:
		return e.TargetType
	case *ast.BooleanLiteral:
		return ast.TypeBool
	case *ast.FloatLiteral:
		return ast.TypeFloat
	case *ast.StringLiteral:
		return ast.TypeString
	default:
		return ast.TypeInt
	}
}

// parseIdentifierLedStatement disambiguates the statement forms that
// start with an identifier: plain assignment, compound assignment,
// increment/decrement, or a bare call expression used for its effect.
func (p *Parser) parseIdentifierLedStatement() ast.Statement {
	nameTok := p.curToken
	name := p.curToken.Literal

	switch p.peekToken.Type {
	case lexer.ASSIGN:
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if !p.expectPeek(lexer.SEMICOLON) {
			return nil
		}
		return &ast.AssignStatement{Token: nameTok, Name: name, Value: value}

	case lexer.INC, lexer.DEC:
		increment := p.peekToken.Type == lexer.INC
		p.nextToken()
		if !p.expectPeek(lexer.SEMICOLON) {
			return nil
		}
		return &ast.IncDecStatement{Token: nameTok, Name: name, Increment: increment}

	default:
		if op, ok := compoundAssignOps[p.peekToken.Type]; ok {
			p.nextToken()
			p.nextToken()
			value := p.parseExpression(LOWEST)
			if !p.expectPeek(lexer.SEMICOLON) {
				return nil
			}
			return &ast.CompoundAssignStatement{Token: nameTok, Name: name, Operator: op, Value: value}
		}
	}

	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}
	return &ast.ExprStatement{Token: nameTok, Expr: expr}
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	stmt.Then = p.parseBlock()

	if p.peekTokenIs(lexer.ELSE) {
		p.nextToken()
		if !p.expectPeek(lexer.LBRACE) {
			return nil
		}
		stmt.Else = p.parseBlock()
	}

	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlock()
	return stmt
}

// parseForStatement parses `for (init?; cond; update) { ... }`. The init
// slot may be empty, in which case Init is left nil rather than a
// placeholder statement (spec.md §4.2).
func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curToken}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	} else {
		p.nextToken()
		switch p.curToken.Type {
		case lexer.LET:
			stmt.Init = p.parseDeclStatement(false)
		case lexer.CONST:
			stmt.Init = p.parseDeclStatement(true)
		default:
			stmt.Init = p.parseIdentifierLedStatement()
		}
	}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}

	p.nextToken()
	stmt.Update = p.parseIdentifierLedUpdate()

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlock()
	return stmt
}

// parseIdentifierLedUpdate parses the update clause of a for-statement,
// which has no terminating semicolon of its own (unlike the equivalent
// statement forms used elsewhere).
func (p *Parser) parseIdentifierLedUpdate() ast.Statement {
	nameTok := p.curToken
	name := p.curToken.Literal

	switch p.peekToken.Type {
	case lexer.ASSIGN:
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(LOWEST)
		return &ast.AssignStatement{Token: nameTok, Name: name, Value: value}
	case lexer.INC, lexer.DEC:
		increment := p.peekToken.Type == lexer.INC
		p.nextToken()
		return &ast.IncDecStatement{Token: nameTok, Name: name, Increment: increment}
	default:
		if op, ok := compoundAssignOps[p.peekToken.Type]; ok {
			p.nextToken()
			p.nextToken()
			value := p.parseExpression(LOWEST)
			return &ast.CompoundAssignStatement{Token: nameTok, Name: name, Operator: op, Value: value}
		}
	}

	p.addError(errors.Parse(p.curToken.Pos, "expected an assignment or increment/decrement in for-update, got %s (%q)", p.curToken.Type, p.curToken.Literal))
	return nil
}

func (p *Parser) parseBreakStatement() ast.Statement {
	stmt := &ast.BreakStatement{Token: p.curToken}
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseContinueStatement() ast.Statement {
	stmt := &ast.ContinueStatement{Token: p.curToken}
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		return stmt
	}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}
	return stmt
}

// parsePrintStatement parses `print(expr [, expr ...]);` (spec.md §3).
func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.PrintStatement{Token: p.curToken}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
	} else {
		p.nextToken()
		stmt.Args = append(stmt.Args, p.parseExpression(LOWEST))
		for p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			p.nextToken()
			stmt.Args = append(stmt.Args, p.parseExpression(LOWEST))
		}
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
	}

	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}
	return stmt
}
