package parser

import (
	"github.com/dhamidi/kestrel/lang/ast"
)

// parseStatementList parses statements until the lookahead is end, which is
// left unconsumed.
func (p *Parser) parseStatementList(end TokenKind) ([]ast.Statement, error) {
	body := []ast.Statement{}
	for !p.is(end) {
		if p.is(TokenEnd) {
			return nil, newUnexpectedToken(p.lookahead, end)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return body, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.lookahead.Kind {
	case TokenSemicolon:
		return p.parseEmptyStatement()
	case TokenLBrace:
		return p.parseBlockStatement()
	case TokenLet:
		return p.parseVariableDeclaration(true)
	case TokenIf:
		return p.parseIfStatement()
	case TokenWhile:
		return p.parseWhileStatement()
	case TokenDo:
		return p.parseDoWhileStatement()
	case TokenFor:
		return p.parseForStatement()
	case TokenDef:
		return p.parseFunctionDeclaration()
	case TokenReturn:
		return p.parseReturnStatement()
	case TokenClass:
		return p.parseClassDeclaration()
	}
	return p.parseExpressionStatement(true)
}

func (p *Parser) parseEmptyStatement() (*ast.Empty, error) {
	if _, err := p.eat(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.Empty{}, nil
}

func (p *Parser) parseBlockStatement() (*ast.Block, error) {
	if _, err := p.eat(TokenLBrace); err != nil {
		return nil, err
	}
	body, err := p.parseStatementList(TokenRBrace)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenRBrace); err != nil {
		return nil, err
	}
	return &ast.Block{Body: body}, nil
}

// parseVariableDeclaration parses `let a: T = v, b: U`. The trailing
// semicolon is consumed only when terminated is set; a for header consumes
// its own separators.
func (p *Parser) parseVariableDeclaration(terminated bool) (*ast.VariableDeclaration, error) {
	if _, err := p.eat(TokenLet); err != nil {
		return nil, err
	}
	decl := &ast.VariableDeclaration{}
	for {
		init, err := p.parseVariableInitialization()
		if err != nil {
			return nil, err
		}
		decl.Variables = append(decl.Variables, init)
		if !p.is(TokenComma) {
			break
		}
		if _, err := p.eat(TokenComma); err != nil {
			return nil, err
		}
	}
	if terminated {
		if _, err := p.eat(TokenSemicolon); err != nil {
			return nil, err
		}
	}
	return decl, nil
}

func (p *Parser) parseVariableInitialization() (*ast.VariableInitialization, error) {
	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	typ, err := p.parseTypeAnnotation("variable " + id.Name)
	if err != nil {
		return nil, err
	}
	init := &ast.VariableInitialization{Identifier: id, TypeAnnotation: typ}
	if p.is(TokenAssign) {
		if _, err := p.eat(TokenAssign); err != nil {
			return nil, err
		}
		if init.Initializer, err = p.parseAssignmentExpression(); err != nil {
			return nil, err
		}
	}
	return init, nil
}

func (p *Parser) parseIfStatement() (*ast.If, error) {
	if _, err := p.eat(TokenIf); err != nil {
		return nil, err
	}
	cond, err := p.parseParenthesizedCondition()
	if err != nil {
		return nil, err
	}
	consequent, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{Condition: cond, Consequent: consequent}
	if p.is(TokenElse) {
		if _, err := p.eat(TokenElse); err != nil {
			return nil, err
		}
		if stmt.Alternative, err = p.parseStatement(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) parseWhileStatement() (*ast.While, error) {
	if _, err := p.eat(TokenWhile); err != nil {
		return nil, err
	}
	cond, err := p.parseParenthesizedCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Condition: cond, Body: body}, nil
}

func (p *Parser) parseDoWhileStatement() (*ast.DoWhile, error) {
	if _, err := p.eat(TokenDo); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenWhile); err != nil {
		return nil, err
	}
	cond, err := p.parseParenthesizedCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.DoWhile{Body: body, Condition: cond}, nil
}

func (p *Parser) parseParenthesizedCondition() (ast.Expression, error) {
	if _, err := p.eat(TokenLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenRParen); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseForStatement() (*ast.For, error) {
	if _, err := p.eat(TokenFor); err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenLParen); err != nil {
		return nil, err
	}

	stmt := &ast.For{}
	var err error
	switch {
	case p.is(TokenLet):
		stmt.Initializer, err = p.parseVariableDeclaration(false)
	case !p.is(TokenSemicolon):
		stmt.Initializer, err = p.parseExpressionStatement(false)
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenSemicolon); err != nil {
		return nil, err
	}

	if !p.is(TokenSemicolon) {
		if stmt.Condition, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.eat(TokenSemicolon); err != nil {
		return nil, err
	}

	if !p.is(TokenRParen) {
		if stmt.Increment, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.eat(TokenRParen); err != nil {
		return nil, err
	}

	if stmt.Body, err = p.parseStatement(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseFunctionDeclaration() (*ast.FunctionDeclaration, error) {
	if _, err := p.eat(TokenDef); err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenLParen); err != nil {
		return nil, err
	}
	decl := &ast.FunctionDeclaration{Name: name}
	if !p.is(TokenRParen) {
		if decl.Parameters, err = p.parseParameterList(); err != nil {
			return nil, err
		}
	}
	if _, err := p.eat(TokenRParen); err != nil {
		return nil, err
	}

	decl.ReturnType = &ast.VoidType{}
	if p.is(TokenColon) {
		if _, err := p.eat(TokenColon); err != nil {
			return nil, err
		}
		if decl.ReturnType, err = p.parseType(); err != nil {
			return nil, err
		}
	}

	if decl.Body, err = p.parseBlockStatement(); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseParameterList() ([]*ast.Parameter, error) {
	var params []*ast.Parameter
	for {
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		typ, err := p.parseTypeAnnotation("parameter " + name.Name)
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.Parameter{Name: name, Type: typ})
		if !p.is(TokenComma) {
			return params, nil
		}
		if _, err := p.eat(TokenComma); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseReturnStatement() (*ast.Return, error) {
	if _, err := p.eat(TokenReturn); err != nil {
		return nil, err
	}
	stmt := &ast.Return{}
	if !p.is(TokenSemicolon) {
		var err error
		if stmt.Argument, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.eat(TokenSemicolon); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseClassDeclaration() (*ast.ClassDeclaration, error) {
	if _, err := p.eat(TokenClass); err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	decl := &ast.ClassDeclaration{Name: name}
	if p.is(TokenExtends) {
		if _, err := p.eat(TokenExtends); err != nil {
			return nil, err
		}
		if decl.SuperClass, err = p.parseIdentifier(); err != nil {
			return nil, err
		}
	}
	if decl.Body, err = p.parseBlockStatement(); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseExpressionStatement parses `expr ;`, leaving the semicolon in place
// when terminated is false.
func (p *Parser) parseExpressionStatement(terminated bool) (*ast.ExpressionStatement, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if terminated {
		if _, err := p.eat(TokenSemicolon); err != nil {
			return nil, err
		}
	}
	return &ast.ExpressionStatement{Expression: expr}, nil
}
