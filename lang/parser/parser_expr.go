package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/kestrel/lang/ast"
)

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignmentExpression()
}

// parseAssignmentExpression is right-associative: `a = b = c` assigns
// `b = c` to a.
func (p *Parser) parseAssignmentExpression() (ast.Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	start := p.lookahead.Span.Start
	left, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if !p.isAssignmentOperator() {
		return left, nil
	}
	if !ast.IsLValue(left) {
		return nil, &Error{
			Kind:    InvalidAssignmentTarget,
			Pos:     start,
			Message: fmt.Sprintf("cannot assign with %s to this expression", p.lookahead.Kind),
		}
	}
	tok, err := p.eatAnyOf(assignmentKinds...)
	if err != nil {
		return nil, err
	}
	op, ok := assignmentOperators[tok.Kind]
	if !ok {
		return nil, p.unknownOperator(tok)
	}
	right, err := p.parseAssignmentExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Operator: op, Left: left, Right: right}, nil
}

func (p *Parser) parseLogicalOr() (ast.Expression, error) {
	return p.parseLogical(TokenOr, ast.Or, (*Parser).parseLogicalAnd)
}

func (p *Parser) parseLogicalAnd() (ast.Expression, error) {
	return p.parseLogical(TokenAnd, ast.And, (*Parser).parseEquality)
}

func (p *Parser) parseLogical(kind TokenKind, op ast.LogicalOperator, next func(*Parser) (ast.Expression, error)) (ast.Expression, error) {
	left, err := next(p)
	if err != nil {
		return nil, err
	}
	for p.is(kind) {
		if _, err := p.eat(kind); err != nil {
			return nil, err
		}
		right, err := next(p)
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{Operator: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.parseBinary(equalityOperators, (*Parser).parseRelational)
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	return p.parseBinary(relationalOperators, (*Parser).parseAdditive)
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	return p.parseBinary(additiveOperators, (*Parser).parseFactor)
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	return p.parseBinary(factorOperators, (*Parser).parseUnary)
}

// parseBinary handles one left-associative precedence level.
func (p *Parser) parseBinary(operators map[TokenKind]ast.BinaryOperator, next func(*Parser) (ast.Expression, error)) (ast.Expression, error) {
	left, err := next(p)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := operators[p.lookahead.Kind]
		if !ok {
			return left, nil
		}
		if _, err := p.eat(p.lookahead.Kind); err != nil {
			return nil, err
		}
		right, err := next(p)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Operator: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if !p.isAny(TokenPlus, TokenMinus, TokenNot) {
		return p.parseLeftHandSide()
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok, err := p.eatAnyOf(TokenPlus, TokenMinus, TokenNot)
	if err != nil {
		return nil, err
	}
	op, ok := unaryOperators[tok.Kind]
	if !ok {
		return nil, p.unknownOperator(tok)
	}
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Operator: op, Operand: operand}, nil
}

func (p *Parser) parseLeftHandSide() (ast.Expression, error) {
	return p.parseCallMember()
}

// parseCallMember parses a primary followed by any mix of `.name`,
// `[index]` and `(args)` suffixes, so `x[i](a, b).k` and `f()()` both work.
func (p *Parser) parseCallMember() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.lookahead.Kind {
		case TokenDot, TokenLBracket:
			if expr, err = p.parseMemberSuffix(expr); err != nil {
				return nil, err
			}
		case TokenLParen:
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = &ast.Call{Callee: expr, Arguments: args}
		default:
			return expr, nil
		}
	}
}

// parseMember parses a primary followed by member accesses only. It is the
// callee of a new expression, whose argument list must not be mistaken for
// a call.
func (p *Parser) parseMember() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.isAny(TokenDot, TokenLBracket) {
		if expr, err = p.parseMemberSuffix(expr); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) parseMemberSuffix(object ast.Expression) (ast.Expression, error) {
	if p.is(TokenDot) {
		if _, err := p.eat(TokenDot); err != nil {
			return nil, err
		}
		prop, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		return &ast.Member{Object: object, Property: prop}, nil
	}

	if _, err := p.eat(TokenLBracket); err != nil {
		return nil, err
	}
	prop, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenRBracket); err != nil {
		return nil, err
	}
	return &ast.Member{Computed: true, Object: object, Property: prop}, nil
}

func (p *Parser) parseArguments() ([]ast.Expression, error) {
	if _, err := p.eat(TokenLParen); err != nil {
		return nil, err
	}
	var args []ast.Expression
	if !p.is(TokenRParen) {
		for {
			arg, err := p.parseAssignmentExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.is(TokenComma) {
				break
			}
			if _, err := p.eat(TokenComma); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.eat(TokenRParen); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	if p.isLiteralToken() {
		return p.parseLiteral()
	}

	switch p.lookahead.Kind {
	case TokenLParen:
		if _, err := p.eat(TokenLParen); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil
	case TokenIdent:
		return p.parseIdentifier()
	case TokenThis:
		if _, err := p.eat(TokenThis); err != nil {
			return nil, err
		}
		return &ast.This{}, nil
	case TokenSuper:
		if _, err := p.eat(TokenSuper); err != nil {
			return nil, err
		}
		return &ast.Super{}, nil
	case TokenNew:
		return p.parseNewExpression()
	}

	return nil, newUnexpectedToken(p.lookahead, primaryKinds...)
}

func (p *Parser) parseNewExpression() (*ast.New, error) {
	if _, err := p.eat(TokenNew); err != nil {
		return nil, err
	}
	callee, err := p.parseMember()
	if err != nil {
		return nil, err
	}
	args, err := p.parseArguments()
	if err != nil {
		return nil, err
	}
	return &ast.New{Callee: callee, Arguments: args}, nil
}

func (p *Parser) parseLiteral() (ast.Expression, error) {
	tok, err := p.eatAnyOf(literalKinds...)
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenNumber:
		return p.numericLiteral(tok)
	case TokenString:
		text := p.lexeme(tok)
		return &ast.StringLiteral{Value: text[1 : len(text)-1]}, nil
	case TokenTrue:
		return &ast.BooleanLiteral{Value: true}, nil
	case TokenFalse:
		return &ast.BooleanLiteral{Value: false}, nil
	}
	return &ast.NilLiteral{}, nil
}

// numericLiteral converts a decimal lexeme to an int32. Fractional lexemes
// are valid tokens but not valid values.
func (p *Parser) numericLiteral(tok Token) (*ast.NumericLiteral, error) {
	text := p.lexeme(tok)
	if strings.Contains(text, ".") {
		return nil, &Error{
			Kind:    InvalidNumber,
			Pos:     tok.Span.Start,
			Message: fmt.Sprintf("fractional number %s is not supported", text),
		}
	}
	value, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return nil, &Error{
			Kind:    InvalidNumber,
			Pos:     tok.Span.Start,
			Message: fmt.Sprintf("number %s does not fit in 32 bits", text),
		}
	}
	return &ast.NumericLiteral{Value: int32(value)}, nil
}

func (p *Parser) parseIdentifier() (*ast.Identifier, error) {
	tok, err := p.eat(TokenIdent)
	if err != nil {
		return nil, err
	}
	return &ast.Identifier{Name: p.lexeme(tok)}, nil
}

func (p *Parser) unknownOperator(tok Token) *Error {
	return &Error{
		Kind:    UnknownOperator,
		Pos:     tok.Span.Start,
		Got:     tok.Kind.String(),
		Message: fmt.Sprintf("unknown operator %s", p.lexeme(tok)),
	}
}

var primaryKinds = []TokenKind{
	TokenNumber, TokenString, TokenTrue, TokenFalse, TokenNil,
	TokenLParen, TokenIdent, TokenThis, TokenSuper, TokenNew,
}

var assignmentOperators = map[TokenKind]ast.AssignmentOperator{
	TokenAssign:      ast.Assign,
	TokenPlusAssign:  ast.AssignAdd,
	TokenMinusAssign: ast.AssignSubtract,
	TokenStarAssign:  ast.AssignMultiply,
	TokenSlashAssign: ast.AssignDivide,
}

var equalityOperators = map[TokenKind]ast.BinaryOperator{
	TokenEQ: ast.Equal,
	TokenNE: ast.NotEqual,
}

var relationalOperators = map[TokenKind]ast.BinaryOperator{
	TokenGT: ast.GreaterThan,
	TokenGE: ast.GreaterThanOrEqualTo,
	TokenLT: ast.LessThan,
	TokenLE: ast.LessThanOrEqualTo,
}

var additiveOperators = map[TokenKind]ast.BinaryOperator{
	TokenPlus:  ast.Add,
	TokenMinus: ast.Subtract,
}

var factorOperators = map[TokenKind]ast.BinaryOperator{
	TokenStar:  ast.Multiply,
	TokenSlash: ast.Divide,
}

var unaryOperators = map[TokenKind]ast.UnaryOperator{
	TokenPlus:  ast.Plus,
	TokenMinus: ast.Minus,
	TokenNot:   ast.Not,
}
