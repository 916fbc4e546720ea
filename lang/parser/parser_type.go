package parser

import (
	"fmt"

	"github.com/dhamidi/kestrel/lang/ast"
)

// parseTypeAnnotation parses the `: Type` that must follow a variable or
// parameter name. subject names the declaration in the error message.
func (p *Parser) parseTypeAnnotation(subject string) (ast.Type, error) {
	if !p.is(TokenColon) {
		tok := p.lookahead
		return nil, &Error{
			Kind:     TypeAnnotationExpected,
			Pos:      tok.Span.Start,
			Got:      tok.Kind.String(),
			Expected: []string{TokenColon.String()},
			Message:  fmt.Sprintf("type annotation expected for %s, found %s", subject, tok.Kind),
		}
	}
	if _, err := p.eat(TokenColon); err != nil {
		return nil, err
	}
	return p.parseType()
}

// parseType parses
//
//	Type → 'number' | 'string' | 'boolean' | 'void'
//	     | Identifier ('[' Type (',' Type)* ']')?
//	     | '[' Type ']'
func (p *Parser) parseType() (ast.Type, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.lookahead.Kind {
	case TokenNumberType, TokenStringType, TokenBooleanType:
		tok, err := p.eat(p.lookahead.Kind)
		if err != nil {
			return nil, err
		}
		return &ast.PrimitiveType{Kind: primitiveTypes[tok.Kind]}, nil
	case TokenVoid:
		if _, err := p.eat(TokenVoid); err != nil {
			return nil, err
		}
		return &ast.VoidType{}, nil
	case TokenLBracket:
		if _, err := p.eat(TokenLBracket); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(TokenRBracket); err != nil {
			return nil, err
		}
		return &ast.ArrayType{Element: elem}, nil
	case TokenIdent:
		return p.parseNamedType()
	}

	return nil, newUnexpectedToken(p.lookahead, typeKinds...)
}

// parseNamedType parses a class name, optionally applied to type arguments.
func (p *Parser) parseNamedType() (ast.Type, error) {
	tok, err := p.eat(TokenIdent)
	if err != nil {
		return nil, err
	}
	name := p.lexeme(tok)
	if !p.is(TokenLBracket) {
		return &ast.ClassType{Name: name}, nil
	}

	if _, err := p.eat(TokenLBracket); err != nil {
		return nil, err
	}
	generic := &ast.GenericType{Base: name}
	for {
		arg, err := p.parseType()
		if err != nil {
			return nil, err
		}
		generic.Args = append(generic.Args, arg)
		if !p.is(TokenComma) {
			break
		}
		if _, err := p.eat(TokenComma); err != nil {
			return nil, err
		}
	}
	if _, err := p.eat(TokenRBracket); err != nil {
		return nil, err
	}
	return generic, nil
}

var primitiveTypes = map[TokenKind]ast.PrimitiveKind{
	TokenNumberType:  ast.Number,
	TokenStringType:  ast.String,
	TokenBooleanType: ast.Boolean,
}

var typeKinds = []TokenKind{
	TokenNumberType, TokenStringType, TokenBooleanType, TokenVoid, TokenLBracket, TokenIdent,
}
