package parser

import (
	"fmt"

	"github.com/dhamidi/kestrel/lang/ast"
)

// DefaultMaxDepth bounds how deeply statements and expressions may nest
// before the parser gives up with NestingTooDeep.
const DefaultMaxDepth = 256

type Option func(*Parser)

// WithFile sets the file name reported in positions.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// Parser builds an AST from source text using one token of lookahead. A
// Parser is single use and not safe for concurrent use.
type Parser struct {
	file      string
	maxDepth  int
	input     string
	lexer     *Lexer
	lookahead Token
	depth     int
	err       error
}

// New creates a parser over source and reads the first token.
func New(source string, opts ...Option) *Parser {
	p := &Parser{
		maxDepth: DefaultMaxDepth,
		input:    source,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.lexer = NewLexer(source, p.file)
	p.lookahead, p.err = p.lexer.NextToken()
	return p
}

// ParseProgram parses a complete source text.
func ParseProgram(source string, opts ...Option) (*ast.Program, error) {
	return New(source, opts...).ParseProgram()
}

// ParseExpression parses source as a single expression.
func ParseExpression(source string, opts ...Option) (ast.Expression, error) {
	return New(source, opts...).ParseExpression()
}

func (p *Parser) ParseProgram() (*ast.Program, error) {
	if p.err != nil {
		return nil, p.err
	}
	body, err := p.parseStatementList(TokenEnd)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Body: body}, nil
}

// ParseExpression parses one expression and requires the input to end
// after it.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	if p.err != nil {
		return nil, p.err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenEnd); err != nil {
		return nil, err
	}
	return expr, nil
}

// eat consumes the lookahead if it has the given kind.
func (p *Parser) eat(kind TokenKind) (Token, error) {
	return p.eatAnyOf(kind)
}

func (p *Parser) eatAnyOf(kinds ...TokenKind) (Token, error) {
	tok := p.lookahead
	if !p.isAny(kinds...) {
		return tok, newUnexpectedToken(tok, kinds...)
	}
	next, err := p.lexer.NextToken()
	if err != nil {
		return tok, err
	}
	p.lookahead = next
	return tok, nil
}

func (p *Parser) is(kind TokenKind) bool {
	return p.lookahead.Kind == kind
}

func (p *Parser) isAny(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.is(kind) {
			return true
		}
	}
	return false
}

func (p *Parser) isLiteralToken() bool {
	return p.isAny(literalKinds...)
}

func (p *Parser) isAssignmentOperator() bool {
	return p.isAny(assignmentKinds...)
}

func (p *Parser) lexeme(tok Token) string {
	return tok.Lexeme(p.input)
}

// enter guards recursion depth; every successful call must be paired with
// leave.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return &Error{
			Kind:    NestingTooDeep,
			Pos:     p.lookahead.Span.Start,
			Message: fmt.Sprintf("nesting exceeds %d levels", p.maxDepth),
		}
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

var literalKinds = []TokenKind{TokenNumber, TokenString, TokenTrue, TokenFalse, TokenNil}

var assignmentKinds = []TokenKind{
	TokenAssign, TokenPlusAssign, TokenMinusAssign, TokenStarAssign, TokenSlashAssign,
}
