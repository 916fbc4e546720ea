package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Lexer turns source text into tokens on demand. Whitespace and comments are
// skipped and never returned. Once the lexer reports an error it keeps
// returning that error.
type Lexer struct {
	input  string
	file   string
	pos    int
	line   int
	column int
	peeked *scanResult
	err    error
}

type scanResult struct {
	tok Token
	err error
}

func NewLexer(input string, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// NextToken returns the next significant token, or a token of kind TokenEnd
// once the input is exhausted.
func (l *Lexer) NextToken() (Token, error) {
	if l.peeked != nil {
		r := l.peeked
		l.peeked = nil
		return r.tok, r.err
	}
	return l.scan()
}

// PeekToken returns what NextToken would return without consuming it.
func (l *Lexer) PeekToken() (Token, error) {
	if l.peeked == nil {
		tok, err := l.scan()
		l.peeked = &scanResult{tok: tok, err: err}
	}
	return l.peeked.tok, l.peeked.err
}

// Tokenize lexes all of input. The returned tokens end with the TokenEnd
// token unless an error stopped the scan early.
func Tokenize(input string, file string) ([]Token, error) {
	l := NewLexer(input, file)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEnd {
			return tokens, nil
		}
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) fail(err *Error) (Token, error) {
	l.err = err
	return Token{}, err
}

func (l *Lexer) scan() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}
	if err := l.skipTrivia(); err != nil {
		return l.fail(err)
	}

	start := l.Position()
	if l.atEnd() {
		return Token{Kind: TokenEnd, Span: Span{Start: start, End: start}}, nil
	}

	ch := l.peek()
	switch {
	case ch == '"' || ch == '\'':
		return l.scanString(start)
	case isDigit(ch):
		return l.scanNumber(start), nil
	case isLetter(ch):
		return l.scanIdentOrKeyword(start), nil
	}
	return l.scanOperator(start)
}

func (l *Lexer) skipTrivia() *Error {
	for {
		start := l.pos
		for !l.atEnd() {
			r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
			if !unicode.IsSpace(r) {
				break
			}
			l.advance()
		}
		if l.peek() == '/' && l.peekN(1) == '/' {
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		}
		if l.peek() == '/' && l.peekN(1) == '*' {
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		}
		if l.pos == start {
			return nil
		}
	}
}

func (l *Lexer) skipBlockComment() *Error {
	start := l.Position()
	l.advanceN(2)
	for {
		if l.atEnd() {
			return &Error{
				Kind:    UnterminatedComment,
				Pos:     start,
				Message: "comment is never closed",
			}
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			return nil
		}
		l.advance()
	}
}

func (l *Lexer) scanString(start Position) (Token, error) {
	quote := l.peek()
	l.advance()
	for {
		if l.atEnd() {
			return l.fail(&Error{
				Kind:    UnterminatedString,
				Pos:     start,
				Message: "string literal is never closed",
			})
		}
		ch := l.peek()
		if ch == '\\' {
			l.advance()
			if l.atEnd() {
				continue
			}
			l.advance()
			continue
		}
		l.advance()
		if ch == quote {
			return l.token(TokenString, start), nil
		}
	}
}

func (l *Lexer) scanNumber(start Position) Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	return l.token(TokenNumber, start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for isLetterOrDigit(l.peek()) {
		l.advance()
	}
	kind := LookupKeyword(l.input[start.Offset:l.pos])
	return l.token(kind, start)
}

func (l *Lexer) scanOperator(start Position) (Token, error) {
	ch := l.peek()

	switch ch {
	case ';':
		l.advance()
		return l.token(TokenSemicolon, start), nil
	case ':':
		l.advance()
		return l.token(TokenColon, start), nil
	case '.':
		l.advance()
		return l.token(TokenDot, start), nil
	case ',':
		l.advance()
		return l.token(TokenComma, start), nil
	case '{':
		l.advance()
		return l.token(TokenLBrace, start), nil
	case '}':
		l.advance()
		return l.token(TokenRBrace, start), nil
	case '(':
		l.advance()
		return l.token(TokenLParen, start), nil
	case ')':
		l.advance()
		return l.token(TokenRParen, start), nil
	case '[':
		l.advance()
		return l.token(TokenLBracket, start), nil
	case ']':
		l.advance()
		return l.token(TokenRBracket, start), nil

	case '=':
		return l.withOptionalEquals(start, TokenAssign, TokenEQ), nil
	case '!':
		return l.withOptionalEquals(start, TokenNot, TokenNE), nil
	case '+':
		return l.withOptionalEquals(start, TokenPlus, TokenPlusAssign), nil
	case '-':
		return l.withOptionalEquals(start, TokenMinus, TokenMinusAssign), nil
	case '*':
		return l.withOptionalEquals(start, TokenStar, TokenStarAssign), nil
	case '/':
		return l.withOptionalEquals(start, TokenSlash, TokenSlashAssign), nil
	case '>':
		return l.withOptionalEquals(start, TokenGT, TokenGE), nil
	case '<':
		return l.withOptionalEquals(start, TokenLT, TokenLE), nil

	case '&':
		if l.peekN(1) == '&' {
			l.advanceN(2)
			return l.token(TokenAnd, start), nil
		}
	case '|':
		if l.peekN(1) == '|' {
			l.advanceN(2)
			return l.token(TokenOr, start), nil
		}
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return l.fail(&Error{
		Kind:    UnexpectedCharacter,
		Pos:     start,
		Char:    r,
		Message: fmt.Sprintf("unexpected character %q", r),
	})
}

func (l *Lexer) withOptionalEquals(start Position, single, withEquals TokenKind) Token {
	if l.peekN(1) == '=' {
		l.advanceN(2)
		return l.token(withEquals, start)
	}
	l.advance()
	return l.token(single, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	return Token{
		Kind: kind,
		Span: Span{Start: start, End: l.Position()},
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isLetterOrDigit(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}
