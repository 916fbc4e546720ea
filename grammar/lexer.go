package grammar

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Position represents a location in source code.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a token recognised by the grammar. Kind is the literal text for
// tokens spelled out in syntactic productions (keywords, operators,
// punctuation) and the production name for lexical productions.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

const (
	KindEOF   = "EOF"
	KindError = "ERROR"
)

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// Lexer tokenizes input using the lexical side of a grammar.
type Lexer struct {
	grammar  ebnf.Grammar
	literals []string
	lexical  []string
	input    []byte
	filename string
	pos      int
	line     int
	column   int
	memo     map[memoKey]int  // match length, -1 for no match
	visiting map[memoKey]bool // cycle detection
}

// NewLexer creates a lexer for the given grammar and input.
func NewLexer(g ebnf.Grammar, input []byte, filename string) *Lexer {
	literals, lexical := tokenSet(g)
	return &Lexer{
		grammar:  g,
		literals: literals,
		lexical:  lexical,
		input:    input,
		filename: filename,
		line:     1,
		column:   1,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

// tokenSet collects the literal tokens used by syntactic productions and the
// lexical productions they reference. Both lists are sorted so matching is
// deterministic.
func tokenSet(g ebnf.Grammar) (literals, lexical []string) {
	seenLiteral := make(map[string]bool)
	seenLexical := make(map[string]bool)

	var walk func(expr ebnf.Expression)
	walk = func(expr ebnf.Expression) {
		switch e := expr.(type) {
		case *ebnf.Token:
			if e.String != "" && !seenLiteral[e.String] {
				seenLiteral[e.String] = true
				literals = append(literals, e.String)
			}
		case *ebnf.Name:
			if isLexical(e.String) && !seenLexical[e.String] {
				seenLexical[e.String] = true
				lexical = append(lexical, e.String)
			}
		case ebnf.Sequence:
			for _, item := range e {
				walk(item)
			}
		case ebnf.Alternative:
			for _, alt := range e {
				walk(alt)
			}
		case *ebnf.Group:
			walk(e.Body)
		case *ebnf.Option:
			walk(e.Body)
		case *ebnf.Repetition:
			walk(e.Body)
		}
	}

	for name, prod := range g {
		if !isLexical(name) {
			walk(prod.Expr)
		}
	}
	sort.Strings(literals)
	sort.Strings(lexical)
	return literals, lexical
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
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

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, size := utf8.DecodeRune(l.input[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

// skipTrivia skips whitespace and comments, which the grammar leaves
// implicit.
func (l *Lexer) skipTrivia() error {
	for {
		start := l.pos
		for l.pos < len(l.input) {
			r, _ := utf8.DecodeRune(l.input[l.pos:])
			if !unicode.IsSpace(r) {
				break
			}
			l.advance()
		}
		switch {
		case l.peek() == '/' && l.peekN(1) == '/':
			for l.pos < len(l.input) && l.peek() != '\n' {
				l.advance()
			}
		case l.peek() == '/' && l.peekN(1) == '*':
			commentStart := l.Position()
			l.advance()
			l.advance()
			for !(l.peek() == '*' && l.peekN(1) == '/') {
				if l.pos >= len(l.input) {
					return fmt.Errorf("%s: comment is never closed", commentStart)
				}
				l.advance()
			}
			l.advance()
			l.advance()
		}
		if l.pos == start {
			return nil
		}
	}
}

// NextToken returns the next token from the input. It takes the longest
// match among the literal tokens and lexical productions; on a tie the
// literal wins, so keywords are not read as identifiers.
func (l *Lexer) NextToken() (Token, error) {
	if err := l.skipTrivia(); err != nil {
		return Token{Kind: KindError, Position: l.Position()}, err
	}
	if l.pos >= len(l.input) {
		return Token{Kind: KindEOF, Position: l.Position()}, io.EOF
	}

	startPos := l.Position()
	startOffset := l.pos

	// Clear memoization cache for each new token (positions change)
	l.memo = make(map[memoKey]int)

	var bestKind string
	bestLen := 0

	rest := string(l.input[startOffset:])
	for _, lit := range l.literals {
		if len(lit) > bestLen && strings.HasPrefix(rest, lit) {
			bestLen = len(lit)
			bestKind = lit
		}
	}
	for _, name := range l.lexical {
		l.visiting = make(map[memoKey]bool)
		if n := l.matchName(name, startOffset); n > bestLen {
			bestLen = n
			bestKind = name
		}
	}

	if bestLen == 0 {
		r := l.advance()
		return Token{
			Kind:     KindError,
			Literal:  string(r),
			Position: startPos,
		}, nil
	}

	for l.pos < startOffset+bestLen {
		l.advance()
	}

	return Token{
		Kind:     bestKind,
		Literal:  string(l.input[startOffset : startOffset+bestLen]),
		Position: startPos,
	}, nil
}

// match returns the length of the match of expr at offset, or -1 if expr
// does not match there.
func (l *Lexer) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		if strings.HasPrefix(string(l.input[offset:]), e.String) {
			return len(e.String)
		}
		return -1

	case *ebnf.Range:
		return l.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := l.match(item, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := l.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := l.match(e.Body, offset+total)
			if n <= 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		if n := l.match(e.Body, offset); n > 0 {
			return n
		}
		return 0

	case *ebnf.Group:
		return l.match(e.Body, offset)

	case *ebnf.Name:
		return l.matchName(e.String, offset)
	}
	return -1
}

// matchName matches a named production with memoization and cycle detection.
func (l *Lexer) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if result, ok := l.memo[key]; ok {
		return result
	}
	// Left recursion: treat the inner occurrence as a failed match.
	if l.visiting[key] {
		return -1
	}

	prod, ok := l.grammar[name]
	if !ok {
		l.memo[key] = -1
		return -1
	}

	l.visiting[key] = true
	result := l.match(prod.Expr, offset)
	delete(l.visiting, key)

	l.memo[key] = result
	return result
}

// matchRange matches a single character range such as "a" … "z".
func (l *Lexer) matchRange(begin, end string, offset int) int {
	if offset >= len(l.input) {
		return -1
	}
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	r, size := utf8.DecodeRune(l.input[offset:])
	if r >= lo && r <= hi {
		return size
	}
	return -1
}

// Tokenize reads all tokens from input. The last token has kind KindEOF
// unless an error stopped the scan.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			tokens = append(tokens, tok)
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}
