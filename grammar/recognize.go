package grammar

import (
	"fmt"

	"golang.org/x/exp/ebnf"
)

type recognizer struct {
	grammar  ebnf.Grammar
	tokens   []Token
	memo     map[memoKey]int
	visiting map[memoKey]bool
	furthest int
}

// Recognize reports whether tokens, as produced by Lexer.Tokenize, form a
// sentence of the production start. Alternatives take the longest match and
// repetitions are greedy, which is enough for a grammar that a one-token
// lookahead parser can handle.
func Recognize(g ebnf.Grammar, tokens []Token, start string) error {
	if _, ok := g[start]; !ok {
		return fmt.Errorf("production %q not found in grammar", start)
	}

	var input []Token
	for _, tok := range tokens {
		if tok.Kind == KindEOF {
			break
		}
		input = append(input, tok)
	}

	r := &recognizer{
		grammar:  g,
		tokens:   input,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
	n := r.matchName(start, 0)
	if n == len(input) {
		return nil
	}

	at := r.furthest
	if n > at {
		at = n
	}
	if at >= len(input) {
		return fmt.Errorf("unexpected end of input")
	}
	tok := input[at]
	return fmt.Errorf("%s: unexpected %s %q", tok.Position, tok.Kind, tok.Literal)
}

// match returns the number of tokens expr consumes starting at index i, or
// -1 if it does not match there.
func (r *recognizer) match(expr ebnf.Expression, i int) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		return r.matchKind(e.String, i)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := r.match(item, i+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := r.match(alt, i); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := r.match(e.Body, i+total)
			if n <= 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		if n := r.match(e.Body, i); n > 0 {
			return n
		}
		return 0

	case *ebnf.Group:
		return r.match(e.Body, i)

	case *ebnf.Name:
		if isLexical(e.String) {
			return r.matchKind(e.String, i)
		}
		return r.matchName(e.String, i)
	}
	return -1
}

// matchKind consumes one token of the given kind.
func (r *recognizer) matchKind(kind string, i int) int {
	if i > r.furthest {
		r.furthest = i
	}
	if i < len(r.tokens) && r.tokens[i].Kind == kind {
		return 1
	}
	return -1
}

func (r *recognizer) matchName(name string, i int) int {
	key := memoKey{name: name, offset: i}
	if result, ok := r.memo[key]; ok {
		return result
	}
	if r.visiting[key] {
		return -1
	}

	prod, ok := r.grammar[name]
	if !ok {
		r.memo[key] = -1
		return -1
	}

	r.visiting[key] = true
	result := r.match(prod.Expr, i)
	delete(r.visiting, key)

	r.memo[key] = result
	return result
}
