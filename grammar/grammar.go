// Package grammar holds the EBNF grammar of the kestrel language and two
// small interpreters for it: a reference lexer driven by the lexical
// productions and a recognizer driven by the syntactic ones.
//
// The hand-written lexer and parser in package parser are the real front
// end. This package exists so the grammar stays checkable: ebnf.Verify
// proves it is closed and reachable, and the tests require that whatever
// the parser accepts the grammar accepts too.
package grammar

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Start is the start production of the grammar.
const Start = "Program"

// Filename is reported in positions of the embedded grammar.
const Filename = "grammar.ebnf"

//go:embed grammar.ebnf
var Source string

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	g, err := ebnf.Parse(Filename, strings.NewReader(Source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// LoadFile parses an EBNF grammar from a file.
func LoadFile(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	g, err := ebnf.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Verify loads the embedded grammar and checks it from Start.
func Verify() error {
	g, err := Load()
	if err != nil {
		return err
	}
	if err := ebnf.Verify(g, Start); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}

func isLexical(name string) bool {
	return name != "" && !(name[0] >= 'A' && name[0] <= 'Z')
}
