package parser

import (
	"fmt"
	"strings"
)

type ErrorKind int

const (
	// Lexical
	UnexpectedCharacter ErrorKind = iota
	UnterminatedString
	UnterminatedComment
	InvalidNumber

	// Syntactic
	UnexpectedToken

	// Checked while parsing
	InvalidAssignmentTarget
	TypeAnnotationExpected
	UnknownOperator
	NestingTooDeep
)

var errorKindNames = map[ErrorKind]string{
	UnexpectedCharacter:     "UnexpectedCharacter",
	UnterminatedString:      "UnterminatedString",
	UnterminatedComment:     "UnterminatedComment",
	InvalidNumber:           "InvalidNumber",
	UnexpectedToken:         "UnexpectedToken",
	InvalidAssignmentTarget: "InvalidAssignmentTarget",
	TypeAnnotationExpected:  "TypeAnnotationExpected",
	UnknownOperator:         "UnknownOperator",
	NestingTooDeep:          "NestingTooDeep",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

func (k ErrorKind) IsLexical() bool {
	return k <= InvalidNumber
}

// Error is the single error type returned by the lexer and the parser. Pos
// is the start of the offending construct.
type Error struct {
	Kind     ErrorKind
	Pos      Position
	Char     rune     // UnexpectedCharacter
	Got      string   // UnexpectedToken
	Expected []string // UnexpectedToken
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Message)
}

func newUnexpectedToken(tok Token, expected ...TokenKind) *Error {
	names := make([]string, len(expected))
	for i, kind := range expected {
		names[i] = kind.String()
	}
	return &Error{
		Kind:     UnexpectedToken,
		Pos:      tok.Span.Start,
		Got:      tok.Kind.String(),
		Expected: names,
		Message:  fmt.Sprintf("Unexpected token: %s, expected: %s", tok.Kind, strings.Join(names, " or ")),
	}
}
