package parser

import (
	"fmt"
	"sort"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEnd TokenKind = iota
	TokenWhitespace
	TokenComment

	// Punctuation
	TokenSemicolon
	TokenColon
	TokenDot
	TokenComma
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket

	// Keywords
	TokenLet
	TokenIf
	TokenElse
	TokenWhile
	TokenDo
	TokenFor
	TokenDef
	TokenReturn
	TokenClass
	TokenExtends
	TokenThis
	TokenSuper
	TokenNew
	TokenType
	TokenNumberType
	TokenStringType
	TokenBooleanType
	TokenVoid

	// Literals
	TokenTrue
	TokenFalse
	TokenNil
	TokenNumber
	TokenString
	TokenIdent

	// Operators
	TokenAssign
	TokenEQ
	TokenNE
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenGT
	TokenGE
	TokenLT
	TokenLE
	TokenAnd
	TokenOr
	TokenNot
)

var tokenKindNames = map[TokenKind]string{
	TokenEnd:         "End",
	TokenWhitespace:  "Whitespace",
	TokenComment:     "Comment",
	TokenSemicolon:   ";",
	TokenColon:       ":",
	TokenDot:         ".",
	TokenComma:       ",",
	TokenLBrace:      "{",
	TokenRBrace:      "}",
	TokenLParen:      "(",
	TokenRParen:      ")",
	TokenLBracket:    "[",
	TokenRBracket:    "]",
	TokenLet:         "let",
	TokenIf:          "if",
	TokenElse:        "else",
	TokenWhile:       "while",
	TokenDo:          "do",
	TokenFor:         "for",
	TokenDef:         "def",
	TokenReturn:      "return",
	TokenClass:       "class",
	TokenExtends:     "extends",
	TokenThis:        "this",
	TokenSuper:       "super",
	TokenNew:         "new",
	TokenType:        "type",
	TokenNumberType:  "number",
	TokenStringType:  "string",
	TokenBooleanType: "boolean",
	TokenVoid:        "void",
	TokenTrue:        "true",
	TokenFalse:       "false",
	TokenNil:         "nil",
	TokenNumber:      "Number",
	TokenString:      "String",
	TokenIdent:       "Identifier",
	TokenAssign:      "=",
	TokenEQ:          "==",
	TokenNE:          "!=",
	TokenPlusAssign:  "+=",
	TokenMinusAssign: "-=",
	TokenStarAssign:  "*=",
	TokenSlashAssign: "/=",
	TokenPlus:        "+",
	TokenMinus:       "-",
	TokenStar:        "*",
	TokenSlash:       "/",
	TokenGT:          ">",
	TokenGE:          ">=",
	TokenLT:          "<",
	TokenLE:          "<=",
	TokenAnd:         "&&",
	TokenOr:          "||",
	TokenNot:         "!",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is a lexeme's kind and location. The text is not copied; use Lexeme
// with the source the token was read from.
type Token struct {
	Kind TokenKind
	Span Span
}

func (t Token) Lexeme(source string) string {
	return source[t.Span.Start.Offset:t.Span.End.Offset]
}

var keywords = map[string]TokenKind{
	"let":     TokenLet,
	"if":      TokenIf,
	"else":    TokenElse,
	"while":   TokenWhile,
	"do":      TokenDo,
	"for":     TokenFor,
	"def":     TokenDef,
	"return":  TokenReturn,
	"class":   TokenClass,
	"extends": TokenExtends,
	"this":    TokenThis,
	"super":   TokenSuper,
	"new":     TokenNew,
	"type":    TokenType,
	"number":  TokenNumberType,
	"string":  TokenStringType,
	"boolean": TokenBooleanType,
	"void":    TokenVoid,
	"true":    TokenTrue,
	"false":   TokenFalse,
	"nil":     TokenNil,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

// Keywords returns the reserved words of the language in sorted order.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for word := range keywords {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}
