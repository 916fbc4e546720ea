// Package parser turns kestrel source text into an abstract syntax tree.
//
// # Overview
//
// The package has three parts: a pull-based Lexer, a recursive-descent
// Parser with a single token of lookahead, and the Error type both of them
// return. The tree itself lives in package ast.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Source    │────▶│   Lexer     │────▶│   Parser    │────▶ *ast.Program
//	│  (string)   │     │  (tokens)   │     │ (lookahead) │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// Parsing stops at the first problem. There is no recovery and no partial
// tree: callers get either a complete *ast.Program or an *Error.
//
// # Source Positions
//
// Tokens carry a Span of two Positions:
//
//	type Position struct {
//	    File   string // set with WithFile
//	    Offset int    // byte offset, 0-based
//	    Line   int    // 1-based
//	    Column int    // 1-based, counted in runes
//	}
//
// Tokens hold no text. Token.Lexeme slices it out of the source.
//
// # Grammar
//
// Expressions climb the following precedence levels, loosest first:
//
//	assignment   = += -= *= /=     right-associative
//	logical or   ||                left-associative
//	logical and  &&
//	equality     == !=
//	relational   > >= < <=
//	additive     + -
//	factor       * /
//	unary        + - !             prefix, right-recursive
//	call/member  f(x)  o.p  o[i]   postfix, any order
//	primary      literals ( ) identifiers this super new
//
// The full grammar is kept in EBNF form in package grammar.
//
// # Errors
//
// Every failure is an *Error whose Kind is one of
//
//	UnexpectedCharacter UnterminatedString UnterminatedComment InvalidNumber
//	UnexpectedToken
//	InvalidAssignmentTarget TypeAnnotationExpected UnknownOperator
//	NestingTooDeep
//
// and whose Pos points at the start of the offending construct. Use
// errors.As to inspect it.
//
// # Example Usage
//
//	prog, err := parser.ParseProgram(src, parser.WithFile("main.kst"))
//	if err != nil {
//	    var perr *parser.Error
//	    if errors.As(err, &perr) {
//	        fmt.Println(perr.Pos, perr.Kind)
//	    }
//	    return err
//	}
//	fmt.Println(format.CompactSExpr(prog))
//
// # Thread Safety
//
// Lexer and Parser values are not safe for concurrent use. Parses that do not
// share a Parser may run in parallel.
package parser
