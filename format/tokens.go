package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/kestrel/lang/parser"
)

// TokenEncoder lists tokens one per line as `line:col<TAB>kind<TAB>"lexeme"`.
type TokenEncoder struct {
	w      io.Writer
	source string
}

func NewTokenEncoder(w io.Writer, source string) *TokenEncoder {
	return &TokenEncoder{w: w, source: source}
}

func (e *TokenEncoder) Encode(tokens []parser.Token) error {
	text, err := e.MarshalText(tokens)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TokenEncoder) MarshalText(tokens []parser.Token) ([]byte, error) {
	var sb strings.Builder
	for _, tok := range tokens {
		if tok.Span.End.Offset > len(e.source) {
			return nil, fmt.Errorf("token %s at %s lies outside the source", tok.Kind, tok.Span.Start)
		}
		fmt.Fprintf(&sb, "%d:%d\t%s\t%q\n",
			tok.Span.Start.Line,
			tok.Span.Start.Column,
			tok.Kind,
			tok.Lexeme(e.source),
		)
	}
	return []byte(sb.String()), nil
}
