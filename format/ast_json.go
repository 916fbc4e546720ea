package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/kestrel/lang/ast"
)

// ASTJSONEncoder writes the s-expression tree of a node as indented JSON.
// Every list becomes an object whose kind is the list heading; atoms become
// objects of kind "atom" carrying the atom text without quotes.
type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node ast.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(node ast.Node) ([]byte, error) {
	if node == nil {
		return nil, fmt.Errorf("encode json: nil node")
	}
	return json.MarshalIndent(sexpToJSON(build(node)), "", "  ")
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Value    string         `json:"value,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

func sexpToJSON(s *sexp) *astJSONNode {
	if !s.isList() {
		return &astJSONNode{Kind: "atom", Value: unquote(s.atom)}
	}

	jn := &astJSONNode{Kind: s.items[0].atom}
	if len(s.items) > 1 {
		jn.Children = make([]*astJSONNode, len(s.items)-1)
		for i, item := range s.items[1:] {
			jn.Children[i] = sexpToJSON(item)
		}
	}
	return jn
}

func unquote(text string) string {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		return strings.ReplaceAll(text[1:len(text)-1], `\"`, `"`)
	}
	return text
}
