package format

import (
	"github.com/dhamidi/kestrel/lang/ast"
)

// Encoder writes one rendering of a syntax tree per call.
type Encoder interface {
	Encode(node ast.Node) error
}

var (
	_ Encoder = (*SExprEncoder)(nil)
	_ Encoder = (*ASTJSONEncoder)(nil)
)
