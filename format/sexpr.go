package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/kestrel/lang/ast"
)

// CompactSExpr renders node as a single-line s-expression.
func CompactSExpr(node ast.Node) string {
	var sb strings.Builder
	build(node).writeCompact(&sb)
	return sb.String()
}

// PrettySExpr renders node with one child group per line, indenting each
// level by indent spaces. Collapsing its whitespace yields CompactSExpr.
func PrettySExpr(node ast.Node, indent int) string {
	if indent < 0 {
		indent = 0
	}
	var sb strings.Builder
	build(node).writePretty(&sb, 0, indent)
	return sb.String()
}

type SExprOption func(*SExprEncoder)

// WithIndent switches the encoder to pretty output.
func WithIndent(indent int) SExprOption {
	return func(e *SExprEncoder) {
		e.pretty = true
		e.indent = indent
	}
}

type SExprEncoder struct {
	w      io.Writer
	pretty bool
	indent int
}

func NewSExprEncoder(w io.Writer, opts ...SExprOption) *SExprEncoder {
	e := &SExprEncoder{w: w}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode writes the rendering of node followed by a newline.
func (e *SExprEncoder) Encode(node ast.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *SExprEncoder) MarshalText(node ast.Node) ([]byte, error) {
	if node == nil {
		return nil, fmt.Errorf("encode s-expression: nil node")
	}
	if e.pretty {
		return []byte(PrettySExpr(node, e.indent)), nil
	}
	return []byte(CompactSExpr(node)), nil
}

// sexp is either an atom or a parenthesised list whose first item is the
// heading atom.
type sexp struct {
	atom  string
	items []*sexp
}

func atom(text string) *sexp {
	return &sexp{atom: text}
}

func list(head string, items ...*sexp) *sexp {
	s := &sexp{items: []*sexp{atom(head)}}
	for _, item := range items {
		if item != nil {
			s.items = append(s.items, item)
		}
	}
	return s
}

func (s *sexp) isList() bool {
	return s.items != nil
}

func (s *sexp) writeCompact(sb *strings.Builder) {
	if !s.isList() {
		sb.WriteString(s.atom)
		return
	}
	sb.WriteByte('(')
	for i, item := range s.items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		item.writeCompact(sb)
	}
	sb.WriteByte(')')
}

// writePretty keeps the heading and any atoms before the first nested list
// on the opening line. Lists without nested lists stay on one line.
func (s *sexp) writePretty(sb *strings.Builder, depth, indent int) {
	if !s.hasNestedList() {
		s.writeCompact(sb)
		return
	}
	sb.WriteByte('(')
	inline := true
	for i, item := range s.items {
		if inline && item.isList() {
			inline = false
		}
		switch {
		case i == 0:
		case inline:
			sb.WriteByte(' ')
		default:
			sb.WriteByte('\n')
			sb.WriteString(strings.Repeat(" ", (depth+1)*indent))
		}
		item.writePretty(sb, depth+1, indent)
	}
	sb.WriteByte(')')
}

func (s *sexp) hasNestedList() bool {
	for _, item := range s.items {
		if item.isList() {
			return true
		}
	}
	return false
}

func quote(text string) string {
	return `"` + strings.ReplaceAll(text, `"`, `\"`) + `"`
}

func build(node ast.Node) *sexp {
	switch n := node.(type) {
	case ast.Statement:
		return buildStatement(n)
	case ast.Expression:
		return buildExpression(n)
	case ast.Type:
		return buildType(n)
	case *ast.Parameter:
		return buildParameter(n)
	}
	return atom(fmt.Sprintf("<unknown %T>", node))
}

func buildStatement(stmt ast.Statement) *sexp {
	switch n := stmt.(type) {
	case nil:
		return nil
	case *ast.Program:
		return list("program", buildStatements(n.Body)...)
	case *ast.Block:
		return buildBlock(n)
	case *ast.Empty:
		return list("empty")
	case *ast.ExpressionStatement:
		return list("expr", buildExpression(n.Expression))
	case *ast.VariableDeclaration:
		inits := make([]*sexp, len(n.Variables))
		for i, v := range n.Variables {
			inits[i] = buildExpression(v)
		}
		return list("let", inits...)
	case *ast.If:
		return list("if", buildExpression(n.Condition), buildStatement(n.Consequent), buildStatement(n.Alternative))
	case *ast.While:
		return list("while", buildExpression(n.Condition), buildStatement(n.Body))
	case *ast.DoWhile:
		return list("do-while", buildStatement(n.Body), buildExpression(n.Condition))
	case *ast.For:
		return list("for",
			buildStatement(n.Initializer),
			buildExpression(n.Condition),
			buildExpression(n.Increment),
			buildStatement(n.Body))
	case *ast.FunctionDeclaration:
		var params *sexp
		if len(n.Parameters) > 0 {
			items := make([]*sexp, len(n.Parameters))
			for i, param := range n.Parameters {
				items[i] = buildParameter(param)
			}
			params = list("params", items...)
		}
		return list("def",
			buildExpression(n.Name),
			params,
			list("return_type", buildType(n.ReturnType)),
			buildBlock(n.Body))
	case *ast.Return:
		return list("return", buildExpression(n.Argument))
	case *ast.ClassDeclaration:
		var extends *sexp
		if n.SuperClass != nil {
			extends = list("extends", buildExpression(n.SuperClass))
		}
		return list("class", buildExpression(n.Name), extends, buildBlock(n.Body))
	}
	return atom(fmt.Sprintf("<unknown %T>", stmt))
}

func buildStatements(stmts []ast.Statement) []*sexp {
	items := make([]*sexp, len(stmts))
	for i, stmt := range stmts {
		items[i] = buildStatement(stmt)
	}
	return items
}

func buildBlock(block *ast.Block) *sexp {
	if block == nil {
		return list("block")
	}
	return list("block", buildStatements(block.Body)...)
}

func buildParameter(param *ast.Parameter) *sexp {
	return list("param", buildExpression(param.Name), list("type", buildType(param.Type)))
}

func buildExpression(expr ast.Expression) *sexp {
	switch n := expr.(type) {
	case nil:
		return nil
	case *ast.VariableInitialization:
		return list("init",
			buildExpression(n.Identifier),
			list("type", buildType(n.TypeAnnotation)),
			buildExpression(n.Initializer))
	case *ast.Assignment:
		return list("assign", atom(quote(n.Operator.String())), buildExpression(n.Left), buildExpression(n.Right))
	case *ast.Binary:
		return list("binary", atom(quote(n.Operator.String())), buildExpression(n.Left), buildExpression(n.Right))
	case *ast.Unary:
		return list("unary", atom(quote(n.Operator.String())), buildExpression(n.Operand))
	case *ast.Logical:
		return list("logical", atom(quote(n.Operator.String())), buildExpression(n.Left), buildExpression(n.Right))
	case *ast.BooleanLiteral:
		return list("boolean", atom(strconv.FormatBool(n.Value)))
	case *ast.NilLiteral:
		return list("nil")
	case *ast.StringLiteral:
		return list("string", atom(quote(n.Value)))
	case *ast.NumericLiteral:
		return list("number", atom(strconv.FormatInt(int64(n.Value), 10)))
	case *ast.Identifier:
		if n == nil {
			return nil
		}
		return list("id", atom(n.Name))
	case *ast.Member:
		kind := "static"
		if n.Computed {
			kind = "computed"
		}
		return list("member", atom(quote(kind)), buildExpression(n.Object), buildExpression(n.Property))
	case *ast.Call:
		return list("call", buildExpression(n.Callee), buildArguments(n.Arguments))
	case *ast.This:
		return list("this")
	case *ast.Super:
		return list("super")
	case *ast.New:
		return list("new", buildExpression(n.Callee), buildArguments(n.Arguments))
	}
	return atom(fmt.Sprintf("<unknown %T>", expr))
}

func buildArguments(args []ast.Expression) *sexp {
	if len(args) == 0 {
		return nil
	}
	items := make([]*sexp, len(args))
	for i, arg := range args {
		items[i] = buildExpression(arg)
	}
	return list("args", items...)
}

// buildType renders a type without the surrounding (type …) group.
func buildType(typ ast.Type) *sexp {
	switch n := typ.(type) {
	case nil:
		return nil
	case *ast.PrimitiveType:
		return atom(n.Kind.String())
	case *ast.VoidType:
		return atom(quote("void"))
	case *ast.ArrayType:
		return list("array", buildType(n.Element))
	case *ast.FunctionType:
		params := make([]*sexp, len(n.Params))
		for i, param := range n.Params {
			params[i] = buildType(param)
		}
		return list("function", list("params", params...), list("return", buildType(n.Return)))
	case *ast.ClassType:
		var super *sexp
		if n.SuperClass != "" {
			super = atom(n.SuperClass)
		}
		return list("class", atom(n.Name), super)
	case *ast.GenericType:
		items := []*sexp{atom(quote(n.Base))}
		for _, arg := range n.Args {
			items = append(items, buildType(arg))
		}
		return list("generic", items...)
	}
	return atom(fmt.Sprintf("<unknown %T>", typ))
}
