// Package ast defines the syntax tree produced by the kestrel parser.
//
// Statements and expressions are two mutually recursive sum types, each
// modelled as a sealed interface with one pointer type per variant. Nodes own
// their children; the parser builds them bottom-up and never mutates them
// afterwards.
package ast

// Node is implemented by every statement, expression and type.
type Node interface {
	node()
}

// Statement is a node that can appear in a statement list.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statements

type Program struct {
	Body []Statement
}

type Block struct {
	Body []Statement
}

type Empty struct{}

type ExpressionStatement struct {
	Expression Expression
}

type VariableDeclaration struct {
	Variables []*VariableInitialization
}

type If struct {
	Condition   Expression
	Consequent  Statement
	Alternative Statement // nil when there is no else branch
}

type While struct {
	Condition Expression
	Body      Statement
}

type DoWhile struct {
	Body      Statement
	Condition Expression
}

// For holds the three optional header clauses of a for loop. Initializer is
// either a *VariableDeclaration or an *ExpressionStatement.
type For struct {
	Initializer Statement
	Condition   Expression
	Increment   Expression
	Body        Statement
}

type Parameter struct {
	Name *Identifier
	Type Type
}

type FunctionDeclaration struct {
	Name       *Identifier
	Parameters []*Parameter
	ReturnType Type
	Body       *Block
}

type Return struct {
	Argument Expression // nil for a bare return
}

type ClassDeclaration struct {
	Name       *Identifier
	SuperClass *Identifier
	Body       *Block
}

func (*Program) node()             {}
func (*Block) node()               {}
func (*Empty) node()               {}
func (*ExpressionStatement) node() {}
func (*VariableDeclaration) node() {}
func (*If) node()                  {}
func (*While) node()               {}
func (*DoWhile) node()             {}
func (*For) node()                 {}
func (*FunctionDeclaration) node() {}
func (*Return) node()              {}
func (*ClassDeclaration) node()    {}
func (*Parameter) node()           {}

func (*Program) statementNode()             {}
func (*Block) statementNode()               {}
func (*Empty) statementNode()               {}
func (*ExpressionStatement) statementNode() {}
func (*VariableDeclaration) statementNode() {}
func (*If) statementNode()                  {}
func (*While) statementNode()               {}
func (*DoWhile) statementNode()             {}
func (*For) statementNode()                 {}
func (*FunctionDeclaration) statementNode() {}
func (*Return) statementNode()              {}
func (*ClassDeclaration) statementNode()    {}

// Expressions

// VariableInitialization is one `name: Type = value` entry of a let
// declaration. Initializer is nil when no value is given.
type VariableInitialization struct {
	Identifier     *Identifier
	TypeAnnotation Type
	Initializer    Expression
}

// Assignment stores into Left, which is always an *Identifier or a *Member.
type Assignment struct {
	Operator AssignmentOperator
	Left     Expression
	Right    Expression
}

type Binary struct {
	Operator BinaryOperator
	Left     Expression
	Right    Expression
}

type Unary struct {
	Operator UnaryOperator
	Operand  Expression
}

type Logical struct {
	Operator LogicalOperator
	Left     Expression
	Right    Expression
}

type BooleanLiteral struct {
	Value bool
}

type NilLiteral struct{}

// StringLiteral holds the text between the quotes, escapes left as written.
type StringLiteral struct {
	Value string
}

type NumericLiteral struct {
	Value int32
}

type Identifier struct {
	Name string
}

// Member is `Object.Property` when Computed is false and
// `Object[Property]` when it is true.
type Member struct {
	Computed bool
	Object   Expression
	Property Expression
}

type Call struct {
	Callee    Expression
	Arguments []Expression
}

type This struct{}

type Super struct{}

type New struct {
	Callee    Expression
	Arguments []Expression
}

func (*VariableInitialization) node() {}
func (*Assignment) node()             {}
func (*Binary) node()                 {}
func (*Unary) node()                  {}
func (*Logical) node()                {}
func (*BooleanLiteral) node()         {}
func (*NilLiteral) node()             {}
func (*StringLiteral) node()          {}
func (*NumericLiteral) node()         {}
func (*Identifier) node()             {}
func (*Member) node()                 {}
func (*Call) node()                   {}
func (*This) node()                   {}
func (*Super) node()                  {}
func (*New) node()                    {}

func (*VariableInitialization) expressionNode() {}
func (*Assignment) expressionNode()             {}
func (*Binary) expressionNode()                 {}
func (*Unary) expressionNode()                  {}
func (*Logical) expressionNode()                {}
func (*BooleanLiteral) expressionNode()         {}
func (*NilLiteral) expressionNode()             {}
func (*StringLiteral) expressionNode()          {}
func (*NumericLiteral) expressionNode()         {}
func (*Identifier) expressionNode()             {}
func (*Member) expressionNode()                 {}
func (*Call) expressionNode()                   {}
func (*This) expressionNode()                   {}
func (*Super) expressionNode()                  {}
func (*New) expressionNode()                    {}

// IsLValue reports whether e may appear on the left of an assignment.
func IsLValue(e Expression) bool {
	switch e.(type) {
	case *Identifier, *Member:
		return true
	}
	return false
}
