package ast

type AssignmentOperator int

const (
	Assign AssignmentOperator = iota
	AssignAdd
	AssignSubtract
	AssignMultiply
	AssignDivide
)

var assignmentOperatorNames = map[AssignmentOperator]string{
	Assign:         "=",
	AssignAdd:      "+=",
	AssignSubtract: "-=",
	AssignMultiply: "*=",
	AssignDivide:   "/=",
}

func (op AssignmentOperator) String() string {
	if name, ok := assignmentOperatorNames[op]; ok {
		return name
	}
	return "Unknown"
}

type BinaryOperator int

const (
	Add BinaryOperator = iota
	Subtract
	Multiply
	Divide
	Equal
	NotEqual
	GreaterThan
	GreaterThanOrEqualTo
	LessThan
	LessThanOrEqualTo
)

var binaryOperatorNames = map[BinaryOperator]string{
	Add:                  "+",
	Subtract:             "-",
	Multiply:             "*",
	Divide:               "/",
	Equal:                "==",
	NotEqual:             "!=",
	GreaterThan:          ">",
	GreaterThanOrEqualTo: ">=",
	LessThan:             "<",
	LessThanOrEqualTo:    "<=",
}

func (op BinaryOperator) String() string {
	if name, ok := binaryOperatorNames[op]; ok {
		return name
	}
	return "Unknown"
}

type UnaryOperator int

const (
	Plus UnaryOperator = iota
	Minus
	Not
)

var unaryOperatorNames = map[UnaryOperator]string{
	Plus:  "+",
	Minus: "-",
	Not:   "!",
}

func (op UnaryOperator) String() string {
	if name, ok := unaryOperatorNames[op]; ok {
		return name
	}
	return "Unknown"
}

type LogicalOperator int

const (
	And LogicalOperator = iota
	Or
)

var logicalOperatorNames = map[LogicalOperator]string{
	And: "&&",
	Or:  "||",
}

func (op LogicalOperator) String() string {
	if name, ok := logicalOperatorNames[op]; ok {
		return name
	}
	return "Unknown"
}
