package ast

// Type is a type annotation.
type Type interface {
	Node
	typeNode()
}

type PrimitiveKind int

const (
	Number PrimitiveKind = iota
	Boolean
	String
)

var primitiveKindNames = map[PrimitiveKind]string{
	Number:  "Number",
	Boolean: "Boolean",
	String:  "String",
}

func (k PrimitiveKind) String() string {
	if name, ok := primitiveKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type PrimitiveType struct {
	Kind PrimitiveKind
}

// ArrayType is written `[Element]`.
type ArrayType struct {
	Element Type
}

type FunctionType struct {
	Params []Type
	Return Type
}

// ClassType names a user class. SuperClass is empty unless known.
type ClassType struct {
	Name       string
	SuperClass string
}

// GenericType is written `Base[Arg, ...]`.
type GenericType struct {
	Base string
	Args []Type
}

type VoidType struct{}

func (*PrimitiveType) node() {}
func (*ArrayType) node()     {}
func (*FunctionType) node()  {}
func (*ClassType) node()     {}
func (*GenericType) node()   {}
func (*VoidType) node()      {}

func (*PrimitiveType) typeNode() {}
func (*ArrayType) typeNode()     {}
func (*FunctionType) typeNode()  {}
func (*ClassType) typeNode()     {}
func (*GenericType) typeNode()   {}
func (*VoidType) typeNode()      {}
