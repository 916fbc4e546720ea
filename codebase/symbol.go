package codebase

import (
	"strings"

	"github.com/dhamidi/kestrel/lang/ast"
)

type SymbolKind int

const (
	SymbolClass SymbolKind = iota
	SymbolFunction
	SymbolVariable
	SymbolParameter
)

var symbolKindNames = map[SymbolKind]string{
	SymbolClass:     "class",
	SymbolFunction:  "function",
	SymbolVariable:  "variable",
	SymbolParameter: "parameter",
}

func (k SymbolKind) String() string {
	if name, ok := symbolKindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k SymbolKind) completionKind() CompletionKind {
	switch k {
	case SymbolClass:
		return CompletionKindClass
	case SymbolFunction:
		return CompletionKindFunction
	default:
		return CompletionKindVariable
	}
}

// Symbol is a name declared somewhere in a program. Detail is a one-line
// signature in source syntax.
type Symbol struct {
	Name   string
	Kind   SymbolKind
	Detail string
}

// Symbols lists the declarations of prog in source order, descending into
// blocks, class bodies, function bodies and loop headers.
func Symbols(prog *ast.Program) []Symbol {
	if prog == nil {
		return nil
	}
	var syms []Symbol
	for _, stmt := range prog.Body {
		syms = collectSymbols(syms, stmt)
	}
	return syms
}

func collectSymbols(syms []Symbol, stmt ast.Statement) []Symbol {
	switch s := stmt.(type) {
	case *ast.Block:
		for _, child := range s.Body {
			syms = collectSymbols(syms, child)
		}
	case *ast.VariableDeclaration:
		for _, v := range s.Variables {
			syms = append(syms, Symbol{
				Name:   v.Identifier.Name,
				Kind:   SymbolVariable,
				Detail: v.Identifier.Name + ": " + TypeString(v.TypeAnnotation),
			})
		}
	case *ast.If:
		syms = collectSymbols(syms, s.Consequent)
		syms = collectSymbols(syms, s.Alternative)
	case *ast.While:
		syms = collectSymbols(syms, s.Body)
	case *ast.DoWhile:
		syms = collectSymbols(syms, s.Body)
	case *ast.For:
		syms = collectSymbols(syms, s.Initializer)
		syms = collectSymbols(syms, s.Body)
	case *ast.FunctionDeclaration:
		syms = append(syms, Symbol{
			Name:   s.Name.Name,
			Kind:   SymbolFunction,
			Detail: functionSignature(s),
		})
		for _, p := range s.Parameters {
			syms = append(syms, Symbol{
				Name:   p.Name.Name,
				Kind:   SymbolParameter,
				Detail: p.Name.Name + ": " + TypeString(p.Type),
			})
		}
		if s.Body != nil {
			syms = collectSymbols(syms, s.Body)
		}
	case *ast.ClassDeclaration:
		detail := "class " + s.Name.Name
		if s.SuperClass != nil {
			detail += " extends " + s.SuperClass.Name
		}
		syms = append(syms, Symbol{Name: s.Name.Name, Kind: SymbolClass, Detail: detail})
		if s.Body != nil {
			syms = collectSymbols(syms, s.Body)
		}
	}
	return syms
}

func functionSignature(fn *ast.FunctionDeclaration) string {
	params := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = p.Name.Name + ": " + TypeString(p.Type)
	}
	return "def " + fn.Name.Name + "(" + strings.Join(params, ", ") + "): " + TypeString(fn.ReturnType)
}

// TypeString renders a type the way it is written in source.
func TypeString(typ ast.Type) string {
	switch t := typ.(type) {
	case *ast.PrimitiveType:
		return strings.ToLower(t.Kind.String())
	case *ast.VoidType:
		return "void"
	case *ast.ArrayType:
		return "[" + TypeString(t.Element) + "]"
	case *ast.ClassType:
		return t.Name
	case *ast.GenericType:
		args := make([]string, len(t.Args))
		for i, arg := range t.Args {
			args[i] = TypeString(arg)
		}
		return t.Base + "[" + strings.Join(args, ", ") + "]"
	case *ast.FunctionType:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = TypeString(p)
		}
		return "(" + strings.Join(params, ", ") + ") => " + TypeString(t.Return)
	}
	return "?"
}
