package ast

import "strings"

// UnresolvedType is the parser's view of a type annotation: either a named type
// reference (optionally generic) or a pointer-to another unresolved type.
type UnresolvedType interface {
	unresolvedType()
	String() string
}

// TypeRef is a named type reference with an optional ordered list of type
// arguments, e.g. "i32" or "Box<T>".
type TypeRef struct {
	Name string
	Args []UnresolvedType
}

func (TypeRef) unresolvedType() {}

func (t TypeRef) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name + "<" + strings.Join(parts, ",") + ">"
}

// PointerType is the "[T]" pointer-to-T syntactic form.
type PointerType struct {
	Elem UnresolvedType
}

func (PointerType) unresolvedType() {}

func (t PointerType) String() string {
	return "[" + t.Elem.String() + "]"
}
