// Package resolved defines the typed intermediate representation the resolver
// produces and the code generator consumes.
package resolved

import "strings"

// Kind discriminates the closed set of resolved types named in spec.md §3.
type Kind int

const (
	U8 Kind = iota
	U32
	U64
	I32
	I64
	USize
	Void
	Ptr
	Struct
	Unknown
)

// Type is a fully resolved, closed type. Ptr carries Elem; Struct carries Name
// and Fields. Every other Kind is a plain value type.
type Type struct {
	Kind   Kind
	Elem   *Type
	Name   string  // struct's mangled name, e.g. "Box<i32>"
	Fields []Field // struct's ordered fields
}

// Field is a single named, typed struct field.
type Field struct {
	Name string
	Type Type
}

// IsInteger reports whether t is one of the fixed-width or pointer-sized
// integer kinds.
func (t Type) IsInteger() bool {
	switch t.Kind {
	case U8, U32, U64, I32, I64, USize:
		return true
	default:
		return false
	}
}

// IsSigned reports whether t is a signed integer kind.
func (t Type) IsSigned() bool {
	return t.Kind == I32 || t.Kind == I64
}

// BitWidth returns the storage width in bits of an integer kind; panics on a
// non-integer kind (resolver code only calls this after an IsInteger check).
// USize counts as 64 bits here whatever the target; the code generator lowers
// it to 32 bits on 32-bit targets.
func (t Type) BitWidth() int {
	switch t.Kind {
	case U8:
		return 8
	case U32, I32:
		return 32
	case U64, I64, USize:
		return 64
	default:
		panic("resolved: BitWidth of non-integer type")
	}
}

// Equal reports structural equality between two resolved types.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case Ptr:
		return t.Elem.Equal(*o.Elem)
	case Struct:
		return t.Name == o.Name
	default:
		return true
	}
}

func (t Type) String() string {
	switch t.Kind {
	case U8:
		return "u8"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case USize:
		return "usize"
	case Void:
		return "void"
	case Ptr:
		return "[" + t.Elem.String() + "]"
	case Struct:
		return t.Name
	default:
		return "<unknown>"
	}
}

// PtrTo builds a Ptr(elem) type.
func PtrTo(elem Type) Type {
	e := elem
	return Type{Kind: Ptr, Elem: &e}
}

// MangledStructName builds "BaseName<arg1,arg2,...>" for a struct instantiation,
// per spec.md §4.2's monomorphization naming rule.
func MangledStructName(base string, args []Type) string {
	if len(args) == 0 {
		return base
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return base + "<" + strings.Join(parts, ",") + ">"
}

// MangledFuncName builds "name<T1,T2,...>" for a monomorphized function
// instance, per spec.md §4.2/§9.
func MangledFuncName(base string, args []Type) string {
	return MangledStructName(base, args)
}
