// Package codegen lowers a resolved.Module into a tinygo.org/x/go-llvm target
// module, following the teacher's src/ir/llvm/transform.go almost 1:1 in API
// usage, but as a single sequential pass (spec.md §5) with no worker pool.
package codegen

import (
	"dcc/internal/resolved"

	"tinygo.org/x/go-llvm"
)

// gen carries the shared LLVM context/module/builder plus the function and
// string-literal tables. Ptr(T) lowers to a typed LLVM pointer to T's
// lowering, not an opaque pointer, so no separate pointee-type table is kept.
type gen struct {
	ctx     llvm.Context
	mod     llvm.Module
	builder llvm.Builder

	usizeBits int // target pointer width, drives USize lowering

	funcs map[string]llvm.Value // mangled name -> declared/defined LLVM function
	strs  map[string]llvm.Value // deduplicated string-literal globals
}

// lowerType maps a resolved.Type to its target-IR representation (spec.md
// §4.3's lowering rules).
func (g *gen) lowerType(t resolved.Type) llvm.Type {
	switch t.Kind {
	case resolved.U8:
		return g.ctx.Int8Type()
	case resolved.U32, resolved.I32:
		return g.ctx.Int32Type()
	case resolved.U64, resolved.I64:
		return g.ctx.Int64Type()
	case resolved.USize:
		if g.usizeBits == 32 {
			return g.ctx.Int32Type()
		}
		return g.ctx.Int64Type()
	case resolved.Void:
		return g.ctx.VoidType()
	case resolved.Ptr:
		return llvm.PointerType(g.lowerType(*t.Elem), 0)
	case resolved.Struct:
		fields := make([]llvm.Type, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = g.lowerType(f.Type)
		}
		return g.ctx.StructType(fields, false)
	default:
		panic("codegen: Unknown type reached code generator")
	}
}

// isSignedArith reports whether t selects the signed arithmetic instruction
// variant (spec.md §4.3: "selected by the result type's signedness").
func isSignedArith(t resolved.Type) bool {
	return t.Kind == resolved.I32 || t.Kind == resolved.I64
}
