package resolver

import (
	"dcc/internal/ast"
	"dcc/internal/resolved"
)

// resolveType implements spec.md §4.2's resolve_type: Ptr(T) recurses; a named
// reference first checks the generic-parameter scope, then the intrinsic
// built-in types, then the struct type-definition table (instantiating and
// memoizing by mangled name).
func (r *Resolver) resolveType(rng ast.Range, u ast.UnresolvedType) (resolved.Type, error) {
	switch v := u.(type) {
	case ast.PointerType:
		elem, err := r.resolveType(rng, v.Elem)
		if err != nil {
			return resolved.Type{Kind: resolved.Unknown}, err
		}
		return resolved.PtrTo(elem), nil
	case ast.TypeRef:
		return r.resolveTypeRef(rng, v)
	default:
		return resolved.Type{Kind: resolved.Unknown}, FatalError("unreachable unresolved type %T", u)
	}
}

var builtinTypes = map[string]resolved.Kind{
	"u8":    resolved.U8,
	"u32":   resolved.U32,
	"u64":   resolved.U64,
	"i32":   resolved.I32,
	"i64":   resolved.I64,
	"usize": resolved.USize,
	"void":  resolved.Void,
}

func (r *Resolver) resolveTypeRef(rng ast.Range, t ast.TypeRef) (resolved.Type, error) {
	if len(t.Args) == 0 {
		if ty, ok := r.types.lookup(t.Name); ok {
			return ty, nil
		}
		if k, ok := builtinTypes[t.Name]; ok {
			return resolved.Type{Kind: k}, nil
		}
	}

	def, ok := r.typeDefs[t.Name]
	if !ok {
		r.recordError(rng, TypeNotFound{Name: t.Name})
		return resolved.Type{Kind: resolved.Unknown}, nil
	}
	sd, ok := def.Kind.(ast.StructTypeDef)
	if !ok {
		return resolved.Type{Kind: resolved.Unknown}, FatalError("typedef %q has unknown kind", t.Name)
	}
	if len(t.Args) > len(sd.GenericParams) {
		r.recordError(rng, TooManyGenericArgs{FuncName: t.Name, Expected: len(sd.GenericParams), Actual: len(t.Args)})
		return resolved.Type{Kind: resolved.Unknown}, nil
	}
	if len(t.Args) < len(sd.GenericParams) {
		r.recordError(rng, TooFewGenericArgs{FuncName: t.Name, Expected: len(sd.GenericParams), Actual: len(t.Args)})
		return resolved.Type{Kind: resolved.Unknown}, nil
	}

	argTypes := make([]resolved.Type, len(t.Args))
	for i, a := range t.Args {
		at, err := r.resolveType(rng, a)
		if err != nil {
			return resolved.Type{Kind: resolved.Unknown}, err
		}
		argTypes[i] = at
	}

	mangled := resolved.MangledStructName(t.Name, argTypes)
	if cached, ok := r.structCache[mangled]; ok {
		return cached, nil
	}

	bindings := make(map[string]resolved.Type, len(sd.GenericParams))
	for i, gp := range sd.GenericParams {
		bindings[gp.Value] = argTypes[i]
	}
	r.types.push(bindings)
	fields := make([]resolved.Field, len(sd.Fields))
	for i, f := range sd.Fields {
		ft, err := r.resolveType(rng, f.Type)
		if err != nil {
			r.types.pop()
			return resolved.Type{Kind: resolved.Unknown}, err
		}
		fields[i] = resolved.Field{Name: f.Name, Type: ft}
	}
	r.types.pop()

	st := resolved.Type{Kind: resolved.Struct, Name: mangled, Fields: fields}
	r.structCache[mangled] = st
	r.out.Structs[mangled] = st
	return st, nil
}
