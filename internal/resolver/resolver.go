package resolver

import (
	"dcc/internal/ast"
	"dcc/internal/resolved"
)

// funcState tracks per-function resolution progress so mutually or
// self-recursive generic instantiations terminate (spec.md §4.2/§9:
// "NotStarted → Resolving → Resolved").
type funcState int

const (
	notStarted funcState = iota
	resolving
	resolvedState
)

// Resolver turns an ast.Module into a resolved.Module. It is a single-pass,
// top-down, strictly sequential traversal (spec.md §5): no goroutines, no
// locks, parents resolved before children, left to right.
type Resolver struct {
	acc *Accumulator
	ctx []ContextKind

	vars  *variableScopes
	types *typeScopes

	out *resolved.Module

	funcDecls map[string]ast.Function
	typeDefs  map[string]ast.TypeDef

	funcState   map[string]funcState
	structCache map[string]resolved.Type
}

// New creates a Resolver with the built-in intrinsic declarations already
// registered (spec.md §4.2: "Intrinsic declarations are injected into the
// resolver's environment before user code").
func New() *Resolver {
	r := &Resolver{
		acc:         &Accumulator{},
		vars:        newVariableScopes(),
		types:       newTypeScopes(),
		out:         resolved.NewModule(),
		funcDecls:   make(map[string]ast.Function),
		typeDefs:    make(map[string]ast.TypeDef),
		funcState:   make(map[string]funcState),
		structCache: make(map[string]resolved.Type),
	}
	registerIntrinsics(r)
	return r
}

// Resolve resolves mod into a typed resolved.Module. It returns the module and
// the accumulated recoverable errors; per spec.md §7 a non-empty error list is
// a compilation failure and the module must not be handed to the code
// generator.
func Resolve(mod ast.Module) (*resolved.Module, []CompileError, error) {
	r := New()
	if err := r.prepass(mod); err != nil {
		return nil, nil, err
	}
	for _, tl := range mod.TopLevels {
		fn, ok := tl.Value.(ast.FunctionTopLevel)
		if !ok {
			continue
		}
		decl := fn.Function.Decl.Value
		if decl.Intrinsic || len(decl.GenericParams) > 0 {
			continue // intrinsics have no body; generics are materialized lazily on call.
		}
		if _, err := r.resolveFunctionInstance(decl.Name, nil, fn.Function); err != nil {
			return nil, r.acc.Errors(), err
		}
	}
	return r.out, r.acc.Errors(), nil
}

// prepass registers every top-level function and type definition by name so
// forward references resolve regardless of declaration order (spec.md §4.2).
func (r *Resolver) prepass(mod ast.Module) error {
	for _, tl := range mod.TopLevels {
		switch v := tl.Value.(type) {
		case ast.FunctionTopLevel:
			r.funcDecls[v.Function.Decl.Value.Name] = v.Function
		case ast.TypeDefTopLevel:
			r.typeDefs[v.TypeDef.Name] = v.TypeDef
		}
	}
	return nil
}

func (r *Resolver) pushCtx(c ContextKind) func() {
	r.ctx = append(r.ctx, c)
	return func() { r.ctx = r.ctx[:len(r.ctx)-1] }
}

// recordError appends a recoverable error wrapped in the current context
// stack, innermost (most recently pushed) first, per spec.md §7.
func (r *Resolver) recordError(rng ast.Range, kind ErrorKind) {
	// Context frames read innermost-first in the accumulated error, matching
	// the teacher's wrap-as-you-unwind idiom: reverse the live stack.
	rev := make([]ContextKind, len(r.ctx))
	for i, c := range r.ctx {
		rev[len(r.ctx)-1-i] = c
	}
	r.acc.Append(rng, rev, kind)
}
