package resolver

import (
	"dcc/internal/ast"
	"dcc/internal/resolved"
)

// resolveFunctionInstance materializes the monomorphized resolved.Function for
// (name, genericArgs), memoizing by mangled name. Reentry while the same
// mangled name is in the resolving state (a recursive or mutually recursive
// call) returns the in-flight signature without re-resolving the body
// (spec.md §4.2, §9: "NotStarted → Resolving → Resolved").
func (r *Resolver) resolveFunctionInstance(name string, genericArgs []resolved.Type, tmpl ast.Function) (*resolved.Function, error) {
	mangled := resolved.MangledFuncName(name, genericArgs)
	if st := r.funcState[mangled]; st == resolving || st == resolvedState {
		return r.out.Functions[mangled], nil
	}
	r.funcState[mangled] = resolving

	decl := tmpl.Decl.Value

	bindings := make(map[string]resolved.Type, len(decl.GenericParams))
	for i, gp := range decl.GenericParams {
		bindings[gp.Value] = genericArgs[i]
	}
	r.types.push(bindings)

	params := make([]resolved.Param, len(decl.Params))
	for i, p := range decl.Params {
		pt, err := r.resolveType(p.Type.Range, p.Type.Value)
		if err != nil {
			r.types.pop()
			return nil, err
		}
		params[i] = resolved.Param{Name: p.Name, Type: pt}
	}
	retType, err := r.resolveType(decl.ReturnType.Range, decl.ReturnType.Value)
	if err != nil {
		r.types.pop()
		return nil, err
	}

	rfn := &resolved.Function{
		Name:       mangled,
		Params:     params,
		Variadic:   decl.Variadic,
		ReturnType: retType,
		Intrinsic:  decl.Intrinsic,
	}
	rfn = r.out.AddFunction(rfn)

	if !decl.Intrinsic {
		popFn := r.pushCtx(CtxFunction)
		r.vars.push()
		for _, p := range params {
			r.vars.declare(p.Name, p.Type)
		}

		body := make([]resolved.Statement, 0, len(tmpl.Body))
		for _, s := range tmpl.Body {
			if st := r.resolveStatement(s, retType); st != nil {
				body = append(body, st)
			}
		}
		rfn.Body = body

		r.vars.pop()
		popFn()
	}

	r.types.pop()
	r.funcState[mangled] = resolvedState
	return rfn, nil
}
