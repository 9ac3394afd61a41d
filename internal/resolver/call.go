package resolver

import (
	"dcc/internal/ast"
	"dcc/internal/resolved"
)

// resolveCall resolves a call expression: binds the callee by name, determines
// its generic type arguments (explicit args win; otherwise positional
// unification infers them from argument types), materializes the monomorphized
// callee via resolveFunctionInstance, and resolves arguments against the
// (possibly substituted) parameter types as their annotation (spec.md §4.2).
func (r *Resolver) resolveCall(rng ast.Range, v ast.CallExpr) *resolved.Expression {
	pop := r.pushCtx(CtxCallExpression)
	defer pop()

	tmpl, ok := r.funcDecls[v.Name]
	if !ok {
		r.recordError(rng, FunctionNotFound{Name: v.Name})
		return unknownExpr()
	}
	decl := tmpl.Decl.Value

	genArgs, ok := r.resolveCallGenericArgs(rng, v, decl)
	if !ok {
		return unknownExpr()
	}

	bindings := make(map[string]resolved.Type, len(decl.GenericParams))
	for i, gp := range decl.GenericParams {
		bindings[gp.Value] = genArgs[i]
	}
	r.types.push(bindings)
	paramTypes := make([]resolved.Type, len(decl.Params))
	for i, p := range decl.Params {
		rt, err := r.resolveType(p.Type.Range, p.Type.Value)
		if err == nil {
			paramTypes[i] = rt
		}
	}
	r.types.pop()

	args := make([]*resolved.Expression, 0, len(v.Args))
	for i, a := range v.Args {
		var paramAnnotation annotation
		if i < len(decl.Params) && paramTypes[i].Kind != resolved.Unknown {
			paramAnnotation = &paramTypes[i]
		}
		args = append(args, r.resolveExpression(a, paramAnnotation))
	}
	if decl.Variadic && len(v.Args) > len(decl.Params) {
		// Re-resolve the variadic tail without annotation, per spec.md §4.2.
		for i := len(decl.Params); i < len(v.Args); i++ {
			args[i] = r.resolveExpression(v.Args[i], nil)
		}
	}
	if len(decl.Params) != len(v.Args) && !decl.Variadic {
		r.recordError(rng, InvalidArgument{Reason: "wrong number of arguments to " + v.Name})
	}

	callee, err := r.resolveFunctionInstance(v.Name, genArgs, tmpl)
	if err != nil {
		r.recordError(rng, InvalidArgument{Reason: err.Error()})
		return unknownExpr()
	}

	return &resolved.Expression{Kind: resolved.Call{Callee: callee, Args: args}, Type: callee.ReturnType}
}

// resolveCallGenericArgs determines the concrete generic type arguments for a
// call: explicit type arguments are resolved directly; otherwise they are
// inferred by unifying each bare generic-parameter-typed formal parameter with
// the type of the resolved actual argument at the same position.
func (r *Resolver) resolveCallGenericArgs(rng ast.Range, v ast.CallExpr, decl ast.FunctionDecl) ([]resolved.Type, bool) {
	if len(decl.GenericParams) == 0 {
		return nil, true
	}
	if len(v.GenericArgs) > 0 {
		if len(v.GenericArgs) != len(decl.GenericParams) {
			if len(v.GenericArgs) > len(decl.GenericParams) {
				r.recordError(rng, TooManyGenericArgs{FuncName: v.Name, Expected: len(decl.GenericParams), Actual: len(v.GenericArgs)})
			} else {
				r.recordError(rng, TooFewGenericArgs{FuncName: v.Name, Expected: len(decl.GenericParams), Actual: len(v.GenericArgs)})
			}
			return nil, false
		}
		out := make([]resolved.Type, len(v.GenericArgs))
		for i, a := range v.GenericArgs {
			t, err := r.resolveType(rng, a)
			if err != nil {
				return nil, false
			}
			out[i] = t
		}
		return out, true
	}

	// Inference: resolve each argument without annotation first, then unify.
	// This throwaway pass's errors are discarded; the real resolution pass in
	// resolveCall re-resolves every argument and records errors properly.
	mark := r.acc.mark()
	inferred := make(map[string]resolved.Type)
	for i, a := range v.Args {
		if i >= len(decl.Params) {
			break
		}
		tr, ok := decl.Params[i].Type.Value.(ast.TypeRef)
		if !ok || len(tr.Args) != 0 {
			continue
		}
		isGeneric := false
		for _, gp := range decl.GenericParams {
			if gp.Value == tr.Name {
				isGeneric = true
			}
		}
		if !isGeneric {
			continue
		}
		argExpr := r.resolveExpression(a, nil)
		inferred[tr.Name] = argExpr.Type
	}
	r.acc.truncate(mark)

	out := make([]resolved.Type, len(decl.GenericParams))
	for i, gp := range decl.GenericParams {
		t, ok := inferred[gp.Value]
		if !ok {
			r.recordError(rng, TooFewGenericArgs{FuncName: v.Name, Expected: len(decl.GenericParams), Actual: len(inferred)})
			return nil, false
		}
		out[i] = t
	}
	return out, true
}
