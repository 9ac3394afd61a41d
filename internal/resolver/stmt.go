package resolver

import (
	"dcc/internal/ast"
	"dcc/internal/resolved"
)

// resolveStatement resolves a single statement. A nil return means the
// statement was dropped because its base was fatally unresolvable (recorded
// already); resolution of the surrounding function continues regardless.
func (r *Resolver) resolveStatement(s ast.Located[ast.Statement], returnType resolved.Type) resolved.Statement {
	switch v := s.Value.(type) {
	case ast.VariableDeclStatement:
		return r.resolveVarDecl(s.Range, v)
	case ast.AssignmentStatement:
		return r.resolveAssignment(s.Range, v)
	case ast.ReturnStatement:
		return r.resolveReturn(s.Range, v, returnType)
	case ast.EffectStatement:
		return r.resolveEffect(v)
	default:
		return nil
	}
}

func (r *Resolver) resolveVarDecl(rng ast.Range, v ast.VariableDeclStatement) resolved.Statement {
	pop := r.pushCtx(CtxVariableDeclStatement)
	defer pop()

	ty, err := r.resolveType(v.Type.Range, v.Type.Value)
	if err != nil {
		return nil
	}
	var a annotation
	if ty.Kind != resolved.Unknown {
		a = &ty
	}
	val := r.resolveExpression(v.Expression, a)
	r.vars.declare(v.Name, ty)
	return resolved.VarDecl{Name: v.Name, Type: ty, Value: val}
}

// targetType walks DerefCount pointer layers (and an optional index access)
// off of name's declared type, returning the type an assignment's RHS must
// match, plus the resolved index expression if one was present.
func (r *Resolver) targetType(rng ast.Range, name string, derefCount int, idx *ast.Located[ast.Expression]) (resolved.Type, *resolved.Expression) {
	base, ok := r.vars.lookup(name)
	if !ok {
		r.recordError(rng, VariableNotFound{Name: name})
		return resolved.Type{Kind: resolved.Unknown}, nil
	}
	cur := base
	for i := 0; i < derefCount; i++ {
		if cur.Kind != resolved.Ptr {
			r.recordError(rng, CannotDeref{Name: name, Depth: derefCount})
			return resolved.Type{Kind: resolved.Unknown}, nil
		}
		cur = *cur.Elem
	}
	var idxExpr *resolved.Expression
	if idx != nil {
		usize := resolved.Type{Kind: resolved.USize}
		idxExpr = r.resolveExpression(*idx, ann(usize))
		if cur.Kind != resolved.Ptr {
			r.recordError(rng, CannotIndexAccess{Name: name, Type: cur.String()})
			return resolved.Type{Kind: resolved.Unknown}, idxExpr
		}
		cur = *cur.Elem
	}
	return cur, idxExpr
}

func (r *Resolver) resolveAssignment(rng ast.Range, v ast.AssignmentStatement) resolved.Statement {
	pop := r.pushCtx(CtxAssignStatement)
	defer pop()

	targetTy, idxExpr := r.targetType(rng, v.Name, v.DerefCount, v.IndexAccess)
	var a annotation
	if targetTy.Kind != resolved.Unknown {
		a = &targetTy
	}
	rhs := r.resolveExpression(v.Expression, a)

	assign := &resolved.Expression{
		Kind: resolved.Assignment{
			Name:        v.Name,
			DerefCount:  v.DerefCount,
			IndexAccess: idxExpr,
			Value:       rhs,
		},
		Type: resolved.Type{Kind: resolved.Void},
	}
	return resolved.Effect{Value: assign}
}

func (r *Resolver) resolveReturn(rng ast.Range, v ast.ReturnStatement, returnType resolved.Type) resolved.Statement {
	pop := r.pushCtx(CtxReturnStatement)
	defer pop()

	if v.Expression == nil {
		return resolved.Return{}
	}
	var a annotation
	if returnType.Kind != resolved.Unknown {
		a = &returnType
	}
	val := r.resolveExpression(*v.Expression, a)
	return resolved.Return{Value: val}
}

func (r *Resolver) resolveEffect(v ast.EffectStatement) resolved.Statement {
	pop := r.pushCtx(CtxDiscardedExpressionStatement)
	defer pop()

	val := r.resolveExpression(v.Expression, nil)
	return resolved.Effect{Value: val}
}
