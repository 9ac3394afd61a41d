package resolver

import (
	"strconv"

	"dcc/internal/ast"
	"dcc/internal/resolved"
)

// annotation is the optional expected type propagated inward during
// resolution, per spec.md §4.2: call-site parameter type, assignment target,
// return type, or USize for an index expression.
type annotation = *resolved.Type

func ann(t resolved.Type) annotation { return &t }

// resolveExpression resolves e under the given annotation and returns a
// resolved.Expression whose Type is always closed and non-Unknown on success;
// on a recoverable error it records the error and returns an Unknown-typed
// placeholder so resolution of the surrounding function can continue
// (spec.md §7: "the resolver continues past recoverable errors").
func (r *Resolver) resolveExpression(e ast.Located[ast.Expression], a annotation) *resolved.Expression {
	switch v := e.Value.(type) {
	case ast.NumberLiteralExpr:
		return r.resolveNumberLiteral(e.Range, v, a)
	case ast.StringLiteralExpr:
		return &resolved.Expression{Kind: resolved.StringLiteral{Value: v.Value}, Type: resolved.PtrTo(resolved.Type{Kind: resolved.U8})}
	case ast.VariableRefExpr:
		return r.resolveVariableRef(e.Range, v)
	case ast.BinaryExpr:
		return r.resolveBinary(e.Range, v)
	case ast.CallExpr:
		return r.resolveCall(e.Range, v)
	case ast.DerefExpr:
		return r.resolveDeref(e.Range, v)
	case ast.IndexAccessExpr:
		return r.resolveIndexAccess(e.Range, v)
	default:
		r.recordError(e.Range, InvalidOperand{Reason: "unknown expression kind"})
		return unknownExpr()
	}
}

func unknownExpr() *resolved.Expression {
	return &resolved.Expression{Type: resolved.Type{Kind: resolved.Unknown}}
}

func (r *Resolver) resolveNumberLiteral(rng ast.Range, v ast.NumberLiteralExpr, a annotation) *resolved.Expression {
	pop := r.pushCtx(CtxNumberLiteralExpression)
	defer pop()

	ty := resolved.Type{Kind: resolved.I32}
	if a != nil && a.IsInteger() {
		ty = *a
	}
	bits := ty.BitWidth()
	var val uint64
	var err error
	if ty.IsSigned() {
		sv, e := strconv.ParseInt(v.Lexeme, 10, bits)
		err = e
		val = uint64(sv)
	} else {
		uv, e := strconv.ParseUint(v.Lexeme, 10, bits)
		err = e
		val = uv
	}
	if err != nil {
		r.recordError(rng, InvalidOperand{Reason: "number literal " + v.Lexeme + " does not fit " + ty.String()})
		return unknownExpr()
	}
	return &resolved.Expression{Kind: resolved.NumberLiteral{Value: val}, Type: ty}
}

func (r *Resolver) resolveVariableRef(rng ast.Range, v ast.VariableRefExpr) *resolved.Expression {
	ty, ok := r.vars.lookup(v.Name)
	if !ok {
		r.recordError(rng, VariableNotFound{Name: v.Name})
		return unknownExpr()
	}
	return &resolved.Expression{Kind: resolved.VariableRef{Name: v.Name}, Type: ty}
}

// commonIntType implements get_cast_type's result as a single widened type:
// only same-signedness integers implicitly coerce (spec.md §4.2, open question
// (b): never silently convert signed⇄unsigned or narrow).
func commonIntType(a, b resolved.Type) (resolved.Type, bool) {
	if !a.IsInteger() || !b.IsInteger() {
		return resolved.Type{}, false
	}
	if a.IsSigned() != b.IsSigned() {
		return resolved.Type{}, false
	}
	if a.BitWidth() >= b.BitWidth() {
		return a, true
	}
	return b, true
}

func (r *Resolver) resolveBinary(rng ast.Range, v ast.BinaryExpr) *resolved.Expression {
	pop := r.pushCtx(CtxBinaryExpression)
	defer pop()

	lhs := r.resolveExpression(v.LHS, nil)
	rhs := r.resolveExpression(v.RHS, nil)
	if lhs.Type.Kind == resolved.Unknown || rhs.Type.Kind == resolved.Unknown {
		return unknownExpr()
	}

	// Pointer arithmetic: Ptr(T) +/- integer preserves the pointer's pointee type.
	if lhs.Type.Kind == resolved.Ptr && rhs.Type.IsInteger() {
		if v.Op != ast.Add && v.Op != ast.Sub {
			r.recordError(rng, InvalidOperand{Reason: "only + and - are defined between a pointer and an integer"})
			return unknownExpr()
		}
		return &resolved.Expression{Kind: resolved.Binary{Op: v.Op, LHS: lhs, RHS: rhs}, Type: lhs.Type}
	}
	if rhs.Type.Kind == resolved.Ptr && lhs.Type.IsInteger() {
		if v.Op != ast.Add && v.Op != ast.Sub {
			r.recordError(rng, InvalidOperand{Reason: "only + and - are defined between a pointer and an integer"})
			return unknownExpr()
		}
		return &resolved.Expression{Kind: resolved.Binary{Op: v.Op, LHS: lhs, RHS: rhs}, Type: rhs.Type}
	}

	common, ok := commonIntType(lhs.Type, rhs.Type)
	if !ok {
		r.recordError(rng, TypeMismatch{Expected: lhs.Type.String(), Actual: rhs.Type.String()})
		return unknownExpr()
	}
	return &resolved.Expression{Kind: resolved.Binary{Op: v.Op, LHS: lhs, RHS: rhs}, Type: common}
}

func (r *Resolver) resolveDeref(rng ast.Range, v ast.DerefExpr) *resolved.Expression {
	target := r.resolveExpression(v.Target, nil)
	if target.Type.Kind == resolved.Unknown {
		return unknownExpr()
	}
	if target.Type.Kind != resolved.Ptr {
		r.recordError(rng, CannotDeref{Name: "<expr>", Depth: 1})
		return unknownExpr()
	}
	return &resolved.Expression{Kind: resolved.Deref{Target: target}, Type: *target.Type.Elem}
}

func (r *Resolver) resolveIndexAccess(rng ast.Range, v ast.IndexAccessExpr) *resolved.Expression {
	target := r.resolveExpression(v.Target, nil)
	usize := resolved.Type{Kind: resolved.USize}
	idx := r.resolveExpression(v.Index, ann(usize))
	if target.Type.Kind == resolved.Unknown {
		return unknownExpr()
	}
	if target.Type.Kind != resolved.Ptr {
		r.recordError(rng, CannotIndexAccess{Name: "<expr>", Type: target.Type.String()})
		return unknownExpr()
	}
	return &resolved.Expression{Kind: resolved.IndexAccess{Target: target, Index: idx}, Type: *target.Type.Elem}
}
