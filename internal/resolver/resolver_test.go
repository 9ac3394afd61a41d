package resolver

import (
	"testing"

	"dcc/internal/frontend"
	"dcc/internal/resolved"
)

func mustResolve(t *testing.T, src string) *resolved.Module {
	t.Helper()
	mod, err := frontend.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %s", src, err)
	}
	rmod, errs, err := Resolve(mod)
	if err != nil {
		t.Fatalf("Resolve(%q): internal error: %s", src, err)
	}
	if len(errs) != 0 {
		t.Fatalf("Resolve(%q): unexpected errors: %v", src, errs)
	}
	return rmod
}

// TestEmptyReturn covers spec scenario 1: a void function whose only
// statement is a bare return.
func TestEmptyReturn(t *testing.T) {
	rmod := mustResolve(t, "fn main():void{\nreturn;\n}\n")
	fn, ok := rmod.Functions["main"]
	if !ok {
		t.Fatalf("expected a resolved function %q", "main")
	}
	if fn.ReturnType.Kind != resolved.Void {
		t.Errorf("expected return type void, got %s", fn.ReturnType)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Body))
	}
	ret, ok := fn.Body[0].(resolved.Return)
	if !ok || ret.Value != nil {
		t.Errorf("expected an empty Return, got %+v", fn.Body[0])
	}
}

// TestConstantArithmetic covers spec scenario 2: literal defaulting to I32
// and precedence-respecting binary resolution.
func TestConstantArithmetic(t *testing.T) {
	rmod := mustResolve(t, "fn f():i32{\nreturn 1+2*3;\n}\n")
	fn := rmod.Functions["f"]
	ret := fn.Body[0].(resolved.Return)
	if ret.Value.Type.Kind != resolved.I32 {
		t.Fatalf("expected expression type i32, got %s", ret.Value.Type)
	}
	top, ok := ret.Value.Kind.(resolved.Binary)
	if !ok {
		t.Fatalf("expected a Binary expression, got %T", ret.Value.Kind)
	}
	if _, ok := top.RHS.Kind.(resolved.Binary); !ok {
		t.Errorf("expected RHS to be the '2*3' Binary (precedence), got %T", top.RHS.Kind)
	}
}

// TestVariableDeclAndUse covers spec scenario 3.
func TestVariableDeclAndUse(t *testing.T) {
	rmod := mustResolve(t, "fn f():i32{\ni32 x=41;\nreturn x+1;\n}\n")
	fn := rmod.Functions["f"]
	if len(fn.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(fn.Body))
	}
	decl, ok := fn.Body[0].(resolved.VarDecl)
	if !ok || decl.Name != "x" || decl.Type.Kind != resolved.I32 {
		t.Fatalf("unexpected variable declaration: %+v", fn.Body[0])
	}
	ret := fn.Body[1].(resolved.Return)
	bin := ret.Value.Kind.(resolved.Binary)
	ref, ok := bin.LHS.Kind.(resolved.VariableRef)
	if !ok || ref.Name != "x" {
		t.Errorf("expected LHS to reference %q, got %+v", "x", bin.LHS.Kind)
	}
}

// TestGenericIdentity covers spec scenario 4: monomorphization produces a
// single mangled entry named "id<i32>".
func TestGenericIdentity(t *testing.T) {
	rmod := mustResolve(t, "fn id<T>(x:T):T{\nreturn x;\n}\nfn main():i32{\nreturn id<i32>(7);\n}\n")
	inst, ok := rmod.Functions["id<i32>"]
	if !ok {
		t.Fatalf("expected a monomorphized instance %q, got functions: %v", "id<i32>", rmod.FunctionOrder)
	}
	if inst.ReturnType.Kind != resolved.I32 || len(inst.Params) != 1 || inst.Params[0].Type.Kind != resolved.I32 {
		t.Errorf("unexpected id<i32> signature: %+v", inst)
	}

	count := 0
	for _, name := range rmod.FunctionOrder {
		if name == "id<i32>" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one id<i32> entry in FunctionOrder, found %d", count)
	}
}

// TestPointerIndexing covers spec scenario 5.
func TestPointerIndexing(t *testing.T) {
	rmod := mustResolve(t, "fn f(p:[u8],i:usize):u8{\nreturn p[i];\n}\n")
	fn := rmod.Functions["f"]
	ret := fn.Body[0].(resolved.Return)
	if ret.Value.Type.Kind != resolved.U8 {
		t.Fatalf("expected index access type u8, got %s", ret.Value.Type)
	}
	idx, ok := ret.Value.Kind.(resolved.IndexAccess)
	if !ok {
		t.Fatalf("expected an IndexAccess, got %T", ret.Value.Kind)
	}
	if idx.Index.Type.Kind != resolved.USize {
		t.Errorf("expected index expression type usize, got %s", idx.Index.Type)
	}
}

// TestUndefinedVariableError covers spec scenario 6: the error is wrapped
// Context(ReturnStatement) then Context(Function), innermost first.
func TestUndefinedVariableError(t *testing.T) {
	mod, err := frontend.Parse("fn f():i32{\nreturn y;\n}\n")
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}
	_, errs, err := Resolve(mod)
	if err != nil {
		t.Fatalf("Resolve: internal error: %s", err)
	}
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(errs), errs)
	}
	ce := errs[0]
	if _, ok := ce.Kind.(VariableNotFound); !ok {
		t.Fatalf("expected VariableNotFound, got %T", ce.Kind)
	}
	if len(ce.Context) != 2 || ce.Context[0] != CtxReturnStatement || ce.Context[1] != CtxFunction {
		t.Errorf("expected context [ReturnStatement, Function], got %v", ce.Context)
	}
}

// TestPointerArithmeticPreservesType covers the pointer-arithmetic universal
// property: p + i has the same pointer type as p.
func TestPointerArithmeticPreservesType(t *testing.T) {
	rmod := mustResolve(t, "fn f(p:[i32],i:usize):[i32]{\nreturn p+i;\n}\n")
	fn := rmod.Functions["f"]
	ret := fn.Body[0].(resolved.Return)
	if ret.Value.Type.Kind != resolved.Ptr || ret.Value.Type.Elem.Kind != resolved.I32 {
		t.Errorf("expected pointer-arithmetic result type [i32], got %s", ret.Value.Type)
	}
}

// TestLiteralDefaulting covers the literal-defaulting universal property: an
// unannotated literal resolves to I32, while an annotated one takes the
// annotation's type.
func TestLiteralDefaulting(t *testing.T) {
	rmod := mustResolve(t, "fn f():void{\n1;\nu64 x=2;\n}\n")
	fn := rmod.Functions["f"]
	bare := fn.Body[0].(resolved.Effect)
	if bare.Value.Type.Kind != resolved.I32 {
		t.Errorf("expected unannotated literal to default to i32, got %s", bare.Value.Type)
	}
	decl := fn.Body[1].(resolved.VarDecl)
	if decl.Value.Type.Kind != resolved.U64 {
		t.Errorf("expected annotated literal to take type u64, got %s", decl.Value.Type)
	}
}
