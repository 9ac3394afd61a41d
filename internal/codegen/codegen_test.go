package codegen

import (
	"testing"

	"dcc/internal/frontend"
	"dcc/internal/resolver"

	"tinygo.org/x/go-llvm"
)

func mustGenerate(t *testing.T, src string) *Module {
	t.Helper()
	mod, err := frontend.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %s", src, err)
	}
	rmod, errs, err := resolver.Resolve(mod)
	if err != nil {
		t.Fatalf("Resolve(%q): internal error: %s", src, err)
	}
	if len(errs) != 0 {
		t.Fatalf("Resolve(%q): unexpected errors: %v", src, errs)
	}
	genMod, err := Generate(rmod, "test", 64)
	if err != nil {
		t.Fatalf("Generate(%q): %s", src, err)
	}
	return genMod
}

// TestGenerateSimpleFunction covers spec scenario 2: a single i32-returning
// function with a constant expression body lowers to a declared LLVM
// function taking no parameters.
func TestGenerateSimpleFunction(t *testing.T) {
	gm := mustGenerate(t, "fn f():i32{\nreturn 1+2*3;\n}\n")
	defer gm.Ctx.Dispose()

	f := gm.LLVM.NamedFunction("f")
	if f.IsNil() {
		t.Fatalf("expected a declared function %q", "f")
	}
	if len(f.Params()) != 0 {
		t.Errorf("expected 0 params, got %d", len(f.Params()))
	}
}

// TestGenerateParamsAndCall covers a caller/callee pair, verifying that the
// header pass declares the callee before the caller's body references it.
func TestGenerateParamsAndCall(t *testing.T) {
	gm := mustGenerate(t, "fn add(a:i32,b:i32):i32{\nreturn a+b;\n}\nfn main():i32{\nreturn add(1,2);\n}\n")
	defer gm.Ctx.Dispose()

	add := gm.LLVM.NamedFunction("add")
	if add.IsNil() || len(add.Params()) != 2 {
		t.Fatalf("expected a 2-param function %q, got %+v", "add", add)
	}
	main := gm.LLVM.NamedFunction("main")
	if main.IsNil() {
		t.Fatalf("expected a declared function %q", "main")
	}
}

// TestGenerateGenericMonomorphization covers spec scenario 4: each
// monomorphized instance is declared under its mangled name.
func TestGenerateGenericMonomorphization(t *testing.T) {
	gm := mustGenerate(t, "fn id<T>(x:T):T{\nreturn x;\n}\nfn main():i32{\nreturn id<i32>(7);\n}\n")
	defer gm.Ctx.Dispose()

	inst := gm.LLVM.NamedFunction("id<i32>")
	if inst.IsNil() {
		t.Fatalf("expected a monomorphized function %q", "id<i32>")
	}
	if len(inst.Params()) != 1 {
		t.Errorf("expected 1 param, got %d", len(inst.Params()))
	}
}

// TestGeneratePointerIndexing covers spec scenario 5: a pointer parameter
// lowers to an LLVM pointer-typed parameter.
func TestGeneratePointerIndexing(t *testing.T) {
	gm := mustGenerate(t, "fn f(p:[u8],i:usize):u8{\nreturn p[i];\n}\n")
	defer gm.Ctx.Dispose()

	f := gm.LLVM.NamedFunction("f")
	if f.IsNil() || len(f.Params()) != 2 {
		t.Fatalf("expected a 2-param function %q, got %+v", "f", f)
	}
	if f.Params()[0].Type().TypeKind() != llvm.PointerTypeKind {
		t.Errorf("expected parameter 0 to be a pointer type, got %s", f.Params()[0].Type().TypeKind())
	}
}

// TestGenerateStructReturnOutPointer covers the struct-return ABI: a
// struct-returning function gains a leading pointer parameter and itself
// returns void.
func TestGenerateStructReturnOutPointer(t *testing.T) {
	gm := mustGenerate(t, "struct Pair{a:i32,b:i32}\nfn mk(p:Pair):Pair{\nreturn p;\n}\n")
	defer gm.Ctx.Dispose()

	mk := gm.LLVM.NamedFunction("mk")
	if mk.IsNil() {
		t.Fatalf("expected a declared function %q", "mk")
	}
	if len(mk.Params()) != 2 {
		t.Fatalf("expected 2 params (out-pointer + struct arg), got %d", len(mk.Params()))
	}
	if mk.Params()[0].Type().TypeKind() != llvm.PointerTypeKind {
		t.Errorf("expected param 0 to be the struct out-pointer, got %s", mk.Params()[0].Type().TypeKind())
	}
	if mk.Type().ElementType().ReturnType().TypeKind() != llvm.VoidTypeKind {
		t.Errorf("expected struct-returning function itself to return void")
	}
}

// TestGenerateVoidFallsOffBodyErrors verifies that a non-void, non-struct
// function whose body has no terminating return is rejected rather than
// silently emitting an unterminated basic block.
func TestGenerateNonVoidFallsOffBodyErrors(t *testing.T) {
	mod, err := frontend.Parse("fn f():i32{\ni32 x=1;\n}\n")
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}
	rmod, errs, err := resolver.Resolve(mod)
	if err != nil {
		t.Fatalf("Resolve: internal error: %s", err)
	}
	if len(errs) != 0 {
		t.Fatalf("Resolve: unexpected errors: %v", errs)
	}
	if _, err := Generate(rmod, "test", 64); err == nil {
		t.Fatalf("expected Generate to reject a non-void function falling off its body")
	}
}
