package resolver

import "dcc/internal/ast"

// registerIntrinsics injects the built-in function declarations into the
// resolver's environment before user code is resolved, per spec.md §4.3's
// "fixed table maps intrinsic function names" and the supplemented intrinsic
// set from original_source/src/llvm_codegen/toplevel.rs: a variadic printf-like
// "print" and a "memcopy" memory-copy primitive. Neither has a body; the code
// generator lowers calls to them directly (internal/codegen/intrinsics.go).
func registerIntrinsics(r *Resolver) {
	u8ptr := ast.Located[ast.UnresolvedType]{Value: ast.PointerType{Elem: ast.TypeRef{Name: "u8"}}}
	voidTy := ast.Located[ast.UnresolvedType]{Value: ast.TypeRef{Name: "void"}}
	usizeTy := ast.Located[ast.UnresolvedType]{Value: ast.TypeRef{Name: "usize"}}

	print := ast.Function{
		Decl: ast.Located[ast.FunctionDecl]{Value: ast.FunctionDecl{
			Name:       "print",
			Params:     []ast.Param{{Name: "fmt", Type: u8ptr}},
			Variadic:   true,
			ReturnType: voidTy,
			Intrinsic:  true,
		}},
	}
	memcopy := ast.Function{
		Decl: ast.Located[ast.FunctionDecl]{Value: ast.FunctionDecl{
			Name: "memcopy",
			Params: []ast.Param{
				{Name: "dst", Type: u8ptr},
				{Name: "src", Type: u8ptr},
				{Name: "n", Type: usizeTy},
			},
			ReturnType: voidTy,
			Intrinsic:  true,
		}},
	}

	r.funcDecls["print"] = print
	r.funcDecls["memcopy"] = memcopy
}
