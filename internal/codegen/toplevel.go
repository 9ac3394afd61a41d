package codegen

import (
	"fmt"

	"dcc/internal/resolved"

	"tinygo.org/x/go-llvm"
)

// structReturnByPointer reports whether fn's return value is passed back
// through a caller-supplied out-pointer prepended to the parameter list,
// rather than as an SSA return value — the struct-return convention
// supplemented from original_source/src/builder/statement.rs's gen_return.
func structReturnByPointer(fn *resolved.Function) bool {
	return fn.ReturnType.Kind == resolved.Struct
}

// genFuncHeader declares fn's LLVM function type and signature, without a
// body, so every call site (including recursive and forward references)
// resolves to a declared llvm.Value regardless of traversal order.
func (g *gen) genFuncHeader(fn *resolved.Function) error {
	params := make([]llvm.Type, 0, len(fn.Params)+1)
	var retTy llvm.Type
	if structReturnByPointer(fn) {
		retTy = g.ctx.VoidType()
		params = append(params, llvm.PointerType(g.lowerType(fn.ReturnType), 0))
	} else {
		retTy = g.lowerType(fn.ReturnType)
	}
	for _, p := range fn.Params {
		params = append(params, g.lowerType(p.Type))
	}

	ft := llvm.FunctionType(retTy, params, fn.Variadic)
	f := llvm.AddFunction(g.mod, fn.Name, ft)
	g.funcs[fn.Name] = f
	return nil
}

// genFuncBody generates fn's single entry block. The dummyc grammar has no
// nested-block or branching statement forms (spec.md §4.1's statement grammar
// is flat: ret | vardecl | assign | effect), so one entry block per function
// suffices — there is no control-flow join to manage.
func (g *gen) genFuncBody(fn *resolved.Function) error {
	f := g.funcs[fn.Name]
	bb := g.ctx.AddBasicBlock(f, "entry")
	g.builder.SetInsertPointAtEnd(bb)

	scope := make(map[string]llvm.Value)
	paramOffset := 0
	var outPtr llvm.Value
	if structReturnByPointer(fn) {
		outPtr = f.Param(0)
		paramOffset = 1
	}
	for i, p := range fn.Params {
		llparam := f.Param(i + paramOffset)
		alloc := g.builder.CreateAlloca(g.lowerType(p.Type), p.Name)
		g.builder.CreateStore(llparam, alloc)
		scope[p.Name] = alloc
	}

	fg := &funcGen{gen: g, fn: fn, scope: scope, outPtr: outPtr, hasOutPtr: structReturnByPointer(fn)}
	terminated := false
	for _, st := range fn.Body {
		term, err := fg.genStatement(st)
		if err != nil {
			return err
		}
		terminated = terminated || term
	}
	if !terminated {
		if fn.ReturnType.Kind != resolved.Void && !fg.hasOutPtr {
			return fmt.Errorf("codegen: function %q falls off its body without a return statement", fn.Name)
		}
		g.builder.CreateRetVoid()
	}
	return nil
}

// funcGen carries the per-function state (variable scope, current function,
// struct-return out-pointer) that statement/expression lowering needs.
type funcGen struct {
	*gen
	fn        *resolved.Function
	scope     map[string]llvm.Value
	outPtr    llvm.Value
	hasOutPtr bool
}
