package codegen

import (
	"fmt"

	"dcc/internal/ast"
	"dcc/internal/resolved"

	"tinygo.org/x/go-llvm"
)

// genExpression lowers a single resolved expression to an SSA value,
// following the dispatch shape of the teacher's genExpr (src/ir/llvm/transform.go).
func (fg *funcGen) genExpression(e *resolved.Expression) (llvm.Value, error) {
	switch v := e.Kind.(type) {
	case resolved.NumberLiteral:
		return llvm.ConstInt(fg.lowerType(e.Type), v.Value, isSignedArith(e.Type)), nil

	case resolved.StringLiteral:
		if s, ok := fg.strs[v.Value]; ok {
			return s, nil
		}
		s := fg.builder.CreateGlobalStringPtr(v.Value, "str")
		fg.strs[v.Value] = s
		return s, nil

	case resolved.VariableRef:
		alloc, ok := fg.scope[v.Name]
		if !ok {
			return llvm.Value{}, fmt.Errorf("codegen: unbound variable %q reached code generator", v.Name)
		}
		return fg.builder.CreateLoad(alloc, v.Name), nil

	case resolved.Binary:
		return fg.genBinary(e.Type, v)

	case resolved.Call:
		return fg.genCall(v)

	case resolved.Deref:
		target, err := fg.genExpression(v.Target)
		if err != nil {
			return llvm.Value{}, err
		}
		return fg.builder.CreateLoad(target, ""), nil

	case resolved.IndexAccess:
		addr, err := fg.genIndexAddr(v)
		if err != nil {
			return llvm.Value{}, err
		}
		return fg.builder.CreateLoad(addr, ""), nil

	case resolved.Assignment:
		return fg.genAssignment(v)

	default:
		return llvm.Value{}, fmt.Errorf("codegen: unhandled expression kind %T", e.Kind)
	}
}

// genBinary lowers a binary operation, selecting the signed/unsigned
// instruction variant from the result type per spec.md §4.3.
func (fg *funcGen) genBinary(resultTy resolved.Type, v resolved.Binary) (llvm.Value, error) {
	lhs, err := fg.genExpression(v.LHS)
	if err != nil {
		return llvm.Value{}, err
	}
	rhs, err := fg.genExpression(v.RHS)
	if err != nil {
		return llvm.Value{}, err
	}

	// Pointer arithmetic (ptr +/- integer offset) lowers to a GEP rather than
	// an arithmetic instruction (spec.md §4.3).
	if v.LHS.Type.Kind == resolved.Ptr {
		switch v.Op {
		case ast.Add:
			return fg.builder.CreateGEP(lhs, []llvm.Value{rhs}, ""), nil
		case ast.Sub:
			neg := fg.builder.CreateSub(llvm.ConstInt(rhs.Type(), 0, true), rhs, "")
			return fg.builder.CreateGEP(lhs, []llvm.Value{neg}, ""), nil
		}
	}

	switch v.Op {
	case ast.Add:
		return fg.builder.CreateAdd(lhs, rhs, ""), nil
	case ast.Sub:
		return fg.builder.CreateSub(lhs, rhs, ""), nil
	case ast.Mul:
		return fg.builder.CreateMul(lhs, rhs, ""), nil
	case ast.Div:
		if isSignedArith(resultTy) {
			return fg.builder.CreateSDiv(lhs, rhs, ""), nil
		}
		return fg.builder.CreateUDiv(lhs, rhs, ""), nil
	default:
		return llvm.Value{}, fmt.Errorf("codegen: unhandled binary operator %v", v.Op)
	}
}

// genCall lowers a call to either a registered intrinsic or an ordinary,
// already-headered resolved function.
func (fg *funcGen) genCall(v resolved.Call) (llvm.Value, error) {
	if v.Callee.Intrinsic {
		return fg.genIntrinsicCall(v)
	}
	target, ok := fg.funcs[v.Callee.Name]
	if !ok {
		return llvm.Value{}, fmt.Errorf("codegen: call to undeclared function %q", v.Callee.Name)
	}

	args := make([]llvm.Value, 0, len(v.Args)+1)
	var out llvm.Value
	structReturn := structReturnByPointer(v.Callee)
	if structReturn {
		out = fg.builder.CreateAlloca(fg.lowerType(v.Callee.ReturnType), "")
		args = append(args, out)
	}
	for _, a := range v.Args {
		av, err := fg.genExpression(a)
		if err != nil {
			return llvm.Value{}, err
		}
		args = append(args, av)
	}
	call := fg.builder.CreateCall(target, args, "")
	if structReturn {
		return fg.builder.CreateLoad(out, ""), nil
	}
	return call, nil
}

// genIndexAddr computes the address of a Target[Index] expression via GEP,
// without loading it — shared by read (IndexAccess) and write (Assignment)
// paths.
func (fg *funcGen) genIndexAddr(v resolved.IndexAccess) (llvm.Value, error) {
	target, err := fg.genExpression(v.Target)
	if err != nil {
		return llvm.Value{}, err
	}
	idx, err := fg.genExpression(v.Index)
	if err != nil {
		return llvm.Value{}, err
	}
	return fg.builder.CreateGEP(target, []llvm.Value{idx}, ""), nil
}

// genAssignment lowers the resolver's explicit Assignment expression form:
// walk DerefCount pointer layers (and an optional index) off the named
// variable's address, then store.
func (fg *funcGen) genAssignment(v resolved.Assignment) (llvm.Value, error) {
	rhs, err := fg.genExpression(v.Value)
	if err != nil {
		return llvm.Value{}, err
	}

	addr, ok := fg.scope[v.Name]
	if !ok {
		return llvm.Value{}, fmt.Errorf("codegen: unbound variable %q reached code generator", v.Name)
	}
	for i := 0; i < v.DerefCount; i++ {
		addr = fg.builder.CreateLoad(addr, "")
	}
	if v.IndexAccess != nil {
		base := fg.builder.CreateLoad(addr, "")
		idx, err := fg.genExpression(v.IndexAccess)
		if err != nil {
			return llvm.Value{}, err
		}
		addr = fg.builder.CreateGEP(base, []llvm.Value{idx}, "")
	}

	fg.builder.CreateStore(rhs, addr)
	return rhs, nil
}
