package codegen

import (
	"fmt"

	"dcc/internal/resolved"
)

// genStatement lowers a single resolved statement. The returned bool reports
// whether the statement terminated the block (a Return), so genFuncBody knows
// not to append an implicit trailing ret.
func (fg *funcGen) genStatement(s resolved.Statement) (bool, error) {
	switch v := s.(type) {
	case resolved.VarDecl:
		return false, fg.genVarDecl(v)
	case resolved.Return:
		return true, fg.genReturn(v)
	case resolved.Effect:
		_, err := fg.genExpression(v.Value)
		return false, err
	default:
		return false, fmt.Errorf("codegen: unhandled statement kind %T", s)
	}
}

func (fg *funcGen) genVarDecl(v resolved.VarDecl) error {
	val, err := fg.genExpression(v.Value)
	if err != nil {
		return err
	}
	alloc := fg.builder.CreateAlloca(fg.lowerType(v.Type), v.Name)
	fg.builder.CreateStore(val, alloc)
	fg.scope[v.Name] = alloc
	return nil
}

// genReturn lowers a return statement. A function whose return type is a
// struct returns through the out-pointer parameter (structReturnByPointer)
// instead of an SSA ret value: the resolved struct value is stored directly
// into *outPtr via LLVM's first-class aggregate store, a simplification of
// original_source/src/builder/statement.rs's gen_return (which emits an
// explicit memcpy loop; go-llvm's aggregate store does the same job without
// a byte-size computation).
func (fg *funcGen) genReturn(v resolved.Return) error {
	if fg.hasOutPtr {
		if v.Value == nil {
			fg.builder.CreateRetVoid()
			return nil
		}
		val, err := fg.genExpression(v.Value)
		if err != nil {
			return err
		}
		fg.builder.CreateStore(val, fg.outPtr)
		fg.builder.CreateRetVoid()
		return nil
	}
	if v.Value == nil {
		fg.builder.CreateRetVoid()
		return nil
	}
	val, err := fg.genExpression(v.Value)
	if err != nil {
		return err
	}
	fg.builder.CreateRet(val)
	return nil
}
