package codegen

import (
	"dcc/internal/resolved"

	"tinygo.org/x/go-llvm"
)

// Module owns the LLVM context and module produced by Generate. The caller
// (internal/driver) is responsible for target-machine setup and object-file
// emission, per spec.md §6: the code generator hands back "an opaque target-IR
// module object" and the driver, a boundary service, writes it out.
type Module struct {
	Ctx  llvm.Context
	LLVM llvm.Module
}

// Generate lowers rm into a target-IR module. usizeBits is the target's
// pointer width (32 or 64), driving USize's lowering (spec.md §4.3).
func Generate(rm *resolved.Module, name string, usizeBits int) (*Module, error) {
	ctx := llvm.NewContext()
	g := &gen{
		ctx:       ctx,
		mod:       ctx.NewModule(name),
		builder:   ctx.NewBuilder(),
		usizeBits: usizeBits,
		funcs:     make(map[string]llvm.Value),
		strs:      make(map[string]llvm.Value),
	}

	// Header pass first so forward/recursive calls resolve to a declared
	// llvm.Value regardless of declaration order, mirroring the teacher's
	// two-pass genFuncHeader/genFuncBody split (src/ir/llvm/transform.go).
	for _, name := range rm.FunctionOrder {
		fn := rm.Functions[name]
		if fn.Intrinsic {
			continue // intrinsics are declared lazily by internal/codegen/intrinsics.go on first use.
		}
		if err := g.genFuncHeader(fn); err != nil {
			return nil, err
		}
	}
	for _, name := range rm.FunctionOrder {
		fn := rm.Functions[name]
		if fn.Intrinsic {
			continue
		}
		if err := g.genFuncBody(fn); err != nil {
			return nil, err
		}
	}

	return &Module{Ctx: ctx, LLVM: g.mod}, nil
}
