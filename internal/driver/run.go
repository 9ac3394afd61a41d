package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dcc/internal/codegen"
	"dcc/internal/frontend"
	"dcc/internal/resolver"

	"tinygo.org/x/go-llvm"
)

// Run executes the full pipeline: read source, lex/parse, resolve, generate
// and emit an object file. It mirrors the teacher's top-level run() in
// src/main.go stage-by-stage, replacing the goyacc/LIR/native-backend path
// with the parser/resolver/LLVM-codegen path spec.md describes.
func Run(opt Options) error {
	src, err := ReadSource(opt)
	if err != nil {
		return fmt.Errorf("could not read source code: %s", err)
	}

	if opt.TokenStream {
		toks, err := frontend.TokenStream(src)
		if err != nil {
			return fmt.Errorf("syntax error: %s", err)
		}
		for _, t := range toks {
			fmt.Println(t)
		}
		return nil
	}

	mod, err := frontend.Parse(src)
	if err != nil {
		return fmt.Errorf("parse error: %s", err)
	}
	if opt.Verbose {
		fmt.Println("syntax tree:")
		mod.Dump(os.Stdout)
	}

	rmod, errs, err := resolver.Resolve(mod)
	if err != nil {
		return fmt.Errorf("internal compiler error: %s", err)
	}
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Println(e.Error())
		}
		return fmt.Errorf("%d semantic error(s)", len(errs))
	}

	if opt.Verbose {
		fmt.Println("resolved module:")
		for _, name := range rmod.FunctionOrder {
			fmt.Printf("  %s\n", name)
		}
	}

	usizeBits := 64
	if opt.TargetArch == X86_32 || opt.TargetArch == Riscv32 {
		usizeBits = 32
	}

	name := "module"
	if opt.Src != "" {
		name = strings.TrimSuffix(filepath.Base(opt.Src), filepath.Ext(opt.Src))
	}
	genMod, err := codegen.Generate(rmod, name, usizeBits)
	if err != nil {
		return fmt.Errorf("code generation error: %s", err)
	}
	defer genMod.Ctx.Dispose()

	if opt.EmitIR {
		fmt.Print(genMod.LLVM.String())
	}

	return emitObject(opt, genMod)
}

// emitObject configures an LLVM target machine from opt and writes genMod's
// compiled object code to opt.Out, grounded on the tail of the teacher's
// GenLLVM (src/ir/llvm/transform.go): InitializeAllTarget*, target-triple
// construction, CreateTargetMachine, SetDataLayout/SetTarget, then
// EmitToMemoryBuffer and a plain file write.
func emitObject(opt Options, genMod *codegen.Module) error {
	llvm.InitializeAllTargetInfos()
	llvm.InitializeAllTargetMCs()
	llvm.InitializeAllAsmParsers()
	llvm.InitializeAllAsmPrinters()

	target, triple, err := targetTriple(opt)
	if err != nil {
		return err
	}
	if opt.Verbose {
		fmt.Printf("compiling for target %s\n", triple)
	}

	var cpu string
	switch opt.TargetArch {
	case Riscv64:
		cpu = "generic-rv64"
	case Riscv32:
		cpu = "generic-rv32"
	default:
		cpu = "generic"
	}

	tm := target.CreateTargetMachine(triple, cpu, "",
		llvm.CodeGenLevelNone,
		llvm.RelocDefault,
		llvm.CodeModelDefault)
	defer tm.Dispose()

	td := tm.CreateTargetData()
	defer td.Dispose()

	genMod.LLVM.SetDataLayout(td.String())
	genMod.LLVM.SetTarget(tm.Triple())

	buf, err := tm.EmitToMemoryBuffer(genMod.LLVM, llvm.ObjectFile)
	if err != nil {
		return err
	}
	if buf.IsNil() {
		return errors.New("could not emit compiled code to memory")
	}

	out := opt.Out
	if out == "" {
		base := "module"
		if opt.Src != "" {
			base = strings.TrimSuffix(filepath.Base(opt.Src), filepath.Ext(opt.Src))
		}
		out = fmt.Sprintf("./%s.o", base)
	}

	fd, err := os.OpenFile(out, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer fd.Close()
	if _, err := fd.Write(buf.Bytes()); err != nil {
		return err
	}
	return nil
}

// targetTriple builds an LLVM target triple from opt's architecture/vendor/OS
// flags, defaulting to the host's triple when no architecture was requested
// (spec.md §6), grounded on the teacher's genTargetTriple.
func targetTriple(opt Options) (llvm.Target, string, error) {
	var triple string
	if opt.TargetArch == UnknownArch {
		triple = llvm.DefaultTargetTriple()
	} else {
		sb := strings.Builder{}
		switch opt.TargetArch {
		case Aarch64:
			sb.WriteString("aarch64")
		case Riscv64:
			sb.WriteString("riscv64")
		case Riscv32:
			sb.WriteString("riscv32")
		case X86_64:
			sb.WriteString("x86_64")
		case X86_32:
			sb.WriteString("x86")
		default:
			return llvm.Target{}, "", fmt.Errorf("unsupported target architecture identifier %d", opt.TargetArch)
		}
		sb.WriteRune('-')

		switch opt.TargetVendor {
		case Apple:
			sb.WriteString("apple")
		case IBM:
			sb.WriteString("ibm")
		default:
			sb.WriteString("pc")
		}
		sb.WriteRune('-')

		switch opt.TargetOS {
		case Linux:
			sb.WriteString("linux")
		case Windows:
			sb.WriteString("win32")
		case MAC:
			sb.WriteString("darwin")
		default:
			sb.WriteString("none")
		}
		sb.WriteRune('-')
		sb.WriteString("gnu")

		triple = sb.String()
	}

	t, err := llvm.GetTargetFromTriple(triple)
	if err != nil {
		return llvm.Target{}, "", err
	}
	return t, triple, nil
}
