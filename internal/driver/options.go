// Package driver wires together the frontend, resolver and code generator
// stages into a single command-line invocation, the way main.go/util.Options
// did for the teacher (src/main.go, src/util/args.go).
package driver

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// Options controls one compile invocation (spec.md §6). Unlike the teacher's
// util.Options, there is no Threads field: spec.md §5 mandates a single
// sequential pipeline, so the CLI never exposes a worker-pool knob.
type Options struct {
	Src         string // path to source file; empty means read stdin
	Out         string // path to output object file
	Verbose     bool   // print the syntax tree, resolved function names and target triple
	TokenStream bool   // print the lexer's token stream and exit
	EmitIR      bool   // dump LLVM IR to stdout before emitting the object file

	TargetArch   int
	TargetVendor int
	TargetCPU    int
	TargetOS     int
}

const appVersion = "dcc 1.0"

// Target machine architectures (spec.md §6's "target triple components").
const (
	UnknownArch = iota
	X86_64
	X86_32
	Aarch64
	Riscv64
	Riscv32
)

// Target operating system.
const (
	UnknownOS = iota
	Linux
	Windows
	MAC
)

// Target vendor.
const (
	UnknownVendor = iota
	Apple
	PC
	IBM
)

// ParseArgs parses args (normally os.Args[1:]) into Options, following the
// teacher's hand-rolled flag loop (src/util/args.go's ParseArgs) rather than
// the stdlib flag package, whose single-dash/no-dash positional mixing the
// teacher's grammar doesn't follow.
func ParseArgs(args []string) (Options, error) {
	opt := Options{}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--h", "-help", "--help":
			printHelp()
			os.Exit(0)
		case "-ir":
			opt.EmitIR = true
		case "-ts":
			opt.TokenStream = true
		case "-vb":
			opt.Verbose = true
		case "-v", "--v", "-version", "--version":
			fmt.Println(appVersion)
			os.Exit(0)
		case "-o":
			if i+1 >= len(args) {
				return opt, fmt.Errorf("got flag %s but no argument", args[i])
			}
			if strings.HasPrefix(args[i+1], "-") {
				return opt, fmt.Errorf("expected path to output file, got new flag %s", args[i+1])
			}
			opt.Out = args[i+1]
			i++
		case "-arch":
			if i+1 >= len(args) {
				return opt, fmt.Errorf("got flag %s but no argument", args[i])
			}
			switch args[i+1] {
			case "x86_64":
				opt.TargetArch = X86_64
			case "x86_32":
				opt.TargetArch = X86_32
			case "aarch64":
				opt.TargetArch = Aarch64
			case "riscv64":
				opt.TargetArch = Riscv64
			case "riscv32":
				opt.TargetArch = Riscv32
			default:
				return opt, fmt.Errorf("unexpected architecture identifier: %s", args[i+1])
			}
			i++
		case "-os":
			if i+1 >= len(args) {
				return opt, fmt.Errorf("got flag %s but no argument", args[i])
			}
			switch args[i+1] {
			case "linux":
				opt.TargetOS = Linux
			case "windows":
				opt.TargetOS = Windows
			case "mac":
				opt.TargetOS = MAC
			default:
				return opt, fmt.Errorf("unexpected operating system identifier: %s", args[i+1])
			}
			i++
		case "-vendor":
			if i+1 >= len(args) {
				return opt, fmt.Errorf("got flag %s but no argument", args[i])
			}
			switch args[i+1] {
			case "pc":
				opt.TargetVendor = PC
			case "apple":
				opt.TargetVendor = Apple
			case "ibm":
				opt.TargetVendor = IBM
			default:
				return opt, fmt.Errorf("unexpected vendor identifier: %s", args[i+1])
			}
			i++
		default:
			if strings.HasPrefix(args[i], "-") {
				return opt, fmt.Errorf("unexpected flag: %s", args[i])
			}
			opt.Src = args[i]
		}
	}
	return opt, nil
}

func printHelp() {
	w := tabwriter.NewWriter(os.Stdout, 6, 1, 1, 0, 0)
	_, _ = fmt.Fprintln(w, "-h, -help\tPrints this help message and exits.")
	_, _ = fmt.Fprintln(w, "-o\tPath to the output object file.")
	_, _ = fmt.Fprintln(w, "-arch\tTarget architecture: x86_64, x86_32, aarch64, riscv64, riscv32.")
	_, _ = fmt.Fprintln(w, "-os\tTarget operating system: linux, windows, mac.")
	_, _ = fmt.Fprintln(w, "-vendor\tTarget vendor: pc, apple, ibm.")
	_, _ = fmt.Fprintln(w, "-ts\tPrint the token stream and exit.")
	_, _ = fmt.Fprintln(w, "-ir\tDump the generated LLVM IR to stdout.")
	_, _ = fmt.Fprintln(w, "-vb\tVerbose: print the syntax tree, resolved function names and target triple.")
	_, _ = fmt.Fprintln(w, "-v, -version\tPrints the compiler version and exits.")
	_ = w.Flush()
}
