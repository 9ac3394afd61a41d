package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented textual tree of the module, in the spirit of the
// teacher's Node.Print: one line per top-level item and per statement, statements
// indented under their function. Expressions are not printed.
func (m Module) Dump(w io.Writer) {
	fmt.Fprintln(w, "Module")
	for _, tl := range m.TopLevels {
		dumpTopLevel(w, 1, tl.Value)
	}
}

func pad(depth int) string { return strings.Repeat("  ", depth) }

func dumpTopLevel(w io.Writer, depth int, tl TopLevel) {
	switch v := tl.(type) {
	case FunctionTopLevel:
		fmt.Fprintf(w, "%sfunction %s\n", pad(depth), v.Function.Decl.Value.Name)
		for _, s := range v.Function.Body {
			dumpStatement(w, depth+1, s.Value)
		}
	case TypeDefTopLevel:
		fmt.Fprintf(w, "%stypedef %s\n", pad(depth), v.TypeDef.Name)
	}
}

func dumpStatement(w io.Writer, depth int, s Statement) {
	switch v := s.(type) {
	case VariableDeclStatement:
		fmt.Fprintf(w, "%svardecl %s: %s\n", pad(depth), v.Name, v.Type.Value)
	case AssignmentStatement:
		fmt.Fprintf(w, "%sassign %s\n", pad(depth), v.Name)
	case ReturnStatement:
		fmt.Fprintf(w, "%sreturn\n", pad(depth))
	case EffectStatement:
		fmt.Fprintf(w, "%seffect\n", pad(depth))
	}
}
