package frontend

import (
	"fmt"
	"strings"

	"dcc/internal/ast"
)

// ParseError is the single fatal diagnostic a parse run can produce. It carries
// the offending source range and the stack of named grammar contexts active when
// the error was raised (innermost last), mirroring spec.md §7's "parser errors
// carry a source span and a parser context stack."
type ParseError struct {
	Range   ast.Range
	Context []string
	Msg     string
}

func (e *ParseError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("%s: %s", e.Range, e.Msg)
	}
	return fmt.Sprintf("%s: %s (in %s)", e.Range, e.Msg, strings.Join(e.Context, " > "))
}

// newParseErrorAt builds a ParseError with the given context stack snapshot.
func newParseErrorAt(pos ast.Position, ctx []string, format string, args ...interface{}) *ParseError {
	cp := make([]string, len(ctx))
	copy(cp, ctx)
	return &ParseError{
		Range:   ast.Range{From: pos, To: pos},
		Context: cp,
		Msg:     fmt.Sprintf(format, args...),
	}
}
