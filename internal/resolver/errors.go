// Package resolver turns a located ast.Module into a fully typed resolved.Module:
// name binding, type inference with bounded implicit coercion, and
// monomorphization of generic functions and structs (spec.md §4.2).
package resolver

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"dcc/internal/ast"
)

// ContextKind names the syntactic category under resolution when an error was
// raised, grounded on original_source/src/resolver/error.rs's ContextType.
type ContextKind int

const (
	CtxFunction ContextKind = iota
	CtxReturnStatement
	CtxAssignStatement
	CtxVariableDeclStatement
	CtxDiscardedExpressionStatement
	CtxCallExpression
	CtxBinaryExpression
	CtxNumberLiteralExpression
	CtxVariableRefExpression
	CtxIntrinsicExpression
)

func (c ContextKind) String() string {
	switch c {
	case CtxFunction:
		return "function"
	case CtxReturnStatement:
		return "return statement"
	case CtxAssignStatement:
		return "assign statement"
	case CtxVariableDeclStatement:
		return "variable declaration"
	case CtxDiscardedExpressionStatement:
		return "discarded expression statement"
	case CtxCallExpression:
		return "call expression"
	case CtxBinaryExpression:
		return "binary expression"
	case CtxNumberLiteralExpression:
		return "number literal"
	case CtxVariableRefExpression:
		return "variable reference"
	case CtxIntrinsicExpression:
		return "intrinsic expression"
	default:
		return "?"
	}
}

// ErrorKind is the accumulating (recoverable) error vocabulary named in
// spec.md §7.
type ErrorKind interface {
	errorKind()
	fmt.Stringer
}

type VariableNotFound struct{ Name string }

func (VariableNotFound) errorKind() {}
func (e VariableNotFound) String() string {
	return fmt.Sprintf("variable not found: %q", e.Name)
}

type FunctionNotFound struct{ Name string }

func (FunctionNotFound) errorKind() {}
func (e FunctionNotFound) String() string {
	return fmt.Sprintf("function not found: %q", e.Name)
}

type IsNotFunction struct{ Name string }

func (IsNotFunction) errorKind() {}
func (e IsNotFunction) String() string { return fmt.Sprintf("%q is not a function", e.Name) }

type IsNotType struct{ Name string }

func (IsNotType) errorKind()       {}
func (e IsNotType) String() string { return fmt.Sprintf("%q is not a type", e.Name) }

type IsNotVariable struct{ Name string }

func (IsNotVariable) errorKind()       {}
func (e IsNotVariable) String() string { return fmt.Sprintf("%q is not a variable", e.Name) }

type InvalidOperand struct{ Reason string }

func (InvalidOperand) errorKind()       {}
func (e InvalidOperand) String() string { return "invalid operand: " + e.Reason }

type InvalidArgument struct{ Reason string }

func (InvalidArgument) errorKind()       {}
func (e InvalidArgument) String() string { return "invalid argument: " + e.Reason }

type TypeMismatch struct {
	Expected, Actual string
}

func (TypeMismatch) errorKind() {}
func (e TypeMismatch) String() string {
	return fmt.Sprintf("type mismatch: expected %s, found %s", e.Expected, e.Actual)
}

type CannotDeref struct {
	Name  string
	Depth int
}

func (CannotDeref) errorKind() {}
func (e CannotDeref) String() string {
	return fmt.Sprintf("cannot dereference %q %d time(s)", e.Name, e.Depth)
}

type CannotIndexAccess struct {
	Name string
	Type string
}

func (CannotIndexAccess) errorKind() {}
func (e CannotIndexAccess) String() string {
	return fmt.Sprintf("cannot index into %q of type %s", e.Name, e.Type)
}

type InvalidArrayIndex struct{}

func (InvalidArrayIndex) errorKind()     {}
func (InvalidArrayIndex) String() string { return "invalid array index" }

type TypeNotFound struct{ Name string }

func (TypeNotFound) errorKind()       {}
func (e TypeNotFound) String() string { return fmt.Sprintf("type not found: %q", e.Name) }

type TooManyGenericArgs struct {
	FuncName         string
	Expected, Actual int
}

func (TooManyGenericArgs) errorKind() {}
func (e TooManyGenericArgs) String() string {
	return fmt.Sprintf("too many generic arguments for %q: expected %d, found %d", e.FuncName, e.Expected, e.Actual)
}

type TooFewGenericArgs struct {
	FuncName         string
	Expected, Actual int
}

func (TooFewGenericArgs) errorKind() {}
func (e TooFewGenericArgs) String() string {
	return fmt.Sprintf("too few generic arguments for %q: expected %d, found %d", e.FuncName, e.Expected, e.Actual)
}

// CompileError pairs an ErrorKind with the Context frames that wrapped it while
// unwinding, outermost last (spec.md §7).
type CompileError struct {
	Range   ast.Range
	Kind    ErrorKind
	Context []ContextKind
}

func (e CompileError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("%s: %s", e.Range, e.Kind)
	}
	names := make([]string, len(e.Context))
	for i, c := range e.Context {
		names[i] = c.String()
	}
	return fmt.Sprintf("%s: %s (in %s)", e.Range, e.Kind, strings.Join(names, " > "))
}

// Accumulator collects recoverable CompileErrors by reference. It is the
// sequential replacement for the teacher's channel/mutex-based util.perror
// (src/util/perror.go) — see DESIGN.md.
type Accumulator struct {
	errs []CompileError
}

// Append records a new recoverable error.
func (a *Accumulator) Append(rng ast.Range, ctx []ContextKind, kind ErrorKind) {
	cp := make([]ContextKind, len(ctx))
	copy(cp, ctx)
	a.errs = append(a.errs, CompileError{Range: rng, Kind: kind, Context: cp})
}

// Len returns the number of accumulated errors.
func (a *Accumulator) Len() int { return len(a.errs) }

// mark and truncate let a throwaway resolution pass (generic-argument type
// inference) discard any errors it provoked, since the real resolution pass
// that follows re-resolves the same expressions and records errors properly.
func (a *Accumulator) mark() int      { return len(a.errs) }
func (a *Accumulator) truncate(n int) { a.errs = a.errs[:n] }

// Errors returns the accumulated errors in the order they were recorded.
func (a *Accumulator) Errors() []CompileError { return a.errs }

// FatalError builds the error for an internal invariant violation in the
// resolver (spec.md §7): an unresolved-type variant or typedef kind that
// resolveType does not handle. It is built with github.com/pkg/errors so a
// stack trace survives to the top-level CLI error print. Resolve returns it
// and stops when it arises in a top-level function's signature; met while
// resolving a call or a variable declaration's type, it does not stop
// resolution. The code generator does not use it: it panics on an Unknown
// type.
func FatalError(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// WrapFatal attaches resolver context to an underlying fatal error while
// preserving its stack trace.
func WrapFatal(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
