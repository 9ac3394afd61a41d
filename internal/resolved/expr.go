package resolved

import "dcc/internal/ast"

// Expression is a resolved expression: a kind paired with its closed type, per
// spec.md §3 ("pair of kind and ty").
type Expression struct {
	Kind ExpressionKind
	Type Type
}

// ExpressionKind is the sum type of resolved expression kinds. It mirrors the
// AST expression kinds plus an explicit Assignment form (spec.md §3: "Kind
// mirrors AST expressions plus an explicit Assignment form").
type ExpressionKind interface {
	resolvedExpressionKind()
}

type NumberLiteral struct {
	Value uint64 // bit pattern; interpret using the owning Expression.Type
}

func (NumberLiteral) resolvedExpressionKind() {}

type StringLiteral struct {
	Value string
}

func (StringLiteral) resolvedExpressionKind() {}

type VariableRef struct {
	Name string
}

func (VariableRef) resolvedExpressionKind() {}

type Binary struct {
	Op  ast.BinaryOp
	LHS *Expression
	RHS *Expression
}

func (Binary) resolvedExpressionKind() {}

type Call struct {
	Callee *Function // the concrete, monomorphized callee
	Args   []*Expression
}

func (Call) resolvedExpressionKind() {}

type Deref struct {
	Target *Expression
}

func (Deref) resolvedExpressionKind() {}

type IndexAccess struct {
	Target *Expression
	Index  *Expression
}

func (IndexAccess) resolvedExpressionKind() {}

// Assignment is the resolver's explicit assignment expression form; its
// Expression.Type is always Void (spec.md §3).
type Assignment struct {
	Name        string
	DerefCount  int
	IndexAccess *Expression
	Value       *Expression
}

func (Assignment) resolvedExpressionKind() {}
