package ast

// Statement is the sum type of every statement kind the grammar produces.
type Statement interface {
	statementNode()
}

// VariableDeclStatement declares and initializes a new binding: "type name = expr".
type VariableDeclStatement struct {
	Type       Located[UnresolvedType]
	Name       string
	Expression Located[Expression]
}

func (VariableDeclStatement) statementNode() {}

// AssignmentStatement assigns to a (possibly dereferenced, possibly indexed)
// existing binding: "**name[i] = expr".
type AssignmentStatement struct {
	DerefCount  int
	IndexAccess *Located[Expression]
	Name        string
	Expression  Located[Expression]
}

func (AssignmentStatement) statementNode() {}

// ReturnStatement returns from the enclosing function, optionally with a value.
type ReturnStatement struct {
	Expression *Located[Expression]
}

func (ReturnStatement) statementNode() {}

// EffectStatement evaluates an expression and discards its value.
type EffectStatement struct {
	Expression Located[Expression]
}

func (EffectStatement) statementNode() {}
