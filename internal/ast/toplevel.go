package ast

// Param is a single (name, type) entry in a function's parameter list.
type Param struct {
	Name string
	Type Located[UnresolvedType]
}

// FunctionDecl is a function's signature: name, generic parameters, ordered
// parameter list, variadic marker, return type, and intrinsic flag.
type FunctionDecl struct {
	Name          string
	GenericParams []Located[string]
	Params        []Param
	Variadic      bool
	ReturnType    Located[UnresolvedType]
	Intrinsic     bool
}

// Function is a full function definition: decl plus body.
type Function struct {
	Decl Located[FunctionDecl]
	Body []Located[Statement]
}

// Field is a single (name, type) entry in a struct's field list.
type Field struct {
	Name string
	Type UnresolvedType
}

// TypeDefKind is the sum type of type-definition kinds. Struct is the only kind
// the grammar currently produces.
type TypeDefKind interface {
	typeDefKind()
}

// StructTypeDef is an ordered field list with optional generic parameters.
type StructTypeDef struct {
	GenericParams []Located[string]
	Fields        []Field
}

func (StructTypeDef) typeDefKind() {}

// TypeDef names and defines a type.
type TypeDef struct {
	Name string
	Kind TypeDefKind
}

// TopLevel is the sum type of module-level items.
type TopLevel interface {
	topLevelNode()
}

// FunctionTopLevel wraps a Function as a top-level item.
type FunctionTopLevel struct {
	Function Function
}

func (FunctionTopLevel) topLevelNode() {}

// TypeDefTopLevel wraps a TypeDef as a top-level item.
type TypeDefTopLevel struct {
	TypeDef TypeDef
}

func (TypeDefTopLevel) topLevelNode() {}

// Module is the parser's final output: an ordered list of top-level items.
type Module struct {
	TopLevels []Located[TopLevel]
}
