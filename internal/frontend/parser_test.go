package frontend

import (
	"testing"

	"dcc/internal/ast"
)

func mustParse(t *testing.T, src string) ast.Module {
	t.Helper()
	mod, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): unexpected error: %s", src, err)
	}
	return mod
}

func TestParseFunctionSignatureAndBody(t *testing.T) {
	mod := mustParse(t, "fn add(a:i32,b:i32):i32{\nreturn a+b;\n}\n")

	if len(mod.TopLevels) != 1 {
		t.Fatalf("expected 1 top-level declaration, got %d", len(mod.TopLevels))
	}
	ftl, ok := mod.TopLevels[0].Value.(ast.FunctionTopLevel)
	if !ok {
		t.Fatalf("expected a FunctionTopLevel, got %T", mod.TopLevels[0].Value)
	}
	decl := ftl.Function.Decl.Value
	if decl.Name != "add" {
		t.Errorf("expected function name %q, got %q", "add", decl.Name)
	}
	if len(decl.Params) != 2 || decl.Params[0].Name != "a" || decl.Params[1].Name != "b" {
		t.Fatalf("unexpected parameter list: %+v", decl.Params)
	}
	for _, p := range decl.Params {
		ref, ok := p.Type.Value.(ast.TypeRef)
		if !ok || ref.Name != "i32" {
			t.Errorf("expected parameter %q to have type i32, got %+v", p.Name, p.Type.Value)
		}
	}
	ret, ok := decl.ReturnType.Value.(ast.TypeRef)
	if !ok || ret.Name != "i32" {
		t.Fatalf("expected return type i32, got %+v", decl.ReturnType.Value)
	}

	if len(ftl.Function.Body) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(ftl.Function.Body))
	}
	ret1, ok := ftl.Function.Body[0].Value.(ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected a ReturnStatement, got %T", ftl.Function.Body[0].Value)
	}
	bin, ok := ret1.Expression.Value.(ast.BinaryExpr)
	if !ok || bin.Op != ast.Add {
		t.Fatalf("expected a '+' BinaryExpr, got %+v", ret1.Expression.Value)
	}
	lhs, ok := bin.LHS.Value.(ast.VariableRefExpr)
	if !ok || lhs.Name != "a" {
		t.Errorf("expected LHS to reference %q, got %+v", "a", bin.LHS.Value)
	}
	rhs, ok := bin.RHS.Value.(ast.VariableRefExpr)
	if !ok || rhs.Name != "b" {
		t.Errorf("expected RHS to reference %q, got %+v", "b", bin.RHS.Value)
	}
}

// TestParsePrecedence verifies that "*" binds tighter than "+": a+b*c must
// parse as a+(b*c), not (a+b)*c.
func TestParsePrecedence(t *testing.T) {
	mod := mustParse(t, "fn f():i32{\nreturn a+b*c;\n}\n")
	body := mod.TopLevels[0].Value.(ast.FunctionTopLevel).Function.Body
	ret := body[0].Value.(ast.ReturnStatement)
	top, ok := ret.Expression.Value.(ast.BinaryExpr)
	if !ok || top.Op != ast.Add {
		t.Fatalf("expected top-level '+', got %+v", ret.Expression.Value)
	}
	if _, ok := top.LHS.Value.(ast.VariableRefExpr); !ok {
		t.Errorf("expected LHS to be a bare variable reference, got %+v", top.LHS.Value)
	}
	rhs, ok := top.RHS.Value.(ast.BinaryExpr)
	if !ok || rhs.Op != ast.Mul {
		t.Fatalf("expected RHS to be a '*' BinaryExpr, got %+v", top.RHS.Value)
	}
}

// TestParseStatementDisambiguation exercises the three statement forms that
// all begin with an identifier-like token: a variable declaration, a plain
// assignment, and a discarded call expression.
func TestParseStatementDisambiguation(t *testing.T) {
	mod := mustParse(t, "fn f():void{\ni32 x=1;\nx=2;\ng();\n}\n")
	body := mod.TopLevels[0].Value.(ast.FunctionTopLevel).Function.Body
	if len(body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(body))
	}
	if _, ok := body[0].Value.(ast.VariableDeclStatement); !ok {
		t.Errorf("expected statement 0 to be a VariableDeclStatement, got %T", body[0].Value)
	}
	if _, ok := body[1].Value.(ast.AssignmentStatement); !ok {
		t.Errorf("expected statement 1 to be an AssignmentStatement, got %T", body[1].Value)
	}
	eff, ok := body[2].Value.(ast.EffectStatement)
	if !ok {
		t.Fatalf("expected statement 2 to be an EffectStatement, got %T", body[2].Value)
	}
	if _, ok := eff.Expression.Value.(ast.CallExpr); !ok {
		t.Errorf("expected discarded expression to be a CallExpr, got %T", eff.Expression.Value)
	}
}

// TestParseIndexAndDeref verifies pointer dereference and index-access syntax.
func TestParseIndexAndDeref(t *testing.T) {
	mod := mustParse(t, "fn f(p:[i32]):i32{\ni32 x=p[0];\nreturn *p;\n}\n")
	decl := mod.TopLevels[0].Value.(ast.FunctionTopLevel).Function.Decl.Value
	ptr, ok := decl.Params[0].Type.Value.(ast.PointerType)
	if !ok {
		t.Fatalf("expected parameter type to be a PointerType, got %+v", decl.Params[0].Type.Value)
	}
	if _, ok := ptr.Elem.(ast.TypeRef); !ok {
		t.Errorf("expected pointer element to be i32, got %+v", ptr.Elem)
	}

	body := mod.TopLevels[0].Value.(ast.FunctionTopLevel).Function.Body
	decl0 := body[0].Value.(ast.VariableDeclStatement)
	if _, ok := decl0.Expression.Value.(ast.IndexAccessExpr); !ok {
		t.Errorf("expected an IndexAccessExpr, got %T", decl0.Expression.Value)
	}
	ret := body[1].Value.(ast.ReturnStatement)
	if _, ok := ret.Expression.Value.(ast.DerefExpr); !ok {
		t.Errorf("expected a DerefExpr, got %T", ret.Expression.Value)
	}
}

// TestParseGenericCallAndStruct exercises generic struct definitions and
// explicit call type arguments.
func TestParseGenericCallAndStruct(t *testing.T) {
	mod := mustParse(t, "struct Box<T>{v:T}\nfn f():void{\nid<i32>(1);\n}\n")
	if len(mod.TopLevels) != 2 {
		t.Fatalf("expected 2 top-level declarations, got %d", len(mod.TopLevels))
	}
	td, ok := mod.TopLevels[0].Value.(ast.TypeDefTopLevel)
	if !ok {
		t.Fatalf("expected a TypeDefTopLevel, got %T", mod.TopLevels[0].Value)
	}
	structDef, ok := td.TypeDef.Kind.(ast.StructTypeDef)
	if !ok || len(structDef.GenericParams) != 1 || structDef.GenericParams[0].Value != "T" {
		t.Fatalf("unexpected struct definition: %+v", td.TypeDef.Kind)
	}

	body := mod.TopLevels[1].Value.(ast.FunctionTopLevel).Function.Body
	eff := body[0].Value.(ast.EffectStatement)
	call, ok := eff.Expression.Value.(ast.CallExpr)
	if !ok || call.Name != "id" || len(call.GenericArgs) != 1 {
		t.Fatalf("expected a call to id<i32>, got %+v", eff.Expression.Value)
	}
}
