package abi

import (
	"testing"

	"contractabi/internal/ast"
	"contractabi/internal/config"
	"contractabi/internal/parser"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, errs := parser.ParseSource("test.ts", source)
	require.Empty(t, errs, "unexpected parse errors")
	require.NotNil(t, program)
	return program
}

func mustClass(t *testing.T, program *ast.Program, name string) *ast.ClassElement {
	t.Helper()
	class, ok := program.Lookup(name, ast.NoElement).(*ast.ClassElement)
	require.True(t, ok, "class %s not found", name)
	return class
}

func mustMethod(t *testing.T, program *ast.Program, class *ast.ClassElement, name string) *ast.FunctionElement {
	t.Helper()
	for _, m := range program.Methods(class) {
		if m.Name() == name {
			return m
		}
	}
	require.Failf(t, "method not found", "%s.%s", class.Name(), name)
	return nil
}

// fieldType returns the declared type of class.field and the scope it is resolved in.
func fieldType(t *testing.T, program *ast.Program, className, field string) (*ast.TypeExpr, ast.ElementID) {
	t.Helper()
	class := mustClass(t, program, className)
	for _, f := range class.Decl.Fields {
		if f.Name.Value == field {
			return f.Type, class.Parent()
		}
	}
	require.Failf(t, "field not found", "%s.%s", className, field)
	return nil, ast.NoElement
}

func resolveField(t *testing.T, r *Resolver, program *ast.Program, className, field string) (*TypeDescriptor, error) {
	t.Helper()
	expr, scope := fieldType(t, program, className, field)
	return r.Resolve(expr, scope)
}

func newTestResolver(program *ast.Program) *Resolver {
	return NewResolver(program, config.Default())
}
