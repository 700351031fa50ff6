package parser

import (
	"testing"

	"contractabi/internal/ast"
	"contractabi/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSourceLowersDeclarations(t *testing.T) {
	source := `type account_name = u64;
namespace tokens { type amount = u128; }

@contract
export class Token extends Contract implements Serializable {
  owner: account_name;
  @deployer
  init(owner: string): void;
  @message(mutates = false, label = "balance")
  balanceOf(who: string): tokens.amount;
}
`
	program, errs := ParseSource("token.ts", source)
	require.Empty(t, errs)
	require.NotNil(t, program)

	top := program.TopLevel()
	require.Len(t, top, 4)
	assert.Equal(t, "account_name", top[0].Name())
	assert.Equal(t, "tokens", top[1].Name())
	assert.Equal(t, "amount", top[2].Name())
	assert.Equal(t, top[1].ID(), top[2].Parent())

	class, ok := top[3].(*ast.ClassElement)
	require.True(t, ok)
	assert.True(t, class.Decl.Exported)
	assert.Equal(t, "Contract", class.Decl.Extends.Name)
	require.Len(t, class.Decl.Annotations, 1)
	assert.Equal(t, ast.AnnotationContract, class.Decl.Annotations[0].Kind)
	assert.Equal(t, 5, class.Decl.Name.Pos.Line)

	methods := program.Methods(class)
	require.Len(t, methods, 2)
	assert.Equal(t, "init", methods[0].Name())
	assert.Equal(t, class.ID(), methods[0].Parent())

	message := methods[1].Decl
	require.Len(t, message.Annotations, 1)
	assert.Equal(t, ast.AnnotationMessage, message.Annotations[0].Kind)
	assert.Equal(t, []ast.AnnotationArg{
		{Key: "mutates", Value: "false"},
		{Key: "label", Value: "balance"},
	}, message.Annotations[0].Args)
	assert.Equal(t, "tokens.amount", message.Return.Name)

	amount := program.Lookup(message.Return.Name, class.ID())
	assert.Equal(t, top[2], amount)
}

func TestParseSourceLowersArrayForms(t *testing.T) {
	source := `class Store {
  ids: u64[][];
  names: Array<string>;
  book: Map<string, u64>;
  hook: (a: u32) => void;
}`
	program, errs := ParseSource("store.ts", source)
	require.Empty(t, errs)

	class := program.TopLevel()[0].(*ast.ClassElement)
	fields := class.Decl.Fields
	require.Len(t, fields, 4)

	ids := fields[0].Type
	assert.Equal(t, "[]", ids.Name)
	assert.Equal(t, "u64[][]", ids.Text)
	require.Len(t, ids.Args, 1)
	assert.Equal(t, "[]", ids.Args[0].Name)
	assert.Equal(t, "u64[]", ids.Args[0].Text)
	assert.Equal(t, "u64", ids.Args[0].Args[0].Name)

	names := fields[1].Type
	assert.Equal(t, "Array", names.Name)
	assert.Equal(t, "Array<string>", names.Text)
	require.Len(t, names.Args, 1)
	assert.Equal(t, "string", names.Args[0].Text)

	book := fields[2].Type
	assert.Equal(t, "Map", book.Name)
	assert.Equal(t, "Map<string, u64>", book.Text)
	assert.Len(t, book.Args, 2)

	hook := fields[3].Type
	assert.False(t, hook.IsNamed())
	assert.Equal(t, "(a: u32) => void", hook.Text)
	require.NotNil(t, hook.Func)
	assert.Equal(t, "void", hook.Func.Return.Name)
}

func TestParseSourceSyntaxError(t *testing.T) {
	program, errs := ParseSource("bad.ts", "class Token {\n  owner u64;\n}")
	assert.Nil(t, program)
	require.Len(t, errs, 1)
	assert.Equal(t, errors.ErrorSyntax, errs[0].Code)
	assert.Equal(t, 2, errs[0].Position.Line)
	assert.Equal(t, "bad.ts", errs[0].Position.Filename)
}

func TestParseSourceReportsLinkErrors(t *testing.T) {
	source := `class A extends B {}
class B extends A {}
type A = u64;
`
	program, errs := ParseSource("link.ts", source)
	require.NotNil(t, program)
	require.Len(t, errs, 2)

	assert.Equal(t, errors.ErrorDuplicateDeclaration, errs[0].Code)
	assert.Equal(t, 3, errs[0].Position.Line)

	// Breaking the cycle at A leaves B with a terminating chain.
	assert.Equal(t, errors.ErrorCyclicInheritance, errs[1].Code)
	assert.Equal(t, 1, errs[1].Position.Line)

	dup := errs[0].CompilerError()
	assert.Equal(t, "duplicate declaration: A", dup.Message)
	assert.Equal(t, 1, dup.Length)
	require.Len(t, dup.Notes, 1)
	assert.Contains(t, dup.Notes[0], "first declared at")
	require.Len(t, dup.Suggestions, 1)

	cyclic := errs[1].CompilerError()
	require.Len(t, cyclic.Notes, 1)
	assert.Contains(t, cyclic.Notes[0], "inheritance chain: A -> B -> A")
}

func TestParseErrorConvertsToCompilerError(t *testing.T) {
	perr := ParseError{
		Message:  "unexpected token",
		Position: ast.Position{Filename: "f.ts", Line: 1, Column: 4},
		Length:   3,
		Code:     errors.ErrorSyntax,
	}

	ce := perr.CompilerError()
	assert.Equal(t, errors.ErrorSyntax, ce.Code)
	assert.Equal(t, 3, ce.Length)
	assert.Equal(t, errors.Error, ce.Level)
	assert.Equal(t, "f.ts:1:4: unexpected token", perr.Error())
}
