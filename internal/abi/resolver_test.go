package abi

import (
	"testing"

	"contractabi/internal/ast"
	"contractabi/internal/config"
	"contractabi/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const typesSource = `
type A = u64;
type B = A;
type Asset = u64;
type Coin = Asset;
type ids = u64[];
type ledger = Map<string, B>;
type Holder = Account;
type Label = string;
type Hook = (a: u32) => void;
type Relay = Hook;

namespace vault {
  type A = u32;
  class Safe {
    local: A;
    global: B;
  }
}

class Account implements Serializable {}
class Receipt extends Account implements Returnable {}

class Probe {
  bracket: string[];
  angle: Array<string>;
  nested: u64[][];
  title: String;
  flag: boolean;
  a: A;
  b: B;
  coin: Coin;
  asset: Asset;
  list: ids;
  book: ledger;
  holder: Holder;
  label: Label;
  hook: Relay;
  owner: Account;
  receipt: Receipt;
  ghost: Acount;
  qualified: vault.A;
  callbacks: Map<string, (a: u32) => void>;
  bare: Array;
}
`

func TestResolveArraySyntaxEquivalence(t *testing.T) {
	program := mustParse(t, typesSource)
	r := newTestResolver(program)

	bracket, err := resolveField(t, r, program, "Probe", "bracket")
	require.NoError(t, err)
	angle, err := resolveField(t, r, program, "Probe", "angle")
	require.NoError(t, err)

	for _, desc := range []*TypeDescriptor{bracket, angle} {
		assert.Equal(t, KindArray, desc.Kind)
		require.Len(t, desc.TypeArguments, 1)
		assert.Equal(t, KindString, desc.TypeArguments[0].Kind)
		assert.Equal(t, "string[]", desc.ABIType())
		assert.Equal(t, "string[]", desc.CanonicalName)
		assert.Empty(t, desc.CodecHint)
		assert.Empty(t, desc.DefaultValue)
	}
	assert.Equal(t, "[]", bracket.Name)
	assert.Equal(t, "Array", angle.Name)
	assert.Equal(t, "string[]", bracket.OriginalType)
	assert.Equal(t, "Array<string>", angle.OriginalType)
}

func TestResolveNestedArray(t *testing.T) {
	program := mustParse(t, typesSource)
	r := newTestResolver(program)

	nested, err := resolveField(t, r, program, "Probe", "nested")
	require.NoError(t, err)

	assert.Equal(t, KindArray, nested.Kind)
	inner := nested.ElementType()
	require.NotNil(t, inner)
	assert.Equal(t, KindArray, inner.Kind)
	assert.Equal(t, "u64[]", inner.OriginalType)
	assert.Equal(t, KindNumber, inner.ElementType().Kind)
	assert.Equal(t, "u64[][]", nested.CanonicalName)
}

func TestResolveAliasTransitivity(t *testing.T) {
	program := mustParse(t, typesSource)
	r := newTestResolver(program)

	a, err := resolveField(t, r, program, "Probe", "a")
	require.NoError(t, err)
	b, err := resolveField(t, r, program, "Probe", "b")
	require.NoError(t, err)

	for _, desc := range []*TypeDescriptor{a, b} {
		assert.Equal(t, KindNumber, desc.Kind)
		assert.Equal(t, "u64", desc.CanonicalName)
		assert.Equal(t, "UInt64", desc.CodecHint)
		assert.Equal(t, "0", desc.DefaultValue)
		assert.True(t, desc.IsPrimaryKeyType())
	}
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, "B", b.Name)
	assert.Equal(t, "B", b.ABIType())
	assert.Empty(t, r.Warnings)
}

func TestResolveAssetAliasIsOpaque(t *testing.T) {
	program := mustParse(t, typesSource)
	r := newTestResolver(program)

	for _, field := range []string{"coin", "asset"} {
		desc, err := resolveField(t, r, program, "Probe", field)
		require.NoError(t, err)
		assert.Equal(t, KindNumber, desc.Kind, field)
		assert.Equal(t, "Asset", desc.CanonicalName, field)
		assert.Empty(t, desc.CodecHint, field)
		assert.Empty(t, desc.DefaultValue, field)
		assert.False(t, desc.IsPrimaryKeyType(), field)
	}
}

func TestResolveAliasIsAlwaysNumber(t *testing.T) {
	program := mustParse(t, typesSource)
	r := newTestResolver(program)

	list, err := resolveField(t, r, program, "Probe", "list")
	require.NoError(t, err)
	assert.Equal(t, KindNumber, list.Kind)
	assert.Equal(t, "ids", list.Name)
	assert.Equal(t, "ids", list.OriginalType)
	assert.Equal(t, "u64[]", list.CanonicalName)
	assert.Empty(t, list.TypeArguments)
	assert.Empty(t, list.CodecHint)
	assert.Equal(t, "ids", list.ABIType())

	book, err := resolveField(t, r, program, "Probe", "book")
	require.NoError(t, err)
	assert.Equal(t, KindNumber, book.Kind)
	assert.Empty(t, book.TypeArguments)
	assert.Equal(t, "Map<string, u64>", book.CanonicalName)
	assert.Equal(t, "ledger", book.ABIType())

	holder, err := resolveField(t, r, program, "Probe", "holder")
	require.NoError(t, err)
	assert.Equal(t, KindNumber, holder.Kind, "an alias of a class is not a class")
	assert.Equal(t, "Account", holder.CanonicalName)
	assert.False(t, holder.Serializable)
	assert.Empty(t, holder.CodecHint)
	assert.Equal(t, "Holder", holder.ABIType())

	label, err := resolveField(t, r, program, "Probe", "label")
	require.NoError(t, err)
	assert.Equal(t, KindNumber, label.Kind, "an alias of string is not a string")
	assert.Equal(t, "string", label.CanonicalName)
	assert.Equal(t, "String", label.CodecHint)
	assert.Equal(t, "Label", label.ABIType())
	assert.False(t, label.IsPrimaryKeyType())

	assert.Empty(t, r.Warnings)
}

func TestResolveAliasOfFunctionType(t *testing.T) {
	program := mustParse(t, typesSource)
	r := newTestResolver(program)

	_, err := resolveField(t, r, program, "Probe", "hook")
	require.Error(t, err)

	var ce errors.CompilerError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, errors.ErrorUnsupportedType, ce.Code)
	assert.Contains(t, ce.Message, "alias 'Hook'")
	assert.NotContains(t, ce.Message, "type argument")

	for field, want := range map[string]bool{"hook": true, "label": false, "list": false, "coin": false, "ghost": false} {
		expr, scope := fieldType(t, program, "Probe", field)
		assert.Equal(t, want, r.isFunctionType(expr, scope), field)
	}
}

func TestResolvePrimitivesAndStrings(t *testing.T) {
	program := mustParse(t, typesSource)
	r := newTestResolver(program)

	title, err := resolveField(t, r, program, "Probe", "title")
	require.NoError(t, err)
	assert.Equal(t, KindString, title.Kind)
	assert.Equal(t, "String", title.CodecHint)
	assert.Equal(t, "''", title.DefaultValue)
	assert.Equal(t, "string", title.ABIType())

	flag, err := resolveField(t, r, program, "Probe", "flag")
	require.NoError(t, err)
	assert.Equal(t, KindNumber, flag.Kind)
	assert.Equal(t, "Bool", flag.CodecHint)
	assert.Equal(t, "false", flag.DefaultValue)
	assert.False(t, flag.IsPrimaryKeyType())
	assert.Empty(t, r.Warnings)
}

func TestResolveClasses(t *testing.T) {
	program := mustParse(t, typesSource)
	r := newTestResolver(program)

	owner, err := resolveField(t, r, program, "Probe", "owner")
	require.NoError(t, err)
	assert.Equal(t, KindClass, owner.Kind)
	assert.True(t, owner.Serializable)
	assert.False(t, owner.Returnable)
	assert.Empty(t, owner.CodecHint)
	assert.Equal(t, "Account", owner.ABIType())

	receipt, err := resolveField(t, r, program, "Probe", "receipt")
	require.NoError(t, err)
	assert.Equal(t, KindClass, receipt.Kind)
	assert.True(t, receipt.Serializable, "storage marker is inherited")
	assert.True(t, receipt.Returnable)
}

func TestResolveUnknownNameFallsBackToNumber(t *testing.T) {
	program := mustParse(t, typesSource)
	r := newTestResolver(program)

	ghost, err := resolveField(t, r, program, "Probe", "ghost")
	require.NoError(t, err)
	assert.Equal(t, KindNumber, ghost.Kind)
	assert.Empty(t, ghost.CodecHint)

	require.Len(t, r.Warnings, 1)
	w := r.Warnings[0]
	assert.Equal(t, errors.WarningUnresolvedType, w.Code)
	require.NotEmpty(t, w.Suggestions)
	assert.Contains(t, w.Suggestions[0].Message, "Account")
}

func TestResolveUsesRequestingScope(t *testing.T) {
	program := mustParse(t, typesSource)
	r := newTestResolver(program)

	local, err := resolveField(t, r, program, "vault.Safe", "local")
	require.NoError(t, err)
	assert.Equal(t, "u32", local.CanonicalName)
	assert.Equal(t, "UInt32", local.CodecHint)

	global, err := resolveField(t, r, program, "vault.Safe", "global")
	require.NoError(t, err)
	assert.Equal(t, "u64", global.CanonicalName)

	qualified, err := resolveField(t, r, program, "Probe", "qualified")
	require.NoError(t, err)
	assert.Equal(t, "u32", qualified.CanonicalName)
	assert.Equal(t, "vault.A", qualified.Name)
}

func TestResolveRejectsFunctionTypeArguments(t *testing.T) {
	program := mustParse(t, typesSource)
	r := newTestResolver(program)

	_, err := resolveField(t, r, program, "Probe", "callbacks")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorUnsupportedType, errors.CodeOf(err))
}

func TestResolveAliasCycleHitsDepthCeiling(t *testing.T) {
	program := mustParse(t, `
type Ping = Pong;
type Pong = Ping;
class Probe { value: Ping; }
`)
	r := newTestResolver(program)

	_, err := resolveField(t, r, program, "Probe", "value")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorUnresolvableAliasDepth, errors.CodeOf(err))
}

func TestResolveDepthCeilingIsConfigurable(t *testing.T) {
	program := mustParse(t, `class Probe { deep: u8[][][]; shallow: u8[]; }`)
	cfg := config.Default()
	cfg.Resolver.MaxDepth = 2
	r := NewResolver(program, cfg)

	_, err := resolveField(t, r, program, "Probe", "shallow")
	require.NoError(t, err)

	_, err = resolveField(t, r, program, "Probe", "deep")
	require.Error(t, err)

	var ce errors.CompilerError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, errors.ErrorUnresolvableAliasDepth, ce.Code)
	assert.Equal(t, 1, ce.Position.Line)
}

func TestArrayArgument(t *testing.T) {
	program := mustParse(t, typesSource)
	r := newTestResolver(program)

	expr, _ := fieldType(t, program, "Probe", "angle")
	arg, err := r.ArrayArgument(expr)
	require.NoError(t, err)
	assert.Equal(t, "string", arg.Text)

	expr, _ = fieldType(t, program, "Probe", "flag")
	_, err = r.ArrayArgument(expr)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorNotAnArrayType, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "boolean")

	_, err = resolveField(t, r, program, "Probe", "bare")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorNotAnArrayType, errors.CodeOf(err))
}

func TestArrayElementType(t *testing.T) {
	pos := ast.Position{Line: 3, Column: 9}

	cases := map[string]string{
		"string[]":       "string",
		"u64[][]":        "u64",
		"Account []":     "Account",
		"Array<string>":  "string",
		"Array<Account>": "Account",
		"Array<u8[]>":    "u8[]",
	}
	for text, want := range cases {
		got, err := ArrayElementType(text, pos)
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
	}

	_, err := ArrayElementType("Map<string, u64>", pos)
	require.Error(t, err)
	var ce errors.CompilerError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, errors.ErrorNotAnArrayType, ce.Code)
	assert.Equal(t, pos, ce.Position)
}
