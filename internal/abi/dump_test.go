package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const ledgerSource = `
@contract
class Token {
  @deployer
  init(owner: string): void;
  @message(mutates = false)
  balanceOf(who: string): u64;
}

class Ledger implements Serializable {
  balance: u64;
}
`

func TestDumpModel(t *testing.T) {
	model, err := Assemble(mustParse(t, ledgerSource), nil)
	require.NoError(t, err)

	out, err := Dump(model)
	require.NoError(t, err)

	var dump modelDump
	require.NoError(t, yaml.Unmarshal(out, &dump))

	require.NotNil(t, dump.Contract)
	assert.Equal(t, "Token", dump.Contract.Name)
	require.Len(t, dump.Contract.Deployers, 1)
	assert.Equal(t, []paramDump{{Name: "owner", Type: "string", Ty: 1}}, dump.Contract.Deployers[0].Params)
	assert.Empty(t, dump.Contract.Deployers[0].Returns)

	require.Len(t, dump.Contract.Messages, 1)
	balanceOf := dump.Contract.Messages[0]
	assert.Equal(t, "u64", balanceOf.Returns)
	assert.Equal(t, 2, balanceOf.ReturnTy)
	assert.Equal(t, map[string]string{"mutates": "false"}, balanceOf.Attributes)

	require.Len(t, dump.Storages, 1)
	assert.Equal(t, []fieldDump{{Name: "balance", Type: "u64", Ty: 2, Key: "Ledgerbalance"}}, dump.Storages[0].Fields)

	require.Len(t, dump.Types, 2)
	u64 := dump.Types[1]
	assert.Equal(t, "u64", u64.Original)
	assert.Equal(t, "number", u64.Kind)
	assert.Equal(t, "UInt64", u64.Codec)
	assert.Equal(t, "0", u64.Default)
	assert.True(t, u64.PrimaryKey)
	assert.Empty(t, u64.Canonical)
	assert.Empty(t, dump.Warnings)
}

func TestDumpShowsAliasCanonicalNames(t *testing.T) {
	model, err := Assemble(mustParse(t, `
type Balances = Map<string, u64>;
class Vault implements Serializable {
  balances: Balances;
}
`), nil)
	require.NoError(t, err)

	out, err := Dump(model)
	require.NoError(t, err)

	var dump modelDump
	require.NoError(t, yaml.Unmarshal(out, &dump))
	assert.Nil(t, dump.Contract)

	require.Len(t, dump.Types, 1)
	balances := dump.Types[0]
	assert.Equal(t, "Balances", balances.Original)
	assert.Equal(t, "number", balances.Kind)
	assert.Equal(t, "Map<string, u64>", balances.Canonical)
	assert.Equal(t, "Balances", balances.ABIType)
	assert.Empty(t, balances.Codec)
	assert.Empty(t, balances.Arguments)
}

func TestModelString(t *testing.T) {
	model, err := Assemble(mustParse(t, ledgerSource), nil)
	require.NoError(t, err)

	expected := `contract Token
  deployer init(owner: string)
  message balanceOf(who: string): u64
storage Ledger
  balance: u64 @2 key=Ledgerbalance
types
  1 string (string)
  2 u64 (number)
`
	assert.Equal(t, expected, model.String())
}
