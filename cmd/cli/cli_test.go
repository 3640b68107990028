package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/pump-client-go/pkg/config"
	"github.com/ninja0404/pump-client-go/pkg/pda"
	"github.com/ninja0404/pump-client-go/pkg/program/pump"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PUMP_KEYPAIR", "")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--env-file", t.TempDir() + "/none.env", "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestParsePubkey(t *testing.T) {
	_, err := parsePubkey("mint", "")
	assert.ErrorContains(t, err, "mint is required")

	_, err = parsePubkey("mint", "not-a-key")
	assert.ErrorContains(t, err, "mint invalid pubkey")

	pk, err := parseOptionalPubkey("creator", "")
	require.NoError(t, err)
	assert.True(t, pk.IsZero())

	want := solana.NewWallet().PublicKey()
	keys, err := pubkeys("a", want.String(), "b", solana.WrappedSol.String())
	require.NoError(t, err)
	assert.Equal(t, []solana.PublicKey{want, solana.WrappedSol}, keys)

	_, err = pubkeys("a", want.String(), "b", "")
	assert.ErrorContains(t, err, "b is required")
}

func TestDecodeKnownAccount(t *testing.T) {
	_, _, err := decodeKnownAccount([]byte{1, 2, 3})
	assert.Error(t, err)

	_, _, err = decodeKnownAccount(make([]byte, 16))
	assert.ErrorContains(t, err, "unknown discriminator")

	data := append(append([]byte{}, pump.BondingCurveDiscriminator...), make([]byte, 120)...)
	name, v, err := decodeKnownAccount(data)
	require.NoError(t, err)
	assert.Equal(t, "pump.BondingCurve", name)
	assert.IsType(t, &pump.BondingCurve{}, v)
}

func TestDerivePumpOffline(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	out, err := execute(t, "derive", "pump", "--mint", mint.String())
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	dv := pda.NewDeriver(config.DefaultProgramIDs())
	global, err := dv.Global()
	require.NoError(t, err)
	curve, err := dv.BondingCurve(mint)
	require.NoError(t, err)
	assert.Equal(t, global.String(), got["global"])
	assert.Equal(t, curve.String(), got["bonding_curve"])
	assert.Contains(t, got, "canonical_pool")
}

func TestHistoryListsEventTypes(t *testing.T) {
	out, err := execute(t, "history", "--types", "--program", "amm")
	require.NoError(t, err)
	assert.Contains(t, out, "BuyEvent")
	assert.NotContains(t, out, "TradeEvent")

	_, err = execute(t, "history", "--types", "--program", "raydium")
	assert.Error(t, err)
}

func TestRejectsBadCommitment(t *testing.T) {
	_, err := execute(t, "--commitment", "eventual", "config")
	assert.ErrorContains(t, err, "commitment")
}

func TestMissingSignerIsReported(t *testing.T) {
	_, err := execute(t, "pump", "buy", "--mint", solana.WrappedSol.String(), "--amount", "1", "--max-sol-cost", "1")
	assert.ErrorContains(t, err, "fee payer")
}
