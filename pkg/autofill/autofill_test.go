package autofill

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"os"
	"testing"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/pump-client-go/pkg/config"
	"github.com/ninja0404/pump-client-go/pkg/pda"
	"github.com/ninja0404/pump-client-go/pkg/program/pump"
	"github.com/ninja0404/pump-client-go/pkg/program/pumpamm"
	"github.com/ninja0404/pump-client-go/pkg/rpc"
	"github.com/ninja0404/pump-client-go/pkg/types"
)

type fakeChain struct {
	accounts map[solana.PublicKey]*solanarpc.Account
	reads    int
}

func newFakeChain() *fakeChain {
	return &fakeChain{accounts: make(map[solana.PublicKey]*solanarpc.Account)}
}

func (c *fakeChain) put(addr, owner solana.PublicKey, data []byte) {
	c.accounts[addr] = &solanarpc.Account{Owner: owner, Data: solanarpc.DataBytesOrJSONFromBytes(data)}
}

func (c *fakeChain) GetAccountData(_ context.Context, addr solana.PublicKey) (*solanarpc.Account, error) {
	c.reads++
	return c.accounts[addr], nil
}

func (c *fakeChain) GetMultipleAccounts(_ context.Context, addrs ...solana.PublicKey) ([]*solanarpc.Account, error) {
	c.reads++
	out := make([]*solanarpc.Account, len(addrs))
	for i, a := range addrs {
		out[i] = c.accounts[a]
	}
	return out, nil
}

func (c *fakeChain) GetProgramAccounts(context.Context, solana.PublicKey, ...solanarpc.RPCFilter) (solanarpc.GetProgramAccountsResult, error) {
	return nil, nil
}

func newKey() solana.PublicKey { return solana.NewWallet().PublicKey() }

func u64(v uint64) []byte { return binary.LittleEndian.AppendUint64(nil, v) }

func globalBytes(authority, feeRecipient solana.PublicKey) []byte {
	var buf bytes.Buffer
	buf.Write(pump.GlobalDiscriminator)
	buf.WriteByte(1)
	buf.Write(authority.Bytes())
	buf.Write(feeRecipient.Bytes())
	for i := 0; i < 5; i++ {
		buf.Write(u64(1_000))
	}
	return buf.Bytes()
}

func curveBytes(creator solana.PublicKey, complete bool) []byte {
	var buf bytes.Buffer
	buf.Write(pump.BondingCurveDiscriminator)
	for i := 0; i < 5; i++ {
		buf.Write(u64(1_000_000))
	}
	if complete {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	buf.Write(creator.Bytes())
	return buf.Bytes()
}

func poolBytes(base, quote, lpMint, coinCreator solana.PublicKey) []byte {
	var buf bytes.Buffer
	buf.Write(pumpamm.PoolDiscriminator)
	buf.WriteByte(255)
	buf.Write(binary.LittleEndian.AppendUint16(nil, 0))
	buf.Write(newKey().Bytes())
	buf.Write(base.Bytes())
	buf.Write(quote.Bytes())
	buf.Write(lpMint.Bytes())
	buf.Write(newKey().Bytes())
	buf.Write(newKey().Bytes())
	buf.Write(u64(10))
	buf.Write(coinCreator.Bytes())
	return buf.Bytes()
}

func ammConfigBytes(admin, recipient solana.PublicKey) []byte {
	var buf bytes.Buffer
	buf.Write(pumpamm.GlobalConfigDiscriminator)
	buf.Write(admin.Bytes())
	buf.Write(u64(20))
	buf.Write(u64(5))
	buf.WriteByte(0)
	buf.Write(recipient.Bytes())
	buf.Write(make([]byte, 32*7))
	return buf.Bytes()
}

type world struct {
	chain     *fakeChain
	ids       config.ProgramIDs
	derive    pda.Deriver
	filler    *Filler
	authority solana.PublicKey
	admin     solana.PublicKey
	mint      solana.PublicKey
	creator   solana.PublicKey
	user      solana.PublicKey
	pool      solana.PublicKey
	baseMint  solana.PublicKey
}

func newWorld(t *testing.T) world {
	t.Helper()
	w := world{
		chain:     newFakeChain(),
		ids:       config.DefaultProgramIDs(),
		authority: newKey(),
		admin:     newKey(),
		mint:      newKey(),
		creator:   newKey(),
		user:      newKey(),
		pool:      newKey(),
		baseMint:  newKey(),
	}
	w.derive = pda.NewDeriver(w.ids)
	w.filler = New(w.chain, w.ids, zerolog.Nop())

	global, err := w.derive.Global()
	require.NoError(t, err)
	w.chain.put(global, w.ids.Pump, globalBytes(w.authority, newKey()))
	curve, err := w.derive.BondingCurve(w.mint)
	require.NoError(t, err)
	w.chain.put(curve, w.ids.Pump, curveBytes(w.creator, false))
	w.chain.put(w.mint, w.ids.Token, make([]byte, 82))

	cfg, err := w.derive.AmmGlobalConfig()
	require.NoError(t, err)
	w.chain.put(cfg, w.ids.PumpAmm, ammConfigBytes(w.admin, newKey()))
	w.chain.put(w.pool, w.ids.PumpAmm, poolBytes(w.baseMint, solana.WrappedSol, newKey(), w.creator))
	w.chain.put(w.baseMint, w.ids.Token2022, make([]byte, 82))
	w.chain.put(solana.WrappedSol, w.ids.Token, make([]byte, 82))
	return w
}

func (w world) ata(t *testing.T, owner, mint, program solana.PublicKey) solana.PublicKey {
	t.Helper()
	addr, err := w.derive.ATA(owner, mint, program)
	require.NoError(t, err)
	return addr
}

func TestPumpBuyPrependsMissingATA(t *testing.T) {
	w := newWorld(t)

	accts, _, instrs, err := w.filler.PumpBuy(context.Background(), w.user, w.mint, 1_000, 10_000)
	require.NoError(t, err)
	require.Len(t, instrs, 2)

	create := instrs[0]
	assert.Equal(t, w.ids.AssociatedToken, create.ProgramID())
	data, err := create.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, data)
	assert.Equal(t, accts.AssociatedUser, create.Accounts()[1].PublicKey)
	assert.Equal(t, w.ids.Token, create.Accounts()[5].PublicKey)

	assert.Equal(t, w.ids.Pump, instrs[1].ProgramID())
}

func TestPumpBuySkipsExistingATA(t *testing.T) {
	w := newWorld(t)
	w.chain.put(w.ata(t, w.user, w.mint, w.ids.Token), w.ids.Token, make([]byte, 165))

	_, _, instrs, err := w.filler.PumpBuy(context.Background(), w.user, w.mint, 1_000, 10_000)
	require.NoError(t, err)
	require.Len(t, instrs, 1)
	assert.Equal(t, w.ids.Pump, instrs[0].ProgramID())

	known := w.ata(t, w.user, newKey(), w.ids.Token)
	_, _, instrs, err = w.filler.PumpBuy(context.Background(), w.user, w.mint, 1_000, 10_000, WithKnownATAs(known), WithoutATACreate())
	require.NoError(t, err)
	assert.Len(t, instrs, 1)
}

func TestJitoTipIsLast(t *testing.T) {
	w := newWorld(t)
	tip := newKey()

	_, _, instrs, err := w.filler.PumpBuy(context.Background(), w.user, w.mint, 1_000, 10_000,
		WithJitoTipAccount(tip), WithJitoTip(5_000))
	require.NoError(t, err)
	require.Len(t, instrs, 3)

	last := instrs[len(instrs)-1]
	assert.Equal(t, w.ids.System, last.ProgramID())
	assert.Equal(t, tip, last.Accounts()[1].PublicKey)
}

func TestOverridesRebuildInstruction(t *testing.T) {
	w := newWorld(t)
	recipient := newKey()

	accts, _, instrs, err := w.filler.PumpBuy(context.Background(), w.user, w.mint, 1_000, 10_000,
		WithOverrides(map[string]solana.PublicKey{"fee_recipient": recipient}))
	require.NoError(t, err)
	assert.Equal(t, recipient, accts.FeeRecipient)

	ix := instrs[len(instrs)-1]
	var found bool
	for _, m := range ix.Accounts() {
		if m.PublicKey.Equals(recipient) {
			found = true
		}
	}
	assert.True(t, found, "override must reach the instruction")
}

func TestPreviewWritesAccountsAndArgs(t *testing.T) {
	w := newWorld(t)
	var buf bytes.Buffer

	_, _, _, err := w.filler.PumpSell(context.Background(), w.user, w.mint, 500, 1, WithPreview(&buf))
	require.NoError(t, err)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Contains(t, out, "accounts")
	assert.Contains(t, out, "args")
}

func TestMissingCurveIsStatePrecondition(t *testing.T) {
	w := newWorld(t)
	other := newKey()
	w.chain.put(other, w.ids.Token, make([]byte, 82))

	_, _, _, err := w.filler.PumpBuy(context.Background(), w.user, other, 1_000, 10_000)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrStatePrecondition)
	assert.ErrorIs(t, err, types.ErrAccountNotFound)
}

func TestCompleteCurveRejectsTrade(t *testing.T) {
	w := newWorld(t)
	curve, err := w.derive.BondingCurve(w.mint)
	require.NoError(t, err)
	w.chain.put(curve, w.ids.Pump, curveBytes(w.creator, true))

	_, _, _, err = w.filler.PumpSell(context.Background(), w.user, w.mint, 1, 0)
	assert.ErrorIs(t, err, types.ErrStatePrecondition)
}

func TestAdminOperationsCheckRole(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	stranger := newKey()

	_, _, err := w.filler.PumpUpdateGlobalAuthority(ctx, stranger, newKey())
	assert.ErrorIs(t, err, types.ErrUnauthorized)

	_, instrs, err := w.filler.PumpUpdateGlobalAuthority(ctx, w.authority, newKey())
	require.NoError(t, err)
	assert.Len(t, instrs, 1)

	_, _, err = w.filler.AmmDisable(ctx, stranger, pumpamm.DisableArgs{DisableBuy: true})
	assert.ErrorIs(t, err, types.ErrUnauthorized)

	_, _, err = w.filler.AmmUpdateAdmin(ctx, w.admin, newKey())
	assert.NoError(t, err)
}

func TestAdminOperationWithoutConfig(t *testing.T) {
	w := newWorld(t)
	cfg, err := w.derive.AmmGlobalConfig()
	require.NoError(t, err)
	delete(w.chain.accounts, cfg)

	_, _, err = w.filler.AmmExtendAccount(context.Background(), w.admin, newKey())
	assert.ErrorIs(t, err, types.ErrStatePrecondition)
}

func TestPumpInitializeTwice(t *testing.T) {
	w := newWorld(t)
	_, _, err := w.filler.PumpInitialize(context.Background(), w.user)
	assert.ErrorIs(t, err, types.ErrStatePrecondition)

	global, err := w.derive.Global()
	require.NoError(t, err)
	delete(w.chain.accounts, global)
	_, instrs, err := w.filler.PumpInitialize(context.Background(), w.user)
	require.NoError(t, err)
	assert.Len(t, instrs, 1)
}

func TestAmmBuyWrapsSOL(t *testing.T) {
	w := newWorld(t)

	accts, _, instrs, err := w.filler.AmmBuy(context.Background(), w.user, w.pool, 1_000, 50_000)
	require.NoError(t, err)
	// base ATA, quote ATA, transfer, sync native, buy
	require.Len(t, instrs, 5)
	assert.Equal(t, w.ids.AssociatedToken, instrs[0].ProgramID())
	assert.Equal(t, w.ids.Token2022, instrs[0].Accounts()[5].PublicKey)
	assert.Equal(t, w.ids.AssociatedToken, instrs[1].ProgramID())
	assert.Equal(t, w.ids.System, instrs[2].ProgramID())
	assert.Equal(t, accts.UserQuoteTokenAccount, instrs[2].Accounts()[1].PublicKey)
	assert.Equal(t, w.ids.Token, instrs[3].ProgramID())
	assert.Equal(t, w.ids.PumpAmm, instrs[4].ProgramID())

	_, _, instrs, err = w.filler.AmmBuy(context.Background(), w.user, w.pool, 1_000, 50_000, WithoutWrapSOL(), WithoutATACreate())
	require.NoError(t, err)
	assert.Len(t, instrs, 1)
}

func TestAmmSellClosesAccounts(t *testing.T) {
	w := newWorld(t)
	w.chain.put(w.ata(t, w.user, solana.WrappedSol, w.ids.Token), w.ids.Token, make([]byte, 165))

	accts, _, instrs, err := w.filler.AmmSell(context.Background(), w.user, w.pool, 1_000, 1, WithCloseBaseATA(), WithCloseQuoteATA())
	require.NoError(t, err)
	require.Len(t, instrs, 3)
	assert.Equal(t, w.ids.PumpAmm, instrs[0].ProgramID())
	assert.Equal(t, accts.UserBaseTokenAccount, instrs[1].Accounts()[0].PublicKey)
	assert.Equal(t, w.ids.Token2022, instrs[1].ProgramID())
	assert.Equal(t, accts.UserQuoteTokenAccount, instrs[2].Accounts()[0].PublicKey)
}

func TestAmmSetCoinCreatorRequiresCreator(t *testing.T) {
	w := newWorld(t)

	_, _, err := w.filler.AmmSetCoinCreator(context.Background(), newKey(), w.pool)
	assert.ErrorIs(t, err, types.ErrUnauthorized)

	accts, _, err := w.filler.AmmSetCoinCreator(context.Background(), w.creator, w.pool)
	require.NoError(t, err)
	assert.Equal(t, w.pool, accts.Pool)
}

func TestMissingPoolIsStatePrecondition(t *testing.T) {
	w := newWorld(t)
	_, _, _, err := w.filler.AmmSell(context.Background(), w.user, newKey(), 1, 0)
	assert.ErrorIs(t, err, types.ErrStatePrecondition)
}

func TestInvalidInputs(t *testing.T) {
	w := newWorld(t)
	_, _, _, err := w.filler.PumpBuy(context.Background(), solana.PublicKey{}, w.mint, 1, 1)
	assert.ErrorIs(t, err, types.ErrMissingRequiredField)

	_, _, _, err = w.filler.AmmBuy(context.Background(), w.user, w.pool, 0, 1)
	assert.ErrorIs(t, err, types.ErrMissingRequiredField)
}

func TestMergeOverridesFromJSON(t *testing.T) {
	pk := newKey()
	out, err := MergeOverridesFromJSON(nil, []byte(`{"feeRecipient":"`+pk.String()+`"}`))
	require.NoError(t, err)
	assert.Equal(t, pk, out["feeRecipient"])

	_, err = MergeOverridesFromJSON(nil, []byte(`{"feeRecipient":"nope"}`))
	assert.Error(t, err)
}

// TestAutofillMainnet reads live mainnet state; set PUMP_TEST_RPC_URL and PUMP_TEST_MINT to run it.
func TestAutofillMainnet(t *testing.T) {
	url := os.Getenv("PUMP_TEST_RPC_URL")
	mintStr := os.Getenv("PUMP_TEST_MINT")
	if url == "" || mintStr == "" {
		t.Skip("PUMP_TEST_RPC_URL or PUMP_TEST_MINT not set")
	}
	mint, err := solana.PublicKeyFromBase58(mintStr)
	require.NoError(t, err)

	cfg := config.DefaultRPCConfig()
	cfg.RPCURL = url
	f := New(rpc.NewClient(cfg), config.DefaultProgramIDs(), zerolog.Nop())

	_, _, instrs, err := f.PumpBuy(context.Background(), newKey(), mint, 1_000, 1_000_000)
	require.NoError(t, err)
	assert.NotEmpty(t, instrs)
}
