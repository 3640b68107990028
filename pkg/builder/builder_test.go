package builder

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/pump-client-go/pkg/config"
	"github.com/ninja0404/pump-client-go/pkg/program/pump"
	"github.com/ninja0404/pump-client-go/pkg/program/pumpamm"
	"github.com/ninja0404/pump-client-go/pkg/state"
	"github.com/ninja0404/pump-client-go/pkg/types"
)

func newKey() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

type fixture struct {
	b           *Builder
	user        solana.PublicKey
	mint        solana.PublicKey
	coinCreator solana.PublicKey
	admin       solana.PublicKey
	authority   solana.PublicKey
	trade       state.TradeState
	pool        state.PoolState
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ids := config.DefaultProgramIDs()
	f := fixture{
		b:           New(ids),
		user:        newKey(),
		mint:        newKey(),
		coinCreator: newKey(),
		admin:       newKey(),
		authority:   newKey(),
	}
	f.trade = state.TradeState{
		Mint: f.mint,
		Global: &pump.Global{
			Initialized:       true,
			Authority:         f.authority,
			FeeRecipient:      newKey(),
			WithdrawAuthority: newKey(),
			EnableMigrate:     true,
		},
		Curve:        &pump.BondingCurve{Creator: f.coinCreator},
		TokenProgram: ids.Token,
	}

	poolAddr := newKey()
	cfg := &pumpamm.GlobalConfig{Admin: f.admin}
	cfg.ProtocolFeeRecipients[0] = newKey()
	f.pool = state.PoolState{
		Address: poolAddr,
		Pool: &pumpamm.Pool{
			Creator:               newKey(),
			BaseMint:              f.mint,
			QuoteMint:             solana.WrappedSol,
			LpMint:                newKey(),
			PoolBaseTokenAccount:  newKey(),
			PoolQuoteTokenAccount: newKey(),
			CoinCreator:           f.coinCreator,
		},
		Config:            cfg,
		BaseTokenProgram:  ids.Token2022,
		QuoteTokenProgram: ids.Token,
	}
	return f
}

func accountKeys(ix solana.Instruction) []solana.PublicKey {
	var out []solana.PublicKey
	for _, m := range ix.Accounts() {
		out = append(out, m.PublicKey)
	}
	return out
}

func TestAmmSellEncoding(t *testing.T) {
	f := newFixture(t)

	_, _, ix, err := f.b.AmmSell(f.user, f.pool, 1000, 10)
	require.NoError(t, err)
	assert.Equal(t, f.b.ProgramIDs().PumpAmm, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	want := append([]byte{}, pumpamm.SellDiscriminator...)
	want = binary.LittleEndian.AppendUint64(want, 1000)
	want = binary.LittleEndian.AppendUint64(want, 10)
	assert.Equal(t, want, data)

	vault, _, err := solana.FindProgramAddress([][]byte{[]byte("creator_vault"), f.coinCreator.Bytes()}, f.b.ProgramIDs().PumpAmm)
	require.NoError(t, err)
	vaultATA, _, err := solana.FindAssociatedTokenAddress(vault, f.pool.Pool.QuoteMint)
	require.NoError(t, err)
	assert.Contains(t, accountKeys(ix), vaultATA)
	assert.Len(t, ix.Accounts(), 21)
}

func TestAmmBuyAccounts(t *testing.T) {
	f := newFixture(t)

	accts, args, ix, err := f.b.AmmBuy(f.user, f.pool, 5, 7, true)
	require.NoError(t, err)
	assert.Len(t, ix.Accounts(), 23)
	assert.True(t, args.TrackVolume.Field0)

	userBase, err := f.b.Deriver().ATA(f.user, f.mint, f.pool.BaseTokenProgram)
	require.NoError(t, err)
	assert.Equal(t, userBase, accts.UserBaseTokenAccount)
	assert.Equal(t, f.pool.Config.ProtocolFeeRecipients[0], accts.ProtocolFeeRecipient)
	assert.Equal(t, f.pool.Pool.PoolBaseTokenAccount, accts.PoolBaseTokenAccount)

	// user signs, pool is writable
	metas := ix.Accounts()
	assert.Equal(t, f.pool.Address, metas[0].PublicKey)
	assert.True(t, metas[0].IsWritable)
	assert.Equal(t, f.user, metas[1].PublicKey)
	assert.True(t, metas[1].IsSigner)
}

func TestTradeBuildersAreDeterministic(t *testing.T) {
	f := newFixture(t)

	_, _, a, err := f.b.PumpBuy(f.user, f.trade, 100, 200, false)
	require.NoError(t, err)
	_, _, b, err := f.b.PumpBuy(f.user, f.trade, 100, 200, false)
	require.NoError(t, err)
	da, _ := a.Data()
	db, _ := b.Data()
	assert.Equal(t, da, db)
	assert.Equal(t, a.Accounts(), b.Accounts())

	_, _, c, err := f.b.AmmSell(f.user, f.pool, 1, 2)
	require.NoError(t, err)
	_, _, d, err := f.b.AmmSell(f.user, f.pool, 1, 2)
	require.NoError(t, err)
	dc, _ := c.Data()
	dd, _ := d.Data()
	assert.Equal(t, dc, dd)
	assert.Equal(t, c.Accounts(), d.Accounts())
}

func TestPumpTradeAccounts(t *testing.T) {
	f := newFixture(t)

	buy, _, ix, err := f.b.PumpBuy(f.user, f.trade, 1, 2, false)
	require.NoError(t, err)
	assert.Len(t, ix.Accounts(), 16)
	assert.Equal(t, f.trade.Global.FeeRecipient, buy.FeeRecipient)

	vault, _, err := solana.FindProgramAddress([][]byte{[]byte("creator-vault"), f.coinCreator.Bytes()}, f.b.ProgramIDs().Pump)
	require.NoError(t, err)
	assert.Equal(t, vault, buy.CreatorVault)

	sell, _, ix, err := f.b.PumpSell(f.user, f.trade, 1, 0)
	require.NoError(t, err)
	assert.Len(t, ix.Accounts(), 14)
	assert.Equal(t, buy.AssociatedUser, sell.AssociatedUser)
	assert.Equal(t, buy.AssociatedBondingCurve, sell.AssociatedBondingCurve)
}

func TestCreatePoolBaseQuoteOrder(t *testing.T) {
	f := newFixture(t)
	ids := f.b.ProgramIDs()
	p := CreatePoolParams{
		Creator:           f.user,
		BaseMint:          f.mint,
		QuoteMint:         solana.WrappedSol,
		BaseTokenProgram:  ids.Token,
		QuoteTokenProgram: ids.Token,
		BaseAmountIn:      10,
		QuoteAmountIn:     20,
	}
	a, _, _, err := f.b.AmmCreatePool(p, f.pool.Config)
	require.NoError(t, err)

	p.BaseMint, p.QuoteMint = p.QuoteMint, p.BaseMint
	b, _, _, err := f.b.AmmCreatePool(p, f.pool.Config)
	require.NoError(t, err)
	assert.NotEqual(t, a.Pool, b.Pool)

	lp, err := f.b.Deriver().PoolLpMint(a.Pool)
	require.NoError(t, err)
	assert.Equal(t, lp, a.LpMint)
	userLP, err := f.b.Deriver().ATA(f.user, lp, ids.Token2022)
	require.NoError(t, err)
	assert.Equal(t, userLP, a.UserPoolTokenAccount)
}

func TestMissingRequiredField(t *testing.T) {
	f := newFixture(t)

	_, _, _, err := f.b.PumpBuy(solana.PublicKey{}, f.trade, 1, 1, false)
	assert.ErrorIs(t, err, types.ErrMissingRequiredField)

	_, _, _, err = f.b.PumpCreate(CreateParams{User: f.user, Mint: f.mint, Symbol: "X", URI: "u", Creator: f.user})
	assert.ErrorIs(t, err, types.ErrMissingRequiredField)

	_, _, _, err = f.b.PumpCreate(CreateParams{User: f.user, Mint: f.mint, Name: "n", Symbol: "X", URI: "u"})
	assert.ErrorIs(t, err, types.ErrMissingRequiredField)

	_, _, err = f.b.AmmCollectCoinCreatorFee(f.user, solana.PublicKey{}, f.b.ProgramIDs().Token)
	assert.ErrorIs(t, err, types.ErrMissingRequiredField)
}

func TestStatePrecondition(t *testing.T) {
	f := newFixture(t)

	st := f.trade
	st.Curve = nil
	_, _, _, err := f.b.PumpBuy(f.user, st, 1, 1, false)
	assert.ErrorIs(t, err, types.ErrStatePrecondition)
	assert.ErrorIs(t, err, types.ErrAccountNotFound)

	_, _, err = f.b.PumpInitialize(f.user, f.trade.Global)
	assert.ErrorIs(t, err, types.ErrStatePrecondition)
	_, ix, err := f.b.PumpInitialize(f.user, nil)
	require.NoError(t, err)
	assert.Len(t, ix.Accounts(), 3)

	ps := f.pool
	cfg := *ps.Config
	cfg.DisableFlags = pumpamm.DisableBuy
	ps.Config = &cfg
	_, _, _, err = f.b.AmmBuy(f.user, ps, 1, 1, false)
	assert.ErrorIs(t, err, types.ErrStatePrecondition)
	_, _, _, err = f.b.AmmSell(f.user, ps, 1, 1)
	assert.NoError(t, err)

	ps = f.pool
	ps.Pool = nil
	_, _, err = f.b.AmmDeposit(f.user, ps, pumpamm.DepositArgs{LpTokenAmountOut: 1})
	assert.ErrorIs(t, err, types.ErrStatePrecondition)

	_, _, _, err = f.b.AmmCreatePool(CreatePoolParams{
		Creator:           f.user,
		BaseMint:          f.mint,
		QuoteMint:         solana.WrappedSol,
		BaseTokenProgram:  f.b.ProgramIDs().Token,
		QuoteTokenProgram: f.b.ProgramIDs().Token,
	}, nil)
	assert.ErrorIs(t, err, types.ErrStatePrecondition)
}

func TestPrivilegedBuildersAreGuarded(t *testing.T) {
	f := newFixture(t)
	intruder := newKey()

	_, _, err := f.b.AmmUpdateAdmin(intruder, newKey(), f.pool.Config)
	assert.ErrorIs(t, err, types.ErrUnauthorized)
	_, _, err = f.b.AmmUpdateAdmin(f.admin, newKey(), nil)
	assert.ErrorIs(t, err, types.ErrUnauthorized)
	_, ix, err := f.b.AmmUpdateAdmin(f.admin, newKey(), f.pool.Config)
	require.NoError(t, err)
	assert.True(t, ix.Accounts()[0].IsSigner)

	_, _, err = f.b.AmmDisable(intruder, f.pool.Config, pumpamm.DisableArgs{DisableBuy: true})
	assert.ErrorIs(t, err, types.ErrUnauthorized)

	_, _, err = f.b.PumpSetParams(intruder, f.trade.Global, pump.SetParamsArgs{WithdrawAuthority: newKey()})
	assert.ErrorIs(t, err, types.ErrUnauthorized)
	_, _, err = f.b.PumpSetParams(f.authority, f.trade.Global, pump.SetParamsArgs{WithdrawAuthority: newKey()})
	assert.NoError(t, err)

	_, _, err = f.b.PumpUpdateGlobalAuthority(intruder, newKey(), f.trade.Global)
	assert.ErrorIs(t, err, types.ErrUnauthorized)

	_, _, err = f.b.PumpSetMetaplexCreator(intruder, f.mint, f.trade.Curve)
	assert.ErrorIs(t, err, types.ErrUnauthorized)
	_, _, err = f.b.PumpSetMetaplexCreator(f.coinCreator, f.mint, f.trade.Curve)
	assert.NoError(t, err)

	_, _, err = f.b.AmmSetCoinCreator(intruder, f.pool.Address, f.pool.Pool)
	assert.ErrorIs(t, err, types.ErrUnauthorized)
	accts, _, err := f.b.AmmSetCoinCreator(f.coinCreator, f.pool.Address, f.pool.Pool)
	require.NoError(t, err)
	curve, err := f.b.Deriver().BondingCurve(f.mint)
	require.NoError(t, err)
	assert.Equal(t, curve, accts.BondingCurve)

	// set-creator authority is unset in the fixture, so nobody passes
	_, _, _, err = f.b.PumpSetCreator(f.authority, f.mint, newKey(), f.trade.Global, f.trade.Curve)
	assert.ErrorIs(t, err, types.ErrUnauthorized)
}

func TestCollectFeesUseCallerVault(t *testing.T) {
	f := newFixture(t)

	accts, _, err := f.b.PumpCollectCreatorFee(f.user)
	require.NoError(t, err)
	vault, err := f.b.Deriver().CreatorVault(f.user)
	require.NoError(t, err)
	assert.Equal(t, vault, accts.CreatorVault)

	ammAccts, _, err := f.b.AmmCollectCoinCreatorFee(f.user, solana.WrappedSol, f.b.ProgramIDs().Token)
	require.NoError(t, err)
	ammVault, err := f.b.Deriver().AmmCreatorVault(f.user)
	require.NoError(t, err)
	assert.Equal(t, ammVault, ammAccts.CoinCreatorVaultAuthority)
}

func TestMigrate(t *testing.T) {
	f := newFixture(t)

	st := f.trade
	st.Curve = &pump.BondingCurve{Complete: true, Creator: f.coinCreator}
	accts, ixs, err := f.b.PumpMigrate(f.user, st)
	require.NoError(t, err)
	require.Len(t, ixs, 2)
	assert.Equal(t, computebudget.ProgramID, ixs[0].ProgramID())
	assert.Equal(t, f.b.ProgramIDs().Pump, ixs[1].ProgramID())
	assert.Len(t, ixs[1].Accounts(), 24)

	pool, err := f.b.Deriver().CanonicalPool(f.mint)
	require.NoError(t, err)
	assert.Equal(t, pool, accts.Pool)
	assert.Equal(t, st.Global.WithdrawAuthority, accts.WithdrawAuthority)

	// still trading on the curve
	_, _, err = f.b.PumpMigrate(f.user, f.trade)
	assert.ErrorIs(t, err, types.ErrStatePrecondition)

	g := *st.Global
	g.EnableMigrate = false
	st.Global = &g
	_, _, err = f.b.PumpMigrate(f.user, st)
	assert.ErrorIs(t, err, types.ErrStatePrecondition)

	// a complete curve is no longer tradable
	_, _, _, err = f.b.PumpSell(f.user, state.TradeState{Mint: f.mint, Global: f.trade.Global, Curve: &pump.BondingCurve{Complete: true}, TokenProgram: f.trade.TokenProgram}, 1, 0)
	assert.ErrorIs(t, err, types.ErrStatePrecondition)
}
