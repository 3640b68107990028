package builder

import (
	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"

	"github.com/ninja0404/pump-client-go/pkg/constants"
	"github.com/ninja0404/pump-client-go/pkg/guard"
	"github.com/ninja0404/pump-client-go/pkg/program/pump"
	"github.com/ninja0404/pump-client-go/pkg/state"
	"github.com/ninja0404/pump-client-go/pkg/types"
)

// checkTradeState fails with StatePrecondition when a record the trade depends on is absent.
func (b *Builder) checkTradeState(st state.TradeState) error {
	if err := requireKeys(pk("mint", st.Mint)); err != nil {
		return err
	}
	if st.Global == nil {
		addr, _ := b.derive.Global()
		return notCreated(types.KindGlobal, addr)
	}
	if st.Curve == nil {
		addr, _ := b.derive.BondingCurve(st.Mint)
		return notCreated(types.KindBondingCurve, addr)
	}
	if st.Curve.Complete {
		addr, _ := b.derive.BondingCurve(st.Mint)
		return precondition(types.KindBondingCurve, addr, "bonding curve is complete; trade on the pool")
	}
	if st.TokenProgram.IsZero() {
		return types.NewValidationError("tokenProgram", "is required")
	}
	if st.Global.FirstFeeRecipient().IsZero() {
		addr, _ := b.derive.Global()
		return precondition(types.KindGlobal, addr, "no fee recipient configured")
	}
	return nil
}

type pumpTradeAccounts struct {
	global, bondingCurve, assocCurve, assocUser solana.PublicKey
	creatorVault, eventAuthority, feeConfig     solana.PublicKey
}

func (b *Builder) pumpTradeAccounts(user solana.PublicKey, st state.TradeState) (pumpTradeAccounts, error) {
	var d derivation
	var out pumpTradeAccounts
	out.global = d.do(b.derive.Global)
	out.bondingCurve = d.do(func() (solana.PublicKey, error) { return b.derive.BondingCurve(st.Mint) })
	out.assocCurve = d.ata(b, out.bondingCurve, st.Mint, st.TokenProgram)
	out.assocUser = d.ata(b, user, st.Mint, st.TokenProgram)
	out.creatorVault = d.do(func() (solana.PublicKey, error) { return b.derive.CreatorVault(st.Curve.Creator) })
	out.eventAuthority = d.do(b.derive.EventAuthority)
	out.feeConfig = d.do(func() (solana.PublicKey, error) { return b.derive.FeeConfig(b.ids.Pump) })
	return out, d.err
}

// PumpBuy builds a bonding-curve buy. maxSolCost is forwarded as given.
func (b *Builder) PumpBuy(user solana.PublicKey, st state.TradeState, amount, maxSolCost uint64, trackVolume bool) (pump.BuyAccounts, pump.BuyArgs, solana.Instruction, error) {
	if err := requireKeys(pk("user", user)); err != nil {
		return pump.BuyAccounts{}, pump.BuyArgs{}, nil, err
	}
	if err := b.checkTradeState(st); err != nil {
		return pump.BuyAccounts{}, pump.BuyArgs{}, nil, err
	}
	common, err := b.pumpTradeAccounts(user, st)
	if err != nil {
		return pump.BuyAccounts{}, pump.BuyArgs{}, nil, err
	}
	var d derivation
	accts := pump.BuyAccounts{
		Global:                  common.global,
		FeeRecipient:            st.Global.FirstFeeRecipient(),
		Mint:                    st.Mint,
		BondingCurve:            common.bondingCurve,
		AssociatedBondingCurve:  common.assocCurve,
		AssociatedUser:          common.assocUser,
		User:                    user,
		SystemProgram:           b.ids.System,
		TokenProgram:            st.TokenProgram,
		CreatorVault:            common.creatorVault,
		EventAuthority:          common.eventAuthority,
		Program:                 b.ids.Pump,
		GlobalVolumeAccumulator: d.do(b.derive.GlobalVolumeAccumulator),
		UserVolumeAccumulator:   d.do(func() (solana.PublicKey, error) { return b.derive.UserVolumeAccumulator(user) }),
		FeeConfig:               common.feeConfig,
		FeeProgram:              b.ids.PumpFee,
	}
	if d.err != nil {
		return pump.BuyAccounts{}, pump.BuyArgs{}, nil, d.err
	}
	args := pump.BuyArgs{
		Amount:      amount,
		MaxSolCost:  maxSolCost,
		TrackVolume: pump.OptionBool{Field0: trackVolume},
	}
	ix, err := pump.BuildBuy(b.ids.Pump, accts, args)
	if err != nil {
		return pump.BuyAccounts{}, pump.BuyArgs{}, nil, err
	}
	return accts, args, ix, nil
}

// PumpSell builds a bonding-curve sell. minSolOutput is forwarded as given.
func (b *Builder) PumpSell(user solana.PublicKey, st state.TradeState, amount, minSolOutput uint64) (pump.SellAccounts, pump.SellArgs, solana.Instruction, error) {
	if err := requireKeys(pk("user", user)); err != nil {
		return pump.SellAccounts{}, pump.SellArgs{}, nil, err
	}
	if err := b.checkTradeState(st); err != nil {
		return pump.SellAccounts{}, pump.SellArgs{}, nil, err
	}
	common, err := b.pumpTradeAccounts(user, st)
	if err != nil {
		return pump.SellAccounts{}, pump.SellArgs{}, nil, err
	}
	accts := pump.SellAccounts{
		Global:                 common.global,
		FeeRecipient:           st.Global.FirstFeeRecipient(),
		Mint:                   st.Mint,
		BondingCurve:           common.bondingCurve,
		AssociatedBondingCurve: common.assocCurve,
		AssociatedUser:         common.assocUser,
		User:                   user,
		SystemProgram:          b.ids.System,
		CreatorVault:           common.creatorVault,
		TokenProgram:           st.TokenProgram,
		EventAuthority:         common.eventAuthority,
		Program:                b.ids.Pump,
		FeeConfig:              common.feeConfig,
		FeeProgram:             b.ids.PumpFee,
	}
	args := pump.SellArgs{Amount: amount, MinSolOutput: minSolOutput}
	ix, err := pump.BuildSell(b.ids.Pump, accts, args)
	if err != nil {
		return pump.SellAccounts{}, pump.SellArgs{}, nil, err
	}
	return accts, args, ix, nil
}

// CreateParams describes a new token on the bonding curve. The mint key must sign the transaction.
type CreateParams struct {
	User    solana.PublicKey
	Mint    solana.PublicKey
	Name    string
	Symbol  string
	URI     string
	Creator solana.PublicKey
}

// PumpCreate builds create for a legacy SPL token mint. Every address is derived client-side.
func (b *Builder) PumpCreate(p CreateParams) (pump.CreateAccounts, pump.CreateArgs, solana.Instruction, error) {
	if err := requireKeys(pk("user", p.User), pk("mint", p.Mint), pk("creator", p.Creator)); err != nil {
		return pump.CreateAccounts{}, pump.CreateArgs{}, nil, err
	}
	for _, s := range []struct{ name, v string }{{"name", p.Name}, {"symbol", p.Symbol}, {"uri", p.URI}} {
		if err := types.ValidateString(s.name, s.v); err != nil {
			return pump.CreateAccounts{}, pump.CreateArgs{}, nil, err
		}
	}
	var d derivation
	accts := pump.CreateAccounts{
		Mint:                   p.Mint,
		MintAuthority:          d.do(b.derive.MintAuthority),
		BondingCurve:           d.do(func() (solana.PublicKey, error) { return b.derive.BondingCurve(p.Mint) }),
		Global:                 d.do(b.derive.Global),
		MplTokenMetadata:       b.ids.Metadata,
		Metadata:               d.do(func() (solana.PublicKey, error) { return b.derive.Metadata(p.Mint) }),
		User:                   p.User,
		SystemProgram:          b.ids.System,
		TokenProgram:           b.ids.Token,
		AssociatedTokenProgram: b.ids.AssociatedToken,
		Rent:                   b.ids.Rent,
		EventAuthority:         d.do(b.derive.EventAuthority),
		Program:                b.ids.Pump,
	}
	accts.AssociatedBondingCurve = d.ata(b, accts.BondingCurve, p.Mint, b.ids.Token)
	if d.err != nil {
		return pump.CreateAccounts{}, pump.CreateArgs{}, nil, d.err
	}
	args := pump.CreateArgs{Name: p.Name, Symbol: p.Symbol, Uri: p.URI, Creator: p.Creator}
	ix, err := pump.BuildCreate(b.ids.Pump, accts, args)
	if err != nil {
		return pump.CreateAccounts{}, pump.CreateArgs{}, nil, err
	}
	return accts, args, ix, nil
}

// PumpCollectCreatorFee sweeps the caller's own creator vault. The vault is keyed by the caller, so no guard applies.
func (b *Builder) PumpCollectCreatorFee(creator solana.PublicKey) (pump.CollectCreatorFeeAccounts, solana.Instruction, error) {
	if err := requireKeys(pk("creator", creator)); err != nil {
		return pump.CollectCreatorFeeAccounts{}, nil, err
	}
	var d derivation
	accts := pump.CollectCreatorFeeAccounts{
		Creator:        creator,
		CreatorVault:   d.do(func() (solana.PublicKey, error) { return b.derive.CreatorVault(creator) }),
		SystemProgram:  b.ids.System,
		EventAuthority: d.do(b.derive.EventAuthority),
		Program:        b.ids.Pump,
	}
	if d.err != nil {
		return pump.CollectCreatorFeeAccounts{}, nil, d.err
	}
	ix, err := pump.BuildCollectCreatorFee(b.ids.Pump, accts)
	return accts, ix, err
}

// PumpInitialize builds initialize. global is the current record, nil when it does not exist yet.
func (b *Builder) PumpInitialize(user solana.PublicKey, global *pump.Global) (pump.InitializeAccounts, solana.Instruction, error) {
	if err := requireKeys(pk("user", user)); err != nil {
		return pump.InitializeAccounts{}, nil, err
	}
	addr, err := b.derive.Global()
	if err != nil {
		return pump.InitializeAccounts{}, nil, err
	}
	if global != nil {
		return pump.InitializeAccounts{}, nil, precondition(types.KindGlobal, addr, "already initialized")
	}
	accts := pump.InitializeAccounts{Global: addr, User: user, SystemProgram: b.ids.System}
	ix, err := pump.BuildInitialize(b.ids.Pump, accts)
	return accts, ix, err
}

// PumpSetParams replaces the protocol parameters. Only the protocol authority may call it.
func (b *Builder) PumpSetParams(authority solana.PublicKey, global *pump.Global, args pump.SetParamsArgs) (pump.SetParamsAccounts, solana.Instruction, error) {
	if err := requireKeys(pk("authority", authority), pk("withdrawAuthority", args.WithdrawAuthority)); err != nil {
		return pump.SetParamsAccounts{}, nil, err
	}
	if err := guard.Require(authority, guard.ProtocolAuthority, guard.Snapshot{Global: global}); err != nil {
		return pump.SetParamsAccounts{}, nil, err
	}
	var d derivation
	accts := pump.SetParamsAccounts{
		Global:         d.do(b.derive.Global),
		Authority:      authority,
		EventAuthority: d.do(b.derive.EventAuthority),
		Program:        b.ids.Pump,
	}
	if d.err != nil {
		return pump.SetParamsAccounts{}, nil, d.err
	}
	ix, err := pump.BuildSetParams(b.ids.Pump, accts, args)
	return accts, ix, err
}

// PumpUpdateGlobalAuthority hands the protocol authority to newAuthority.
func (b *Builder) PumpUpdateGlobalAuthority(authority, newAuthority solana.PublicKey, global *pump.Global) (pump.UpdateGlobalAuthorityAccounts, solana.Instruction, error) {
	if err := requireKeys(pk("authority", authority), pk("newAuthority", newAuthority)); err != nil {
		return pump.UpdateGlobalAuthorityAccounts{}, nil, err
	}
	if err := guard.Require(authority, guard.ProtocolAuthority, guard.Snapshot{Global: global}); err != nil {
		return pump.UpdateGlobalAuthorityAccounts{}, nil, err
	}
	var d derivation
	accts := pump.UpdateGlobalAuthorityAccounts{
		Global:         d.do(b.derive.Global),
		Authority:      authority,
		NewAuthority:   newAuthority,
		EventAuthority: d.do(b.derive.EventAuthority),
		Program:        b.ids.Pump,
	}
	if d.err != nil {
		return pump.UpdateGlobalAuthorityAccounts{}, nil, d.err
	}
	ix, err := pump.BuildUpdateGlobalAuthority(b.ids.Pump, accts)
	return accts, ix, err
}

// PumpExtendAccount grows a pump-owned account to the current layout size.
func (b *Builder) PumpExtendAccount(authority, account solana.PublicKey, global *pump.Global) (pump.ExtendAccountAccounts, solana.Instruction, error) {
	if err := requireKeys(pk("authority", authority), pk("account", account)); err != nil {
		return pump.ExtendAccountAccounts{}, nil, err
	}
	if err := guard.Require(authority, guard.ProtocolAuthority, guard.Snapshot{Global: global}); err != nil {
		return pump.ExtendAccountAccounts{}, nil, err
	}
	eventAuthority, err := b.derive.EventAuthority()
	if err != nil {
		return pump.ExtendAccountAccounts{}, nil, err
	}
	accts := pump.ExtendAccountAccounts{
		Account:        account,
		User:           authority,
		SystemProgram:  b.ids.System,
		EventAuthority: eventAuthority,
		Program:        b.ids.Pump,
	}
	ix, err := pump.BuildExtendAccount(b.ids.Pump, accts)
	return accts, ix, err
}

// PumpSetCreator overrides the creator recorded on a bonding curve.
func (b *Builder) PumpSetCreator(setter, mint, creator solana.PublicKey, global *pump.Global, curve *pump.BondingCurve) (pump.SetCreatorAccounts, pump.SetCreatorArgs, solana.Instruction, error) {
	if err := requireKeys(pk("setter", setter), pk("mint", mint), pk("creator", creator)); err != nil {
		return pump.SetCreatorAccounts{}, pump.SetCreatorArgs{}, nil, err
	}
	if err := guard.Require(setter, guard.SetCreatorAuthority, guard.Snapshot{Global: global}); err != nil {
		return pump.SetCreatorAccounts{}, pump.SetCreatorArgs{}, nil, err
	}
	var d derivation
	accts := pump.SetCreatorAccounts{
		SetCreatorAuthority: setter,
		Global:              d.do(b.derive.Global),
		Mint:                mint,
		Metadata:            d.do(func() (solana.PublicKey, error) { return b.derive.Metadata(mint) }),
		BondingCurve:        d.do(func() (solana.PublicKey, error) { return b.derive.BondingCurve(mint) }),
		EventAuthority:      d.do(b.derive.EventAuthority),
		Program:             b.ids.Pump,
	}
	if d.err != nil {
		return pump.SetCreatorAccounts{}, pump.SetCreatorArgs{}, nil, d.err
	}
	if curve == nil {
		return pump.SetCreatorAccounts{}, pump.SetCreatorArgs{}, nil, notCreated(types.KindBondingCurve, accts.BondingCurve)
	}
	args := pump.SetCreatorArgs{Creator: creator}
	ix, err := pump.BuildSetCreator(b.ids.Pump, accts, args)
	if err != nil {
		return pump.SetCreatorAccounts{}, pump.SetCreatorArgs{}, nil, err
	}
	return accts, args, ix, nil
}

// PumpSetMetaplexCreator syncs the curve creator from the token's metaplex metadata.
// The caller must be the curve's current creator.
func (b *Builder) PumpSetMetaplexCreator(caller, mint solana.PublicKey, curve *pump.BondingCurve) (pump.SetMetaplexCreatorAccounts, solana.Instruction, error) {
	if err := requireKeys(pk("caller", caller), pk("mint", mint)); err != nil {
		return pump.SetMetaplexCreatorAccounts{}, nil, err
	}
	if err := guard.Require(caller, guard.CoinCreator, guard.Snapshot{BondingCurve: curve}); err != nil {
		return pump.SetMetaplexCreatorAccounts{}, nil, err
	}
	var d derivation
	accts := pump.SetMetaplexCreatorAccounts{
		Mint:           mint,
		Metadata:       d.do(func() (solana.PublicKey, error) { return b.derive.Metadata(mint) }),
		BondingCurve:   d.do(func() (solana.PublicKey, error) { return b.derive.BondingCurve(mint) }),
		EventAuthority: d.do(b.derive.EventAuthority),
		Program:        b.ids.Pump,
	}
	if d.err != nil {
		return pump.SetMetaplexCreatorAccounts{}, nil, d.err
	}
	ix, err := pump.BuildSetMetaplexCreator(b.ids.Pump, accts)
	return accts, ix, err
}

// PumpMigrate moves a completed curve into its canonical AMM pool.
// It returns a compute-unit limit followed by migrate; the order must be kept.
func (b *Builder) PumpMigrate(user solana.PublicKey, st state.TradeState) (pump.MigrateAccounts, []solana.Instruction, error) {
	if err := requireKeys(pk("user", user), pk("mint", st.Mint), pk("tokenProgram", st.TokenProgram)); err != nil {
		return pump.MigrateAccounts{}, nil, err
	}
	globalAddr, err := b.derive.Global()
	if err != nil {
		return pump.MigrateAccounts{}, nil, err
	}
	curveAddr, err := b.derive.BondingCurve(st.Mint)
	if err != nil {
		return pump.MigrateAccounts{}, nil, err
	}
	switch {
	case st.Global == nil:
		return pump.MigrateAccounts{}, nil, notCreated(types.KindGlobal, globalAddr)
	case !st.Global.EnableMigrate:
		return pump.MigrateAccounts{}, nil, precondition(types.KindGlobal, globalAddr, "migration is disabled")
	case st.Global.WithdrawAuthority.IsZero():
		return pump.MigrateAccounts{}, nil, precondition(types.KindGlobal, globalAddr, "no withdraw authority configured")
	case st.Curve == nil:
		return pump.MigrateAccounts{}, nil, notCreated(types.KindBondingCurve, curveAddr)
	case !st.Curve.Complete:
		return pump.MigrateAccounts{}, nil, precondition(types.KindBondingCurve, curveAddr, "bonding curve is not complete")
	}

	var d derivation
	poolAuthority := d.do(func() (solana.PublicKey, error) { return b.derive.PoolAuthority(st.Mint) })
	pool := d.do(func() (solana.PublicKey, error) { return b.derive.CanonicalPool(st.Mint) })
	lpMint := d.do(func() (solana.PublicKey, error) { return b.derive.PoolLpMint(pool) })
	accts := pump.MigrateAccounts{
		Global:                   globalAddr,
		WithdrawAuthority:        st.Global.WithdrawAuthority,
		Mint:                     st.Mint,
		BondingCurve:             curveAddr,
		AssociatedBondingCurve:   d.ata(b, curveAddr, st.Mint, st.TokenProgram),
		User:                     user,
		SystemProgram:            b.ids.System,
		TokenProgram:             st.TokenProgram,
		PumpAmm:                  b.ids.PumpAmm,
		Pool:                     pool,
		PoolAuthority:            poolAuthority,
		PoolAuthorityMintAccount: d.ata(b, poolAuthority, st.Mint, st.TokenProgram),
		PoolAuthorityWsolAccount: d.ata(b, poolAuthority, constants.WSOLMint, b.ids.Token),
		AmmGlobalConfig:          d.do(b.derive.AmmGlobalConfig),
		WsolMint:                 constants.WSOLMint,
		LpMint:                   lpMint,
		UserPoolTokenAccount:     d.ata(b, poolAuthority, lpMint, b.ids.Token2022),
		PoolBaseTokenAccount:     d.ata(b, pool, st.Mint, st.TokenProgram),
		PoolQuoteTokenAccount:    d.ata(b, pool, constants.WSOLMint, b.ids.Token),
		Token2022Program:         b.ids.Token2022,
		AssociatedTokenProgram:   b.ids.AssociatedToken,
		PumpAmmEventAuthority:    d.do(b.derive.AmmEventAuthority),
		EventAuthority:           d.do(b.derive.EventAuthority),
		Program:                  b.ids.Pump,
	}
	if d.err != nil {
		return pump.MigrateAccounts{}, nil, d.err
	}
	ix, err := pump.BuildMigrate(b.ids.Pump, accts)
	if err != nil {
		return pump.MigrateAccounts{}, nil, err
	}
	budget := computebudget.NewSetComputeUnitLimitInstruction(constants.MigrateComputeUnits).Build()
	return accts, []solana.Instruction{budget, ix}, nil
}
