package autofill

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/ninja0404/pump-client-go/pkg/builder"
	"github.com/ninja0404/pump-client-go/pkg/program/pump"
	"github.com/ninja0404/pump-client-go/pkg/types"
)

// PumpBuy buys amount tokens on the bonding curve, paying at most maxSol lamports.
//
// Returns the resolved accounts, the args, and the instructions to sign in order:
// user ATA creation when missing, the buy, and an optional Jito tip.
//
//	accts, args, instrs, err := f.PumpBuy(ctx, user, mint, 1_000_000, 100_000_000)
func (f *Filler) PumpBuy(ctx context.Context, user, mint solana.PublicKey, amount, maxSol uint64, opts ...Option) (pump.BuyAccounts, pump.BuyArgs, []solana.Instruction, error) {
	if err := types.ValidatePublicKeys([]string{"user", "mint"}, user, mint); err != nil {
		return pump.BuyAccounts{}, pump.BuyArgs{}, nil, err
	}
	if err := types.ValidateAmount("amount", amount); err != nil {
		return pump.BuyAccounts{}, pump.BuyArgs{}, nil, err
	}
	o := defaultOptions(opts)

	st, err := f.reader.FetchTradeState(ctx, mint)
	if err != nil {
		return pump.BuyAccounts{}, pump.BuyArgs{}, nil, err
	}
	accts, args, ix, err := f.build.PumpBuy(user, st, amount, maxSol, o.TrackVolume)
	if err != nil {
		return pump.BuyAccounts{}, pump.BuyArgs{}, nil, err
	}
	if applyPubkeyOverrides(&accts, o.Overrides) {
		if ix, err = pump.BuildBuy(f.ids.Pump, accts, args); err != nil {
			return pump.BuyAccounts{}, pump.BuyArgs{}, nil, err
		}
	}

	// 先建用户 ATA
	instrs, err := f.ensureATAs(ctx, user, o, ataRequest{Owner: user, Mint: mint, TokenProgram: st.TokenProgram})
	if err != nil {
		return pump.BuyAccounts{}, pump.BuyArgs{}, nil, err
	}
	instrs = append(instrs, ix)
	instrs = appendJitoTip(instrs, user, o)
	writePreview(o, accts, args)
	f.logBuilt("pump_buy", len(instrs)).Str("mint", mint.String()).Uint64("amount", amount).Msg("built")
	return accts, args, instrs, nil
}

// PumpSell sells amount tokens back to the curve for at least minSol lamports.
func (f *Filler) PumpSell(ctx context.Context, user, mint solana.PublicKey, amount, minSol uint64, opts ...Option) (pump.SellAccounts, pump.SellArgs, []solana.Instruction, error) {
	if err := types.ValidatePublicKeys([]string{"user", "mint"}, user, mint); err != nil {
		return pump.SellAccounts{}, pump.SellArgs{}, nil, err
	}
	if err := types.ValidateAmount("amount", amount); err != nil {
		return pump.SellAccounts{}, pump.SellArgs{}, nil, err
	}
	o := defaultOptions(opts)

	st, err := f.reader.FetchTradeState(ctx, mint)
	if err != nil {
		return pump.SellAccounts{}, pump.SellArgs{}, nil, err
	}
	accts, args, ix, err := f.build.PumpSell(user, st, amount, minSol)
	if err != nil {
		return pump.SellAccounts{}, pump.SellArgs{}, nil, err
	}
	if applyPubkeyOverrides(&accts, o.Overrides) {
		if ix, err = pump.BuildSell(f.ids.Pump, accts, args); err != nil {
			return pump.SellAccounts{}, pump.SellArgs{}, nil, err
		}
	}

	instrs := []solana.Instruction{ix}
	if o.CloseBaseATA {
		instrs = append(instrs, buildCloseAccount(accts.AssociatedUser, user, user, st.TokenProgram))
	}
	instrs = appendJitoTip(instrs, user, o)
	writePreview(o, accts, args)
	f.logBuilt("pump_sell", len(instrs)).Str("mint", mint.String()).Uint64("amount", amount).Msg("built")
	return accts, args, instrs, nil
}

// PumpCreate launches a new token. The mint keypair must co-sign the transaction.
func (f *Filler) PumpCreate(ctx context.Context, p builder.CreateParams, opts ...Option) (pump.CreateAccounts, pump.CreateArgs, []solana.Instruction, error) {
	o := defaultOptions(opts)
	if _, err := f.reader.FetchGlobal(ctx); err != nil {
		return pump.CreateAccounts{}, pump.CreateArgs{}, nil, types.AsPrecondition(err)
	}
	accts, args, ix, err := f.build.PumpCreate(p)
	if err != nil {
		return pump.CreateAccounts{}, pump.CreateArgs{}, nil, err
	}
	instrs := appendJitoTip([]solana.Instruction{ix}, p.User, o)
	writePreview(o, accts, args)
	f.logBuilt("pump_create", len(instrs)).Str("mint", p.Mint.String()).Str("symbol", p.Symbol).Msg("built")
	return accts, args, instrs, nil
}

// PumpCollectCreatorFee sweeps the caller's creator vault.
func (f *Filler) PumpCollectCreatorFee(ctx context.Context, creator solana.PublicKey, opts ...Option) (pump.CollectCreatorFeeAccounts, []solana.Instruction, error) {
	o := defaultOptions(opts)
	accts, ix, err := f.build.PumpCollectCreatorFee(creator)
	if err != nil {
		return pump.CollectCreatorFeeAccounts{}, nil, err
	}
	instrs := appendJitoTip([]solana.Instruction{ix}, creator, o)
	writePreview(o, accts, nil)
	f.logBuilt("pump_collect_creator_fee", len(instrs)).Str("creator", creator.String()).Msg("built")
	return accts, instrs, nil
}

// optionalGlobal returns nil when Global does not exist yet.
func (f *Filler) optionalGlobal(ctx context.Context) (*pump.Global, error) {
	g, err := f.reader.FetchGlobal(ctx)
	if errorsIsNotFound(err) {
		return nil, nil
	}
	return g, err
}

// PumpInitialize creates the Global account. It fails when Global already exists.
func (f *Filler) PumpInitialize(ctx context.Context, user solana.PublicKey, opts ...Option) (pump.InitializeAccounts, []solana.Instruction, error) {
	o := defaultOptions(opts)
	global, err := f.optionalGlobal(ctx)
	if err != nil {
		return pump.InitializeAccounts{}, nil, err
	}
	accts, ix, err := f.build.PumpInitialize(user, global)
	if err != nil {
		return pump.InitializeAccounts{}, nil, err
	}
	writePreview(o, accts, nil)
	f.logBuilt("pump_initialize", 1).Msg("built")
	return accts, []solana.Instruction{ix}, nil
}

func (f *Filler) globalForAdmin(ctx context.Context) (*pump.Global, error) {
	g, err := f.reader.FetchGlobal(ctx)
	if err != nil {
		return nil, types.AsPrecondition(err)
	}
	return g, nil
}

// PumpSetParams replaces protocol parameters. authority must hold the protocol authority role.
func (f *Filler) PumpSetParams(ctx context.Context, authority solana.PublicKey, args pump.SetParamsArgs, opts ...Option) (pump.SetParamsAccounts, []solana.Instruction, error) {
	o := defaultOptions(opts)
	global, err := f.globalForAdmin(ctx)
	if err != nil {
		return pump.SetParamsAccounts{}, nil, err
	}
	accts, ix, err := f.build.PumpSetParams(authority, global, args)
	if err != nil {
		return pump.SetParamsAccounts{}, nil, err
	}
	writePreview(o, accts, args)
	f.logBuilt("pump_set_params", 1).Str("authority", authority.String()).Msg("built")
	return accts, []solana.Instruction{ix}, nil
}

// PumpUpdateGlobalAuthority hands the protocol authority to newAuthority.
func (f *Filler) PumpUpdateGlobalAuthority(ctx context.Context, authority, newAuthority solana.PublicKey, opts ...Option) (pump.UpdateGlobalAuthorityAccounts, []solana.Instruction, error) {
	o := defaultOptions(opts)
	global, err := f.globalForAdmin(ctx)
	if err != nil {
		return pump.UpdateGlobalAuthorityAccounts{}, nil, err
	}
	accts, ix, err := f.build.PumpUpdateGlobalAuthority(authority, newAuthority, global)
	if err != nil {
		return pump.UpdateGlobalAuthorityAccounts{}, nil, err
	}
	writePreview(o, accts, nil)
	f.logBuilt("pump_update_global_authority", 1).Str("new_authority", newAuthority.String()).Msg("built")
	return accts, []solana.Instruction{ix}, nil
}

// PumpExtendAccount resizes a pump-owned account.
func (f *Filler) PumpExtendAccount(ctx context.Context, authority, account solana.PublicKey, opts ...Option) (pump.ExtendAccountAccounts, []solana.Instruction, error) {
	o := defaultOptions(opts)
	global, err := f.globalForAdmin(ctx)
	if err != nil {
		return pump.ExtendAccountAccounts{}, nil, err
	}
	accts, ix, err := f.build.PumpExtendAccount(authority, account, global)
	if err != nil {
		return pump.ExtendAccountAccounts{}, nil, err
	}
	writePreview(o, accts, nil)
	f.logBuilt("pump_extend_account", 1).Str("account", account.String()).Msg("built")
	return accts, []solana.Instruction{ix}, nil
}

// PumpSetCreator overrides a curve's creator. setter must hold the set-creator authority.
func (f *Filler) PumpSetCreator(ctx context.Context, setter, mint, creator solana.PublicKey, opts ...Option) (pump.SetCreatorAccounts, []solana.Instruction, error) {
	o := defaultOptions(opts)
	global, err := f.globalForAdmin(ctx)
	if err != nil {
		return pump.SetCreatorAccounts{}, nil, err
	}
	curve, err := f.reader.FetchBondingCurve(ctx, mint)
	if err != nil {
		return pump.SetCreatorAccounts{}, nil, types.AsPrecondition(err)
	}
	accts, args, ix, err := f.build.PumpSetCreator(setter, mint, creator, global, curve)
	if err != nil {
		return pump.SetCreatorAccounts{}, nil, err
	}
	writePreview(o, accts, args)
	f.logBuilt("pump_set_creator", 1).Str("mint", mint.String()).Str("creator", creator.String()).Msg("built")
	return accts, []solana.Instruction{ix}, nil
}

// PumpSetMetaplexCreator syncs the curve creator from metadata. caller must be the current creator.
func (f *Filler) PumpSetMetaplexCreator(ctx context.Context, caller, mint solana.PublicKey, opts ...Option) (pump.SetMetaplexCreatorAccounts, []solana.Instruction, error) {
	o := defaultOptions(opts)
	curve, err := f.reader.FetchBondingCurve(ctx, mint)
	if err != nil {
		return pump.SetMetaplexCreatorAccounts{}, nil, types.AsPrecondition(err)
	}
	accts, ix, err := f.build.PumpSetMetaplexCreator(caller, mint, curve)
	if err != nil {
		return pump.SetMetaplexCreatorAccounts{}, nil, err
	}
	writePreview(o, accts, nil)
	f.logBuilt("pump_set_metaplex_creator", 1).Str("mint", mint.String()).Msg("built")
	return accts, []solana.Instruction{ix}, nil
}

// PumpMigrate moves a completed curve into its canonical pool.
// The returned instructions start with a compute-unit limit that must stay first.
func (f *Filler) PumpMigrate(ctx context.Context, user, mint solana.PublicKey, opts ...Option) (pump.MigrateAccounts, []solana.Instruction, error) {
	o := defaultOptions(opts)
	st, err := f.reader.FetchTradeState(ctx, mint)
	if err != nil {
		return pump.MigrateAccounts{}, nil, err
	}
	accts, instrs, err := f.build.PumpMigrate(user, st)
	if err != nil {
		return pump.MigrateAccounts{}, nil, err
	}
	instrs = appendJitoTip(instrs, user, o)
	writePreview(o, accts, nil)
	f.logBuilt("pump_migrate", len(instrs)).Str("mint", mint.String()).Str("pool", accts.Pool.String()).Msg("built")
	return accts, instrs, nil
}
