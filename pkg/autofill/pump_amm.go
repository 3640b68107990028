package autofill

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/ninja0404/pump-client-go/pkg/builder"
	"github.com/ninja0404/pump-client-go/pkg/program/pumpamm"
	"github.com/ninja0404/pump-client-go/pkg/state"
	"github.com/ninja0404/pump-client-go/pkg/types"
)

// wrapQuote funds the user's WSOL account when the pool quotes in WSOL.
func (f *Filler) wrapQuote(st state.PoolState, user solana.PublicKey, lamports uint64, o *Options) ([]solana.Instruction, error) {
	if !o.WrapSOL || !st.Pool.QuoteMint.Equals(solana.WrappedSol) {
		return nil, nil
	}
	ata, err := f.derive.ATA(user, st.Pool.QuoteMint, st.QuoteTokenProgram)
	if err != nil {
		return nil, err
	}
	return buildWrapWSOL(user, ata, lamports), nil
}

// AmmBuy buys baseAmountOut of the pool's base token for at most maxQuoteIn.
//
// Instruction order: missing base/quote ATAs, WSOL funding (WSOL pools only), the buy, the tip.
func (f *Filler) AmmBuy(ctx context.Context, user, pool solana.PublicKey, baseAmountOut, maxQuoteIn uint64, opts ...Option) (pumpamm.BuyAccounts, pumpamm.BuyArgs, []solana.Instruction, error) {
	if err := types.ValidatePublicKeys([]string{"user", "pool"}, user, pool); err != nil {
		return pumpamm.BuyAccounts{}, pumpamm.BuyArgs{}, nil, err
	}
	if err := types.ValidateAmount("baseAmountOut", baseAmountOut); err != nil {
		return pumpamm.BuyAccounts{}, pumpamm.BuyArgs{}, nil, err
	}
	o := defaultOptions(opts)

	st, err := f.reader.FetchPoolState(ctx, pool)
	if err != nil {
		return pumpamm.BuyAccounts{}, pumpamm.BuyArgs{}, nil, err
	}
	accts, args, ix, err := f.build.AmmBuy(user, st, baseAmountOut, maxQuoteIn, o.TrackVolume)
	if err != nil {
		return pumpamm.BuyAccounts{}, pumpamm.BuyArgs{}, nil, err
	}
	if applyPubkeyOverrides(&accts, o.Overrides) {
		if ix, err = pumpamm.BuildBuy(f.ids.PumpAmm, accts, args); err != nil {
			return pumpamm.BuyAccounts{}, pumpamm.BuyArgs{}, nil, err
		}
	}

	instrs, err := f.ensureATAs(ctx, user, o,
		ataRequest{Owner: user, Mint: st.Pool.BaseMint, TokenProgram: st.BaseTokenProgram},
		ataRequest{Owner: user, Mint: st.Pool.QuoteMint, TokenProgram: st.QuoteTokenProgram},
	)
	if err != nil {
		return pumpamm.BuyAccounts{}, pumpamm.BuyArgs{}, nil, err
	}
	wrap, err := f.wrapQuote(st, user, maxQuoteIn, o)
	if err != nil {
		return pumpamm.BuyAccounts{}, pumpamm.BuyArgs{}, nil, err
	}
	instrs = append(instrs, wrap...)
	instrs = append(instrs, ix)
	instrs = appendJitoTip(instrs, user, o)
	writePreview(o, accts, args)
	f.logBuilt("amm_buy", len(instrs)).Str("pool", pool.String()).Uint64("base_out", baseAmountOut).Msg("built")
	return accts, args, instrs, nil
}

// AmmSell sells baseAmountIn for at least minQuoteOut.
func (f *Filler) AmmSell(ctx context.Context, user, pool solana.PublicKey, baseAmountIn, minQuoteOut uint64, opts ...Option) (pumpamm.SellAccounts, pumpamm.SellArgs, []solana.Instruction, error) {
	if err := types.ValidatePublicKeys([]string{"user", "pool"}, user, pool); err != nil {
		return pumpamm.SellAccounts{}, pumpamm.SellArgs{}, nil, err
	}
	if err := types.ValidateAmount("baseAmountIn", baseAmountIn); err != nil {
		return pumpamm.SellAccounts{}, pumpamm.SellArgs{}, nil, err
	}
	o := defaultOptions(opts)

	st, err := f.reader.FetchPoolState(ctx, pool)
	if err != nil {
		return pumpamm.SellAccounts{}, pumpamm.SellArgs{}, nil, err
	}
	accts, args, ix, err := f.build.AmmSell(user, st, baseAmountIn, minQuoteOut)
	if err != nil {
		return pumpamm.SellAccounts{}, pumpamm.SellArgs{}, nil, err
	}
	if applyPubkeyOverrides(&accts, o.Overrides) {
		if ix, err = pumpamm.BuildSell(f.ids.PumpAmm, accts, args); err != nil {
			return pumpamm.SellAccounts{}, pumpamm.SellArgs{}, nil, err
		}
	}

	instrs, err := f.ensureATAs(ctx, user, o, ataRequest{Owner: user, Mint: st.Pool.QuoteMint, TokenProgram: st.QuoteTokenProgram})
	if err != nil {
		return pumpamm.SellAccounts{}, pumpamm.SellArgs{}, nil, err
	}
	instrs = append(instrs, ix)
	if o.CloseBaseATA {
		instrs = append(instrs, buildCloseAccount(accts.UserBaseTokenAccount, user, user, st.BaseTokenProgram))
	}
	if o.CloseQuoteATA && st.Pool.QuoteMint.Equals(solana.WrappedSol) {
		instrs = append(instrs, buildCloseAccount(accts.UserQuoteTokenAccount, user, user, st.QuoteTokenProgram))
	}
	instrs = appendJitoTip(instrs, user, o)
	writePreview(o, accts, args)
	f.logBuilt("amm_sell", len(instrs)).Str("pool", pool.String()).Uint64("base_in", baseAmountIn).Msg("built")
	return accts, args, instrs, nil
}

// AmmCreatePool creates a pool. Zero token programs in p are resolved from the mint owners.
func (f *Filler) AmmCreatePool(ctx context.Context, p builder.CreatePoolParams, opts ...Option) (pumpamm.CreatePoolAccounts, pumpamm.CreatePoolArgs, []solana.Instruction, error) {
	if err := types.ValidatePublicKeys([]string{"creator", "baseMint", "quoteMint"}, p.Creator, p.BaseMint, p.QuoteMint); err != nil {
		return pumpamm.CreatePoolAccounts{}, pumpamm.CreatePoolArgs{}, nil, err
	}
	o := defaultOptions(opts)

	cfg, err := f.reader.FetchAmmGlobalConfig(ctx)
	if err != nil {
		return pumpamm.CreatePoolAccounts{}, pumpamm.CreatePoolArgs{}, nil, types.AsPrecondition(err)
	}
	if p.BaseTokenProgram.IsZero() || p.QuoteTokenProgram.IsZero() {
		base, quote, err := f.reader.MintPrograms(ctx, p.BaseMint, p.QuoteMint)
		if err != nil {
			return pumpamm.CreatePoolAccounts{}, pumpamm.CreatePoolArgs{}, nil, types.AsPrecondition(err)
		}
		p.BaseTokenProgram, p.QuoteTokenProgram = base, quote
	}
	accts, args, ix, err := f.build.AmmCreatePool(p, cfg)
	if err != nil {
		return pumpamm.CreatePoolAccounts{}, pumpamm.CreatePoolArgs{}, nil, err
	}

	instrs, err := f.ensureATAs(ctx, p.Creator, o, ataRequest{Owner: p.Creator, Mint: p.QuoteMint, TokenProgram: p.QuoteTokenProgram})
	if err != nil {
		return pumpamm.CreatePoolAccounts{}, pumpamm.CreatePoolArgs{}, nil, err
	}
	if o.WrapSOL && p.QuoteMint.Equals(solana.WrappedSol) {
		instrs = append(instrs, buildWrapWSOL(p.Creator, accts.UserQuoteTokenAccount, p.QuoteAmountIn)...)
	}
	instrs = append(instrs, ix)
	instrs = appendJitoTip(instrs, p.Creator, o)
	writePreview(o, accts, args)
	f.logBuilt("amm_create_pool", len(instrs)).Str("pool", accts.Pool.String()).Uint16("index", p.Index).Msg("built")
	return accts, args, instrs, nil
}

// AmmDeposit adds liquidity, creating the user's LP account when missing.
func (f *Filler) AmmDeposit(ctx context.Context, user, pool solana.PublicKey, args pumpamm.DepositArgs, opts ...Option) (pumpamm.LiquidityAccounts, []solana.Instruction, error) {
	if err := types.ValidatePublicKeys([]string{"user", "pool"}, user, pool); err != nil {
		return pumpamm.LiquidityAccounts{}, nil, err
	}
	o := defaultOptions(opts)

	st, err := f.reader.FetchPoolState(ctx, pool)
	if err != nil {
		return pumpamm.LiquidityAccounts{}, nil, err
	}
	accts, ix, err := f.build.AmmDeposit(user, st, args)
	if err != nil {
		return pumpamm.LiquidityAccounts{}, nil, err
	}
	instrs, err := f.ensureATAs(ctx, user, o,
		ataRequest{Owner: user, Mint: st.Pool.LpMint, TokenProgram: f.ids.Token2022},
		ataRequest{Owner: user, Mint: st.Pool.QuoteMint, TokenProgram: st.QuoteTokenProgram},
	)
	if err != nil {
		return pumpamm.LiquidityAccounts{}, nil, err
	}
	wrap, err := f.wrapQuote(st, user, args.MaxQuoteAmountIn, o)
	if err != nil {
		return pumpamm.LiquidityAccounts{}, nil, err
	}
	instrs = append(instrs, wrap...)
	instrs = append(instrs, ix)
	instrs = appendJitoTip(instrs, user, o)
	writePreview(o, accts, args)
	f.logBuilt("amm_deposit", len(instrs)).Str("pool", pool.String()).Uint64("lp_out", args.LpTokenAmountOut).Msg("built")
	return accts, instrs, nil
}

// AmmWithdraw removes liquidity, creating the user's base and quote accounts when missing.
func (f *Filler) AmmWithdraw(ctx context.Context, user, pool solana.PublicKey, args pumpamm.WithdrawArgs, opts ...Option) (pumpamm.LiquidityAccounts, []solana.Instruction, error) {
	if err := types.ValidatePublicKeys([]string{"user", "pool"}, user, pool); err != nil {
		return pumpamm.LiquidityAccounts{}, nil, err
	}
	o := defaultOptions(opts)

	st, err := f.reader.FetchPoolState(ctx, pool)
	if err != nil {
		return pumpamm.LiquidityAccounts{}, nil, err
	}
	accts, ix, err := f.build.AmmWithdraw(user, st, args)
	if err != nil {
		return pumpamm.LiquidityAccounts{}, nil, err
	}
	instrs, err := f.ensureATAs(ctx, user, o,
		ataRequest{Owner: user, Mint: st.Pool.BaseMint, TokenProgram: st.BaseTokenProgram},
		ataRequest{Owner: user, Mint: st.Pool.QuoteMint, TokenProgram: st.QuoteTokenProgram},
	)
	if err != nil {
		return pumpamm.LiquidityAccounts{}, nil, err
	}
	instrs = append(instrs, ix)
	instrs = appendJitoTip(instrs, user, o)
	writePreview(o, accts, args)
	f.logBuilt("amm_withdraw", len(instrs)).Str("pool", pool.String()).Uint64("lp_in", args.LpTokenAmountIn).Msg("built")
	return accts, instrs, nil
}

// AmmCollectCoinCreatorFee sweeps the caller's coin-creator vault for quoteMint.
func (f *Filler) AmmCollectCoinCreatorFee(ctx context.Context, caller, quoteMint solana.PublicKey, opts ...Option) (pumpamm.CollectCoinCreatorFeeAccounts, []solana.Instruction, error) {
	if err := types.ValidatePublicKeys([]string{"caller", "quoteMint"}, caller, quoteMint); err != nil {
		return pumpamm.CollectCoinCreatorFeeAccounts{}, nil, err
	}
	o := defaultOptions(opts)

	quoteProgram, err := f.reader.MintTokenProgram(ctx, quoteMint)
	if err != nil {
		return pumpamm.CollectCoinCreatorFeeAccounts{}, nil, types.AsPrecondition(err)
	}
	accts, ix, err := f.build.AmmCollectCoinCreatorFee(caller, quoteMint, quoteProgram)
	if err != nil {
		return pumpamm.CollectCoinCreatorFeeAccounts{}, nil, err
	}
	instrs, err := f.ensureATAs(ctx, caller, o, ataRequest{Owner: caller, Mint: quoteMint, TokenProgram: quoteProgram})
	if err != nil {
		return pumpamm.CollectCoinCreatorFeeAccounts{}, nil, err
	}
	instrs = append(instrs, ix)
	instrs = appendJitoTip(instrs, caller, o)
	writePreview(o, accts, nil)
	f.logBuilt("amm_collect_coin_creator_fee", len(instrs)).Str("caller", caller.String()).Msg("built")
	return accts, instrs, nil
}

// AmmSetCoinCreator refreshes a pool's coin creator. caller must be the current coin creator.
func (f *Filler) AmmSetCoinCreator(ctx context.Context, caller, pool solana.PublicKey, opts ...Option) (pumpamm.SetCoinCreatorAccounts, []solana.Instruction, error) {
	o := defaultOptions(opts)
	p, err := f.reader.FetchPool(ctx, pool)
	if err != nil {
		return pumpamm.SetCoinCreatorAccounts{}, nil, types.AsPrecondition(err)
	}
	accts, ix, err := f.build.AmmSetCoinCreator(caller, pool, p)
	if err != nil {
		return pumpamm.SetCoinCreatorAccounts{}, nil, err
	}
	writePreview(o, accts, nil)
	f.logBuilt("amm_set_coin_creator", 1).Str("pool", pool.String()).Msg("built")
	return accts, []solana.Instruction{ix}, nil
}

func (f *Filler) configForAdmin(ctx context.Context) (*pumpamm.GlobalConfig, error) {
	cfg, err := f.reader.FetchAmmGlobalConfig(ctx)
	if err != nil {
		return nil, types.AsPrecondition(err)
	}
	return cfg, nil
}

// AmmUpdateAdmin hands the AMM admin role to newAdmin.
func (f *Filler) AmmUpdateAdmin(ctx context.Context, admin, newAdmin solana.PublicKey, opts ...Option) (pumpamm.UpdateAdminAccounts, []solana.Instruction, error) {
	o := defaultOptions(opts)
	cfg, err := f.configForAdmin(ctx)
	if err != nil {
		return pumpamm.UpdateAdminAccounts{}, nil, err
	}
	accts, ix, err := f.build.AmmUpdateAdmin(admin, newAdmin, cfg)
	if err != nil {
		return pumpamm.UpdateAdminAccounts{}, nil, err
	}
	writePreview(o, accts, nil)
	f.logBuilt("amm_update_admin", 1).Str("new_admin", newAdmin.String()).Msg("built")
	return accts, []solana.Instruction{ix}, nil
}

// AmmDisable writes the five disable flags.
func (f *Filler) AmmDisable(ctx context.Context, admin solana.PublicKey, args pumpamm.DisableArgs, opts ...Option) (pumpamm.DisableAccounts, []solana.Instruction, error) {
	o := defaultOptions(opts)
	cfg, err := f.configForAdmin(ctx)
	if err != nil {
		return pumpamm.DisableAccounts{}, nil, err
	}
	accts, ix, err := f.build.AmmDisable(admin, cfg, args)
	if err != nil {
		return pumpamm.DisableAccounts{}, nil, err
	}
	writePreview(o, accts, args)
	f.logBuilt("amm_disable", 1).Msg("built")
	return accts, []solana.Instruction{ix}, nil
}

// AmmExtendAccount resizes an AMM-owned account.
func (f *Filler) AmmExtendAccount(ctx context.Context, admin, account solana.PublicKey, opts ...Option) (pumpamm.ExtendAccountAccounts, []solana.Instruction, error) {
	o := defaultOptions(opts)
	cfg, err := f.configForAdmin(ctx)
	if err != nil {
		return pumpamm.ExtendAccountAccounts{}, nil, err
	}
	accts, ix, err := f.build.AmmExtendAccount(admin, account, cfg)
	if err != nil {
		return pumpamm.ExtendAccountAccounts{}, nil, err
	}
	writePreview(o, accts, nil)
	f.logBuilt("amm_extend_account", 1).Str("account", account.String()).Msg("built")
	return accts, []solana.Instruction{ix}, nil
}
