package builder

import (
	"github.com/gagliardetto/solana-go"

	"github.com/ninja0404/pump-client-go/pkg/guard"
	"github.com/ninja0404/pump-client-go/pkg/program/pumpamm"
	"github.com/ninja0404/pump-client-go/pkg/state"
	"github.com/ninja0404/pump-client-go/pkg/types"
)

var disabledNames = map[uint8]string{
	pumpamm.DisableCreatePool: "create_pool",
	pumpamm.DisableDeposit:    "deposit",
	pumpamm.DisableWithdraw:   "withdraw",
	pumpamm.DisableBuy:        "buy",
	pumpamm.DisableSell:       "sell",
}

func (b *Builder) checkConfig(cfg *pumpamm.GlobalConfig, flag uint8) (solana.PublicKey, error) {
	addr, err := b.derive.AmmGlobalConfig()
	if err != nil {
		return solana.PublicKey{}, err
	}
	if cfg == nil {
		return addr, notCreated(types.KindAmmGlobalConfig, addr)
	}
	if flag != 0 && cfg.Disabled(flag) {
		return addr, precondition(types.KindAmmGlobalConfig, addr, disabledNames[flag]+" is disabled")
	}
	return addr, nil
}

func (b *Builder) checkPoolState(st state.PoolState, flag uint8) (solana.PublicKey, error) {
	if err := requireKeys(pk("pool", st.Address)); err != nil {
		return solana.PublicKey{}, err
	}
	if st.Pool == nil {
		return solana.PublicKey{}, notCreated(types.KindPool, st.Address)
	}
	cfgAddr, err := b.checkConfig(st.Config, flag)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if err := requireKeys(pk("baseTokenProgram", st.BaseTokenProgram), pk("quoteTokenProgram", st.QuoteTokenProgram)); err != nil {
		return solana.PublicKey{}, err
	}
	return cfgAddr, nil
}

type ammTradeAccounts struct {
	globalConfig, userBase, userQuote        solana.PublicKey
	feeRecipient, feeRecipientATA            solana.PublicKey
	vaultAuthority, vaultATA, eventAuthority solana.PublicKey
	feeConfig                                solana.PublicKey
}

func (b *Builder) ammTradeAccounts(user solana.PublicKey, st state.PoolState, flag uint8) (ammTradeAccounts, error) {
	cfgAddr, err := b.checkPoolState(st, flag)
	if err != nil {
		return ammTradeAccounts{}, err
	}
	out := ammTradeAccounts{globalConfig: cfgAddr, feeRecipient: st.Config.FirstProtocolFeeRecipient()}
	if out.feeRecipient.IsZero() {
		return ammTradeAccounts{}, precondition(types.KindAmmGlobalConfig, cfgAddr, "no protocol fee recipient configured")
	}
	p := st.Pool
	var d derivation
	out.userBase = d.ata(b, user, p.BaseMint, st.BaseTokenProgram)
	out.userQuote = d.ata(b, user, p.QuoteMint, st.QuoteTokenProgram)
	out.feeRecipientATA = d.ata(b, out.feeRecipient, p.QuoteMint, st.QuoteTokenProgram)
	out.vaultAuthority = d.do(func() (solana.PublicKey, error) { return b.derive.AmmCreatorVault(p.CoinCreator) })
	out.vaultATA = d.ata(b, out.vaultAuthority, p.QuoteMint, st.QuoteTokenProgram)
	out.eventAuthority = d.do(b.derive.AmmEventAuthority)
	out.feeConfig = d.do(func() (solana.PublicKey, error) { return b.derive.FeeConfig(b.ids.PumpAmm) })
	return out, d.err
}

// AmmBuy buys baseAmountOut of the pool's base token, paying at most maxQuoteAmountIn.
func (b *Builder) AmmBuy(user solana.PublicKey, st state.PoolState, baseAmountOut, maxQuoteAmountIn uint64, trackVolume bool) (pumpamm.BuyAccounts, pumpamm.BuyArgs, solana.Instruction, error) {
	if err := requireKeys(pk("user", user)); err != nil {
		return pumpamm.BuyAccounts{}, pumpamm.BuyArgs{}, nil, err
	}
	c, err := b.ammTradeAccounts(user, st, pumpamm.DisableBuy)
	if err != nil {
		return pumpamm.BuyAccounts{}, pumpamm.BuyArgs{}, nil, err
	}
	var d derivation
	accts := pumpamm.BuyAccounts{
		Pool:                             st.Address,
		User:                             user,
		GlobalConfig:                     c.globalConfig,
		BaseMint:                         st.Pool.BaseMint,
		QuoteMint:                        st.Pool.QuoteMint,
		UserBaseTokenAccount:             c.userBase,
		UserQuoteTokenAccount:            c.userQuote,
		PoolBaseTokenAccount:             st.Pool.PoolBaseTokenAccount,
		PoolQuoteTokenAccount:            st.Pool.PoolQuoteTokenAccount,
		ProtocolFeeRecipient:             c.feeRecipient,
		ProtocolFeeRecipientTokenAccount: c.feeRecipientATA,
		BaseTokenProgram:                 st.BaseTokenProgram,
		QuoteTokenProgram:                st.QuoteTokenProgram,
		SystemProgram:                    b.ids.System,
		AssociatedTokenProgram:           b.ids.AssociatedToken,
		EventAuthority:                   c.eventAuthority,
		Program:                          b.ids.PumpAmm,
		CoinCreatorVaultAta:              c.vaultATA,
		CoinCreatorVaultAuthority:        c.vaultAuthority,
		GlobalVolumeAccumulator:          d.do(b.derive.AmmGlobalVolumeAccumulator),
		UserVolumeAccumulator:            d.do(func() (solana.PublicKey, error) { return b.derive.AmmUserVolumeAccumulator(user) }),
		FeeConfig:                        c.feeConfig,
		FeeProgram:                       b.ids.PumpFee,
	}
	if d.err != nil {
		return pumpamm.BuyAccounts{}, pumpamm.BuyArgs{}, nil, d.err
	}
	args := pumpamm.BuyArgs{
		BaseAmountOut:    baseAmountOut,
		MaxQuoteAmountIn: maxQuoteAmountIn,
		TrackVolume:      pumpamm.OptionBool{Field0: trackVolume},
	}
	ix, err := pumpamm.BuildBuy(b.ids.PumpAmm, accts, args)
	if err != nil {
		return pumpamm.BuyAccounts{}, pumpamm.BuyArgs{}, nil, err
	}
	return accts, args, ix, nil
}

// AmmSell sells baseAmountIn for at least minQuoteAmountOut.
func (b *Builder) AmmSell(user solana.PublicKey, st state.PoolState, baseAmountIn, minQuoteAmountOut uint64) (pumpamm.SellAccounts, pumpamm.SellArgs, solana.Instruction, error) {
	if err := requireKeys(pk("user", user)); err != nil {
		return pumpamm.SellAccounts{}, pumpamm.SellArgs{}, nil, err
	}
	c, err := b.ammTradeAccounts(user, st, pumpamm.DisableSell)
	if err != nil {
		return pumpamm.SellAccounts{}, pumpamm.SellArgs{}, nil, err
	}
	accts := pumpamm.SellAccounts{
		Pool:                             st.Address,
		User:                             user,
		GlobalConfig:                     c.globalConfig,
		BaseMint:                         st.Pool.BaseMint,
		QuoteMint:                        st.Pool.QuoteMint,
		UserBaseTokenAccount:             c.userBase,
		UserQuoteTokenAccount:            c.userQuote,
		PoolBaseTokenAccount:             st.Pool.PoolBaseTokenAccount,
		PoolQuoteTokenAccount:            st.Pool.PoolQuoteTokenAccount,
		ProtocolFeeRecipient:             c.feeRecipient,
		ProtocolFeeRecipientTokenAccount: c.feeRecipientATA,
		BaseTokenProgram:                 st.BaseTokenProgram,
		QuoteTokenProgram:                st.QuoteTokenProgram,
		SystemProgram:                    b.ids.System,
		AssociatedTokenProgram:           b.ids.AssociatedToken,
		EventAuthority:                   c.eventAuthority,
		Program:                          b.ids.PumpAmm,
		CoinCreatorVaultAta:              c.vaultATA,
		CoinCreatorVaultAuthority:        c.vaultAuthority,
		FeeConfig:                        c.feeConfig,
		FeeProgram:                       b.ids.PumpFee,
	}
	args := pumpamm.SellArgs{BaseAmountIn: baseAmountIn, MinQuoteAmountOut: minQuoteAmountOut}
	ix, err := pumpamm.BuildSell(b.ids.PumpAmm, accts, args)
	if err != nil {
		return pumpamm.SellAccounts{}, pumpamm.SellArgs{}, nil, err
	}
	return accts, args, ix, nil
}

// CreatePoolParams describes a new pool. Token programs must match the mint owners.
type CreatePoolParams struct {
	Creator           solana.PublicKey
	Index             uint16
	BaseMint          solana.PublicKey
	QuoteMint         solana.PublicKey
	BaseTokenProgram  solana.PublicKey
	QuoteTokenProgram solana.PublicKey
	BaseAmountIn      uint64
	QuoteAmountIn     uint64
	CoinCreator       solana.PublicKey
}

// AmmCreatePool derives every account of a pool that does not exist yet.
func (b *Builder) AmmCreatePool(p CreatePoolParams, cfg *pumpamm.GlobalConfig) (pumpamm.CreatePoolAccounts, pumpamm.CreatePoolArgs, solana.Instruction, error) {
	if err := requireKeys(
		pk("creator", p.Creator),
		pk("baseMint", p.BaseMint),
		pk("quoteMint", p.QuoteMint),
		pk("baseTokenProgram", p.BaseTokenProgram),
		pk("quoteTokenProgram", p.QuoteTokenProgram),
	); err != nil {
		return pumpamm.CreatePoolAccounts{}, pumpamm.CreatePoolArgs{}, nil, err
	}
	cfgAddr, err := b.checkConfig(cfg, pumpamm.DisableCreatePool)
	if err != nil {
		return pumpamm.CreatePoolAccounts{}, pumpamm.CreatePoolArgs{}, nil, err
	}
	var d derivation
	pool := d.do(func() (solana.PublicKey, error) { return b.derive.Pool(p.Index, p.Creator, p.BaseMint, p.QuoteMint) })
	lpMint := d.do(func() (solana.PublicKey, error) { return b.derive.PoolLpMint(pool) })
	accts := pumpamm.CreatePoolAccounts{
		Pool:                   pool,
		GlobalConfig:           cfgAddr,
		Creator:                p.Creator,
		BaseMint:               p.BaseMint,
		QuoteMint:              p.QuoteMint,
		LpMint:                 lpMint,
		UserBaseTokenAccount:   d.ata(b, p.Creator, p.BaseMint, p.BaseTokenProgram),
		UserQuoteTokenAccount:  d.ata(b, p.Creator, p.QuoteMint, p.QuoteTokenProgram),
		UserPoolTokenAccount:   d.ata(b, p.Creator, lpMint, b.ids.Token2022),
		PoolBaseTokenAccount:   d.ata(b, pool, p.BaseMint, p.BaseTokenProgram),
		PoolQuoteTokenAccount:  d.ata(b, pool, p.QuoteMint, p.QuoteTokenProgram),
		SystemProgram:          b.ids.System,
		Token2022Program:       b.ids.Token2022,
		BaseTokenProgram:       p.BaseTokenProgram,
		QuoteTokenProgram:      p.QuoteTokenProgram,
		AssociatedTokenProgram: b.ids.AssociatedToken,
		EventAuthority:         d.do(b.derive.AmmEventAuthority),
		Program:                b.ids.PumpAmm,
	}
	if d.err != nil {
		return pumpamm.CreatePoolAccounts{}, pumpamm.CreatePoolArgs{}, nil, d.err
	}
	args := pumpamm.CreatePoolArgs{
		Index:         p.Index,
		BaseAmountIn:  p.BaseAmountIn,
		QuoteAmountIn: p.QuoteAmountIn,
		CoinCreator:   p.CoinCreator,
	}
	ix, err := pumpamm.BuildCreatePool(b.ids.PumpAmm, accts, args)
	if err != nil {
		return pumpamm.CreatePoolAccounts{}, pumpamm.CreatePoolArgs{}, nil, err
	}
	return accts, args, ix, nil
}

func (b *Builder) liquidityAccounts(user solana.PublicKey, st state.PoolState, flag uint8) (pumpamm.LiquidityAccounts, error) {
	if err := requireKeys(pk("user", user)); err != nil {
		return pumpamm.LiquidityAccounts{}, err
	}
	cfgAddr, err := b.checkPoolState(st, flag)
	if err != nil {
		return pumpamm.LiquidityAccounts{}, err
	}
	p := st.Pool
	var d derivation
	accts := pumpamm.LiquidityAccounts{
		Pool:                  st.Address,
		GlobalConfig:          cfgAddr,
		User:                  user,
		BaseMint:              p.BaseMint,
		QuoteMint:             p.QuoteMint,
		LpMint:                p.LpMint,
		UserBaseTokenAccount:  d.ata(b, user, p.BaseMint, st.BaseTokenProgram),
		UserQuoteTokenAccount: d.ata(b, user, p.QuoteMint, st.QuoteTokenProgram),
		UserPoolTokenAccount:  d.ata(b, user, p.LpMint, b.ids.Token2022),
		PoolBaseTokenAccount:  p.PoolBaseTokenAccount,
		PoolQuoteTokenAccount: p.PoolQuoteTokenAccount,
		TokenProgram:          b.ids.Token,
		Token2022Program:      b.ids.Token2022,
		EventAuthority:        d.do(b.derive.AmmEventAuthority),
		Program:               b.ids.PumpAmm,
	}
	return accts, d.err
}

// AmmDeposit mints lpTokenAmountOut LP tokens against at most the given base and quote amounts.
func (b *Builder) AmmDeposit(user solana.PublicKey, st state.PoolState, args pumpamm.DepositArgs) (pumpamm.LiquidityAccounts, solana.Instruction, error) {
	accts, err := b.liquidityAccounts(user, st, pumpamm.DisableDeposit)
	if err != nil {
		return pumpamm.LiquidityAccounts{}, nil, err
	}
	ix, err := pumpamm.BuildDeposit(b.ids.PumpAmm, accts, args)
	return accts, ix, err
}

// AmmWithdraw burns lpTokenAmountIn LP tokens for at least the given base and quote amounts.
func (b *Builder) AmmWithdraw(user solana.PublicKey, st state.PoolState, args pumpamm.WithdrawArgs) (pumpamm.LiquidityAccounts, solana.Instruction, error) {
	accts, err := b.liquidityAccounts(user, st, pumpamm.DisableWithdraw)
	if err != nil {
		return pumpamm.LiquidityAccounts{}, nil, err
	}
	ix, err := pumpamm.BuildWithdraw(b.ids.PumpAmm, accts, args)
	return accts, ix, err
}

// AmmCollectCoinCreatorFee sweeps the caller's coin-creator vault for one quote mint.
func (b *Builder) AmmCollectCoinCreatorFee(caller, quoteMint, quoteTokenProgram solana.PublicKey) (pumpamm.CollectCoinCreatorFeeAccounts, solana.Instruction, error) {
	if err := requireKeys(pk("caller", caller), pk("quoteMint", quoteMint), pk("quoteTokenProgram", quoteTokenProgram)); err != nil {
		return pumpamm.CollectCoinCreatorFeeAccounts{}, nil, err
	}
	var d derivation
	vault := d.do(func() (solana.PublicKey, error) { return b.derive.AmmCreatorVault(caller) })
	accts := pumpamm.CollectCoinCreatorFeeAccounts{
		QuoteMint:                 quoteMint,
		QuoteTokenProgram:         quoteTokenProgram,
		CoinCreator:               caller,
		CoinCreatorVaultAuthority: vault,
		CoinCreatorVaultAta:       d.ata(b, vault, quoteMint, quoteTokenProgram),
		CoinCreatorTokenAccount:   d.ata(b, caller, quoteMint, quoteTokenProgram),
		EventAuthority:            d.do(b.derive.AmmEventAuthority),
		Program:                   b.ids.PumpAmm,
	}
	if d.err != nil {
		return pumpamm.CollectCoinCreatorFeeAccounts{}, nil, d.err
	}
	ix, err := pumpamm.BuildCollectCoinCreatorFee(b.ids.PumpAmm, accts)
	return accts, ix, err
}

// AmmSetCoinCreator refreshes a pool's coin creator from its base mint's metadata and bonding curve.
// The caller must be the pool's current coin creator.
func (b *Builder) AmmSetCoinCreator(caller, poolAddr solana.PublicKey, pool *pumpamm.Pool) (pumpamm.SetCoinCreatorAccounts, solana.Instruction, error) {
	if err := requireKeys(pk("caller", caller), pk("pool", poolAddr)); err != nil {
		return pumpamm.SetCoinCreatorAccounts{}, nil, err
	}
	if pool == nil {
		return pumpamm.SetCoinCreatorAccounts{}, nil, notCreated(types.KindPool, poolAddr)
	}
	if err := guard.Require(caller, guard.CoinCreator, guard.Snapshot{Pool: pool}); err != nil {
		return pumpamm.SetCoinCreatorAccounts{}, nil, err
	}
	var d derivation
	accts := pumpamm.SetCoinCreatorAccounts{
		Pool:           poolAddr,
		Metadata:       d.do(func() (solana.PublicKey, error) { return b.derive.Metadata(pool.BaseMint) }),
		BondingCurve:   d.do(func() (solana.PublicKey, error) { return b.derive.BondingCurve(pool.BaseMint) }),
		EventAuthority: d.do(b.derive.AmmEventAuthority),
		Program:        b.ids.PumpAmm,
	}
	if d.err != nil {
		return pumpamm.SetCoinCreatorAccounts{}, nil, d.err
	}
	ix, err := pumpamm.BuildSetCoinCreator(b.ids.PumpAmm, accts)
	return accts, ix, err
}

// AmmUpdateAdmin hands the AMM admin role to newAdmin.
func (b *Builder) AmmUpdateAdmin(admin, newAdmin solana.PublicKey, cfg *pumpamm.GlobalConfig) (pumpamm.UpdateAdminAccounts, solana.Instruction, error) {
	if err := requireKeys(pk("admin", admin), pk("newAdmin", newAdmin)); err != nil {
		return pumpamm.UpdateAdminAccounts{}, nil, err
	}
	if err := guard.Require(admin, guard.AmmAdmin, guard.Snapshot{AmmConfig: cfg}); err != nil {
		return pumpamm.UpdateAdminAccounts{}, nil, err
	}
	var d derivation
	accts := pumpamm.UpdateAdminAccounts{
		Admin:          admin,
		GlobalConfig:   d.do(b.derive.AmmGlobalConfig),
		NewAdmin:       newAdmin,
		EventAuthority: d.do(b.derive.AmmEventAuthority),
		Program:        b.ids.PumpAmm,
	}
	if d.err != nil {
		return pumpamm.UpdateAdminAccounts{}, nil, d.err
	}
	ix, err := pumpamm.BuildUpdateAdmin(b.ids.PumpAmm, accts)
	return accts, ix, err
}

// AmmDisable writes all five disable flags at once.
func (b *Builder) AmmDisable(admin solana.PublicKey, cfg *pumpamm.GlobalConfig, args pumpamm.DisableArgs) (pumpamm.DisableAccounts, solana.Instruction, error) {
	if err := requireKeys(pk("admin", admin)); err != nil {
		return pumpamm.DisableAccounts{}, nil, err
	}
	if err := guard.Require(admin, guard.AmmAdmin, guard.Snapshot{AmmConfig: cfg}); err != nil {
		return pumpamm.DisableAccounts{}, nil, err
	}
	var d derivation
	accts := pumpamm.DisableAccounts{
		Admin:          admin,
		GlobalConfig:   d.do(b.derive.AmmGlobalConfig),
		EventAuthority: d.do(b.derive.AmmEventAuthority),
		Program:        b.ids.PumpAmm,
	}
	if d.err != nil {
		return pumpamm.DisableAccounts{}, nil, d.err
	}
	ix, err := pumpamm.BuildDisable(b.ids.PumpAmm, accts, args)
	return accts, ix, err
}

// AmmExtendAccount grows an AMM-owned account to the current layout size.
func (b *Builder) AmmExtendAccount(admin, account solana.PublicKey, cfg *pumpamm.GlobalConfig) (pumpamm.ExtendAccountAccounts, solana.Instruction, error) {
	if err := requireKeys(pk("admin", admin), pk("account", account)); err != nil {
		return pumpamm.ExtendAccountAccounts{}, nil, err
	}
	if err := guard.Require(admin, guard.AmmAdmin, guard.Snapshot{AmmConfig: cfg}); err != nil {
		return pumpamm.ExtendAccountAccounts{}, nil, err
	}
	eventAuthority, err := b.derive.AmmEventAuthority()
	if err != nil {
		return pumpamm.ExtendAccountAccounts{}, nil, err
	}
	accts := pumpamm.ExtendAccountAccounts{
		Account:        account,
		User:           admin,
		SystemProgram:  b.ids.System,
		EventAuthority: eventAuthority,
		Program:        b.ids.PumpAmm,
	}
	ix, err := pumpamm.BuildExtendAccount(b.ids.PumpAmm, accts)
	return accts, ix, err
}
