package main

import (
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/ninja0404/pump-client-go/pkg/autofill"
	"github.com/ninja0404/pump-client-go/pkg/builder"
	"github.com/ninja0404/pump-client-go/pkg/program/pumpamm"
)

func newAmmCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amm",
		Short: "Pump AMM operations",
	}
	cmd.AddCommand(
		newAmmBuyCmd(a),
		newAmmSellCmd(a),
		newAmmCreatePoolCmd(a),
		newAmmDepositCmd(a),
		newAmmWithdrawCmd(a),
		newAmmCollectFeeCmd(a),
		newAmmSetCoinCreatorCmd(a),
		newAmmAdminCmd(a),
	)
	return cmd
}

// poolFlag resolves --pool, or the canonical pool of --mint when --pool is empty.
type poolFlag struct {
	pool string
	mint string
}

func (p *poolFlag) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.pool, "pool", "", "pool address")
	cmd.Flags().StringVar(&p.mint, "mint", "", "base mint; resolves the canonical pool when --pool is empty")
}

func (p *poolFlag) resolve(cmd *cobra.Command, a *app) (solana.PublicKey, error) {
	if p.pool != "" {
		return parsePubkey("pool", p.pool)
	}
	mint, err := parsePubkey("pool or mint", p.mint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	ctx, cancel := a.ctx(cmd)
	defer cancel()
	entry, ok, err := a.autofill().Reader().FindCanonicalPool(ctx, mint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if !ok {
		// not indexed yet; fall back to the migration pool address
		return a.autofill().Reader().Deriver().CanonicalPool(mint)
	}
	return entry.Address, nil
}

func newAmmBuyCmd(a *app) *cobra.Command {
	var (
		pf          poolFlag
		baseOut     uint64
		maxQuoteIn  uint64
		trackVolume bool
		noWrap      bool
	)
	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Buy base tokens from a pool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := pf.resolve(cmd, a)
			if err != nil {
				return err
			}
			payer, err := a.signer()
			if err != nil {
				return err
			}
			extra := []autofill.Option{autofill.WithTrackVolume(trackVolume)}
			if noWrap {
				extra = append(extra, autofill.WithoutWrapSOL())
			}
			opts, err := a.fillOptions(cmd, extra...)
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			_, _, instrs, err := a.autofill().AmmBuy(ctx, payer.PublicKey(), pool, baseOut, maxQuoteIn, opts...)
			if err != nil {
				return err
			}
			return a.run(cmd, payer, nil, instrs)
		},
	}
	pf.register(cmd)
	cmd.Flags().Uint64Var(&baseOut, "base-amount-out", 0, "base tokens to receive")
	cmd.Flags().Uint64Var(&maxQuoteIn, "max-quote-amount-in", 0, "max quote to spend")
	cmd.Flags().BoolVar(&trackVolume, "track-volume", true, "record volume for rewards")
	cmd.Flags().BoolVar(&noWrap, "no-wrap", false, "spend an already funded WSOL account instead of wrapping SOL")
	_ = cmd.MarkFlagRequired("base-amount-out")
	_ = cmd.MarkFlagRequired("max-quote-amount-in")
	return cmd
}

func newAmmSellCmd(a *app) *cobra.Command {
	var (
		pf          poolFlag
		baseIn      uint64
		minQuoteOut uint64
		closeBase   bool
		unwrap      bool
	)
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Sell base tokens into a pool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := pf.resolve(cmd, a)
			if err != nil {
				return err
			}
			payer, err := a.signer()
			if err != nil {
				return err
			}
			var extra []autofill.Option
			if closeBase {
				extra = append(extra, autofill.WithCloseBaseATA())
			}
			if unwrap {
				extra = append(extra, autofill.WithCloseQuoteATA())
			}
			opts, err := a.fillOptions(cmd, extra...)
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			_, _, instrs, err := a.autofill().AmmSell(ctx, payer.PublicKey(), pool, baseIn, minQuoteOut, opts...)
			if err != nil {
				return err
			}
			return a.run(cmd, payer, nil, instrs)
		},
	}
	pf.register(cmd)
	cmd.Flags().Uint64Var(&baseIn, "base-amount-in", 0, "base tokens to sell")
	cmd.Flags().Uint64Var(&minQuoteOut, "min-quote-amount-out", 0, "minimum quote to receive")
	cmd.Flags().BoolVar(&closeBase, "close-base-ata", false, "close the base token account afterwards")
	cmd.Flags().BoolVar(&unwrap, "unwrap", true, "close the WSOL account afterwards")
	_ = cmd.MarkFlagRequired("base-amount-in")
	return cmd
}

func newAmmCreatePoolCmd(a *app) *cobra.Command {
	var (
		baseStr, quoteStr, coinCreatorStr string
		index                             uint16
		baseIn, quoteIn                   uint64
	)
	cmd := &cobra.Command{
		Use:   "create-pool",
		Short: "Create a pool and seed its liquidity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			keys, err := pubkeys("base-mint", baseStr, "quote-mint", quoteStr)
			if err != nil {
				return err
			}
			coinCreator, err := parseOptionalPubkey("coin-creator", coinCreatorStr)
			if err != nil {
				return err
			}
			payer, err := a.signer()
			if err != nil {
				return err
			}
			opts, err := a.fillOptions(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			accts, _, instrs, err := a.autofill().AmmCreatePool(ctx, builder.CreatePoolParams{
				Creator:       payer.PublicKey(),
				Index:         index,
				BaseMint:      keys[0],
				QuoteMint:     keys[1],
				BaseAmountIn:  baseIn,
				QuoteAmountIn: quoteIn,
				CoinCreator:   coinCreator,
			}, opts...)
			if err != nil {
				return err
			}
			a.log.Info().Str("pool", accts.Pool.String()).Msg("creating pool")
			return a.run(cmd, payer, nil, instrs)
		},
	}
	cmd.Flags().StringVar(&baseStr, "base-mint", "", "base mint")
	cmd.Flags().StringVar(&quoteStr, "quote-mint", solana.WrappedSol.String(), "quote mint")
	cmd.Flags().StringVar(&coinCreatorStr, "coin-creator", "", "coin creator recorded on the pool")
	cmd.Flags().Uint16Var(&index, "index", 0, "pool index")
	cmd.Flags().Uint64Var(&baseIn, "base-amount-in", 0, "initial base liquidity")
	cmd.Flags().Uint64Var(&quoteIn, "quote-amount-in", 0, "initial quote liquidity")
	_ = cmd.MarkFlagRequired("base-mint")
	return cmd
}

func newAmmDepositCmd(a *app) *cobra.Command {
	var (
		pf   poolFlag
		args pumpamm.DepositArgs
	)
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Add liquidity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := pf.resolve(cmd, a)
			if err != nil {
				return err
			}
			payer, err := a.signer()
			if err != nil {
				return err
			}
			opts, err := a.fillOptions(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			_, instrs, err := a.autofill().AmmDeposit(ctx, payer.PublicKey(), pool, args, opts...)
			if err != nil {
				return err
			}
			return a.run(cmd, payer, nil, instrs)
		},
	}
	pf.register(cmd)
	cmd.Flags().Uint64Var(&args.LpTokenAmountOut, "lp-amount-out", 0, "LP tokens to mint")
	cmd.Flags().Uint64Var(&args.MaxBaseAmountIn, "max-base-amount-in", 0, "")
	cmd.Flags().Uint64Var(&args.MaxQuoteAmountIn, "max-quote-amount-in", 0, "")
	_ = cmd.MarkFlagRequired("lp-amount-out")
	return cmd
}

func newAmmWithdrawCmd(a *app) *cobra.Command {
	var (
		pf   poolFlag
		args pumpamm.WithdrawArgs
	)
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Remove liquidity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := pf.resolve(cmd, a)
			if err != nil {
				return err
			}
			payer, err := a.signer()
			if err != nil {
				return err
			}
			opts, err := a.fillOptions(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			_, instrs, err := a.autofill().AmmWithdraw(ctx, payer.PublicKey(), pool, args, opts...)
			if err != nil {
				return err
			}
			return a.run(cmd, payer, nil, instrs)
		},
	}
	pf.register(cmd)
	cmd.Flags().Uint64Var(&args.LpTokenAmountIn, "lp-amount-in", 0, "LP tokens to burn")
	cmd.Flags().Uint64Var(&args.MinBaseAmountOut, "min-base-amount-out", 0, "")
	cmd.Flags().Uint64Var(&args.MinQuoteAmountOut, "min-quote-amount-out", 0, "")
	_ = cmd.MarkFlagRequired("lp-amount-in")
	return cmd
}

func newAmmCollectFeeCmd(a *app) *cobra.Command {
	var quoteStr string
	cmd := singleIx(a, "collect-fee", "Collect the fee payer's coin-creator fees", func(cmd *cobra.Command, payer solana.PublicKey, opts []autofill.Option) ([]solana.Instruction, error) {
		quote, err := parsePubkey("quote-mint", quoteStr)
		if err != nil {
			return nil, err
		}
		ctx, cancel := a.ctx(cmd)
		defer cancel()
		_, instrs, err := a.autofill().AmmCollectCoinCreatorFee(ctx, payer, quote, opts...)
		return instrs, err
	})
	cmd.Flags().StringVar(&quoteStr, "quote-mint", solana.WrappedSol.String(), "quote mint of the vault")
	return cmd
}

func newAmmSetCoinCreatorCmd(a *app) *cobra.Command {
	var pf poolFlag
	cmd := singleIx(a, "set-coin-creator", "Refresh a pool's coin creator from metadata or the bonding curve", func(cmd *cobra.Command, payer solana.PublicKey, opts []autofill.Option) ([]solana.Instruction, error) {
		pool, err := pf.resolve(cmd, a)
		if err != nil {
			return nil, err
		}
		ctx, cancel := a.ctx(cmd)
		defer cancel()
		_, instrs, err := a.autofill().AmmSetCoinCreator(ctx, payer, pool, opts...)
		return instrs, err
	})
	pf.register(cmd)
	return cmd
}

func newAmmAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Privileged AMM operations",
	}

	var newAdminStr string
	update := singleIx(a, "update-admin", "Hand over the AMM admin role", func(cmd *cobra.Command, payer solana.PublicKey, opts []autofill.Option) ([]solana.Instruction, error) {
		next, err := parsePubkey("new-admin", newAdminStr)
		if err != nil {
			return nil, err
		}
		ctx, cancel := a.ctx(cmd)
		defer cancel()
		_, instrs, err := a.autofill().AmmUpdateAdmin(ctx, payer, next, opts...)
		return instrs, err
	})
	update.Flags().StringVar(&newAdminStr, "new-admin", "", "new admin")
	_ = update.MarkFlagRequired("new-admin")

	var flags pumpamm.DisableArgs
	disable := singleIx(a, "disable", "Set the operation disable flags", func(cmd *cobra.Command, payer solana.PublicKey, opts []autofill.Option) ([]solana.Instruction, error) {
		ctx, cancel := a.ctx(cmd)
		defer cancel()
		_, instrs, err := a.autofill().AmmDisable(ctx, payer, flags, opts...)
		return instrs, err
	})
	disable.Flags().BoolVar(&flags.DisableCreatePool, "create-pool", false, "")
	disable.Flags().BoolVar(&flags.DisableDeposit, "deposit", false, "")
	disable.Flags().BoolVar(&flags.DisableWithdraw, "withdraw", false, "")
	disable.Flags().BoolVar(&flags.DisableBuy, "buy", false, "")
	disable.Flags().BoolVar(&flags.DisableSell, "sell", false, "")

	var accountStr string
	extend := singleIx(a, "extend-account", "Resize an AMM-owned account", func(cmd *cobra.Command, payer solana.PublicKey, opts []autofill.Option) ([]solana.Instruction, error) {
		account, err := parsePubkey("account", accountStr)
		if err != nil {
			return nil, err
		}
		ctx, cancel := a.ctx(cmd)
		defer cancel()
		_, instrs, err := a.autofill().AmmExtendAccount(ctx, payer, account, opts...)
		return instrs, err
	})
	extend.Flags().StringVar(&accountStr, "account", "", "account to extend")
	_ = extend.MarkFlagRequired("account")

	cmd.AddCommand(update, disable, extend)
	return cmd
}
