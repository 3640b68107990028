package main

import (
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/ninja0404/pump-client-go/pkg/autofill"
	"github.com/ninja0404/pump-client-go/pkg/builder"
	"github.com/ninja0404/pump-client-go/pkg/program/pump"
	"github.com/ninja0404/pump-client-go/pkg/vanity"
	"github.com/ninja0404/pump-client-go/pkg/wallet"
)

func newPumpCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pump",
		Short: "Bonding-curve program operations",
	}
	cmd.AddCommand(
		newPumpBuyCmd(a),
		newPumpSellCmd(a),
		newPumpCreateCmd(a),
		newPumpCollectFeeCmd(a),
		newPumpMigrateCmd(a),
		newPumpAdminCmd(a),
	)
	return cmd
}

func newPumpBuyCmd(a *app) *cobra.Command {
	var (
		mintStr     string
		amount      uint64
		maxSolCost  uint64
		trackVolume bool
	)
	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Buy tokens on the bonding curve",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mint, err := parsePubkey("mint", mintStr)
			if err != nil {
				return err
			}
			payer, err := a.signer()
			if err != nil {
				return err
			}
			opts, err := a.fillOptions(cmd, autofill.WithTrackVolume(trackVolume))
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			_, _, instrs, err := a.autofill().PumpBuy(ctx, payer.PublicKey(), mint, amount, maxSolCost, opts...)
			if err != nil {
				return err
			}
			return a.run(cmd, payer, nil, instrs)
		},
	}
	cmd.Flags().StringVar(&mintStr, "mint", "", "mint pubkey")
	cmd.Flags().Uint64Var(&amount, "amount", 0, "tokens to buy (base units)")
	cmd.Flags().Uint64Var(&maxSolCost, "max-sol-cost", 0, "max lamports to spend")
	cmd.Flags().BoolVar(&trackVolume, "track-volume", true, "record volume for rewards")
	_ = cmd.MarkFlagRequired("mint")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("max-sol-cost")
	return cmd
}

func newPumpSellCmd(a *app) *cobra.Command {
	var (
		mintStr  string
		amount   uint64
		minSol   uint64
		closeATA bool
	)
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Sell tokens back to the bonding curve",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mint, err := parsePubkey("mint", mintStr)
			if err != nil {
				return err
			}
			payer, err := a.signer()
			if err != nil {
				return err
			}
			var extra []autofill.Option
			if closeATA {
				extra = append(extra, autofill.WithCloseBaseATA())
			}
			opts, err := a.fillOptions(cmd, extra...)
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			_, _, instrs, err := a.autofill().PumpSell(ctx, payer.PublicKey(), mint, amount, minSol, opts...)
			if err != nil {
				return err
			}
			return a.run(cmd, payer, nil, instrs)
		},
	}
	cmd.Flags().StringVar(&mintStr, "mint", "", "mint pubkey")
	cmd.Flags().Uint64Var(&amount, "amount", 0, "tokens to sell (base units)")
	cmd.Flags().Uint64Var(&minSol, "min-sol-output", 0, "minimum lamports to receive")
	cmd.Flags().BoolVar(&closeATA, "close-ata", false, "close the token account afterwards (sell everything)")
	_ = cmd.MarkFlagRequired("mint")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newPumpCreateCmd(a *app) *cobra.Command {
	var (
		name, symbol, uri string
		mintKeyPath       string
		creatorStr        string
		vanitySuffix      string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a coin and its bonding curve",
		RunE: func(cmd *cobra.Command, _ []string) error {
			payer, err := a.signer()
			if err != nil {
				return err
			}
			var mintSigner wallet.Signer
			if mintKeyPath != "" {
				if mintSigner, err = wallet.Load(mintKeyPath); err != nil {
					return err
				}
			} else if vanitySuffix != "" {
				ctx, cancel := a.ctx(cmd)
				res, err := vanity.NewGrinder(0, a.log).Grind(ctx, vanity.Pattern{Suffix: vanitySuffix})
				cancel()
				if err != nil {
					return err
				}
				a.log.Info().Uint64("attempts", res.Attempts).Dur("took", res.Duration).Msg("mint key ground")
				mintSigner = wallet.NewLocalFromPrivateKey(res.Key)
			} else {
				mintSigner = wallet.NewLocalFromPrivateKey(solana.NewWallet().PrivateKey)
			}
			creator, err := parseOptionalPubkey("creator", creatorStr)
			if err != nil {
				return err
			}
			if creator.IsZero() {
				creator = payer.PublicKey()
			}
			opts, err := a.fillOptions(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			_, _, instrs, err := a.autofill().PumpCreate(ctx, builder.CreateParams{
				User:    payer.PublicKey(),
				Mint:    mintSigner.PublicKey(),
				Name:    name,
				Symbol:  symbol,
				URI:     uri,
				Creator: creator,
			}, opts...)
			if err != nil {
				return err
			}
			a.log.Info().Str("mint", mintSigner.PublicKey().String()).Msg("creating coin")
			return a.run(cmd, payer, []wallet.Signer{mintSigner}, instrs)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "token name")
	cmd.Flags().StringVar(&symbol, "symbol", "", "token symbol")
	cmd.Flags().StringVar(&uri, "uri", "", "metadata URI")
	cmd.Flags().StringVar(&mintKeyPath, "mint-keypair", "", "mint keypair (random when empty)")
	cmd.Flags().StringVar(&creatorStr, "creator", "", "coin creator (defaults to the fee payer)")
	cmd.Flags().StringVar(&vanitySuffix, "vanity-suffix", "", "grind a mint address ending in this suffix, e.g. pump")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("uri")
	return cmd
}

func newPumpCollectFeeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "collect-fee",
		Short: "Collect the fee payer's creator fees",
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			_, instrs, err := a.autofill().PumpCollectCreatorFee(ctx, payer.PublicKey(), opts...)
			if err != nil {
				return err
			}
			return a.run(cmd, payer, nil, instrs)
		},
	}
}

func newPumpMigrateCmd(a *app) *cobra.Command {
	var mintStr string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate a completed bonding curve into its canonical pool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mint, err := parsePubkey("mint", mintStr)
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
			_, instrs, err := a.autofill().PumpMigrate(ctx, payer.PublicKey(), mint, opts...)
			if err != nil {
				return err
			}
			return a.run(cmd, payer, nil, instrs)
		},
	}
	cmd.Flags().StringVar(&mintStr, "mint", "", "mint pubkey")
	_ = cmd.MarkFlagRequired("mint")
	return cmd
}

func newPumpAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Privileged bonding-curve operations",
	}
	cmd.AddCommand(
		newPumpInitializeCmd(a),
		newPumpSetParamsCmd(a),
		newPumpUpdateAuthorityCmd(a),
		newPumpExtendAccountCmd(a),
		newPumpSetCreatorCmd(a),
		newPumpSetMetaplexCreatorCmd(a),
	)
	return cmd
}

// singleIx wraps a filler call that needs only the fee payer.
func singleIx(a *app, use, short string, fn func(cmd *cobra.Command, payer solana.PublicKey, opts []autofill.Option) ([]solana.Instruction, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payer, err := a.signer()
			if err != nil {
				return err
			}
			opts, err := a.fillOptions(cmd)
			if err != nil {
				return err
			}
			instrs, err := fn(cmd, payer.PublicKey(), opts)
			if err != nil {
				return err
			}
			return a.run(cmd, payer, nil, instrs)
		},
	}
}

func newPumpInitializeCmd(a *app) *cobra.Command {
	return singleIx(a, "initialize", "Create the Global account", func(cmd *cobra.Command, payer solana.PublicKey, opts []autofill.Option) ([]solana.Instruction, error) {
		ctx, cancel := a.ctx(cmd)
		defer cancel()
		_, instrs, err := a.autofill().PumpInitialize(ctx, payer, opts...)
		return instrs, err
	})
}

func newPumpSetParamsCmd(a *app) *cobra.Command {
	var (
		args                            pump.SetParamsArgs
		withdrawStr, setCreatorAuthStr string
	)
	cmd := singleIx(a, "set-params", "Replace protocol parameters", func(cmd *cobra.Command, payer solana.PublicKey, opts []autofill.Option) ([]solana.Instruction, error) {
		var err error
		if args.WithdrawAuthority, err = parsePubkey("withdraw-authority", withdrawStr); err != nil {
			return nil, err
		}
		if args.SetCreatorAuthority, err = parseOptionalPubkey("set-creator-authority", setCreatorAuthStr); err != nil {
			return nil, err
		}
		ctx, cancel := a.ctx(cmd)
		defer cancel()
		_, instrs, err := a.autofill().PumpSetParams(ctx, payer, args, opts...)
		return instrs, err
	})
	f := cmd.Flags()
	f.Uint64Var(&args.InitialVirtualTokenReserves, "initial-virtual-token-reserves", 1_073_000_000_000_000, "")
	f.Uint64Var(&args.InitialVirtualSolReserves, "initial-virtual-sol-reserves", 30_000_000_000, "")
	f.Uint64Var(&args.InitialRealTokenReserves, "initial-real-token-reserves", 793_100_000_000_000, "")
	f.Uint64Var(&args.TokenTotalSupply, "token-total-supply", 1_000_000_000_000_000, "")
	f.Uint64Var(&args.FeeBasisPoints, "fee-basis-points", 95, "")
	f.StringVar(&withdrawStr, "withdraw-authority", "", "migration withdraw authority")
	f.BoolVar(&args.EnableMigrate, "enable-migrate", true, "")
	f.Uint64Var(&args.PoolMigrationFee, "pool-migration-fee", 15_000_001, "lamports")
	f.Uint64Var(&args.CreatorFeeBasisPoints, "creator-fee-basis-points", 5, "")
	f.StringVar(&setCreatorAuthStr, "set-creator-authority", "", "identity allowed to set coin creators")
	_ = cmd.MarkFlagRequired("withdraw-authority")
	return cmd
}

func newPumpUpdateAuthorityCmd(a *app) *cobra.Command {
	var newStr string
	cmd := singleIx(a, "update-authority", "Hand over the protocol authority", func(cmd *cobra.Command, payer solana.PublicKey, opts []autofill.Option) ([]solana.Instruction, error) {
		next, err := parsePubkey("new-authority", newStr)
		if err != nil {
			return nil, err
		}
		ctx, cancel := a.ctx(cmd)
		defer cancel()
		_, instrs, err := a.autofill().PumpUpdateGlobalAuthority(ctx, payer, next, opts...)
		return instrs, err
	})
	cmd.Flags().StringVar(&newStr, "new-authority", "", "new protocol authority")
	_ = cmd.MarkFlagRequired("new-authority")
	return cmd
}

func newPumpExtendAccountCmd(a *app) *cobra.Command {
	var accountStr string
	cmd := singleIx(a, "extend-account", "Resize a program-owned account", func(cmd *cobra.Command, payer solana.PublicKey, opts []autofill.Option) ([]solana.Instruction, error) {
		account, err := parsePubkey("account", accountStr)
		if err != nil {
			return nil, err
		}
		ctx, cancel := a.ctx(cmd)
		defer cancel()
		_, instrs, err := a.autofill().PumpExtendAccount(ctx, payer, account, opts...)
		return instrs, err
	})
	cmd.Flags().StringVar(&accountStr, "account", "", "account to extend")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func newPumpSetCreatorCmd(a *app) *cobra.Command {
	var mintStr, creatorStr string
	cmd := singleIx(a, "set-creator", "Set a coin's creator", func(cmd *cobra.Command, payer solana.PublicKey, opts []autofill.Option) ([]solana.Instruction, error) {
		keys, err := pubkeys("mint", mintStr, "creator", creatorStr)
		if err != nil {
			return nil, err
		}
		ctx, cancel := a.ctx(cmd)
		defer cancel()
		_, instrs, err := a.autofill().PumpSetCreator(ctx, payer, keys[0], keys[1], opts...)
		return instrs, err
	})
	cmd.Flags().StringVar(&mintStr, "mint", "", "mint")
	cmd.Flags().StringVar(&creatorStr, "creator", "", "new creator")
	return cmd
}

func newPumpSetMetaplexCreatorCmd(a *app) *cobra.Command {
	var mintStr string
	cmd := singleIx(a, "set-metaplex-creator", "Copy the metadata creator onto the curve", func(cmd *cobra.Command, payer solana.PublicKey, opts []autofill.Option) ([]solana.Instruction, error) {
		mint, err := parsePubkey("mint", mintStr)
		if err != nil {
			return nil, err
		}
		ctx, cancel := a.ctx(cmd)
		defer cancel()
		_, instrs, err := a.autofill().PumpSetMetaplexCreator(ctx, payer, mint, opts...)
		return instrs, err
	})
	cmd.Flags().StringVar(&mintStr, "mint", "", "mint")
	return cmd
}
