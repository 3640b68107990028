package main

import (
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/ninja0404/pump-client-go/pkg/pda"
)

func newDeriveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive protocol addresses offline",
	}
	cmd.AddCommand(newDerivePumpCmd(a), newDeriveAmmCmd(a), newDeriveATACmd(a))
	return cmd
}

// derived collects name -> address, keeping the first error.
type derived struct {
	out map[string]string
	err error
}

func (d *derived) add(name string, fn func() (solana.PublicKey, error)) {
	if d.err != nil {
		return
	}
	pk, err := fn()
	if err != nil {
		d.err = err
		return
	}
	if d.out == nil {
		d.out = make(map[string]string)
	}
	d.out[name] = pk.String()
}

func newDerivePumpCmd(a *app) *cobra.Command {
	var mintStr, creatorStr, userStr string
	cmd := &cobra.Command{
		Use:   "pump",
		Short: "Bonding-curve program addresses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dv := pda.NewDeriver(a.settings.Programs)
			var d derived
			d.add("global", dv.Global)
			d.add("mint_authority", dv.MintAuthority)
			d.add("event_authority", dv.EventAuthority)
			d.add("global_volume_accumulator", dv.GlobalVolumeAccumulator)
			d.add("fee_config", func() (solana.PublicKey, error) { return dv.FeeConfig(a.settings.Programs.Pump) })

			if mintStr != "" {
				mint, err := parsePubkey("mint", mintStr)
				if err != nil {
					return err
				}
				d.add("bonding_curve", func() (solana.PublicKey, error) { return dv.BondingCurve(mint) })
				d.add("associated_bonding_curve", func() (solana.PublicKey, error) {
					curve, err := dv.BondingCurve(mint)
					if err != nil {
						return solana.PublicKey{}, err
					}
					return dv.ATA(curve, mint, a.settings.Programs.Token)
				})
				d.add("metadata", func() (solana.PublicKey, error) { return dv.Metadata(mint) })
				d.add("pool_authority", func() (solana.PublicKey, error) { return dv.PoolAuthority(mint) })
				d.add("canonical_pool", func() (solana.PublicKey, error) { return dv.CanonicalPool(mint) })
			}
			if creatorStr != "" {
				creator, err := parsePubkey("creator", creatorStr)
				if err != nil {
					return err
				}
				d.add("creator_vault", func() (solana.PublicKey, error) { return dv.CreatorVault(creator) })
			}
			if userStr != "" {
				user, err := parsePubkey("user", userStr)
				if err != nil {
					return err
				}
				d.add("user_volume_accumulator", func() (solana.PublicKey, error) { return dv.UserVolumeAccumulator(user) })
			}
			if d.err != nil {
				return d.err
			}
			return printJSON(cmd, d.out)
		},
	}
	cmd.Flags().StringVar(&mintStr, "mint", "", "mint for per-coin addresses")
	cmd.Flags().StringVar(&creatorStr, "creator", "", "creator for the creator vault")
	cmd.Flags().StringVar(&userStr, "user", "", "user for the volume accumulator")
	return cmd
}

func newDeriveAmmCmd(a *app) *cobra.Command {
	var (
		baseStr, quoteStr, creatorStr, coinCreatorStr, userStr string
		index                                                  uint16
	)
	cmd := &cobra.Command{
		Use:   "amm",
		Short: "AMM program addresses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dv := pda.NewDeriver(a.settings.Programs)
			var d derived
			d.add("global_config", dv.AmmGlobalConfig)
			d.add("event_authority", dv.AmmEventAuthority)
			d.add("global_volume_accumulator", dv.AmmGlobalVolumeAccumulator)
			d.add("fee_config", func() (solana.PublicKey, error) { return dv.FeeConfig(a.settings.Programs.PumpAmm) })

			if baseStr != "" && creatorStr != "" {
				keys, err := pubkeys("base-mint", baseStr, "quote-mint", quoteStr, "creator", creatorStr)
				if err != nil {
					return err
				}
				base, quote, creator := keys[0], keys[1], keys[2]
				d.add("pool", func() (solana.PublicKey, error) { return dv.Pool(index, creator, base, quote) })
				d.add("lp_mint", func() (solana.PublicKey, error) {
					pool, err := dv.Pool(index, creator, base, quote)
					if err != nil {
						return solana.PublicKey{}, err
					}
					return dv.PoolLpMint(pool)
				})
			}
			if coinCreatorStr != "" {
				cc, err := parsePubkey("coin-creator", coinCreatorStr)
				if err != nil {
					return err
				}
				d.add("coin_creator_vault_authority", func() (solana.PublicKey, error) { return dv.AmmCreatorVault(cc) })
			}
			if userStr != "" {
				user, err := parsePubkey("user", userStr)
				if err != nil {
					return err
				}
				d.add("user_volume_accumulator", func() (solana.PublicKey, error) { return dv.AmmUserVolumeAccumulator(user) })
			}
			if d.err != nil {
				return d.err
			}
			return printJSON(cmd, d.out)
		},
	}
	cmd.Flags().StringVar(&baseStr, "base-mint", "", "pool base mint")
	cmd.Flags().StringVar(&quoteStr, "quote-mint", solana.WrappedSol.String(), "pool quote mint")
	cmd.Flags().StringVar(&creatorStr, "creator", "", "pool creator")
	cmd.Flags().Uint16Var(&index, "index", 0, "pool index")
	cmd.Flags().StringVar(&coinCreatorStr, "coin-creator", "", "coin creator for the vault authority")
	cmd.Flags().StringVar(&userStr, "user", "", "user for the volume accumulator")
	return cmd
}

func newDeriveATACmd(a *app) *cobra.Command {
	var ownerStr, mintStr string
	var token2022 bool
	cmd := &cobra.Command{
		Use:   "ata",
		Short: "Associated token account of owner for mint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			keys, err := pubkeys("owner", ownerStr, "mint", mintStr)
			if err != nil {
				return err
			}
			program := a.settings.Programs.Token
			if token2022 {
				program = a.settings.Programs.Token2022
			}
			ata, err := pda.NewDeriver(a.settings.Programs).ATA(keys[0], keys[1], program)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{"ata": ata.String(), "token_program": program.String()})
		},
	}
	cmd.Flags().StringVar(&ownerStr, "owner", "", "token account owner")
	cmd.Flags().StringVar(&mintStr, "mint", "", "mint")
	cmd.Flags().BoolVar(&token2022, "token-2022", false, "derive under Token-2022")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("mint")
	return cmd
}
