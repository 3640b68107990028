package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ninja0404/pump-client-go/pkg/program/pump"
	"github.com/ninja0404/pump-client-go/pkg/program/pumpamm"
	"github.com/ninja0404/pump-client-go/pkg/types"
)

type unmarshaler interface {
	Unmarshal([]byte) error
}

var knownAccounts = []struct {
	name string
	disc []byte
	new  func() unmarshaler
}{
	{"pump.Global", pump.GlobalDiscriminator, func() unmarshaler { return &pump.Global{} }},
	{"pump.BondingCurve", pump.BondingCurveDiscriminator, func() unmarshaler { return &pump.BondingCurve{} }},
	{"pumpamm.GlobalConfig", pumpamm.GlobalConfigDiscriminator, func() unmarshaler { return &pumpamm.GlobalConfig{} }},
	{"pumpamm.Pool", pumpamm.PoolDiscriminator, func() unmarshaler { return &pumpamm.Pool{} }},
}

func decodeKnownAccount(data []byte) (string, interface{}, error) {
	if len(data) < 8 {
		return "", nil, fmt.Errorf("account data too short")
	}
	for _, k := range knownAccounts {
		if bytes.Equal(data[:8], k.disc) {
			v := k.new()
			if err := v.Unmarshal(data); err != nil {
				return k.name, nil, err
			}
			return k.name, v, nil
		}
	}
	return "", nil, fmt.Errorf("unknown discriminator %x", data[:8])
}

func newAccountCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account [pubkey]",
		Short: "Decode a Global, BondingCurve, GlobalConfig or Pool account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := parsePubkey("account", args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()

			acc, err := a.rpc().GetAccountData(ctx, pub)
			if err != nil {
				return err
			}
			if acc == nil || acc.Data == nil {
				return types.NewAccountNotFound("account", pub)
			}
			name, decoded, err := decodeKnownAccount(acc.Data.GetBinary())
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]interface{}{"type": name, "owner": acc.Owner.String(), "data": decoded})
		},
	}
	cmd.AddCommand(newPoolsCmd(a), newBalanceCmd(a))
	return cmd
}

func newPoolsCmd(a *app) *cobra.Command {
	var baseStr string
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "List AMM pools, optionally by base mint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			reader := a.autofill().Reader()

			if baseStr == "" {
				pools, err := reader.ListPools(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, pools)
			}
			base, err := parsePubkey("base-mint", baseStr)
			if err != nil {
				return err
			}
			pools, err := reader.PoolsByBaseMint(ctx, base)
			if err != nil {
				return err
			}
			canonical, ok, err := reader.FindCanonicalPool(ctx, base)
			if err != nil {
				return err
			}
			out := map[string]interface{}{"pools": pools}
			if ok {
				out["canonical"] = canonical.Address.String()
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&baseStr, "base-mint", "", "filter by base mint")
	return cmd
}

func newBalanceCmd(a *app) *cobra.Command {
	var ownerStr, mintStr string
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Token balance of owner's associated account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			keys, err := pubkeys("owner", ownerStr, "mint", mintStr)
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			amount, err := a.autofill().TokenBalance(ctx, keys[0], keys[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), amount)
			return nil
		},
	}
	cmd.Flags().StringVar(&ownerStr, "owner", "", "owner")
	cmd.Flags().StringVar(&mintStr, "mint", "", "mint")
	return cmd
}
