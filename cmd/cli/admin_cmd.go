package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ninja0404/pump-client-go/pkg/guard"
	"github.com/ninja0404/pump-client-go/pkg/types"
)

type adminReport struct {
	Wallet            string `json:"wallet"`
	ProtocolAuthority bool   `json:"protocol_authority"`
	AmmAdmin          bool   `json:"amm_admin"`
	GlobalMissing     bool   `json:"global_missing,omitempty"`
	ConfigMissing     bool   `json:"amm_config_missing,omitempty"`
}

func newAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative role checks",
	}

	var walletStr string
	check := &cobra.Command{
		Use:   "check",
		Short: "Report which admin roles a wallet holds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			caller, err := parseOptionalPubkey("wallet", walletStr)
			if err != nil {
				return err
			}
			if caller.IsZero() {
				s, err := a.signer()
				if err != nil {
					return err
				}
				caller = s.PublicKey()
			}

			ctx, cancel := a.ctx(cmd)
			defer cancel()
			r := a.autofill().Reader()
			report := adminReport{Wallet: caller.String()}

			var snap guard.Snapshot
			global, err := r.FetchGlobal(ctx)
			switch {
			case err == nil:
				snap.Global = global
			case errors.Is(err, types.ErrAccountNotFound):
				report.GlobalMissing = true
			default:
				return err
			}
			cfg, err := r.FetchAmmGlobalConfig(ctx)
			switch {
			case err == nil:
				snap.AmmConfig = cfg
			case errors.Is(err, types.ErrAccountNotFound):
				report.ConfigMissing = true
			default:
				return err
			}

			report.ProtocolAuthority = guard.IsAuthorized(caller, guard.ProtocolAuthority, snap)
			report.AmmAdmin = guard.IsAuthorized(caller, guard.AmmAdmin, snap)
			a.log.Debug().
				Str("wallet", caller.String()).
				Bool("protocol_authority", report.ProtocolAuthority).
				Bool("amm_admin", report.AmmAdmin).
				Msg("admin check")
			return printJSON(cmd, report)
		},
	}
	check.Flags().StringVar(&walletStr, "wallet", "", "wallet to check (default: fee payer)")
	cmd.AddCommand(check)
	return cmd
}

