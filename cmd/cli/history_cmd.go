package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ninja0404/pump-client-go/pkg/events"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		program   string
		eventTags []string
		mint      string
		mine      bool
		listTypes bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Recent Pump and Pump AMM events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := events.ParseSelection(program)
			if err != nil {
				return err
			}
			if listTypes {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(sel.EventTypes(), "\n"))
				return nil
			}
			q := events.Query{
				Selection: sel,
				Filter:    events.Filter{Tags: eventTags, Reference: mint, OnlyMine: mine},
			}
			if mine {
				s, err := a.signer()
				if err != nil {
					return err
				}
				q.Filter.Caller = s.PublicKey()
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			evs, err := events.NewHistory(a.rpc(), a.settings.Programs, a.log).Fetch(ctx, q)
			if err != nil {
				return err
			}
			if len(evs) == 0 {
				a.log.Info().Str("program", program).Msg("no events")
			}
			return printJSON(cmd, evs)
		},
	}
	cmd.Flags().StringVar(&program, "program", "all", "all, pump or amm")
	cmd.Flags().StringSliceVar(&eventTags, "event", nil, "only these event types")
	cmd.Flags().StringVar(&mint, "mint", "", "only events mentioning this address")
	cmd.Flags().BoolVar(&mine, "mine", false, "only events mentioning the fee payer")
	cmd.Flags().BoolVar(&listTypes, "types", false, "list known event types and exit")
	return cmd
}
