package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ninja0404/pump-client-go/pkg/autofill"
	"github.com/ninja0404/pump-client-go/pkg/config"
	"github.com/ninja0404/pump-client-go/pkg/jito"
	"github.com/ninja0404/pump-client-go/pkg/rpc"
	"github.com/ninja0404/pump-client-go/pkg/txbuilder"
	"github.com/ninja0404/pump-client-go/pkg/types"
	"github.com/ninja0404/pump-client-go/pkg/wallet"
)

// app carries what every subcommand shares. Clients are built lazily so offline
// commands such as derive never dial the RPC.
type app struct {
	opts     *globalOpts
	settings config.Settings
	log      zerolog.Logger

	client *rpc.Client
	filler *autofill.Filler
}

func (a *app) init(cmd *cobra.Command) error {
	a.log = newLogger(cmd, a.opts.logLevel)
	if err := config.LoadDotEnv(a.opts.envFile); err != nil {
		return err
	}
	s, err := config.Load(a.opts.configPath)
	if err != nil {
		return err
	}
	if a.opts.rpcURL != "" {
		s.RPC.RPCURL = a.opts.rpcURL
	}
	if a.opts.commitment != "" {
		s.RPC.Commitment = a.opts.commitment
	}
	if err := s.Validate(); err != nil {
		return err
	}
	s.RPC.Logger = a.log
	a.settings = s
	return nil
}

func (a *app) ctx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.opts.timeout)
}

func (a *app) rpc() *rpc.Client {
	if a.client == nil {
		a.client = rpc.NewClient(a.settings.RPC)
	}
	return a.client
}

func (a *app) autofill() *autofill.Filler {
	if a.filler == nil {
		a.filler = autofill.New(a.rpc(), a.settings.Programs, a.log)
	}
	return a.filler
}

func (a *app) signer() (wallet.Signer, error) {
	source := a.opts.keypair
	if source == "" {
		source = os.Getenv(config.EnvPrefix + "_KEYPAIR")
	}
	s, err := wallet.Load(source)
	if err != nil {
		return nil, fmt.Errorf("fee payer: %w", err)
	}
	return s, nil
}

// fillOptions turns global flags into autofill options.
func (a *app) fillOptions(cmd *cobra.Command, extra ...autofill.Option) ([]autofill.Option, error) {
	var opts []autofill.Option
	if a.opts.overrideJSON != "" {
		raw, err := os.ReadFile(a.opts.overrideJSON)
		if err != nil {
			return nil, fmt.Errorf("read overrides: %w", err)
		}
		m, err := autofill.MergeOverridesFromJSON(nil, raw)
		if err != nil {
			return nil, err
		}
		opts = append(opts, autofill.WithOverrides(m))
	}
	if a.opts.preview {
		opts = append(opts, autofill.WithPreview(cmd.OutOrStdout()))
	}
	if a.opts.jitoTip > 0 {
		opts = append(opts, autofill.WithJitoTip(a.opts.jitoTip))
	}
	return append(opts, extra...), nil
}

func (a *app) broadcaster() txbuilder.Broadcaster {
	if a.opts.jito {
		uuid := os.Getenv(config.EnvPrefix + "_JITO_UUID")
		if a.settings.JitoEndpoint == "" {
			return jito.NewClientWithEndpoints(jito.MainnetBlockEngines, uuid).WithLogger(a.log)
		}
		return jito.NewClient(a.settings.JitoEndpoint, uuid).WithLogger(a.log)
	}
	return txbuilder.NewRPCBroadcaster(a.rpc(), a.opts.skipPreflight, solanarpc.CommitmentType(a.settings.RPC.Commitment))
}

// run finishes a command: nothing in preview mode, a simulation with --simulate,
// otherwise one submission followed by a confirmation wait.
func (a *app) run(cmd *cobra.Command, payer wallet.Signer, extra []wallet.Signer, instrs []solana.Instruction) error {
	if a.opts.preview {
		return nil
	}
	ctx, cancel := a.ctx(cmd)
	defer cancel()

	b := txbuilder.NewBuilder(a.rpc(), a.broadcaster()).WithLogger(a.log)
	if a.opts.simulate {
		tx, err := b.BuildTransaction(ctx, payer.PublicKey(), instrs...)
		if err != nil {
			return err
		}
		if err := txbuilder.SignTransaction(ctx, tx, append([]wallet.Signer{payer}, extra...)...); err != nil {
			return err
		}
		res, err := a.rpc().SimulateTransaction(ctx, tx, &solanarpc.SimulateTransactionOpts{
			SigVerify:  true,
			Commitment: solanarpc.CommitmentType(a.settings.RPC.Commitment),
		})
		if err != nil {
			return err
		}
		return printSimulation(cmd, res)
	}

	sig, err := b.BuildSignSend(ctx, payer, extra, instrs...)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "signature: %s\n", sig)
	if err := b.WaitForConfirmation(ctx, sig, txbuilder.ConfirmationConfirmed); err != nil {
		return fmt.Errorf("confirm %s: %w", sig, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "confirmed")
	return nil
}

func printSimulation(cmd *cobra.Command, res *solanarpc.SimulateTransactionResponse) error {
	if res == nil || res.Value == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "no simulation result")
		return nil
	}
	for _, l := range res.Value.Logs {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", l)
	}
	if res.Value.UnitsConsumed != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "compute units: %d\n", *res.Value.UnitsConsumed)
	}
	return types.ParseSimulationError("", res.Value.Err, res.Value.Logs)
}
