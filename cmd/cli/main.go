package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalOpts struct {
	configPath    string
	envFile       string
	rpcURL        string
	commitment    string
	keypair       string
	skipPreflight bool
	logLevel      string
	timeout       time.Duration
	jito          bool
	jitoTip       uint64
	simulate      bool
	preview       bool
	overrideJSON  string
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:           "pumpcli",
		Short:         "Pump bonding-curve and Pump AMM client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "config file (yaml, json or toml)")
	f.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before PUMP_* variables are read")
	f.StringVar(&opts.rpcURL, "rpc-url", "", "RPC endpoint, overrides config")
	f.StringVar(&opts.commitment, "commitment", "", "processed|confirmed|finalized, overrides config")
	f.StringVar(&opts.keypair, "keypair", "", "keygen file or base58 secret of the fee payer (default $PUMP_KEYPAIR)")
	f.BoolVar(&opts.skipPreflight, "skip-preflight", false, "skip preflight simulation on send")
	f.StringVar(&opts.logLevel, "log-level", "info", "debug|info|warn|error")
	f.DurationVar(&opts.timeout, "timeout", 60*time.Second, "overall deadline for one command")
	f.BoolVar(&opts.jito, "jito", false, "submit through the Jito block engine")
	f.Uint64Var(&opts.jitoTip, "jito-tip", 0, "tip in lamports appended as the last instruction")
	f.BoolVar(&opts.simulate, "simulate", false, "simulate instead of sending")
	f.BoolVar(&opts.preview, "preview", false, "print resolved accounts and args as JSON, do not send")
	f.StringVar(&opts.overrideJSON, "override-json", "", "JSON file of account overrides keyed by field name")

	root.AddCommand(
		newConfigCmd(a),
		newDeriveCmd(a),
		newAccountCmd(a),
		newPumpCmd(a),
		newAmmCmd(a),
		newHistoryCmd(a),
		newAdminCmd(a),
	)
	return root
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.settings
			return printJSON(cmd, map[string]interface{}{
				"network":       s.RPC.Network,
				"rpc_url":       s.RPC.ResolveRPCURL(),
				"commitment":    s.RPC.Commitment,
				"timeout":       s.RPC.Timeout.String(),
				"retry_enabled": s.RPC.Retry.Enabled,
				"retry_max":     s.RPC.Retry.MaxAttempts,
				"rate_limit":    s.RPC.RateLimit.RPS,
				"jito_endpoint": s.JitoEndpoint,
				"programs": map[string]string{
					"pump":             s.Programs.Pump.String(),
					"pump_amm":         s.Programs.PumpAmm.String(),
					"pump_fee":         s.Programs.PumpFee.String(),
					"token":            s.Programs.Token.String(),
					"token_2022":       s.Programs.Token2022.String(),
					"associated_token": s.Programs.AssociatedToken.String(),
					"metadata":         s.Programs.Metadata.String(),
				},
			})
		},
	}
}

func parseLogLevel(lvl string) zerolog.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func newLogger(cmd *cobra.Command, level string) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(parseLogLevel(level)).With().Timestamp().Logger()
}

