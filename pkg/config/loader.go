package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. PUMP_RPC_URL.
const EnvPrefix = "PUMP"

// Settings is everything the CLI and the client layer need at runtime.
type Settings struct {
	RPC          RPCConfig
	Programs     ProgramIDs
	JitoEndpoint string
}

type fileConfig struct {
	Network        string            `mapstructure:"network"`
	RPCURL         string            `mapstructure:"rpc_url"`
	Commitment     string            `mapstructure:"commitment"`
	TimeoutSec     int               `mapstructure:"timeout_sec"`
	RetryAttempts  int               `mapstructure:"retry_attempts"`
	RetryBackoffMs int               `mapstructure:"retry_backoff_ms"`
	RateLimitRPS   float64           `mapstructure:"rate_limit_rps"`
	RateLimitBurst int               `mapstructure:"rate_limit_burst"`
	JitoEndpoint   string            `mapstructure:"jito_endpoint"`
	Programs       map[string]string `mapstructure:"programs"`
}

// LoadDotEnv loads KEY=VALUE files into the process environment. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads settings from defaults, an optional config file (yaml/json/toml), and PUMP_* env vars.
// An empty path skips the file.
func Load(path string) (Settings, error) {
	v := viper.New()

	base := DefaultRPCConfig()
	defaults := map[string]interface{}{
		"network":          string(base.Network),
		"rpc_url":          "",
		"commitment":       base.Commitment,
		"timeout_sec":      int(base.Timeout / time.Second),
		"retry_attempts":   base.Retry.MaxAttempts,
		"retry_backoff_ms": int(base.Retry.InitialBackoff / time.Millisecond),
		"rate_limit_rps":   base.RateLimit.RPS,
		"rate_limit_burst": base.RateLimit.Burst,
		"jito_endpoint":    "",
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	ids := DefaultProgramIDs()
	for name, pk := range ids.programKeys() {
		v.SetDefault("programs."+name, pk.String())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	// nested keys are not visible to Unmarshal through AutomaticEnv alone
	fc.Programs = make(map[string]string)
	for name := range ids.programKeys() {
		fc.Programs[name] = v.GetString("programs." + name)
	}

	return fc.settings(base, ids)
}

func (fc fileConfig) settings(rpc RPCConfig, ids ProgramIDs) (Settings, error) {
	if fc.Network != "" {
		n, err := ParseNetwork(fc.Network)
		if err != nil {
			return Settings{}, err
		}
		rpc.Network = n
	}
	rpc.RPCURL = fc.RPCURL
	if rpc.RPCURL == "" {
		rpc.RPCURL = DefaultRPCURL(rpc.Network)
	}
	rpc.Commitment = fc.Commitment
	if fc.TimeoutSec > 0 {
		rpc.Timeout = time.Duration(fc.TimeoutSec) * time.Second
	}
	rpc.Retry.MaxAttempts = fc.RetryAttempts
	rpc.Retry.Enabled = fc.RetryAttempts > 1
	if fc.RetryBackoffMs > 0 {
		rpc.Retry.InitialBackoff = time.Duration(fc.RetryBackoffMs) * time.Millisecond
	}
	rpc.RateLimit.RPS = fc.RateLimitRPS
	rpc.RateLimit.Burst = fc.RateLimitBurst

	keys := ids.programKeys()
	for name, raw := range fc.Programs {
		dst, ok := keys[name]
		if !ok || raw == "" {
			continue
		}
		pk, err := solana.PublicKeyFromBase58(raw)
		if err != nil {
			return Settings{}, fmt.Errorf("programs.%s: %w", name, err)
		}
		*dst = pk
	}

	out := Settings{RPC: rpc, Programs: ids, JitoEndpoint: fc.JitoEndpoint}
	return out, out.Validate()
}

// Validate checks endpoints, commitment, and numeric limits.
func (s Settings) Validate() error {
	if err := validateURL(s.RPC.ResolveRPCURL(), "http"); err != nil {
		return fmt.Errorf("rpc_url: %w", err)
	}
	if s.JitoEndpoint != "" {
		if err := validateURL(s.JitoEndpoint, "https"); err != nil {
			return fmt.Errorf("jito_endpoint: %w", err)
		}
	}
	switch s.RPC.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("invalid commitment %q", s.RPC.Commitment)
	}
	if s.RPC.Retry.MaxAttempts < 0 {
		return errors.New("invalid retry_attempts")
	}
	if s.RPC.RateLimit.RPS < 0 {
		return errors.New("invalid rate_limit_rps")
	}
	return s.Programs.Validate()
}

func validateURL(raw, scheme string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, scheme) {
		return errors.New("invalid URL protocol")
	}
	return nil
}
