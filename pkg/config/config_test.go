package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, NetworkMainnet, s.RPC.Network)
	assert.Equal(t, DefaultRPCURL(NetworkMainnet), s.RPC.RPCURL)
	assert.Equal(t, "confirmed", s.RPC.Commitment)
	assert.Equal(t, DefaultProgramIDs(), s.Programs)
	assert.Empty(t, s.JitoEndpoint)
}

func TestLoadFileAndEnv(t *testing.T) {
	custom := solana.NewWallet().PublicKey()
	path := filepath.Join(t.TempDir(), "pump.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
network: devnet
commitment: finalized
timeout_sec: 5
retry_attempts: 1
programs:
  pump: `+custom.String()+`
`), 0o600))
	t.Setenv("PUMP_RATE_LIMIT_RPS", "2")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, NetworkDevnet, s.RPC.Network)
	assert.Equal(t, DefaultRPCURL(NetworkDevnet), s.RPC.RPCURL)
	assert.Equal(t, "finalized", s.RPC.Commitment)
	assert.Equal(t, 5*time.Second, s.RPC.Timeout)
	assert.False(t, s.RPC.Retry.Enabled)
	assert.Equal(t, float64(2), s.RPC.RateLimit.RPS)
	assert.Equal(t, custom, s.Programs.Pump)
	assert.Equal(t, DefaultProgramIDs().PumpAmm, s.Programs.PumpAmm)
}

func TestLoadProgramFromEnv(t *testing.T) {
	custom := solana.NewWallet().PublicKey()
	t.Setenv("PUMP_PROGRAMS_PUMP_AMM", custom.String())

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, custom, s.Programs.PumpAmm)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("PUMP_COMMITMENT", "eventually")
	_, err := Load("")
	assert.ErrorContains(t, err, "commitment")

	t.Setenv("PUMP_COMMITMENT", "confirmed")
	t.Setenv("PUMP_PROGRAMS_TOKEN", "not-a-key")
	_, err = Load("")
	assert.ErrorContains(t, err, "programs.token")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PUMP_JITO_ENDPOINT=https://mainnet.block-engine.jito.wtf/api/v1\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("PUMP_JITO_ENDPOINT") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "absent.env"), path))
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://mainnet.block-engine.jito.wtf/api/v1", s.JitoEndpoint)
}

func TestProgramIDsValidate(t *testing.T) {
	ids := DefaultProgramIDs()
	require.NoError(t, ids.Validate())
	assert.True(t, ids.IsTokenProgram(ids.Token2022))
	assert.False(t, ids.IsTokenProgram(ids.Pump))

	ids.PumpAmm = solana.PublicKey{}
	assert.ErrorContains(t, ids.Validate(), "pump_amm")
}

func TestResolveRPCURL(t *testing.T) {
	cfg := RPCConfig{Network: NetworkTestnet}
	assert.Equal(t, DefaultRPCURL(NetworkTestnet), cfg.ResolveRPCURL())
	cfg.RPCURL = "http://localhost:8899"
	assert.Equal(t, "http://localhost:8899", cfg.ResolveRPCURL())
	assert.Empty(t, DefaultRPCURL(NetworkCustom))
}

func TestParseNetwork(t *testing.T) {
	n, err := ParseNetwork("mainnet-beta")
	require.NoError(t, err)
	assert.Equal(t, NetworkMainnet, n)

	_, err = ParseNetwork("localnet")
	assert.Error(t, err)

	t.Setenv("PUMP_NETWORK", "localnet")
	_, err = Load("")
	assert.ErrorContains(t, err, "unknown network")
}

func TestRetryAttempts(t *testing.T) {
	assert.Equal(t, 3, DefaultRPCConfig().Retry.Attempts())
	assert.Equal(t, 1, RetryConfig{Enabled: false, MaxAttempts: 5}.Attempts())
	assert.Equal(t, 1, RetryConfig{Enabled: true}.Attempts())
}
