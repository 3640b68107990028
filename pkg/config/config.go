package config

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Network names a Solana cluster. Custom means the RPC URL must be given explicitly.
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
	NetworkDevnet  Network = "devnet"
	NetworkCustom  Network = "custom"
)

var publicEndpoints = map[Network]string{
	NetworkMainnet: "https://api.mainnet-beta.solana.com",
	NetworkTestnet: "https://api.testnet.solana.com",
	NetworkDevnet:  "https://api.devnet.solana.com",
}

// ParseNetwork accepts the four network names; "mainnet-beta" is an alias of mainnet.
func ParseNetwork(s string) (Network, error) {
	switch n := Network(s); n {
	case NetworkMainnet, NetworkTestnet, NetworkDevnet, NetworkCustom:
		return n, nil
	case "mainnet-beta":
		return NetworkMainnet, nil
	default:
		return "", fmt.Errorf("unknown network %q", s)
	}
}

// DefaultRPCURL returns the public endpoint of a cluster, or "" for custom.
func DefaultRPCURL(network Network) string {
	return publicEndpoints[network]
}

// RetryConfig controls RPC read retries. Submissions are never retried.
type RetryConfig struct {
	Enabled        bool
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Jitter         bool
}

// Attempts is the total number of tries a read gets, never below one.
func (r RetryConfig) Attempts() int {
	if !r.Enabled || r.MaxAttempts < 1 {
		return 1
	}
	return r.MaxAttempts
}

// RateLimitConfig throttles outbound RPC calls. RPS <= 0 disables the limiter.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// RPCConfig is what rpc.NewClient needs.
type RPCConfig struct {
	Network    Network
	RPCURL     string
	Commitment string
	Timeout    time.Duration // per call
	Retry      RetryConfig
	RateLimit  RateLimitConfig
	Logger     zerolog.Logger
}

// DefaultRPCConfig reads mainnet at confirmed commitment, with a quiet logger.
func DefaultRPCConfig() RPCConfig {
	return RPCConfig{
		Network:    NetworkMainnet,
		RPCURL:     DefaultRPCURL(NetworkMainnet),
		Commitment: "confirmed",
		Timeout:    20 * time.Second,
		Retry: RetryConfig{
			Enabled:        true,
			MaxAttempts:    3,
			InitialBackoff: 150 * time.Millisecond,
			MaxBackoff:     2 * time.Second,
			Jitter:         true,
		},
		RateLimit: RateLimitConfig{RPS: 8, Burst: 16},
		Logger:    zerolog.New(io.Discard),
	}
}

// ResolveRPCURL prefers an explicit URL over the network's public endpoint.
func (c RPCConfig) ResolveRPCURL() string {
	if c.RPCURL != "" {
		return c.RPCURL
	}
	return DefaultRPCURL(c.Network)
}
