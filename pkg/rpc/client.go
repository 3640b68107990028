package rpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ninja0404/pump-client-go/pkg/config"
	"github.com/ninja0404/pump-client-go/pkg/types"
)

// Client wraps solana-go rpc.Client with retry, timeout, and rate limiting.
// Reads are retried; SendTransaction is attempted exactly once.
type Client struct {
	raw     *solanarpc.Client
	cfg     config.RPCConfig
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewClient builds a configured Client.
func NewClient(cfg config.RPCConfig) *Client {
	return newClient(solanarpc.New(cfg.ResolveRPCURL()), cfg)
}

func newClient(raw *solanarpc.Client, cfg config.RPCConfig) *Client {
	var limiter *rate.Limiter
	if cfg.RateLimit.RPS > 0 {
		burst := cfg.RateLimit.Burst
		if burst == 0 {
			burst = int(cfg.RateLimit.RPS * 2)
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), burst)
	}

	log := cfg.Logger
	if log.GetLevel() == zerolog.NoLevel {
		log = zerolog.Nop()
	}

	return &Client{
		raw:     raw,
		cfg:     cfg,
		limiter: limiter,
		log:     log,
	}
}

// Raw exposes the underlying solana-go client.
func (c *Client) Raw() *solanarpc.Client {
	return c.raw
}

func (c *Client) commitment() solanarpc.CommitmentType {
	if c.cfg.Commitment == "" {
		return solanarpc.CommitmentConfirmed
	}
	return solanarpc.CommitmentType(c.cfg.Commitment)
}

// GetLatestBlockhash fetches the latest blockhash at the configured commitment.
func (c *Client) GetLatestBlockhash(ctx context.Context) (*solanarpc.GetLatestBlockhashResult, error) {
	return call(ctx, c, "getLatestBlockhash", func(ctx context.Context) (*solanarpc.GetLatestBlockhashResult, error) {
		return c.raw.GetLatestBlockhash(ctx, c.commitment())
	})
}

// GetAccountData returns the raw account, or (nil, nil) when the address holds nothing.
func (c *Client) GetAccountData(ctx context.Context, addr solana.PublicKey) (*solanarpc.Account, error) {
	res, err := call(ctx, c, "getAccountInfo", func(ctx context.Context) (*solanarpc.GetAccountInfoResult, error) {
		res, err := c.raw.GetAccountInfoWithOpts(ctx, addr, &solanarpc.GetAccountInfoOpts{
			Commitment: c.commitment(),
			Encoding:   solana.EncodingBase64,
		})
		if errors.Is(err, solanarpc.ErrNotFound) {
			return nil, nil
		}
		return res, err
	})
	if err != nil || res == nil {
		return nil, err
	}
	return res.Value, nil
}

// GetMultipleAccounts returns accounts in request order; missing ones are nil.
func (c *Client) GetMultipleAccounts(ctx context.Context, addrs ...solana.PublicKey) ([]*solanarpc.Account, error) {
	if len(addrs) == 0 {
		return nil, nil
	}
	res, err := call(ctx, c, "getMultipleAccounts", func(ctx context.Context) (*solanarpc.GetMultipleAccountsResult, error) {
		return c.raw.GetMultipleAccountsWithOpts(ctx, addrs, &solanarpc.GetMultipleAccountsOpts{
			Commitment: c.commitment(),
			Encoding:   solana.EncodingBase64,
		})
	})
	if err != nil {
		return nil, err
	}
	if res == nil || len(res.Value) != len(addrs) {
		return nil, types.RPCError{Op: "getMultipleAccounts", Err: fmt.Errorf("expected %d accounts", len(addrs))}
	}
	return res.Value, nil
}

// GetProgramAccounts lists accounts owned by program that match every filter.
func (c *Client) GetProgramAccounts(ctx context.Context, program solana.PublicKey, filters ...solanarpc.RPCFilter) (solanarpc.GetProgramAccountsResult, error) {
	return call(ctx, c, "getProgramAccounts", func(ctx context.Context) (solanarpc.GetProgramAccountsResult, error) {
		return c.raw.GetProgramAccountsWithOpts(ctx, program, &solanarpc.GetProgramAccountsOpts{
			Commitment: c.commitment(),
			Encoding:   solana.EncodingBase64,
			Filters:    filters,
		})
	})
}

// GetSignaturesForAddress returns at most limit recent signatures, newest first.
func (c *Client) GetSignaturesForAddress(ctx context.Context, addr solana.PublicKey, limit int) ([]*solanarpc.TransactionSignature, error) {
	return call(ctx, c, "getSignaturesForAddress", func(ctx context.Context) ([]*solanarpc.TransactionSignature, error) {
		return c.raw.GetSignaturesForAddressWithOpts(ctx, addr, &solanarpc.GetSignaturesForAddressOpts{
			Limit:      &limit,
			Commitment: c.commitment(),
		})
	})
}

// GetTransaction fetches a confirmed transaction including its log messages.
func (c *Client) GetTransaction(ctx context.Context, sig solana.Signature) (*solanarpc.GetTransactionResult, error) {
	maxVersion := uint64(0)
	return call(ctx, c, "getTransaction", func(ctx context.Context) (*solanarpc.GetTransactionResult, error) {
		res, err := c.raw.GetTransaction(ctx, sig, &solanarpc.GetTransactionOpts{
			Encoding:                       solana.EncodingBase64,
			Commitment:                     c.commitment(),
			MaxSupportedTransactionVersion: &maxVersion,
		})
		if errors.Is(err, solanarpc.ErrNotFound) {
			return nil, backoff.Permanent(err)
		}
		return res, err
	})
}

// SendTransaction submits a signed transaction once. Failures are returned verbatim.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction, opts solanarpc.TransactionOpts) (solana.Signature, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	if err := c.wait(ctx); err != nil {
		return solana.Signature{}, err
	}
	return c.raw.SendTransactionWithOpts(ctx, tx, opts)
}

// SimulateTransaction simulates a transaction for debugging.
func (c *Client) SimulateTransaction(ctx context.Context, tx *solana.Transaction, opts *solanarpc.SimulateTransactionOpts) (*solanarpc.SimulateTransactionResponse, error) {
	return call(ctx, c, "simulateTransaction", func(ctx context.Context) (*solanarpc.SimulateTransactionResponse, error) {
		return c.raw.SimulateTransactionWithOpts(ctx, tx, opts)
	})
}

// GetSignatureStatus returns the status of a single signature, nil if not yet visible.
func (c *Client) GetSignatureStatus(ctx context.Context, sig solana.Signature) (*solanarpc.SignatureStatusesResult, error) {
	res, err := call(ctx, c, "getSignatureStatuses", func(ctx context.Context) (*solanarpc.GetSignatureStatusesResult, error) {
		return c.raw.GetSignatureStatuses(ctx, true, sig)
	})
	if err != nil || res == nil || len(res.Value) == 0 {
		return nil, err
	}
	return res.Value[0], nil
}

func call[T any](ctx context.Context, c *Client, op string, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	attempts := uint(c.cfg.Retry.Attempts())

	attempt := 0
	operation := func() (T, error) {
		attempt++
		if err := c.wait(ctx); err != nil {
			var zero T
			return zero, backoff.Permanent(err)
		}
		out, err := fn(ctx)
		if err != nil && !retryable(err) {
			return out, backoff.Permanent(err)
		}
		return out, err
	}
	notify := func(err error, next time.Duration) {
		c.log.Debug().
			Str("op", op).
			Int("attempt", attempt).
			Dur("backoff", next).
			Err(err).
			Msg("rpc retry")
	}

	out, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(c.backoffPolicy()),
		backoff.WithMaxTries(attempts),
		backoff.WithNotify(notify))
	if err != nil {
		var zero T
		return zero, types.RPCError{Op: op, Err: err}
	}
	return out, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.cfg.Timeout)
}

func (c *Client) backoffPolicy() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.cfg.Retry.InitialBackoff
	if policy.InitialInterval <= 0 {
		policy.InitialInterval = 100 * time.Millisecond
	}
	if c.cfg.Retry.MaxBackoff > 0 {
		policy.MaxInterval = c.cfg.Retry.MaxBackoff
	}
	if !c.cfg.Retry.Jitter {
		policy.RandomizationFactor = 0
	}
	return policy
}

func retryable(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// Conservative: retry on all other errors to keep liveness unless caller decides otherwise.
	return true
}
