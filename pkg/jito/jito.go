// Package jito submits transactions through a Jito block engine and picks tip accounts.
//
// Submission is single-shot like the RPC path. Only the read calls (tip accounts, bundle
// statuses) are retried, rotating endpoints when the engine rate-limits.
package jito

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	jitorpc "github.com/jito-labs/jito-go-rpc"
	"github.com/rs/zerolog"
)

// Default Jito Block Engine endpoints
const (
	MainnetBlockEngine = "https://mainnet.block-engine.jito.wtf/api/v1"
	TestnetBlockEngine = "https://testnet.block-engine.jito.wtf/api/v1"
)

// MainnetBlockEngines are rotated through on rate limiting.
var MainnetBlockEngines = []string{
	"https://mainnet.block-engine.jito.wtf/api/v1",
	"https://amsterdam.mainnet.block-engine.jito.wtf/api/v1",
	"https://frankfurt.mainnet.block-engine.jito.wtf/api/v1",
	"https://ny.mainnet.block-engine.jito.wtf/api/v1",
	"https://tokyo.mainnet.block-engine.jito.wtf/api/v1",
}

// MainnetTipAccounts are the published tip accounts. They rarely change.
var MainnetTipAccounts = []solana.PublicKey{
	solana.MustPublicKeyFromBase58("96gYZGLnJYVFmbjzopPSU6QiEV5fGqZNyN9nmNhvrZU5"),
	solana.MustPublicKeyFromBase58("HFqU5x63VTqvQss8hp11i4wVV8bD44PvwucfZ2bU7gRe"),
	solana.MustPublicKeyFromBase58("Cw8CFyM9FkoMi7K7Crf6HNQqf4uEMzpKw6QNghXLvLkY"),
	solana.MustPublicKeyFromBase58("ADaUMid9yfUytqMBgopwjb2DTLSokTSzL1zt6iGPaS49"),
	solana.MustPublicKeyFromBase58("DfXygSm4jCyNCybVYYK6DwvWqjKee8pbDmJGcLWNDXjh"),
	solana.MustPublicKeyFromBase58("ADuUkR4vqLUMWXxW9gh6D6L8pMSawimctcNZ5pGwDcEt"),
	solana.MustPublicKeyFromBase58("DttWaMuVvTiduZRnguLF7jNxTgiMBZ1hyAumKUiL2KRL"),
	solana.MustPublicKeyFromBase58("3AVi9Tg9Uo68tJfuvoKvqKNWKkC5wPdSSdeBnizKZ6jT"),
}

// GetRandomTipAccountLocal picks a tip account without a network call.
func GetRandomTipAccountLocal() solana.PublicKey {
	return MainnetTipAccounts[rand.Intn(len(MainnetTipAccounts))]
}

// IsTipAccount reports whether pk is one of the published tip accounts.
func IsTipAccount(pk solana.PublicKey) bool {
	for _, tip := range MainnetTipAccounts {
		if tip == pk {
			return true
		}
	}
	return false
}

// Client talks to one or more block engine endpoints in round-robin order.
type Client struct {
	endpoints    []string
	uuid         string
	currentIndex uint32
	maxTries     uint
	retryDelay   time.Duration
	log          zerolog.Logger
}

// NewClient creates a client for one endpoint. An empty endpoint means mainnet.
// uuid is optional.
func NewClient(endpoint string, uuid string) *Client {
	if endpoint == "" {
		endpoint = MainnetBlockEngine
	}
	return NewClientWithEndpoints([]string{endpoint}, uuid)
}

// NewClientWithEndpoints creates a client that rotates through endpoints.
//
//	client := jito.NewClientWithEndpoints(jito.MainnetBlockEngines, "")
func NewClientWithEndpoints(endpoints []string, uuid string) *Client {
	if len(endpoints) == 0 {
		endpoints = MainnetBlockEngines
	}
	return &Client{
		endpoints:  endpoints,
		uuid:       uuid,
		maxTries:   uint(len(endpoints) + 2),
		retryDelay: 100 * time.Millisecond,
		log:        zerolog.Nop(),
	}
}

// WithRetries configures read retries.
func (c *Client) WithRetries(maxTries uint, retryDelay time.Duration) *Client {
	c.maxTries = maxTries
	c.retryDelay = retryDelay
	return c
}

// WithLogger attaches a logger.
func (c *Client) WithLogger(log zerolog.Logger) *Client {
	c.log = log
	return c
}

func (c *Client) next() *jitorpc.JitoJsonRpcClient {
	idx := atomic.AddUint32(&c.currentIndex, 1)
	endpoint := c.endpoints[int(idx)%len(c.endpoints)]
	return jitorpc.NewJitoJsonRpcClient(endpoint, c.uuid)
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "congested") ||
		strings.Contains(msg, "429")
}

// read runs fn against rotating endpoints, retrying rate-limit errors only.
func (c *Client) read(ctx context.Context, op string, fn func(*jitorpc.JitoJsonRpcClient) error) error {
	operation := func() (struct{}, error) {
		err := fn(c.next())
		if err != nil && !isRateLimitError(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}
	notify := func(err error, next time.Duration) {
		c.log.Debug().Str("op", op).Dur("backoff", next).Err(err).Msg("jito rate limited")
	}
	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(c.retryDelay)),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(notify))
	if err != nil {
		return fmt.Errorf("jito %s: %w", op, err)
	}
	return nil
}

// GetTipAccounts asks the engine for its current tip accounts.
func (c *Client) GetTipAccounts(ctx context.Context) ([]solana.PublicKey, error) {
	var raw []byte
	err := c.read(ctx, "getTipAccounts", func(cl *jitorpc.JitoJsonRpcClient) (err error) {
		raw, err = cl.GetTipAccounts()
		return err
	})
	if err != nil {
		return nil, err
	}
	var accounts []string
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("unmarshal tip accounts: %w", err)
	}
	out := make([]solana.PublicKey, 0, len(accounts))
	for _, acc := range accounts {
		pk, err := solana.PublicKeyFromBase58(acc)
		if err != nil {
			continue
		}
		out = append(out, pk)
	}
	return out, nil
}

// GetRandomTipAccount asks the engine for one tip account.
// Prefer GetRandomTipAccountLocal when rate limits matter.
func (c *Client) GetRandomTipAccount(ctx context.Context) (solana.PublicKey, error) {
	var addr string
	err := c.read(ctx, "getRandomTipAccount", func(cl *jitorpc.JitoJsonRpcClient) error {
		tip, err := cl.GetRandomTipAccount()
		if err != nil {
			return err
		}
		addr = tip.Address
		return nil
	})
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBase58(addr)
}

// SendResult contains the result of sending a transaction via Jito.
type SendResult struct {
	Signature solana.Signature
	BundleID  string
}

// SendTransaction submits one signed transaction as a single-transaction bundle.
// It makes exactly one attempt.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	result, err := c.SendTransactionWithBundleID(ctx, tx)
	if err != nil {
		return solana.Signature{}, err
	}
	return result.Signature, nil
}

// SendTransactionWithBundleID is SendTransaction that also returns the bundle id.
func (c *Client) SendTransactionWithBundleID(ctx context.Context, tx *solana.Transaction) (SendResult, error) {
	if tx == nil {
		return SendResult{}, errors.New("transaction is nil")
	}
	bundleID, err := c.SendBundle(ctx, []*solana.Transaction{tx})
	if err != nil {
		return SendResult{}, err
	}
	var sig solana.Signature
	if len(tx.Signatures) > 0 {
		sig = tx.Signatures[0]
	}
	return SendResult{Signature: sig, BundleID: bundleID}, nil
}

// SendBundle submits signed transactions as one atomic bundle. It makes exactly one attempt.
func (c *Client) SendBundle(ctx context.Context, txs []*solana.Transaction) (string, error) {
	if len(txs) == 0 {
		return "", errors.New("bundle requires at least one transaction")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	encoded := make([]string, 0, len(txs))
	for _, tx := range txs {
		raw, err := tx.MarshalBinary()
		if err != nil {
			return "", fmt.Errorf("marshal transaction: %w", err)
		}
		encoded = append(encoded, base64.StdEncoding.EncodeToString(raw))
	}

	resp, err := c.next().SendBundle([][]string{encoded})
	if err != nil {
		return "", fmt.Errorf("jito send bundle: %w", err)
	}
	var bundleID string
	if err := json.Unmarshal(resp, &bundleID); err != nil {
		return "", fmt.Errorf("unmarshal bundle response: %w", err)
	}
	c.log.Debug().Str("bundle", bundleID).Int("txs", len(txs)).Msg("bundle submitted")
	return bundleID, nil
}

// GetBundleStatuses returns the statuses of submitted bundles.
func (c *Client) GetBundleStatuses(ctx context.Context, bundleIDs []string) (*jitorpc.BundleStatusResponse, error) {
	var out *jitorpc.BundleStatusResponse
	err := c.read(ctx, "getBundleStatuses", func(cl *jitorpc.JitoJsonRpcClient) (err error) {
		out, err = cl.GetBundleStatuses(bundleIDs)
		return err
	})
	return out, err
}

// WaitForBundleConfirmation polls bundle status until confirmed or ctx ends.
func (c *Client) WaitForBundleConfirmation(ctx context.Context, bundleID string) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			statuses, err := c.GetBundleStatuses(ctx, []string{bundleID})
			if err != nil || statuses == nil || len(statuses.Value) == 0 {
				continue
			}
			status := statuses.Value[0]
			switch status.ConfirmationStatus {
			case "confirmed", "finalized":
				return nil
			}
			if status.Err.Ok == nil {
				return fmt.Errorf("bundle failed: %v", status.Err)
			}
		}
	}
}
