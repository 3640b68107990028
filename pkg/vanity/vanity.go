// Package vanity grinds mint keypairs whose address carries a chosen prefix or suffix.
// Pump mints conventionally end in "pump".
package vanity

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ninja0404/pump-client-go/pkg/types"
)

// base58 alphabet; 0, O, I and l never appear in an address.
const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Pattern describes the address to search for.
type Pattern struct {
	Prefix          string
	Suffix          string
	CaseInsensitive bool
}

// Validate rejects empty patterns and characters base58 cannot produce.
func (p Pattern) Validate() error {
	if p.Prefix == "" && p.Suffix == "" {
		return types.NewValidationError("vanity", "prefix or suffix is required")
	}
	for _, r := range p.Prefix + p.Suffix {
		if !strings.ContainsRune(alphabet, r) {
			return types.NewValidationError("vanity", fmt.Sprintf("%q is not a base58 character", r))
		}
	}
	return nil
}

func (p Pattern) match(addr string) bool {
	prefix, suffix := p.Prefix, p.Suffix
	if p.CaseInsensitive {
		addr = strings.ToLower(addr)
		prefix, suffix = strings.ToLower(prefix), strings.ToLower(suffix)
	}
	return strings.HasPrefix(addr, prefix) && strings.HasSuffix(addr, suffix)
}

// Difficulty is the expected number of attempts for the pattern.
func (p Pattern) Difficulty() uint64 {
	n := len(p.Prefix) + len(p.Suffix)
	d := uint64(1)
	for i := 0; i < n; i++ {
		d *= 58
	}
	return d
}

// Result is a matching keypair plus search stats.
type Result struct {
	Key      solana.PrivateKey
	Attempts uint64
	Duration time.Duration
}

// Grinder runs the search on a fixed number of workers.
type Grinder struct {
	workers int
	log     zerolog.Logger
}

// NewGrinder uses runtime.NumCPU workers when workers <= 0.
func NewGrinder(workers int, log zerolog.Logger) *Grinder {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Grinder{workers: workers, log: log}
}

var errFound = errors.New("found")

// Grind searches until a key matches or ctx ends.
func (g *Grinder) Grind(ctx context.Context, p Pattern) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	var (
		attempts atomic.Uint64
		found    atomic.Pointer[solana.PrivateKey]
		start    = time.Now()
	)
	eg, egCtx := errgroup.WithContext(ctx)
	for i := 0; i < g.workers; i++ {
		eg.Go(func() error {
			for egCtx.Err() == nil {
				key, err := solana.NewRandomPrivateKey()
				if err != nil {
					return err
				}
				attempts.Add(1)
				if !p.match(key.PublicKey().String()) {
					continue
				}
				if found.CompareAndSwap(nil, &key) {
					return errFound
				}
				return nil
			}
			return nil
		})
	}
	err := eg.Wait()

	res := Result{Attempts: attempts.Load(), Duration: time.Since(start)}
	if key := found.Load(); key != nil {
		res.Key = *key
		g.log.Debug().
			Str("address", key.PublicKey().String()).
			Uint64("attempts", res.Attempts).
			Dur("took", res.Duration).
			Msg("vanity key found")
		return res, nil
	}
	if err != nil && !errors.Is(err, errFound) {
		return res, err
	}
	return res, fmt.Errorf("vanity search stopped after %d attempts: %w", res.Attempts, ctx.Err())
}
