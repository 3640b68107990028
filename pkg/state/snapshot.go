package state

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/sync/errgroup"

	"github.com/ninja0404/pump-client-go/pkg/program/pump"
	"github.com/ninja0404/pump-client-go/pkg/program/pumpamm"
	"github.com/ninja0404/pump-client-go/pkg/types"
)

// TradeState is everything a bonding-curve trade needs, read in one round.
type TradeState struct {
	Mint         solana.PublicKey
	Global       *pump.Global
	Curve        *pump.BondingCurve
	TokenProgram solana.PublicKey
}

// PoolState is everything an AMM trade or liquidity operation needs, read in one round.
type PoolState struct {
	Address           solana.PublicKey
	Pool              *pumpamm.Pool
	Config            *pumpamm.GlobalConfig
	BaseTokenProgram  solana.PublicKey
	QuoteTokenProgram solana.PublicKey
}

// FetchTradeState reads Global, the bonding curve and the mint owner concurrently.
// A missing dependency surfaces as a StatePrecondition error.
func (r *Reader) FetchTradeState(ctx context.Context, mint solana.PublicKey) (TradeState, error) {
	out := TradeState{Mint: mint}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		global, err := r.FetchGlobal(gctx)
		out.Global = global
		return err
	})
	g.Go(func() error {
		curve, err := r.FetchBondingCurve(gctx, mint)
		out.Curve = curve
		return err
	})
	g.Go(func() error {
		program, err := r.MintTokenProgram(gctx, mint)
		out.TokenProgram = program
		return err
	})
	if err := g.Wait(); err != nil {
		return TradeState{}, types.AsPrecondition(err)
	}
	return out, nil
}

// FetchPoolState reads the pool and AMM config concurrently, then both mint owners in one batch.
func (r *Reader) FetchPoolState(ctx context.Context, pool solana.PublicKey) (PoolState, error) {
	out := PoolState{Address: pool}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := r.FetchPool(gctx, pool)
		out.Pool = p
		return err
	})
	g.Go(func() error {
		cfg, err := r.FetchAmmGlobalConfig(gctx)
		out.Config = cfg
		return err
	})
	if err := g.Wait(); err != nil {
		return PoolState{}, types.AsPrecondition(err)
	}

	base, quote, err := r.mintPrograms(ctx, out.Pool.BaseMint, out.Pool.QuoteMint)
	if err != nil {
		return PoolState{}, types.AsPrecondition(err)
	}
	out.BaseTokenProgram = base
	out.QuoteTokenProgram = quote
	return out, nil
}

// MintPrograms resolves the owning token program of two mints in one batch.
func (r *Reader) MintPrograms(ctx context.Context, a, b solana.PublicKey) (solana.PublicKey, solana.PublicKey, error) {
	return r.mintPrograms(ctx, a, b)
}

func (r *Reader) mintPrograms(ctx context.Context, a, b solana.PublicKey) (solana.PublicKey, solana.PublicKey, error) {
	accs, err := r.chain.GetMultipleAccounts(ctx, a, b)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("fetch mints: %w", err)
	}
	mints := []solana.PublicKey{a, b}
	programs := make([]solana.PublicKey, 2)
	for i, acc := range accs {
		if acc == nil {
			return solana.PublicKey{}, solana.PublicKey{}, types.NewAccountNotFound(types.KindMint, mints[i])
		}
		if programs[i], err = r.tokenProgramOf(mints[i], acc); err != nil {
			return solana.PublicKey{}, solana.PublicKey{}, err
		}
	}
	return programs[0], programs[1], nil
}

// ExistingAccounts reports which of addrs currently hold data.
func (r *Reader) ExistingAccounts(ctx context.Context, addrs ...solana.PublicKey) (map[solana.PublicKey]bool, error) {
	out := make(map[solana.PublicKey]bool, len(addrs))
	if len(addrs) == 0 {
		return out, nil
	}
	accs, err := r.chain.GetMultipleAccounts(ctx, addrs...)
	if err != nil {
		return nil, err
	}
	for i, acc := range accs {
		out[addrs[i]] = acc != nil
	}
	return out, nil
}
