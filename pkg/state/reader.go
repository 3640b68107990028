// Package state fetches and decodes protocol accounts. Nothing is cached; every call reads the chain.
package state

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"

	"github.com/ninja0404/pump-client-go/pkg/config"
	"github.com/ninja0404/pump-client-go/pkg/pda"
	"github.com/ninja0404/pump-client-go/pkg/program/pump"
	"github.com/ninja0404/pump-client-go/pkg/program/pumpamm"
	"github.com/ninja0404/pump-client-go/pkg/types"
)

// Chain is the read capability the reader needs; *rpc.Client satisfies it.
type Chain interface {
	GetAccountData(ctx context.Context, addr solana.PublicKey) (*solanarpc.Account, error)
	GetMultipleAccounts(ctx context.Context, addrs ...solana.PublicKey) ([]*solanarpc.Account, error)
	GetProgramAccounts(ctx context.Context, program solana.PublicKey, filters ...solanarpc.RPCFilter) (solanarpc.GetProgramAccountsResult, error)
}

// Reader decodes typed protocol records from chain reads.
type Reader struct {
	chain  Chain
	derive pda.Deriver
	log    zerolog.Logger
}

func NewReader(chain Chain, ids config.ProgramIDs, log zerolog.Logger) *Reader {
	return &Reader{chain: chain, derive: pda.NewDeriver(ids), log: log}
}

// Deriver exposes the derivations bound to this reader's program ids.
func (r *Reader) Deriver() pda.Deriver {
	return r.derive
}

// PoolEntry is a pool record together with its address.
type PoolEntry struct {
	Address solana.PublicKey
	Pool    pumpamm.Pool
}

func (r *Reader) FetchGlobal(ctx context.Context) (*pump.Global, error) {
	addr, err := r.derive.Global()
	if err != nil {
		return nil, err
	}
	var out pump.Global
	if err := r.fetchInto(ctx, types.KindGlobal, addr, r.derive.IDs.Pump, out.Unmarshal); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Reader) FetchBondingCurve(ctx context.Context, mint solana.PublicKey) (*pump.BondingCurve, error) {
	addr, err := r.derive.BondingCurve(mint)
	if err != nil {
		return nil, err
	}
	var out pump.BondingCurve
	if err := r.fetchInto(ctx, types.KindBondingCurve, addr, r.derive.IDs.Pump, out.Unmarshal); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Reader) FetchAmmGlobalConfig(ctx context.Context) (*pumpamm.GlobalConfig, error) {
	addr, err := r.derive.AmmGlobalConfig()
	if err != nil {
		return nil, err
	}
	var out pumpamm.GlobalConfig
	if err := r.fetchInto(ctx, types.KindAmmGlobalConfig, addr, r.derive.IDs.PumpAmm, out.Unmarshal); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Reader) FetchPool(ctx context.Context, addr solana.PublicKey) (*pumpamm.Pool, error) {
	var out pumpamm.Pool
	if err := r.fetchInto(ctx, types.KindPool, addr, r.derive.IDs.PumpAmm, out.Unmarshal); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPools returns every pool account in listing order.
func (r *Reader) ListPools(ctx context.Context) ([]PoolEntry, error) {
	return r.listPools(ctx)
}

// PoolsByBaseMint narrows the listing server-side with a memcmp on the base mint.
func (r *Reader) PoolsByBaseMint(ctx context.Context, baseMint solana.PublicKey) ([]PoolEntry, error) {
	return r.listPools(ctx, memcmp(pumpamm.PoolBaseMintOffset, baseMint[:]))
}

// FindCanonicalPool returns the first listed pool whose base mint matches.
// Nothing on chain makes that pool unique; with several candidates the answer follows the RPC's listing order.
func (r *Reader) FindCanonicalPool(ctx context.Context, baseMint solana.PublicKey) (PoolEntry, bool, error) {
	pools, err := r.PoolsByBaseMint(ctx, baseMint)
	if err != nil {
		return PoolEntry{}, false, err
	}
	for _, p := range pools {
		if p.Pool.BaseMint.Equals(baseMint) {
			if len(pools) > 1 {
				r.log.Warn().Str("base_mint", baseMint.String()).Int("candidates", len(pools)).Msg("several pools share a base mint; using the first listed")
			}
			return p, true, nil
		}
	}
	return PoolEntry{}, false, nil
}

// MintTokenProgram reports which token program owns mint.
func (r *Reader) MintTokenProgram(ctx context.Context, mint solana.PublicKey) (solana.PublicKey, error) {
	acc, err := r.chain.GetAccountData(ctx, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("fetch mint %s: %w", mint, err)
	}
	if acc == nil {
		return solana.PublicKey{}, types.NewAccountNotFound(types.KindMint, mint)
	}
	return r.tokenProgramOf(mint, acc)
}

func (r *Reader) tokenProgramOf(mint solana.PublicKey, acc *solanarpc.Account) (solana.PublicKey, error) {
	if !r.derive.IDs.IsTokenProgram(acc.Owner) {
		return solana.PublicKey{}, fmt.Errorf("mint %s is owned by %s, not a token program", mint, acc.Owner)
	}
	return acc.Owner, nil
}

func (r *Reader) listPools(ctx context.Context, extra ...solanarpc.RPCFilter) ([]PoolEntry, error) {
	filters := append([]solanarpc.RPCFilter{memcmp(0, pumpamm.PoolDiscriminator)}, extra...)
	res, err := r.chain.GetProgramAccounts(ctx, r.derive.IDs.PumpAmm, filters...)
	if err != nil {
		return nil, fmt.Errorf("list pools: %w", err)
	}
	out := make([]PoolEntry, 0, len(res))
	for _, keyed := range res {
		if keyed == nil || keyed.Account == nil || keyed.Account.Data == nil {
			continue
		}
		var p pumpamm.Pool
		if err := p.Unmarshal(keyed.Account.Data.GetBinary()); err != nil {
			r.log.Debug().Str("pool", keyed.Pubkey.String()).Err(err).Msg("skip undecodable pool")
			continue
		}
		out = append(out, PoolEntry{Address: keyed.Pubkey, Pool: p})
	}
	r.log.Debug().Int("pools", len(out)).Msg("listed pools")
	return out, nil
}

func (r *Reader) fetchInto(ctx context.Context, kind types.AccountKind, addr, owner solana.PublicKey, decode func([]byte) error) error {
	acc, err := r.chain.GetAccountData(ctx, addr)
	if err != nil {
		return fmt.Errorf("fetch %s %s: %w", kind, addr, err)
	}
	return r.decode(kind, addr, owner, acc, decode)
}

func (r *Reader) decode(kind types.AccountKind, addr, owner solana.PublicKey, acc *solanarpc.Account, decode func([]byte) error) error {
	if acc == nil || acc.Data == nil || len(acc.Data.GetBinary()) == 0 {
		return types.NewAccountNotFound(kind, addr)
	}
	if !acc.Owner.Equals(owner) {
		return fmt.Errorf("decode %s %s: owned by %s, want %s", kind, addr, acc.Owner, owner)
	}
	if err := decode(acc.Data.GetBinary()); err != nil {
		return fmt.Errorf("decode %s %s: %w", kind, addr, err)
	}
	r.log.Debug().Str("kind", string(kind)).Str("address", addr.String()).Msg("decoded account")
	return nil
}

func memcmp(offset uint64, b []byte) solanarpc.RPCFilter {
	return solanarpc.RPCFilter{Memcmp: &solanarpc.RPCFilterMemcmp{Offset: offset, Bytes: solana.Base58(b)}}
}
