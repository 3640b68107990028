package state

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/pump-client-go/pkg/config"
	"github.com/ninja0404/pump-client-go/pkg/program/pump"
	"github.com/ninja0404/pump-client-go/pkg/program/pumpamm"
	"github.com/ninja0404/pump-client-go/pkg/types"
)

type fakeChain struct {
	accounts map[solana.PublicKey]*solanarpc.Account
	listed   solanarpc.GetProgramAccountsResult
	filters  []solanarpc.RPCFilter
}

func (c *fakeChain) put(addr, owner solana.PublicKey, data []byte) {
	c.accounts[addr] = &solanarpc.Account{Owner: owner, Data: solanarpc.DataBytesOrJSONFromBytes(data)}
}

func (c *fakeChain) GetAccountData(_ context.Context, addr solana.PublicKey) (*solanarpc.Account, error) {
	return c.accounts[addr], nil
}

func (c *fakeChain) GetMultipleAccounts(_ context.Context, addrs ...solana.PublicKey) ([]*solanarpc.Account, error) {
	out := make([]*solanarpc.Account, len(addrs))
	for i, a := range addrs {
		out[i] = c.accounts[a]
	}
	return out, nil
}

func (c *fakeChain) GetProgramAccounts(_ context.Context, _ solana.PublicKey, filters ...solanarpc.RPCFilter) (solanarpc.GetProgramAccountsResult, error) {
	c.filters = filters
	return c.listed, nil
}

func newKey() solana.PublicKey { return solana.NewWallet().PublicKey() }

func globalBytes(authority solana.PublicKey) []byte {
	var buf bytes.Buffer
	buf.Write(pump.GlobalDiscriminator)
	buf.WriteByte(1)
	buf.Write(authority.Bytes())
	buf.Write(newKey().Bytes())
	for i := 0; i < 5; i++ {
		buf.Write(binary.LittleEndian.AppendUint64(nil, 7))
	}
	return buf.Bytes()
}

func poolBytes(base solana.PublicKey) []byte {
	var buf bytes.Buffer
	buf.Write(pumpamm.PoolDiscriminator)
	buf.WriteByte(255)
	buf.Write(binary.LittleEndian.AppendUint16(nil, 0))
	buf.Write(newKey().Bytes())
	buf.Write(base.Bytes())
	buf.Write(solana.WrappedSol.Bytes())
	for i := 0; i < 3; i++ {
		buf.Write(newKey().Bytes())
	}
	buf.Write(binary.LittleEndian.AppendUint64(nil, 1))
	return buf.Bytes()
}

func newReader() (*Reader, *fakeChain, config.ProgramIDs) {
	ids := config.DefaultProgramIDs()
	chain := &fakeChain{accounts: make(map[solana.PublicKey]*solanarpc.Account)}
	return NewReader(chain, ids, zerolog.Nop()), chain, ids
}

func TestFetchGlobal(t *testing.T) {
	r, chain, ids := newReader()
	addr, err := r.Deriver().Global()
	require.NoError(t, err)

	_, err = r.FetchGlobal(context.Background())
	assert.ErrorIs(t, err, types.ErrAccountNotFound)
	assert.NotErrorIs(t, err, types.ErrStatePrecondition)

	authority := newKey()
	chain.put(addr, ids.Pump, globalBytes(authority))
	g, err := r.FetchGlobal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, authority, g.Authority)
	assert.True(t, g.WithdrawAuthority.IsZero())
}

func TestDecodeRejectsWrongOwner(t *testing.T) {
	r, chain, _ := newReader()
	addr, err := r.Deriver().Global()
	require.NoError(t, err)
	chain.put(addr, newKey(), globalBytes(newKey()))

	_, err = r.FetchGlobal(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owned by")
}

func TestFetchTradeStateMissingCurve(t *testing.T) {
	r, chain, ids := newReader()
	addr, err := r.Deriver().Global()
	require.NoError(t, err)
	chain.put(addr, ids.Pump, globalBytes(newKey()))
	mint := newKey()
	chain.put(mint, ids.Token, make([]byte, 82))

	_, err = r.FetchTradeState(context.Background(), mint)
	assert.ErrorIs(t, err, types.ErrStatePrecondition)
	assert.ErrorIs(t, err, types.ErrAccountNotFound)

	var se types.StateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, types.KindBondingCurve, se.Kind)
}

func TestMintTokenProgram(t *testing.T) {
	r, chain, ids := newReader()
	legacy, t22, bogus := newKey(), newKey(), newKey()
	chain.put(legacy, ids.Token, make([]byte, 82))
	chain.put(t22, ids.Token2022, make([]byte, 82))
	chain.put(bogus, ids.System, make([]byte, 82))

	got, err := r.MintTokenProgram(context.Background(), legacy)
	require.NoError(t, err)
	assert.Equal(t, ids.Token, got)

	a, b, err := r.MintPrograms(context.Background(), t22, legacy)
	require.NoError(t, err)
	assert.Equal(t, ids.Token2022, a)
	assert.Equal(t, ids.Token, b)

	_, err = r.MintTokenProgram(context.Background(), bogus)
	assert.Error(t, err)

	_, err = r.MintTokenProgram(context.Background(), newKey())
	assert.ErrorIs(t, err, types.ErrAccountNotFound)
}

func TestFindCanonicalPoolTakesFirstListed(t *testing.T) {
	r, chain, ids := newReader()
	base := newKey()
	first, second := newKey(), newKey()
	chain.listed = solanarpc.GetProgramAccountsResult{
		{Pubkey: newKey(), Account: &solanarpc.Account{Owner: ids.PumpAmm, Data: solanarpc.DataBytesOrJSONFromBytes([]byte{1, 2, 3})}},
		{Pubkey: first, Account: &solanarpc.Account{Owner: ids.PumpAmm, Data: solanarpc.DataBytesOrJSONFromBytes(poolBytes(base))}},
		{Pubkey: second, Account: &solanarpc.Account{Owner: ids.PumpAmm, Data: solanarpc.DataBytesOrJSONFromBytes(poolBytes(base))}},
	}

	entry, ok, err := r.FindCanonicalPool(context.Background(), base)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, entry.Address)

	require.Len(t, chain.filters, 2)
	assert.Equal(t, uint64(pumpamm.PoolBaseMintOffset), chain.filters[1].Memcmp.Offset)
	assert.Equal(t, solana.Base58(base.Bytes()), chain.filters[1].Memcmp.Bytes)

	chain.listed = nil
	_, ok, err = r.FindCanonicalPool(context.Background(), base)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExistingAccounts(t *testing.T) {
	r, chain, ids := newReader()
	here, gone := newKey(), newKey()
	chain.put(here, ids.Token, make([]byte, 165))

	got, err := r.ExistingAccounts(context.Background(), here, gone)
	require.NoError(t, err)
	assert.True(t, got[here])
	assert.False(t, got[gone])
}
