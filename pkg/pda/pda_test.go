package pda

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/pump-client-go/pkg/config"
	"github.com/ninja0404/pump-client-go/pkg/constants"
	"github.com/ninja0404/pump-client-go/pkg/types"
)

func TestDeriveMatchesFindProgramAddress(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	seeds := [][]byte{[]byte(constants.SeedBondingCurve), mint[:]}

	got, bump, err := Derive(seeds, constants.PumpProgramID)
	require.NoError(t, err)
	want, wantBump, err := solana.FindProgramAddress(seeds, constants.PumpProgramID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, wantBump, bump)
}

func TestDeriveIsPure(t *testing.T) {
	creator := solana.NewWallet().PublicKey()
	seeds := [][]byte{[]byte(constants.SeedCreatorVault), creator[:]}
	a, _, err := Derive(seeds, constants.PumpProgramID)
	require.NoError(t, err)
	b, _, err := Derive(seeds, constants.PumpProgramID)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDeriveSeedOrderMatters(t *testing.T) {
	x := solana.NewWallet().PublicKey()
	y := solana.NewWallet().PublicKey()
	a, _, err := Derive([][]byte{x[:], y[:]}, constants.PumpAmmProgramID)
	require.NoError(t, err)
	b, _, err := Derive([][]byte{y[:], x[:]}, constants.PumpAmmProgramID)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDeriveRejectsLongSeed(t *testing.T) {
	_, _, err := Derive([][]byte{[]byte("ok"), bytes.Repeat([]byte{1}, 33)}, constants.PumpProgramID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidSeed))

	var seedErr types.SeedError
	require.ErrorAs(t, err, &seedErr)
	assert.Equal(t, 1, seedErr.Index)
	assert.Equal(t, 33, seedErr.Length)
}

func TestDeriveRejectsTooManySeeds(t *testing.T) {
	seeds := make([][]byte, MaxSeeds)
	for i := range seeds {
		seeds[i] = []byte{byte(i)}
	}
	_, _, err := Derive(seeds, constants.PumpProgramID)
	assert.ErrorIs(t, err, types.ErrInvalidSeed)
}

func TestAssociatedAddressMatchesSPL(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	got, err := AssociatedAddress(owner, mint, constants.TokenProgramID, constants.AssociatedTokenProgramID)
	require.NoError(t, err)
	want, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAssociatedAddressInjective(t *testing.T) {
	owners := []solana.PublicKey{solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()}
	mints := []solana.PublicKey{solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()}

	seen := make(map[solana.PublicKey]struct{})
	for _, o := range owners {
		for _, m := range mints {
			ata, err := AssociatedAddress(o, m, constants.Token2022ProgramID, constants.AssociatedTokenProgramID)
			require.NoError(t, err)
			_, dup := seen[ata]
			require.False(t, dup, "duplicate ATA for owner %s mint %s", o, m)
			seen[ata] = struct{}{}
		}
	}
	assert.Len(t, seen, len(owners)*len(mints))
}

func TestAssociatedAddressDependsOnTokenProgram(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	legacy, err := AssociatedAddress(owner, mint, constants.TokenProgramID, constants.AssociatedTokenProgramID)
	require.NoError(t, err)
	ext, err := AssociatedAddress(owner, mint, constants.Token2022ProgramID, constants.AssociatedTokenProgramID)
	require.NoError(t, err)
	assert.NotEqual(t, legacy, ext)
}

func TestDeriverKnownMainnetAddresses(t *testing.T) {
	d := NewDeriver(config.DefaultProgramIDs())

	global, err := d.Global()
	require.NoError(t, err)
	assert.Equal(t, "4wTV1YmiEkRvAtNtsSGPtUrqRYQMe5SKy2uB4Jjaxnjf", global.String())

	eventAuthority, err := d.EventAuthority()
	require.NoError(t, err)
	assert.Equal(t, "Ce6TQqeHC9p8KetsN6JsjHK7UTZk7nasjjnr7XxXp9F1", eventAuthority.String())

	globalConfig, err := d.AmmGlobalConfig()
	require.NoError(t, err)
	assert.Equal(t, "ADyA8hdefvWN2dbGGWFotbzWxrAvLW83WG6QCVXvJKqw", globalConfig.String())
}

func TestDeriverPoolSwapBaseQuote(t *testing.T) {
	d := NewDeriver(config.DefaultProgramIDs())
	creator := solana.NewWallet().PublicKey()
	base := solana.NewWallet().PublicKey()
	quote := constants.WSOLMint

	p1, err := d.Pool(0, creator, base, quote)
	require.NoError(t, err)
	p2, err := d.Pool(0, creator, quote, base)
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)

	again, err := d.Pool(0, creator, base, quote)
	require.NoError(t, err)
	assert.Equal(t, p1, again)

	other, err := d.Pool(1, creator, base, quote)
	require.NoError(t, err)
	assert.NotEqual(t, p1, other)
}

func TestDeriverFollowsConfiguredProgram(t *testing.T) {
	ids := config.DefaultProgramIDs()
	custom := ids
	custom.Pump = solana.NewWallet().PublicKey()

	a, err := NewDeriver(ids).Global()
	require.NoError(t, err)
	b, err := NewDeriver(custom).Global()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestU16LE(t *testing.T) {
	assert.Equal(t, []byte{0x01, 0x02}, U16LE(0x0201))
}
