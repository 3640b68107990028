package pda

import (
	"github.com/gagliardetto/solana-go"

	"github.com/ninja0404/pump-client-go/pkg/config"
	"github.com/ninja0404/pump-client-go/pkg/constants"
)

// Deriver binds the named derivations to one deployment's program ids.
type Deriver struct {
	IDs config.ProgramIDs
}

func NewDeriver(ids config.ProgramIDs) Deriver {
	return Deriver{IDs: ids}
}

func (d Deriver) pump(seeds ...[]byte) (solana.PublicKey, error) {
	addr, _, err := Derive(seeds, d.IDs.Pump)
	return addr, err
}

func (d Deriver) amm(seeds ...[]byte) (solana.PublicKey, error) {
	addr, _, err := Derive(seeds, d.IDs.PumpAmm)
	return addr, err
}

// ATA derives under the deployment's associated-token program.
func (d Deriver) ATA(owner, mint, tokenProgram solana.PublicKey) (solana.PublicKey, error) {
	return AssociatedAddress(owner, mint, tokenProgram, d.IDs.AssociatedToken)
}

// --- pump ---

func (d Deriver) Global() (solana.PublicKey, error) {
	return d.pump([]byte(constants.SeedGlobal))
}

func (d Deriver) BondingCurve(mint solana.PublicKey) (solana.PublicKey, error) {
	return d.pump([]byte(constants.SeedBondingCurve), mint[:])
}

func (d Deriver) CreatorVault(creator solana.PublicKey) (solana.PublicKey, error) {
	return d.pump([]byte(constants.SeedCreatorVault), creator[:])
}

func (d Deriver) MintAuthority() (solana.PublicKey, error) {
	return d.pump([]byte(constants.SeedMintAuthority))
}

func (d Deriver) EventAuthority() (solana.PublicKey, error) {
	return d.pump([]byte(constants.SeedEventAuthority))
}

func (d Deriver) GlobalVolumeAccumulator() (solana.PublicKey, error) {
	return d.pump([]byte(constants.SeedGlobalVolumeAccumulator))
}

func (d Deriver) UserVolumeAccumulator(user solana.PublicKey) (solana.PublicKey, error) {
	return d.pump([]byte(constants.SeedUserVolumeAccumulator), user[:])
}

// PoolAuthority is the pump-side signer that owns migrated pools.
func (d Deriver) PoolAuthority(mint solana.PublicKey) (solana.PublicKey, error) {
	return d.pump([]byte(constants.SeedPoolAuthority), mint[:])
}

// FeeConfig lives under the fee program and is keyed by the program it prices.
func (d Deriver) FeeConfig(program solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := Derive([][]byte{[]byte(constants.SeedFeeConfig), program[:]}, d.IDs.PumpFee)
	return addr, err
}

// Metadata is the metaplex metadata account of mint.
func (d Deriver) Metadata(mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := Derive([][]byte{[]byte(constants.SeedMetadata), d.IDs.Metadata[:], mint[:]}, d.IDs.Metadata)
	return addr, err
}

// --- pump amm ---

func (d Deriver) AmmGlobalConfig() (solana.PublicKey, error) {
	return d.amm([]byte(constants.SeedGlobalConfig))
}

// Pool derives ["pool", index LE, creator, base, quote]. Base and quote are not interchangeable.
func (d Deriver) Pool(index uint16, creator, baseMint, quoteMint solana.PublicKey) (solana.PublicKey, error) {
	return d.amm([]byte(constants.SeedPool), U16LE(index), creator[:], baseMint[:], quoteMint[:])
}

func (d Deriver) PoolLpMint(pool solana.PublicKey) (solana.PublicKey, error) {
	return d.amm([]byte(constants.SeedPoolLpMint), pool[:])
}

func (d Deriver) AmmCreatorVault(coinCreator solana.PublicKey) (solana.PublicKey, error) {
	return d.amm([]byte(constants.SeedCreatorVaultAmm), coinCreator[:])
}

func (d Deriver) AmmEventAuthority() (solana.PublicKey, error) {
	return d.amm([]byte(constants.SeedEventAuthority))
}

func (d Deriver) AmmGlobalVolumeAccumulator() (solana.PublicKey, error) {
	return d.amm([]byte(constants.SeedGlobalVolumeAccumulator))
}

func (d Deriver) AmmUserVolumeAccumulator(user solana.PublicKey) (solana.PublicKey, error) {
	return d.amm([]byte(constants.SeedUserVolumeAccumulator), user[:])
}

// CanonicalPool is the pool a migration creates for mint: index 0, owned by the pool authority, quoted in WSOL.
func (d Deriver) CanonicalPool(mint solana.PublicKey) (solana.PublicKey, error) {
	authority, err := d.PoolAuthority(mint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return d.Pool(0, authority, mint, constants.WSOLMint)
}
