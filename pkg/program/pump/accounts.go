package pump

import (
	"github.com/gagliardetto/solana-go"

	"github.com/ninja0404/pump-client-go/pkg/program/internal/layout"
)

var GlobalDiscriminator = []byte{167, 232, 232, 177, 200, 108, 114, 127}

var BondingCurveDiscriminator = []byte{23, 183, 248, 55, 96, 216, 172, 96}

// Global is the singleton protocol configuration at ["global"].
// Fields from WithdrawAuthority on were appended by later upgrades and stay zero on shorter accounts.
type Global struct {
	Initialized                 bool
	Authority                   solana.PublicKey
	FeeRecipient                solana.PublicKey
	InitialVirtualTokenReserves uint64
	InitialVirtualSolReserves   uint64
	InitialRealTokenReserves    uint64
	TokenTotalSupply            uint64
	FeeBasisPoints              uint64
	WithdrawAuthority           solana.PublicKey
	EnableMigrate               bool
	PoolMigrationFee            uint64
	CreatorFeeBasisPoints       uint64
	FeeRecipients               [7]solana.PublicKey
	SetCreatorAuthority         solana.PublicKey
	AdminSetCreatorAuthority    solana.PublicKey
}

func (a *Global) Unmarshal(data []byte) error {
	r, err := layout.Open("global", data, GlobalDiscriminator)
	if err != nil {
		return err
	}
	a.Initialized = r.Bool()
	a.Authority = r.PublicKey()
	a.FeeRecipient = r.PublicKey()
	a.InitialVirtualTokenReserves = r.U64()
	a.InitialVirtualSolReserves = r.U64()
	a.InitialRealTokenReserves = r.U64()
	a.TokenTotalSupply = r.U64()
	a.FeeBasisPoints = r.U64()
	a.WithdrawAuthority = r.OptPublicKey()
	a.EnableMigrate = r.OptBool()
	a.PoolMigrationFee = r.OptU64()
	a.CreatorFeeBasisPoints = r.OptU64()
	for i := range a.FeeRecipients {
		a.FeeRecipients[i] = r.OptPublicKey()
	}
	a.SetCreatorAuthority = r.OptPublicKey()
	a.AdminSetCreatorAuthority = r.OptPublicKey()
	return r.Err()
}

// FirstFeeRecipient returns the first non-zero entry of FeeRecipients, falling back to FeeRecipient.
func (a *Global) FirstFeeRecipient() solana.PublicKey {
	for _, pk := range a.FeeRecipients {
		if !pk.IsZero() {
			return pk
		}
	}
	return a.FeeRecipient
}

// BondingCurve is the per-mint curve at ["bonding-curve", mint].
type BondingCurve struct {
	VirtualTokenReserves uint64
	VirtualSolReserves   uint64
	RealTokenReserves    uint64
	RealSolReserves      uint64
	TokenTotalSupply     uint64
	Complete             bool
	Creator              solana.PublicKey
}

func (a *BondingCurve) Unmarshal(data []byte) error {
	r, err := layout.Open("bonding_curve", data, BondingCurveDiscriminator)
	if err != nil {
		return err
	}
	a.VirtualTokenReserves = r.U64()
	a.VirtualSolReserves = r.U64()
	a.RealTokenReserves = r.U64()
	a.RealSolReserves = r.U64()
	a.TokenTotalSupply = r.U64()
	a.Complete = r.Bool()
	a.Creator = r.OptPublicKey()
	return r.Err()
}
