package pumpamm

import (
	"github.com/gagliardetto/solana-go"

	"github.com/ninja0404/pump-client-go/pkg/program/internal/layout"
)

var GlobalConfigDiscriminator = []byte{149, 8, 156, 202, 160, 252, 176, 217}

var PoolDiscriminator = []byte{241, 154, 109, 4, 17, 177, 109, 188}

// Disable flag bits as stored in GlobalConfig.DisableFlags.
const (
	DisableCreatePool uint8 = 1 << iota
	DisableDeposit
	DisableWithdraw
	DisableBuy
	DisableSell
)

// Pool byte offsets used for getProgramAccounts memcmp filters (discriminator included).
const (
	PoolBaseMintOffset  = 43
	PoolQuoteMintOffset = 75
)

type GlobalConfig struct {
	Admin                        solana.PublicKey
	LpFeeBasisPoints             uint64
	ProtocolFeeBasisPoints       uint64
	DisableFlags                 uint8
	ProtocolFeeRecipients        [8]solana.PublicKey
	CoinCreatorFeeBasisPoints    uint64
	AdminSetCoinCreatorAuthority solana.PublicKey
}

func (a *GlobalConfig) Unmarshal(data []byte) error {
	r, err := layout.Open("global_config", data, GlobalConfigDiscriminator)
	if err != nil {
		return err
	}
	a.Admin = r.PublicKey()
	a.LpFeeBasisPoints = r.U64()
	a.ProtocolFeeBasisPoints = r.U64()
	a.DisableFlags = r.U8()
	for i := range a.ProtocolFeeRecipients {
		a.ProtocolFeeRecipients[i] = r.PublicKey()
	}
	a.CoinCreatorFeeBasisPoints = r.OptU64()
	a.AdminSetCoinCreatorAuthority = r.OptPublicKey()
	return r.Err()
}

// Disabled reports whether a flag bit is set.
func (a *GlobalConfig) Disabled(flag uint8) bool {
	return a.DisableFlags&flag != 0
}

// FirstProtocolFeeRecipient returns the first non-zero recipient.
func (a *GlobalConfig) FirstProtocolFeeRecipient() solana.PublicKey {
	for _, pk := range a.ProtocolFeeRecipients {
		if !pk.IsZero() {
			return pk
		}
	}
	return solana.PublicKey{}
}

type Pool struct {
	PoolBump              uint8
	Index                 uint16
	Creator               solana.PublicKey
	BaseMint              solana.PublicKey
	QuoteMint             solana.PublicKey
	LpMint                solana.PublicKey
	PoolBaseTokenAccount  solana.PublicKey
	PoolQuoteTokenAccount solana.PublicKey
	LpSupply              uint64
	CoinCreator           solana.PublicKey
}

func (a *Pool) Unmarshal(data []byte) error {
	r, err := layout.Open("pool", data, PoolDiscriminator)
	if err != nil {
		return err
	}
	a.PoolBump = r.U8()
	a.Index = r.U16()
	a.Creator = r.PublicKey()
	a.BaseMint = r.PublicKey()
	a.QuoteMint = r.PublicKey()
	a.LpMint = r.PublicKey()
	a.PoolBaseTokenAccount = r.PublicKey()
	a.PoolQuoteTokenAccount = r.PublicKey()
	a.LpSupply = r.U64()
	a.CoinCreator = r.OptPublicKey()
	return r.Err()
}
