// Package guard gates privileged operations on a freshly fetched state snapshot.
package guard

import (
	"github.com/gagliardetto/solana-go"

	"github.com/ninja0404/pump-client-go/pkg/program/pump"
	"github.com/ninja0404/pump-client-go/pkg/program/pumpamm"
	"github.com/ninja0404/pump-client-go/pkg/types"
)

type Role int

const (
	ProtocolAuthority Role = iota + 1
	AmmAdmin
	CoinCreator
	SetCreatorAuthority
)

func (r Role) String() string {
	switch r {
	case ProtocolAuthority:
		return "protocol authority"
	case AmmAdmin:
		return "amm admin"
	case CoinCreator:
		return "coin creator"
	case SetCreatorAuthority:
		return "set-creator authority"
	default:
		return "unknown role"
	}
}

// Snapshot holds the records a role check reads. A nil record means it was not fetched.
type Snapshot struct {
	Global       *pump.Global
	AmmConfig    *pumpamm.GlobalConfig
	BondingCurve *pump.BondingCurve
	Pool         *pumpamm.Pool
}

// holder returns the identity that holds role, and whether the backing record is present.
func (s Snapshot) holder(role Role) (solana.PublicKey, bool) {
	switch role {
	case ProtocolAuthority:
		if s.Global != nil {
			return s.Global.Authority, true
		}
	case SetCreatorAuthority:
		if s.Global != nil {
			return s.Global.SetCreatorAuthority, true
		}
	case AmmAdmin:
		if s.AmmConfig != nil {
			return s.AmmConfig.Admin, true
		}
	case CoinCreator:
		// a pool takes precedence: its coin creator can diverge from the curve's after migration
		if s.Pool != nil {
			return s.Pool.CoinCreator, true
		}
		if s.BondingCurve != nil {
			return s.BondingCurve.Creator, true
		}
	}
	return solana.PublicKey{}, false
}

// IsAuthorized compares caller with the role holder byte for byte.
// It fails closed: a missing record, a zero caller or a zero holder is denied.
func IsAuthorized(caller solana.PublicKey, role Role, snap Snapshot) bool {
	holder, ok := snap.holder(role)
	if !ok || caller.IsZero() || holder.IsZero() {
		return false
	}
	return holder == caller
}

// Require is IsAuthorized returning an Unauthorized error on denial.
func Require(caller solana.PublicKey, role Role, snap Snapshot) error {
	if IsAuthorized(caller, role, snap) {
		return nil
	}
	reason := ""
	if _, ok := snap.holder(role); !ok {
		reason = "state not fetched"
	}
	return types.UnauthorizedError{Role: role.String(), Caller: caller, Reason: reason}
}
