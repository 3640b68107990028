package config

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/ninja0404/pump-client-go/pkg/constants"
)

// ProgramIDs is the set of program addresses a deployment talks to.
// Every derivation and instruction takes its program from here, never from a global.
type ProgramIDs struct {
	Pump            solana.PublicKey
	PumpAmm         solana.PublicKey
	PumpFee         solana.PublicKey
	Token           solana.PublicKey
	Token2022       solana.PublicKey
	AssociatedToken solana.PublicKey
	System          solana.PublicKey
	Metadata        solana.PublicKey
	Rent            solana.PublicKey
}

// DefaultProgramIDs returns the mainnet deployment.
func DefaultProgramIDs() ProgramIDs {
	return ProgramIDs{
		Pump:            constants.PumpProgramID,
		PumpAmm:         constants.PumpAmmProgramID,
		PumpFee:         constants.PumpFeeProgramID,
		Token:           constants.TokenProgramID,
		Token2022:       constants.Token2022ProgramID,
		AssociatedToken: constants.AssociatedTokenProgramID,
		System:          constants.SystemProgramID,
		Metadata:        constants.MetadataProgramID,
		Rent:            constants.SysvarRentProgramID,
	}
}

// programKeys maps config keys to fields; shared by the loader and Validate.
func (p *ProgramIDs) programKeys() map[string]*solana.PublicKey {
	return map[string]*solana.PublicKey{
		"pump":             &p.Pump,
		"pump_amm":         &p.PumpAmm,
		"pump_fee":         &p.PumpFee,
		"token":            &p.Token,
		"token_2022":       &p.Token2022,
		"associated_token": &p.AssociatedToken,
		"system":           &p.System,
		"metadata":         &p.Metadata,
		"rent":             &p.Rent,
	}
}

// IsTokenProgram reports whether pk is one of the two supported token programs.
func (p ProgramIDs) IsTokenProgram(pk solana.PublicKey) bool {
	return pk.Equals(p.Token) || pk.Equals(p.Token2022)
}

// Validate rejects zero program ids. The system program is all zeroes and is exempt.
func (p ProgramIDs) Validate() error {
	for name, pk := range p.programKeys() {
		if name == "system" {
			continue
		}
		if pk.IsZero() {
			return fmt.Errorf("program id %s is not set", name)
		}
	}
	return nil
}
