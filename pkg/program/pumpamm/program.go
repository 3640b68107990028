// Package pumpamm holds the binary interface of the Pump AMM program.
package pumpamm

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

const ProgramID string = "pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA"
const ProgramName string = "pump_amm"

var ProgramKey = solana.MustPublicKeyFromBase58(ProgramID)

type OptionBool struct {
	Field0 bool `bin:"field0"`
}

func newInstruction(programID solana.PublicKey, disc []byte, metas []*solana.AccountMeta, args interface{}) (solana.Instruction, error) {
	if programID.IsZero() {
		return nil, fmt.Errorf("pump_amm: program id is zero")
	}
	buf := bytes.NewBuffer(make([]byte, 0, 128))
	buf.Write(disc)
	if args != nil {
		if err := bin.NewBorshEncoder(buf).Encode(args); err != nil {
			return nil, fmt.Errorf("encode args: %w", err)
		}
	}
	return solana.NewInstruction(programID, metas, buf.Bytes()), nil
}
