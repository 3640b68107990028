// Package pump holds the binary interface of the Pump bonding-curve program:
// discriminators, account records, instruction account lists and argument layouts.
package pump

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

const ProgramID string = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"
const ProgramName string = "pump"

// ProgramKey is the mainnet deployment. Builders take the program id explicitly.
var ProgramKey = solana.MustPublicKeyFromBase58(ProgramID)

// OptionBool mirrors the program's tuple struct; it encodes as a single byte.
type OptionBool struct {
	Field0 bool `bin:"field0"`
}

func newInstruction(programID solana.PublicKey, disc []byte, metas []*solana.AccountMeta, args interface{}) (solana.Instruction, error) {
	if programID.IsZero() {
		return nil, fmt.Errorf("pump: program id is zero")
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
