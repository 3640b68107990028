// Package pda derives program addresses and associated token accounts.
package pda

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"github.com/ninja0404/pump-client-go/pkg/types"
)

const (
	MaxSeedLength = 32
	MaxSeeds      = 16
)

// Derive searches bumps 255..0 for the first off-curve address of seeds under program.
// Seed order is significant.
func Derive(seeds [][]byte, program solana.PublicKey) (solana.PublicKey, uint8, error) {
	if len(seeds) >= MaxSeeds {
		// the bump takes the last slot
		return solana.PublicKey{}, 0, types.SeedError{Index: -1, Reason: "too many seeds"}
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return solana.PublicKey{}, 0, types.SeedError{Index: i, Length: len(s), Reason: "exceeds max seed length"}
		}
	}
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		// lengths are checked above, so an error here means the point is on the curve
		if addr, err := solana.CreateProgramAddress(withBump, program); err == nil {
			return addr, uint8(bump), nil
		}
	}
	return solana.PublicKey{}, 0, types.ErrNoValidAddress
}

// MustDerive panics on failure; only for constant seeds.
func MustDerive(seeds [][]byte, program solana.PublicKey) solana.PublicKey {
	addr, _, err := Derive(seeds, program)
	if err != nil {
		panic(err)
	}
	return addr
}

// AssociatedAddress derives ATA(owner, mint) for tokenProgram under ataProgram.
func AssociatedAddress(owner, mint, tokenProgram, ataProgram solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := Derive([][]byte{owner[:], tokenProgram[:], mint[:]}, ataProgram)
	return addr, err
}

// U16LE encodes the pool index seed.
func U16LE(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}
