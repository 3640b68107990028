// Package layout reads Anchor account records whose newest fields may be missing on older accounts.
package layout

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Open checks the 8-byte discriminator and returns a reader over the body.
func Open(name string, data []byte, disc []byte) (*Reader, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("account %s: data too short", name)
	}
	if !bytes.Equal(data[:8], disc) {
		return nil, fmt.Errorf("account %s: discriminator mismatch", name)
	}
	return &Reader{name: name, dec: bin.NewBorshDecoder(data[8:])}, nil
}

// Reader keeps the first decode error; reads after it are no-ops.
// Opt* reads return the zero value once the account has ended early,
// so a short tail never shifts later fields.
type Reader struct {
	name  string
	dec   *bin.Decoder
	err   error
	ended bool
}

// Err reports the first required-field failure.
func (r *Reader) Err() error {
	if r.err == nil {
		return nil
	}
	return fmt.Errorf("account %s: %w", r.name, r.err)
}

func (r *Reader) has(n int) bool {
	if r.ended || r.dec.Remaining() < n {
		r.ended = true
		return false
	}
	return true
}

func (r *Reader) U8() uint8 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint8()
	r.err = err
	return v
}

func (r *Reader) U16() uint16 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint16(bin.LE)
	r.err = err
	return v
}

func (r *Reader) U64() uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint64(bin.LE)
	r.err = err
	return v
}

func (r *Reader) Bool() bool {
	if r.err != nil {
		return false
	}
	v, err := r.dec.ReadBool()
	r.err = err
	return v
}

func (r *Reader) PublicKey() solana.PublicKey {
	if r.err != nil {
		return solana.PublicKey{}
	}
	b, err := r.dec.ReadNBytes(32)
	if err != nil {
		r.err = err
		return solana.PublicKey{}
	}
	return solana.PublicKeyFromBytes(b)
}

func (r *Reader) OptU64() uint64 {
	if r.err != nil || !r.has(8) {
		return 0
	}
	return r.U64()
}

func (r *Reader) OptBool() bool {
	if r.err != nil || !r.has(1) {
		return false
	}
	return r.Bool()
}

func (r *Reader) OptPublicKey() solana.PublicKey {
	if r.err != nil || !r.has(32) {
		return solana.PublicKey{}
	}
	return r.PublicKey()
}
