// Package builder assembles protocol instructions from parameters, derived addresses and fetched state.
// Nothing here touches the network; the same inputs always produce the same instruction bytes.
package builder

import (
	"github.com/gagliardetto/solana-go"

	"github.com/ninja0404/pump-client-go/pkg/config"
	"github.com/ninja0404/pump-client-go/pkg/pda"
	"github.com/ninja0404/pump-client-go/pkg/types"
)

// Builder is bound to one deployment's program ids.
type Builder struct {
	ids    config.ProgramIDs
	derive pda.Deriver
}

func New(ids config.ProgramIDs) *Builder {
	return &Builder{ids: ids, derive: pda.NewDeriver(ids)}
}

// Deriver exposes the derivations the builder uses.
func (b *Builder) Deriver() pda.Deriver {
	return b.derive
}

// ProgramIDs returns the deployment the builder targets.
func (b *Builder) ProgramIDs() config.ProgramIDs {
	return b.ids
}

func requireKeys(fields ...field) error {
	for _, f := range fields {
		if f.key.IsZero() {
			return types.NewValidationError(f.name, "is required")
		}
	}
	return nil
}

type field struct {
	name string
	key  solana.PublicKey
}

func pk(name string, key solana.PublicKey) field {
	return field{name: name, key: key}
}

func notCreated(kind types.AccountKind, addr solana.PublicKey) error {
	return types.NotYetCreated(kind, addr)
}

func precondition(kind types.AccountKind, addr solana.PublicKey, reason string) error {
	return types.StateError{Kind: kind, Address: addr, Reason: reason}
}

// derivation collects the first error of a run of derivations.
type derivation struct {
	err error
}

func (d *derivation) do(fn func() (solana.PublicKey, error)) solana.PublicKey {
	if d.err != nil {
		return solana.PublicKey{}
	}
	addr, err := fn()
	d.err = err
	return addr
}

func (d *derivation) ata(b *Builder, owner, mint, tokenProgram solana.PublicKey) solana.PublicKey {
	return d.do(func() (solana.PublicKey, error) { return b.derive.ATA(owner, mint, tokenProgram) })
}
