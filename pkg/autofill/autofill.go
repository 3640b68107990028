// Package autofill reads the protocol state an operation depends on, checks the caller's role,
// and returns ready-to-sign instructions: missing token accounts first, then the operation,
// then an optional Jito tip.
package autofill

import (
	"github.com/rs/zerolog"

	"github.com/ninja0404/pump-client-go/pkg/builder"
	"github.com/ninja0404/pump-client-go/pkg/config"
	"github.com/ninja0404/pump-client-go/pkg/pda"
	"github.com/ninja0404/pump-client-go/pkg/state"
)

// Filler is the RPC-driven front door over the pure builders.
type Filler struct {
	ids    config.ProgramIDs
	chain  state.Chain
	reader *state.Reader
	build  *builder.Builder
	derive pda.Deriver
	log    zerolog.Logger
}

// New binds a Filler to a chain reader and a deployment.
func New(chain state.Chain, ids config.ProgramIDs, log zerolog.Logger) *Filler {
	b := builder.New(ids)
	return &Filler{
		ids:    ids,
		chain:  chain,
		reader: state.NewReader(chain, ids, log),
		build:  b,
		derive: b.Deriver(),
		log:    log,
	}
}

// Reader exposes the state reader used for every fetch.
func (f *Filler) Reader() *state.Reader {
	return f.reader
}

// Builder exposes the pure builders.
func (f *Filler) Builder() *builder.Builder {
	return f.build
}

func (f *Filler) logBuilt(op string, n int) *zerolog.Event {
	return f.log.Info().Str("op", op).Int("instructions", n)
}
