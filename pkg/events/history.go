package events

import (
	"context"
	"sort"
	"sync"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ninja0404/pump-client-go/pkg/config"
	"github.com/ninja0404/pump-client-go/pkg/constants"
)

// Source is the read capability history needs; *rpc.Client satisfies it.
type Source interface {
	GetSignaturesForAddress(ctx context.Context, addr solana.PublicKey, limit int) ([]*solanarpc.TransactionSignature, error)
	GetTransaction(ctx context.Context, sig solana.Signature) (*solanarpc.GetTransactionResult, error)
}

// Query selects programs and filters for one history read.
type Query struct {
	Selection Selection
	Filter    Filter
}

// History reads recent program transactions and decodes their events.
type History struct {
	src            Source
	ids            config.ProgramIDs
	log            zerolog.Logger
	signatureLimit int
	maxTxs         int
	concurrency    int
}

func NewHistory(src Source, ids config.ProgramIDs, log zerolog.Logger) *History {
	return &History{
		src:            src,
		ids:            ids,
		log:            log,
		signatureLimit: constants.HistorySignatureLimit,
		maxTxs:         constants.HistoryMaxTransactions,
		concurrency:    constants.HistoryFetchConcurrency,
	}
}

type candidate struct {
	program   solana.PublicKey
	signature solana.Signature
	blockTime int64
}

// Fetch reads one page of signatures per selected program, keeps the newest maxTxs,
// and decodes them. A transaction that cannot be fetched is logged and skipped.
// There is no pagination beyond the first page.
func (h *History) Fetch(ctx context.Context, q Query) ([]Event, error) {
	programs := q.Selection.Programs(h.ids)

	var cands []candidate
	for _, program := range programs {
		sigs, err := h.src.GetSignaturesForAddress(ctx, program, h.signatureLimit)
		if err != nil {
			return nil, err
		}
		for _, s := range sigs {
			if s == nil {
				continue
			}
			c := candidate{program: program, signature: s.Signature}
			if s.BlockTime != nil {
				c.blockTime = int64(*s.BlockTime)
			}
			cands = append(cands, c)
		}
	}
	sortCandidates(cands)
	if len(cands) > h.maxTxs {
		cands = cands[:h.maxTxs]
	}

	decoded := make([]*Event, len(cands))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)
	var mu sync.Mutex
	skipped := 0
	for i, c := range cands {
		g.Go(func() error {
			tx, err := h.src.GetTransaction(gctx, c.signature)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				h.log.Warn().Err(err).Str("signature", c.signature.String()).Msg("skip transaction")
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}
			if tx == nil || tx.Meta == nil {
				return nil
			}
			ev, ok := Decode(tx.Meta.LogMessages, c.program)
			if !ok {
				return nil
			}
			ev.Signature = c.signature
			ev.BlockTime = c.blockTime
			decoded[i] = &ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Event, 0, len(decoded))
	for _, ev := range decoded {
		if ev != nil && q.Filter.Match(*ev) {
			out = append(out, *ev)
		}
	}
	SortByTimeDesc(out)
	h.log.Debug().Int("candidates", len(cands)).Int("skipped", skipped).Int("events", len(out)).Msg("history fetched")
	return out, nil
}

func sortCandidates(cs []candidate) {
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].blockTime > cs[j].blockTime })
}
