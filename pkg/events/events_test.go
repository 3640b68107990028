package events

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/pump-client-go/pkg/config"
)

var ids = config.DefaultProgramIDs()

func dataLine(program solana.PublicKey, body []byte) string {
	return "Program data: " + base64.StdEncoding.EncodeToString(body) + " " + program.String()
}

func tradeLogs(program solana.PublicKey, tag string, body []byte) []string {
	return []string{
		"Program " + program.String() + " invoke [1]",
		"Program log: Instruction: Buy",
		"Program log: Event: " + tag,
		dataLine(program, body),
		"Program " + program.String() + " success",
	}
}

func TestDecodeExtractsTag(t *testing.T) {
	logs := tradeLogs(ids.Pump, "TradeEvent", []byte{1, 2, 3})

	ev, ok := Decode(logs, ids.Pump)
	require.True(t, ok)
	assert.Equal(t, "TradeEvent", ev.Tag)
	assert.Equal(t, ids.Pump, ev.Program)
	assert.Equal(t, logs[3], ev.Payload)
	assert.Equal(t, []byte{1, 2, 3}, ev.Data())
}

func TestDecodeLowercaseMarker(t *testing.T) {
	logs := []string{"Program log: event: CreatePoolEvent ", dataLine(ids.PumpAmm, nil)}
	ev, ok := Decode(logs, ids.PumpAmm)
	require.True(t, ok)
	assert.Equal(t, "CreatePoolEvent", ev.Tag)
}

func TestDecodeWithoutMarkers(t *testing.T) {
	_, ok := Decode([]string{"Program log: Instruction: Buy", dataLine(ids.Pump, nil)}, ids.Pump)
	assert.False(t, ok, "no event-name line")

	_, ok = Decode([]string{"Program log: Event: TradeEvent", "Program data: AAAA"}, ids.Pump)
	assert.False(t, ok, "data line does not name the program")

	_, ok = Decode(tradeLogs(ids.Pump, "TradeEvent", nil), ids.PumpAmm)
	assert.False(t, ok, "other program")

	_, ok = Decode([]string{"Program log: Event emitted: TradeEvent", dataLine(ids.Pump, nil)}, ids.Pump)
	assert.False(t, ok, "emitted lines are not event names")

	_, ok = Decode(nil, ids.Pump)
	assert.False(t, ok)
}

func TestSortByTimeDescIsStable(t *testing.T) {
	evs := []Event{
		{Tag: "a", BlockTime: 5},
		{Tag: "b", BlockTime: 3},
		{Tag: "c", BlockTime: 3},
		{Tag: "d", BlockTime: 9},
	}
	SortByTimeDesc(evs)

	var got []string
	var times []int64
	for _, ev := range evs {
		got = append(got, ev.Tag)
		times = append(times, ev.BlockTime)
	}
	assert.Equal(t, []int64{9, 5, 3, 3}, times)
	assert.Equal(t, []string{"d", "a", "b", "c"}, got)
}

func TestFilter(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	me := solana.NewWallet().PublicKey()
	body := append(append([]byte{9, 9}, mint.Bytes()...), me.Bytes()...)
	ev, ok := Decode(tradeLogs(ids.Pump, "TradeEvent", body), ids.Pump)
	require.True(t, ok)

	assert.True(t, Filter{}.Match(ev))
	assert.True(t, Filter{Tags: []string{"TradeEvent"}}.Match(ev))
	assert.False(t, Filter{Tags: []string{"CreateEvent"}}.Match(ev))

	assert.True(t, Filter{Reference: mint.String()}.Match(ev))
	assert.True(t, Filter{Reference: ids.Pump.String()}.Match(ev), "text match on the payload line")
	assert.False(t, Filter{Reference: solana.NewWallet().PublicKey().String()}.Match(ev))
	assert.False(t, Filter{Reference: "not-an-address"}.Match(ev))

	assert.True(t, Filter{OnlyMine: true, Caller: me}.Match(ev))
	assert.False(t, Filter{OnlyMine: true, Caller: solana.NewWallet().PublicKey()}.Match(ev))
	assert.False(t, Filter{OnlyMine: true}.Match(ev))

	assert.Len(t, Filter{Tags: []string{"TradeEvent"}}.Apply([]Event{ev, {Tag: "Other"}}), 1)
}

func TestParseSelection(t *testing.T) {
	for in, want := range map[string]Selection{"": SelectAll, "all": SelectAll, "pump": SelectPump, "pumpAmm": SelectAmm, "amm": SelectAmm} {
		got, err := ParseSelection(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseSelection("raydium")
	assert.Error(t, err)

	assert.Equal(t, []solana.PublicKey{ids.Pump, ids.PumpAmm}, SelectAll.Programs(ids))
	assert.Equal(t, []solana.PublicKey{ids.PumpAmm}, SelectAmm.Programs(ids))
	assert.Len(t, SelectAll.EventTypes(), len(PumpEventTypes)+len(AmmEventTypes))
}

type fakeSource struct {
	sigs    map[solana.PublicKey][]*solanarpc.TransactionSignature
	txs     map[solana.Signature][]string
	fail    map[solana.Signature]bool
	limits  []int
}

func (f *fakeSource) GetSignaturesForAddress(_ context.Context, addr solana.PublicKey, limit int) ([]*solanarpc.TransactionSignature, error) {
	f.limits = append(f.limits, limit)
	return f.sigs[addr], nil
}

func (f *fakeSource) GetTransaction(_ context.Context, sig solana.Signature) (*solanarpc.GetTransactionResult, error) {
	if f.fail[sig] {
		return nil, errors.New("node unavailable")
	}
	logs, ok := f.txs[sig]
	if !ok {
		return nil, nil
	}
	return &solanarpc.GetTransactionResult{Meta: &solanarpc.TransactionMeta{LogMessages: logs}}, nil
}

func randomSig() solana.Signature {
	var s solana.Signature
	copy(s[:], solana.NewWallet().PrivateKey)
	return s
}

func sigAt(sig solana.Signature, t int64) *solanarpc.TransactionSignature {
	bt := solana.UnixTimeSeconds(t)
	return &solanarpc.TransactionSignature{Signature: sig, BlockTime: &bt}
}

func TestHistoryFetch(t *testing.T) {
	src := &fakeSource{
		sigs: map[solana.PublicKey][]*solanarpc.TransactionSignature{},
		txs:  map[solana.Signature][]string{},
		fail: map[solana.Signature]bool{},
	}
	pumpOld, pumpNew, ammMid, broken := randomSig(), randomSig(), randomSig(), randomSig()
	src.sigs[ids.Pump] = []*solanarpc.TransactionSignature{sigAt(pumpNew, 300), sigAt(pumpOld, 100), sigAt(broken, 250)}
	src.sigs[ids.PumpAmm] = []*solanarpc.TransactionSignature{sigAt(ammMid, 200)}
	src.txs[pumpOld] = tradeLogs(ids.Pump, "CreateEvent", nil)
	src.txs[pumpNew] = tradeLogs(ids.Pump, "TradeEvent", nil)
	src.txs[ammMid] = tradeLogs(ids.PumpAmm, "BuyEvent", nil)
	src.fail[broken] = true

	h := NewHistory(src, ids, zerolog.Nop())
	evs, err := h.Fetch(context.Background(), Query{Selection: SelectAll})
	require.NoError(t, err)
	require.Len(t, evs, 3)
	assert.Equal(t, []string{"TradeEvent", "BuyEvent", "CreateEvent"}, []string{evs[0].Tag, evs[1].Tag, evs[2].Tag})
	assert.Equal(t, pumpNew, evs[0].Signature)
	assert.Equal(t, int64(300), evs[0].BlockTime)
	assert.Equal(t, []int{50, 50}, src.limits)

	evs, err = h.Fetch(context.Background(), Query{Selection: SelectAmm, Filter: Filter{Tags: []string{"SellEvent"}}})
	require.NoError(t, err)
	assert.Empty(t, evs)
}

func TestHistoryCapsTransactions(t *testing.T) {
	src := &fakeSource{
		sigs: map[solana.PublicKey][]*solanarpc.TransactionSignature{},
		txs:  map[solana.Signature][]string{},
	}
	for i := 0; i < 30; i++ {
		sig := randomSig()
		src.sigs[ids.Pump] = append(src.sigs[ids.Pump], sigAt(sig, int64(i)))
		src.txs[sig] = tradeLogs(ids.Pump, "TradeEvent", nil)
	}

	evs, err := NewHistory(src, ids, zerolog.Nop()).Fetch(context.Background(), Query{Selection: SelectPump})
	require.NoError(t, err)
	require.Len(t, evs, 20)
	assert.Equal(t, int64(29), evs[0].BlockTime)
	assert.Equal(t, int64(10), evs[19].BlockTime)
}
