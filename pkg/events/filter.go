package events

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"github.com/ninja0404/pump-client-go/pkg/config"
)

// Selection picks which programs a history query reads.
type Selection string

const (
	SelectAll  Selection = "all"
	SelectPump Selection = "pump"
	SelectAmm  Selection = "amm"
)

// ParseSelection accepts "all", "pump", "amm" and the frontend's "pumpAmm". Empty means all.
func ParseSelection(s string) (Selection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return SelectAll, nil
	case "pump":
		return SelectPump, nil
	case "amm", "pumpamm", "pump_amm":
		return SelectAmm, nil
	}
	return "", fmt.Errorf("unknown program selection %q", s)
}

// Programs resolves the selection against a deployment, pump first.
func (s Selection) Programs(ids config.ProgramIDs) []solana.PublicKey {
	switch s {
	case SelectPump:
		return []solana.PublicKey{ids.Pump}
	case SelectAmm:
		return []solana.PublicKey{ids.PumpAmm}
	default:
		return []solana.PublicKey{ids.Pump, ids.PumpAmm}
	}
}

// EventTypes lists the event names the selected programs publish.
func (s Selection) EventTypes() []string {
	switch s {
	case SelectPump:
		return PumpEventTypes
	case SelectAmm:
		return AmmEventTypes
	default:
		return append(append([]string{}, PumpEventTypes...), AmmEventTypes...)
	}
}

// Filter narrows decoded events. Zero values match everything.
type Filter struct {
	Tags      []string // allowlist
	Reference string   // e.g. a mint address
	OnlyMine  bool
	Caller    solana.PublicKey
}

// Match reports whether ev passes every configured condition.
func (f Filter) Match(ev Event) bool {
	if len(f.Tags) > 0 && !contains(f.Tags, ev.Tag) {
		return false
	}
	if f.Reference != "" && !mentions(ev, f.Reference) {
		return false
	}
	if f.OnlyMine && (f.Caller.IsZero() || !mentions(ev, f.Caller.String())) {
		return false
	}
	return true
}

// Apply keeps the matching events in order.
func (f Filter) Apply(evs []Event) []Event {
	out := make([]Event, 0, len(evs))
	for _, ev := range evs {
		if f.Match(ev) {
			out = append(out, ev)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// mentions looks for ref as text in the payload line, then, when ref is a base58 address,
// for its raw 32 bytes inside the decoded body.
func mentions(ev Event, ref string) bool {
	if strings.Contains(ev.Payload, ref) {
		return true
	}
	raw, err := base58.Decode(ref)
	if err != nil || len(raw) != solana.PublicKeyLength {
		return false
	}
	data := ev.Data()
	return data != nil && bytes.Contains(data, raw)
}
