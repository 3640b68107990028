// Package events recovers protocol events from transaction log text.
//
// Each transaction is decoded on its own. Payloads stay opaque: an Event carries the raw
// "Program data:" line and leaves schema-aware decoding to the caller.
package events

import (
	"encoding/base64"
	"sort"
	"strings"

	"github.com/gagliardetto/solana-go"
)

const (
	dataMarker     = "Program data:"
	eventMarker    = "Program log: Event:"
	eventMarkerLow = "Program log: event:"
	emittedMarker  = "Event emitted"
)

// Event names published by each program.
var (
	PumpEventTypes = []string{
		"TradeEvent",
		"CreateEvent",
		"CollectCreatorFeeEvent",
		"CompleteEvent",
		"CompletePumpAmmMigrationEvent",
		"SetCreatorEvent",
		"SetParamsEvent",
		"UpdateGlobalAuthorityEvent",
	}
	AmmEventTypes = []string{
		"BuyEvent",
		"SellEvent",
		"DepositEvent",
		"WithdrawEvent",
		"CreatePoolEvent",
		"CollectCoinCreatorFeeEvent",
		"UpdateAdminEvent",
		"UpdateFeeConfigEvent",
		"DisableEvent",
	}
)

// Event is one decoded log event. BlockTime is 0 when the node did not report one.
type Event struct {
	Tag       string           `json:"tag"`
	Program   solana.PublicKey `json:"program"`
	Signature solana.Signature `json:"signature"`
	BlockTime int64            `json:"block_time"`
	Payload   string           `json:"payload"`
}

// Decode scans one transaction's logs for an event emitted by program.
// ok is false when the program marker, the event-name line or the data line is missing.
func Decode(logs []string, program solana.PublicKey) (ev Event, ok bool) {
	id := program.String()
	payload := ""
	for _, line := range logs {
		if strings.Contains(line, dataMarker) && strings.Contains(line, id) {
			payload = line
			break
		}
	}
	if payload == "" {
		return Event{}, false
	}

	tag := ""
	for _, line := range logs {
		if (strings.Contains(line, eventMarker) || strings.Contains(line, eventMarkerLow)) && !strings.Contains(line, emittedMarker) {
			tag = strings.TrimSpace(line[strings.LastIndex(line, ":")+1:])
			break
		}
	}
	if tag == "" {
		return Event{}, false
	}
	return Event{Tag: tag, Program: program, Payload: payload}, true
}

// Data returns the base64-decoded body of the payload line, nil when it is not base64.
func (e Event) Data() []byte {
	idx := strings.Index(e.Payload, dataMarker)
	if idx < 0 {
		return nil
	}
	fields := strings.Fields(e.Payload[idx+len(dataMarker):])
	if len(fields) == 0 {
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(fields[0])
	if err != nil {
		return nil
	}
	return raw
}

// SortByTimeDesc orders events newest first. Equal times keep their input order.
func SortByTimeDesc(evs []Event) {
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].BlockTime > evs[j].BlockTime })
}
