package autofill

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gagliardetto/solana-go"

	"github.com/ninja0404/pump-client-go/pkg/jito"
)

// Options configures autofill helpers.
type Options struct {
	Overrides       map[string]solana.PublicKey
	Preview         io.Writer
	TrackVolume     bool
	KnownATAs       []solana.PublicKey // skip the existence check for these
	SkipATACreate   bool               // never prepend ATA creation
	WrapSOL         bool               // fund the WSOL ATA when the quote mint is WSOL (default: true)
	CloseBaseATA    bool               // close base token ATA after sell
	CloseQuoteATA   bool               // close WSOL ATA after sell to unwrap
	JitoTipLamports uint64             // 0 = no tip
	JitoTipAccount  solana.PublicKey   // zero = random from the published list
}

func defaultOptions(opts []Option) *Options {
	o := &Options{TrackVolume: true, WrapSOL: true}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option functional option.
type Option func(*Options)

// WithOverrides replaces derived accounts by field name (Go, lowerCamel or snake_case).
func WithOverrides(m map[string]solana.PublicKey) Option {
	return func(o *Options) { o.Overrides = m }
}

// WithPreview writes the final accounts and args as JSON.
func WithPreview(w io.Writer) Option {
	return func(o *Options) { o.Preview = w }
}

func WithTrackVolume(v bool) Option {
	return func(o *Options) { o.TrackVolume = v }
}

// WithKnownATAs skips the existence check for atas that are known to exist,
// e.g. one created by a buy that has not propagated to the RPC node yet.
func WithKnownATAs(atas ...solana.PublicKey) Option {
	return func(o *Options) { o.KnownATAs = append(o.KnownATAs, atas...) }
}

// WithoutATACreate leaves token account creation to the caller.
func WithoutATACreate() Option {
	return func(o *Options) { o.SkipATACreate = true }
}

// WithoutWrapSOL skips funding the WSOL account; the caller already holds WSOL.
func WithoutWrapSOL() Option {
	return func(o *Options) { o.WrapSOL = false }
}

// WithCloseBaseATA closes the base token ATA after sell.
// The account must be empty afterwards for the close to succeed.
func WithCloseBaseATA() Option {
	return func(o *Options) { o.CloseBaseATA = true }
}

// WithCloseQuoteATA closes the WSOL ATA after sell, unwrapping to native SOL.
func WithCloseQuoteATA() Option {
	return func(o *Options) { o.CloseQuoteATA = true }
}

// WithJitoTip appends a tip transfer as the last instruction.
//
//	autofill.WithJitoTip(1_000_000) // 0.001 SOL
func WithJitoTip(tipLamports uint64) Option {
	return func(o *Options) {
		o.JitoTipLamports = tipLamports
		if o.JitoTipAccount.IsZero() {
			o.JitoTipAccount = jito.GetRandomTipAccountLocal()
		}
	}
}

// WithJitoTipAccount pins the tip account used by WithJitoTip.
func WithJitoTipAccount(account solana.PublicKey) Option {
	return func(o *Options) { o.JitoTipAccount = account }
}

// MergeOverridesFromJSON merges base58 pubkeys from a JSON object into dst.
func MergeOverridesFromJSON(dst map[string]solana.PublicKey, jsonBytes []byte) (map[string]solana.PublicKey, error) {
	if dst == nil {
		dst = make(map[string]solana.PublicKey)
	}
	var m map[string]string
	if err := json.Unmarshal(jsonBytes, &m); err != nil {
		return nil, fmt.Errorf("decode overrides: %w", err)
	}
	for k, v := range m {
		pk, err := solana.PublicKeyFromBase58(v)
		if err != nil {
			return nil, fmt.Errorf("override %s: %w", k, err)
		}
		dst[k] = pk
	}
	return dst, nil
}
