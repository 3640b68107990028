package autofill

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/ninja0404/pump-client-go/pkg/types"
)

// applyPubkeyOverrides sets exported PublicKey fields from m and reports whether anything changed.
func applyPubkeyOverrides(target interface{}, m map[string]solana.PublicKey) bool {
	if len(m) == 0 {
		return false
	}
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return false
	}
	val = val.Elem()
	pkType := reflect.TypeOf(solana.PublicKey{})
	changed := false
	t := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Type != pkType {
			continue
		}
		key := pickKey(field.Name, m)
		if key == "" {
			continue
		}
		val.Field(i).Set(reflect.ValueOf(m[key]))
		changed = true
	}
	return changed
}

func pickKey(name string, m map[string]solana.PublicKey) string {
	for _, k := range []string{name, lowerCamel(name), snake(name)} {
		if _, ok := m[k]; ok {
			return k
		}
	}
	return ""
}

func lowerCamel(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func snake(name string) string {
	var parts []string
	cur := ""
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			parts = append(parts, strings.ToLower(cur))
			cur = string(r)
		} else {
			cur += string(r)
		}
	}
	if cur != "" {
		parts = append(parts, strings.ToLower(cur))
	}
	return strings.Join(parts, "_")
}

// ataRequest is one token account the transaction expects to exist.
type ataRequest struct {
	Owner        solana.PublicKey
	Mint         solana.PublicKey
	TokenProgram solana.PublicKey
}

// ensureATAs returns create-idempotent instructions for every requested ATA that is missing.
// Existence is checked in one batch read.
func (f *Filler) ensureATAs(ctx context.Context, payer solana.PublicKey, o *Options, requests ...ataRequest) ([]solana.Instruction, error) {
	if o.SkipATACreate || len(requests) == 0 {
		return nil, nil
	}
	known := make(map[solana.PublicKey]bool, len(o.KnownATAs))
	for _, pk := range o.KnownATAs {
		known[pk] = true
	}

	addrs := make([]solana.PublicKey, 0, len(requests))
	pending := make([]ataRequest, 0, len(requests))
	seen := make(map[solana.PublicKey]bool, len(requests))
	for _, req := range requests {
		ata, err := f.derive.ATA(req.Owner, req.Mint, req.TokenProgram)
		if err != nil {
			return nil, err
		}
		if known[ata] || seen[ata] {
			continue
		}
		seen[ata] = true
		addrs = append(addrs, ata)
		pending = append(pending, req)
	}
	if len(addrs) == 0 {
		return nil, nil
	}

	exists, err := f.reader.ExistingAccounts(ctx, addrs...)
	if err != nil {
		return nil, err
	}
	var out []solana.Instruction
	for i, req := range pending {
		if exists[addrs[i]] {
			continue
		}
		out = append(out, f.createATAIdempotent(payer, addrs[i], req))
	}
	return out, nil
}

// createATAIdempotent builds CreateIdempotent by hand; the packaged builder assumes the legacy token program.
func (f *Filler) createATAIdempotent(payer, ata solana.PublicKey, req ataRequest) solana.Instruction {
	metas := []*solana.AccountMeta{
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(ata, true, false),
		solana.NewAccountMeta(req.Owner, false, false),
		solana.NewAccountMeta(req.Mint, false, false),
		solana.NewAccountMeta(f.ids.System, false, false),
		solana.NewAccountMeta(req.TokenProgram, false, false),
	}
	return solana.NewInstruction(f.ids.AssociatedToken, metas, []byte{1})
}

// TokenBalance returns the amount held in owner's ATA for mint, 0 when the account is missing.
func (f *Filler) TokenBalance(ctx context.Context, owner, mint solana.PublicKey) (uint64, error) {
	program, err := f.reader.MintTokenProgram(ctx, mint)
	if err != nil {
		return 0, err
	}
	ata, err := f.derive.ATA(owner, mint, program)
	if err != nil {
		return 0, err
	}
	accs, err := f.chain.GetMultipleAccounts(ctx, ata)
	if err != nil {
		return 0, err
	}
	if len(accs) == 0 || accs[0] == nil || accs[0].Data == nil {
		return 0, nil
	}
	return decodeTokenAmount(accs[0].Data.GetBinary())
}

// decodeTokenAmount reads the amount of an SPL token account.
// Token-2022 accounts share the same leading layout.
func decodeTokenAmount(data []byte) (uint64, error) {
	var acc token.Account
	if err := bin.NewBinDecoder(data).Decode(&acc); err != nil {
		return 0, types.RPCError{Op: "decode token account", Err: err}
	}
	return acc.Amount, nil
}

// buildWrapWSOL funds a WSOL ATA and syncs its balance.
func buildWrapWSOL(payer, wsolATA solana.PublicKey, lamports uint64) []solana.Instruction {
	if lamports == 0 {
		return nil
	}
	return []solana.Instruction{
		system.NewTransferInstruction(lamports, payer, wsolATA).Build(),
		token.NewSyncNativeInstruction(wsolATA).Build(),
	}
}

// buildCloseAccount constructs CloseAccount for either token program.
func buildCloseAccount(account, destination, owner, tokenProgram solana.PublicKey) solana.Instruction {
	data := []byte{9}
	metas := []*solana.AccountMeta{
		solana.NewAccountMeta(account, true, false),
		solana.NewAccountMeta(destination, true, false),
		solana.NewAccountMeta(owner, false, true),
	}
	return solana.NewInstruction(tokenProgram, metas, data)
}

func appendJitoTip(instrs []solana.Instruction, payer solana.PublicKey, o *Options) []solana.Instruction {
	if o.JitoTipLamports == 0 || o.JitoTipAccount.IsZero() {
		return instrs
	}
	return append(instrs, system.NewTransferInstruction(o.JitoTipLamports, payer, o.JitoTipAccount).Build())
}

func writePreview(o *Options, accounts, args interface{}) {
	if o.Preview == nil {
		return
	}
	_ = json.NewEncoder(o.Preview).Encode(struct {
		Accounts interface{} `json:"accounts"`
		Args     interface{} `json:"args,omitempty"`
	}{accounts, args})
}

func errorsIsNotFound(err error) bool {
	return err != nil && errors.Is(err, types.ErrAccountNotFound)
}
