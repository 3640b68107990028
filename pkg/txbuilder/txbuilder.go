package txbuilder

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"

	wraprpc "github.com/ninja0404/pump-client-go/pkg/rpc"
	"github.com/ninja0404/pump-client-go/pkg/types"
	"github.com/ninja0404/pump-client-go/pkg/wallet"
)

// ConfirmationLevel represents transaction confirmation depth.
type ConfirmationLevel string

const (
	ConfirmationProcessed ConfirmationLevel = "processed"
	ConfirmationConfirmed ConfirmationLevel = "confirmed"
	ConfirmationFinalized ConfirmationLevel = "finalized"
)

// Broadcaster submits a signed transaction. Implementations must not retry.
type Broadcaster interface {
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// Chain is the read side a Builder needs.
type Chain interface {
	GetLatestBlockhash(ctx context.Context) (*solanarpc.GetLatestBlockhashResult, error)
	GetSignatureStatus(ctx context.Context, sig solana.Signature) (*solanarpc.SignatureStatusesResult, error)
}

// RPCBroadcaster submits through the regular sendTransaction endpoint.
type RPCBroadcaster struct {
	client *wraprpc.Client
	opts   solanarpc.TransactionOpts
}

// NewRPCBroadcaster builds a broadcaster with the given preflight settings.
func NewRPCBroadcaster(client *wraprpc.Client, skipPreflight bool, commitment solanarpc.CommitmentType) *RPCBroadcaster {
	if commitment == "" {
		commitment = solanarpc.CommitmentConfirmed
	}
	return &RPCBroadcaster{
		client: client,
		opts: solanarpc.TransactionOpts{
			SkipPreflight:       skipPreflight,
			PreflightCommitment: commitment,
		},
	}
}

func (r *RPCBroadcaster) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if r.client == nil {
		return solana.Signature{}, types.ErrNilRPC
	}
	return r.client.SendTransaction(ctx, tx, r.opts)
}

// Builder ties together blockhash lookup, signing, and submission.
type Builder struct {
	chain       Chain
	broadcaster Broadcaster
	log         zerolog.Logger
}

// NewBuilder constructs a builder. A nil broadcaster leaves the builder read-only: Send fails.
func NewBuilder(chain Chain, broadcaster Broadcaster) *Builder {
	return &Builder{chain: chain, broadcaster: broadcaster, log: zerolog.Nop()}
}

// WithLogger attaches a logger.
func (b *Builder) WithLogger(log zerolog.Logger) *Builder {
	b.log = log
	return b
}

// WithBroadcaster swaps the submission path, e.g. RPC for Jito.
func (b *Builder) WithBroadcaster(broadcaster Broadcaster) *Builder {
	b.broadcaster = broadcaster
	return b
}

// Assemble packs instructions into one transaction in the given order.
// Nothing is added, dropped or reordered.
func Assemble(feePayer solana.PublicKey, blockhash solana.Hash, instructions ...solana.Instruction) (*solana.Transaction, error) {
	if feePayer.IsZero() {
		return nil, types.ErrNilFeePayer
	}
	if len(instructions) == 0 {
		return nil, types.ErrNoInstructions
	}

	builder := solana.NewTransactionBuilder().
		SetRecentBlockHash(blockhash).
		SetFeePayer(feePayer)
	for _, ix := range instructions {
		builder.AddInstruction(ix)
	}

	tx, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build transaction: %w", err)
	}
	return tx, nil
}

// BuildTransaction assembles with a fresh blockhash.
func (b *Builder) BuildTransaction(ctx context.Context, feePayer solana.PublicKey, instructions ...solana.Instruction) (*solana.Transaction, error) {
	if b.chain == nil {
		return nil, types.ErrNilRPC
	}
	if len(instructions) == 0 {
		return nil, types.ErrNoInstructions
	}

	latest, err := b.chain.GetLatestBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("get latest blockhash: %w", err)
	}
	return Assemble(feePayer, latest.Value.Blockhash, instructions...)
}

// SignTransaction signs using the provided signers in account-key order.
func SignTransaction(ctx context.Context, tx *solana.Transaction, signers ...wallet.Signer) error {
	if tx == nil {
		return fmt.Errorf("transaction is nil")
	}
	required := int(tx.Message.Header.NumRequiredSignatures)
	if required == 0 {
		return nil
	}
	if len(tx.Message.AccountKeys) < required {
		return fmt.Errorf("not enough account keys for required signatures")
	}

	signerMap := make(map[solana.PublicKey]wallet.Signer, len(signers))
	for _, s := range signers {
		if s == nil {
			return types.ErrNilSigner
		}
		signerMap[s.PublicKey()] = s
	}

	messageBytes, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	tx.Signatures = make([]solana.Signature, required)
	for i := 0; i < required; i++ {
		pk := tx.Message.AccountKeys[i]
		signer, ok := signerMap[pk]
		if !ok {
			return fmt.Errorf("missing signer for %s: %w", pk, types.ErrMissingRequiredField)
		}
		sig, err := signer.SignMessage(ctx, messageBytes)
		if err != nil {
			return fmt.Errorf("sign message for %s: %w", pk, err)
		}
		tx.Signatures[i] = sig
	}
	return nil
}

// Send submits a signed transaction exactly once.
// Any broadcaster error comes back as a SubmissionError carrying it unchanged.
func (b *Builder) Send(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if b.broadcaster == nil {
		return solana.Signature{}, types.SubmissionError{Err: fmt.Errorf("no broadcaster configured")}
	}
	sig, err := b.broadcaster.SendTransaction(ctx, tx)
	if err != nil {
		b.log.Warn().Err(err).Msg("submission failed")
		return solana.Signature{}, types.SubmissionError{Err: err}
	}
	b.log.Info().Str("signature", sig.String()).Msg("transaction submitted")
	return sig, nil
}

// BuildSignSend builds, signs, and sends a transaction.
func (b *Builder) BuildSignSend(ctx context.Context, feePayer wallet.Signer, signers []wallet.Signer, instructions ...solana.Instruction) (solana.Signature, error) {
	if feePayer == nil {
		return solana.Signature{}, types.ErrNilFeePayer
	}
	tx, err := b.BuildTransaction(ctx, feePayer.PublicKey(), instructions...)
	if err != nil {
		return solana.Signature{}, err
	}
	allSigners := append([]wallet.Signer{feePayer}, signers...)
	if err := SignTransaction(ctx, tx, allSigners...); err != nil {
		return solana.Signature{}, err
	}
	return b.Send(ctx, tx)
}

// SendAndConfirm sends a signed transaction and waits for confirmation over RPC.
func (b *Builder) SendAndConfirm(ctx context.Context, tx *solana.Transaction, level ConfirmationLevel) (solana.Signature, error) {
	sig, err := b.Send(ctx, tx)
	if err != nil {
		return solana.Signature{}, err
	}
	if err = b.WaitForConfirmation(ctx, sig, level); err != nil {
		return sig, fmt.Errorf("confirmation failed: %w, sig: %v", err, sig)
	}
	return sig, nil
}

// WaitForConfirmation polls transaction status until the level is reached or ctx ends.
func (b *Builder) WaitForConfirmation(ctx context.Context, sig solana.Signature, level ConfirmationLevel) error {
	if b.chain == nil {
		return types.ErrNilRPC
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			status, err := b.chain.GetSignatureStatus(ctx, sig)
			if err != nil || status == nil {
				continue // 查不到就继续轮询
			}
			if status.Err != nil {
				return fmt.Errorf("transaction failed: %v", status.Err)
			}
			if reached(status.ConfirmationStatus, level) {
				return nil
			}
		}
	}
}

func reached(status solanarpc.ConfirmationStatusType, level ConfirmationLevel) bool {
	switch level {
	case ConfirmationConfirmed:
		return status == solanarpc.ConfirmationStatusConfirmed || status == solanarpc.ConfirmationStatusFinalized
	case ConfirmationFinalized:
		return status == solanarpc.ConfirmationStatusFinalized
	default:
		return true
	}
}
