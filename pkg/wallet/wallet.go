// Package wallet provides the signers transactions are signed with.
// Signing happens locally or through a caller-supplied function; keys never leave the process otherwise.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gagliardetto/solana-go"

	"github.com/ninja0404/pump-client-go/pkg/types"
)

// Signer produces detached signatures over a serialized transaction message.
type Signer interface {
	PublicKey() solana.PublicKey
	SignMessage(ctx context.Context, message []byte) (solana.Signature, error)
}

// Local holds a private key in memory.
type Local struct {
	key solana.PrivateKey
}

// NewLocalFromKeygen loads a solana-keygen JSON file.
func NewLocalFromKeygen(path string) (Local, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return Local{}, fmt.Errorf("load keypair %s: %w", path, err)
	}
	return Local{key: key}, nil
}

// NewLocalFromBase58 decodes a base58 secret key.
func NewLocalFromBase58(privateKey string) (Local, error) {
	key, err := solana.PrivateKeyFromBase58(strings.TrimSpace(privateKey))
	if err != nil {
		return Local{}, fmt.Errorf("decode base58 key: %w", err)
	}
	return Local{key: key}, nil
}

func NewLocalFromPrivateKey(key solana.PrivateKey) Local {
	return Local{key: key}
}

// Load resolves a signer from either a keygen file path or a base58 secret.
// An empty source yields ErrNilSigner.
func Load(source string) (Local, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return Local{}, types.ErrNilSigner
	}
	if _, err := os.Stat(source); err == nil {
		return NewLocalFromKeygen(source)
	} else if !errors.Is(err, os.ErrNotExist) {
		return Local{}, fmt.Errorf("stat keypair: %w", err)
	}
	return NewLocalFromBase58(source)
}

func (l Local) PublicKey() solana.PublicKey {
	return l.key.PublicKey()
}

// SignMessage signs message unless ctx is already done.
func (l Local) SignMessage(ctx context.Context, message []byte) (solana.Signature, error) {
	if err := ctx.Err(); err != nil {
		return solana.Signature{}, err
	}
	sig, err := l.key.Sign(message)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("sign message: %w", err)
	}
	return sig, nil
}

// SignFunc signs message bytes out of process, e.g. on a hardware wallet or a KMS.
type SignFunc func(ctx context.Context, message []byte) ([]byte, error)

// RemoteSigner delegates signing to a SignFunc.
type RemoteSigner struct {
	pub  solana.PublicKey
	sign SignFunc
}

func NewRemoteSigner(pub solana.PublicKey, fn SignFunc) RemoteSigner {
	return RemoteSigner{pub: pub, sign: fn}
}

func (r RemoteSigner) PublicKey() solana.PublicKey {
	return r.pub
}

// SignMessage calls the remote function and checks the result verifies against the public key.
func (r RemoteSigner) SignMessage(ctx context.Context, message []byte) (solana.Signature, error) {
	if r.sign == nil {
		return solana.Signature{}, types.ErrNilSigner
	}
	raw, err := r.sign(ctx, message)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("remote sign: %w", err)
	}
	if len(raw) != solana.SignatureLength {
		return solana.Signature{}, fmt.Errorf("invalid signature length: got %d", len(raw))
	}
	var sig solana.Signature
	copy(sig[:], raw)
	if !sig.Verify(r.pub, message) {
		return solana.Signature{}, fmt.Errorf("remote signature does not verify for %s", r.pub)
	}
	return sig, nil
}
