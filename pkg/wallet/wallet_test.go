package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/pump-client-go/pkg/types"
)

func TestLoadBase58AndKeygen(t *testing.T) {
	key := solana.NewWallet().PrivateKey

	l, err := Load(key.String())
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey(), l.PublicKey())

	raw := make([]int, len(key))
	for i, b := range key {
		raw[i] = int(b)
	}
	data, err := json.Marshal(raw)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	l, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey(), l.PublicKey())

	_, err = Load("  ")
	assert.ErrorIs(t, err, types.ErrMissingRequiredField)
}

func TestLocalSignatureVerifies(t *testing.T) {
	l := NewLocalFromPrivateKey(solana.NewWallet().PrivateKey)
	msg := []byte("message")

	sig, err := l.SignMessage(context.Background(), msg)
	require.NoError(t, err)
	assert.True(t, sig.Verify(l.PublicKey(), msg))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.SignMessage(ctx, msg)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRemoteSigner(t *testing.T) {
	key := solana.NewWallet().PrivateKey
	msg := []byte("message")

	r := NewRemoteSigner(key.PublicKey(), func(_ context.Context, m []byte) ([]byte, error) {
		sig, err := key.Sign(m)
		return sig[:], err
	})
	sig, err := r.SignMessage(context.Background(), msg)
	require.NoError(t, err)
	assert.True(t, sig.Verify(key.PublicKey(), msg))

	wrongKey := NewRemoteSigner(solana.NewWallet().PublicKey(), r.sign)
	_, err = wrongKey.SignMessage(context.Background(), msg)
	assert.Error(t, err)

	short := NewRemoteSigner(key.PublicKey(), func(context.Context, []byte) ([]byte, error) { return []byte{1}, nil })
	_, err = short.SignMessage(context.Background(), msg)
	assert.Error(t, err)

	failing := NewRemoteSigner(key.PublicKey(), func(context.Context, []byte) ([]byte, error) { return nil, errors.New("hsm offline") })
	_, err = failing.SignMessage(context.Background(), msg)
	assert.ErrorContains(t, err, "hsm offline")

	_, err = RemoteSigner{}.SignMessage(context.Background(), msg)
	assert.ErrorIs(t, err, types.ErrNilSigner)
}
