package types

import (
	"github.com/gagliardetto/solana-go"
)

// ValidatePublicKey validates a public key is not zero.
func ValidatePublicKey(name string, key solana.PublicKey) error {
	if key.IsZero() {
		return NewValidationError(name, "cannot be zero")
	}
	return nil
}

// ValidatePublicKeys validates keys in the given order and reports the first zero one.
func ValidatePublicKeys(names []string, keys ...solana.PublicKey) error {
	for i, key := range keys {
		name := "key"
		if i < len(names) {
			name = names[i]
		}
		if err := ValidatePublicKey(name, key); err != nil {
			return err
		}
	}
	return nil
}

// ValidateString rejects empty strings.
func ValidateString(name, v string) error {
	if v == "" {
		return NewValidationError(name, "cannot be empty")
	}
	return nil
}

// ValidateAmount rejects a zero trade amount. Slippage bounds are not checked here.
func ValidateAmount(name string, v uint64) error {
	if v == 0 {
		return NewValidationError(name, "must be greater than 0")
	}
	return nil
}
