package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomy(t *testing.T) {
	addr := solana.NewWallet().PublicKey()

	assert.ErrorIs(t, SeedError{Index: 1, Length: 40, Reason: "too long"}, ErrInvalidSeed)
	assert.ErrorIs(t, NewAccountNotFound(KindPool, addr), ErrAccountNotFound)
	assert.ErrorIs(t, UnauthorizedError{Role: "amm admin", Caller: addr}, ErrUnauthorized)
	assert.ErrorIs(t, NewValidationError("user", "is required"), ErrMissingRequiredField)
	assert.ErrorIs(t, ErrNilSigner, ErrMissingRequiredField)
	assert.ErrorIs(t, ErrNoInstructions, ErrMissingRequiredField)

	cause := errors.New("blockhash not found")
	sub := SubmissionError{Err: cause}
	assert.ErrorIs(t, sub, ErrSubmissionFailed)
	assert.ErrorIs(t, sub, cause)
}

func TestNotYetCreatedWrapsNotFound(t *testing.T) {
	addr := solana.NewWallet().PublicKey()
	err := fmt.Errorf("build: %w", NotYetCreated(KindBondingCurve, addr))

	assert.ErrorIs(t, err, ErrStatePrecondition)
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Contains(t, err.Error(), "not yet created")

	plain := StateError{Kind: KindPool, Address: addr, Reason: "sell is disabled"}
	assert.ErrorIs(t, plain, ErrStatePrecondition)
	assert.NotErrorIs(t, plain, ErrAccountNotFound)
}

func TestAsPrecondition(t *testing.T) {
	addr := solana.NewWallet().PublicKey()
	err := AsPrecondition(fmt.Errorf("fetch: %w", NewAccountNotFound(KindGlobal, addr)))
	assert.ErrorIs(t, err, ErrStatePrecondition)

	var se StateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindGlobal, se.Kind)
	assert.Equal(t, addr, se.Address)

	other := errors.New("timeout")
	assert.Equal(t, other, AsPrecondition(other))
	assert.Nil(t, AsPrecondition(nil))
}

func TestParseSimulationError(t *testing.T) {
	assert.Nil(t, ParseSimulationError("pump", nil, nil))

	errVal := map[string]interface{}{
		"InstructionError": []interface{}{float64(2), map[string]interface{}{"Custom": float64(3012)}},
	}
	logs := []string{"Program log: AnchorError caused by account: pool_base_token_account. Error Code: AccountNotInitialized."}
	err := ParseSimulationError("pump_amm", errVal, logs)

	var pe *ProgramError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3012, pe.Code)
	assert.Contains(t, pe.Message, "pool_base_token_account")

	var se *SimulationError
	assert.ErrorAs(t, ParseSimulationError("", "InsufficientFundsForRent", nil), &se)
}

func TestValidation(t *testing.T) {
	assert.ErrorIs(t, ValidatePublicKey("mint", solana.PublicKey{}), ErrMissingRequiredField)
	assert.NoError(t, ValidatePublicKey("mint", solana.NewWallet().PublicKey()))
	assert.ErrorIs(t, ValidateAmount("amount", 0), ErrMissingRequiredField)
	assert.ErrorIs(t, ValidateString("name", ""), ErrMissingRequiredField)

	err := ValidatePublicKeys([]string{"user", "pool"}, solana.NewWallet().PublicKey(), solana.PublicKey{})
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "pool", ve.Field)
}
