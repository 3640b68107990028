package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"

	"github.com/ninja0404/pump-client-go/pkg/program/pump"
	"github.com/ninja0404/pump-client-go/pkg/program/pumpamm"
)

// Error taxonomy. Errors returned by this module match at least one of these via errors.Is.
var (
	ErrInvalidSeed          = errors.New("invalid seed")
	ErrNoValidAddress       = errors.New("no valid program address")
	ErrAccountNotFound      = errors.New("account not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrStatePrecondition    = errors.New("state precondition failed")
	ErrSubmissionFailed     = errors.New("submission failed")
)

// Parameter errors that predate the taxonomy; they are all missing-field flavours.
var (
	ErrNilRPC         = fmt.Errorf("rpc client is nil: %w", ErrMissingRequiredField)
	ErrNilSigner      = fmt.Errorf("signer is nil: %w", ErrMissingRequiredField)
	ErrNilFeePayer    = fmt.Errorf("fee payer is nil: %w", ErrMissingRequiredField)
	ErrNoInstructions = fmt.Errorf("requires at least one instruction: %w", ErrMissingRequiredField)
)

// AccountKind names the on-chain record a lookup was after.
type AccountKind string

const (
	KindGlobal          AccountKind = "global"
	KindBondingCurve    AccountKind = "bonding_curve"
	KindAmmGlobalConfig AccountKind = "amm_global_config"
	KindPool            AccountKind = "pool"
	KindMint            AccountKind = "mint"
	KindTokenAccount    AccountKind = "token_account"
)

// SeedError reports a seed tuple the derivation rules reject.
type SeedError struct {
	Index  int
	Length int
	Reason string
}

func (e SeedError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid seed: %s", e.Reason)
	}
	return fmt.Sprintf("invalid seed %d (%d bytes): %s", e.Index, e.Length, e.Reason)
}

func (e SeedError) Unwrap() error { return ErrInvalidSeed }

// AccountNotFoundError is returned when an address holds no data.
type AccountNotFoundError struct {
	Kind    AccountKind
	Address solana.PublicKey
}

func (e AccountNotFoundError) Error() string {
	return fmt.Sprintf("%s account %s not found", e.Kind, e.Address)
}

func (e AccountNotFoundError) Unwrap() error { return ErrAccountNotFound }

// NewAccountNotFound builds an AccountNotFoundError.
func NewAccountNotFound(kind AccountKind, addr solana.PublicKey) AccountNotFoundError {
	return AccountNotFoundError{Kind: kind, Address: addr}
}

// StateError reports a dependent account that does not exist yet, or exists in the wrong state.
// It matches both ErrStatePrecondition and, when Err is set, the wrapped cause.
type StateError struct {
	Kind    AccountKind
	Address solana.PublicKey
	Reason  string
	Err     error
}

func (e StateError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Kind, e.Address, e.Reason)
	if e.Address.IsZero() {
		msg = fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e StateError) Is(target error) bool { return target == ErrStatePrecondition }

func (e StateError) Unwrap() error { return e.Err }

// NotYetCreated marks a dependent account as missing.
func NotYetCreated(kind AccountKind, addr solana.PublicKey) StateError {
	return StateError{Kind: kind, Address: addr, Reason: "not yet created", Err: NewAccountNotFound(kind, addr)}
}

// AsPrecondition upgrades an AccountNotFound from a dependent lookup into a StateError.
// Other errors pass through untouched.
func AsPrecondition(err error) error {
	var nf AccountNotFoundError
	if errors.As(err, &nf) {
		return StateError{Kind: nf.Kind, Address: nf.Address, Reason: "not yet created", Err: nf}
	}
	return err
}

// UnauthorizedError reports a failed role check.
type UnauthorizedError struct {
	Role   string
	Caller solana.PublicKey
	Reason string
}

func (e UnauthorizedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unauthorized: %s is not %s (%s)", e.Caller, e.Role, e.Reason)
	}
	return fmt.Sprintf("unauthorized: %s is not %s", e.Caller, e.Role)
}

func (e UnauthorizedError) Unwrap() error { return ErrUnauthorized }

// SubmissionError carries the broadcaster's error verbatim.
type SubmissionError struct {
	Err error
}

func (e SubmissionError) Error() string {
	return fmt.Sprintf("submission failed: %v", e.Err)
}

func (e SubmissionError) Is(target error) bool { return target == ErrSubmissionFailed }

func (e SubmissionError) Unwrap() error { return e.Err }

// RPCError wraps RPC failures with operation context.
type RPCError struct {
	Op  string
	Err error
}

func (e RPCError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e RPCError) Unwrap() error {
	return e.Err
}

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

func (e ValidationError) Unwrap() error { return ErrMissingRequiredField }

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// ProgramError represents on-chain program execution errors.
type ProgramError struct {
	Program string
	Code    int
	Message string
	Logs    []string
}

func (e *ProgramError) Error() string {
	if e.Program == "" {
		return fmt.Sprintf("program error [%d]: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("program %s error [%d]: %s", e.Program, e.Code, e.Message)
}

// SimulationError contains simulation failure details.
type SimulationError struct {
	Err  interface{}
	Logs []string
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("simulation failed: %v", e.Err)
}

// ParsePumpError converts pump program error code to friendly error.
func ParsePumpError(code int) error {
	if err, ok := pump.ErrorFromCode(uint32(code)); ok {
		return &ProgramError{Program: "pump", Code: code, Message: err.Message()}
	}
	return fmt.Errorf("pump error code %d", code)
}

// ParsePumpAmmError converts pump_amm program error code to friendly error.
func ParsePumpAmmError(code int) error {
	if err, ok := pumpamm.ErrorFromCode(uint32(code)); ok {
		return &ProgramError{Program: "pump_amm", Code: code, Message: err.Message()}
	}
	return fmt.Errorf("pump_amm error code %d", code)
}

// ParseSimulationError extracts error details from a simulation result.
// program selects the error table: "pump", "pump_amm", or "" to try both.
func ParseSimulationError(program string, errVal interface{}, logs []string) error {
	if errVal == nil {
		return nil
	}
	errMap, ok := errVal.(map[string]interface{})
	if !ok {
		return &SimulationError{Err: errVal, Logs: logs}
	}
	instErr, ok := errMap["InstructionError"].([]interface{})
	if !ok || len(instErr) < 2 {
		return &SimulationError{Err: errVal, Logs: logs}
	}
	custom, ok := instErr[1].(map[string]interface{})
	if !ok {
		return &SimulationError{Err: errVal, Logs: logs}
	}
	codeNum, ok := custom["Custom"].(float64)
	if !ok {
		return &SimulationError{Err: errVal, Logs: logs}
	}
	code := int(codeNum)
	return &ProgramError{
		Program: program,
		Code:    code,
		Message: describeCode(program, code, accountFromLogs(logs)),
		Logs:    logs,
	}
}

// accountFromLogs extracts the account name from "AnchorError caused by account: xxx." lines.
func accountFromLogs(logs []string) string {
	const marker = "caused by account: "
	for _, line := range logs {
		idx := strings.Index(line, marker)
		if idx < 0 {
			continue
		}
		rest := line[idx+len(marker):]
		if end := strings.Index(rest, "."); end >= 0 {
			return rest[:end]
		}
		return rest
	}
	return ""
}

func describeCode(program string, code int, account string) string {
	// anchor framework codes
	switch code {
	case 2023:
		return "token program constraint violated (wrong token program for mint)"
	case 3008:
		return "program ID was not as expected (wrong program)"
	case 3012:
		if account != "" {
			return fmt.Sprintf("account '%s' not initialized (create the account first)", account)
		}
		return "account not initialized"
	}

	var msg string
	if program != "pump" {
		if e, ok := pumpamm.ErrorFromCode(uint32(code)); ok {
			msg = e.Message()
		}
	}
	if msg == "" && program != "pump_amm" {
		if e, ok := pump.ErrorFromCode(uint32(code)); ok {
			msg = e.Message()
		}
	}
	if msg == "" {
		return fmt.Sprintf("error code %d", code)
	}
	if account != "" {
		return fmt.Sprintf("%s (account: %s)", msg, account)
	}
	return msg
}
