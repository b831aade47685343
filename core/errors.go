package core

import (
	"errors"
	"fmt"
)

// Code is a stable, ordinal protocol error code. Ordinals are part of the
// wire contract the off-chain crank and front end match on (§7); once
// assigned, a Code's numeric value must never change or be reused.
//
// No available library models ordinal business-error registries (the
// closest analogue, a constant.Err* plus business-error wrapper, is
// Postgres/HTTP specific and pulls in a web-framework error surface this
// protocol doesn't have), so this registry is hand-rolled on top of the
// standard errors/fmt packages rather than grounded on a third-party
// dependency.
type Code uint32

const (
	_ Code = iota

	// 1.. authority
	ErrPaused
	ErrUnauthorized
	ErrInvalidAdmin

	// 2.. lifecycle
	ErrWrongStatus
	ErrRoundExpired
	ErrRoundNotYetExpired
	ErrLockPreconditionsUnmet
	ErrAlreadyClaimed

	// 3.. deposits
	ErrInvalidTicketUnit
	ErrDepositTooSmall
	ErrDepositTooLarge
	ErrRosterFull
	ErrSlippageExceeded

	// 4.. VRF
	ErrVrfNotRequested
	ErrVrfAlreadyDelivered
	ErrInvalidVrfAuthority
	ErrRandomnessOutOfRange

	// 5.. claim
	ErrNotWinner
	ErrInsufficientVault
	ErrFeeArithmeticOverflow

	// 6.. degen
	ErrDegenDisabled
	ErrDegenWrongExecutor
	ErrDegenFallbackNotReady
	ErrDegenAlreadyFinalised
	ErrDegenBalanceCheckFailed

	// 7.. generic
	ErrMathOverflow
	ErrAccountOwnerMismatch
	ErrPdaMismatch
	ErrInvalidDiscriminator
)

var codeNames = map[Code]string{
	ErrPaused:                  "Paused",
	ErrUnauthorized:            "Unauthorized",
	ErrInvalidAdmin:            "InvalidAdmin",
	ErrWrongStatus:             "WrongStatus",
	ErrRoundExpired:            "RoundExpired",
	ErrRoundNotYetExpired:      "RoundNotYetExpired",
	ErrLockPreconditionsUnmet:  "LockPreconditionsUnmet",
	ErrAlreadyClaimed:          "AlreadyClaimed",
	ErrInvalidTicketUnit:       "InvalidTicketUnit",
	ErrDepositTooSmall:         "DepositTooSmall",
	ErrDepositTooLarge:         "DepositTooLarge",
	ErrRosterFull:              "RosterFull",
	ErrSlippageExceeded:        "SlippageExceeded",
	ErrVrfNotRequested:         "VrfNotRequested",
	ErrVrfAlreadyDelivered:     "VrfAlreadyDelivered",
	ErrInvalidVrfAuthority:     "InvalidVrfAuthority",
	ErrRandomnessOutOfRange:    "RandomnessOutOfRange",
	ErrNotWinner:               "NotWinner",
	ErrInsufficientVault:       "InsufficientVault",
	ErrFeeArithmeticOverflow:   "FeeArithmeticOverflow",
	ErrDegenDisabled:           "DegenDisabled",
	ErrDegenWrongExecutor:      "DegenWrongExecutor",
	ErrDegenFallbackNotReady:   "DegenFallbackNotReady",
	ErrDegenAlreadyFinalised:   "DegenAlreadyFinalised",
	ErrDegenBalanceCheckFailed: "DegenBalanceCheckFailed",
	ErrMathOverflow:            "MathOverflow",
	ErrAccountOwnerMismatch:    "AccountOwnerMismatch",
	ErrPdaMismatch:             "PdaMismatch",
	ErrInvalidDiscriminator:    "InvalidDiscriminator",
}

// String returns the stable error name used in wire-facing messages.
func (c Code) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Code(%d)", uint32(c))
}

// ProtocolError is the error type every instruction handler returns on
// failure. It carries the ordinal Code alongside a human-readable detail
// string so logs stay readable while callers can still match on Code.
type ProtocolError struct {
	Code   Code
	Detail string
}

func (e *ProtocolError) Error() string {
	if e.Detail == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// Is supports errors.Is(err, core.Fail(code, "")) comparisons by Code only.
func (e *ProtocolError) Is(target error) bool {
	other, ok := target.(*ProtocolError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// Fail constructs a ProtocolError. Handlers use this instead of errors.New
// so every failure carries its stable ordinal.
func Fail(code Code, format string, args ...any) *ProtocolError {
	return &ProtocolError{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the Code from err if it is (or wraps) a *ProtocolError,
// returning false otherwise.
func CodeOf(err error) (Code, bool) {
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		return 0, false
	}
	return pe.Code, true
}
