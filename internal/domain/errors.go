package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrUnknownParty     = errors.New("unknown party")
	ErrAlreadyReleased  = errors.New("escrow already released")
	ErrDisputePending   = errors.New("dispute pending on escrow")
	ErrDisputeExists    = errors.New("escrow already disputed")
	ErrRetriesExhausted = errors.New("release retry budget exhausted")
	ErrHoldingPeriod    = errors.New("holding period not elapsed")
)

// GatewayError wraps a payment gateway failure with the operation that
// failed (authorize, capture, transfer) so callers and the audit log can
// tell which leg rejected.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// IsPrecondition reports whether err is a no-mutation rejection of a
// release or dispute attempt.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrAlreadyReleased) ||
		errors.Is(err, ErrDisputePending) ||
		errors.Is(err, ErrDisputeExists) ||
		errors.Is(err, ErrRetriesExhausted) ||
		errors.Is(err, ErrHoldingPeriod)
}
