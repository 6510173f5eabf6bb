// Package budgeterrors defines the error kinds the budget engine reports.
package budgeterrors

import (
	"context"
	"errors"

	"github.com/envelope-zero/budget-engine/pkg/money"
)

// Kind classifies an error for callers of the engine.
type Kind string

const (
	KindValidation       Kind = "VALIDATION"        // Malformed or out of range input
	KindInvalidOperation Kind = "INVALID_OPERATION" // Not allowed in the current state
	KindNotImplemented   Kind = "NOT_IMPLEMENTED"   // Intentionally unavailable
	KindUnexpected       Kind = "UNEXPECTED"        // Storage failures and everything unclassified
)

// Error is an error with a Kind.
type Error struct {
	Err  error
	Kind Kind
}

func (e Error) Error() string {
	return e.Err.Error()
}

func (e Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) error {
	return Error{Err: errors.New(msg), Kind: KindValidation}
}

func InvalidOperation(msg string) error {
	return Error{Err: errors.New(msg), Kind: KindInvalidOperation}
}

func NotImplemented(msg string) error {
	return Error{Err: errors.New(msg), Kind: KindNotImplemented}
}

// Wrap attaches a Kind to an existing error.
func Wrap(err error, kind Kind) error {
	if err == nil {
		return nil
	}

	return Error{Err: err, Kind: kind}
}

// KindOf returns the Kind of the first Error in the chain of err.
//
// Invalid money input is a validation error. Errors without a Kind,
// including context cancellation, are unexpected.
func KindOf(err error) Kind {
	var e Error
	if errors.As(err, &e) {
		return e.Kind
	}

	if errors.Is(err, money.ErrCurrencyMismatch) || errors.Is(err, money.ErrInvalidCurrency) || errors.Is(err, money.ErrInvalidAmount) {
		return KindValidation
	}

	return KindUnexpected
}

// Cancelled reports whether err was caused by a cancelled or expired context.
func Cancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
