package allocation

import "github.com/envelope-zero/budget-engine/internal/budgeterrors"

var (
	ErrAmountNotPositive     = budgeterrors.Validation("the amount must be larger than zero")
	ErrEnvelopeNameNotUnique = budgeterrors.Validation("the name must be unique among active envelopes")
	ErrInsufficientReady     = budgeterrors.InvalidOperation("the amount exceeds the money ready to assign")
	ErrInsufficientAvailable = budgeterrors.InvalidOperation("the amount exceeds the money available in the envelope")
	ErrMoveSameEnvelope      = budgeterrors.InvalidOperation("source and destination envelope must be different")
	ErrPolicyNotImplemented  = budgeterrors.NotImplemented("the auto assign policy is not implemented")
	ErrReorderIncomplete     = budgeterrors.Validation("the order must contain every envelope exactly once")
)
