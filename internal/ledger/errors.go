package ledger

import "github.com/envelope-zero/budget-engine/internal/budgeterrors"

var (
	ErrAmountNotPositive        = budgeterrors.Validation("the amount must be larger than zero")
	ErrAmountZero               = budgeterrors.Validation("the amount must not be zero")
	ErrDateMissing              = budgeterrors.Validation("the date must be set")
	ErrPayeeEmpty               = budgeterrors.Validation("the payee must not be empty")
	ErrEnvelopeAndSplit         = budgeterrors.Validation("a transaction can either be assigned to an envelope or be split, not both")
	ErrSplitLineEnvelopeMissing = budgeterrors.Validation("every split line needs an envelope")
	ErrSplitTotalMismatch       = budgeterrors.InvalidOperation("the split lines must add up to the amount of the transaction")
	ErrTransferSameAccount      = budgeterrors.InvalidOperation("source and destination account of a transfer must be different")
	ErrTransferEnvelope         = budgeterrors.InvalidOperation("transfers cannot be assigned to envelopes or be split")
	ErrTransactionReconciled    = budgeterrors.InvalidOperation("the transaction is reconciled, un-reconcile it first")
)
