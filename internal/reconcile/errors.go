package reconcile

import "github.com/envelope-zero/budget-engine/internal/budgeterrors"

var (
	ErrStatementDateMissing    = budgeterrors.Validation("the statement date must be set")
	ErrTransactionWrongAccount = budgeterrors.Validation("the transaction belongs to a different account")
	ErrTransactionAfterDate    = budgeterrors.Validation("the transaction is dated after the statement date")
	ErrUnbalanced              = budgeterrors.InvalidOperation("the cleared balance does not match the statement balance")
)
