package importer

import "github.com/envelope-zero/budget-engine/internal/budgeterrors"

var (
	ErrUnreadable   = budgeterrors.Validation("the input could not be read as CSV")
	ErrInputMissing = budgeterrors.Validation("no CSV input was provided")
)
