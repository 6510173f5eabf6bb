package models

import (
	"errors"

	"github.com/envelope-zero/budget-engine/internal/budgeterrors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = budgeterrors.Validation("the resource could not be found")
)

var (
	ErrAccountNameNotUnique  = budgeterrors.Validation("the account name must be unique")
	ErrAccountNameEmpty      = budgeterrors.Validation("the account name must not be empty")
	ErrEnvelopeNameEmpty     = budgeterrors.Validation("the envelope name must not be empty")
	ErrAllocationNegative    = budgeterrors.Validation("the allocated amount of an envelope must not be negative")
	ErrAllocationNotUnique   = budgeterrors.InvalidOperation("there can only be one allocation per envelope and budget period")
	ErrPeriodNotUnique       = budgeterrors.InvalidOperation("there can only be one budget period per month")
	ErrGoalAmountNotPositive = budgeterrors.Validation("goal amounts must be larger than zero")
	ErrSplitLineNotPositive  = budgeterrors.Validation("split line amounts must be larger than zero")
	ErrMatchRulePatternEmpty = budgeterrors.Validation("the pattern of a match rule must not be empty")
	ErrPeriodClosed          = budgeterrors.InvalidOperation("the budget period is closed")
	ErrEnvelopeArchived      = budgeterrors.InvalidOperation("the envelope is archived")
)
