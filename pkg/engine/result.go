package engine

import (
	"time"

	"github.com/envelope-zero/budget-engine/internal/budgeterrors"
	"github.com/envelope-zero/budget-engine/internal/types"
	"github.com/google/uuid"
)

// Month is a calendar month. Budget periods are identified by their month.
type Month = types.Month

// NewMonth returns the month of the year.
func NewMonth(year int, month time.Month) Month {
	return types.NewMonth(year, month)
}

// ParseMonth parses a month in the format YYYY-MM.
func ParseMonth(s string) (Month, error) {
	return types.ParseMonth(s)
}

// Code is the stable category of an Error.
type Code string

const (
	CodeValidation       Code = Code(budgeterrors.KindValidation)       // The request is malformed or out of range
	CodeInvalidOperation Code = Code(budgeterrors.KindInvalidOperation) // The request is not allowed in the current state
	CodeNotImplemented   Code = Code(budgeterrors.KindNotImplemented)   // The feature is not available
	CodeUnexpected       Code = Code(budgeterrors.KindUnexpected)       // Something went wrong inside the engine
)

// Error is an error reported by the engine.
type Error struct {
	Code    Code   `json:"code" example:"INVALID_OPERATION"`
	Message string `json:"message" example:"there is not enough money ready to assign"`
}

func (e Error) Error() string {
	return e.Message
}

// ChangeKind is the kind of resource a Change is about.
type ChangeKind string

const (
	ChangeAllocation  ChangeKind = "ALLOCATION"
	ChangePeriod      ChangeKind = "PERIOD"
	ChangeTransaction ChangeKind = "TRANSACTION"
	ChangeEnvelope    ChangeKind = "ENVELOPE"
	ChangeAccount     ChangeKind = "ACCOUNT"
	ChangeMatchRule   ChangeKind = "MATCH_RULE"
)

// Change records the change of a single field by an operation.
//
// For allocations, ID is the ID of the envelope and Month is set. Values are
// formatted as strings, money as "12.30 EUR". Old is empty for created
// resources, New is empty for deleted ones.
type Change struct {
	Kind  ChangeKind `json:"kind" example:"ALLOCATION"`
	ID    uuid.UUID  `json:"id"`
	Month *Month     `json:"month,omitempty" swaggertype:"primitive,string" example:"2024-05"`
	Field string     `json:"field" example:"allocated"`
	Old   string     `json:"old" example:"50.00 EUR"`
	New   string     `json:"new" example:"100.00 EUR"`
}

// Snapshot is the state of all periods and accounts an operation touched, read
// after the operation completed.
type Snapshot struct {
	Periods  []Period  `json:"periods"`
	Accounts []Account `json:"accounts"`
}

// Result is the result of every mutating operation of the engine.
//
// If Success is false, Errors contains at least one error and nothing was
// persisted. Value, Snapshot and Changes are then zero.
type Result[T any] struct {
	Success  bool     `json:"success"`
	Value    T        `json:"value"`
	Snapshot Snapshot `json:"snapshot"`
	Changes  []Change `json:"changes"`
	Errors   []Error  `json:"errors"`
}

// Err returns the first error of the result or nil.
func (r Result[T]) Err() *Error {
	if len(r.Errors) == 0 {
		return nil
	}

	return &r.Errors[0]
}
