package controllers

import (
	"time"

	"github.com/envelope-zero/budget-engine/pkg/engine"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Amounts in request bodies are in the budget currency.

type AllocationSet struct {
	Amount decimal.Decimal `json:"amount" example:"150"` // The new allocated amount
}

type AllocationAdd struct {
	Delta decimal.Decimal `json:"delta" example:"-25.50"` // Added to the allocated amount, negative values reduce it
}

type MoveEditable struct {
	FromEnvelopeID uuid.UUID       `json:"fromEnvelopeId" example:"6d8c8b87-2c4d-4d8f-9bd6-a8e1a7c4bd5b"`
	ToEnvelopeID   uuid.UUID       `json:"toEnvelopeId" example:"52b2d1f1-81ef-4b40-a0f2-c2a4bc32e0de"`
	Amount         decimal.Decimal `json:"amount" example:"20"`
}

type AutoAssignEditable struct {
	Policy string `json:"policy" example:"NEAREST_GOAL_DATE"` // NEAREST_GOAL_DATE or SMALLEST_GAP
}

type EnvelopeCreate struct {
	Name       string           `json:"name" example:"Groceries"`
	Group      string           `json:"group" example:"Living"`
	Color      string           `json:"color" example:"#3b82f6"`
	Note       string           `json:"note"`
	Hidden     bool             `json:"hidden"`
	GoalAmount *decimal.Decimal `json:"goalAmount" example:"600"`
	GoalDate   *time.Time       `json:"goalDate" example:"2024-12-01T00:00:00Z"`
}

func (co Controller) envelopeCreate(editable EnvelopeCreate) engine.CreateEnvelopeRequest {
	return engine.CreateEnvelopeRequest{
		Name:       editable.Name,
		Group:      editable.Group,
		Color:      editable.Color,
		Note:       editable.Note,
		Hidden:     editable.Hidden,
		GoalAmount: co.moneyPtr(editable.GoalAmount),
		GoalDate:   editable.GoalDate,
	}
}

// EnvelopeUpdate contains the fields to change. Fields that are not set are not changed.
type EnvelopeUpdate struct {
	Name   *string `json:"name" example:"Groceries"`
	Group  *string `json:"group" example:"Living"`
	Color  *string `json:"color" example:"#3b82f6"`
	Note   *string `json:"note"`
	Hidden *bool   `json:"hidden"`
}

func (u EnvelopeUpdate) request() engine.UpdateEnvelopeRequest {
	return engine.UpdateEnvelopeRequest{
		Name:   u.Name,
		Group:  u.Group,
		Color:  u.Color,
		Note:   u.Note,
		Hidden: u.Hidden,
	}
}

type GoalEditable struct {
	Amount decimal.Decimal `json:"amount" example:"600"`
	Date   *time.Time      `json:"date" example:"2024-12-01T00:00:00Z"`
}

type OrderEditable struct {
	IDs []uuid.UUID `json:"ids"` // All envelope IDs in the new order
}

type AccountCreate struct {
	Name     string `json:"name" example:"Checking"`
	Note     string `json:"note"`
	Currency string `json:"currency" example:"EUR"` // Defaults to the budget currency
}

type AccountUpdate struct {
	Name     *string `json:"name" example:"Checking"`
	Note     *string `json:"note"`
	Archived *bool   `json:"archived"`
}

type SplitLineEditable struct {
	EnvelopeID uuid.UUID       `json:"envelopeId"`
	Amount     decimal.Decimal `json:"amount" example:"12.99"`
}

func (co Controller) splitLines(editable []SplitLineEditable) []engine.SplitLine {
	if editable == nil {
		return nil
	}

	lines := make([]engine.SplitLine, 0, len(editable))
	for _, l := range editable {
		lines = append(lines, engine.SplitLine{EnvelopeID: l.EnvelopeID, Amount: co.money(l.Amount)})
	}

	return lines
}

// TransactionCreate is an inflow or outflow. The amount is positive, the direction is given by the endpoint.
type TransactionCreate struct {
	AccountID  uuid.UUID           `json:"accountId"`
	Date       time.Time           `json:"date" example:"2024-05-03T00:00:00Z"`
	Amount     decimal.Decimal     `json:"amount" example:"42.10"`
	Payee      string              `json:"payee" example:"Farmers market"`
	Memo       string              `json:"memo"`
	EnvelopeID *uuid.UUID          `json:"envelopeId"`
	SplitLines []SplitLineEditable `json:"splitLines"`
	Cleared    bool                `json:"cleared"`
}

func (co Controller) transactionCreate(editable TransactionCreate) engine.TransactionRequest {
	return engine.TransactionRequest{
		AccountID:  editable.AccountID,
		Date:       editable.Date,
		Amount:     co.money(editable.Amount),
		Payee:      editable.Payee,
		Memo:       editable.Memo,
		EnvelopeID: editable.EnvelopeID,
		SplitLines: co.splitLines(editable.SplitLines),
		Cleared:    editable.Cleared,
	}
}

type TransferCreate struct {
	FromAccountID uuid.UUID       `json:"fromAccountId"`
	ToAccountID   uuid.UUID       `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount" example:"250"`
	Date          time.Time       `json:"date" example:"2024-05-03T00:00:00Z"`
	Memo          string          `json:"memo"`
}

// TransactionUpdate contains the fields to change. The amount is signed, the nil
// UUID as envelope ID unassigns the transaction and an empty list of split lines
// removes the split.
type TransactionUpdate struct {
	Date       *time.Time           `json:"date" example:"2024-05-03T00:00:00Z"`
	Amount     *decimal.Decimal     `json:"amount" example:"-42.10"`
	Payee      *string              `json:"payee" example:"Farmers market"`
	Memo       *string              `json:"memo"`
	EnvelopeID *uuid.UUID           `json:"envelopeId"`
	SplitLines *[]SplitLineEditable `json:"splitLines"`
}

func (co Controller) transactionUpdate(u TransactionUpdate) engine.UpdateTransactionRequest {
	r := engine.UpdateTransactionRequest{
		Date:       u.Date,
		Amount:     co.moneyPtr(u.Amount),
		Payee:      u.Payee,
		Memo:       u.Memo,
		EnvelopeID: u.EnvelopeID,
	}

	if u.SplitLines != nil {
		lines := co.splitLines(*u.SplitLines)
		if lines == nil {
			lines = []engine.SplitLine{}
		}
		r.SplitLines = &lines
	}

	return r
}

type MatchRuleEditable struct {
	Pattern    string    `json:"pattern" example:"*REWE*"` // Glob pattern matched against the payee
	EnvelopeID uuid.UUID `json:"envelopeId"`
	Priority   uint      `json:"priority" example:"1"` // Lower priorities are matched first
}

type MatchRuleUpdate struct {
	Pattern    *string    `json:"pattern" example:"*REWE*"`
	EnvelopeID *uuid.UUID `json:"envelopeId"`
	Priority   *uint      `json:"priority" example:"1"`
}

type ReconcileEditable struct {
	Balance decimal.Decimal `json:"balance" example:"1204.37"` // Ending balance of the statement
	Date    time.Time       `json:"date" example:"2024-05-31T00:00:00Z"`
	Cleared []uuid.UUID     `json:"cleared"` // Transactions ticked off on the statement
	Adjust  bool            `json:"adjust"`  // Create an adjustment transaction for the difference
}
