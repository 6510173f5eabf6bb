package engine

import (
	"time"

	"github.com/envelope-zero/budget-engine/internal/budgetmath"
	"github.com/envelope-zero/budget-engine/internal/importer"
	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/envelope-zero/budget-engine/internal/reconcile"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Period is the state of a budget period.
type Period struct {
	Month          Month        `json:"month" swaggertype:"primitive,string" example:"2024-05"`
	TotalIncome    money.Money  `json:"totalIncome"`
	TotalAllocated money.Money  `json:"totalAllocated"`
	TotalSpent     money.Money  `json:"totalSpent"`
	CarriedOver    money.Money  `json:"carriedOver"`
	ReadyToAssign  money.Money  `json:"readyToAssign"`
	Closed         bool         `json:"closed"`
	Allocations    []Allocation `json:"allocations"`
}

// Allocation is the state of an envelope in a period.
type Allocation struct {
	EnvelopeID           uuid.UUID   `json:"envelopeId"`
	Envelope             string      `json:"envelope" example:"Groceries"`
	Month                Month       `json:"month" swaggertype:"primitive,string" example:"2024-05"`
	Allocated            money.Money `json:"allocated"`
	RolloverFromPrevious money.Money `json:"rolloverFromPrevious"`
	Spent                money.Money `json:"spent"`
	Available            money.Money `json:"available"`
}

type Envelope struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name" example:"Groceries"`
	Group      string       `json:"group" example:"Living"`
	Color      string       `json:"color" example:"#3b82f6"`
	Note       string       `json:"note"`
	GoalAmount *money.Money `json:"goalAmount"`
	GoalDate   *time.Time   `json:"goalDate"`
	Archived   bool         `json:"archived"`
	Hidden     bool         `json:"hidden"`
	SortOrder  int          `json:"sortOrder"`
}

type Account struct {
	ID               uuid.UUID   `json:"id"`
	Name             string      `json:"name" example:"Checking"`
	Note             string      `json:"note"`
	Currency         string      `json:"currency" example:"EUR"`
	Balance          money.Money `json:"balance"`
	ClearedBalance   money.Money `json:"clearedBalance"`
	LastReconciledAt *time.Time  `json:"lastReconciledAt"`
	Archived         bool        `json:"archived"`
}

type SplitLine struct {
	EnvelopeID uuid.UUID   `json:"envelopeId"`
	Amount     money.Money `json:"amount"`
}

// Transaction is a transaction. Negative amounts are outflows.
type Transaction struct {
	ID          uuid.UUID   `json:"id"`
	AccountID   uuid.UUID   `json:"accountId"`
	EnvelopeID  *uuid.UUID  `json:"envelopeId"`
	Amount      money.Money `json:"amount"`
	Date        time.Time   `json:"date"`
	Payee       string      `json:"payee" example:"Farmers market"`
	Memo        string      `json:"memo"`
	Cleared     bool        `json:"cleared"`
	Reconciled  bool        `json:"reconciled"`
	TransferKey *uuid.UUID  `json:"transferKey"`
	SplitLines  []SplitLine `json:"splitLines"`
	Adjustment  bool        `json:"adjustment"`
	Deleted     bool        `json:"deleted"`
}

type Transfer struct {
	Outflow Transaction `json:"outflow"`
	Inflow  Transaction `json:"inflow"`
}

type MatchRule struct {
	ID         uuid.UUID `json:"id"`
	Pattern    string    `json:"pattern" example:"*REWE*"`
	EnvelopeID uuid.UUID `json:"envelopeId"`
	Priority   uint      `json:"priority"`
}

type ImportRow = importer.Row

type ImportPreview = importer.Preview

type ImportResult struct {
	Inserted          int           `json:"inserted"`
	SkippedDuplicates int           `json:"skippedDuplicates"`
	SkippedInvalid    int           `json:"skippedInvalid"`
	Transactions      []Transaction `json:"transactions"`
}

type Reconciliation struct {
	Difference money.Money   `json:"difference"`
	Adjustment *Transaction  `json:"adjustment"`
	Reconciled []Transaction `json:"reconciled"`
	Account    Account       `json:"account"`
}

func (e *Engine) money(d decimal.Decimal) money.Money {
	return money.New(d, e.currency)
}

func (e *Engine) envelopeView(envelope models.Envelope) Envelope {
	view := Envelope{
		ID:        envelope.ID,
		Name:      envelope.Name,
		Group:     envelope.Group,
		Color:     envelope.Color,
		Note:      envelope.Note,
		GoalDate:  envelope.GoalDate,
		Archived:  envelope.Archived,
		Hidden:    envelope.Hidden,
		SortOrder: envelope.SortOrder,
	}

	if envelope.HasGoal() {
		goal := e.money(envelope.GoalAmount.Decimal)
		view.GoalAmount = &goal
	}

	return view
}

func (e *Engine) envelopeViews(envelopes []models.Envelope) []Envelope {
	views := make([]Envelope, 0, len(envelopes))
	for _, envelope := range envelopes {
		views = append(views, e.envelopeView(envelope))
	}
	return views
}

func (e *Engine) transactionView(t models.Transaction) Transaction {
	view := Transaction{
		ID:          t.ID,
		AccountID:   t.AccountID,
		EnvelopeID:  t.EnvelopeID,
		Amount:      e.money(t.Amount),
		Date:        t.Date,
		Payee:       t.Payee,
		Memo:        t.Memo,
		Cleared:     t.Cleared,
		Reconciled:  t.Reconciled,
		TransferKey: t.TransferKey,
		SplitLines:  make([]SplitLine, 0, len(t.SplitLines)),
		Adjustment:  t.Adjustment,
		Deleted:     t.IsDeleted(),
	}

	for _, line := range t.SplitLines {
		if line.DeletedAt.Valid {
			continue
		}
		view.SplitLines = append(view.SplitLines, SplitLine{EnvelopeID: line.EnvelopeID, Amount: e.money(line.Amount)})
	}

	return view
}

func (e *Engine) transactionViews(transactions []models.Transaction) []Transaction {
	views := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		views = append(views, e.transactionView(t))
	}
	return views
}

func matchRuleView(rule models.MatchRule) MatchRule {
	return MatchRule{
		ID:         rule.ID,
		Pattern:    rule.Pattern,
		EnvelopeID: rule.EnvelopeID,
		Priority:   rule.Priority,
	}
}

func (e *Engine) importResultView(result importer.Result) ImportResult {
	return ImportResult{
		Inserted:          result.Inserted,
		SkippedDuplicates: result.SkippedDuplicates,
		SkippedInvalid:    result.SkippedInvalid,
		Transactions:      e.transactionViews(result.Transactions),
	}
}

func (e *Engine) reconciliationView(db *gorm.DB, result reconcile.Result) (Reconciliation, error) {
	account, err := e.accountView(db, result.Account)
	if err != nil {
		return Reconciliation{}, err
	}

	view := Reconciliation{
		Difference: result.Difference,
		Reconciled: e.transactionViews(result.Reconciled),
		Account:    account,
	}

	if result.Adjustment != nil {
		adjustment := e.transactionView(*result.Adjustment)
		view.Adjustment = &adjustment
	}

	return view, nil
}

func (e *Engine) accountView(db *gorm.DB, account models.Account) (Account, error) {
	balance, err := models.AccountBalance(db, account.ID)
	if err != nil {
		return Account{}, err
	}

	cleared, err := models.ClearedBalance(db, account.ID, time.Time{})
	if err != nil {
		return Account{}, err
	}

	code := account.Currency
	if code == "" {
		code = e.currency.String()
	}

	return Account{
		ID:               account.ID,
		Name:             account.Name,
		Note:             account.Note,
		Currency:         code,
		Balance:          e.money(balance),
		ClearedBalance:   e.money(cleared),
		LastReconciledAt: account.LastReconciledAt,
		Archived:         account.Archived,
	}, nil
}

// periodView returns the state of the period for the month. Months without a
// period only have the income of their transactions.
func (e *Engine) periodView(db *gorm.DB, month Month) (Period, error) {
	period, err := models.FindPeriod(db, month)
	if models.IsNotFound(err) {
		income, err := models.PeriodIncome(db, month)
		if err != nil {
			return Period{}, err
		}

		period = models.BudgetPeriod{Month: month, TotalIncome: income}
	} else if err != nil {
		return Period{}, err
	}

	ready, err := budgetmath.ReadyToAssign(e.money(period.TotalIncome), e.money(period.CarriedOver), e.money(period.TotalAllocated))
	if err != nil {
		return Period{}, err
	}

	view := Period{
		Month:          month,
		TotalIncome:    e.money(period.TotalIncome),
		TotalAllocated: e.money(period.TotalAllocated),
		TotalSpent:     e.money(period.TotalSpent),
		CarriedOver:    e.money(period.CarriedOver),
		ReadyToAssign:  ready,
		Closed:         period.Closed,
		Allocations:    []Allocation{},
	}

	if period.ID == uuid.Nil {
		return view, nil
	}

	allocations, err := models.PeriodAllocations(db, period.ID)
	if err != nil {
		return Period{}, err
	}

	var envelopes []models.Envelope
	err = db.Find(&envelopes).Error
	if err != nil {
		return Period{}, err
	}

	byID := make(map[uuid.UUID]models.Envelope, len(envelopes))
	for _, envelope := range envelopes {
		byID[envelope.ID] = envelope
	}

	for _, a := range allocations {
		available, err := budgetmath.EnvelopeAvailable(e.money(a.Allocated), e.money(a.RolloverFromPrevious), e.money(a.Spent))
		if err != nil {
			return Period{}, err
		}

		view.Allocations = append(view.Allocations, Allocation{
			EnvelopeID:           a.EnvelopeID,
			Envelope:             byID[a.EnvelopeID].Name,
			Month:                month,
			Allocated:            e.money(a.Allocated),
			RolloverFromPrevious: e.money(a.RolloverFromPrevious),
			Spent:                e.money(a.Spent),
			Available:            available,
		})
	}

	slices.SortStableFunc(view.Allocations, func(a, b Allocation) int {
		ea, eb := byID[a.EnvelopeID], byID[b.EnvelopeID]
		if ea.SortOrder != eb.SortOrder {
			return ea.SortOrder - eb.SortOrder
		}

		switch {
		case ea.Name < eb.Name:
			return -1
		case ea.Name > eb.Name:
			return 1
		}
		return 0
	})

	return view, nil
}

// allocationView returns the state of the envelope in the period for the month.
func (e *Engine) allocationView(db *gorm.DB, envelopeID uuid.UUID, month Month) (Allocation, error) {
	period, err := e.periodView(db, month)
	if err != nil {
		return Allocation{}, err
	}

	for _, a := range period.Allocations {
		if a.EnvelopeID == envelopeID {
			return a, nil
		}
	}

	envelope, err := e.allocation.Envelope(db, envelopeID)
	if err != nil {
		return Allocation{}, err
	}

	zero := money.Zero(e.currency)
	return Allocation{
		EnvelopeID:           envelopeID,
		Envelope:             envelope.Name,
		Month:                month,
		Allocated:            zero,
		RolloverFromPrevious: zero,
		Spent:                zero,
		Available:            zero,
	}, nil
}
