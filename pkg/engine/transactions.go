package engine

import (
	"context"
	"strconv"
	"time"

	"github.com/envelope-zero/budget-engine/internal/ledger"
	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionRequest is the input for inflows and outflows. Amount is positive,
// the direction is given by the operation.
//
// A transaction is either assigned to one envelope, split into lines or unassigned.
type TransactionRequest struct {
	AccountID  uuid.UUID
	Date       time.Time
	Amount     money.Money
	Payee      string
	Memo       string
	EnvelopeID *uuid.UUID
	SplitLines []SplitLine
	Cleared    bool
}

type TransferRequest struct {
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        money.Money
	Date          time.Time
	Memo          string
}

// UpdateTransactionRequest contains the fields to change on a transaction.
// Nil fields are not changed.
//
// Amount is signed. An EnvelopeID of uuid.Nil unassigns the transaction, an
// empty SplitLines slice removes the split.
type UpdateTransactionRequest struct {
	Date       *time.Time
	Amount     *money.Money
	Payee      *string
	Memo       *string
	EnvelopeID *uuid.UUID
	SplitLines *[]SplitLine
}

// TransactionFilter restricts the transactions returned by Transactions. Zero values do not filter.
type TransactionFilter struct {
	AccountID  uuid.UUID
	EnvelopeID uuid.UUID
	From       time.Time
	Until      time.Time
}

func splitLines(lines []SplitLine) []ledger.SplitLine {
	out := make([]ledger.SplitLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, ledger.SplitLine{EnvelopeID: line.EnvelopeID, Amount: line.Amount})
	}
	return out
}

// touchTransaction records the month and account of a transaction for the snapshot.
func (u *unit) touchTransaction(t models.Transaction) {
	u.touchMonth(t.Month())
	u.touchAccount(t.AccountID)
}

func (e *Engine) created(u *unit, t models.Transaction) {
	u.touchTransaction(t)
	u.change(Change{Kind: ChangeTransaction, ID: t.ID, Field: "amount", New: e.money(t.Amount).String()})
}

func (e *Engine) CreateOutflow(ctx context.Context, r TransactionRequest) Result[Transaction] {
	return e.createTransaction(ctx, "CreateOutflow", r, e.ledger.CreateOutflow)
}

func (e *Engine) CreateInflow(ctx context.Context, r TransactionRequest) Result[Transaction] {
	return e.createTransaction(ctx, "CreateInflow", r, e.ledger.CreateInflow)
}

func (e *Engine) createTransaction(ctx context.Context, operation string, r TransactionRequest, create func(*gorm.DB, ledger.NewTransaction) (models.Transaction, error)) Result[Transaction] {
	return run(ctx, e, operation, func(u *unit) (Transaction, error) {
		transaction, err := create(u.tx, ledger.NewTransaction{
			AccountID:  r.AccountID,
			Date:       r.Date,
			Amount:     r.Amount,
			Payee:      r.Payee,
			Memo:       r.Memo,
			EnvelopeID: r.EnvelopeID,
			SplitLines: splitLines(r.SplitLines),
			Cleared:    r.Cleared,
		})
		if err != nil {
			return Transaction{}, err
		}

		e.created(u, transaction)
		return e.transactionView(transaction), nil
	})
}

// CreateTransfer moves money between two accounts of the budget.
func (e *Engine) CreateTransfer(ctx context.Context, r TransferRequest) Result[Transfer] {
	return run(ctx, e, "CreateTransfer", func(u *unit) (Transfer, error) {
		transfer, err := e.ledger.CreateTransfer(u.tx, ledger.NewTransfer{
			FromAccountID: r.FromAccountID,
			ToAccountID:   r.ToAccountID,
			Amount:        r.Amount,
			Date:          r.Date,
			Memo:          r.Memo,
		})
		if err != nil {
			return Transfer{}, err
		}

		e.created(u, transfer.Outflow)
		e.created(u, transfer.Inflow)

		return Transfer{
			Outflow: e.transactionView(transfer.Outflow),
			Inflow:  e.transactionView(transfer.Inflow),
		}, nil
	})
}

func (e *Engine) transactionChanges(u *unit, old, updated models.Transaction) {
	add := func(field, o, n string) {
		if o != n {
			u.change(Change{Kind: ChangeTransaction, ID: updated.ID, Field: field, Old: o, New: n})
		}
	}

	add("date", old.Date.Format(time.DateOnly), updated.Date.Format(time.DateOnly))
	add("amount", e.money(old.Amount).String(), e.money(updated.Amount).String())
	add("payee", old.Payee, updated.Payee)
	add("memo", old.Memo, updated.Memo)
	add("envelope", idString(old.EnvelopeID), idString(updated.EnvelopeID))
	add("split", strconv.FormatBool(old.Split), strconv.FormatBool(updated.Split))
	add("cleared", strconv.FormatBool(old.Cleared), strconv.FormatBool(updated.Cleared))
	add("reconciled", strconv.FormatBool(old.Reconciled), strconv.FormatBool(updated.Reconciled))
}

func idString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

// UpdateTransaction changes a transaction. Date and amount changes of transfer
// legs are applied to both legs.
func (e *Engine) UpdateTransaction(ctx context.Context, id uuid.UUID, r UpdateTransactionRequest) Result[Transaction] {
	return run(ctx, e, "UpdateTransaction", func(u *unit) (Transaction, error) {
		old, err := e.ledger.Get(u.tx, id)
		if err != nil {
			return Transaction{}, err
		}

		var partner *models.Transaction
		if old.IsTransfer() {
			leg, err := e.ledger.Partner(u.tx, old)
			if err != nil {
				return Transaction{}, err
			}
			partner = &leg
		}

		update := ledger.Update{
			Date:       r.Date,
			Amount:     r.Amount,
			Payee:      r.Payee,
			Memo:       r.Memo,
			EnvelopeID: r.EnvelopeID,
		}
		if r.SplitLines != nil {
			lines := splitLines(*r.SplitLines)
			update.SplitLines = &lines
		}

		updated, err := e.ledger.UpdateTransaction(u.tx, id, update)
		if err != nil {
			return Transaction{}, err
		}

		u.touchTransaction(old)
		u.touchTransaction(updated)
		e.transactionChanges(u, old, updated)

		if partner != nil {
			leg, err := e.ledger.Get(u.tx, partner.ID)
			if err != nil {
				return Transaction{}, err
			}

			u.touchTransaction(*partner)
			u.touchTransaction(leg)
			e.transactionChanges(u, *partner, leg)
		}

		return e.transactionView(updated), nil
	})
}

// DeleteTransaction deletes a transaction. Deleting a transfer leg deletes both legs.
func (e *Engine) DeleteTransaction(ctx context.Context, id uuid.UUID) Result[[]Transaction] {
	return run(ctx, e, "DeleteTransaction", func(u *unit) ([]Transaction, error) {
		deleted, err := e.ledger.DeleteTransaction(u.tx, id)
		if err != nil {
			return nil, err
		}

		for _, t := range deleted {
			u.touchTransaction(t)
			u.change(Change{Kind: ChangeTransaction, ID: t.ID, Field: "amount", Old: e.money(t.Amount).String()})
		}

		return e.transactionViews(deleted), nil
	})
}

func (e *Engine) MarkCleared(ctx context.Context, id uuid.UUID) Result[Transaction] {
	return e.setCleared(ctx, "MarkCleared", id, e.ledger.MarkCleared)
}

func (e *Engine) MarkUncleared(ctx context.Context, id uuid.UUID) Result[Transaction] {
	return e.setCleared(ctx, "MarkUncleared", id, e.ledger.MarkUncleared)
}

func (e *Engine) setCleared(ctx context.Context, operation string, id uuid.UUID, set func(*gorm.DB, uuid.UUID) (models.Transaction, error)) Result[Transaction] {
	return run(ctx, e, operation, func(u *unit) (Transaction, error) {
		old, err := e.ledger.Get(u.tx, id)
		if err != nil {
			return Transaction{}, err
		}

		updated, err := set(u.tx, id)
		if err != nil {
			return Transaction{}, err
		}

		u.touchAccount(updated.AccountID)
		e.transactionChanges(u, old, updated)
		return e.transactionView(updated), nil
	})
}

// Transaction returns a single transaction.
func (e *Engine) Transaction(ctx context.Context, id uuid.UUID) (Transaction, *Error) {
	return read(ctx, e, "Transaction", func(db *gorm.DB) (Transaction, error) {
		transaction, err := e.ledger.Get(db, id)
		if err != nil {
			return Transaction{}, err
		}

		return e.transactionView(transaction), nil
	})
}

// Transactions returns the transactions matching the filter, newest first.
func (e *Engine) Transactions(ctx context.Context, f TransactionFilter) ([]Transaction, *Error) {
	return read(ctx, e, "Transactions", func(db *gorm.DB) ([]Transaction, error) {
		transactions, err := e.ledger.List(db, ledger.Filter{
			AccountID:  f.AccountID,
			EnvelopeID: f.EnvelopeID,
			From:       f.From,
			Until:      f.Until,
		})
		if err != nil {
			return nil, err
		}

		return e.transactionViews(transactions), nil
	})
}
