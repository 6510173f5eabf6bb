package engine

import (
	"context"
	"time"

	"github.com/envelope-zero/budget-engine/internal/reconcile"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReconcileRequest is a bank statement to reconcile an account against.
type ReconcileRequest struct {
	AccountID uuid.UUID
	Balance   money.Money // Ending balance of the statement
	Date      time.Time   // Date of the statement
	Cleared   []uuid.UUID // Transactions ticked off on the statement
	Adjust    bool        // Create an adjustment transaction if the balances differ
}

// Reconcile marks the selected transactions as cleared and reconciled if the
// cleared balance matches the statement balance.
//
// If the balances differ, the reconciliation is rejected unless an adjustment
// is requested. The adjustment is a single unassigned transaction for the difference.
func (e *Engine) Reconcile(ctx context.Context, r ReconcileRequest) Result[Reconciliation] {
	return run(ctx, e, "Reconcile", func(u *unit) (Reconciliation, error) {
		old := make(map[uuid.UUID]bool, len(r.Cleared))
		for _, id := range r.Cleared {
			t, err := e.ledger.Get(u.tx, id)
			if err != nil {
				return Reconciliation{}, err
			}
			old[id] = t.Reconciled
		}

		result, err := e.reconcile.Reconcile(u.tx, reconcile.Statement{
			AccountID: r.AccountID,
			Balance:   r.Balance,
			Date:      r.Date,
			Cleared:   r.Cleared,
			Adjust:    r.Adjust,
		})
		if err != nil {
			return Reconciliation{}, err
		}

		u.touchAccount(r.AccountID)
		if result.Adjustment != nil {
			e.created(u, *result.Adjustment)
		}

		for _, t := range result.Reconciled {
			if !old[t.ID] {
				u.change(Change{Kind: ChangeTransaction, ID: t.ID, Field: "reconciled", Old: "false", New: "true"})
			}
		}

		return e.reconciliationView(u.tx, result)
	})
}

// Unreconcile reverts the reconciliation of all transactions of an account in a month.
func (e *Engine) Unreconcile(ctx context.Context, accountID uuid.UUID, month Month) Result[[]Transaction] {
	return run(ctx, e, "Unreconcile", func(u *unit) ([]Transaction, error) {
		transactions, err := e.reconcile.Unreconcile(u.tx, accountID, month)
		if err != nil {
			return nil, err
		}

		u.touchAccount(accountID)
		for _, t := range transactions {
			u.change(Change{Kind: ChangeTransaction, ID: t.ID, Field: "reconciled", Old: "true", New: "false"})
		}

		return e.transactionViews(transactions), nil
	})
}

// ReconcileDifference returns the statement balance minus the cleared balance
// of the account at the statement date.
func (e *Engine) ReconcileDifference(ctx context.Context, accountID uuid.UUID, balance money.Money, date time.Time) (money.Money, *Error) {
	return read(ctx, e, "ReconcileDifference", func(db *gorm.DB) (money.Money, error) {
		return e.reconcile.Difference(db, accountID, balance, date)
	})
}
