// Package reconcile reconciles accounts against bank statements.
//
// Reconciling only changes the Cleared and Reconciled flags of transactions.
// If the statement balance differs from the cleared balance, the caller can
// request a single adjustment transaction that closes the gap.
package reconcile

import (
	"fmt"
	"time"

	"github.com/envelope-zero/budget-engine/internal/ledger"
	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/envelope-zero/budget-engine/internal/types"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// AdjustmentPayee is the payee of adjustment transactions.
const AdjustmentPayee = "Reconciliation balance adjustment"

// Service reconciles accounts of a budget in a single currency.
//
// All methods expect db to be a transaction that the caller commits or rolls back.
type Service struct {
	Currency currency.Unit
	Now      func() time.Time
}

// New returns a Service. If now is nil, time.Now is used.
func New(unit currency.Unit, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}

	return Service{Currency: unit, Now: now}
}

// Statement is a bank statement to reconcile an account against.
type Statement struct {
	AccountID uuid.UUID
	Balance   money.Money // Ending balance of the statement
	Date      time.Time
	Cleared   []uuid.UUID // Transactions the user ticked off on the statement
	Adjust    bool        // Create an adjustment transaction for a non-zero difference
}

// Result is the outcome of a reconciliation.
type Result struct {
	Difference money.Money          `json:"difference"` // Difference before the adjustment
	Adjustment *models.Transaction  `json:"adjustment"`
	Reconciled []models.Transaction `json:"reconciled"`
	Account    models.Account       `json:"account"`
}

// Difference returns the statement balance minus the cleared balance of the
// account up to and including the statement date.
func (s Service) Difference(db *gorm.DB, accountID uuid.UUID, balance money.Money, date time.Time) (money.Money, error) {
	_, err := ledger.New(s.Currency).Account(db, accountID)
	if err != nil {
		return money.Money{}, err
	}

	if date.IsZero() {
		return money.Money{}, ErrStatementDateMissing
	}

	return s.difference(db, accountID, balance, date)
}

func (s Service) difference(db *gorm.DB, accountID uuid.UUID, balance money.Money, date time.Time) (money.Money, error) {
	cleared, err := models.ClearedBalance(db, accountID, date)
	if err != nil {
		return money.Money{}, err
	}

	return balance.Sub(money.New(cleared, s.Currency))
}

// Reconcile marks the selected transactions as cleared, compares the cleared
// balance with the statement and marks the selected transactions as reconciled.
//
// A non-zero difference is rejected with ErrUnbalanced unless the statement
// requests an adjustment. The account's LastReconciledAt is set to the current time.
func (s Service) Reconcile(db *gorm.DB, statement Statement) (Result, error) {
	account, err := ledger.New(s.Currency).Account(db, statement.AccountID)
	if err != nil {
		return Result{}, err
	}

	if statement.Date.IsZero() {
		return Result{}, ErrStatementDateMissing
	}
	date := models.Day(statement.Date)

	selected, err := s.selected(db, statement.AccountID, date, statement.Cleared)
	if err != nil {
		return Result{}, err
	}

	for _, transaction := range selected {
		if transaction.Cleared {
			continue
		}

		err = db.Model(&transaction).Update("cleared", true).Error
		if err != nil {
			return Result{}, err
		}
	}

	difference, err := s.difference(db, statement.AccountID, statement.Balance, date)
	if err != nil {
		return Result{}, err
	}

	result := Result{Difference: difference, Reconciled: []models.Transaction{}}
	if !difference.IsZero() {
		if !statement.Adjust {
			return Result{}, fmt.Errorf("%w: the difference is %s", ErrUnbalanced, difference)
		}

		adjustment, err := s.adjust(db, statement.AccountID, difference, date)
		if err != nil {
			return Result{}, err
		}
		result.Adjustment = &adjustment
	}

	ids := make([]uuid.UUID, 0, len(selected))
	for _, transaction := range selected {
		ids = append(ids, transaction.ID)
	}

	if len(ids) > 0 {
		err = db.Model(&models.Transaction{}).Where("id IN ?", ids).Updates(map[string]any{"cleared": true, "reconciled": true}).Error
		if err != nil {
			return Result{}, err
		}

		err = db.Preload("SplitLines").Where("id IN ?", ids).Order("date ASC, created_at ASC").Find(&result.Reconciled).Error
		if err != nil {
			return Result{}, err
		}
	}

	now := s.Now().UTC()
	err = db.Model(&account).Update("last_reconciled_at", now).Error
	if err != nil {
		return Result{}, err
	}
	account.LastReconciledAt = &now
	result.Account = account

	return result, nil
}

// selected loads the selected transactions and checks that they can be reconciled.
func (s Service) selected(db *gorm.DB, accountID uuid.UUID, date time.Time, ids []uuid.UUID) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		var transaction models.Transaction
		err := db.First(&transaction, "id = ?", id).Error
		if err != nil {
			return nil, err
		}

		if transaction.AccountID != accountID {
			return nil, fmt.Errorf("%w: %s", ErrTransactionWrongAccount, id)
		}

		if transaction.Date.After(date) {
			return nil, fmt.Errorf("%w: %s is dated %s", ErrTransactionAfterDate, id, transaction.Date.Format(time.DateOnly))
		}

		transactions = append(transactions, transaction)
	}

	return transactions, nil
}

// adjust creates the adjustment transaction for the difference.
func (s Service) adjust(db *gorm.DB, accountID uuid.UUID, difference money.Money, date time.Time) (models.Transaction, error) {
	month := types.MonthOf(date)
	err := models.CheckPeriodOpen(db, month)
	if err != nil {
		return models.Transaction{}, err
	}

	adjustment := models.Transaction{
		AccountID:  accountID,
		Amount:     difference.Amount(),
		Date:       date,
		Payee:      AdjustmentPayee,
		Cleared:    true,
		Reconciled: true,
		Adjustment: true,
	}

	err = db.Create(&adjustment).Error
	if err != nil {
		return models.Transaction{}, err
	}

	err = ledger.Settle(db, month)
	if err != nil {
		return models.Transaction{}, err
	}

	return adjustment, nil
}

// Unreconcile reverts the Reconciled flag of all transactions of the account in the month.
// The transactions stay cleared.
func (s Service) Unreconcile(db *gorm.DB, accountID uuid.UUID, month types.Month) ([]models.Transaction, error) {
	_, err := ledger.New(s.Currency).Account(db, accountID)
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	err = db.
		Where(&models.Transaction{AccountID: accountID}).
		Where("reconciled = ? AND date >= ? AND date < ?", true, month.Start(), month.Next().Start()).
		Order("date ASC, created_at ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	if len(transactions) == 0 {
		return transactions, nil
	}

	ids := make([]uuid.UUID, 0, len(transactions))
	for i := range transactions {
		ids = append(ids, transactions[i].ID)
		transactions[i].Reconciled = false
	}

	err = db.Model(&models.Transaction{}).Where("id IN ?", ids).Update("reconciled", false).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
