// Package ledger implements the lifecycle of transactions and keeps the
// budget totals derived from them up to date.
package ledger

import (
	"fmt"
	"time"

	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/envelope-zero/budget-engine/internal/types"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service manages transactions for a budget in a single currency.
//
// All methods expect db to be a transaction that the caller commits or rolls back.
type Service struct {
	Currency currency.Unit
}

func New(unit currency.Unit) Service {
	return Service{Currency: unit}
}

// SplitLine is the input for a split line.
type SplitLine struct {
	EnvelopeID uuid.UUID
	Amount     money.Money
}

// NewTransaction is the input for inflows and outflows.
//
// Amount is always positive, the direction is given by the operation.
type NewTransaction struct {
	AccountID  uuid.UUID
	Date       time.Time
	Amount     money.Money
	Payee      string
	Memo       string
	EnvelopeID *uuid.UUID
	SplitLines []SplitLine
	Cleared    bool
}

// NewTransfer is the input for a transfer between two accounts.
type NewTransfer struct {
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        money.Money
	Date          time.Time
	Memo          string
}

// Transfer holds both legs of a transfer.
type Transfer struct {
	Outflow models.Transaction
	Inflow  models.Transaction
}

// Update contains the fields to change on a transaction. Nil fields are not changed.
//
// Amount is signed. An EnvelopeID pointing to uuid.Nil removes the envelope,
// a SplitLines pointer to an empty slice removes the split.
type Update struct {
	Date       *time.Time
	Amount     *money.Money
	Payee      *string
	Memo       *string
	EnvelopeID *uuid.UUID
	SplitLines *[]SplitLine
}

func (u Update) locked() bool {
	return u.Date != nil || u.Amount != nil || u.EnvelopeID != nil || u.SplitLines != nil
}

// Balance is the balance of an account.
type Balance struct {
	Balance money.Money `json:"balance"`
	Cleared money.Money `json:"cleared"`
}

// CreateOutflow records money leaving the account.
func (s Service) CreateOutflow(db *gorm.DB, in NewTransaction) (models.Transaction, error) {
	return s.create(db, in, true)
}

// CreateInflow records money arriving on the account.
func (s Service) CreateInflow(db *gorm.DB, in NewTransaction) (models.Transaction, error) {
	return s.create(db, in, false)
}

func (s Service) create(db *gorm.DB, in NewTransaction, outflow bool) (models.Transaction, error) {
	err := s.positive(in.Amount)
	if err != nil {
		return models.Transaction{}, err
	}

	if in.Date.IsZero() {
		return models.Transaction{}, ErrDateMissing
	}

	if trim(in.Payee) == "" {
		return models.Transaction{}, ErrPayeeEmpty
	}

	_, err = s.Account(db, in.AccountID)
	if err != nil {
		return models.Transaction{}, err
	}

	lines, err := s.assignment(db, in.Amount, in.EnvelopeID, in.SplitLines, nil)
	if err != nil {
		return models.Transaction{}, err
	}

	date := models.Day(in.Date)
	err = models.CheckPeriodOpen(db, types.MonthOf(date))
	if err != nil {
		return models.Transaction{}, err
	}

	amount := in.Amount.Amount()
	if outflow {
		amount = amount.Neg()
	}

	transaction := models.Transaction{
		AccountID:  in.AccountID,
		EnvelopeID: in.EnvelopeID,
		Amount:     amount,
		Date:       date,
		Payee:      in.Payee,
		Memo:       in.Memo,
		Cleared:    in.Cleared,
		SplitLines: lines,
	}
	if len(lines) > 0 {
		transaction.EnvelopeID = nil
	}

	err = db.Create(&transaction).Error
	if err != nil {
		return models.Transaction{}, err
	}

	err = Settle(db, transaction.Month())
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// CreateTransfer moves money between two accounts.
//
// The outflow and inflow share a transfer key and are never assigned to an envelope.
func (s Service) CreateTransfer(db *gorm.DB, in NewTransfer) (Transfer, error) {
	err := s.positive(in.Amount)
	if err != nil {
		return Transfer{}, err
	}

	if in.Date.IsZero() {
		return Transfer{}, ErrDateMissing
	}

	if in.FromAccountID == in.ToAccountID {
		return Transfer{}, ErrTransferSameAccount
	}

	from, err := s.Account(db, in.FromAccountID)
	if err != nil {
		return Transfer{}, err
	}

	to, err := s.Account(db, in.ToAccountID)
	if err != nil {
		return Transfer{}, err
	}

	date := models.Day(in.Date)
	err = models.CheckPeriodOpen(db, types.MonthOf(date))
	if err != nil {
		return Transfer{}, err
	}

	key := uuid.New()
	transfer := Transfer{
		Outflow: models.Transaction{
			AccountID:   from.ID,
			Amount:      in.Amount.Amount().Neg(),
			Date:        date,
			Payee:       fmt.Sprintf("Transfer to %s", to.Name),
			Memo:        in.Memo,
			TransferKey: &key,
		},
		Inflow: models.Transaction{
			AccountID:   to.ID,
			Amount:      in.Amount.Amount(),
			Date:        date,
			Payee:       fmt.Sprintf("Transfer from %s", from.Name),
			Memo:        in.Memo,
			TransferKey: &key,
		},
	}

	err = db.Create(&transfer.Outflow).Error
	if err != nil {
		return Transfer{}, err
	}

	err = db.Create(&transfer.Inflow).Error
	if err != nil {
		return Transfer{}, err
	}

	err = Settle(db, transfer.Outflow.Month())
	if err != nil {
		return Transfer{}, err
	}

	return transfer, nil
}

// UpdateTransaction changes a transaction.
//
// Changes to the date or amount of a transfer leg are applied to the other leg, too.
// Reconciled transactions only accept changes to payee and memo.
func (s Service) UpdateTransaction(db *gorm.DB, id uuid.UUID, u Update) (models.Transaction, error) {
	transaction, err := s.Get(db, id)
	if err != nil {
		return models.Transaction{}, err
	}

	if u.locked() && transaction.Reconciled {
		return models.Transaction{}, ErrTransactionReconciled
	}

	months := []types.Month{transaction.Month()}
	if u.locked() {
		err = models.CheckPeriodOpen(db, transaction.Month())
		if err != nil {
			return models.Transaction{}, err
		}
	}

	if u.Payee != nil {
		if trim(*u.Payee) == "" {
			return models.Transaction{}, ErrPayeeEmpty
		}
		transaction.Payee = *u.Payee
	}

	if u.Memo != nil {
		transaction.Memo = *u.Memo
	}

	if u.Date != nil {
		if u.Date.IsZero() {
			return models.Transaction{}, ErrDateMissing
		}

		transaction.Date = models.Day(*u.Date)
		err = models.CheckPeriodOpen(db, transaction.Month())
		if err != nil {
			return models.Transaction{}, err
		}
		months = append(months, transaction.Month())
	}

	if u.Amount != nil {
		err = s.check(*u.Amount)
		if err != nil {
			return models.Transaction{}, err
		}

		if u.Amount.IsZero() {
			return models.Transaction{}, ErrAmountZero
		}
		transaction.Amount = u.Amount.Amount()
	}

	if u.EnvelopeID != nil || u.SplitLines != nil || u.Amount != nil {
		err = s.reassign(db, &transaction, u)
		if err != nil {
			return models.Transaction{}, err
		}
	}

	err = db.Omit(clause.Associations).Save(&transaction).Error
	if err != nil {
		return models.Transaction{}, err
	}

	if transaction.IsTransfer() && (u.Date != nil || u.Amount != nil) {
		partnerMonths, err := s.propagate(db, transaction)
		if err != nil {
			return models.Transaction{}, err
		}
		months = append(months, partnerMonths...)
	}

	err = Settle(db, months...)
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// reassign applies the envelope and split line changes of u to the transaction
// and replaces the persisted split lines if needed.
func (s Service) reassign(db *gorm.DB, transaction *models.Transaction, u Update) error {
	current := make(map[uuid.UUID]bool)
	for _, id := range transaction.Envelopes() {
		current[id] = true
	}

	envelopeID := transaction.EnvelopeID
	lines := make([]SplitLine, 0, len(transaction.SplitLines))
	for _, line := range transaction.SplitLines {
		lines = append(lines, SplitLine{EnvelopeID: line.EnvelopeID, Amount: money.New(line.Amount, s.Currency)})
	}

	if u.EnvelopeID != nil {
		envelopeID = nil
		if *u.EnvelopeID != uuid.Nil {
			id := *u.EnvelopeID
			envelopeID = &id

			// Assigning an envelope replaces the split
			if u.SplitLines == nil {
				lines = nil
			}
		}
	}

	if u.SplitLines != nil {
		lines = *u.SplitLines
	}

	if transaction.IsTransfer() && (envelopeID != nil || len(lines) > 0) {
		return ErrTransferEnvelope
	}

	splitLines, err := s.assignment(db, money.New(transaction.Amount.Abs(), s.Currency), envelopeID, lines, current)
	if err != nil {
		return err
	}

	if len(transaction.SplitLines) > 0 || len(splitLines) > 0 {
		err = db.Where(&models.SplitLine{TransactionID: transaction.ID}).Delete(&models.SplitLine{}).Error
		if err != nil {
			return err
		}

		for i := range splitLines {
			splitLines[i].TransactionID = transaction.ID
		}

		if len(splitLines) > 0 {
			err = db.Create(&splitLines).Error
			if err != nil {
				return err
			}
		}
	}

	transaction.EnvelopeID = envelopeID
	transaction.SplitLines = splitLines
	transaction.Split = len(splitLines) > 0

	return nil
}

// propagate applies date and amount of a transfer leg to its partner and
// returns the months affected.
func (s Service) propagate(db *gorm.DB, leg models.Transaction) ([]types.Month, error) {
	partner, err := s.Partner(db, leg)
	if err != nil {
		return nil, err
	}

	if partner.Reconciled {
		return nil, ErrTransactionReconciled
	}

	err = models.CheckPeriodOpen(db, partner.Month())
	if err != nil {
		return nil, err
	}

	months := []types.Month{partner.Month(), leg.Month()}
	partner.Date = leg.Date
	partner.Amount = leg.Amount.Neg()

	err = db.Omit(clause.Associations).Save(&partner).Error
	if err != nil {
		return nil, err
	}

	return months, nil
}

// Partner returns the other leg of a transfer.
func (s Service) Partner(db *gorm.DB, leg models.Transaction) (models.Transaction, error) {
	var partner models.Transaction
	err := db.
		Where("transfer_key = ? AND id != ?", leg.TransferKey, leg.ID).
		First(&partner).
		Error
	return partner, err
}

// DeleteTransaction soft deletes the transaction. For transfers, both legs are deleted.
func (s Service) DeleteTransaction(db *gorm.DB, id uuid.UUID) ([]models.Transaction, error) {
	transaction, err := s.Get(db, id)
	if err != nil {
		return nil, err
	}

	deleted := []models.Transaction{transaction}
	if transaction.IsTransfer() {
		partner, err := s.Partner(db, transaction)
		if err != nil && !models.IsNotFound(err) {
			return nil, err
		} else if err == nil {
			deleted = append(deleted, partner)
		}
	}

	months := make([]types.Month, 0, len(deleted))
	for _, t := range deleted {
		if t.Reconciled {
			return nil, ErrTransactionReconciled
		}

		err = models.CheckPeriodOpen(db, t.Month())
		if err != nil {
			return nil, err
		}
		months = append(months, t.Month())
	}

	for i := range deleted {
		err = db.Delete(&deleted[i]).Error
		if err != nil {
			return nil, err
		}

		if !deleted[i].DeletedAt.Valid {
			deleted[i].DeletedAt = gorm.DeletedAt{Time: db.NowFunc(), Valid: true}
		}
	}

	err = Settle(db, months...)
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

// MarkCleared marks a transaction as cleared.
func (s Service) MarkCleared(db *gorm.DB, id uuid.UUID) (models.Transaction, error) {
	return s.setCleared(db, id, true)
}

// MarkUncleared marks a transaction as not cleared.
func (s Service) MarkUncleared(db *gorm.DB, id uuid.UUID) (models.Transaction, error) {
	return s.setCleared(db, id, false)
}

func (s Service) setCleared(db *gorm.DB, id uuid.UUID, cleared bool) (models.Transaction, error) {
	transaction, err := s.Get(db, id)
	if err != nil {
		return models.Transaction{}, err
	}

	if transaction.Reconciled {
		return models.Transaction{}, ErrTransactionReconciled
	}

	if transaction.Cleared == cleared {
		return transaction, nil
	}

	err = db.Model(&transaction).Update("cleared", cleared).Error
	if err != nil {
		return models.Transaction{}, err
	}
	transaction.Cleared = cleared

	return transaction, nil
}

// Get returns a transaction with its split lines.
func (s Service) Get(db *gorm.DB, id uuid.UUID) (models.Transaction, error) {
	var transaction models.Transaction
	err := db.Preload("SplitLines").First(&transaction, "id = ?", id).Error
	return transaction, err
}

// Filter restricts the transactions returned by List. Zero values do not filter.
type Filter struct {
	AccountID  uuid.UUID
	EnvelopeID uuid.UUID
	From       time.Time
	Until      time.Time
}

// List returns the transactions matching the filter, newest first.
func (s Service) List(db *gorm.DB, f Filter) ([]models.Transaction, error) {
	query := db.Preload("SplitLines").Where(&models.Transaction{AccountID: f.AccountID})

	if f.EnvelopeID != uuid.Nil {
		query = query.Where("envelope_id = ? OR id IN (?)", f.EnvelopeID, db.Model(&models.SplitLine{}).Select("transaction_id").Where("envelope_id = ?", f.EnvelopeID))
	}

	if !f.From.IsZero() {
		query = query.Where("date >= ?", models.Day(f.From))
	}

	if !f.Until.IsZero() {
		query = query.Where("date < ?", models.Day(f.Until).AddDate(0, 0, 1))
	}

	var transactions []models.Transaction
	err := query.Order("date DESC, created_at DESC").Find(&transactions).Error
	return transactions, err
}

// AccountBalance returns the balance and the cleared balance of the account.
func (s Service) AccountBalance(db *gorm.DB, accountID uuid.UUID) (Balance, error) {
	_, err := s.Account(db, accountID)
	if err != nil {
		return Balance{}, err
	}

	balance, err := models.AccountBalance(db, accountID)
	if err != nil {
		return Balance{}, err
	}

	cleared, err := models.ClearedBalance(db, accountID, time.Time{})
	if err != nil {
		return Balance{}, err
	}

	return Balance{
		Balance: money.New(balance, s.Currency),
		Cleared: money.New(cleared, s.Currency),
	}, nil
}
