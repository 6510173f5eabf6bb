package models

import (
	"strings"
	"time"

	"github.com/envelope-zero/budget-engine/internal/importer/helpers"
	"github.com/envelope-zero/budget-engine/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single movement of money on an account.
//
// Negative amounts are outflows, positive amounts are inflows. A transaction
// is assigned to at most one envelope. Split transactions have no envelope
// but SplitLines whose amounts add up to the absolute amount of the transaction.
// Transfers are two transactions sharing a TransferKey.
type Transaction struct {
	DefaultModel
	AccountID   uuid.UUID       `json:"accountId" gorm:"index:transaction_account_date,priority:1;index:transaction_account_fingerprint,priority:1"`
	EnvelopeID  *uuid.UUID      `json:"envelopeId" gorm:"index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"-12.99"`
	Date        time.Time       `json:"date" gorm:"index:transaction_account_date,priority:2" example:"2024-05-13T00:00:00Z"` // Always 00:00 UTC
	Payee       string          `json:"payee" example:"Farmers market"`
	Memo        string          `json:"memo" example:"Apples and bread"`
	Cleared     bool            `json:"cleared" gorm:"index"`
	Reconciled  bool            `json:"reconciled" gorm:"index"`
	TransferKey *uuid.UUID      `json:"transferKey" gorm:"index"`                                                  // Shared by both legs of a transfer
	Split       bool            `json:"split"`                                                                     // Set when the transaction has split lines
	SplitLines  []SplitLine     `json:"splitLines" gorm:"foreignKey:TransactionID"`                                // Only set for split transactions
	Fingerprint string          `json:"fingerprint" gorm:"index:transaction_account_fingerprint,priority:2"`       // Duplicate detection key, see Fingerprint()
	Adjustment  bool            `json:"adjustment"`                                                                // Created by reconciliation to fix a statement difference
}

// SplitLine assigns a part of a split transaction to an envelope.
type SplitLine struct {
	DefaultModel
	TransactionID uuid.UUID       `json:"transactionId" gorm:"index"`
	EnvelopeID    uuid.UUID       `json:"envelopeId" gorm:"index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"40"` // Always positive, the sign is the one of the transaction
}

// AfterFind enforces dates to be in UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - truncates the Date to 00:00 UTC
//   - trims whitespace from string fields
//   - ensures that the Envelope ID is nil and not a pointer to a nil UUID
//   - recalculates the fingerprint
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Payee = strings.TrimSpace(t.Payee)
	t.Memo = strings.TrimSpace(t.Memo)

	if t.EnvelopeID != nil && *t.EnvelopeID == uuid.Nil {
		t.EnvelopeID = nil
	}

	if t.TransferKey != nil && *t.TransferKey == uuid.Nil {
		t.TransferKey = nil
	}

	t.Date = Day(t.Date)
	if len(t.SplitLines) > 0 {
		t.Split = true
	}
	t.Fingerprint = Fingerprint(t.Date, t.Amount, t.Payee, t.Memo)

	return nil
}

func (s *SplitLine) BeforeSave(_ *gorm.DB) error {
	if !s.Amount.IsPositive() {
		return ErrSplitLineNotPositive
	}

	return nil
}

// IsDeleted reports whether the transaction has been soft deleted.
func (t Transaction) IsDeleted() bool {
	return t.DeletedAt.Valid
}

// IsTransfer reports whether the transaction is a leg of a transfer.
func (t Transaction) IsTransfer() bool {
	return t.TransferKey != nil
}

// Month returns the month the transaction is in.
func (t Transaction) Month() types.Month {
	return types.MonthOf(t.Date)
}

// Envelopes returns the IDs of all envelopes the transaction affects.
func (t Transaction) Envelopes() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(t.SplitLines)+1)
	if t.EnvelopeID != nil {
		ids = append(ids, *t.EnvelopeID)
	}

	for _, line := range t.SplitLines {
		ids = append(ids, line.EnvelopeID)
	}

	return ids
}

// Day returns the date of t at 00:00 UTC.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}

	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Fingerprint returns the duplicate detection key for a transaction.
//
// Only the date, the amount, the normalized payee and whether a memo is
// present are part of the key. Two transactions with the same fingerprint
// on the same account are considered duplicates.
func Fingerprint(date time.Time, amount decimal.Decimal, payee, memo string) string {
	payee = strings.ToLower(strings.Join(strings.Fields(payee), " "))

	hasMemo := "0"
	if strings.TrimSpace(memo) != "" {
		hasMemo = "1"
	}

	return helpers.Key(Day(date).Format("2006-01-02"), amount.String(), payee, hasMemo)
}
