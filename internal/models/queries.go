package models

import (
	"time"

	"github.com/envelope-zero/budget-engine/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// The functions in this file derive values from the transactions, which are the
// source of truth. Soft deleted transactions are excluded by gorm's DeletedAt
// scope, joined transactions are filtered explicitly.

func sum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// EnvelopeSpent returns the amount spent from the envelope in the month.
//
// Outflows increase the amount spent, inflows assigned to the envelope
// (e.g. refunds) decrease it. The result can be negative.
func EnvelopeSpent(db *gorm.DB, envelopeID uuid.UUID, month types.Month) (decimal.Decimal, error) {
	var direct []decimal.Decimal
	err := db.
		Model(&Transaction{}).
		Where("envelope_id = ?", envelopeID).
		Where("date >= ? AND date < ?", month.Start(), month.End()).
		Pluck("amount", &direct).
		Error
	if err != nil {
		return decimal.Zero, err
	}

	var lines []struct {
		Amount       decimal.Decimal
		ParentAmount decimal.Decimal
	}
	err = db.
		Model(&SplitLine{}).
		Select("split_lines.amount AS amount, transactions.amount AS parent_amount").
		Joins("JOIN transactions ON transactions.id = split_lines.transaction_id AND transactions.deleted_at IS NULL").
		Where("split_lines.envelope_id = ?", envelopeID).
		Where("transactions.date >= ? AND transactions.date < ?", month.Start(), month.End()).
		Scan(&lines).
		Error
	if err != nil {
		return decimal.Zero, err
	}

	flow := sum(direct)
	for _, line := range lines {
		if line.ParentAmount.IsNegative() {
			flow = flow.Sub(line.Amount)
		} else {
			flow = flow.Add(line.Amount)
		}
	}

	return flow.Neg(), nil
}

// PeriodIncome returns the net of all unassigned flows in the month.
//
// Unassigned flows are transactions without envelope and without split
// lines that are not a leg of a transfer.
func PeriodIncome(db *gorm.DB, month types.Month) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := db.
		Model(&Transaction{}).
		Where("envelope_id IS NULL AND transfer_key IS NULL").
		Where("split = ?", false).
		Where("date >= ? AND date < ?", month.Start(), month.End()).
		Pluck("amount", &amounts).
		Error
	if err != nil {
		return decimal.Zero, err
	}

	return sum(amounts), nil
}

// EnvelopesWithActivity returns the IDs of all envelopes with transactions or split lines in the month.
func EnvelopesWithActivity(db *gorm.DB, month types.Month) ([]uuid.UUID, error) {
	var direct []uuid.UUID
	err := db.
		Model(&Transaction{}).
		Distinct("envelope_id").
		Where("envelope_id IS NOT NULL").
		Where("date >= ? AND date < ?", month.Start(), month.End()).
		Pluck("envelope_id", &direct).
		Error
	if err != nil {
		return nil, err
	}

	var split []uuid.UUID
	err = db.
		Model(&SplitLine{}).
		Distinct("split_lines.envelope_id").
		Joins("JOIN transactions ON transactions.id = split_lines.transaction_id AND transactions.deleted_at IS NULL").
		Where("transactions.date >= ? AND transactions.date < ?", month.Start(), month.End()).
		Pluck("split_lines.envelope_id", &split).
		Error
	if err != nil {
		return nil, err
	}

	return append(direct, split...), nil
}

// AccountBalance returns the balance of all transactions of the account.
func AccountBalance(db *gorm.DB, accountID uuid.UUID) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := db.
		Model(&Transaction{}).
		Where(&Transaction{AccountID: accountID}).
		Pluck("amount", &amounts).
		Error
	if err != nil {
		return decimal.Zero, err
	}

	return sum(amounts), nil
}

// ClearedBalance returns the balance of all cleared transactions of the account up to and including the day of until.
//
// A zero until includes all cleared transactions.
func ClearedBalance(db *gorm.DB, accountID uuid.UUID, until time.Time) (decimal.Decimal, error) {
	query := db.
		Model(&Transaction{}).
		Where(&Transaction{AccountID: accountID}).
		Where("cleared = ?", true)

	if !until.IsZero() {
		query = query.Where("date < ?", Day(until).AddDate(0, 0, 1))
	}

	var amounts []decimal.Decimal
	err := query.Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}

	return sum(amounts), nil
}
