package ledger

import (
	"fmt"
	"strings"

	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func trim(s string) string {
	return strings.TrimSpace(s)
}

// check returns an error if m is not in the budget currency.
func (s Service) check(m money.Money) error {
	_, err := money.Zero(s.Currency).Add(m)
	return err
}

func (s Service) positive(m money.Money) error {
	err := s.check(m)
	if err != nil {
		return err
	}

	if !m.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// Account returns the account if it exists and uses the budget currency.
func (s Service) Account(db *gorm.DB, id uuid.UUID) (models.Account, error) {
	var account models.Account
	err := db.First(&account, "id = ?", id).Error
	if err != nil {
		return models.Account{}, err
	}

	if account.Currency == "" {
		return account, nil
	}

	unit, err := money.ParseCurrency(account.Currency)
	if err != nil {
		return models.Account{}, err
	}

	if unit != s.Currency {
		return models.Account{}, fmt.Errorf("%w: account %q uses %s, the budget uses %s", money.ErrCurrencyMismatch, account.Name, unit, s.Currency)
	}

	return account, nil
}

// envelope returns an error if the envelope does not exist. Archived envelopes
// are only accepted if they are in keep.
func (s Service) envelope(db *gorm.DB, id uuid.UUID, keep map[uuid.UUID]bool) error {
	var envelope models.Envelope
	err := db.First(&envelope, "id = ?", id).Error
	if err != nil {
		return err
	}

	if envelope.Archived && !keep[id] {
		return fmt.Errorf("%w: %s", models.ErrEnvelopeArchived, envelope.Name)
	}

	return nil
}

// assignment validates the envelope or split lines for a transaction with the
// absolute amount and returns the split lines to persist.
func (s Service) assignment(db *gorm.DB, amount money.Money, envelopeID *uuid.UUID, lines []SplitLine, keep map[uuid.UUID]bool) ([]models.SplitLine, error) {
	if envelopeID != nil && *envelopeID == uuid.Nil {
		envelopeID = nil
	}

	if envelopeID != nil && len(lines) > 0 {
		return nil, ErrEnvelopeAndSplit
	}

	if envelopeID != nil {
		return nil, s.envelope(db, *envelopeID, keep)
	}

	if len(lines) == 0 {
		return nil, nil
	}

	total := money.Zero(s.Currency)
	splitLines := make([]models.SplitLine, 0, len(lines))
	for _, line := range lines {
		err := s.check(line.Amount)
		if err != nil {
			return nil, err
		}

		if !line.Amount.IsPositive() {
			return nil, models.ErrSplitLineNotPositive
		}

		if line.EnvelopeID == uuid.Nil {
			return nil, ErrSplitLineEnvelopeMissing
		}

		err = s.envelope(db, line.EnvelopeID, keep)
		if err != nil {
			return nil, err
		}

		total, err = total.Add(line.Amount)
		if err != nil {
			return nil, err
		}

		splitLines = append(splitLines, models.SplitLine{EnvelopeID: line.EnvelopeID, Amount: line.Amount.Amount()})
	}

	if !total.Equal(amount) {
		return nil, fmt.Errorf("%w: lines add up to %s, the transaction is %s", ErrSplitTotalMismatch, total, amount)
	}

	return splitLines, nil
}
