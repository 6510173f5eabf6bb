package ledger

import (
	"fmt"

	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountInput is the input to create an account.
type AccountInput struct {
	Name     string
	Note     string
	Currency string // Defaults to the budget currency
}

// AccountUpdate contains the fields to change on an account. Nil fields are not changed.
type AccountUpdate struct {
	Name     *string
	Note     *string
	Archived *bool
}

// currency returns the ISO code for an account. Accounts can only use the budget currency.
func (s Service) currency(code string) (string, error) {
	if trim(code) == "" {
		return s.Currency.String(), nil
	}

	unit, err := money.ParseCurrency(code)
	if err != nil {
		return "", err
	}

	if unit != s.Currency {
		return "", fmt.Errorf("%w: the budget uses %s, the account %s", money.ErrCurrencyMismatch, s.Currency, unit)
	}

	return unit.String(), nil
}

// CreateAccount creates an account. Account names are unique.
func (s Service) CreateAccount(db *gorm.DB, in AccountInput) (models.Account, error) {
	code, err := s.currency(in.Currency)
	if err != nil {
		return models.Account{}, err
	}

	account := models.Account{
		Name:     in.Name,
		Note:     in.Note,
		Currency: code,
	}

	err = db.Create(&account).Error
	if err != nil {
		return models.Account{}, err
	}

	return account, nil
}

// UpdateAccount changes an account.
func (s Service) UpdateAccount(db *gorm.DB, id uuid.UUID, u AccountUpdate) (models.Account, error) {
	account, err := s.Account(db, id)
	if err != nil {
		return models.Account{}, err
	}

	if u.Name != nil {
		account.Name = *u.Name
	}

	if u.Note != nil {
		account.Note = *u.Note
	}

	if u.Archived != nil {
		account.Archived = *u.Archived
	}

	err = db.Omit(clause.Associations).Save(&account).Error
	if err != nil {
		return models.Account{}, err
	}

	return account, nil
}

// Accounts returns all accounts ordered by name.
func (s Service) Accounts(db *gorm.DB) ([]models.Account, error) {
	var accounts []models.Account
	err := db.Order("name ASC").Find(&accounts).Error
	return accounts, err
}
