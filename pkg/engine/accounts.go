package engine

import (
	"context"
	"strconv"

	"github.com/envelope-zero/budget-engine/internal/ledger"
	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateAccountRequest struct {
	Name     string
	Note     string
	Currency string // Defaults to the budget currency
}

// UpdateAccountRequest contains the fields to change. Nil fields are not changed.
type UpdateAccountRequest struct {
	Name     *string
	Note     *string
	Archived *bool
}

func (e *Engine) CreateAccount(ctx context.Context, r CreateAccountRequest) Result[Account] {
	return run(ctx, e, "CreateAccount", func(u *unit) (Account, error) {
		account, err := e.ledger.CreateAccount(u.tx, ledger.AccountInput{Name: r.Name, Note: r.Note, Currency: r.Currency})
		if err != nil {
			return Account{}, err
		}

		u.touchAccount(account.ID)
		u.change(Change{Kind: ChangeAccount, ID: account.ID, Field: "name", New: account.Name})
		return e.accountView(u.tx, account)
	})
}

func (e *Engine) UpdateAccount(ctx context.Context, id uuid.UUID, r UpdateAccountRequest) Result[Account] {
	return run(ctx, e, "UpdateAccount", func(u *unit) (Account, error) {
		old, err := e.ledger.Account(u.tx, id)
		if err != nil {
			return Account{}, err
		}

		account, err := e.ledger.UpdateAccount(u.tx, id, ledger.AccountUpdate{Name: r.Name, Note: r.Note, Archived: r.Archived})
		if err != nil {
			return Account{}, err
		}

		u.touchAccount(account.ID)
		for _, c := range []Change{
			{Kind: ChangeAccount, ID: id, Field: "name", Old: old.Name, New: account.Name},
			{Kind: ChangeAccount, ID: id, Field: "note", Old: old.Note, New: account.Note},
			{Kind: ChangeAccount, ID: id, Field: "archived", Old: strconv.FormatBool(old.Archived), New: strconv.FormatBool(account.Archived)},
		} {
			if c.Old != c.New {
				u.change(c)
			}
		}

		return e.accountView(u.tx, account)
	})
}

// Account returns an account with its balances.
func (e *Engine) Account(ctx context.Context, id uuid.UUID) (Account, *Error) {
	return read(ctx, e, "Account", func(db *gorm.DB) (Account, error) {
		var account models.Account
		err := db.First(&account, "id = ?", id).Error
		if err != nil {
			return Account{}, err
		}

		return e.accountView(db, account)
	})
}

func (e *Engine) Accounts(ctx context.Context) ([]Account, *Error) {
	return read(ctx, e, "Accounts", func(db *gorm.DB) ([]Account, error) {
		accounts, err := e.ledger.Accounts(db)
		if err != nil {
			return nil, err
		}

		views := make([]Account, 0, len(accounts))
		for _, account := range accounts {
			view, err := e.accountView(db, account)
			if err != nil {
				return nil, err
			}
			views = append(views, view)
		}

		return views, nil
	})
}
