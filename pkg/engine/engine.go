// Package engine is the entry point to the envelope budgeting engine.
//
// Every mutating operation runs in a single database transaction and returns a
// Result with the state after the operation, the changes it made and the errors
// that occurred. Failed operations never persist anything. Read operations return
// their value and an *Error.
package engine

import (
	"context"
	"time"

	"github.com/envelope-zero/budget-engine/internal/allocation"
	"github.com/envelope-zero/budget-engine/internal/budgeterrors"
	"github.com/envelope-zero/budget-engine/internal/importer"
	"github.com/envelope-zero/budget-engine/internal/ledger"
	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/envelope-zero/budget-engine/internal/reconcile"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

const (
	messageUnexpected = "an unexpected error occurred, please try again later"
	messageCancelled  = "the operation was cancelled before it completed"
)

// Options configures an Engine.
type Options struct {
	Currency string           // ISO 4217 code of the budget currency, defaults to EUR
	Clock    func() time.Time // Defaults to time.Now
	Logger   *zerolog.Logger  // Defaults to the global zerolog logger
}

// Engine is the budgeting engine for a single budget.
//
// It holds no state besides its configuration, all data is read from the database
// on every call.
type Engine struct {
	db       *gorm.DB
	currency currency.Unit
	log      zerolog.Logger

	allocation allocation.Service
	ledger     ledger.Service
	importer   importer.Importer
	reconcile  reconcile.Service
}

// New returns an Engine for the database and migrates the database schema.
func New(db *gorm.DB, opts Options) (*Engine, error) {
	code := opts.Currency
	if code == "" {
		code = "EUR"
	}

	unit, err := money.ParseCurrency(code)
	if err != nil {
		return nil, err
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	err = models.Migrate(db)
	if err != nil {
		return nil, err
	}

	return &Engine{
		db:         db,
		currency:   unit,
		log:        logger.With().Str("component", "engine").Logger(),
		allocation: allocation.New(unit),
		ledger:     ledger.New(unit),
		importer:   importer.New(unit),
		reconcile:  reconcile.New(unit, clock),
	}, nil
}

// Currency returns the budget currency.
func (e *Engine) Currency() currency.Unit {
	return e.currency
}

// unit is the state of a single mutating operation.
type unit struct {
	ctx      context.Context
	tx       *gorm.DB
	months   []Month
	accounts []uuid.UUID
	changes  []Change
}

// step returns an error if the operation has been cancelled.
func (u *unit) step() error {
	return u.ctx.Err()
}

func (u *unit) touchMonth(months ...Month) {
	for _, m := range months {
		if !slices.ContainsFunc(u.months, m.Equal) {
			u.months = append(u.months, m)
		}
	}
}

func (u *unit) touchAccount(ids ...uuid.UUID) {
	for _, id := range ids {
		if !slices.Contains(u.accounts, id) {
			u.accounts = append(u.accounts, id)
		}
	}
}

func (u *unit) change(c Change) {
	u.changes = append(u.changes, c)
}

// run executes fn in a database transaction and builds the result.
//
// A panic is reported as an unexpected error. The transaction is rolled back
// by gorm before the panic reaches the deferred recover.
func run[T any](ctx context.Context, e *Engine, operation string, fn func(u *unit) (T, error)) (result Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			result = failed[T](e.recovered(operation, r))
		}
	}()

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u := &unit{ctx: ctx, tx: tx, changes: []Change{}}
		if err := u.step(); err != nil {
			return err
		}

		value, err := fn(u)
		if err != nil {
			return err
		}

		if err := u.step(); err != nil {
			return err
		}

		snapshot, err := e.snapshot(tx, u.months, u.accounts)
		if err != nil {
			return err
		}

		if err := u.step(); err != nil {
			return err
		}

		result = Result[T]{
			Success:  true,
			Value:    value,
			Snapshot: snapshot,
			Changes:  u.changes,
			Errors:   []Error{},
		}
		return nil
	})
	if err != nil {
		return failed[T](e.fail(operation, err))
	}

	return result
}

func failed[T any](err Error) Result[T] {
	return Result[T]{
		Snapshot: Snapshot{Periods: []Period{}, Accounts: []Account{}},
		Changes:  []Change{},
		Errors:   []Error{err},
	}
}

// read executes a read-only operation.
func read[T any](ctx context.Context, e *Engine, operation string, fn func(db *gorm.DB) (T, error)) (value T, failure *Error) {
	var zero T
	defer func() {
		if r := recover(); r != nil {
			f := e.recovered(operation, r)
			value, failure = zero, &f
		}
	}()

	if err := ctx.Err(); err != nil {
		f := e.fail(operation, err)
		return zero, &f
	}

	value, err := fn(e.db.WithContext(ctx))
	if err != nil {
		f := e.fail(operation, err)
		return zero, &f
	}

	return value, nil
}

// recovered logs a panic and converts it to an unexpected Error.
func (e *Engine) recovered(operation string, r any) Error {
	e.log.Error().Str("operation", operation).Interface("panic", r).Msg("operation panicked")
	return Error{Code: CodeUnexpected, Message: messageUnexpected}
}

// fail converts err to an Error. Unexpected errors are logged and replaced
// with a generic message.
func (e *Engine) fail(operation string, err error) Error {
	if budgeterrors.Cancelled(err) {
		e.log.Warn().Str("operation", operation).Err(err).Msg("operation cancelled")
		return Error{Code: CodeUnexpected, Message: messageCancelled}
	}

	kind := budgeterrors.KindOf(err)
	if kind == budgeterrors.KindUnexpected {
		e.log.Error().Str("operation", operation).Err(err).Msg("operation failed")
		return Error{Code: CodeUnexpected, Message: messageUnexpected}
	}

	e.log.Debug().Str("operation", operation).Str("code", string(kind)).Err(err).Msg("operation rejected")
	return Error{Code: Code(kind), Message: err.Error()}
}

// snapshot reads the state of the months and accounts.
func (e *Engine) snapshot(db *gorm.DB, months []Month, accounts []uuid.UUID) (Snapshot, error) {
	snapshot := Snapshot{
		Periods:  make([]Period, 0, len(months)),
		Accounts: make([]Account, 0, len(accounts)),
	}

	sorted := slices.Clone(months)
	slices.SortFunc(sorted, func(a, b Month) int {
		switch {
		case a.Before(b):
			return -1
		case a.After(b):
			return 1
		}
		return 0
	})

	for _, month := range sorted {
		period, err := e.periodView(db, month)
		if err != nil {
			return Snapshot{}, err
		}
		snapshot.Periods = append(snapshot.Periods, period)
	}

	for _, id := range accounts {
		var account models.Account
		err := db.First(&account, "id = ?", id).Error
		if err != nil {
			return Snapshot{}, err
		}

		view, err := e.accountView(db, account)
		if err != nil {
			return Snapshot{}, err
		}
		snapshot.Accounts = append(snapshot.Accounts, view)
	}

	return snapshot, nil
}
