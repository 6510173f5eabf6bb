// Package allocation assigns money to envelopes and keeps the guardrails of
// the budget intact.
package allocation

import (
	"fmt"

	"github.com/envelope-zero/budget-engine/internal/budgetmath"
	"github.com/envelope-zero/budget-engine/internal/ledger"
	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/envelope-zero/budget-engine/internal/types"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// Service manages envelopes and their allocations for a budget in a single currency.
//
// All methods expect db to be a transaction that the caller commits or rolls back.
type Service struct {
	Currency currency.Unit
}

func New(unit currency.Unit) Service {
	return Service{Currency: unit}
}

// Fields of allocations and periods that changes are reported for.
const (
	FieldAllocated            = "allocated"
	FieldRolloverFromPrevious = "rolloverFromPrevious"
	FieldCarriedOver          = "carriedOver"
)

// Change is a change of an allocation or, for changes without envelope, of a period.
type Change struct {
	EnvelopeID uuid.UUID
	Month      types.Month
	Field      string
	Old        money.Money
	New        money.Money
}

func (s Service) money(d decimal.Decimal) money.Money {
	return money.New(d, s.Currency)
}

// check returns an error if m is not in the budget currency.
func (s Service) check(m money.Money) error {
	_, err := money.Zero(s.Currency).Add(m)
	return err
}

// openPeriod returns the period for the month and fails if it is closed.
func (s Service) openPeriod(db *gorm.DB, month types.Month) (models.BudgetPeriod, error) {
	period, err := models.GetOrCreatePeriod(db, month)
	if err != nil {
		return models.BudgetPeriod{}, err
	}

	if period.Closed {
		return models.BudgetPeriod{}, fmt.Errorf("%w: %s", models.ErrPeriodClosed, month)
	}

	return period, nil
}

// ReadyToAssign returns the money of the period that is not assigned yet.
//
// The value is derived from the transactions and allocations, not from the
// cached totals of the period.
func (s Service) ReadyToAssign(db *gorm.DB, period models.BudgetPeriod) (money.Money, error) {
	income, err := models.PeriodIncome(db, period.Month)
	if err != nil {
		return money.Money{}, err
	}

	allocations, err := models.PeriodAllocations(db, period.ID)
	if err != nil {
		return money.Money{}, err
	}

	allocated := decimal.Zero
	for _, a := range allocations {
		allocated = allocated.Add(a.Allocated)
	}

	return budgetmath.ReadyToAssign(s.money(income), s.money(period.CarriedOver), s.money(allocated))
}

// Available returns the money available in an envelope in the period, using
// the spent amount derived from the transactions.
func (s Service) Available(db *gorm.DB, allocation models.Allocation, month types.Month) (money.Money, error) {
	spent, err := models.EnvelopeSpent(db, allocation.EnvelopeID, month)
	if err != nil {
		return money.Money{}, err
	}

	return budgetmath.EnvelopeAvailable(s.money(allocation.Allocated), s.money(allocation.RolloverFromPrevious), s.money(spent))
}

// SetAllocation sets the allocated amount of the envelope in the month.
//
// Increases must be covered by the money ready to assign. Decreases are always possible.
func (s Service) SetAllocation(db *gorm.DB, envelopeID uuid.UUID, month types.Month, amount money.Money) (Change, error) {
	err := s.check(amount)
	if err != nil {
		return Change{}, err
	}

	if amount.IsNegative() {
		return Change{}, models.ErrAllocationNegative
	}

	envelope, err := s.Envelope(db, envelopeID)
	if err != nil {
		return Change{}, err
	}

	period, err := s.openPeriod(db, month)
	if err != nil {
		return Change{}, err
	}

	allocation, err := models.GetOrCreateAllocation(db, envelope.ID, period.ID)
	if err != nil {
		return Change{}, err
	}

	old := s.money(allocation.Allocated)
	delta, err := amount.Sub(old)
	if err != nil {
		return Change{}, err
	}

	if delta.IsPositive() {
		if envelope.Archived {
			return Change{}, fmt.Errorf("%w: %s", models.ErrEnvelopeArchived, envelope.Name)
		}

		ready, err := s.ReadyToAssign(db, period)
		if err != nil {
			return Change{}, err
		}

		if cmp, _ := delta.Cmp(ready); cmp > 0 {
			return Change{}, fmt.Errorf("%w: %s ready to assign, %s requested", ErrInsufficientReady, ready, delta)
		}
	}

	if !delta.IsZero() {
		err = db.Model(&allocation).Update("allocated", amount.Amount()).Error
		if err != nil {
			return Change{}, err
		}
	}

	err = ledger.Settle(db, month)
	if err != nil {
		return Change{}, err
	}

	return Change{EnvelopeID: envelope.ID, Month: month, Field: FieldAllocated, Old: old, New: amount}, nil
}

// AddToAllocation adds delta to the allocated amount of the envelope in the month.
//
// Negative deltas reduce the allocation, but not below zero.
func (s Service) AddToAllocation(db *gorm.DB, envelopeID uuid.UUID, month types.Month, delta money.Money) (Change, error) {
	err := s.check(delta)
	if err != nil {
		return Change{}, err
	}

	current := decimal.Zero
	period, err := models.FindPeriod(db, month)
	if err == nil {
		var allocation models.Allocation
		err = db.Where(&models.Allocation{EnvelopeID: envelopeID, PeriodID: period.ID}).First(&allocation).Error
		if err == nil {
			current = allocation.Allocated
		}
	}

	if err != nil && !models.IsNotFound(err) {
		return Change{}, err
	}

	amount, err := s.money(current).Add(delta)
	if err != nil {
		return Change{}, err
	}

	return s.SetAllocation(db, envelopeID, month, amount)
}

// MoveMoney moves money between the allocations of two envelopes in the same month.
func (s Service) MoveMoney(db *gorm.DB, from, to uuid.UUID, month types.Month, amount money.Money) ([]Change, error) {
	err := s.check(amount)
	if err != nil {
		return nil, err
	}

	if !amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}

	if from == to {
		return nil, ErrMoveSameEnvelope
	}

	source, err := s.Envelope(db, from)
	if err != nil {
		return nil, err
	}

	destination, err := s.Envelope(db, to)
	if err != nil {
		return nil, err
	}

	if destination.Archived {
		return nil, fmt.Errorf("%w: %s", models.ErrEnvelopeArchived, destination.Name)
	}

	period, err := s.openPeriod(db, month)
	if err != nil {
		return nil, err
	}

	fromAllocation, err := models.GetOrCreateAllocation(db, source.ID, period.ID)
	if err != nil {
		return nil, err
	}

	toAllocation, err := models.GetOrCreateAllocation(db, destination.ID, period.ID)
	if err != nil {
		return nil, err
	}

	available, err := s.Available(db, fromAllocation, month)
	if err != nil {
		return nil, err
	}

	if cmp, _ := amount.Cmp(available); cmp > 0 {
		return nil, fmt.Errorf("%w: %s available in %s, %s requested", ErrInsufficientAvailable, available, source.Name, amount)
	}

	if amount.Amount().GreaterThan(fromAllocation.Allocated) {
		return nil, fmt.Errorf("%w: %s allocated to %s, %s requested", models.ErrAllocationNegative, s.money(fromAllocation.Allocated), source.Name, amount)
	}

	changes := []Change{
		{EnvelopeID: source.ID, Month: month, Field: FieldAllocated, Old: s.money(fromAllocation.Allocated), New: s.money(fromAllocation.Allocated.Sub(amount.Amount()))},
		{EnvelopeID: destination.ID, Month: month, Field: FieldAllocated, Old: s.money(toAllocation.Allocated), New: s.money(toAllocation.Allocated.Add(amount.Amount()))},
	}

	err = db.Model(&fromAllocation).Update("allocated", changes[0].New.Amount()).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&toAllocation).Update("allocated", changes[1].New.Amount()).Error
	if err != nil {
		return nil, err
	}

	err = ledger.Settle(db, month)
	if err != nil {
		return nil, err
	}

	return changes, nil
}

// RolloverToNextMonth carries the available money of every envelope and the money
// ready to assign into the following month and closes the month.
//
// Overspent envelopes carry their negative balance.
func (s Service) RolloverToNextMonth(db *gorm.DB, month types.Month) ([]Change, error) {
	period, err := s.openPeriod(db, month)
	if err != nil {
		return nil, err
	}

	next, err := s.openPeriod(db, month.Next())
	if err != nil {
		return nil, err
	}

	// Make sure Spent is derived from the current transactions
	err = ledger.Recalculate(db, month)
	if err != nil {
		return nil, err
	}

	allocations, err := models.PeriodAllocations(db, period.ID)
	if err != nil {
		return nil, err
	}

	var changes []Change
	for _, allocation := range allocations {
		available, err := budgetmath.EnvelopeAvailable(s.money(allocation.Allocated), s.money(allocation.RolloverFromPrevious), s.money(allocation.Spent))
		if err != nil {
			return nil, err
		}
		rollover := budgetmath.Rollover(available)

		target, err := models.GetOrCreateAllocation(db, allocation.EnvelopeID, next.ID)
		if err != nil {
			return nil, err
		}

		old := s.money(target.RolloverFromPrevious)
		if rollover.Equal(old) {
			continue
		}

		err = db.Model(&target).Update("rollover_from_previous", rollover.Amount()).Error
		if err != nil {
			return nil, err
		}

		changes = append(changes, Change{
			EnvelopeID: allocation.EnvelopeID,
			Month:      next.Month,
			Field:      FieldRolloverFromPrevious,
			Old:        old,
			New:        rollover,
		})
	}

	ready, err := s.ReadyToAssign(db, period)
	if err != nil {
		return nil, err
	}

	changes = append(changes, Change{Month: next.Month, Field: FieldCarriedOver, Old: s.money(next.CarriedOver), New: ready})
	err = db.Model(&next).Update("carried_over", ready.Amount()).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&period).Update("closed", true).Error
	if err != nil {
		return nil, err
	}

	err = ledger.Settle(db, month, next.Month)
	if err != nil {
		return nil, err
	}

	return changes, nil
}
