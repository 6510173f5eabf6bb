// Package budgetmath holds the formulas of envelope budgeting.
//
// Every other package derives ready to assign, available and rollover
// amounts through these functions.
package budgetmath

import (
	"github.com/envelope-zero/budget-engine/pkg/money"
)

// ReadyToAssign returns the money of a period that is not assigned to any envelope.
//
//	income + carriedOver - allocated
func ReadyToAssign(income, carriedOver, allocated money.Money) (money.Money, error) {
	available, err := income.Add(carriedOver)
	if err != nil {
		return money.Money{}, err
	}

	return available.Sub(allocated)
}

// EnvelopeAvailable returns the money available in an envelope for a period.
//
//	allocated + rolloverFromPrevious - spent
func EnvelopeAvailable(allocated, rolloverFromPrevious, spent money.Money) (money.Money, error) {
	available, err := allocated.Add(rolloverFromPrevious)
	if err != nil {
		return money.Money{}, err
	}

	return available.Sub(spent)
}

// Rollover returns the amount carried into the next period for an envelope.
//
// Negative amounts are overspending that the next period has to cover.
func Rollover(available money.Money) money.Money {
	return available
}
