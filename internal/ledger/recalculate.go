package ledger

import (
	"errors"
	"fmt"

	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/envelope-zero/budget-engine/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// ErrDrift is returned when persisted totals do not match the values derived from transactions.
var ErrDrift = errors.New("persisted budget totals do not match the recorded transactions")

// Settle recalculates the months and verifies the result.
func Settle(db *gorm.DB, months ...types.Month) error {
	err := Recalculate(db, months...)
	if err != nil {
		return err
	}

	return Verify(db, months...)
}

// Recalculate re-derives the Spent of all allocations and the totals of the periods
// for the months from the transactions and allocations.
//
// Envelopes that have transactions in a month get an allocation for it.
func Recalculate(db *gorm.DB, months ...types.Month) error {
	for _, month := range unique(months) {
		err := recalculate(db, month)
		if err != nil {
			return fmt.Errorf("recalculating %s: %w", month, err)
		}
	}

	return nil
}

func recalculate(db *gorm.DB, month types.Month) error {
	period, err := models.GetOrCreatePeriod(db, month)
	if err != nil {
		return err
	}

	active, err := models.EnvelopesWithActivity(db, month)
	if err != nil {
		return err
	}

	for _, id := range active {
		_, err := models.GetOrCreateAllocation(db, id, period.ID)
		if err != nil {
			return err
		}
	}

	allocations, err := models.PeriodAllocations(db, period.ID)
	if err != nil {
		return err
	}

	allocated := decimal.Zero
	spent := decimal.Zero
	for _, allocation := range allocations {
		s, err := models.EnvelopeSpent(db, allocation.EnvelopeID, month)
		if err != nil {
			return err
		}

		if !s.Equal(allocation.Spent) {
			err = db.Model(&allocation).Update("spent", s).Error
			if err != nil {
				return err
			}
		}

		allocated = allocated.Add(allocation.Allocated)
		spent = spent.Add(s)
	}

	income, err := models.PeriodIncome(db, month)
	if err != nil {
		return err
	}

	return db.Model(&period).Select("TotalIncome", "TotalAllocated", "TotalSpent").Updates(models.BudgetPeriod{
		TotalIncome:    income,
		TotalAllocated: allocated,
		TotalSpent:     spent,
	}).Error
}

// Verify re-derives all values that Recalculate writes for the months and
// returns ErrDrift if any persisted value differs.
func Verify(db *gorm.DB, months ...types.Month) error {
	for _, month := range unique(months) {
		err := verify(db, month)
		if err != nil {
			return err
		}
	}

	return nil
}

func verify(db *gorm.DB, month types.Month) error {
	period, err := models.FindPeriod(db, month)
	if err != nil {
		return err
	}

	allocations, err := models.PeriodAllocations(db, period.ID)
	if err != nil {
		return err
	}

	allocated := decimal.Zero
	spent := decimal.Zero
	covered := make(map[string]bool, len(allocations))
	for _, allocation := range allocations {
		s, err := models.EnvelopeSpent(db, allocation.EnvelopeID, month)
		if err != nil {
			return err
		}

		if !s.Equal(allocation.Spent) {
			return fmt.Errorf("%w: spent of envelope %s in %s is %s, transactions sum up to %s", ErrDrift, allocation.EnvelopeID, month, allocation.Spent, s)
		}

		allocated = allocated.Add(allocation.Allocated)
		spent = spent.Add(s)
		covered[allocation.EnvelopeID.String()] = true
	}

	active, err := models.EnvelopesWithActivity(db, month)
	if err != nil {
		return err
	}

	for _, id := range active {
		if !covered[id.String()] {
			return fmt.Errorf("%w: envelope %s has transactions in %s but no allocation", ErrDrift, id, month)
		}
	}

	income, err := models.PeriodIncome(db, month)
	if err != nil {
		return err
	}

	switch {
	case !income.Equal(period.TotalIncome):
		return fmt.Errorf("%w: income of %s is %s, transactions sum up to %s", ErrDrift, month, period.TotalIncome, income)
	case !allocated.Equal(period.TotalAllocated):
		return fmt.Errorf("%w: allocated in %s is %s, allocations sum up to %s", ErrDrift, month, period.TotalAllocated, allocated)
	case !spent.Equal(period.TotalSpent):
		return fmt.Errorf("%w: spent in %s is %s, allocations sum up to %s", ErrDrift, month, period.TotalSpent, spent)
	}

	return nil
}

// unique returns the distinct months in ascending order.
func unique(months []types.Month) []types.Month {
	out := make([]types.Month, 0, len(months))
	for _, m := range months {
		if !slices.ContainsFunc(out, m.Equal) {
			out = append(out, m)
		}
	}

	slices.SortFunc(out, func(a, b types.Month) int {
		switch {
		case a.Before(b):
			return -1
		case a.After(b):
			return 1
		}
		return 0
	})

	return out
}
