package models

import (
	"fmt"

	"github.com/envelope-zero/budget-engine/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetPeriod is the budget for one month.
//
// The totals are caches of values that are re-derived from allocations and
// transactions after every mutation, they are never incremented in place.
type BudgetPeriod struct {
	DefaultModel
	Month          types.Month     `json:"month" gorm:"uniqueIndex:budget_period_month" example:"2024-05"`
	TotalIncome    decimal.Decimal `json:"totalIncome" gorm:"type:DECIMAL(20,8)" example:"2317.34"`    // Net of all unassigned flows in the month
	TotalAllocated decimal.Decimal `json:"totalAllocated" gorm:"type:DECIMAL(20,8)" example:"2100"`    // Sum of all allocations of the period
	TotalSpent     decimal.Decimal `json:"totalSpent" gorm:"type:DECIMAL(20,8)" example:"133.70"`      // Sum of the Spent of all allocations of the period
	CarriedOver    decimal.Decimal `json:"carriedOver" gorm:"type:DECIMAL(20,8)" example:"217.34"`     // Ready to assign carried over from the previous period
	Closed         bool            `json:"closed" example:"false"`                                      // Closed periods reject allocation changes
}

// GetOrCreatePeriod returns the period for the month, creating it if it does not exist yet.
func GetOrCreatePeriod(db *gorm.DB, month types.Month) (BudgetPeriod, error) {
	period, err := FindPeriod(db, month)
	if err == nil {
		return period, nil
	}

	if !IsNotFound(err) {
		return BudgetPeriod{}, err
	}

	period = BudgetPeriod{Month: month}
	err = db.Create(&period).Error
	if err != nil {
		return BudgetPeriod{}, err
	}

	return period, nil
}

// FindPeriod returns the period for the month.
func FindPeriod(db *gorm.DB, month types.Month) (BudgetPeriod, error) {
	var period BudgetPeriod
	err := db.Where("month = ?", month).First(&period).Error
	return period, err
}

// CheckPeriodOpen returns ErrPeriodClosed if the period for the month is closed.
//
// Months without a period are open.
func CheckPeriodOpen(db *gorm.DB, month types.Month) error {
	period, err := FindPeriod(db, month)
	if IsNotFound(err) {
		return nil
	} else if err != nil {
		return err
	}

	if period.Closed {
		return fmt.Errorf("%w: %s", ErrPeriodClosed, month)
	}

	return nil
}
