package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Allocation represents the allocation of money to an Envelope for a specific budget period.
type Allocation struct {
	DefaultModel
	EnvelopeID           uuid.UUID       `json:"envelopeId" gorm:"uniqueIndex:allocation_envelope_period" example:"a0909e84-e8f9-4cb6-82a5-025dff105ff2"`
	PeriodID             uuid.UUID       `json:"periodId" gorm:"uniqueIndex:allocation_envelope_period;index" example:"772d6956-ecba-485b-8a27-46a506c5a2a3"`
	Allocated            decimal.Decimal `json:"allocated" gorm:"type:DECIMAL(20,8)" example:"100"`
	RolloverFromPrevious decimal.Decimal `json:"rolloverFromPrevious" gorm:"type:DECIMAL(20,8)" example:"-12.40"`
	Spent                decimal.Decimal `json:"spent" gorm:"type:DECIMAL(20,8)" example:"57.10"`
}

func (a *Allocation) BeforeSave(_ *gorm.DB) error {
	if a.Allocated.IsNegative() {
		return ErrAllocationNegative
	}

	return nil
}

// GetOrCreateAllocation returns the allocation of the envelope in the period, creating it if needed.
func GetOrCreateAllocation(db *gorm.DB, envelopeID, periodID uuid.UUID) (Allocation, error) {
	var allocation Allocation
	err := db.Where(&Allocation{EnvelopeID: envelopeID, PeriodID: periodID}).First(&allocation).Error
	if err == nil {
		return allocation, nil
	}

	if !IsNotFound(err) {
		return Allocation{}, err
	}

	allocation = Allocation{EnvelopeID: envelopeID, PeriodID: periodID}
	err = db.Create(&allocation).Error
	if err != nil {
		return Allocation{}, err
	}

	return allocation, nil
}

// PeriodAllocations returns all allocations of a period, ordered by creation.
func PeriodAllocations(db *gorm.DB, periodID uuid.UUID) ([]Allocation, error) {
	var allocations []Allocation
	err := db.Where(&Allocation{PeriodID: periodID}).Order("created_at, id").Find(&allocations).Error
	return allocations, err
}
