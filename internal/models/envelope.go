package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Envelope represents an envelope in your budget.
//
// Envelopes are archived instead of deleted so that their history stays intact.
type Envelope struct {
	DefaultModel
	Name       string              `json:"name" gorm:"index" example:"Groceries"`
	Group      string              `json:"group" example:"Living"`
	Color      string              `json:"color" example:"#3b82f6"`
	Note       string              `json:"note" example:"Supermarket and farmers market"`
	GoalAmount decimal.NullDecimal `json:"goalAmount" gorm:"type:DECIMAL(20,8)" swaggertype:"primitive,string"`
	GoalDate   *time.Time          `json:"goalDate"`
	Archived   bool                `json:"archived" gorm:"index"`
	Hidden     bool                `json:"hidden"`
	SortOrder  int                 `json:"sortOrder"`
}

func (e *Envelope) BeforeSave(_ *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Group = strings.TrimSpace(e.Group)
	e.Color = strings.TrimSpace(e.Color)
	e.Note = strings.TrimSpace(e.Note)

	if e.Name == "" {
		return ErrEnvelopeNameEmpty
	}

	if e.GoalAmount.Valid && !e.GoalAmount.Decimal.IsPositive() {
		return ErrGoalAmountNotPositive
	}

	if e.GoalDate != nil {
		d := e.GoalDate.UTC()
		d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		e.GoalDate = &d
	}

	return nil
}

// HasGoal reports whether the envelope has a goal set.
func (e Envelope) HasGoal() bool {
	return e.GoalAmount.Valid
}
