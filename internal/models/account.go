package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Account represents an asset account, e.g. a bank account.
type Account struct {
	DefaultModel
	Name             string     `json:"name" gorm:"uniqueIndex:account_name" example:"Checking"`
	Note             string     `json:"note" example:"Joint account"`
	Currency         string     `json:"currency" example:"EUR"`                        // ISO 4217 code
	LastReconciledAt *time.Time `json:"lastReconciledAt" example:"2024-03-01T17:12:00Z"` // Last time a statement was reconciled
	Archived         bool       `json:"archived" example:"false"`
}

func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)
	a.Currency = strings.ToUpper(strings.TrimSpace(a.Currency))

	if a.Name == "" {
		return ErrAccountNameEmpty
	}

	return nil
}
