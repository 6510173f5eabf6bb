package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchRule assigns an envelope to imported transactions whose payee matches the pattern.
type MatchRule struct {
	DefaultModel
	Pattern    string    `json:"pattern" example:"*REWE*"` // Glob pattern, * matches any sequence of characters
	EnvelopeID uuid.UUID `json:"envelopeId" example:"a0909e84-e8f9-4cb6-82a5-025dff105ff2"`
	Priority   uint      `json:"priority" example:"3"` // Rules with lower priority values are applied first
}

func (r *MatchRule) BeforeSave(_ *gorm.DB) error {
	r.Pattern = strings.TrimSpace(r.Pattern)

	if r.Pattern == "" {
		return ErrMatchRulePatternEmpty
	}

	return nil
}

// OrderedMatchRules returns all match rules in the order they need to be applied.
func OrderedMatchRules(db *gorm.DB) ([]MatchRule, error) {
	var rules []MatchRule
	err := db.Order("priority ASC, created_at ASC").Find(&rules).Error
	return rules, err
}
