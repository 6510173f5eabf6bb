package importer

import (
	"fmt"

	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRuleInput is the input to create a match rule.
type MatchRuleInput struct {
	Pattern    string
	EnvelopeID uuid.UUID
	Priority   uint
}

// MatchRuleUpdate contains the fields to change on a match rule. Nil fields are not changed.
type MatchRuleUpdate struct {
	Pattern    *string
	EnvelopeID *uuid.UUID
	Priority   *uint
}

// ruleEnvelope checks that the envelope exists and is active.
func ruleEnvelope(db *gorm.DB, id uuid.UUID) error {
	var envelope models.Envelope
	err := db.First(&envelope, "id = ?", id).Error
	if err != nil {
		return err
	}

	if envelope.Archived {
		return fmt.Errorf("%w: %s", models.ErrEnvelopeArchived, envelope.Name)
	}

	return nil
}

// MatchRules returns all match rules in the order they are applied.
func (i Importer) MatchRules(db *gorm.DB) ([]models.MatchRule, error) {
	return models.OrderedMatchRules(db)
}

func (i Importer) MatchRule(db *gorm.DB, id uuid.UUID) (models.MatchRule, error) {
	var rule models.MatchRule
	err := db.First(&rule, "id = ?", id).Error
	return rule, err
}

func (i Importer) CreateMatchRule(db *gorm.DB, in MatchRuleInput) (models.MatchRule, error) {
	err := ruleEnvelope(db, in.EnvelopeID)
	if err != nil {
		return models.MatchRule{}, err
	}

	rule := models.MatchRule{
		Pattern:    in.Pattern,
		EnvelopeID: in.EnvelopeID,
		Priority:   in.Priority,
	}

	err = db.Create(&rule).Error
	if err != nil {
		return models.MatchRule{}, err
	}

	return rule, nil
}

func (i Importer) UpdateMatchRule(db *gorm.DB, id uuid.UUID, u MatchRuleUpdate) (models.MatchRule, error) {
	rule, err := i.MatchRule(db, id)
	if err != nil {
		return models.MatchRule{}, err
	}

	if u.EnvelopeID != nil {
		err = ruleEnvelope(db, *u.EnvelopeID)
		if err != nil {
			return models.MatchRule{}, err
		}
		rule.EnvelopeID = *u.EnvelopeID
	}

	if u.Pattern != nil {
		rule.Pattern = *u.Pattern
	}

	if u.Priority != nil {
		rule.Priority = *u.Priority
	}

	err = db.Omit(clause.Associations).Save(&rule).Error
	if err != nil {
		return models.MatchRule{}, err
	}

	return rule, nil
}

func (i Importer) DeleteMatchRule(db *gorm.DB, id uuid.UUID) (models.MatchRule, error) {
	rule, err := i.MatchRule(db, id)
	if err != nil {
		return models.MatchRule{}, err
	}

	err = db.Delete(&rule).Error
	if err != nil {
		return models.MatchRule{}, err
	}

	return rule, nil
}
