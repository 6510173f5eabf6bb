package allocation

import (
	"fmt"
	"strings"
	"time"

	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EnvelopeInput is the input to create an envelope.
type EnvelopeInput struct {
	Name       string
	Group      string
	Color      string
	Note       string
	Hidden     bool
	GoalAmount *money.Money
	GoalDate   *time.Time
}

// EnvelopeUpdate contains the fields to change on an envelope. Nil fields are not changed.
type EnvelopeUpdate struct {
	Name   *string
	Group  *string
	Color  *string
	Note   *string
	Hidden *bool
}

// Envelope returns the envelope with the ID.
func (s Service) Envelope(db *gorm.DB, id uuid.UUID) (models.Envelope, error) {
	var envelope models.Envelope
	err := db.First(&envelope, "id = ?", id).Error
	return envelope, err
}

// Envelopes returns all envelopes in their sort order.
func (s Service) Envelopes(db *gorm.DB, includeArchived bool) ([]models.Envelope, error) {
	query := db.Order("sort_order ASC, name ASC, id ASC")
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}

	var envelopes []models.Envelope
	err := query.Find(&envelopes).Error
	return envelopes, err
}

// uniqueName returns an error if an active envelope other than id has the name.
func (s Service) uniqueName(db *gorm.DB, name string, id uuid.UUID) error {
	var count int64
	err := db.
		Model(&models.Envelope{}).
		Where("LOWER(name) = ? AND archived = ? AND id != ?", strings.ToLower(strings.TrimSpace(name)), false, id).
		Count(&count).
		Error
	if err != nil {
		return err
	}

	if count > 0 {
		return fmt.Errorf("%w: %s", ErrEnvelopeNameNotUnique, strings.TrimSpace(name))
	}

	return nil
}

// CreateEnvelope creates an envelope at the end of the sort order.
func (s Service) CreateEnvelope(db *gorm.DB, in EnvelopeInput) (models.Envelope, error) {
	err := s.uniqueName(db, in.Name, uuid.Nil)
	if err != nil {
		return models.Envelope{}, err
	}

	var last models.Envelope
	sortOrder := 0
	err = db.Order("sort_order DESC").First(&last).Error
	if err == nil {
		sortOrder = last.SortOrder + 1
	} else if !models.IsNotFound(err) {
		return models.Envelope{}, err
	}

	envelope := models.Envelope{
		Name:      in.Name,
		Group:     in.Group,
		Color:     in.Color,
		Note:      in.Note,
		Hidden:    in.Hidden,
		GoalDate:  in.GoalDate,
		SortOrder: sortOrder,
	}

	if in.GoalAmount != nil {
		err = s.check(*in.GoalAmount)
		if err != nil {
			return models.Envelope{}, err
		}
		envelope.GoalAmount = decimal.NewNullDecimal(in.GoalAmount.Amount())
	}

	err = db.Create(&envelope).Error
	if err != nil {
		return models.Envelope{}, err
	}

	return envelope, nil
}

// UpdateEnvelope updates the envelope.
func (s Service) UpdateEnvelope(db *gorm.DB, id uuid.UUID, u EnvelopeUpdate) (models.Envelope, error) {
	envelope, err := s.Envelope(db, id)
	if err != nil {
		return models.Envelope{}, err
	}

	if u.Name != nil {
		if !envelope.Archived {
			err = s.uniqueName(db, *u.Name, envelope.ID)
			if err != nil {
				return models.Envelope{}, err
			}
		}
		envelope.Name = *u.Name
	}

	if u.Group != nil {
		envelope.Group = *u.Group
	}

	if u.Color != nil {
		envelope.Color = *u.Color
	}

	if u.Note != nil {
		envelope.Note = *u.Note
	}

	if u.Hidden != nil {
		envelope.Hidden = *u.Hidden
	}

	err = db.Save(&envelope).Error
	if err != nil {
		return models.Envelope{}, err
	}

	return envelope, nil
}

// ArchiveEnvelope archives the envelope. Its history stays intact.
func (s Service) ArchiveEnvelope(db *gorm.DB, id uuid.UUID) (models.Envelope, error) {
	return s.setArchived(db, id, true)
}

// UnarchiveEnvelope makes an archived envelope active again.
//
// This fails if an active envelope with the same name exists.
func (s Service) UnarchiveEnvelope(db *gorm.DB, id uuid.UUID) (models.Envelope, error) {
	return s.setArchived(db, id, false)
}

func (s Service) setArchived(db *gorm.DB, id uuid.UUID, archived bool) (models.Envelope, error) {
	envelope, err := s.Envelope(db, id)
	if err != nil {
		return models.Envelope{}, err
	}

	if envelope.Archived == archived {
		return envelope, nil
	}

	if !archived {
		err = s.uniqueName(db, envelope.Name, envelope.ID)
		if err != nil {
			return models.Envelope{}, err
		}
	}

	envelope.Archived = archived
	err = db.Save(&envelope).Error
	if err != nil {
		return models.Envelope{}, err
	}

	return envelope, nil
}

// ReorderEnvelopes sets the sort order of the envelopes to the order of the IDs.
//
// ids must contain every active envelope exactly once. Archived envelopes
// may be included.
func (s Service) ReorderEnvelopes(db *gorm.DB, ids []uuid.UUID) ([]models.Envelope, error) {
	active, err := s.Envelopes(db, false)
	if err != nil {
		return nil, err
	}

	position := make(map[uuid.UUID]int, len(ids))
	for i, id := range ids {
		if _, ok := position[id]; ok {
			return nil, fmt.Errorf("%w: %s is listed twice", ErrReorderIncomplete, id)
		}
		position[id] = i
	}

	for _, envelope := range active {
		if _, ok := position[envelope.ID]; !ok {
			return nil, fmt.Errorf("%w: %s is missing", ErrReorderIncomplete, envelope.Name)
		}
	}

	envelopes := make([]models.Envelope, 0, len(ids))
	for i, id := range ids {
		envelope, err := s.Envelope(db, id)
		if err != nil {
			return nil, err
		}

		err = db.Model(&envelope).Update("sort_order", i).Error
		if err != nil {
			return nil, err
		}
		envelope.SortOrder = i

		envelopes = append(envelopes, envelope)
	}

	return envelopes, nil
}

// SetGoal sets the goal of the envelope. The date is optional.
func (s Service) SetGoal(db *gorm.DB, id uuid.UUID, amount money.Money, date *time.Time) (models.Envelope, error) {
	err := s.check(amount)
	if err != nil {
		return models.Envelope{}, err
	}

	if !amount.IsPositive() {
		return models.Envelope{}, models.ErrGoalAmountNotPositive
	}

	envelope, err := s.Envelope(db, id)
	if err != nil {
		return models.Envelope{}, err
	}

	envelope.GoalAmount = decimal.NewNullDecimal(amount.Amount())
	envelope.GoalDate = date

	err = db.Save(&envelope).Error
	if err != nil {
		return models.Envelope{}, err
	}

	return envelope, nil
}

// ClearGoal removes the goal of the envelope.
func (s Service) ClearGoal(db *gorm.DB, id uuid.UUID) (models.Envelope, error) {
	envelope, err := s.Envelope(db, id)
	if err != nil {
		return models.Envelope{}, err
	}

	envelope.GoalAmount = decimal.NullDecimal{}
	envelope.GoalDate = nil

	err = db.Save(&envelope).Error
	if err != nil {
		return models.Envelope{}, err
	}

	return envelope, nil
}
