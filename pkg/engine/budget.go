package engine

import (
	"context"
	"strconv"
	"time"

	"github.com/envelope-zero/budget-engine/internal/allocation"
	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SetAllocationRequest struct {
	EnvelopeID uuid.UUID
	Month      Month
	Amount     money.Money
}

type AddToAllocationRequest struct {
	EnvelopeID uuid.UUID
	Month      Month
	Delta      money.Money // Negative values reduce the allocation
}

type MoveMoneyRequest struct {
	FromEnvelopeID uuid.UUID
	ToEnvelopeID   uuid.UUID
	Month          Month
	Amount         money.Money
}

type AutoAssignRequest struct {
	Month  Month
	Policy string // NEAREST_GOAL_DATE (default) or SMALLEST_GAP
}

type CreateEnvelopeRequest struct {
	Name       string
	Group      string
	Color      string
	Note       string
	Hidden     bool
	GoalAmount *money.Money
	GoalDate   *time.Time
}

// UpdateEnvelopeRequest contains the fields to change. Nil fields are not changed.
type UpdateEnvelopeRequest struct {
	Name   *string
	Group  *string
	Color  *string
	Note   *string
	Hidden *bool
}

type SetGoalRequest struct {
	Amount money.Money
	Date   *time.Time
}

func (u *unit) allocationChanges(changes []allocation.Change) {
	for _, c := range changes {
		month := c.Month
		kind := ChangeAllocation
		if c.EnvelopeID == uuid.Nil {
			kind = ChangePeriod
		}

		u.change(Change{Kind: kind, ID: c.EnvelopeID, Month: &month, Field: c.Field, Old: c.Old.String(), New: c.New.String()})
		u.touchMonth(c.Month)
	}
}

// SetAllocation sets the amount allocated to an envelope in a month.
//
// Increases beyond the money ready to assign are rejected, decreases are always accepted.
func (e *Engine) SetAllocation(ctx context.Context, r SetAllocationRequest) Result[Allocation] {
	return run(ctx, e, "SetAllocation", func(u *unit) (Allocation, error) {
		change, err := e.allocation.SetAllocation(u.tx, r.EnvelopeID, r.Month, r.Amount)
		if err != nil {
			return Allocation{}, err
		}
		u.touchMonth(r.Month)

		if !change.Old.Equal(change.New) {
			u.allocationChanges([]allocation.Change{change})
		}

		return e.allocationView(u.tx, r.EnvelopeID, r.Month)
	})
}

// AddToAllocation changes the amount allocated to an envelope in a month by a delta.
func (e *Engine) AddToAllocation(ctx context.Context, r AddToAllocationRequest) Result[Allocation] {
	return run(ctx, e, "AddToAllocation", func(u *unit) (Allocation, error) {
		change, err := e.allocation.AddToAllocation(u.tx, r.EnvelopeID, r.Month, r.Delta)
		if err != nil {
			return Allocation{}, err
		}
		u.touchMonth(r.Month)

		if !change.Old.Equal(change.New) {
			u.allocationChanges([]allocation.Change{change})
		}

		return e.allocationView(u.tx, r.EnvelopeID, r.Month)
	})
}

// MoveMoney moves allocated money from one envelope to another in the same month.
func (e *Engine) MoveMoney(ctx context.Context, r MoveMoneyRequest) Result[[]Allocation] {
	return run(ctx, e, "MoveMoney", func(u *unit) ([]Allocation, error) {
		changes, err := e.allocation.MoveMoney(u.tx, r.FromEnvelopeID, r.ToEnvelopeID, r.Month, r.Amount)
		if err != nil {
			return nil, err
		}
		u.touchMonth(r.Month)
		u.allocationChanges(changes)

		from, err := e.allocationView(u.tx, r.FromEnvelopeID, r.Month)
		if err != nil {
			return nil, err
		}

		to, err := e.allocationView(u.tx, r.ToEnvelopeID, r.Month)
		if err != nil {
			return nil, err
		}

		return []Allocation{from, to}, nil
	})
}

// RolloverToNextMonth carries the available money of all envelopes and the money
// ready to assign into the next month and closes the month. The value is the
// next period.
func (e *Engine) RolloverToNextMonth(ctx context.Context, month Month) Result[Period] {
	return run(ctx, e, "RolloverToNextMonth", func(u *unit) (Period, error) {
		changes, err := e.allocation.RolloverToNextMonth(u.tx, month)
		if err != nil {
			return Period{}, err
		}
		u.touchMonth(month, month.Next())
		u.allocationChanges(changes)

		m := month
		u.change(Change{Kind: ChangePeriod, Month: &m, Field: "closed", Old: "false", New: "true"})

		return e.periodView(u.tx, month.Next())
	})
}

// AutoAssignToGoals distributes the money ready to assign to envelopes that
// have not reached their goal. The value is the period after the assignment.
func (e *Engine) AutoAssignToGoals(ctx context.Context, r AutoAssignRequest) Result[Period] {
	return run(ctx, e, "AutoAssignToGoals", func(u *unit) (Period, error) {
		changes, err := e.allocation.AutoAssignToGoals(u.tx, r.Month, allocation.Policy(r.Policy))
		if err != nil {
			return Period{}, err
		}
		u.touchMonth(r.Month)
		u.allocationChanges(changes)

		return e.periodView(u.tx, r.Month)
	})
}

// Envelopes returns the envelopes in their sort order.
func (e *Engine) Envelopes(ctx context.Context, includeArchived bool) ([]Envelope, *Error) {
	return read(ctx, e, "Envelopes", func(db *gorm.DB) ([]Envelope, error) {
		envelopes, err := e.allocation.Envelopes(db, includeArchived)
		if err != nil {
			return nil, err
		}

		return e.envelopeViews(envelopes), nil
	})
}

// Envelope returns a single envelope.
func (e *Engine) Envelope(ctx context.Context, id uuid.UUID) (Envelope, *Error) {
	return read(ctx, e, "Envelope", func(db *gorm.DB) (Envelope, error) {
		envelope, err := e.allocation.Envelope(db, id)
		if err != nil {
			return Envelope{}, err
		}

		return e.envelopeView(envelope), nil
	})
}

// Period returns the state of the budget for a month.
func (e *Engine) Period(ctx context.Context, month Month) (Period, *Error) {
	return read(ctx, e, "Period", func(db *gorm.DB) (Period, error) {
		return e.periodView(db, month)
	})
}

func envelopeChanges(old, updated models.Envelope) []Change {
	var changes []Change
	add := func(field, o, n string) {
		if o != n {
			changes = append(changes, Change{Kind: ChangeEnvelope, ID: updated.ID, Field: field, Old: o, New: n})
		}
	}

	add("name", old.Name, updated.Name)
	add("group", old.Group, updated.Group)
	add("color", old.Color, updated.Color)
	add("note", old.Note, updated.Note)
	add("hidden", strconv.FormatBool(old.Hidden), strconv.FormatBool(updated.Hidden))
	add("archived", strconv.FormatBool(old.Archived), strconv.FormatBool(updated.Archived))
	add("sortOrder", strconv.Itoa(old.SortOrder), strconv.Itoa(updated.SortOrder))
	add("goalAmount", goalString(old), goalString(updated))
	add("goalDate", dateString(old.GoalDate), dateString(updated.GoalDate))

	return changes
}

func goalString(e models.Envelope) string {
	if !e.HasGoal() {
		return ""
	}
	return e.GoalAmount.Decimal.String()
}

func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

// envelope runs an operation on a single envelope and records the changed fields.
func (e *Engine) envelope(ctx context.Context, operation string, id uuid.UUID, fn func(u *unit) (models.Envelope, error)) Result[Envelope] {
	return run(ctx, e, operation, func(u *unit) (Envelope, error) {
		old, err := e.allocation.Envelope(u.tx, id)
		if err != nil {
			return Envelope{}, err
		}

		updated, err := fn(u)
		if err != nil {
			return Envelope{}, err
		}

		for _, c := range envelopeChanges(old, updated) {
			u.change(c)
		}

		return e.envelopeView(updated), nil
	})
}

func (e *Engine) CreateEnvelope(ctx context.Context, r CreateEnvelopeRequest) Result[Envelope] {
	return run(ctx, e, "CreateEnvelope", func(u *unit) (Envelope, error) {
		envelope, err := e.allocation.CreateEnvelope(u.tx, allocation.EnvelopeInput{
			Name:       r.Name,
			Group:      r.Group,
			Color:      r.Color,
			Note:       r.Note,
			Hidden:     r.Hidden,
			GoalAmount: r.GoalAmount,
			GoalDate:   r.GoalDate,
		})
		if err != nil {
			return Envelope{}, err
		}

		u.change(Change{Kind: ChangeEnvelope, ID: envelope.ID, Field: "name", New: envelope.Name})
		return e.envelopeView(envelope), nil
	})
}

func (e *Engine) UpdateEnvelope(ctx context.Context, id uuid.UUID, r UpdateEnvelopeRequest) Result[Envelope] {
	return e.envelope(ctx, "UpdateEnvelope", id, func(u *unit) (models.Envelope, error) {
		return e.allocation.UpdateEnvelope(u.tx, id, allocation.EnvelopeUpdate{
			Name:   r.Name,
			Group:  r.Group,
			Color:  r.Color,
			Note:   r.Note,
			Hidden: r.Hidden,
		})
	})
}

// ArchiveEnvelope archives an envelope. Archived envelopes keep their history
// but cannot receive new money.
func (e *Engine) ArchiveEnvelope(ctx context.Context, id uuid.UUID) Result[Envelope] {
	return e.envelope(ctx, "ArchiveEnvelope", id, func(u *unit) (models.Envelope, error) {
		return e.allocation.ArchiveEnvelope(u.tx, id)
	})
}

func (e *Engine) UnarchiveEnvelope(ctx context.Context, id uuid.UUID) Result[Envelope] {
	return e.envelope(ctx, "UnarchiveEnvelope", id, func(u *unit) (models.Envelope, error) {
		return e.allocation.UnarchiveEnvelope(u.tx, id)
	})
}

func (e *Engine) SetGoal(ctx context.Context, id uuid.UUID, r SetGoalRequest) Result[Envelope] {
	return e.envelope(ctx, "SetGoal", id, func(u *unit) (models.Envelope, error) {
		return e.allocation.SetGoal(u.tx, id, r.Amount, r.Date)
	})
}

func (e *Engine) ClearGoal(ctx context.Context, id uuid.UUID) Result[Envelope] {
	return e.envelope(ctx, "ClearGoal", id, func(u *unit) (models.Envelope, error) {
		return e.allocation.ClearGoal(u.tx, id)
	})
}

// ReorderEnvelopes sets the sort order of the active envelopes to the order of the IDs.
func (e *Engine) ReorderEnvelopes(ctx context.Context, ids []uuid.UUID) Result[[]Envelope] {
	return run(ctx, e, "ReorderEnvelopes", func(u *unit) ([]Envelope, error) {
		before, err := e.allocation.Envelopes(u.tx, true)
		if err != nil {
			return nil, err
		}

		envelopes, err := e.allocation.ReorderEnvelopes(u.tx, ids)
		if err != nil {
			return nil, err
		}

		old := make(map[uuid.UUID]models.Envelope, len(before))
		for _, envelope := range before {
			old[envelope.ID] = envelope
		}

		for _, envelope := range envelopes {
			for _, c := range envelopeChanges(old[envelope.ID], envelope) {
				u.change(c)
			}
		}

		return e.envelopeViews(envelopes), nil
	})
}
