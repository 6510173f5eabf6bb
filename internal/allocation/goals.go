package allocation

import (
	"fmt"
	"strings"

	"github.com/envelope-zero/budget-engine/internal/ledger"
	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/envelope-zero/budget-engine/internal/types"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Policy decides the order in which envelopes with goals receive money.
type Policy string

const (
	PolicyNearestGoalDate Policy = "NEAREST_GOAL_DATE" // Earliest goal date first, envelopes without date last
	PolicySmallestGap     Policy = "SMALLEST_GAP"      // Smallest missing amount first
)

// gap is an envelope that is missing money to reach its goal.
type gap struct {
	envelope   models.Envelope
	allocation models.Allocation
	missing    money.Money
}

// AutoAssignToGoals distributes the money ready to assign in the month to active
// envelopes that have not reached their goal yet.
//
// Every envelope receives at most the amount missing to its goal. The returned
// changes only contain envelopes that received money.
func (s Service) AutoAssignToGoals(db *gorm.DB, month types.Month, policy Policy) ([]Change, error) {
	if policy == "" {
		policy = PolicyNearestGoalDate
	}

	if policy != PolicyNearestGoalDate && policy != PolicySmallestGap {
		return nil, fmt.Errorf("%w: %s", ErrPolicyNotImplemented, policy)
	}

	period, err := s.openPeriod(db, month)
	if err != nil {
		return nil, err
	}

	ready, err := s.ReadyToAssign(db, period)
	if err != nil {
		return nil, err
	}

	if !ready.IsPositive() {
		return nil, nil
	}

	envelopes, err := s.Envelopes(db, false)
	if err != nil {
		return nil, err
	}

	var gaps []gap
	for _, envelope := range envelopes {
		if !envelope.HasGoal() {
			continue
		}

		allocation, err := models.GetOrCreateAllocation(db, envelope.ID, period.ID)
		if err != nil {
			return nil, err
		}

		available, err := s.Available(db, allocation, month)
		if err != nil {
			return nil, err
		}

		missing, err := s.money(envelope.GoalAmount.Decimal).Sub(available)
		if err != nil {
			return nil, err
		}

		if missing.IsPositive() {
			gaps = append(gaps, gap{envelope: envelope, allocation: allocation, missing: missing})
		}
	}

	slices.SortStableFunc(gaps, func(a, b gap) int {
		if c := compare(policy, a, b); c != 0 {
			return c
		}

		if a.envelope.SortOrder != b.envelope.SortOrder {
			return a.envelope.SortOrder - b.envelope.SortOrder
		}

		if c := strings.Compare(a.envelope.Name, b.envelope.Name); c != 0 {
			return c
		}

		return strings.Compare(a.envelope.ID.String(), b.envelope.ID.String())
	})

	var changes []Change
	for _, g := range gaps {
		if !ready.IsPositive() {
			break
		}

		delta := g.missing
		if cmp, _ := delta.Cmp(ready); cmp > 0 {
			delta = ready
		}

		old := s.money(g.allocation.Allocated)
		amount, err := old.Add(delta)
		if err != nil {
			return nil, err
		}

		err = db.Model(&g.allocation).Update("allocated", amount.Amount()).Error
		if err != nil {
			return nil, err
		}

		ready, err = ready.Sub(delta)
		if err != nil {
			return nil, err
		}

		changes = append(changes, Change{EnvelopeID: g.envelope.ID, Month: month, Field: FieldAllocated, Old: old, New: amount})
	}

	err = ledger.Settle(db, month)
	if err != nil {
		return nil, err
	}

	return changes, nil
}

// compare orders two gaps by the policy.
func compare(policy Policy, a, b gap) int {
	switch policy {
	case PolicySmallestGap:
		c, _ := a.missing.Cmp(b.missing)
		return c

	default:
		switch {
		case a.envelope.GoalDate == nil && b.envelope.GoalDate == nil:
			return 0
		case a.envelope.GoalDate == nil:
			return 1
		case b.envelope.GoalDate == nil:
			return -1
		}

		return a.envelope.GoalDate.Compare(*b.envelope.GoalDate)
	}
}
