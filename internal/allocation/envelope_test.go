package allocation_test

import (
	"time"

	"github.com/envelope-zero/budget-engine/internal/allocation"
	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/google/uuid"
)

func ptr[T any](v T) *T {
	return &v
}

func (suite *TestSuiteStandard) TestCreateEnvelope() {
	groceries, err := suite.service.CreateEnvelope(suite.db, allocation.EnvelopeInput{Name: " Groceries ", Group: "Living", Color: "#00ff00"})
	suite.Require().Nil(err)
	suite.Assert().Equal("Groceries", groceries.Name)
	suite.Assert().Equal(0, groceries.SortOrder)

	goal := eur("300")
	rent, err := suite.service.CreateEnvelope(suite.db, allocation.EnvelopeInput{Name: "Rent", GoalAmount: &goal})
	suite.Require().Nil(err)
	suite.Assert().Equal(1, rent.SortOrder)
	suite.Assert().True(rent.HasGoal())

	_, err = suite.service.CreateEnvelope(suite.db, allocation.EnvelopeInput{Name: "groceries"})
	suite.Assert().ErrorIs(err, allocation.ErrEnvelopeNameNotUnique)

	_, err = suite.service.CreateEnvelope(suite.db, allocation.EnvelopeInput{Name: ""})
	suite.Assert().ErrorIs(err, models.ErrEnvelopeNameEmpty)
}

func (suite *TestSuiteStandard) TestUpdateEnvelope() {
	groceries := suite.createTestEnvelope("Groceries")
	dining := suite.createTestEnvelope("Dining")

	_, err := suite.service.UpdateEnvelope(suite.db, dining.ID, allocation.EnvelopeUpdate{Name: ptr("Groceries")})
	suite.Assert().ErrorIs(err, allocation.ErrEnvelopeNameNotUnique)

	updated, err := suite.service.UpdateEnvelope(suite.db, groceries.ID, allocation.EnvelopeUpdate{
		Name:   ptr("Food"),
		Group:  ptr("Living"),
		Note:   ptr("Weekly shopping"),
		Hidden: ptr(true),
	})
	suite.Require().Nil(err)
	suite.Assert().Equal("Food", updated.Name)
	suite.Assert().Equal("Living", updated.Group)
	suite.Assert().True(updated.Hidden)

	_, err = suite.service.UpdateEnvelope(suite.db, uuid.New(), allocation.EnvelopeUpdate{})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestArchiveEnvelope() {
	groceries := suite.createTestEnvelope("Groceries")

	archived, err := suite.service.ArchiveEnvelope(suite.db, groceries.ID)
	suite.Require().Nil(err)
	suite.Assert().True(archived.Archived)

	active, err := suite.service.Envelopes(suite.db, false)
	suite.Require().Nil(err)
	suite.Assert().Empty(active)

	// The name is free again while the envelope is archived
	replacement := suite.createTestEnvelope("Groceries")

	_, err = suite.service.UnarchiveEnvelope(suite.db, groceries.ID)
	suite.Assert().ErrorIs(err, allocation.ErrEnvelopeNameNotUnique)

	_, err = suite.service.ArchiveEnvelope(suite.db, replacement.ID)
	suite.Require().Nil(err)

	unarchived, err := suite.service.UnarchiveEnvelope(suite.db, groceries.ID)
	suite.Require().Nil(err)
	suite.Assert().False(unarchived.Archived)

	// Archived envelopes do not receive new money
	suite.income(may, "100")
	_, err = suite.service.SetAllocation(suite.db, replacement.ID, may, eur("10"))
	suite.Assert().ErrorIs(err, models.ErrEnvelopeArchived)
}

func (suite *TestSuiteStandard) TestReorderEnvelopes() {
	a := suite.createTestEnvelope("A")
	b := suite.createTestEnvelope("B")
	c := suite.createTestEnvelope("C")

	_, err := suite.service.ReorderEnvelopes(suite.db, []uuid.UUID{c.ID, a.ID})
	suite.Assert().ErrorIs(err, allocation.ErrReorderIncomplete)

	_, err = suite.service.ReorderEnvelopes(suite.db, []uuid.UUID{c.ID, a.ID, a.ID, b.ID})
	suite.Assert().ErrorIs(err, allocation.ErrReorderIncomplete)

	_, err = suite.service.ReorderEnvelopes(suite.db, []uuid.UUID{c.ID, a.ID, b.ID})
	suite.Require().Nil(err)

	envelopes, err := suite.service.Envelopes(suite.db, true)
	suite.Require().Nil(err)
	suite.Require().Len(envelopes, 3)
	suite.Assert().Equal("C", envelopes[0].Name)
	suite.Assert().Equal("A", envelopes[1].Name)
	suite.Assert().Equal("B", envelopes[2].Name)
}

func (suite *TestSuiteStandard) TestGoals() {
	groceries := suite.createTestEnvelope("Groceries")

	_, err := suite.service.SetGoal(suite.db, groceries.ID, eur("0"), nil)
	suite.Assert().ErrorIs(err, models.ErrGoalAmountNotPositive)

	date := time.Date(2024, 12, 24, 15, 0, 0, 0, time.UTC)
	envelope, err := suite.service.SetGoal(suite.db, groceries.ID, eur("120"), &date)
	suite.Require().Nil(err)
	suite.Assert().True(envelope.HasGoal())
	suite.Assert().Equal(time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC), *envelope.GoalDate)

	envelope, err = suite.service.ClearGoal(suite.db, groceries.ID)
	suite.Require().Nil(err)
	suite.Assert().False(envelope.HasGoal())
	suite.Assert().Nil(envelope.GoalDate)

	reloaded, err := suite.service.Envelope(suite.db, groceries.ID)
	suite.Require().Nil(err)
	suite.Assert().False(reloaded.HasGoal())
}
