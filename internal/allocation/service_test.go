package allocation_test

import (
	"github.com/envelope-zero/budget-engine/internal/allocation"
	"github.com/envelope-zero/budget-engine/internal/budgeterrors"
	"github.com/envelope-zero/budget-engine/internal/budgetmath"
	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

func (suite *TestSuiteStandard) TestReadyToAssignScenario() {
	groceries := suite.createTestEnvelope("Groceries")
	utilities := suite.createTestEnvelope("Utilities")
	suite.income(may, "1000")

	_, err := suite.service.SetAllocation(suite.db, groceries.ID, may, eur("100"))
	suite.Require().Nil(err)

	change, err := suite.service.SetAllocation(suite.db, utilities.ID, may, eur("50"))
	suite.Require().Nil(err)
	suite.equal("0", change.Old)
	suite.equal("50", change.New)

	suite.equal("850", suite.ready(may))

	period, err := models.FindPeriod(suite.db, may)
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(150).Equal(period.TotalAllocated))

	cached, err := budgetmath.ReadyToAssign(money.New(period.TotalIncome, currency.EUR), money.New(period.CarriedOver, currency.EUR), money.New(period.TotalAllocated, currency.EUR))
	suite.Require().Nil(err)
	suite.equal("850", cached)
}

func (suite *TestSuiteStandard) TestSetAllocationBoundary() {
	groceries := suite.createTestEnvelope("Groceries")
	suite.income(may, "100")

	_, err := suite.service.SetAllocation(suite.db, groceries.ID, may, eur("100.01"))
	suite.Assert().ErrorIs(err, allocation.ErrInsufficientReady)
	suite.Assert().Equal(budgeterrors.KindInvalidOperation, budgeterrors.KindOf(err))

	_, err = suite.service.SetAllocation(suite.db, groceries.ID, may, eur("100"))
	suite.Require().Nil(err)
	suite.equal("0", suite.ready(may))

	_, err = suite.service.SetAllocation(suite.db, groceries.ID, may, eur("-1"))
	suite.Assert().ErrorIs(err, models.ErrAllocationNegative)
	suite.Assert().Equal(budgeterrors.KindValidation, budgeterrors.KindOf(err))
}

func (suite *TestSuiteStandard) TestDecreaseAlwaysAllowed() {
	groceries := suite.createTestEnvelope("Groceries")
	suite.income(may, "100")

	_, err := suite.service.SetAllocation(suite.db, groceries.ID, may, eur("100"))
	suite.Require().Nil(err)

	// An unassigned outflow over-allocates the period
	_, err = suite.ledger.CreateOutflow(suite.db, ledgerOutflow(suite.account.ID, may.Start(), "60"))
	suite.Require().Nil(err)
	suite.equal("-60", suite.ready(may))

	_, err = suite.service.AddToAllocation(suite.db, groceries.ID, may, eur("1"))
	suite.Assert().ErrorIs(err, allocation.ErrInsufficientReady)

	change, err := suite.service.AddToAllocation(suite.db, groceries.ID, may, eur("-10"))
	suite.Require().Nil(err)
	suite.equal("90", change.New)
	suite.equal("-50", suite.ready(may))

	_, err = suite.service.AddToAllocation(suite.db, groceries.ID, may, eur("-91"))
	suite.Assert().ErrorIs(err, models.ErrAllocationNegative)
}

func (suite *TestSuiteStandard) TestClosedPeriodRejectsAllocation() {
	groceries := suite.createTestEnvelope("Groceries")
	suite.income(may, "100")

	_, err := suite.service.RolloverToNextMonth(suite.db, may)
	suite.Require().Nil(err)

	_, err = suite.service.SetAllocation(suite.db, groceries.ID, may, eur("0"))
	suite.Assert().ErrorIs(err, models.ErrPeriodClosed)

	_, err = suite.service.RolloverToNextMonth(suite.db, may)
	suite.Assert().ErrorIs(err, models.ErrPeriodClosed)

	// Reads stay valid
	period, err := models.FindPeriod(suite.db, may)
	suite.Require().Nil(err)
	suite.Assert().True(period.Closed)
	suite.Assert().True(decimal.NewFromInt(100).Equal(period.TotalIncome))
}

func (suite *TestSuiteStandard) TestMoveMoney() {
	groceries := suite.createTestEnvelope("Groceries")
	dining := suite.createTestEnvelope("Dining")
	suite.income(may, "500")

	_, err := suite.service.SetAllocation(suite.db, groceries.ID, may, eur("100"))
	suite.Require().Nil(err)
	suite.spend(groceries, may, "70")

	_, err = suite.service.MoveMoney(suite.db, groceries.ID, groceries.ID, may, eur("10"))
	suite.Assert().ErrorIs(err, allocation.ErrMoveSameEnvelope)

	_, err = suite.service.MoveMoney(suite.db, groceries.ID, dining.ID, may, eur("30.01"))
	suite.Assert().ErrorIs(err, allocation.ErrInsufficientAvailable)

	_, err = suite.service.MoveMoney(suite.db, groceries.ID, dining.ID, may, eur("0"))
	suite.Assert().ErrorIs(err, allocation.ErrAmountNotPositive)

	changes, err := suite.service.MoveMoney(suite.db, groceries.ID, dining.ID, may, eur("30"))
	suite.Require().Nil(err)
	suite.Require().Len(changes, 2)
	suite.equal("70", changes[0].New)
	suite.equal("30", changes[1].New)
	suite.equal("400", suite.ready(may))

	_, err = suite.service.MoveMoney(suite.db, uuid.New(), dining.ID, may, eur("1"))
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestRolloverConservation() {
	groceries := suite.createTestEnvelope("Groceries")
	rent := suite.createTestEnvelope("Rent")
	suite.income(may, "2000")

	_, err := suite.service.SetAllocation(suite.db, groceries.ID, may, eur("300"))
	suite.Require().Nil(err)
	_, err = suite.service.SetAllocation(suite.db, rent.ID, may, eur("1000"))
	suite.Require().Nil(err)

	suite.spend(groceries, may, "350.25")
	suite.spend(rent, may, "1000")

	changes, err := suite.service.RolloverToNextMonth(suite.db, may)
	suite.Require().Nil(err)
	suite.Assert().NotEmpty(changes)

	suite.Assert().True(decimal.RequireFromString("-50.25").Equal(suite.allocation(groceries, june).RolloverFromPrevious))
	suite.Assert().True(suite.allocation(rent, june).RolloverFromPrevious.IsZero())

	next, err := models.FindPeriod(suite.db, june)
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(700).Equal(next.CarriedOver), "carried over %s", next.CarriedOver)

	// Sum of rollovers plus carried over equals income minus spending of May
	total := next.CarriedOver
	allocations, err := models.PeriodAllocations(suite.db, next.ID)
	suite.Require().Nil(err)
	for _, a := range allocations {
		total = total.Add(a.RolloverFromPrevious)
	}
	suite.Assert().True(decimal.RequireFromString("649.75").Equal(total), "total %s", total)

	// June starts with the money carried over
	suite.equal("700", suite.ready(june))
}

func (suite *TestSuiteStandard) TestAutoAssignToGoals() {
	suite.income(may, "250")

	vacation := suite.createTestEnvelope("Vacation")
	car := suite.createTestEnvelope("Car")
	gifts := suite.createTestEnvelope("Gifts")
	_ = suite.createTestEnvelope("No goal")

	_, err := suite.service.SetGoal(suite.db, vacation.ID, eur("1000"), nil)
	suite.Require().Nil(err)

	date := may.Start().AddDate(0, 6, 0)
	_, err = suite.service.SetGoal(suite.db, car.ID, eur("200"), &date)
	suite.Require().Nil(err)

	earlier := may.Start().AddDate(0, 1, 0)
	_, err = suite.service.SetGoal(suite.db, gifts.ID, eur("30"), &earlier)
	suite.Require().Nil(err)

	_, err = suite.service.AutoAssignToGoals(suite.db, may, allocation.Policy("RANDOM"))
	suite.Assert().ErrorIs(err, allocation.ErrPolicyNotImplemented)
	suite.Assert().Equal(budgeterrors.KindNotImplemented, budgeterrors.KindOf(err))

	changes, err := suite.service.AutoAssignToGoals(suite.db, may, "")
	suite.Require().Nil(err)
	suite.Require().Len(changes, 3)

	suite.Assert().Equal(gifts.ID, changes[0].EnvelopeID)
	suite.equal("30", changes[0].New)
	suite.Assert().Equal(car.ID, changes[1].EnvelopeID)
	suite.equal("200", changes[1].New)
	suite.Assert().Equal(vacation.ID, changes[2].EnvelopeID)
	suite.equal("20", changes[2].New)
	suite.equal("0", suite.ready(may))

	// Nothing left to assign
	changes, err = suite.service.AutoAssignToGoals(suite.db, may, allocation.PolicySmallestGap)
	suite.Require().Nil(err)
	suite.Assert().Empty(changes)
}

func (suite *TestSuiteStandard) TestAutoAssignSmallestGap() {
	suite.income(may, "100")

	big := suite.createTestEnvelope("Big")
	small := suite.createTestEnvelope("Small")

	_, err := suite.service.SetGoal(suite.db, big.ID, eur("500"), nil)
	suite.Require().Nil(err)
	_, err = suite.service.SetGoal(suite.db, small.ID, eur("40"), nil)
	suite.Require().Nil(err)

	// Spending increases the gap
	suite.spend(small, may, "10")

	changes, err := suite.service.AutoAssignToGoals(suite.db, may, allocation.PolicySmallestGap)
	suite.Require().Nil(err)
	suite.Require().Len(changes, 2)
	suite.Assert().Equal(small.ID, changes[0].EnvelopeID)
	suite.equal("50", changes[0].New)
	suite.Assert().Equal(big.ID, changes[1].EnvelopeID)
	suite.equal("50", changes[1].New)
}
