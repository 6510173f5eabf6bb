package engine_test

import (
	"time"

	"github.com/envelope-zero/budget-engine/pkg/engine"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func (suite *TestSuiteStandard) TestReconcileScenarios() {
	account := suite.createTestAccount("Checking")
	salary := suite.income(account, "1000")
	rent := suite.engine.CreateOutflow(suite.ctx, engine.TransactionRequest{AccountID: account.ID, Date: mayAt(3), Amount: eur("400"), Payee: "Landlord"})
	suite.Require().True(rent.Success, "%v", rent.Errors)

	difference, err := suite.engine.ReconcileDifference(suite.ctx, account.ID, eur("600"), mayAt(31))
	suite.Require().Nil(err)
	suite.money("600", difference)

	unbalanced := suite.engine.Reconcile(suite.ctx, engine.ReconcileRequest{AccountID: account.ID, Balance: eur("590"), Date: mayAt(31), Cleared: []uuid.UUID{salary.ID, rent.Value.ID}})
	suite.Assert().False(unbalanced.Success)
	suite.code(engine.CodeInvalidOperation, unbalanced.Errors)

	// The failed attempt did not clear anything
	difference, err = suite.engine.ReconcileDifference(suite.ctx, account.ID, eur("600"), mayAt(31))
	suite.Require().Nil(err)
	suite.money("600", difference)

	r := suite.engine.Reconcile(suite.ctx, engine.ReconcileRequest{AccountID: account.ID, Balance: eur("600"), Date: mayAt(31), Cleared: []uuid.UUID{salary.ID, rent.Value.ID}})
	suite.Require().True(r.Success, "%v", r.Errors)
	suite.Assert().True(r.Value.Difference.IsZero())
	suite.Assert().Nil(r.Value.Adjustment)
	suite.Assert().Len(r.Value.Reconciled, 2)
	suite.Assert().Len(r.Changes, 2)
	suite.Require().NotNil(r.Value.Account.LastReconciledAt)
	suite.Assert().Equal(now, *r.Value.Account.LastReconciledAt)

	locked := suite.engine.DeleteTransaction(suite.ctx, rent.Value.ID)
	suite.code(engine.CodeInvalidOperation, locked.Errors)

	reverted := suite.engine.Unreconcile(suite.ctx, account.ID, may)
	suite.Require().True(reverted.Success, "%v", reverted.Errors)
	suite.Assert().Len(reverted.Value, 2)
}

func (suite *TestSuiteStandard) TestReconcileWithAdjustment() {
	account := suite.createTestAccount("Checking")
	salary := suite.income(account, "1000")

	r := suite.engine.Reconcile(suite.ctx, engine.ReconcileRequest{AccountID: account.ID, Balance: eur("1012.50"), Date: mayAt(31), Cleared: []uuid.UUID{salary.ID}, Adjust: true})
	suite.Require().True(r.Success, "%v", r.Errors)
	suite.money("12.5", r.Value.Difference)
	suite.Require().NotNil(r.Value.Adjustment)
	suite.money("12.5", r.Value.Adjustment.Amount)
	suite.Assert().True(r.Value.Adjustment.Adjustment)
	suite.Assert().True(r.Value.Adjustment.Reconciled)
	suite.money("1012.5", r.Value.Account.ClearedBalance)

	difference, err := suite.engine.ReconcileDifference(suite.ctx, account.ID, eur("1012.50"), mayAt(31))
	suite.Require().Nil(err)
	suite.Assert().True(difference.IsZero())

	suite.Require().Len(r.Snapshot.Periods, 1)
	suite.money("1012.5", r.Snapshot.Periods[0].TotalIncome)
}

// A panic while reconciling is reported as an unexpected error and the
// transactions cleared before it are rolled back.
func (suite *TestSuiteStandard) TestReconcilePanicIsReported() {
	account := suite.createTestAccount("Checking")
	salary := suite.income(account, "1000")

	logger := zerolog.Nop()
	broken, err := engine.New(suite.db, engine.Options{Clock: func() time.Time { panic("clock failure") }, Logger: &logger})
	suite.Require().Nil(err)

	var r engine.Result[engine.Reconciliation]
	suite.NotPanics(func() {
		r = broken.Reconcile(suite.ctx, engine.ReconcileRequest{AccountID: account.ID, Balance: eur("1000"), Date: mayAt(31), Cleared: []uuid.UUID{salary.ID}})
	})
	suite.Assert().False(r.Success)
	suite.code(engine.CodeUnexpected, r.Errors)
	suite.Assert().NotContains(r.Errors[0].Message, "clock failure")

	transaction, tErr := suite.engine.Transaction(suite.ctx, salary.ID)
	suite.Require().Nil(tErr)
	suite.Assert().False(transaction.Cleared)
	suite.Assert().False(transaction.Reconciled)
}
