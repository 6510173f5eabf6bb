package engine_test

import (
	"github.com/envelope-zero/budget-engine/pkg/engine"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestOverspendingScenario() {
	account := suite.createTestAccount("Checking")
	groceries := suite.createTestEnvelope("Groceries")
	suite.income(account, "1000")
	suite.Require().True(suite.engine.SetAllocation(suite.ctx, engine.SetAllocationRequest{EnvelopeID: groceries.ID, Month: may, Amount: eur("100")}).Success)

	r := suite.engine.CreateOutflow(suite.ctx, engine.TransactionRequest{AccountID: account.ID, Date: mayAt(4), Amount: eur("50"), Payee: "Market", EnvelopeID: &groceries.ID})
	suite.Require().True(r.Success, "%v", r.Errors)
	suite.money("-50", r.Value.Amount)
	suite.money("50", suite.allocationOf(r.Snapshot.Periods[0], groceries.ID).Available)

	r = suite.engine.CreateOutflow(suite.ctx, engine.TransactionRequest{AccountID: account.ID, Date: mayAt(5), Amount: eur("120"), Payee: "Market", EnvelopeID: &groceries.ID})
	suite.Require().True(r.Success, "%v", r.Errors)
	suite.money("-70", suite.allocationOf(r.Snapshot.Periods[0], groceries.ID).Available)

	suite.Require().Len(r.Snapshot.Accounts, 1)
	suite.money("830", r.Snapshot.Accounts[0].Balance)
}

func (suite *TestSuiteStandard) TestSplitScenario() {
	account := suite.createTestAccount("Checking")
	groceries := suite.createTestEnvelope("Groceries")
	dining := suite.createTestEnvelope("Dining")

	r := suite.engine.CreateOutflow(suite.ctx, engine.TransactionRequest{
		AccountID: account.ID,
		Date:      mayAt(6),
		Amount:    eur("120"),
		Payee:     "Mall",
		SplitLines: []engine.SplitLine{
			{EnvelopeID: groceries.ID, Amount: eur("80")},
			{EnvelopeID: dining.ID, Amount: eur("40")},
		},
	})
	suite.Require().True(r.Success, "%v", r.Errors)

	transaction, err := suite.engine.Transaction(suite.ctx, r.Value.ID)
	suite.Require().Nil(err)
	suite.Assert().Nil(transaction.EnvelopeID)
	suite.Require().Len(transaction.SplitLines, 2)

	total := eur("0")
	for _, line := range transaction.SplitLines {
		total, _ = total.Add(line.Amount)
	}
	suite.money("120", total)

	mismatch := suite.engine.CreateOutflow(suite.ctx, engine.TransactionRequest{
		AccountID:  account.ID,
		Date:       mayAt(6),
		Amount:     eur("120"),
		Payee:      "Mall",
		SplitLines: []engine.SplitLine{{EnvelopeID: groceries.ID, Amount: eur("100")}},
	})
	suite.Assert().False(mismatch.Success)
	suite.code(engine.CodeInvalidOperation, mismatch.Errors)
}

func (suite *TestSuiteStandard) TestTransferUpdateAndDelete() {
	checking := suite.createTestAccount("Checking")
	savings := suite.createTestAccount("Savings")

	same := suite.engine.CreateTransfer(suite.ctx, engine.TransferRequest{FromAccountID: checking.ID, ToAccountID: checking.ID, Amount: eur("10"), Date: mayAt(2)})
	suite.code(engine.CodeInvalidOperation, same.Errors)

	r := suite.engine.CreateTransfer(suite.ctx, engine.TransferRequest{FromAccountID: checking.ID, ToAccountID: savings.ID, Amount: eur("250"), Date: mayAt(2)})
	suite.Require().True(r.Success, "%v", r.Errors)
	suite.Assert().Len(r.Snapshot.Accounts, 2)
	suite.Assert().Equal(r.Value.Outflow.TransferKey, r.Value.Inflow.TransferKey)

	amount := eur("-300")
	updated := suite.engine.UpdateTransaction(suite.ctx, r.Value.Outflow.ID, engine.UpdateTransactionRequest{Amount: &amount})
	suite.Require().True(updated.Success, "%v", updated.Errors)
	suite.Assert().Len(updated.Changes, 2, "both legs change")

	inflow, err := suite.engine.Transaction(suite.ctx, r.Value.Inflow.ID)
	suite.Require().Nil(err)
	suite.money("300", inflow.Amount)

	deleted := suite.engine.DeleteTransaction(suite.ctx, r.Value.Inflow.ID)
	suite.Require().True(deleted.Success, "%v", deleted.Errors)
	suite.Assert().Len(deleted.Value, 2)

	transactions, err := suite.engine.Transactions(suite.ctx, engine.TransactionFilter{AccountID: checking.ID})
	suite.Require().Nil(err)
	suite.Assert().Len(transactions, 0)
}

func (suite *TestSuiteStandard) TestClearing() {
	account := suite.createTestAccount("Checking")
	salary := suite.income(account, "1000")

	r := suite.engine.MarkCleared(suite.ctx, salary.ID)
	suite.Require().True(r.Success, "%v", r.Errors)
	suite.Assert().True(r.Value.Cleared)
	suite.Require().Len(r.Changes, 1)
	suite.Assert().Equal("cleared", r.Changes[0].Field)
	suite.money("1000", r.Snapshot.Accounts[0].ClearedBalance)

	r = suite.engine.MarkUncleared(suite.ctx, salary.ID)
	suite.Require().True(r.Success, "%v", r.Errors)
	suite.Assert().False(r.Value.Cleared)

	missing := suite.engine.MarkCleared(suite.ctx, uuid.New())
	suite.code(engine.CodeValidation, missing.Errors)
}

func (suite *TestSuiteStandard) TestAccounts() {
	suite.createTestAccount("Checking")

	duplicate := suite.engine.CreateAccount(suite.ctx, engine.CreateAccountRequest{Name: "Checking"})
	suite.code(engine.CodeValidation, duplicate.Errors)

	dollars := suite.engine.CreateAccount(suite.ctx, engine.CreateAccountRequest{Name: "Dollars", Currency: "USD"})
	suite.code(engine.CodeValidation, dollars.Errors)

	accounts, err := suite.engine.Accounts(suite.ctx)
	suite.Require().Nil(err)
	suite.Require().Len(accounts, 1)
	suite.Assert().Equal("EUR", accounts[0].Currency)

	note := "Joint account"
	updated := suite.engine.UpdateAccount(suite.ctx, accounts[0].ID, engine.UpdateAccountRequest{Note: &note})
	suite.Require().True(updated.Success, "%v", updated.Errors)
	suite.Assert().Equal("Joint account", updated.Value.Note)
	suite.Assert().Len(updated.Changes, 1)
}
