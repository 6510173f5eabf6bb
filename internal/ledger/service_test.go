package ledger_test

import (
	"time"

	"github.com/envelope-zero/budget-engine/internal/budgeterrors"
	"github.com/envelope-zero/budget-engine/internal/ledger"
	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/envelope-zero/budget-engine/internal/types"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

func (suite *TestSuiteStandard) TestOverspending() {
	account := suite.createTestAccount("Checking")
	groceries := suite.createTestEnvelope("Groceries")
	suite.allocate(groceries, may, "100")

	_, err := suite.service.CreateOutflow(suite.db, ledger.NewTransaction{AccountID: account.ID, Date: mayAt(3), Amount: eur("50"), Payee: "Market", EnvelopeID: &groceries.ID})
	suite.Require().Nil(err)
	suite.Assert().True(eur("50").Equal(suite.available(groceries, may)))

	_, err = suite.service.CreateOutflow(suite.db, ledger.NewTransaction{AccountID: account.ID, Date: mayAt(4), Amount: eur("120"), Payee: "Market", EnvelopeID: &groceries.ID})
	suite.Require().Nil(err)
	suite.Assert().True(eur("-70").Equal(suite.available(groceries, may)), "Available is %s", suite.available(groceries, may))

	period := suite.period(may)
	suite.equal("170", period.TotalSpent)
	suite.equal("100", period.TotalAllocated)
	suite.equal("0", period.TotalIncome)
}

func (suite *TestSuiteStandard) TestInflowsAreIncomeOrRefunds() {
	account := suite.createTestAccount("Checking")
	groceries := suite.createTestEnvelope("Groceries")

	_, err := suite.service.CreateInflow(suite.db, ledger.NewTransaction{AccountID: account.ID, Date: mayAt(1), Amount: eur("1000"), Payee: "Employer"})
	suite.Require().Nil(err)

	_, err = suite.service.CreateInflow(suite.db, ledger.NewTransaction{AccountID: account.ID, Date: mayAt(2), Amount: eur("5"), Payee: "Market", EnvelopeID: &groceries.ID})
	suite.Require().Nil(err)

	// Unassigned outflows reduce the income of the period
	_, err = suite.service.CreateOutflow(suite.db, ledger.NewTransaction{AccountID: account.ID, Date: mayAt(2), Amount: eur("20"), Payee: "Bank fee"})
	suite.Require().Nil(err)

	period := suite.period(may)
	suite.equal("980", period.TotalIncome)
	suite.equal("-5", period.TotalSpent)
	suite.equal("-5", suite.allocation(groceries, may).Spent)
}

func (suite *TestSuiteStandard) TestSplitOutflow() {
	account := suite.createTestAccount("Checking")
	groceries := suite.createTestEnvelope("Groceries")
	dining := suite.createTestEnvelope("Dining")

	transaction, err := suite.service.CreateOutflow(suite.db, ledger.NewTransaction{
		AccountID: account.ID,
		Date:      mayAt(10),
		Amount:    eur("120"),
		Payee:     "Mall",
		SplitLines: []ledger.SplitLine{
			{EnvelopeID: groceries.ID, Amount: eur("80")},
			{EnvelopeID: dining.ID, Amount: eur("40")},
		},
	})
	suite.Require().Nil(err)

	persisted, err := suite.service.Get(suite.db, transaction.ID)
	suite.Require().Nil(err)
	suite.Assert().Nil(persisted.EnvelopeID)
	suite.Assert().True(persisted.Split)
	suite.Require().Len(persisted.SplitLines, 2)

	total := decimal.Zero
	for _, line := range persisted.SplitLines {
		total = total.Add(line.Amount)
	}
	suite.equal("120", total)
	suite.equal("-120", persisted.Amount)

	suite.equal("80", suite.allocation(groceries, may).Spent)
	suite.equal("40", suite.allocation(dining, may).Spent)
	suite.equal("0", suite.period(may).TotalIncome)
}

func (suite *TestSuiteStandard) TestCreateValidation() {
	account := suite.createTestAccount("Checking")
	groceries := suite.createTestEnvelope("Groceries")
	archived := models.Envelope{Name: "Old", Archived: true}
	suite.Require().Nil(suite.db.Create(&archived).Error)

	usd := models.Account{Name: "Dollars", Currency: "USD"}
	suite.Require().Nil(suite.db.Create(&usd).Error)

	valid := func() ledger.NewTransaction {
		return ledger.NewTransaction{AccountID: account.ID, Date: mayAt(1), Amount: eur("10"), Payee: "Shop"}
	}

	tests := []struct {
		name   string
		modify func(*ledger.NewTransaction)
		kind   budgeterrors.Kind
	}{
		{"Zero amount", func(t *ledger.NewTransaction) { t.Amount = eur("0") }, budgeterrors.KindValidation},
		{"Negative amount", func(t *ledger.NewTransaction) { t.Amount = eur("-3") }, budgeterrors.KindValidation},
		{"Other currency", func(t *ledger.NewTransaction) { t.Amount = money.New(decimal.NewFromInt(10), currency.USD) }, budgeterrors.KindValidation},
		{"Empty payee", func(t *ledger.NewTransaction) { t.Payee = "  " }, budgeterrors.KindValidation},
		{"No date", func(t *ledger.NewTransaction) { t.Date = time.Time{} }, budgeterrors.KindValidation},
		{"Unknown account", func(t *ledger.NewTransaction) { t.AccountID = uuid.New() }, budgeterrors.KindValidation},
		{"Account in other currency", func(t *ledger.NewTransaction) { t.AccountID = usd.ID }, budgeterrors.KindValidation},
		{"Unknown envelope", func(t *ledger.NewTransaction) { t.EnvelopeID = id(uuid.New()) }, budgeterrors.KindValidation},
		{"Archived envelope", func(t *ledger.NewTransaction) { t.EnvelopeID = &archived.ID }, budgeterrors.KindInvalidOperation},
		{"Envelope and split", func(t *ledger.NewTransaction) {
			t.EnvelopeID = &groceries.ID
			t.SplitLines = []ledger.SplitLine{{EnvelopeID: groceries.ID, Amount: eur("10")}}
		}, budgeterrors.KindValidation},
		{"Split line without envelope", func(t *ledger.NewTransaction) {
			t.SplitLines = []ledger.SplitLine{{Amount: eur("10")}}
		}, budgeterrors.KindValidation},
		{"Split line not positive", func(t *ledger.NewTransaction) {
			t.SplitLines = []ledger.SplitLine{{EnvelopeID: groceries.ID, Amount: eur("12")}, {EnvelopeID: groceries.ID, Amount: eur("-2")}}
		}, budgeterrors.KindValidation},
		{"Split total mismatch", func(t *ledger.NewTransaction) {
			t.SplitLines = []ledger.SplitLine{{EnvelopeID: groceries.ID, Amount: eur("9.99")}}
		}, budgeterrors.KindInvalidOperation},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			in := valid()
			tt.modify(&in)

			_, err := suite.service.CreateOutflow(suite.db, in)
			suite.Require().NotNil(err)
			suite.Assert().Equal(tt.kind, budgeterrors.KindOf(err), err.Error())
		})
	}
}

func (suite *TestSuiteStandard) TestClosedPeriodRejectsTransactions() {
	account := suite.createTestAccount("Checking")
	period, err := models.GetOrCreatePeriod(suite.db, may)
	suite.Require().Nil(err)
	suite.Require().Nil(suite.db.Model(&period).Update("closed", true).Error)

	_, err = suite.service.CreateOutflow(suite.db, ledger.NewTransaction{AccountID: account.ID, Date: mayAt(1), Amount: eur("10"), Payee: "Shop"})
	suite.Assert().ErrorIs(err, models.ErrPeriodClosed)

	june, err := suite.service.CreateOutflow(suite.db, ledger.NewTransaction{AccountID: account.ID, Date: mayAt(1).AddDate(0, 1, 0), Amount: eur("10"), Payee: "Shop"})
	suite.Require().Nil(err)

	_, err = suite.service.UpdateTransaction(suite.db, june.ID, ledger.Update{Date: ptr(mayAt(20))})
	suite.Assert().ErrorIs(err, models.ErrPeriodClosed)
}

func (suite *TestSuiteStandard) TestUpdateMovesSpent() {
	account := suite.createTestAccount("Checking")
	groceries := suite.createTestEnvelope("Groceries")
	dining := suite.createTestEnvelope("Dining")

	transaction, err := suite.service.CreateOutflow(suite.db, ledger.NewTransaction{AccountID: account.ID, Date: mayAt(3), Amount: eur("30"), Payee: "Bistro", EnvelopeID: &groceries.ID})
	suite.Require().Nil(err)

	updated, err := suite.service.UpdateTransaction(suite.db, transaction.ID, ledger.Update{EnvelopeID: &dining.ID, Amount: ptr(eur("-35"))})
	suite.Require().Nil(err)
	suite.Assert().Equal(dining.ID, *updated.EnvelopeID)

	suite.equal("0", suite.allocation(groceries, may).Spent)
	suite.equal("35", suite.allocation(dining, may).Spent)

	// Move to June
	_, err = suite.service.UpdateTransaction(suite.db, transaction.ID, ledger.Update{Date: ptr(mayAt(3).AddDate(0, 1, 0))})
	suite.Require().Nil(err)
	suite.equal("0", suite.allocation(dining, may).Spent)
	suite.equal("35", suite.allocation(dining, may.Next()).Spent)

	// Unassign
	_, err = suite.service.UpdateTransaction(suite.db, transaction.ID, ledger.Update{EnvelopeID: id(uuid.Nil)})
	suite.Require().Nil(err)
	suite.equal("0", suite.allocation(dining, may.Next()).Spent)
	suite.equal("-35", suite.period(may.Next()).TotalIncome)
}

func (suite *TestSuiteStandard) TestUpdateSplitLines() {
	account := suite.createTestAccount("Checking")
	groceries := suite.createTestEnvelope("Groceries")
	dining := suite.createTestEnvelope("Dining")

	transaction, err := suite.service.CreateOutflow(suite.db, ledger.NewTransaction{AccountID: account.ID, Date: mayAt(3), Amount: eur("50"), Payee: "Mall", EnvelopeID: &groceries.ID})
	suite.Require().Nil(err)

	lines := []ledger.SplitLine{{EnvelopeID: groceries.ID, Amount: eur("20")}, {EnvelopeID: dining.ID, Amount: eur("30")}}
	updated, err := suite.service.UpdateTransaction(suite.db, transaction.ID, ledger.Update{EnvelopeID: id(uuid.Nil), SplitLines: &lines})
	suite.Require().Nil(err)
	suite.Assert().Nil(updated.EnvelopeID)
	suite.Assert().True(updated.Split)
	suite.equal("20", suite.allocation(groceries, may).Spent)
	suite.equal("30", suite.allocation(dining, may).Spent)

	// Changing the amount without new lines breaks the split total
	_, err = suite.service.UpdateTransaction(suite.db, transaction.ID, ledger.Update{Amount: ptr(eur("-60"))})
	suite.Assert().ErrorIs(err, ledger.ErrSplitTotalMismatch)

	// Assigning an envelope replaces the split
	updated, err = suite.service.UpdateTransaction(suite.db, transaction.ID, ledger.Update{EnvelopeID: &dining.ID})
	suite.Require().Nil(err)
	suite.Assert().False(updated.Split)

	persisted, err := suite.service.Get(suite.db, transaction.ID)
	suite.Require().Nil(err)
	suite.Assert().Empty(persisted.SplitLines)
	suite.equal("0", suite.allocation(groceries, may).Spent)
	suite.equal("50", suite.allocation(dining, may).Spent)
}

func (suite *TestSuiteStandard) TestTransfer() {
	checking := suite.createTestAccount("Checking")
	savings := suite.createTestAccount("Savings")
	groceries := suite.createTestEnvelope("Groceries")

	_, err := suite.service.CreateTransfer(suite.db, ledger.NewTransfer{FromAccountID: checking.ID, ToAccountID: checking.ID, Amount: eur("10"), Date: mayAt(1)})
	suite.Assert().ErrorIs(err, ledger.ErrTransferSameAccount)

	transfer, err := suite.service.CreateTransfer(suite.db, ledger.NewTransfer{FromAccountID: checking.ID, ToAccountID: savings.ID, Amount: eur("250"), Date: mayAt(1)})
	suite.Require().Nil(err)
	suite.Assert().Equal(*transfer.Outflow.TransferKey, *transfer.Inflow.TransferKey)
	suite.equal("-250", transfer.Outflow.Amount)
	suite.equal("250", transfer.Inflow.Amount)
	suite.Assert().Equal("Transfer to Savings", transfer.Outflow.Payee)
	suite.Assert().Nil(transfer.Outflow.EnvelopeID)

	period := suite.period(may)
	suite.equal("0", period.TotalIncome)
	suite.equal("0", period.TotalSpent)

	// Legs cannot get an envelope
	_, err = suite.service.UpdateTransaction(suite.db, transfer.Outflow.ID, ledger.Update{EnvelopeID: &groceries.ID})
	suite.Assert().ErrorIs(err, ledger.ErrTransferEnvelope)

	// Amount and date propagate to the other leg
	_, err = suite.service.UpdateTransaction(suite.db, transfer.Outflow.ID, ledger.Update{Amount: ptr(eur("-300")), Date: ptr(mayAt(2))})
	suite.Require().Nil(err)

	inflow, err := suite.service.Get(suite.db, transfer.Inflow.ID)
	suite.Require().Nil(err)
	suite.equal("300", inflow.Amount)
	suite.Assert().Equal(mayAt(2), inflow.Date)

	// Deleting one leg deletes both
	deleted, err := suite.service.DeleteTransaction(suite.db, transfer.Inflow.ID)
	suite.Require().Nil(err)
	suite.Assert().Len(deleted, 2)

	_, err = suite.service.Get(suite.db, transfer.Outflow.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	balance, err := suite.service.AccountBalance(suite.db, checking.ID)
	suite.Require().Nil(err)
	suite.Assert().True(balance.Balance.IsZero())
}

func (suite *TestSuiteStandard) TestDeleteIsSoft() {
	account := suite.createTestAccount("Checking")
	groceries := suite.createTestEnvelope("Groceries")

	transaction, err := suite.service.CreateOutflow(suite.db, ledger.NewTransaction{AccountID: account.ID, Date: mayAt(3), Amount: eur("30"), Payee: "Market", EnvelopeID: &groceries.ID})
	suite.Require().Nil(err)
	suite.equal("30", suite.allocation(groceries, may).Spent)

	_, err = suite.service.DeleteTransaction(suite.db, transaction.ID)
	suite.Require().Nil(err)
	suite.equal("0", suite.allocation(groceries, may).Spent)

	var audit models.Transaction
	suite.Require().Nil(suite.db.Unscoped().First(&audit, "id = ?", transaction.ID).Error)
	suite.Assert().True(audit.IsDeleted())

	list, err := suite.service.List(suite.db, ledger.Filter{AccountID: account.ID})
	suite.Require().Nil(err)
	suite.Assert().Empty(list)
}

func (suite *TestSuiteStandard) TestClearedAndReconciled() {
	account := suite.createTestAccount("Checking")
	groceries := suite.createTestEnvelope("Groceries")

	transaction, err := suite.service.CreateOutflow(suite.db, ledger.NewTransaction{AccountID: account.ID, Date: mayAt(3), Amount: eur("30"), Payee: "Market", EnvelopeID: &groceries.ID})
	suite.Require().Nil(err)

	cleared, err := suite.service.MarkCleared(suite.db, transaction.ID)
	suite.Require().Nil(err)
	suite.Assert().True(cleared.Cleared)
	suite.equal("30", suite.allocation(groceries, may).Spent)

	balance, err := suite.service.AccountBalance(suite.db, account.ID)
	suite.Require().Nil(err)
	suite.Assert().True(eur("-30").Equal(balance.Cleared))

	uncleared, err := suite.service.MarkUncleared(suite.db, transaction.ID)
	suite.Require().Nil(err)
	suite.Assert().False(uncleared.Cleared)

	suite.Require().Nil(suite.db.Model(&models.Transaction{}).Where("id = ?", transaction.ID).UpdateColumns(map[string]any{"cleared": true, "reconciled": true}).Error)

	_, err = suite.service.MarkUncleared(suite.db, transaction.ID)
	suite.Assert().ErrorIs(err, ledger.ErrTransactionReconciled)

	_, err = suite.service.UpdateTransaction(suite.db, transaction.ID, ledger.Update{Amount: ptr(eur("-1"))})
	suite.Assert().ErrorIs(err, ledger.ErrTransactionReconciled)

	_, err = suite.service.DeleteTransaction(suite.db, transaction.ID)
	suite.Assert().ErrorIs(err, ledger.ErrTransactionReconciled)

	// Payee and memo can still be changed
	updated, err := suite.service.UpdateTransaction(suite.db, transaction.ID, ledger.Update{Payee: ptr("Farmers market"), Memo: ptr("Apples")})
	suite.Require().Nil(err)
	suite.Assert().Equal("Farmers market", updated.Payee)
}

func (suite *TestSuiteStandard) TestListFilter() {
	account := suite.createTestAccount("Checking")
	other := suite.createTestAccount("Savings")
	groceries := suite.createTestEnvelope("Groceries")
	dining := suite.createTestEnvelope("Dining")

	for day := 1; day <= 3; day++ {
		_, err := suite.service.CreateOutflow(suite.db, ledger.NewTransaction{AccountID: account.ID, Date: mayAt(day), Amount: eur("1"), Payee: "Shop", EnvelopeID: &groceries.ID})
		suite.Require().Nil(err)
	}

	_, err := suite.service.CreateOutflow(suite.db, ledger.NewTransaction{AccountID: other.ID, Date: mayAt(2), Amount: eur("10"), Payee: "Mall", SplitLines: []ledger.SplitLine{{EnvelopeID: groceries.ID, Amount: eur("4")}, {EnvelopeID: dining.ID, Amount: eur("6")}}})
	suite.Require().Nil(err)

	list, err := suite.service.List(suite.db, ledger.Filter{AccountID: account.ID, From: mayAt(2), Until: mayAt(3)})
	suite.Require().Nil(err)
	suite.Require().Len(list, 2)
	suite.Assert().Equal(mayAt(3), list[0].Date)

	list, err = suite.service.List(suite.db, ledger.Filter{EnvelopeID: dining.ID})
	suite.Require().Nil(err)
	suite.Require().Len(list, 1)
	suite.Assert().Len(list[0].SplitLines, 2)
}

func (suite *TestSuiteStandard) TestVerifyDetectsDrift() {
	account := suite.createTestAccount("Checking")
	groceries := suite.createTestEnvelope("Groceries")

	_, err := suite.service.CreateOutflow(suite.db, ledger.NewTransaction{AccountID: account.ID, Date: mayAt(3), Amount: eur("30"), Payee: "Market", EnvelopeID: &groceries.ID})
	suite.Require().Nil(err)
	suite.Require().Nil(ledger.Verify(suite.db, may))

	suite.Require().Nil(suite.db.Model(&models.Allocation{}).Where("envelope_id = ?", groceries.ID).UpdateColumn("spent", decimal.NewFromInt(29)).Error)
	err = ledger.Verify(suite.db, may)
	suite.Assert().ErrorIs(err, ledger.ErrDrift)
	suite.Assert().Equal(budgeterrors.KindUnexpected, budgeterrors.KindOf(err))

	suite.Require().Nil(ledger.Recalculate(suite.db, may))
	suite.Assert().Nil(ledger.Verify(suite.db, may))

	suite.Require().Nil(suite.db.Model(&models.BudgetPeriod{}).Where("month = ?", may).UpdateColumn("total_income", decimal.NewFromInt(1)).Error)
	suite.Assert().ErrorIs(ledger.Verify(suite.db, may), ledger.ErrDrift)
	suite.Assert().Nil(ledger.Settle(suite.db, may, may, types.NewMonth(2024, time.June)))
}
