package ledger_test

import (
	"github.com/envelope-zero/budget-engine/internal/budgeterrors"
	"github.com/envelope-zero/budget-engine/internal/ledger"
	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/envelope-zero/budget-engine/pkg/money"
)

func (suite *TestSuiteStandard) TestCreateAccount() {
	account, err := suite.service.CreateAccount(suite.db, ledger.AccountInput{Name: " Checking ", Note: "Joint"})
	suite.Require().Nil(err)
	suite.Assert().Equal("Checking", account.Name)
	suite.Assert().Equal("EUR", account.Currency)

	_, err = suite.service.CreateAccount(suite.db, ledger.AccountInput{Name: "Checking"})
	suite.Assert().ErrorIs(err, models.ErrAccountNameNotUnique)

	_, err = suite.service.CreateAccount(suite.db, ledger.AccountInput{Name: "Dollars", Currency: "usd"})
	suite.Assert().ErrorIs(err, money.ErrCurrencyMismatch)
	suite.Assert().Equal(budgeterrors.KindValidation, budgeterrors.KindOf(err))

	_, err = suite.service.CreateAccount(suite.db, ledger.AccountInput{Name: "  "})
	suite.Assert().ErrorIs(err, models.ErrAccountNameEmpty)
}

func (suite *TestSuiteStandard) TestUpdateAccount() {
	account := suite.createTestAccount("Checking")
	suite.createTestAccount("Savings")

	name := "Main"
	archived := true
	updated, err := suite.service.UpdateAccount(suite.db, account.ID, ledger.AccountUpdate{Name: &name, Archived: &archived})
	suite.Require().Nil(err)
	suite.Assert().Equal("Main", updated.Name)
	suite.Assert().True(updated.Archived)

	taken := "Savings"
	_, err = suite.service.UpdateAccount(suite.db, account.ID, ledger.AccountUpdate{Name: &taken})
	suite.Assert().ErrorIs(err, models.ErrAccountNameNotUnique)

	accounts, err := suite.service.Accounts(suite.db)
	suite.Require().Nil(err)
	suite.Require().Len(accounts, 2)
	suite.Assert().Equal("Main", accounts[0].Name)
}
