package controllers_test

import (
	"net/http"
	"time"

	"github.com/envelope-zero/budget-engine/internal/controllers"
	"github.com/envelope-zero/budget-engine/pkg/engine"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestReconcile() {
	account := suite.createTestAccount("Checking")
	salary := suite.createTestTransaction("inflows", account, 1, "1000", "Employer")
	rent := suite.createTestTransaction("outflows", account, 2, "600", "Landlord")
	path := "/v1/accounts/" + account.ID.String() + "/reconcile"

	w := suite.request(http.MethodGet, path+"/difference?balance=400&date=2024-05-31", nil)
	suite.assertHTTPStatus(http.StatusOK, w)
	suite.money("400", decode[controllers.Response[money.Money]](suite, w).Data)

	statement := controllers.ReconcileEditable{
		Balance: decimal.NewFromInt(400),
		Date:    time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		Cleared: []uuid.UUID{salary.ID, rent.ID},
	}

	w = suite.request(http.MethodPost, path, statement)
	suite.assertHTTPStatus(http.StatusOK, w)

	r := decode[engine.Result[engine.Reconciliation]](suite, w)
	suite.Assert().True(r.Success)
	suite.Assert().Nil(r.Value.Adjustment)
	suite.Assert().Len(r.Value.Reconciled, 2)
	suite.money("400", r.Value.Account.ClearedBalance)
	suite.Require().NotNil(r.Value.Account.LastReconciledAt)
	suite.Assert().True(now.Equal(*r.Value.Account.LastReconciledAt))

	// Reconciled transactions cannot be changed
	w = suite.request(http.MethodDelete, "/v1/transactions/"+rent.ID.String(), nil)
	suite.assertHTTPStatus(http.StatusConflict, w)

	w = suite.request(http.MethodDelete, path+"/2024-05", nil)
	suite.assertHTTPStatus(http.StatusOK, w)
	suite.Assert().Len(decode[engine.Result[[]engine.Transaction]](suite, w).Value, 2)

	w = suite.request(http.MethodDelete, "/v1/transactions/"+rent.ID.String(), nil)
	suite.assertHTTPStatus(http.StatusOK, w)
}

func (suite *TestSuiteStandard) TestReconcileAdjustment() {
	account := suite.createTestAccount("Checking")
	salary := suite.createTestTransaction("inflows", account, 1, "1000", "Employer")
	path := "/v1/accounts/" + account.ID.String() + "/reconcile"

	statement := controllers.ReconcileEditable{
		Balance: decimal.RequireFromString("987.50"),
		Date:    time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		Cleared: []uuid.UUID{salary.ID},
	}

	w := suite.request(http.MethodPost, path, statement)
	suite.assertHTTPStatus(http.StatusConflict, w)
	suite.Assert().Equal(engine.CodeInvalidOperation, decode[engine.Result[engine.Reconciliation]](suite, w).Errors[0].Code)

	// Nothing was cleared by the failed attempt
	w = suite.request(http.MethodGet, "/v1/transactions/"+salary.ID.String(), nil)
	suite.Assert().False(decode[controllers.Response[engine.Transaction]](suite, w).Data.Cleared)

	statement.Adjust = true
	w = suite.request(http.MethodPost, path, statement)
	suite.assertHTTPStatus(http.StatusOK, w)

	r := decode[engine.Result[engine.Reconciliation]](suite, w)
	suite.Require().NotNil(r.Value.Adjustment)
	suite.money("-12.50", r.Value.Adjustment.Amount)
	suite.Assert().True(r.Value.Adjustment.Adjustment)
	suite.money("987.50", r.Value.Account.ClearedBalance)
}

func (suite *TestSuiteStandard) TestReconcileBadRequests() {
	account := suite.createTestAccount("Checking")
	path := "/v1/accounts/" + account.ID.String() + "/reconcile"

	w := suite.request(http.MethodGet, path+"/difference?balance=many&date=2024-05-31", nil)
	suite.assertHTTPStatus(http.StatusBadRequest, w)

	w = suite.request(http.MethodGet, path+"/difference?balance=10&date=31.05.2024", nil)
	suite.assertHTTPStatus(http.StatusBadRequest, w)

	w = suite.request(http.MethodDelete, path+"/May", nil)
	suite.assertHTTPStatus(http.StatusBadRequest, w)
}
