package controllers_test

import (
	"net/http"
	"time"

	"github.com/envelope-zero/budget-engine/internal/controllers"
	"github.com/envelope-zero/budget-engine/internal/httputil"
	"github.com/envelope-zero/budget-engine/pkg/engine"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionSpending() {
	account := suite.createTestAccount("Checking")
	groceries := suite.createTestEnvelope("Groceries")
	suite.createTestTransaction("inflows", account, 1, "1000", "Employer")

	w := suite.request(http.MethodPut, "/v1/periods/2024-05/allocations/"+groceries.ID.String(), controllers.AllocationSet{Amount: decimal.NewFromInt(100)})
	suite.assertHTTPStatus(http.StatusOK, w)

	w = suite.request(http.MethodPost, "/v1/transactions/outflows", controllers.TransactionCreate{
		AccountID:  account.ID,
		Date:       time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.RequireFromString("42.10"),
		Payee:      "Farmers market",
		EnvelopeID: &groceries.ID,
	})
	suite.assertHTTPStatus(http.StatusCreated, w)

	r := decode[engine.Result[engine.Transaction]](suite, w)
	suite.money("-42.10", r.Value.Amount)
	suite.Require().Len(r.Snapshot.Periods, 1)
	suite.Require().Len(r.Snapshot.Periods[0].Allocations, 1)
	suite.money("57.90", r.Snapshot.Periods[0].Allocations[0].Available)
	suite.Require().Len(r.Snapshot.Accounts, 1)
	suite.money("957.90", r.Snapshot.Accounts[0].Balance)

	amount := decimal.RequireFromString("-50")
	w = suite.request(http.MethodPatch, "/v1/transactions/"+r.Value.ID.String(), controllers.TransactionUpdate{Amount: &amount})
	suite.assertHTTPStatus(http.StatusOK, w)
	suite.money("50", decode[engine.Result[engine.Transaction]](suite, w).Snapshot.Periods[0].Allocations[0].Available)

	w = suite.request(http.MethodGet, "/v1/transactions?envelope="+groceries.ID.String(), nil)
	suite.assertHTTPStatus(http.StatusOK, w)
	suite.Assert().Len(decode[controllers.Response[[]engine.Transaction]](suite, w).Data, 1)

	w = suite.request(http.MethodDelete, "/v1/transactions/"+r.Value.ID.String(), nil)
	suite.assertHTTPStatus(http.StatusOK, w)

	deleted := decode[engine.Result[[]engine.Transaction]](suite, w)
	suite.Require().Len(deleted.Value, 1)
	suite.Assert().True(deleted.Value[0].Deleted)
	suite.money("100", deleted.Snapshot.Periods[0].Allocations[0].Available)
}

func (suite *TestSuiteStandard) TestTransactionSplit() {
	account := suite.createTestAccount("Checking")
	groceries := suite.createTestEnvelope("Groceries")
	household := suite.createTestEnvelope("Household")

	split := controllers.TransactionCreate{
		AccountID: account.ID,
		Date:      time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromInt(120),
		Payee:     "Supermarket",
		SplitLines: []controllers.SplitLineEditable{
			{EnvelopeID: groceries.ID, Amount: decimal.NewFromInt(80)},
			{EnvelopeID: household.ID, Amount: decimal.NewFromInt(40)},
		},
	}

	w := suite.request(http.MethodPost, "/v1/transactions/outflows", split)
	suite.assertHTTPStatus(http.StatusCreated, w)
	suite.Assert().Len(decode[engine.Result[engine.Transaction]](suite, w).Value.SplitLines, 2)

	split.SplitLines[1].Amount = decimal.NewFromInt(30)
	w = suite.request(http.MethodPost, "/v1/transactions/outflows", split)
	suite.assertHTTPStatus(http.StatusConflict, w)
}

func (suite *TestSuiteStandard) TestTransactionTransfer() {
	checking := suite.createTestAccount("Checking")
	savings := suite.createTestAccount("Savings")

	w := suite.request(http.MethodPost, "/v1/transactions/transfers", controllers.TransferCreate{
		FromAccountID: checking.ID,
		ToAccountID:   savings.ID,
		Amount:        decimal.NewFromInt(250),
		Date:          time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
	})
	suite.assertHTTPStatus(http.StatusCreated, w)

	transfer := decode[engine.Result[engine.Transfer]](suite, w)
	suite.money("-250", transfer.Value.Outflow.Amount)
	suite.money("250", transfer.Value.Inflow.Amount)
	suite.Assert().Len(transfer.Snapshot.Accounts, 2)

	w = suite.request(http.MethodPost, "/v1/transactions/transfers", controllers.TransferCreate{
		FromAccountID: checking.ID,
		ToAccountID:   checking.ID,
		Amount:        decimal.NewFromInt(250),
		Date:          time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
	})
	suite.assertHTTPStatus(http.StatusConflict, w)
}

func (suite *TestSuiteStandard) TestTransactionCleared() {
	account := suite.createTestAccount("Checking")
	transaction := suite.createTestTransaction("outflows", account, 3, "12.30", "Bakery")
	path := "/v1/transactions/" + transaction.ID.String() + "/cleared"

	w := suite.request(http.MethodPost, path, nil)
	suite.assertHTTPStatus(http.StatusOK, w)

	r := decode[engine.Result[engine.Transaction]](suite, w)
	suite.Assert().True(r.Value.Cleared)
	suite.money("-12.30", r.Snapshot.Accounts[0].ClearedBalance)

	w = suite.request(http.MethodDelete, path, nil)
	suite.assertHTTPStatus(http.StatusOK, w)
	suite.Assert().False(decode[engine.Result[engine.Transaction]](suite, w).Value.Cleared)

	w = suite.request(http.MethodGet, "/v1/transactions/"+transaction.ID.String(), nil)
	suite.assertHTTPStatus(http.StatusOK, w)
	suite.Assert().Equal("Bakery", decode[controllers.Response[engine.Transaction]](suite, w).Data.Payee)
}

func (suite *TestSuiteStandard) TestTransactionFilter() {
	account := suite.createTestAccount("Checking")
	suite.createTestTransaction("outflows", account, 3, "12.30", "Bakery")
	suite.createTestTransaction("outflows", account, 20, "5", "Kiosk")

	tests := []struct {
		query  string
		status int
		count  int
	}{
		{"", http.StatusOK, 2},
		{"?account=" + account.ID.String(), http.StatusOK, 2},
		{"?from=2024-05-10", http.StatusOK, 1},
		{"?until=2024-05-10", http.StatusOK, 1},
		{"?from=2024-05-04&until=2024-05-19", http.StatusOK, 0},
		{"?from=May", http.StatusBadRequest, 0},
		{"?account=checking", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		suite.Run(tt.query, func() {
			w := suite.request(http.MethodGet, "/v1/transactions"+tt.query, nil)
			suite.assertHTTPStatus(tt.status, w)

			if tt.status == http.StatusOK {
				suite.Assert().Len(decode[controllers.Response[[]engine.Transaction]](suite, w).Data, tt.count)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionWrongType() {
	w := suite.request(http.MethodPost, "/v1/transactions/outflows", `{"payee": 17}`)
	suite.assertHTTPStatus(http.StatusBadRequest, w)
	suite.Assert().NotEqual(httputil.ErrInvalidBody.Error(), decode[httputil.HTTPError](suite, w).Error)
}
