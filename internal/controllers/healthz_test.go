package controllers_test

import (
	"net/http"
)

func (suite *TestSuiteStandard) TestHealthz() {
	w := suite.request(http.MethodGet, "/healthz", nil)
	suite.assertHTTPStatus(http.StatusNoContent, w)

	w = suite.request(http.MethodOptions, "/healthz", nil)
	suite.assertHTTPStatus(http.StatusNoContent, w)
	suite.Assert().Equal("OPTIONS, GET", w.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestHealthzDatabaseClosed() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()

	w := suite.request(http.MethodGet, "/healthz", nil)
	suite.assertHTTPStatus(http.StatusInternalServerError, w)
	suite.Assert().Contains(w.Body.String(), "the database cannot be accessed")
}
