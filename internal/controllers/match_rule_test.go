package controllers_test

import (
	"net/http"
	"testing"

	"github.com/envelope-zero/budget-engine/internal/controllers"
	"github.com/envelope-zero/budget-engine/pkg/engine"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createTestMatchRule(pattern string, envelope engine.Envelope, priority uint) engine.MatchRule {
	w := suite.request(http.MethodPost, "/v1/match-rules", controllers.MatchRuleEditable{
		Pattern:    pattern,
		EnvelopeID: envelope.ID,
		Priority:   priority,
	})
	suite.assertHTTPStatus(http.StatusCreated, w)
	return decode[engine.Result[engine.MatchRule]](suite, w).Value
}

func (suite *TestSuiteStandard) TestMatchRules() {
	groceries := suite.createTestEnvelope("Groceries")
	snacks := suite.createTestEnvelope("Snacks")

	market := suite.createTestMatchRule("*Market*", groceries, 2)
	bakery := suite.createTestMatchRule("Bakery*", snacks, 1)

	w := suite.request(http.MethodGet, "/v1/match-rules", nil)
	suite.assertHTTPStatus(http.StatusOK, w)

	rules := decode[controllers.Response[[]engine.MatchRule]](suite, w).Data
	suite.Require().Len(rules, 2)
	suite.Assert().Equal(bakery.ID, rules[0].ID, "Rules must be ordered by priority")
	suite.Assert().Equal(market.ID, rules[1].ID)

	priority := uint(0)
	w = suite.request(http.MethodPatch, "/v1/match-rules/"+market.ID.String(), controllers.MatchRuleUpdate{Priority: &priority})
	suite.assertHTTPStatus(http.StatusOK, w)

	r := decode[engine.Result[engine.MatchRule]](suite, w)
	suite.Assert().Equal(uint(0), r.Value.Priority)
	suite.Assert().Equal("*Market*", r.Value.Pattern)
	suite.Require().Len(r.Changes, 1)
	suite.Assert().Equal("priority", r.Changes[0].Field)

	w = suite.request(http.MethodDelete, "/v1/match-rules/"+bakery.ID.String(), nil)
	suite.assertHTTPStatus(http.StatusOK, w)

	w = suite.request(http.MethodGet, "/v1/match-rules", nil)
	suite.Assert().Len(decode[controllers.Response[[]engine.MatchRule]](suite, w).Data, 1)

	w = suite.request(http.MethodDelete, "/v1/match-rules/"+bakery.ID.String(), nil)
	suite.assertHTTPStatus(http.StatusBadRequest, w)
}

func (suite *TestSuiteStandard) TestMatchRuleImport() {
	account := suite.createTestAccount("Checking")
	groceries := suite.createTestEnvelope("Groceries")
	suite.createTestMatchRule("*Market*", groceries, 1)

	w := suite.request(http.MethodPost, "/v1/accounts/"+account.ID.String()+"/import/preview", "Date,Payee,Amount\n2024-05-03,Farmers Market,-12.30\n")
	suite.assertHTTPStatus(http.StatusOK, w)

	preview := decode[controllers.Response[engine.ImportPreview]](suite, w).Data
	suite.Require().Len(preview.Rows, 1)
	suite.Require().NotNil(preview.Rows[0].EnvelopeID)
	suite.Assert().Equal(groceries.ID, *preview.Rows[0].EnvelopeID)
}

func (suite *TestSuiteStandard) TestMatchRuleErrors() {
	envelope := suite.createTestEnvelope("Old stuff")

	w := suite.request(http.MethodPost, "/v1/envelopes/"+envelope.ID.String()+"/archive", nil)
	suite.assertHTTPStatus(http.StatusOK, w)

	tests := []struct {
		name   string
		rule   controllers.MatchRuleEditable
		status int
	}{
		{"Archived envelope", controllers.MatchRuleEditable{Pattern: "*", EnvelopeID: envelope.ID}, http.StatusConflict},
		{"Missing envelope", controllers.MatchRuleEditable{Pattern: "*", EnvelopeID: uuid.New()}, http.StatusBadRequest},
		{"Empty pattern", controllers.MatchRuleEditable{Pattern: "  ", EnvelopeID: suite.createTestEnvelope("New stuff").ID}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			w := suite.request(http.MethodPost, "/v1/match-rules", tt.rule)
			assert.Equal(t, tt.status, w.Code, "Response body: %s", w.Body.String())
		})
	}

	w = suite.request(http.MethodPatch, "/v1/match-rules/not-a-uuid", controllers.MatchRuleUpdate{})
	suite.assertHTTPStatus(http.StatusBadRequest, w)

	w = suite.request(http.MethodOptions, "/v1/match-rules/"+uuid.New().String(), nil)
	suite.assertHTTPStatus(http.StatusNoContent, w)
	suite.Assert().Equal("OPTIONS, PATCH, DELETE", w.Header().Get("allow"))
}
