package importer_test

import (
	"github.com/envelope-zero/budget-engine/internal/importer"
	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestMatchRuleLifecycle() {
	groceries := suite.createTestEnvelope("Groceries")
	bread := suite.createTestEnvelope("Bread")

	rule, err := suite.importer.CreateMatchRule(suite.db, importer.MatchRuleInput{Pattern: " *REWE* ", EnvelopeID: groceries.ID, Priority: 2})
	suite.Require().Nil(err)
	suite.Assert().Equal("*REWE*", rule.Pattern)

	second, err := suite.importer.CreateMatchRule(suite.db, importer.MatchRuleInput{Pattern: "Bakery*", EnvelopeID: bread.ID, Priority: 1})
	suite.Require().Nil(err)

	rules, err := suite.importer.MatchRules(suite.db)
	suite.Require().Nil(err)
	suite.Require().Len(rules, 2)
	suite.Assert().Equal(second.ID, rules[0].ID)

	priority := uint(5)
	updated, err := suite.importer.UpdateMatchRule(suite.db, second.ID, importer.MatchRuleUpdate{Priority: &priority, EnvelopeID: &groceries.ID})
	suite.Require().Nil(err)
	suite.Assert().Equal(uint(5), updated.Priority)
	suite.Assert().Equal(groceries.ID, updated.EnvelopeID)

	empty := ""
	_, err = suite.importer.UpdateMatchRule(suite.db, second.ID, importer.MatchRuleUpdate{Pattern: &empty})
	suite.Assert().ErrorIs(err, models.ErrMatchRulePatternEmpty)

	_, err = suite.importer.DeleteMatchRule(suite.db, rule.ID)
	suite.Require().Nil(err)

	rules, err = suite.importer.MatchRules(suite.db)
	suite.Require().Nil(err)
	suite.Assert().Len(rules, 1)
}

func (suite *TestSuiteStandard) TestMatchRuleEnvelopeChecks() {
	archived := models.Envelope{Name: "Old", Archived: true}
	suite.Require().Nil(suite.db.Create(&archived).Error)

	_, err := suite.importer.CreateMatchRule(suite.db, importer.MatchRuleInput{Pattern: "*", EnvelopeID: archived.ID})
	suite.Assert().ErrorIs(err, models.ErrEnvelopeArchived)

	_, err = suite.importer.CreateMatchRule(suite.db, importer.MatchRuleInput{Pattern: "*", EnvelopeID: uuid.New()})
	suite.Assert().True(models.IsNotFound(err))
}
