package models_test

import (
	"time"

	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestModelTimeUTC() {
	tz, _ := time.LoadLocation("Europe/Berlin")

	model := models.DefaultModel{
		Timestamps: models.Timestamps{
			CreatedAt: time.Date(2000, 1, 2, 3, 4, 5, 6, tz),
			UpdatedAt: time.Date(2000, 1, 2, 3, 4, 5, 6, tz),
		},
	}

	suite.Assert().Nil(model.AfterFind(suite.db))
	suite.Assert().Equal(time.UTC, model.CreatedAt.Location(), "CreatedAt is not UTC")
	suite.Assert().Equal(time.UTC, model.UpdatedAt.Location(), "UpdatedAt is not UTC")
}

func (suite *TestSuiteStandard) TestModelIDGenerated() {
	model := models.DefaultModel{}
	suite.Assert().Nil(model.BeforeCreate(suite.db))
	suite.Assert().NotEqual(uuid.Nil, model.ID)

	id := uuid.New()
	model = models.DefaultModel{ID: id}
	suite.Assert().Nil(model.BeforeCreate(suite.db))
	suite.Assert().Equal(id, model.ID)
}
