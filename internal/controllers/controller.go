// Package controllers implements the HTTP API of the budget engine.
//
// Mutating endpoints respond with the engine result, including the snapshot of
// affected periods and accounts and the list of changes. Read endpoints wrap
// their value in a Response.
package controllers

import (
	"net/http"

	"github.com/envelope-zero/budget-engine/internal/httputil"
	"github.com/envelope-zero/budget-engine/pkg/engine"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Controller struct {
	DB     *gorm.DB
	Engine *engine.Engine
}

// Response is the response of all read endpoints.
type Response[T any] struct {
	Data T `json:"data"`
}

func (co Controller) money(amount decimal.Decimal) money.Money {
	return money.New(amount, co.Engine.Currency())
}

func (co Controller) moneyPtr(amount *decimal.Decimal) *money.Money {
	if amount == nil {
		return nil
	}

	m := co.money(*amount)
	return &m
}

// respond writes the result of a mutating operation. On success, the status is used,
// otherwise the status for the first error.
func respond[T any](c *gin.Context, status int, r engine.Result[T]) {
	if !r.Success {
		status = httputil.Status(r.Err().Code)
	}

	c.JSON(status, r)
}

// data writes the value of a read operation or its error.
func data[T any](c *gin.Context, value T, err *engine.Error) {
	if err != nil {
		httputil.EngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[T]{Data: value})
}

// bind binds the request body and writes the error response if that fails.
func bind(c *gin.Context, target any) bool {
	if err := httputil.BindData(c, target); err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return false
	}

	return true
}

// paramID parses the path parameter as UUID and writes the error response if that fails.
func paramID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := httputil.ParamID(c, param)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return uuid.Nil, false
	}

	return id, true
}

// paramMonth parses the path parameter as month and writes the error response if that fails.
func paramMonth(c *gin.Context, param string) (engine.Month, bool) {
	month, err := httputil.ParamMonth(c, param)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return engine.Month{}, false
	}

	return month, true
}
