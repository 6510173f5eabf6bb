package controllers

import (
	"net/http"
	"time"

	"github.com/envelope-zero/budget-engine/internal/httputil"
	"github.com/envelope-zero/budget-engine/pkg/engine"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (co Controller) registerReconcileRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsReconcile)
	r.POST("", co.Reconcile)
	r.GET("/difference", co.GetReconcileDifference)
	r.DELETE("/:month", co.Unreconcile)
}

// OptionsReconcile returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Reconciliation
//	@Success		204
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/accounts/{id}/reconcile [options]
func (co Controller) OptionsReconcile(c *gin.Context) {
	httputil.OptionsPost(c)
}

// Reconcile reconciles an account against a bank statement
//
//	@Summary		Reconcile
//	@Description	Marks the selected transactions as cleared and reconciled if the cleared balance matches the statement balance. If it does not, an adjustment transaction can be requested.
//	@Tags			Reconciliation
//	@Produce		json
//	@Success		200			{object}	engine.Result[engine.Reconciliation]
//	@Failure		400			{object}	engine.Result[engine.Reconciliation]
//	@Failure		409			{object}	engine.Result[engine.Reconciliation]
//	@Failure		500			{object}	engine.Result[engine.Reconciliation]
//	@Param			id			path		string				true	"ID formatted as string"
//	@Param			statement	body		ReconcileEditable	true	"Statement"
//	@Router			/v1/accounts/{id}/reconcile [post]
func (co Controller) Reconcile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var editable ReconcileEditable
	if !bind(c, &editable) {
		return
	}

	respond(c, http.StatusOK, co.Engine.Reconcile(c.Request.Context(), engine.ReconcileRequest{
		AccountID: id,
		Balance:   co.money(editable.Balance),
		Date:      editable.Date,
		Cleared:   editable.Cleared,
		Adjust:    editable.Adjust,
	}))
}

// GetReconcileDifference returns the difference between a statement balance and the cleared balance
//
//	@Summary		Reconciliation difference
//	@Description	Returns the statement balance minus the balance of all cleared transactions up to the statement date
//	@Tags			Reconciliation
//	@Produce		json
//	@Success		200		{object}	Response[money.Money]
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			id		path		string	true	"ID formatted as string"
//	@Param			balance	query		string	true	"Ending balance of the statement"
//	@Param			date	query		string	true	"Date of the statement in YYYY-MM-DD format"
//	@Router			/v1/accounts/{id}/reconcile/difference [get]
func (co Controller) GetReconcileDifference(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	balance, err := decimal.NewFromString(c.Query("balance"))
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidQueryString)
		return
	}

	date, err := time.Parse(time.DateOnly, c.Query("date"))
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidQueryString)
		return
	}

	difference, e := co.Engine.ReconcileDifference(c.Request.Context(), id, co.money(balance), date)
	data(c, difference, e)
}

// Unreconcile removes the reconciled flag from the transactions of a month
//
//	@Summary		Unreconcile
//	@Description	Removes the reconciled flag from all transactions of the account in the month. They stay cleared.
//	@Tags			Reconciliation
//	@Produce		json
//	@Success		200		{object}	engine.Result[[]engine.Transaction]
//	@Failure		400		{object}	engine.Result[[]engine.Transaction]
//	@Failure		500		{object}	engine.Result[[]engine.Transaction]
//	@Param			id		path		string	true	"ID formatted as string"
//	@Param			month	path		string	true	"The month in YYYY-MM format"
//	@Router			/v1/accounts/{id}/reconcile/{month} [delete]
func (co Controller) Unreconcile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	month, ok := paramMonth(c, "month")
	if !ok {
		return
	}

	respond(c, http.StatusOK, co.Engine.Unreconcile(c.Request.Context(), id, month))
}
