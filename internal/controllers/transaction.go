package controllers

import (
	"net/http"
	"time"

	"github.com/envelope-zero/budget-engine/internal/httputil"
	"github.com/envelope-zero/budget-engine/pkg/engine"
	"github.com/gin-gonic/gin"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsTransactionList)
		r.GET("", co.GetTransactions)
		r.POST("/inflows", co.CreateInflow)
		r.POST("/outflows", co.CreateOutflow)
		r.POST("/transfers", co.CreateTransfer)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", co.OptionsTransactionDetail)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
		r.OPTIONS("/:id/cleared", co.OptionsTransactionCleared)
		r.POST("/:id/cleared", co.MarkCleared)
		r.DELETE("/:id/cleared", co.MarkUncleared)
	}
}

// OptionsTransactionList returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Router			/v1/transactions [options]
func (co Controller) OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsTransactionDetail returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id} [options]
func (co Controller) OptionsTransactionDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// OptionsTransactionCleared returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id}/cleared [options]
func (co Controller) OptionsTransactionCleared(c *gin.Context) {
	httputil.OptionsPostDelete(c)
}

type TransactionQueryFilter struct {
	Account  string `form:"account"`  // ID of the account
	Envelope string `form:"envelope"` // ID of the envelope
	From     string `form:"from"`     // First date, YYYY-MM-DD
	Until    string `form:"until"`    // Last date, YYYY-MM-DD
}

func (f TransactionQueryFilter) filter() (engine.TransactionFilter, error) {
	account, err := httputil.UUIDFromString(f.Account)
	if err != nil {
		return engine.TransactionFilter{}, err
	}

	envelope, err := httputil.UUIDFromString(f.Envelope)
	if err != nil {
		return engine.TransactionFilter{}, err
	}

	filter := engine.TransactionFilter{AccountID: account, EnvelopeID: envelope}
	for _, d := range []struct {
		value  string
		target *time.Time
	}{{f.From, &filter.From}, {f.Until, &filter.Until}} {
		if d.value == "" {
			continue
		}

		*d.target, err = time.Parse(time.DateOnly, d.value)
		if err != nil {
			return engine.TransactionFilter{}, httputil.ErrInvalidQueryString
		}
	}

	return filter, nil
}

// GetTransactions returns transactions
//
//	@Summary		Get transactions
//	@Description	Returns the transactions matching the filter ordered by date
//	@Tags			Transactions
//	@Produce		json
//	@Success		200			{object}	Response[[]engine.Transaction]
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			account		query		string	false	"Filter by account ID"
//	@Param			envelope	query		string	false	"Filter by envelope ID"
//	@Param			from		query		string	false	"Transactions at and after this date, YYYY-MM-DD"
//	@Param			until		query		string	false	"Transactions at and before this date, YYYY-MM-DD"
//	@Router			/v1/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	var query TransactionQueryFilter
	if err := c.ShouldBindQuery(&query); err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidQueryString)
		return
	}

	filter, err := query.filter()
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	transactions, e := co.Engine.Transactions(c.Request.Context(), filter)
	data(c, transactions, e)
}

// GetTransaction returns a specific transaction
//
//	@Summary		Get transaction
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	Response[engine.Transaction]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	transaction, err := co.Engine.Transaction(c.Request.Context(), id)
	data(c, transaction, err)
}

// CreateInflow creates an inflow
//
//	@Summary		Create inflow
//	@Description	Creates a transaction that adds money to the account. Unassigned inflows are income for the month.
//	@Tags			Transactions
//	@Produce		json
//	@Success		201			{object}	engine.Result[engine.Transaction]
//	@Failure		400			{object}	engine.Result[engine.Transaction]
//	@Failure		409			{object}	engine.Result[engine.Transaction]
//	@Param			transaction	body		TransactionCreate	true	"Transaction"
//	@Router			/v1/transactions/inflows [post]
func (co Controller) CreateInflow(c *gin.Context) {
	var editable TransactionCreate
	if !bind(c, &editable) {
		return
	}

	respond(c, http.StatusCreated, co.Engine.CreateInflow(c.Request.Context(), co.transactionCreate(editable)))
}

// CreateOutflow creates an outflow
//
//	@Summary		Create outflow
//	@Description	Creates a transaction that takes money from the account
//	@Tags			Transactions
//	@Produce		json
//	@Success		201			{object}	engine.Result[engine.Transaction]
//	@Failure		400			{object}	engine.Result[engine.Transaction]
//	@Failure		409			{object}	engine.Result[engine.Transaction]
//	@Param			transaction	body		TransactionCreate	true	"Transaction"
//	@Router			/v1/transactions/outflows [post]
func (co Controller) CreateOutflow(c *gin.Context) {
	var editable TransactionCreate
	if !bind(c, &editable) {
		return
	}

	respond(c, http.StatusCreated, co.Engine.CreateOutflow(c.Request.Context(), co.transactionCreate(editable)))
}

// CreateTransfer creates a transfer between two accounts
//
//	@Summary		Create transfer
//	@Description	Creates an outflow from one account and an inflow to the other. Transfers are never assigned to envelopes.
//	@Tags			Transactions
//	@Produce		json
//	@Success		201			{object}	engine.Result[engine.Transfer]
//	@Failure		400			{object}	engine.Result[engine.Transfer]
//	@Failure		409			{object}	engine.Result[engine.Transfer]
//	@Param			transfer	body		TransferCreate	true	"Transfer"
//	@Router			/v1/transactions/transfers [post]
func (co Controller) CreateTransfer(c *gin.Context) {
	var editable TransferCreate
	if !bind(c, &editable) {
		return
	}

	respond(c, http.StatusCreated, co.Engine.CreateTransfer(c.Request.Context(), engine.TransferRequest{
		FromAccountID: editable.FromAccountID,
		ToAccountID:   editable.ToAccountID,
		Amount:        co.money(editable.Amount),
		Date:          editable.Date,
		Memo:          editable.Memo,
	}))
}

// UpdateTransaction updates a transaction
//
//	@Summary		Update transaction
//	@Description	Updates a transaction. Only values to be updated need to be specified. Changes to transfers are applied to both legs.
//	@Tags			Transactions
//	@Produce		json
//	@Success		200			{object}	engine.Result[engine.Transaction]
//	@Failure		400			{object}	engine.Result[engine.Transaction]
//	@Failure		409			{object}	engine.Result[engine.Transaction]
//	@Param			id			path		string				true	"ID formatted as string"
//	@Param			transaction	body		TransactionUpdate	true	"Transaction"
//	@Router			/v1/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var editable TransactionUpdate
	if !bind(c, &editable) {
		return
	}

	respond(c, http.StatusOK, co.Engine.UpdateTransaction(c.Request.Context(), id, co.transactionUpdate(editable)))
}

// DeleteTransaction deletes a transaction
//
//	@Summary		Delete transaction
//	@Description	Deletes a transaction. Deleting one leg of a transfer deletes both.
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	engine.Result[[]engine.Transaction]
//	@Failure		400	{object}	engine.Result[[]engine.Transaction]
//	@Failure		409	{object}	engine.Result[[]engine.Transaction]
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	respond(c, http.StatusOK, co.Engine.DeleteTransaction(c.Request.Context(), id))
}

// MarkCleared marks a transaction as cleared
//
//	@Summary		Mark cleared
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	engine.Result[engine.Transaction]
//	@Failure		400	{object}	engine.Result[engine.Transaction]
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id}/cleared [post]
func (co Controller) MarkCleared(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	respond(c, http.StatusOK, co.Engine.MarkCleared(c.Request.Context(), id))
}

// MarkUncleared marks a transaction as not cleared
//
//	@Summary		Mark uncleared
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	engine.Result[engine.Transaction]
//	@Failure		400	{object}	engine.Result[engine.Transaction]
//	@Failure		409	{object}	engine.Result[engine.Transaction]
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id}/cleared [delete]
func (co Controller) MarkUncleared(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	respond(c, http.StatusOK, co.Engine.MarkUncleared(c.Request.Context(), id))
}
