package controllers

import (
	"net/http"

	"github.com/envelope-zero/budget-engine/internal/httputil"
	"github.com/envelope-zero/budget-engine/pkg/engine"
	"github.com/gin-gonic/gin"
)

// RegisterPeriodRoutes registers the routes for budget periods with
// the RouterGroup that is passed.
func (co Controller) RegisterPeriodRoutes(r *gin.RouterGroup) {
	// Period with month
	{
		r.OPTIONS("/:month", co.OptionsPeriod)
		r.GET("/:month", co.GetPeriod)
		r.POST("/:month/rollover", co.RolloverPeriod)
		r.POST("/:month/auto-assign", co.AutoAssign)
		r.POST("/:month/moves", co.MoveMoney)
	}

	// Allocations
	{
		r.OPTIONS("/:month/allocations/:envelopeId", co.OptionsAllocation)
		r.PUT("/:month/allocations/:envelopeId", co.SetAllocation)
		r.PATCH("/:month/allocations/:envelopeId", co.AddToAllocation)
	}
}

// OptionsPeriod returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Periods
//	@Success		204
//	@Param			month	path	string	true	"The month in YYYY-MM format"
//	@Router			/v1/periods/{month} [options]
func (co Controller) OptionsPeriod(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetPeriod returns the budget period for a month
//
//	@Summary		Get period
//	@Description	Returns the totals and all allocations of the budget period. Periods that have never been written return the income of the month.
//	@Tags			Periods
//	@Produce		json
//	@Success		200		{object}	Response[engine.Period]
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			month	path		string	true	"The month in YYYY-MM format"
//	@Router			/v1/periods/{month} [get]
func (co Controller) GetPeriod(c *gin.Context) {
	month, ok := paramMonth(c, "month")
	if !ok {
		return
	}

	period, err := co.Engine.Period(c.Request.Context(), month)
	data(c, period, err)
}

// RolloverPeriod closes the period and carries its remaining money to the next month
//
//	@Summary		Roll over
//	@Description	Closes the period. Available money of every envelope and the money ready to assign are carried over to the next month.
//	@Tags			Periods
//	@Produce		json
//	@Success		200		{object}	engine.Result[engine.Period]
//	@Failure		400		{object}	engine.Result[engine.Period]
//	@Failure		409		{object}	engine.Result[engine.Period]
//	@Failure		500		{object}	engine.Result[engine.Period]
//	@Param			month	path		string	true	"The month in YYYY-MM format"
//	@Router			/v1/periods/{month}/rollover [post]
func (co Controller) RolloverPeriod(c *gin.Context) {
	month, ok := paramMonth(c, "month")
	if !ok {
		return
	}

	respond(c, http.StatusOK, co.Engine.RolloverToNextMonth(c.Request.Context(), month))
}

// AutoAssign assigns the money ready to assign to envelopes with goals
//
//	@Summary		Auto assign
//	@Description	Assigns the money ready to assign to the goals of the envelopes, ordered by the policy
//	@Tags			Periods
//	@Produce		json
//	@Success		200		{object}	engine.Result[engine.Period]
//	@Failure		400		{object}	engine.Result[engine.Period]
//	@Failure		409		{object}	engine.Result[engine.Period]
//	@Failure		501		{object}	engine.Result[engine.Period]
//	@Param			month	path		string				true	"The month in YYYY-MM format"
//	@Param			policy	body		AutoAssignEditable	false	"Policy"
//	@Router			/v1/periods/{month}/auto-assign [post]
func (co Controller) AutoAssign(c *gin.Context) {
	month, ok := paramMonth(c, "month")
	if !ok {
		return
	}

	// The body is optional
	var editable AutoAssignEditable
	if c.Request.ContentLength != 0 && !bind(c, &editable) {
		return
	}

	respond(c, http.StatusOK, co.Engine.AutoAssignToGoals(c.Request.Context(), engine.AutoAssignRequest{
		Month:  month,
		Policy: editable.Policy,
	}))
}

// MoveMoney moves money between the allocations of two envelopes
//
//	@Summary		Move money
//	@Description	Moves money from the allocation of one envelope to another in the same month
//	@Tags			Periods
//	@Produce		json
//	@Success		200		{object}	engine.Result[[]engine.Allocation]
//	@Failure		400		{object}	engine.Result[[]engine.Allocation]
//	@Failure		409		{object}	engine.Result[[]engine.Allocation]
//	@Param			month	path		string			true	"The month in YYYY-MM format"
//	@Param			move	body		MoveEditable	true	"Move"
//	@Router			/v1/periods/{month}/moves [post]
func (co Controller) MoveMoney(c *gin.Context) {
	month, ok := paramMonth(c, "month")
	if !ok {
		return
	}

	var editable MoveEditable
	if !bind(c, &editable) {
		return
	}

	respond(c, http.StatusOK, co.Engine.MoveMoney(c.Request.Context(), engine.MoveMoneyRequest{
		FromEnvelopeID: editable.FromEnvelopeID,
		ToEnvelopeID:   editable.ToEnvelopeID,
		Month:          month,
		Amount:         co.money(editable.Amount),
	}))
}

// OptionsAllocation returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Periods
//	@Success		204
//	@Param			month		path	string	true	"The month in YYYY-MM format"
//	@Param			envelopeId	path	string	true	"ID formatted as string"
//	@Router			/v1/periods/{month}/allocations/{envelopeId} [options]
func (co Controller) OptionsAllocation(c *gin.Context) {
	httputil.OptionsPutPatch(c)
}

// SetAllocation sets the allocated amount of an envelope for a month
//
//	@Summary		Set allocation
//	@Tags			Periods
//	@Produce		json
//	@Success		200			{object}	engine.Result[engine.Allocation]
//	@Failure		400			{object}	engine.Result[engine.Allocation]
//	@Failure		409			{object}	engine.Result[engine.Allocation]
//	@Param			month		path		string			true	"The month in YYYY-MM format"
//	@Param			envelopeId	path		string			true	"ID formatted as string"
//	@Param			allocation	body		AllocationSet	true	"Allocation"
//	@Router			/v1/periods/{month}/allocations/{envelopeId} [put]
func (co Controller) SetAllocation(c *gin.Context) {
	month, ok := paramMonth(c, "month")
	if !ok {
		return
	}

	envelopeID, ok := paramID(c, "envelopeId")
	if !ok {
		return
	}

	var editable AllocationSet
	if !bind(c, &editable) {
		return
	}

	respond(c, http.StatusOK, co.Engine.SetAllocation(c.Request.Context(), engine.SetAllocationRequest{
		EnvelopeID: envelopeID,
		Month:      month,
		Amount:     co.money(editable.Amount),
	}))
}

// AddToAllocation changes the allocated amount of an envelope for a month by a delta
//
//	@Summary		Add to allocation
//	@Tags			Periods
//	@Produce		json
//	@Success		200			{object}	engine.Result[engine.Allocation]
//	@Failure		400			{object}	engine.Result[engine.Allocation]
//	@Failure		409			{object}	engine.Result[engine.Allocation]
//	@Param			month		path		string			true	"The month in YYYY-MM format"
//	@Param			envelopeId	path		string			true	"ID formatted as string"
//	@Param			allocation	body		AllocationAdd	true	"Delta"
//	@Router			/v1/periods/{month}/allocations/{envelopeId} [patch]
func (co Controller) AddToAllocation(c *gin.Context) {
	month, ok := paramMonth(c, "month")
	if !ok {
		return
	}

	envelopeID, ok := paramID(c, "envelopeId")
	if !ok {
		return
	}

	var editable AllocationAdd
	if !bind(c, &editable) {
		return
	}

	respond(c, http.StatusOK, co.Engine.AddToAllocation(c.Request.Context(), engine.AddToAllocationRequest{
		EnvelopeID: envelopeID,
		Month:      month,
		Delta:      co.money(editable.Delta),
	}))
}
