package controllers

import (
	"net/http"

	"github.com/envelope-zero/budget-engine/internal/httputil"
	"github.com/envelope-zero/budget-engine/pkg/engine"
	"github.com/gin-gonic/gin"
)

// RegisterEnvelopeRoutes registers the routes for envelopes with
// the RouterGroup that is passed.
func (co Controller) RegisterEnvelopeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsEnvelopeList)
		r.GET("", co.GetEnvelopes)
		r.POST("", co.CreateEnvelope)
		r.PUT("/order", co.ReorderEnvelopes)
	}

	// Envelope with ID
	{
		r.OPTIONS("/:id", co.OptionsEnvelopeDetail)
		r.GET("/:id", co.GetEnvelope)
		r.PATCH("/:id", co.UpdateEnvelope)
		r.OPTIONS("/:id/archive", co.OptionsEnvelopeArchive)
		r.POST("/:id/archive", co.ArchiveEnvelope)
		r.DELETE("/:id/archive", co.UnarchiveEnvelope)
		r.PUT("/:id/goal", co.SetGoal)
		r.DELETE("/:id/goal", co.ClearGoal)
	}
}

// OptionsEnvelopeList returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Envelopes
//	@Success		204
//	@Router			/v1/envelopes [options]
func (co Controller) OptionsEnvelopeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsEnvelopeDetail returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Envelopes
//	@Success		204
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/envelopes/{id} [options]
func (co Controller) OptionsEnvelopeDetail(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// OptionsEnvelopeArchive returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Envelopes
//	@Success		204
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/envelopes/{id}/archive [options]
func (co Controller) OptionsEnvelopeArchive(c *gin.Context) {
	httputil.OptionsPostDelete(c)
}

// GetEnvelopes returns all envelopes
//
//	@Summary		Get envelopes
//	@Description	Returns all envelopes in their sort order. Archived envelopes are only included if requested.
//	@Tags			Envelopes
//	@Produce		json
//	@Success		200			{object}	Response[[]engine.Envelope]
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			archived	query		bool	false	"Include archived envelopes"
//	@Router			/v1/envelopes [get]
func (co Controller) GetEnvelopes(c *gin.Context) {
	var filter struct {
		Archived bool `form:"archived"`
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidQueryString)
		return
	}

	envelopes, err := co.Engine.Envelopes(c.Request.Context(), filter.Archived)
	data(c, envelopes, err)
}

// GetEnvelope returns a specific envelope
//
//	@Summary		Get envelope
//	@Tags			Envelopes
//	@Produce		json
//	@Success		200	{object}	Response[engine.Envelope]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/envelopes/{id} [get]
func (co Controller) GetEnvelope(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	envelope, err := co.Engine.Envelope(c.Request.Context(), id)
	data(c, envelope, err)
}

// CreateEnvelope creates a new envelope
//
//	@Summary		Create envelope
//	@Tags			Envelopes
//	@Produce		json
//	@Success		201			{object}	engine.Result[engine.Envelope]
//	@Failure		400			{object}	engine.Result[engine.Envelope]
//	@Failure		500			{object}	engine.Result[engine.Envelope]
//	@Param			envelope	body		EnvelopeCreate	true	"Envelope"
//	@Router			/v1/envelopes [post]
func (co Controller) CreateEnvelope(c *gin.Context) {
	var editable EnvelopeCreate
	if !bind(c, &editable) {
		return
	}

	respond(c, http.StatusCreated, co.Engine.CreateEnvelope(c.Request.Context(), co.envelopeCreate(editable)))
}

// UpdateEnvelope updates an envelope
//
//	@Summary		Update envelope
//	@Description	Updates an envelope. Only values to be updated need to be specified.
//	@Tags			Envelopes
//	@Produce		json
//	@Success		200			{object}	engine.Result[engine.Envelope]
//	@Failure		400			{object}	engine.Result[engine.Envelope]
//	@Failure		500			{object}	engine.Result[engine.Envelope]
//	@Param			id			path		string			true	"ID formatted as string"
//	@Param			envelope	body		EnvelopeUpdate	true	"Envelope"
//	@Router			/v1/envelopes/{id} [patch]
func (co Controller) UpdateEnvelope(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var editable EnvelopeUpdate
	if !bind(c, &editable) {
		return
	}

	respond(c, http.StatusOK, co.Engine.UpdateEnvelope(c.Request.Context(), id, editable.request()))
}

// ArchiveEnvelope archives an envelope
//
//	@Summary		Archive envelope
//	@Description	Archives an envelope. Its history stays intact.
//	@Tags			Envelopes
//	@Produce		json
//	@Success		200	{object}	engine.Result[engine.Envelope]
//	@Failure		400	{object}	engine.Result[engine.Envelope]
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/envelopes/{id}/archive [post]
func (co Controller) ArchiveEnvelope(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	respond(c, http.StatusOK, co.Engine.ArchiveEnvelope(c.Request.Context(), id))
}

// UnarchiveEnvelope unarchives an envelope
//
//	@Summary		Unarchive envelope
//	@Description	Makes an archived envelope active again. This fails if an active envelope has the same name.
//	@Tags			Envelopes
//	@Produce		json
//	@Success		200	{object}	engine.Result[engine.Envelope]
//	@Failure		400	{object}	engine.Result[engine.Envelope]
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/envelopes/{id}/archive [delete]
func (co Controller) UnarchiveEnvelope(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	respond(c, http.StatusOK, co.Engine.UnarchiveEnvelope(c.Request.Context(), id))
}

// SetGoal sets the savings goal of an envelope
//
//	@Summary		Set goal
//	@Tags			Envelopes
//	@Produce		json
//	@Success		200		{object}	engine.Result[engine.Envelope]
//	@Failure		400		{object}	engine.Result[engine.Envelope]
//	@Param			id		path		string			true	"ID formatted as string"
//	@Param			goal	body		GoalEditable	true	"Goal"
//	@Router			/v1/envelopes/{id}/goal [put]
func (co Controller) SetGoal(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var editable GoalEditable
	if !bind(c, &editable) {
		return
	}

	respond(c, http.StatusOK, co.Engine.SetGoal(c.Request.Context(), id, engine.SetGoalRequest{
		Amount: co.money(editable.Amount),
		Date:   editable.Date,
	}))
}

// ClearGoal removes the savings goal of an envelope
//
//	@Summary		Clear goal
//	@Tags			Envelopes
//	@Produce		json
//	@Success		200	{object}	engine.Result[engine.Envelope]
//	@Failure		400	{object}	engine.Result[engine.Envelope]
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/envelopes/{id}/goal [delete]
func (co Controller) ClearGoal(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	respond(c, http.StatusOK, co.Engine.ClearGoal(c.Request.Context(), id))
}

// ReorderEnvelopes sets the sort order of all envelopes
//
//	@Summary		Reorder envelopes
//	@Description	Sets the sort order of the envelopes to the order of the IDs
//	@Tags			Envelopes
//	@Produce		json
//	@Success		200		{object}	engine.Result[[]engine.Envelope]
//	@Failure		400		{object}	engine.Result[[]engine.Envelope]
//	@Param			order	body		OrderEditable	true	"Envelope IDs"
//	@Router			/v1/envelopes/order [put]
func (co Controller) ReorderEnvelopes(c *gin.Context) {
	var editable OrderEditable
	if !bind(c, &editable) {
		return
	}

	respond(c, http.StatusOK, co.Engine.ReorderEnvelopes(c.Request.Context(), editable.IDs))
}
