package controllers

import (
	"net/http"

	"github.com/envelope-zero/budget-engine/internal/httputil"
	"github.com/envelope-zero/budget-engine/pkg/engine"
	"github.com/gin-gonic/gin"
)

// RegisterMatchRuleRoutes registers the routes for match rules with
// the RouterGroup that is passed.
func (co Controller) RegisterMatchRuleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsMatchRuleList)
		r.GET("", co.GetMatchRules)
		r.POST("", co.CreateMatchRule)
	}

	// Match rule with ID
	{
		r.OPTIONS("/:id", co.OptionsMatchRuleDetail)
		r.PATCH("/:id", co.UpdateMatchRule)
		r.DELETE("/:id", co.DeleteMatchRule)
	}
}

// OptionsMatchRuleList returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			MatchRules
//	@Success		204
//	@Router			/v1/match-rules [options]
func (co Controller) OptionsMatchRuleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsMatchRuleDetail returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			MatchRules
//	@Success		204
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/match-rules/{id} [options]
func (co Controller) OptionsMatchRuleDetail(c *gin.Context) {
	httputil.OptionsPatchDelete(c)
}

// GetMatchRules returns all match rules
//
//	@Summary		Get match rules
//	@Description	Returns all match rules in the order they are applied
//	@Tags			MatchRules
//	@Produce		json
//	@Success		200	{object}	Response[[]engine.MatchRule]
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1/match-rules [get]
func (co Controller) GetMatchRules(c *gin.Context) {
	rules, err := co.Engine.MatchRules(c.Request.Context())
	data(c, rules, err)
}

// CreateMatchRule creates a match rule
//
//	@Summary		Create match rule
//	@Description	Creates a rule assigning imported transactions with a matching payee to an envelope
//	@Tags			MatchRules
//	@Produce		json
//	@Success		201			{object}	engine.Result[engine.MatchRule]
//	@Failure		400			{object}	engine.Result[engine.MatchRule]
//	@Param			matchRule	body		MatchRuleEditable	true	"Match rule"
//	@Router			/v1/match-rules [post]
func (co Controller) CreateMatchRule(c *gin.Context) {
	var editable MatchRuleEditable
	if !bind(c, &editable) {
		return
	}

	respond(c, http.StatusCreated, co.Engine.CreateMatchRule(c.Request.Context(), engine.MatchRuleRequest{
		Pattern:    editable.Pattern,
		EnvelopeID: editable.EnvelopeID,
		Priority:   editable.Priority,
	}))
}

// UpdateMatchRule updates a match rule
//
//	@Summary		Update match rule
//	@Description	Updates a match rule. Only values to be updated need to be specified.
//	@Tags			MatchRules
//	@Produce		json
//	@Success		200			{object}	engine.Result[engine.MatchRule]
//	@Failure		400			{object}	engine.Result[engine.MatchRule]
//	@Param			id			path		string			true	"ID formatted as string"
//	@Param			matchRule	body		MatchRuleUpdate	true	"Match rule"
//	@Router			/v1/match-rules/{id} [patch]
func (co Controller) UpdateMatchRule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var editable MatchRuleUpdate
	if !bind(c, &editable) {
		return
	}

	respond(c, http.StatusOK, co.Engine.UpdateMatchRule(c.Request.Context(), id, engine.UpdateMatchRuleRequest{
		Pattern:    editable.Pattern,
		EnvelopeID: editable.EnvelopeID,
		Priority:   editable.Priority,
	}))
}

// DeleteMatchRule deletes a match rule
//
//	@Summary		Delete match rule
//	@Tags			MatchRules
//	@Produce		json
//	@Success		200	{object}	engine.Result[engine.MatchRule]
//	@Failure		400	{object}	engine.Result[engine.MatchRule]
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/match-rules/{id} [delete]
func (co Controller) DeleteMatchRule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	respond(c, http.StatusOK, co.Engine.DeleteMatchRule(c.Request.Context(), id))
}
