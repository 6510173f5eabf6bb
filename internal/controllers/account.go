package controllers

import (
	"net/http"

	"github.com/envelope-zero/budget-engine/internal/httputil"
	"github.com/envelope-zero/budget-engine/pkg/engine"
	"github.com/gin-gonic/gin"
)

// RegisterAccountRoutes registers the routes for accounts, their imports and
// their reconciliation with the RouterGroup that is passed.
func (co Controller) RegisterAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsAccountList)
		r.GET("", co.GetAccounts)
		r.POST("", co.CreateAccount)
	}

	// Account with ID
	{
		r.OPTIONS("/:id", co.OptionsAccountDetail)
		r.GET("/:id", co.GetAccount)
		r.PATCH("/:id", co.UpdateAccount)
	}

	co.registerImportRoutes(r.Group("/:id/import"))
	co.registerReconcileRoutes(r.Group("/:id/reconcile"))
}

// OptionsAccountList returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Accounts
//	@Success		204
//	@Router			/v1/accounts [options]
func (co Controller) OptionsAccountList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsAccountDetail returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Accounts
//	@Success		204
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/accounts/{id} [options]
func (co Controller) OptionsAccountDetail(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// GetAccounts returns all accounts
//
//	@Summary		Get accounts
//	@Description	Returns all accounts with their balances
//	@Tags			Accounts
//	@Produce		json
//	@Success		200	{object}	Response[[]engine.Account]
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1/accounts [get]
func (co Controller) GetAccounts(c *gin.Context) {
	accounts, err := co.Engine.Accounts(c.Request.Context())
	data(c, accounts, err)
}

// GetAccount returns a specific account
//
//	@Summary		Get account
//	@Tags			Accounts
//	@Produce		json
//	@Success		200	{object}	Response[engine.Account]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/accounts/{id} [get]
func (co Controller) GetAccount(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	account, err := co.Engine.Account(c.Request.Context(), id)
	data(c, account, err)
}

// CreateAccount creates a new account
//
//	@Summary		Create account
//	@Tags			Accounts
//	@Produce		json
//	@Success		201		{object}	engine.Result[engine.Account]
//	@Failure		400		{object}	engine.Result[engine.Account]
//	@Failure		500		{object}	engine.Result[engine.Account]
//	@Param			account	body		AccountCreate	true	"Account"
//	@Router			/v1/accounts [post]
func (co Controller) CreateAccount(c *gin.Context) {
	var editable AccountCreate
	if !bind(c, &editable) {
		return
	}

	respond(c, http.StatusCreated, co.Engine.CreateAccount(c.Request.Context(), engine.CreateAccountRequest{
		Name:     editable.Name,
		Note:     editable.Note,
		Currency: editable.Currency,
	}))
}

// UpdateAccount updates an account
//
//	@Summary		Update account
//	@Description	Updates an account. Only values to be updated need to be specified.
//	@Tags			Accounts
//	@Produce		json
//	@Success		200		{object}	engine.Result[engine.Account]
//	@Failure		400		{object}	engine.Result[engine.Account]
//	@Failure		500		{object}	engine.Result[engine.Account]
//	@Param			id		path		string			true	"ID formatted as string"
//	@Param			account	body		AccountUpdate	true	"Account"
//	@Router			/v1/accounts/{id} [patch]
func (co Controller) UpdateAccount(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var editable AccountUpdate
	if !bind(c, &editable) {
		return
	}

	respond(c, http.StatusOK, co.Engine.UpdateAccount(c.Request.Context(), id, engine.UpdateAccountRequest{
		Name:     editable.Name,
		Note:     editable.Note,
		Archived: editable.Archived,
	}))
}
