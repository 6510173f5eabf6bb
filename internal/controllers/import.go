package controllers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/envelope-zero/budget-engine/internal/httputil"
	"github.com/envelope-zero/budget-engine/pkg/engine"
	"github.com/gin-gonic/gin"
)

var (
	errWrongFileSuffix = errors.New("this endpoint only supports .csv files")
	errLineInvalid     = errors.New("the line query parameter must be a list of line numbers")
)

func (co Controller) registerImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/preview", co.OptionsImport)
	r.POST("/preview", co.ImportPreview)
	r.OPTIONS("/commit", co.OptionsImport)
	r.POST("/commit", co.ImportCommit)
}

// OptionsImport returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Import
//	@Success		204
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/accounts/{id}/import/preview [options]
//	@Router			/v1/accounts/{id}/import/commit [options]
func (co Controller) OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// csvInput returns the CSV file of the request. It is either uploaded as
// multipart form field "file" or sent as request body.
func csvInput(c *gin.Context) (io.ReadCloser, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return c.Request.Body, nil
	}

	header, err := c.FormFile("file")
	if err != nil {
		return nil, httputil.ErrRequestBodyEmpty
	}

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		return nil, errWrongFileSuffix
	}

	return header.Open()
}

// lines parses the line query parameter. It can be repeated and contain
// comma separated lists. No parameter selects all lines.
func lines(c *gin.Context) ([]int, error) {
	values := c.QueryArray("line")
	if len(values) == 0 {
		return nil, nil
	}

	selected := []int{}
	for _, value := range values {
		for _, s := range strings.Split(value, ",") {
			line, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil || line < 1 {
				return nil, errLineInvalid
			}
			selected = append(selected, line)
		}
	}

	return selected, nil
}

// ImportPreview classifies the rows of a CSV file
//
//	@Summary		Preview import
//	@Description	Parses the CSV file and classifies every row as new, duplicate or invalid. Nothing is written.
//	@Tags			Import
//	@Accept			multipart/form-data
//	@Accept			text/csv
//	@Produce		json
//	@Success		200		{object}	Response[engine.ImportPreview]
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			id		path		string	true	"ID of the account to import to"
//	@Param			file	formData	file	false	"File to import"
//	@Router			/v1/accounts/{id}/import/preview [post]
func (co Controller) ImportPreview(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	input, err := csvInput(c)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}
	defer input.Close()

	preview, e := co.Engine.ImportPreview(c.Request.Context(), id, input)
	data(c, preview, e)
}

// ImportCommit imports the rows of a CSV file
//
//	@Summary		Commit import
//	@Description	Imports the selected rows of the CSV file as transactions. Duplicate and invalid rows are skipped.
//	@Tags			Import
//	@Accept			multipart/form-data
//	@Accept			text/csv
//	@Produce		json
//	@Success		201		{object}	engine.Result[engine.ImportResult]
//	@Failure		400		{object}	engine.Result[engine.ImportResult]
//	@Failure		409		{object}	engine.Result[engine.ImportResult]
//	@Failure		500		{object}	engine.Result[engine.ImportResult]
//	@Param			id		path		string	true	"ID of the account to import to"
//	@Param			file	formData	file	false	"File to import"
//	@Param			line	query		[]int	false	"Line numbers of the rows to import, defaults to all rows"
//	@Router			/v1/accounts/{id}/import/commit [post]
func (co Controller) ImportCommit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	selected, err := lines(c)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	input, err := csvInput(c)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}
	defer input.Close()

	respond(c, http.StatusCreated, co.Engine.ImportCommit(c.Request.Context(), engine.ImportCommitRequest{
		AccountID: id,
		Input:     input,
		Lines:     selected,
	}))
}
