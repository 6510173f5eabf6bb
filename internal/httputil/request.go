package httputil

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/envelope-zero/budget-engine/pkg/engine"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ContextURL is the key of the public API URL in the gin context.
const ContextURL = "apiURL"

// BindData binds the data from the request to the struct passed in the interface.
func BindData(c *gin.Context, data interface{}) error {
	if err := c.ShouldBindJSON(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return err
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// UUIDFromString binds a string to a UUID
//
// This is needed because gin does not support form binding to uuid.UUID currently.
func UUIDFromString(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}

	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}

	return u, nil
}

// ParamID parses the path parameter as UUID. Unlike UUIDFromString, an empty
// parameter is an error.
func ParamID(c *gin.Context, param string) (uuid.UUID, error) {
	id, err := UUIDFromString(c.Param(param))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidUUID
	}

	return id, nil
}

// ParamMonth parses the path parameter as month in the format YYYY-MM.
func ParamMonth(c *gin.Context, param string) (engine.Month, error) {
	month, err := engine.ParseMonth(c.Param(param))
	if err != nil {
		return engine.Month{}, ErrInvalidMonth
	}

	return month, nil
}

// APIURL returns the public URL of the API as set by the URL middleware.
func APIURL(c *gin.Context) string {
	return c.GetString(ContextURL)
}
