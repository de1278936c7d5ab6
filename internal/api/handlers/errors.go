package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openstudio-standards/osstd/internal/api/models"
	"github.com/openstudio-standards/osstd/standards"
	"github.com/openstudio-standards/osstd/standards/prototype"
)

// errInvalidBody marks a request body that could not be decoded.
var errInvalidBody = errors.New("invalid request body")

// errorStatus maps an error to its HTTP status and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, errInvalidBody):
		return http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, standards.ErrUnknownTemplate):
		return http.StatusBadRequest, "UNKNOWN_TEMPLATE"
	case errors.Is(err, standards.ErrUnknownTable):
		return http.StatusNotFound, "UNKNOWN_TABLE"
	case errors.Is(err, prototype.ErrUnknownPrototype):
		return http.StatusNotFound, "UNKNOWN_PROTOTYPE"
	case errors.Is(err, standards.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, standards.ErrNoCapacity):
		return http.StatusUnprocessableEntity, "NO_CAPACITY"
	}
	return http.StatusUnprocessableEntity, "RULE_FAILED"
}

// abortWithError writes the error envelope and records err on the context
// for the request logger.
func abortWithError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

// badRequest rejects a request with a missing or malformed parameter.
func badRequest(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
