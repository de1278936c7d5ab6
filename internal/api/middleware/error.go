package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/openstudio-standards/osstd/internal/api/models"
)

// ErrorHandler middleware handles panics
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logrus.WithField("path", c.Request.URL.Path).Errorf("panic serving request: %v", recovered)
		message := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			message = s
		} else if err, ok := recovered.(error); ok {
			message = err.Error()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: message,
			},
		})
	})
}

// NotFound answers unknown routes with the error envelope.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: fmt.Sprintf("no route for %s %s", c.Request.Method, c.Request.URL.Path),
			},
		})
	}
}
