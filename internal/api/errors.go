package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/0dillon/HNG1/internal/engine"
)

// Client-visible messages that do not originate in the engine.
const (
	msgInvalidJSON    = "Invalid JSON body"
	msgMissingValue   = "Missing 'value' in request body"
	msgValueNotString = "'value' must be a string"
	msgNotFound       = "Not found"
	msgRateLimited    = "Too many requests"
	msgInternal       = "Internal server error"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Message string `json:"message"`
}

// statusFor maps an engine error code to an HTTP status.
func statusFor(code engine.ErrorCode) int {
	switch code {
	case engine.ErrCodeBadRequest, engine.ErrCodeInvalidArgument:
		return http.StatusBadRequest
	case engine.ErrCodeUnprocessable:
		return http.StatusUnprocessableEntity
	case engine.ErrCodeConflict:
		return http.StatusConflict
	case engine.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// abortWithMessage writes an error body and stops the handler chain.
func abortWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Message: message})
}

// abortWithError writes err as an error response.
// Errors that are not *engine.Error are reported as internal without detail.
func abortWithError(c *gin.Context, err error) {
	var e *engine.Error
	if !errors.As(err, &e) {
		_ = c.Error(err)
		abortWithMessage(c, http.StatusInternalServerError, msgInternal)
		return
	}
	if e.Code == engine.ErrCodeInternal {
		_ = c.Error(err)
	}
	abortWithMessage(c, statusFor(e.Code), e.Message)
}
