package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tasker/internal/taskstore"
)

// statusClientClosedRequest is recorded when the client went away before
// the service call finished.
const statusClientClosedRequest = 499

var (
	errInvalidRequestBody = errors.New("invalid request body")
	errInvalidTaskIndex   = errors.New("invalid task index")
	errDescriptionMissing = errors.New("description required")
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

// abortWithServiceError maps a service failure onto a response.
func (h *handlerImpl) abortWithServiceError(c *gin.Context, err error, msg string) {
	logger := h.requestLogger(c)
	if errors.Is(err, taskstore.ErrNotFound) {
		logger.Debug().
			Err(err).
			Msg(msg)
		abort(c, newNotFoundError(taskstore.ErrNotFound.Error()))
		return
	}

	if errors.Is(err, context.Canceled) {
		logger.Debug().
			Err(err).
			Msg(msg)
		c.AbortWithStatus(statusClientClosedRequest)
		return
	}

	logger.Error().
		Err(err).
		Msg(msg)
	abort(c, newStatusTextError(http.StatusInternalServerError))
}
