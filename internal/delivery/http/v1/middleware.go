package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDCtxKey = "request_id"
)

// HandleRequestID tags the request with an ID, reusing the client's when it
// is a valid UUID, and stores a logger carrying it in the request context.
func (h *handlerImpl) HandleRequestID(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if _, err := uuid.Parse(requestID); err != nil {
		requestID = uuid.NewString()
	}

	c.Set(requestIDCtxKey, requestID)
	c.Header(requestIDHeader, requestID)

	logger := h.logger.With().
		Str("request_id", requestID).
		Logger()
	c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
	c.Next()
}

func (h *handlerImpl) HandleAccessLog(c *gin.Context) {
	start := time.Now()
	c.Next()

	status := c.Writer.Status()
	event := h.requestLogger(c).Info()
	if status >= http.StatusInternalServerError {
		event = h.requestLogger(c).Warn()
	}
	event.
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Str("client_ip", c.ClientIP()).
		Msg("handled request")
}

func (h *handlerImpl) HandleRecovery(c *gin.Context, recovered any) {
	h.requestLogger(c).Error().
		Interface("panic", recovered).
		Str("path", c.Request.URL.Path).
		Msg("recovered from panic")
	abort(c, newStatusTextError(http.StatusInternalServerError))
}

// requestLogger returns the logger set by HandleRequestID, or the handler's own.
func (h *handlerImpl) requestLogger(c *gin.Context) *zerolog.Logger {
	if _, ok := c.Get(requestIDCtxKey); ok {
		return zerolog.Ctx(c.Request.Context())
	}
	return &h.logger
}
