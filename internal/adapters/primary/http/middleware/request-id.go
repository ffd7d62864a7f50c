package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-ID"

	// Context keys shared with the handlers.
	KeyRequestID = "request_id"
	KeySessionID = "session_id"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(KeyRequestID, requestID)
		c.Header(headerRequestID, requestID)

		c.Next()
	}
}
