package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// REQUEST_ID_KEY is the gin context key holding the request id
const REQUEST_ID_KEY = "request_id"

// RequestIDHeader is the header carrying the request id in and out
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request an id for log correlation. An id supplied by the
// caller is kept; otherwise a new one is generated. The id is echoed back in
// the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(REQUEST_ID_KEY, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID returns the request id assigned by RequestID, or empty
func GetRequestID(c *gin.Context) string {
	return c.GetString(REQUEST_ID_KEY)
}
