// Package middleware provides the HTTP middleware chain: request IDs,
// request logging, and prometheus metrics.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the gin context key holding the request ID.
	RequestIDKey = "request_id"
	// RequestIDHeader is the header the ID is read from and echoed to.
	RequestIDHeader = "X-Request-ID"
)

// RequestID attaches an ID to every request, honoring a client-supplied
// X-Request-ID and minting a UUID otherwise. The ID is echoed in the
// response header and picked up by the request logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request ID set by RequestID, or "" if absent.
func GetRequestID(c *gin.Context) string {
	id, _ := c.Get(RequestIDKey)
	s, _ := id.(string)
	return s
}
