package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-agency-backoffice/internal/domain"
)

// RequestID tags every request with an identifier, honoring an inbound
// X-Request-ID so upstream proxies can correlate logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(string(domain.KeyRequestID), id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
