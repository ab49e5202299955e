package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supermart/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size. Oversized
// uploads are rejected up front when the client declares a Content-Length,
// and cut off mid-stream otherwise.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("ERR_REQUEST_TOO_LARGE", "Request body exceeds maximum allowed size"))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
