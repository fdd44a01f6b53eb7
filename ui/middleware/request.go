package middleware

import (
	"net/http"
	"time"

	"sheetviz/internal"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs method, path, status and latency of every request
func RequestLogger(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		msg := "[HTTP] %s %s -> %d (%.2fms)"
		args := []interface{}{c.Request.Method, c.FullPath(), status, float64(time.Since(start).Nanoseconds()) / 1e6}
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error(msg, args...)
		case status >= http.StatusBadRequest:
			logger.Warn(msg, args...)
		default:
			logger.Debug(msg, args...)
		}
	}
}

// BodyLimit caps request bodies at maxBytes. Reads past the cap fail with
// *http.MaxBytesError.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
