package ui

import (
	"net/http"

	apperrors "sheetviz/internal/errors"

	"github.com/gin-gonic/gin"
)

// respondError writes {"error", "code"} with the status derived from the error code.
// Internal failures are logged and reported without their details.
func (s *Server) respondError(c *gin.Context, err error) {
	appErr := apperrors.FromDomain(err)
	status := apperrors.HTTPStatus(appErr.Code)

	message := appErr.Error()
	if status >= http.StatusInternalServerError {
		s.logger.Error("[API] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		message = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": appErr.Code})
}

func (s *Server) respondInvalid(c *gin.Context, message string) {
	s.respondError(c, apperrors.InvalidInput(message))
}
