package middlewares

import (
	"CareLink/apperrors"
	"log"

	"github.com/gin-gonic/gin"
)

// RespondError maps a service error onto its HTTP status and writes the
// error body. Unexpected errors are logged with the request path.
func RespondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= 500 {
		log.Printf("HTTP %d - %s %s: %v", status, c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
