package handlers

import (
	"CareLink/middlewares"
	"CareLink/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// actorFrom pulls the acting identity set by the auth middleware; a missing
// identity means the route was mounted without it.
func actorFrom(c *gin.Context) (services.Actor, bool) {
	actor, ok := middlewares.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authentication"})
		return services.Actor{}, false
	}
	return actor, true
}

// idParam parses a numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
