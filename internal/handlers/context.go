package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/R0UTS/Animal-Hospitalty/internal/auth"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/middleware"
)

// caller returns the authenticated identity, answering 401 when the route
// was mounted without AuthMiddleware.
func caller(c *gin.Context) (auth.Identity, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Authentication required")
	}
	return id, ok
}

// queryLimit reads ?limit. Zero means "use the default".
func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		httperr.BadRequest(c, "invalid_limit", "limit must be a positive integer")
		return 0, false
	}
	return n, true
}
