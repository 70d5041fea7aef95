package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
)

// RequireRoles must run after AuthMiddleware. A missing role claim is
// refused like any other role.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if _, ok := allowed[role]; !ok || role == "" {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "Access denied: insufficient role")
			return
		}
		c.Next()
	}
}
