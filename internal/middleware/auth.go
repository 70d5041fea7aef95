package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/R0UTS/Animal-Hospitalty/internal/auth"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextIdentity = "identity"
)

// AuthMiddleware authenticates the bearer token. A missing token is a 401;
// a credential that is not a valid bearer token is a 403.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractToken(c.GetHeader("Authorization"))
		if errors.Is(err, auth.ErrMissingToken) {
			httperr.Abort(c, http.StatusUnauthorized, "missing_token", "Access denied. No token provided.")
			return
		}

		var claims *auth.Claims
		if err == nil {
			claims, err = tokens.Validate(tokenString)
		}
		if err != nil {
			httperr.Abort(c, http.StatusForbidden, "invalid_token", "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextIdentity, auth.Identity{UserID: claims.UserID, Role: claims.Role})

		c.Next()
	}
}

// IdentityFrom returns the caller set by AuthMiddleware.
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok && id.UserID != ""
}
