package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"smart-campus/internal/pkg/jwtutil"
	"smart-campus/internal/transport/http/response"
)

const (
	ContextUserIDKey = "user_id"
	ContextRoleKey   = "role"
)

// AuthJWT validates the bearer token and places the authenticated identity
// {id, role} in the request context. Downstream code trusts it
// unconditionally.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, 401, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, 401, response.CodeUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, 401, response.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRoles rejects requests whose identity role is not in the allowed
// set. Must run after AuthJWT.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleAny, exists := c.Get(ContextRoleKey)
		role, ok := roleAny.(string)
		if !exists || !ok {
			response.Error(c, 401, response.CodeUnauthorized, "invalid token payload")
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		response.Error(c, 403, response.CodeForbidden, "insufficient role")
		c.Abort()
	}
}
