// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/response"
	"github.com/stephenombuya/Velixa/internal/pkg/auth"
)

// AuthMiddleware creates JWT authentication middleware
func AuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		// Store user information in context
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("roles", claims.Roles)
		c.Set("token_claims", claims)

		c.Next()
	}
}

// RequireRole ensures the authenticated user holds role
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("token_claims")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, ok := value.(*auth.Claims)
		if !ok || !claims.HasRole(role) {
			response.Error(c, http.StatusForbidden, "Insufficient permissions")
			return
		}

		c.Next()
	}
}
