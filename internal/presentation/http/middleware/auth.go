package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retailpos-api/internal/application/service"
	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/presentation/http/dto/response"
)

// AuthMiddleware validates the bearer token and re-checks the allow-list on
// every request, so a removed account loses access at once.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_email", user.Email)
		c.Set("user_role", string(user.Role))

		c.Next()
	}
}

// RequireAccessAdmin lets through only accounts that may edit the allow-list.
func RequireAccessAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user")
		user, ok := value.(*entity.AuthorizedUser)
		if !exists || !ok || !user.Role.CanManageAccess() {
			response.Forbidden(c, "Only the owner or an admin can manage access")
			c.Abort()
			return
		}
		c.Next()
	}
}
