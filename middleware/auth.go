package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"note-network/helper"
	"note-network/models"
	"note-network/services"
)

var HTTPHelper = &helper.HTTPHelper{}

// TokenAuth authenticates requests carrying a bearer token. The header must
// be exactly two whitespace-separated parts, the first literally "Bearer";
// anything else counts as no token at all.
func TokenAuth(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.Fields(c.GetHeader("Authorization"))
		if len(parts) != 2 || parts[0] != "Bearer" {
			HTTPHelper.SendUnauthorizedError(c, "Token is missing!", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		claims, err := authService.VerifyToken(parts[1])
		if err != nil {
			HTTPHelper.SendUnauthorizedError(c, "Token is invalid!", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RequireRole gates a route on the authenticated identity's role. Must run
// after TokenAuth or SessionAuth.
func RequireRole(role models.UserRole, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			HTTPHelper.SendUnauthorizedError(c, "Token is missing!", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		if userRole.(models.UserRole) != role {
			HTTPHelper.SendForbiddenError(c, message, HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Next()
	}
}
