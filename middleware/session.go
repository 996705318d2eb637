package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"note-network/services"
)

// SessionUserKey is the one value stored in the cookie session. Identity is
// reloaded from the store on every request, so role changes in the database
// take effect without touching the cookie.
const SessionUserKey = "user_id"

// SessionAuth authenticates requests in session mode. An absent or stale
// session answers 401; no HTML redirects here.
func SessionAuth(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		raw := session.Get(SessionUserKey)
		userID, ok := raw.(uint)
		if !ok {
			HTTPHelper.SendUnauthorizedError(c, "Please log in to access this page.", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		user, err := authService.GetUserByID(userID)
		if err != nil {
			HTTPHelper.SendUnauthorizedError(c, "Please log in to access this page.", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("username", user.Username)
		c.Set("email", user.Email)
		c.Set("role", user.Role)

		c.Next()
	}
}
