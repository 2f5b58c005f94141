package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarlsson/webdemo/internal/session"
)

const ContextUserIDKey = "user_id"

// RequireSession guards a route group with the configured session
// strategy. What happens on a failed validation is a deployment-variant
// policy, injected as the challenge.
func RequireSession(auth session.Authenticator, challenge gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := auth.Validate(c.Request)
		if err != nil {
			challenge(c)
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, ident.UserID)
		c.Next()
	}
}

// RedirectChallenge sends unauthenticated callers to a login entry point.
func RedirectChallenge(location string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, location)
	}
}

// UnauthorizedChallenge rejects unauthenticated callers with a JSON 401.
func UnauthorizedChallenge() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}
