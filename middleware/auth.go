package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"dropoff-intake-api/utils"

	"github.com/gin-gonic/gin"
)

// DashboardUserKey is the gin context key holding the authenticated username.
const DashboardUserKey = "dashboardUser"

// BasicAuth guards a route group with HTTP basic authentication against a
// static username to password map. Passwords beginning with "$2" are bcrypt
// hashes. Every request is checked on its own; no session is issued.
func BasicAuth(realm string, users map[string]string) gin.HandlerFunc {
	accounts := make(map[string]string, len(users))
	for user, pass := range users {
		accounts[user] = pass
	}
	challenge := fmt.Sprintf("Basic realm=%q, charset=\"UTF-8\"", realm)

	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok {
			unauthorized(c, challenge, "Authentication required")
			return
		}

		expected, known := accounts[user]
		if !known || !passwordMatches(expected, pass) {
			unauthorized(c, challenge, "Invalid credentials")
			return
		}

		c.Set(DashboardUserKey, user)
		c.Next()
	}
}

func passwordMatches(expected, given string) bool {
	if strings.HasPrefix(expected, "$2") {
		return utils.CheckPasswordHash(given, expected)
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(given)) == 1
}

func unauthorized(c *gin.Context, challenge, message string) {
	c.Header("WWW-Authenticate", challenge)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
