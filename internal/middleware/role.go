package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MeetupServices/meetup-scheduler/internal/policy"
)

// RequireAllowed aborts with 403 unless the policy check passes for the
// authenticated caller. Runs after AuthMiddleware.
func RequireAllowed(check func(policy.Identity) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !check(CallerIdentity(c)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
