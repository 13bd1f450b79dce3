package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MeetupServices/meetup-scheduler/internal/domain/user"
	"github.com/MeetupServices/meetup-scheduler/internal/policy"
	"github.com/MeetupServices/meetup-scheduler/internal/token"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		claims, err := issuer.ParseAccess(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// CallerIdentity rebuilds the policy identity from the request context.
func CallerIdentity(c *gin.Context) policy.Identity {
	return policy.Identity{
		UserID: c.MustGet(ContextUserID).(uint),
		Role:   user.Role(c.MustGet(ContextUserRole).(string)),
	}
}
