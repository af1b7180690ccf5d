package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reservation-backend/services"
)

const actorKey = "actor"

// RequireAuth verifies the bearer token and stores the resulting actor in
// the request context for handlers to pick up via Actor.
func RequireAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		actor, err := auth.VerifyToken(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// Actor returns the authenticated actor stored by RequireAuth.
func Actor(c *gin.Context) (services.ActorContext, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return services.ActorContext{}, false
	}
	actor, ok := v.(services.ActorContext)
	return actor, ok
}
