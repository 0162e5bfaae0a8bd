package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"class-timetable/internal/domain/schedule"
	"class-timetable/pkg/logger"

	"github.com/gin-gonic/gin"
)

const UserIDKey = "user_id"

// Identifier resolves a bearer token to an existing user id.
type Identifier interface {
	Identify(ctx context.Context, token string) (string, error)
}

// JWTAuth requires Authorization: Bearer <token> naming a user that still
// exists, and stores its id under UserIDKey.
func JWTAuth(identifier Identifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, "Invalid authorization header")
			return
		}

		userID, err := identifier.Identify(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			if errors.Is(err, schedule.ErrUnauthenticated) {
				abortUnauthorized(c, "Invalid or expired token")
				return
			}
			logger.Error("Failed to resolve caller identity: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Internal server error",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller, or "" when there is none.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}
