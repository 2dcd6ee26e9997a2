package middleware

import (
	"net/http"
	"strings"

	"github.com/farellandr/travel-maker/internal/helpers"
	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware requires a bearer token signed with secret and stores the
// token's user id under "user_id".
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Authorization token is required.")
			c.Abort()
			return
		}

		userID, err := helpers.ParseToken(tokenString, secret)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}
