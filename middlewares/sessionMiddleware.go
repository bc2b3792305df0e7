package middlewares

import (
	"net/http"

	"bitbucket.org/mmdatafocus/vms_backend/config"
	"bitbucket.org/mmdatafocus/vms_backend/utils"
	"github.com/gin-gonic/gin"
)

// SessionMiddleware resolves the caller's session token (cookie first, then
// the "token" header for non-browser clients) against the redis keyed store
// and attaches token + username to the request context. Requests without a
// token pass through anonymously; gating happens in RequireAuth.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("token")
		if err != nil || token == "" {
			token = c.Request.Header.Get("token")
		}
		if token == "" {
			c.Next()
			return
		}
		username, exists, err := config.GetRedisValue("Token:" + token)
		if err != nil || !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			c.Abort()
			return
		}

		ctx := utils.SetTokenInContext(c.Request.Context(), token)
		ctx = utils.SetUsernameInContext(ctx, username)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
