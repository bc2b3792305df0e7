package middlewares

import (
	"net/http"

	"bitbucket.org/mmdatafocus/vms_backend/models"
	"bitbucket.org/mmdatafocus/vms_backend/utils"
	"github.com/gin-gonic/gin"
)

// RequireAuth gates a route group on an authenticated caller. It resolves the
// session username (or bearer JWT claims) into a full user record, rejects
// disabled users, and attaches user id / role / branch to the context for
// downstream handlers and role checks.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		username, ok := utils.GetUsernameFromContext(ctx)
		if !ok || username == "" {
			// fall back to bearer JWT identity
			claim := CtxValue(ctx)
			if claim == nil {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
				c.Abort()
				return
			}
			user, err := models.GetUserById(ctx, claim.ID)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
				c.Abort()
				return
			}
			username = user.Username
		}

		user, err := models.GetSessionUser(ctx, username)
		if err != nil {
			if utils.KindOf(err) == utils.ErrorKindNotFound {
				// destroy current session if user has been deleted
				models.Logout(ctx)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			c.Abort()
			return
		}
		if user.IsActive != nil && !*user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "user is disabled"})
			c.Abort()
			return
		}

		ctx = utils.SetUsernameInContext(ctx, user.Username)
		ctx = utils.SetUserIdInContext(ctx, user.ID)
		ctx = utils.SetUserRoleInContext(ctx, string(user.Role))
		if user.BranchId > 0 {
			ctx = utils.SetBranchIdInContext(ctx, user.BranchId)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// VerifyRole permits the request only when the caller's role is in the
// allowed set. A rejection is terminal for the request.
func VerifyRole(allowedRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := utils.GetUserRoleFromContext(c.Request.Context())
		if !ok || role == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			c.Abort()
			return
		}
		if !models.RoleAllowed(models.UserRole(role), allowedRoles) {
			c.JSON(http.StatusForbidden, gin.H{"message": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}
