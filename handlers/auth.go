package handlers

import (
	"net/http"
	"os"
	"strconv"

	"bitbucket.org/mmdatafocus/vms_backend/models"
	"bitbucket.org/mmdatafocus/vms_backend/utils"
	"github.com/gin-gonic/gin"
)

type loginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates and opens a session. The session token is returned in
// the body and also set as a cookie for browser clients.
func Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	info, err := models.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondError(c, "handlers", "Login", err)
		return
	}

	tokenLifespan, err := strconv.Atoi(os.Getenv("TOKEN_HOUR_LIFESPAN"))
	if err != nil {
		tokenLifespan = 1
	}
	c.SetCookie("token", info.Token, tokenLifespan*3600, "/", "", false, true)

	respondData(c, http.StatusOK, info)
}

// Register creates a user without requiring a session. Kept open so a fresh
// deployment can create its first account; subsequent user management goes
// through the gated user routes.
func Register(c *gin.Context) {
	var input models.NewUser
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := models.CreateUser(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "Register", err)
		return
	}
	user.PrepareGive()
	respondData(c, http.StatusCreated, user)
}

func Logout(c *gin.Context) {
	if _, err := models.Logout(c.Request.Context()); err != nil {
		respondError(c, "handlers", "Logout", err)
		return
	}
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// CurrentUser returns the authenticated caller's profile.
func CurrentUser(c *gin.Context) {
	ctx := c.Request.Context()
	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok || username == "" {
		respondMessage(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, err := models.GetSessionUser(ctx, username)
	if err != nil {
		respondError(c, "handlers", "CurrentUser", err)
		return
	}
	user.PrepareGive()
	respondData(c, http.StatusOK, user)
}
