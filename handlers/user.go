package handlers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/vms_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateUser(c *gin.Context) {
	var input models.NewUser
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := models.CreateUser(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "CreateUser", err)
		return
	}
	user.PrepareGive()
	respondData(c, http.StatusCreated, user)
}

// DeleteUser deactivates a user and revokes all of their sessions.
func DeleteUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := models.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, "handlers", "DeleteUser", err)
		return
	}
	c.Status(http.StatusNoContent)
}
