package handlers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/vms_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateRequest(c *gin.Context) {
	var input models.NewRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	request, err := models.CreateRequest(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "CreateRequest", err)
		return
	}
	respondData(c, http.StatusCreated, request)
}

func GetRequests(c *gin.Context) {
	requests, err := models.GetRequests(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "GetRequests", err)
		return
	}
	respondData(c, http.StatusOK, requests)
}

func GetRequest(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	request, err := models.GetRequest(c.Request.Context(), id)
	if err != nil {
		respondError(c, "handlers", "GetRequest", err)
		return
	}
	respondData(c, http.StatusOK, request)
}

func AcceptRequest(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	request, err := models.AcceptRequest(c.Request.Context(), id)
	if err != nil {
		respondError(c, "handlers", "AcceptRequest", err)
		return
	}
	respondData(c, http.StatusOK, request)
}
