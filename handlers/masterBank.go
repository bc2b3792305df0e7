package handlers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/vms_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateMasterBank(c *gin.Context) {
	var input models.NewMasterBank
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	bank, err := models.CreateMasterBank(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "CreateMasterBank", err)
		return
	}
	respondData(c, http.StatusCreated, bank)
}

func GetMasterBanks(c *gin.Context) {
	banks, err := models.GetMasterBanks(c.Request.Context(), activeOnly(c))
	if err != nil {
		respondError(c, "handlers", "GetMasterBanks", err)
		return
	}
	respondData(c, http.StatusOK, banks)
}

func GetMasterBank(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	bank, err := models.GetMasterBank(c.Request.Context(), id)
	if err != nil {
		respondError(c, "handlers", "GetMasterBank", err)
		return
	}
	respondData(c, http.StatusOK, bank)
}

func UpdateMasterBank(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input models.NewMasterBank
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	bank, err := models.UpdateMasterBank(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "handlers", "UpdateMasterBank", err)
		return
	}
	respondData(c, http.StatusOK, bank)
}

func DeleteMasterBank(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if _, err := models.DeleteMasterBank(c.Request.Context(), id); err != nil {
		respondError(c, "handlers", "DeleteMasterBank", err)
		return
	}
	c.Status(http.StatusNoContent)
}
