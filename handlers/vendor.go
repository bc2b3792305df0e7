package handlers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/vms_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateVendor(c *gin.Context) {
	var input models.NewVendor
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	vendor, err := models.CreateVendor(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "CreateVendor", err)
		return
	}
	respondData(c, http.StatusCreated, vendor)
}

func GetVendors(c *gin.Context) {
	vendors, err := models.GetVendors(c.Request.Context(), activeOnly(c), nameFilter(c))
	if err != nil {
		respondError(c, "handlers", "GetVendors", err)
		return
	}
	respondData(c, http.StatusOK, vendors)
}

func GetVendor(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	vendor, err := models.GetVendor(c.Request.Context(), id)
	if err != nil {
		respondError(c, "handlers", "GetVendor", err)
		return
	}
	respondData(c, http.StatusOK, vendor)
}

func UpdateVendorDetail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input models.NewVendor
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	vendor, err := models.UpdateVendorDetail(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "handlers", "UpdateVendorDetail", err)
		return
	}
	respondData(c, http.StatusOK, vendor)
}

func DeleteVendor(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if _, err := models.DeleteVendor(c.Request.Context(), id); err != nil {
		respondError(c, "handlers", "DeleteVendor", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func AddVendorBranchOffice(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input models.NewVendorBranchOffice
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	vendor, err := models.AddVendorBranchOffice(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "handlers", "AddVendorBranchOffice", err)
		return
	}
	respondData(c, http.StatusCreated, vendor)
}

func AddVendorContact(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input models.NewVendorContact
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	vendor, err := models.AddVendorContact(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "handlers", "AddVendorContact", err)
		return
	}
	respondData(c, http.StatusCreated, vendor)
}

func AddVendorBankAccount(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input models.NewVendorBankAccount
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	vendor, err := models.AddVendorBankAccount(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "handlers", "AddVendorBankAccount", err)
		return
	}
	respondData(c, http.StatusCreated, vendor)
}
