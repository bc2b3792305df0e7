package handlers

import (
	"fmt"
	"net/http"
	"time"

	"bitbucket.org/mmdatafocus/vms_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateProduct(c *gin.Context) {
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := models.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "CreateProduct", err)
		return
	}
	respondData(c, http.StatusCreated, product)
}

func GetProducts(c *gin.Context) {
	products, err := models.GetProducts(c.Request.Context(), activeOnly(c), nameFilter(c))
	if err != nil {
		respondError(c, "handlers", "GetProducts", err)
		return
	}
	respondData(c, http.StatusOK, products)
}

func GetProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	product, err := models.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, "handlers", "GetProduct", err)
		return
	}
	respondData(c, http.StatusOK, product)
}

type bulkProductInput struct {
	Ids []int `json:"ids" binding:"required,min=1"`
}

// GetProductsBulk fetches a set of products by id in one round trip.
func GetProductsBulk(c *gin.Context) {
	var input bulkProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	products, err := models.GetProductsByIds(c.Request.Context(), input.Ids)
	if err != nil {
		respondError(c, "handlers", "GetProductsBulk", err)
		return
	}
	respondData(c, http.StatusOK, products)
}

func UpdateProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := models.UpdateProduct(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "handlers", "UpdateProduct", err)
		return
	}
	respondData(c, http.StatusOK, product)
}

func DeleteProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if _, err := models.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, "handlers", "DeleteProduct", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportProducts streams the inventory report as an xlsx download.
func ExportProducts(c *gin.Context) {
	f, err := models.ExportProductsExcel(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ExportProducts", err)
		return
	}

	filename := fmt.Sprintf("products-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		respondError(c, "handlers", "ExportProducts", err)
	}
}
