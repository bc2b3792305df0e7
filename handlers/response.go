package handlers

import (
	"net/http"
	"strconv"

	"bitbucket.org/mmdatafocus/vms_backend/config"
	"bitbucket.org/mmdatafocus/vms_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Every success body is {"data": ...}, every failure body is {"message": ...}.

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// respondError translates a domain error into an HTTP status. Unclassified
// errors are logged and masked as a plain 500.
func respondError(c *gin.Context, module string, funcName string, err error) {
	switch utils.KindOf(err) {
	case utils.ErrorKindValidation:
		respondMessage(c, http.StatusUnprocessableEntity, err.Error())
	case utils.ErrorKindNotFound:
		respondMessage(c, http.StatusNotFound, err.Error())
	case utils.ErrorKindConflict:
		respondMessage(c, http.StatusConflict, err.Error())
	case utils.ErrorKindUnauthorized:
		respondMessage(c, http.StatusUnauthorized, err.Error())
	case utils.ErrorKindForbidden:
		respondMessage(c, http.StatusForbidden, err.Error())
	default:
		correlationId, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
		config.LogError(config.GetLogger(), module, funcName, correlationId, nil, err)
		respondMessage(c, http.StatusInternalServerError, "internal server error")
	}
}

// respondBindError handles malformed or invalid request payloads. Field
// level validation failures carry the field/tag map so clients can point at
// the offending input.
func respondBindError(c *gin.Context, err error) {
	if _, ok := err.(validator.ValidationErrors); ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": utils.ProcessValidationErrors(err)})
		return
	}
	respondMessage(c, http.StatusBadRequest, "invalid request body")
}

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		respondMessage(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// nameFilter reads the optional ?name= list filter.
func nameFilter(c *gin.Context) *string {
	name := c.Query("name")
	if name == "" {
		return nil
	}
	return &name
}

// activeOnly reads the ?active= filter; listings default to active records
// and ?active=false includes deactivated ones.
func activeOnly(c *gin.Context) bool {
	return c.Query("active") != "false"
}
