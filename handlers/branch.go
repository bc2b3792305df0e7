package handlers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/vms_backend/models"
	"bitbucket.org/mmdatafocus/vms_backend/utils"
	"github.com/gin-gonic/gin"
)

func CreateBranch(c *gin.Context) {
	var input models.NewBranch
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	branch, err := models.CreateBranch(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "CreateBranch", err)
		return
	}
	respondData(c, http.StatusCreated, branch)
}

func GetBranches(c *gin.Context) {
	branches, err := models.GetBranches(c.Request.Context(), activeOnly(c))
	if err != nil {
		respondError(c, "handlers", "GetBranches", err)
		return
	}
	respondData(c, http.StatusOK, branches)
}

// GetOwnBranch resolves the caller's branch from the session identity.
func GetOwnBranch(c *gin.Context) {
	branch, err := models.GetBranchByUser(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "GetOwnBranch", err)
		return
	}
	respondData(c, http.StatusOK, branch)
}

// branchScope resolves the branch a branch user may act on. Branch users are
// pinned to their own branch regardless of the path parameter.
func branchScope(c *gin.Context) (int, bool) {
	ctx := c.Request.Context()
	id, ok := idParam(c, "id")
	if !ok {
		return 0, false
	}
	if role, rok := utils.GetUserRoleFromContext(ctx); rok && role == string(models.UserRoleBranch) {
		branchId, _ := utils.GetBranchIdFromContext(ctx)
		if branchId != id {
			respondMessage(c, http.StatusForbidden, "forbidden")
			return 0, false
		}
	}
	return id, true
}

func GetBranchProducts(c *gin.Context) {
	id, ok := branchScope(c)
	if !ok {
		return
	}
	products, err := models.GetBranchProducts(c.Request.Context(), id)
	if err != nil {
		respondError(c, "handlers", "GetBranchProducts", err)
		return
	}
	respondData(c, http.StatusOK, products)
}

func GetBranchProduct(c *gin.Context) {
	id, ok := branchScope(c)
	if !ok {
		return
	}
	productId, ok := idParam(c, "productId")
	if !ok {
		return
	}
	product, err := models.GetBranchProduct(c.Request.Context(), id, productId)
	if err != nil {
		respondError(c, "handlers", "GetBranchProduct", err)
		return
	}
	respondData(c, http.StatusOK, product)
}

func AddBranchProduct(c *gin.Context) {
	id, ok := branchScope(c)
	if !ok {
		return
	}
	var input models.NewBranchProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := models.AddBranchProduct(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "handlers", "AddBranchProduct", err)
		return
	}
	respondData(c, http.StatusCreated, product)
}
