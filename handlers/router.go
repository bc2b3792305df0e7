package handlers

import (
	"bitbucket.org/mmdatafocus/vms_backend/middlewares"
	"bitbucket.org/mmdatafocus/vms_backend/models"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the v1 API. Auth routes stay open; everything else
// requires a resolved session. Write access to master data is held by
// inventory users, transfer requests are opened by branch users and accepted
// by inventory users.
func RegisterRoutes(r *gin.Engine) {

	inventory := middlewares.VerifyRole(models.UserRoleInventory)
	branch := middlewares.VerifyRole(models.UserRoleBranch)
	anyRole := middlewares.VerifyRole(models.UserRoleInventory, models.UserRoleBranch)

	v1 := r.Group("/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", Login)
		auth.POST("/register", Register)
		auth.POST("/logout", middlewares.RequireAuth(), Logout)
		auth.GET("/user", middlewares.RequireAuth(), CurrentUser)
	}

	api := v1.Group("", middlewares.RequireAuth())
	{
		api.POST("/user", inventory, CreateUser)
		api.DELETE("/user/:id", inventory, DeleteUser)

		masterBank := api.Group("/master-bank")
		{
			masterBank.GET("/", anyRole, GetMasterBanks)
			masterBank.POST("/", inventory, CreateMasterBank)
			masterBank.GET("/:id", anyRole, GetMasterBank)
			masterBank.PUT("/:id", inventory, UpdateMasterBank)
			masterBank.DELETE("/:id", inventory, DeleteMasterBank)
		}

		vendor := api.Group("/vendor")
		{
			vendor.GET("", anyRole, GetVendors)
			vendor.POST("", inventory, CreateVendor)
			vendor.GET("/:id", anyRole, GetVendor)
			vendor.PUT("/:id/detail", inventory, UpdateVendorDetail)
			vendor.DELETE("/:id", inventory, DeleteVendor)
			vendor.POST("/:id/branch-office", inventory, AddVendorBranchOffice)
			vendor.POST("/:id/pic", inventory, AddVendorContact)
			vendor.POST("/:id/bank-account", inventory, AddVendorBankAccount)
		}

		product := api.Group("/product")
		{
			product.GET("", anyRole, GetProducts)
			product.POST("", inventory, CreateProduct)
			product.POST("/bulk", anyRole, GetProductsBulk)
			product.GET("/export", inventory, ExportProducts)
			product.GET("/:id", anyRole, GetProduct)
			product.PUT("/:id", inventory, UpdateProduct)
			product.DELETE("/:id", inventory, DeleteProduct)
		}

		branchGroup := api.Group("/branch")
		{
			branchGroup.GET("", anyRole, GetBranches)
			branchGroup.POST("", inventory, CreateBranch)
			branchGroup.GET("/me", branch, GetOwnBranch)
			branchGroup.GET("/:id/product", anyRole, GetBranchProducts)
			branchGroup.GET("/:id/product/:productId", anyRole, GetBranchProduct)
			branchGroup.POST("/:id/product", branch, AddBranchProduct)
		}

		request := api.Group("/request")
		{
			request.GET("", anyRole, GetRequests)
			request.POST("", branch, CreateRequest)
			request.GET("/:id", anyRole, GetRequest)
			request.POST("/:id/accept", inventory, AcceptRequest)
		}
	}
}
