package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/vms_backend/config"
	"bitbucket.org/mmdatafocus/vms_backend/utils"
	"github.com/shopspring/decimal"
)

type Branch struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Address   string    `gorm:"type:text" json:"address"`
	Phone     string    `gorm:"size:20" json:"phone"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy int       `json:"created_by"`
	UpdatedBy int       `json:"updated_by"`
}

// BranchProduct is a branch-local stock line. Product metadata is carried
// denormalized so branch listings never join back to the warehouse table.
type BranchProduct struct {
	ID          int             `gorm:"primary_key" json:"id"`
	BranchId    int             `gorm:"uniqueIndex:idx_branch_product;not null" json:"branch_id"`
	ProductId   int             `gorm:"uniqueIndex:idx_branch_product;not null" json:"product_id"`
	ProductName string          `gorm:"size:100" json:"product_name"`
	Description string          `gorm:"type:text" json:"description"`
	VendorId    int             `json:"vendor_id"`
	VendorName  string          `gorm:"size:100" json:"vendor_name"`
	Count       decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"count"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy   int             `json:"created_by"`
	UpdatedBy   int             `json:"updated_by"`
}

type NewBranch struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type NewBranchProduct struct {
	ProductId int             `json:"product_id" binding:"required"`
	Count     decimal.Decimal `json:"count"`
}

func (input *NewBranch) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Branch](ctx, id); err != nil {
			return err
		}
	}
	// name, unique among active branches
	if err := utils.ValidateUniqueName[Branch](ctx, "name", input.Name, id, true); err != nil {
		return utils.NewConflictError("branch name already exists")
	}
	if len(input.Phone) > 0 {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return utils.NewValidationError("invalid phone number")
		}
	}
	return nil
}

func CreateBranch(ctx context.Context, input *NewBranch) (*Branch, error) {

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	branch := Branch{
		Name:      input.Name,
		Address:   input.Address,
		Phone:     input.Phone,
		IsActive:  utils.NewTrue(),
		CreatedBy: auditUserId(ctx),
		UpdatedBy: auditUserId(ctx),
	}

	// db action
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

// GetBranch returns an active branch; deactivated branches read as not found.
func GetBranch(ctx context.Context, id int) (*Branch, error) {
	db := config.GetDB()
	var result Branch
	err := db.WithContext(ctx).Where("is_active = ?", true).First(&result, id).Error
	if err != nil {
		return nil, utils.NewNotFoundError("branch not found")
	}
	return &result, nil
}

func GetBranches(ctx context.Context, activeOnly bool) ([]*Branch, error) {
	return utils.FetchAllModels[Branch](ctx, activeOnly)
}

// GetBranchByUser resolves the caller's own branch from the session identity.
func GetBranchByUser(ctx context.Context) (*Branch, error) {
	branchId, ok := utils.GetBranchIdFromContext(ctx)
	if !ok || branchId <= 0 {
		return nil, utils.NewForbiddenError("user has no branch")
	}
	return GetBranch(ctx, branchId)
}

func GetBranchProducts(ctx context.Context, branchId int) ([]*BranchProduct, error) {

	if _, err := GetBranch(ctx, branchId); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var results []*BranchProduct
	err := db.WithContext(ctx).Where("branch_id = ?", branchId).Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func GetBranchProduct(ctx context.Context, branchId int, productId int) (*BranchProduct, error) {
	db := config.GetDB()
	var result BranchProduct
	err := db.WithContext(ctx).
		Where("branch_id = ? AND product_id = ?", branchId, productId).
		First(&result).Error
	if err != nil {
		return nil, utils.NewNotFoundError("product not found in branch")
	}
	return &result, nil
}

// AddBranchProduct seeds a stock line directly, outside the transfer flow.
// A product already present in the branch is a conflict; transfers are the
// way to top up existing lines.
func AddBranchProduct(ctx context.Context, branchId int, input *NewBranchProduct) (*BranchProduct, error) {

	if _, err := GetBranch(ctx, branchId); err != nil {
		return nil, err
	}
	if input.Count.LessThanOrEqual(decimal.Zero) {
		return nil, utils.NewValidationError("count must be greater than zero")
	}

	product, err := GetProduct(ctx, input.ProductId)
	if err != nil {
		return nil, utils.NewValidationError("product not found")
	}

	count, err := utils.ResourceCountWhere[BranchProduct](ctx, "branch_id = ? AND product_id = ?", branchId, product.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewConflictError("product already exists in branch")
	}

	line := BranchProduct{
		BranchId:    branchId,
		ProductId:   product.ID,
		ProductName: product.Name,
		Description: product.Description,
		VendorId:    product.VendorId,
		VendorName:  product.VendorName,
		Count:       input.Count,
		CreatedBy:   auditUserId(ctx),
		UpdatedBy:   auditUserId(ctx),
	}

	// db action
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&line).Error; err != nil {
		return nil, err
	}
	return &line, nil
}
