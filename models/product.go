package models

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/vms_backend/config"
	"bitbucket.org/mmdatafocus/vms_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type Product struct {
	ID          int             `gorm:"primary_key" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Count       decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"count"`
	VendorId    int             `gorm:"index;not null" json:"vendor_id"`
	VendorName  string          `gorm:"size:100" json:"vendor_name"`
	IsActive    *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy   int             `json:"created_by"`
	UpdatedBy   int             `json:"updated_by"`
}

type NewProduct struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Count       decimal.Decimal `json:"count"`
	VendorId    int             `json:"vendor_id" binding:"required"`
}

// validate input for both create & update. (id = 0 for create)

func (input *NewProduct) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Product](ctx, id); err != nil {
			return err
		}
	}
	// product names stay unique across deactivated products too, so a
	// re-created product never shadows the stock history of an old one
	if err := utils.ValidateUniqueName[Product](ctx, "name", input.Name, id, false); err != nil {
		return utils.NewConflictError("product name already exists")
	}
	if input.Count.LessThanOrEqual(decimal.Zero) {
		return utils.NewValidationError("product count must be greater than zero")
	}
	return nil
}

func CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	vendor, err := GetVendor(ctx, input.VendorId)
	if err != nil {
		return nil, utils.NewValidationError("vendor not found")
	}

	product := Product{
		Name:        input.Name,
		Description: input.Description,
		Count:       input.Count,
		VendorId:    vendor.ID,
		VendorName:  vendor.Name,
		IsActive:    utils.NewTrue(),
		CreatedBy:   auditUserId(ctx),
		UpdatedBy:   auditUserId(ctx),
	}

	// db action
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func UpdateProduct(ctx context.Context, id int, input *NewProduct) (*Product, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	product, err := GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	vendor, err := GetVendor(ctx, input.VendorId)
	if err != nil {
		return nil, utils.NewValidationError("vendor not found")
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(product).Updates(map[string]interface{}{
		"Name":        input.Name,
		"Description": input.Description,
		"Count":       input.Count,
		"VendorId":    vendor.ID,
		"VendorName":  vendor.Name,
		"UpdatedBy":   auditUserId(ctx),
	}).Error
	if err != nil {
		return nil, err
	}
	return product, nil
}

func DeleteProduct(ctx context.Context, id int) (*Product, error) {

	product, err := GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	// soft delete
	db := config.GetDB()
	err = db.WithContext(ctx).Model(product).Updates(map[string]interface{}{
		"IsActive":  false,
		"UpdatedBy": auditUserId(ctx),
	}).Error
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct returns an active product; deactivated products read as not found.
func GetProduct(ctx context.Context, id int) (*Product, error) {
	db := config.GetDB()
	var result Product
	err := db.WithContext(ctx).Where("is_active = ?", true).First(&result, id).Error
	if err != nil {
		return nil, utils.NewNotFoundError("product not found")
	}
	return &result, nil
}

func GetProducts(ctx context.Context, activeOnly bool, name *string) ([]*Product, error) {
	db := config.GetDB()
	var results []*Product

	dbCtx := db.WithContext(ctx)
	if activeOnly {
		dbCtx = dbCtx.Where("is_active = ?", true)
	}
	if name != nil && len(*name) > 0 {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	if err := dbCtx.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetProductsByIds(ctx context.Context, ids []int) ([]*Product, error) {
	db := config.GetDB()
	var results []*Product
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("id IN ?", utils.UniqueSlice(ids)).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ExportProductsExcel builds a stock report workbook of all active products.
func ExportProductsExcel(ctx context.Context) (*excelize.File, error) {

	products, err := GetProducts(ctx, true, nil)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Products"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Name", "Description", "Count", "Vendor", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, product := range products {
		values := []interface{}{
			product.ID,
			product.Name,
			product.Description,
			product.Count.String(),
			product.VendorName,
			product.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheet, "B", "C", 30); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	return f, nil
}

// decrementProductCount takes stock off a product only when enough remains.
// Used inside the transfer acceptance transaction.
func decrementProductCount(ctx context.Context, tx *gorm.DB, productId int, quantity decimal.Decimal) error {
	result := tx.Model(&Product{}).
		Where("id = ? AND count >= ?", productId, quantity).
		Updates(map[string]interface{}{
			"Count":     gorm.Expr("count - ?", quantity),
			"UpdatedBy": auditUserId(ctx),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.NewConflictError(fmt.Sprintf("insufficient stock for product %d", productId))
	}
	return nil
}
