package models

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/vms_backend/config"
	"bitbucket.org/mmdatafocus/vms_backend/utils"
	"github.com/bsm/redislock"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransferRequest struct {
	ID           int             `gorm:"primary_key" json:"id"`
	BranchId     int             `gorm:"index;not null" json:"branch_id"`
	BranchName   string          `gorm:"size:100" json:"branch_name"`
	Status       RequestStatus   `gorm:"type:enum('draft','on request','accepted');default:'on request'" json:"status"`
	TotalProduct int             `json:"total_product"`
	Details      []RequestDetail `gorm:"foreignKey:RequestId" json:"details"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy    int             `json:"created_by"`
	UpdatedBy    int             `json:"updated_by"`
}

type RequestDetail struct {
	ID          int             `gorm:"primary_key" json:"id"`
	RequestId   int             `gorm:"index;not null" json:"request_id"`
	ProductId   int             `gorm:"not null" json:"product_id"`
	ProductName string          `gorm:"size:100" json:"product_name"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"quantity"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewRequest struct {
	Details []NewRequestDetail `json:"details" binding:"required,min=1,dive"`
}

type NewRequestDetail struct {
	ProductId int             `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

func (input *NewRequest) validate(ctx context.Context) error {

	seen := map[int]bool{}
	ids := make([]int, 0, len(input.Details))
	for _, detail := range input.Details {
		if detail.Quantity.LessThanOrEqual(decimal.Zero) {
			return utils.NewValidationError("quantity must be greater than zero")
		}
		if seen[detail.ProductId] {
			return utils.NewValidationError(fmt.Sprintf("duplicate product %d in request", detail.ProductId))
		}
		seen[detail.ProductId] = true
		ids = append(ids, detail.ProductId)
	}

	products, err := GetProductsByIds(ctx, ids)
	if err != nil {
		return err
	}
	if len(products) != len(ids) {
		return utils.NewValidationError("one or more products not found")
	}
	return nil
}

// CreateRequest opens a transfer request for the caller's branch. The
// request is submitted immediately, there is no separate draft step.
func CreateRequest(ctx context.Context, input *NewRequest) (*TransferRequest, error) {

	branch, err := GetBranchByUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(input.Details))
	for _, detail := range input.Details {
		ids = append(ids, detail.ProductId)
	}
	products, err := GetProductsByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	productById := map[int]*Product{}
	for _, product := range products {
		productById[product.ID] = product
	}

	request := TransferRequest{
		BranchId:     branch.ID,
		BranchName:   branch.Name,
		Status:       RequestStatusOnRequest,
		TotalProduct: len(input.Details),
		CreatedBy:    auditUserId(ctx),
		UpdatedBy:    auditUserId(ctx),
	}
	for _, detail := range input.Details {
		request.Details = append(request.Details, RequestDetail{
			ProductId:   detail.ProductId,
			ProductName: productById[detail.ProductId].Name,
			Quantity:    detail.Quantity,
		})
	}

	// db action
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func GetRequest(ctx context.Context, id int) (*TransferRequest, error) {
	return utils.FetchModel[TransferRequest](ctx, id, "Details")
}

// GetRequests lists transfer requests, pending ones first, newest first
// within a status. Branch users only see their own branch's requests.
func GetRequests(ctx context.Context) ([]*TransferRequest, error) {
	db := config.GetDB()
	var results []*TransferRequest

	dbCtx := db.WithContext(ctx).Preload("Details")
	if role, ok := utils.GetUserRoleFromContext(ctx); ok && role == string(UserRoleBranch) {
		branchId, _ := utils.GetBranchIdFromContext(ctx)
		dbCtx = dbCtx.Where("branch_id = ?", branchId)
	}
	// the status column is a MySQL enum, which sorts by enum index; order by
	// explicit rank so pending requests always lead
	err := dbCtx.Order("FIELD(status, 'on request', 'draft', 'accepted'), created_at DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// AcceptRequest moves the requested stock from the warehouse into the
// request's branch and flips the request to accepted. The whole movement
// runs in one transaction so a failed line leaves nothing half-moved. A
// redis lock keeps two acceptors of the same request from racing; the
// conditional decrement on each product line is what actually guarantees
// stock never goes negative.
func AcceptRequest(ctx context.Context, id int) (*TransferRequest, error) {

	// Best-effort: reject an obviously concurrent acceptor early. If redis is
	// unavailable we continue; the conditional decrements keep stock safe.
	if locker := config.GetRedisLock(); locker != nil {
		lock, err := locker.Obtain(ctx, fmt.Sprintf("lock:request:%d", id), 30*time.Second, nil)
		if err == redislock.ErrNotObtained {
			return nil, utils.NewConflictError("request is being processed")
		}
		if err == nil {
			defer lock.Release(context.WithoutCancel(ctx))
		}
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var request TransferRequest
		if err := tx.Preload("Details").First(&request, id).Error; err != nil {
			return utils.NewNotFoundError("request not found")
		}
		if request.Status != RequestStatusOnRequest {
			return utils.NewConflictError("request is not on request")
		}

		ids := make([]int, 0, len(request.Details))
		for _, detail := range request.Details {
			ids = append(ids, detail.ProductId)
		}

		var products []*Product
		if err := tx.Where("is_active = ?", true).Where("id IN ?", ids).Find(&products).Error; err != nil {
			return err
		}
		productById := map[int]*Product{}
		for _, product := range products {
			productById[product.ID] = product
		}

		// verify every line before touching stock so a shortage aborts
		// with nothing written
		for _, detail := range request.Details {
			product, ok := productById[detail.ProductId]
			if !ok {
				return utils.NewConflictError(fmt.Sprintf("product %s is no longer available", detail.ProductName))
			}
			if product.Count.LessThan(detail.Quantity) {
				return utils.NewConflictError(fmt.Sprintf("insufficient stock for product %s", product.Name))
			}
		}

		for _, detail := range request.Details {
			if err := decrementProductCount(ctx, tx, detail.ProductId, detail.Quantity); err != nil {
				return err
			}
		}

		var existing []*BranchProduct
		if err := tx.Where("branch_id = ? AND product_id IN ?", request.BranchId, ids).Find(&existing).Error; err != nil {
			return err
		}
		existingIds := map[int]bool{}
		for _, line := range existing {
			existingIds[line.ProductId] = true
		}

		inserts, increments := partitionBranchLines(request.BranchId, auditUserId(ctx), request.Details, productById, existingIds)

		if len(inserts) > 0 {
			if err := tx.Create(&inserts).Error; err != nil {
				return err
			}
		}
		for _, detail := range increments {
			err := tx.Model(&BranchProduct{}).
				Where("branch_id = ? AND product_id = ?", request.BranchId, detail.ProductId).
				Updates(map[string]interface{}{
					"Count":     gorm.Expr("count + ?", detail.Quantity),
					"UpdatedBy": auditUserId(ctx),
				}).Error
			if err != nil {
				return err
			}
		}

		return tx.Model(&TransferRequest{ID: request.ID}).Updates(map[string]interface{}{
			"Status":    RequestStatusAccepted,
			"UpdatedBy": auditUserId(ctx),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return GetRequest(ctx, id)
}

// partitionBranchLines splits the request's lines into branch stock rows to
// insert and lines whose existing rows just need a count bump.
func partitionBranchLines(branchId int, userId int, details []RequestDetail, productById map[int]*Product, existing map[int]bool) ([]BranchProduct, []RequestDetail) {
	var inserts []BranchProduct
	var increments []RequestDetail
	for _, detail := range details {
		if existing[detail.ProductId] {
			increments = append(increments, detail)
			continue
		}
		product := productById[detail.ProductId]
		inserts = append(inserts, BranchProduct{
			BranchId:    branchId,
			ProductId:   detail.ProductId,
			ProductName: product.Name,
			Description: product.Description,
			VendorId:    product.VendorId,
			VendorName:  product.VendorName,
			Count:       detail.Quantity,
			CreatedBy:   userId,
			UpdatedBy:   userId,
		})
	}
	return inserts, increments
}
