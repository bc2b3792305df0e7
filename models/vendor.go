package models

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/vms_backend/config"
	"bitbucket.org/mmdatafocus/vms_backend/utils"
)

type Vendor struct {
	ID            int                  `gorm:"primary_key" json:"id"`
	Name          string               `gorm:"size:100;not null" json:"name"`
	BusinessUnit  string               `gorm:"size:100" json:"business_unit"`
	Address       string               `gorm:"type:text" json:"address"`
	Country       string               `gorm:"size:100" json:"country"`
	Province      string               `gorm:"size:100" json:"province"`
	Phone         string               `gorm:"size:20" json:"phone"`
	Email         string               `gorm:"size:100" json:"email"`
	Website       string               `gorm:"size:255" json:"website"`
	TaxNumber     string               `gorm:"size:50" json:"tax_number"`
	IsActive      *bool                `gorm:"not null;default:true" json:"is_active"`
	BranchOffices []VendorBranchOffice `gorm:"foreignKey:VendorId" json:"branch_offices"`
	Contacts      []VendorContact      `gorm:"foreignKey:VendorId" json:"contacts"`
	BankAccounts  []VendorBankAccount  `gorm:"foreignKey:VendorId" json:"bank_accounts"`
	CreatedAt     time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy     int                  `json:"created_by"`
	UpdatedBy     int                  `json:"updated_by"`
}

type VendorBranchOffice struct {
	ID        int       `gorm:"primary_key" json:"id"`
	VendorId  int       `gorm:"index;not null" json:"vendor_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Address   string    `gorm:"type:text" json:"address"`
	Country   string    `gorm:"size:100" json:"country"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Website   string    `gorm:"size:255" json:"website"`
	Email     string    `gorm:"size:100" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type VendorContact struct {
	ID        int       `gorm:"primary_key" json:"id"`
	VendorId  int       `gorm:"index;not null" json:"vendor_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type VendorBankAccount struct {
	ID            int       `gorm:"primary_key" json:"id"`
	VendorId      int       `gorm:"index;not null" json:"vendor_id"`
	BankId        int       `gorm:"not null" json:"bank_id"`
	BankName      string    `gorm:"size:100" json:"bank_name"`
	AccountName   string    `gorm:"size:100" json:"account_name"`
	AccountNumber string    `gorm:"size:50" json:"account_number"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewVendor struct {
	Name         string `json:"name" binding:"required"`
	BusinessUnit string `json:"business_unit"`
	Address      string `json:"address"`
	Country      string `json:"country"`
	Province     string `json:"province"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Website      string `json:"website"`
	TaxNumber    string `json:"tax_number"`
}

type NewVendorBranchOffice struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	Email   string `json:"email"`
}

type NewVendorContact struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type NewVendorBankAccount struct {
	BankId        int    `json:"bank_id" binding:"required"`
	AccountName   string `json:"account_name" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required"`
}

// validate input for both create & update. (id = 0 for create)

func (input *NewVendor) validate(ctx context.Context, id int) error {
	// name, unique among active vendors
	if err := utils.ValidateUniqueName[Vendor](ctx, "name", input.Name, id, true); err != nil {
		return utils.NewConflictError("vendor name already exists")
	}
	if len(strings.TrimSpace(input.Phone)) > 0 {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return utils.NewValidationError("invalid phone number")
		}
	}
	if len(strings.TrimSpace(input.Email)) > 0 && !utils.IsValidEmail(input.Email) {
		return utils.NewValidationError("invalid email")
	}
	return nil
}

func CreateVendor(ctx context.Context, input *NewVendor) (*Vendor, error) {

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	vendor := Vendor{
		Name:          input.Name,
		BusinessUnit:  input.BusinessUnit,
		Address:       input.Address,
		Country:       input.Country,
		Province:      input.Province,
		Phone:         input.Phone,
		Email:         input.Email,
		Website:       input.Website,
		TaxNumber:     input.TaxNumber,
		IsActive:      utils.NewTrue(),
		BranchOffices: []VendorBranchOffice{},
		Contacts:      []VendorContact{},
		BankAccounts:  []VendorBankAccount{},
		CreatedBy:     auditUserId(ctx),
		UpdatedBy:     auditUserId(ctx),
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func UpdateVendorDetail(ctx context.Context, id int, input *NewVendor) (*Vendor, error) {

	vendor, err := GetVendor(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	// db action; embedded lists are untouched by detail updates
	db := config.GetDB()
	err = db.WithContext(ctx).Model(&Vendor{ID: vendor.ID}).Updates(map[string]interface{}{
		"Name":         input.Name,
		"BusinessUnit": input.BusinessUnit,
		"Address":      input.Address,
		"Country":      input.Country,
		"Province":     input.Province,
		"Phone":        input.Phone,
		"Email":        input.Email,
		"Website":      input.Website,
		"TaxNumber":    input.TaxNumber,
		"UpdatedBy":    auditUserId(ctx),
	}).Error
	if err != nil {
		return nil, err
	}

	return GetVendor(ctx, id)
}

func DeleteVendor(ctx context.Context, id int) (*Vendor, error) {

	vendor, err := GetVendor(ctx, id)
	if err != nil {
		return nil, err
	}

	// soft delete
	db := config.GetDB()
	err = db.WithContext(ctx).Model(&Vendor{ID: vendor.ID}).Updates(map[string]interface{}{
		"IsActive":  false,
		"UpdatedBy": auditUserId(ctx),
	}).Error
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

// GetVendor returns an active vendor with its embedded lists; deactivated
// vendors read as not found.
func GetVendor(ctx context.Context, id int) (*Vendor, error) {
	db := config.GetDB()
	var result Vendor
	err := db.WithContext(ctx).
		Preload("BranchOffices").Preload("Contacts").Preload("BankAccounts").
		Where("is_active = ?", true).
		First(&result, id).Error
	if err != nil {
		return nil, utils.NewNotFoundError("vendor not found")
	}
	return &result, nil
}

func GetVendors(ctx context.Context, activeOnly bool, name *string) ([]*Vendor, error) {
	db := config.GetDB()
	var results []*Vendor

	dbCtx := db.WithContext(ctx).
		Preload("BranchOffices").Preload("Contacts").Preload("BankAccounts")
	if activeOnly {
		dbCtx = dbCtx.Where("is_active = ?", true)
	}
	if name != nil && len(*name) > 0 {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	err := dbCtx.Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func AddVendorBranchOffice(ctx context.Context, vendorId int, input *NewVendorBranchOffice) (*Vendor, error) {

	vendor, err := GetVendor(ctx, vendorId)
	if err != nil {
		return nil, err
	}

	if len(strings.TrimSpace(input.Phone)) > 0 {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return nil, utils.NewValidationError("invalid phone number")
		}
	}

	office := VendorBranchOffice{
		VendorId: vendor.ID,
		Name:     input.Name,
		Address:  input.Address,
		Country:  input.Country,
		Phone:    input.Phone,
		Website:  input.Website,
		Email:    input.Email,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&office).Error; err != nil {
		return nil, err
	}
	if err := stampVendor(ctx, vendor.ID); err != nil {
		return nil, err
	}

	return GetVendor(ctx, vendorId)
}

func AddVendorContact(ctx context.Context, vendorId int, input *NewVendorContact) (*Vendor, error) {

	vendor, err := GetVendor(ctx, vendorId)
	if err != nil {
		return nil, err
	}

	if len(strings.TrimSpace(input.Phone)) > 0 {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return nil, utils.NewValidationError("invalid phone number")
		}
	}
	if len(strings.TrimSpace(input.Email)) > 0 && !utils.IsValidEmail(input.Email) {
		return nil, utils.NewValidationError("invalid email")
	}

	contact := VendorContact{
		VendorId: vendor.ID,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&contact).Error; err != nil {
		return nil, err
	}
	if err := stampVendor(ctx, vendor.ID); err != nil {
		return nil, err
	}

	return GetVendor(ctx, vendorId)
}

// AddVendorBankAccount embeds the bank's display name resolved from the
// master bank collection.
func AddVendorBankAccount(ctx context.Context, vendorId int, input *NewVendorBankAccount) (*Vendor, error) {

	vendor, err := GetVendor(ctx, vendorId)
	if err != nil {
		return nil, err
	}

	bank, err := GetMasterBank(ctx, input.BankId)
	if err != nil {
		return nil, utils.NewValidationError("master bank not found")
	}

	account := VendorBankAccount{
		VendorId:      vendor.ID,
		BankId:        bank.ID,
		BankName:      bank.Name,
		AccountName:   input.AccountName,
		AccountNumber: input.AccountNumber,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, err
	}
	if err := stampVendor(ctx, vendor.ID); err != nil {
		return nil, err
	}

	return GetVendor(ctx, vendorId)
}

// stampVendor refreshes the vendor's audit block after a sub-resource write.
func stampVendor(ctx context.Context, vendorId int) error {
	db := config.GetDB()
	return db.WithContext(ctx).Model(&Vendor{ID: vendorId}).
		Update("UpdatedBy", auditUserId(ctx)).Error
}
