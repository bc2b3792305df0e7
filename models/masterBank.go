package models

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/vms_backend/config"
	"bitbucket.org/mmdatafocus/vms_backend/utils"
)

type MasterBank struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	BankDesc  string    `gorm:"size:255" json:"bank_desc"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy int       `json:"created_by"`
	UpdatedBy int       `json:"updated_by"`
}

type NewMasterBank struct {
	Name     string `json:"name" binding:"required"`
	BankDesc string `json:"bank_desc"`
}

// validate input for both create & update. (id = 0 for create)

func (input *NewMasterBank) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[MasterBank](ctx, id); err != nil {
			return err
		}
	}
	// name, unique among active banks
	if err := utils.ValidateUniqueName[MasterBank](ctx, "name", input.Name, id, true); err != nil {
		return err
	}
	return nil
}

func CreateMasterBank(ctx context.Context, input *NewMasterBank) (*MasterBank, error) {

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	masterBank := MasterBank{
		Name:      input.Name,
		BankDesc:  strings.ToLower(input.BankDesc),
		IsActive:  utils.NewTrue(),
		CreatedBy: auditUserId(ctx),
		UpdatedBy: auditUserId(ctx),
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&masterBank).Error
	if err != nil {
		return nil, err
	}

	return &masterBank, nil
}

func UpdateMasterBank(ctx context.Context, id int, input *NewMasterBank) (*MasterBank, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	masterBank, err := GetMasterBank(ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(masterBank).Updates(map[string]interface{}{
		"Name":      input.Name,
		"BankDesc":  strings.ToLower(input.BankDesc),
		"UpdatedBy": auditUserId(ctx),
	}).Error
	if err != nil {
		return nil, err
	}
	return masterBank, nil
}

func DeleteMasterBank(ctx context.Context, id int) (*MasterBank, error) {

	masterBank, err := GetMasterBank(ctx, id)
	if err != nil {
		return nil, err
	}

	// soft delete
	db := config.GetDB()
	err = db.WithContext(ctx).Model(masterBank).Updates(map[string]interface{}{
		"IsActive":  false,
		"UpdatedBy": auditUserId(ctx),
	}).Error
	if err != nil {
		return nil, err
	}

	return masterBank, nil
}

// GetMasterBank returns an active master bank; deactivated banks read as
// not found, matching the lookup used when embedding bank names.
func GetMasterBank(ctx context.Context, id int) (*MasterBank, error) {
	db := config.GetDB()
	var result MasterBank
	err := db.WithContext(ctx).Where("is_active = ?", true).First(&result, id).Error
	if err != nil {
		return nil, utils.NewNotFoundError("master bank not found")
	}
	return &result, nil
}

func GetMasterBanks(ctx context.Context, activeOnly bool) ([]*MasterBank, error) {
	return utils.FetchAllModels[MasterBank](ctx, activeOnly)
}
