package models

import (
	"log"

	"bitbucket.org/mmdatafocus/vms_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&User{},
		&MasterBank{},
		&Vendor{}, &VendorBranchOffice{}, &VendorContact{}, &VendorBankAccount{},
		&Product{},
		&Branch{}, &BranchProduct{},
		&TransferRequest{}, &RequestDetail{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
