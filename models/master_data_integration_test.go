package models_test

import (
	"testing"

	"bitbucket.org/mmdatafocus/vms_backend/config"
	"bitbucket.org/mmdatafocus/vms_backend/models"
	"bitbucket.org/mmdatafocus/vms_backend/utils"
	"github.com/shopspring/decimal"
)

func TestMasterBankLifecycle(t *testing.T) {
	setupIntegrationEnv(t)
	ctx := inventoryContext()

	bank, err := models.CreateMasterBank(ctx, &models.NewMasterBank{Name: "Bank Mandiri", BankDesc: "National Bank"})
	if err != nil {
		t.Fatalf("CreateMasterBank: %v", err)
	}
	if bank.CreatedBy != 1 || bank.UpdatedBy != 1 {
		t.Fatalf("expected audit stamps from context identity; got created_by=%d updated_by=%d", bank.CreatedBy, bank.UpdatedBy)
	}
	if bank.BankDesc != "national bank" {
		t.Fatalf("expected lowercased description; got %q", bank.BankDesc)
	}

	// duplicate names collide case-insensitively
	if _, err := models.CreateMasterBank(ctx, &models.NewMasterBank{Name: "bank MANDIRI"}); utils.KindOf(err) != utils.ErrorKindConflict {
		t.Fatalf("expected conflict for case-insensitive duplicate; got %v", err)
	}

	updated, err := models.UpdateMasterBank(ctx, bank.ID, &models.NewMasterBank{Name: "Bank Mandiri Tbk"})
	if err != nil {
		t.Fatalf("UpdateMasterBank: %v", err)
	}
	if updated.Name != "Bank Mandiri Tbk" {
		t.Fatalf("expected updated name; got %q", updated.Name)
	}

	if _, err := models.DeleteMasterBank(ctx, bank.ID); err != nil {
		t.Fatalf("DeleteMasterBank: %v", err)
	}
	// deactivated banks read as not found and drop out of active listings
	if _, err := models.GetMasterBank(ctx, bank.ID); utils.KindOf(err) != utils.ErrorKindNotFound {
		t.Fatalf("expected not found after delete; got %v", err)
	}
	active, err := models.GetMasterBanks(ctx, true)
	if err != nil {
		t.Fatalf("GetMasterBanks(active): %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active banks; got %d", len(active))
	}
	all, err := models.GetMasterBanks(ctx, false)
	if err != nil {
		t.Fatalf("GetMasterBanks(all): %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected deactivated bank in full listing; got %d", len(all))
	}

	// a deactivated bank's name is reusable
	if _, err := models.CreateMasterBank(ctx, &models.NewMasterBank{Name: "Bank Mandiri Tbk"}); err != nil {
		t.Fatalf("expected deactivated name to be reusable: %v", err)
	}
}

func TestVendorSubResourcesAndSoftDelete(t *testing.T) {
	setupIntegrationEnv(t)
	ctx := inventoryContext()

	vendor, err := models.CreateVendor(ctx, &models.NewVendor{
		Name:  "Acme Supplies",
		Email: "sales@acme.test",
	})
	if err != nil {
		t.Fatalf("CreateVendor: %v", err)
	}

	if _, err := models.CreateVendor(ctx, &models.NewVendor{Name: "ACME supplies"}); utils.KindOf(err) != utils.ErrorKindConflict {
		t.Fatalf("expected case-insensitive vendor name conflict; got %v", err)
	}

	bank, err := models.CreateMasterBank(ctx, &models.NewMasterBank{Name: "Bank Central"})
	if err != nil {
		t.Fatalf("CreateMasterBank: %v", err)
	}

	vendor, err = models.AddVendorBankAccount(ctx, vendor.ID, &models.NewVendorBankAccount{
		BankId:        bank.ID,
		AccountName:   "Acme Pte",
		AccountNumber: "0012345678",
	})
	if err != nil {
		t.Fatalf("AddVendorBankAccount: %v", err)
	}
	if len(vendor.BankAccounts) != 1 || vendor.BankAccounts[0].BankName != "Bank Central" {
		t.Fatalf("expected embedded bank account with resolved bank name; got %+v", vendor.BankAccounts)
	}

	vendor, err = models.AddVendorContact(ctx, vendor.ID, &models.NewVendorContact{
		Name:  "Jane",
		Email: "jane@acme.test",
	})
	if err != nil {
		t.Fatalf("AddVendorContact: %v", err)
	}
	if len(vendor.Contacts) != 1 {
		t.Fatalf("expected one contact; got %d", len(vendor.Contacts))
	}

	vendor, err = models.AddVendorBranchOffice(ctx, vendor.ID, &models.NewVendorBranchOffice{
		Name:    "Acme East",
		Country: "Indonesia",
	})
	if err != nil {
		t.Fatalf("AddVendorBranchOffice: %v", err)
	}
	if len(vendor.BranchOffices) != 1 {
		t.Fatalf("expected one branch office; got %d", len(vendor.BranchOffices))
	}

	// referencing an unknown master bank is a validation error
	if _, err := models.AddVendorBankAccount(ctx, vendor.ID, &models.NewVendorBankAccount{
		BankId: bank.ID + 999, AccountName: "x", AccountNumber: "1",
	}); utils.KindOf(err) != utils.ErrorKindValidation {
		t.Fatalf("expected validation error for unknown bank; got %v", err)
	}

	if _, err := models.DeleteVendor(ctx, vendor.ID); err != nil {
		t.Fatalf("DeleteVendor: %v", err)
	}
	if _, err := models.GetVendor(ctx, vendor.ID); utils.KindOf(err) != utils.ErrorKindNotFound {
		t.Fatalf("expected not found after soft delete; got %v", err)
	}
}

func TestProductValidationAndBranchSeeding(t *testing.T) {
	setupIntegrationEnv(t)
	ctx := inventoryContext()

	vendor, err := models.CreateVendor(ctx, &models.NewVendor{Name: "Acme Supplies"})
	if err != nil {
		t.Fatalf("CreateVendor: %v", err)
	}

	// zero or negative stock is rejected outright
	if _, err := models.CreateProduct(ctx, &models.NewProduct{
		Name: "Void", Count: decimal.Zero, VendorId: vendor.ID,
	}); utils.KindOf(err) != utils.ErrorKindValidation {
		t.Fatalf("expected validation error for zero count; got %v", err)
	}

	product, err := models.CreateProduct(ctx, &models.NewProduct{
		Name: "Stapler", Count: decimal.NewFromInt(5), VendorId: vendor.ID,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if product.VendorName != vendor.Name {
		t.Fatalf("expected denormalized vendor name; got %q", product.VendorName)
	}

	// product names stay reserved even after deactivation
	if _, err := models.DeleteProduct(ctx, product.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if _, err := models.CreateProduct(ctx, &models.NewProduct{
		Name: "stapler", Count: decimal.NewFromInt(1), VendorId: vendor.ID,
	}); utils.KindOf(err) != utils.ErrorKindConflict {
		t.Fatalf("expected conflict reusing deactivated product name; got %v", err)
	}

	active, err := models.CreateProduct(ctx, &models.NewProduct{
		Name: "Tape", Count: decimal.NewFromInt(8), VendorId: vendor.ID,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	branch, err := models.CreateBranch(ctx, &models.NewBranch{Name: "Downtown"})
	if err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	line, err := models.AddBranchProduct(ctx, branch.ID, &models.NewBranchProduct{
		ProductId: active.ID, Count: decimal.NewFromInt(2),
	})
	if err != nil {
		t.Fatalf("AddBranchProduct: %v", err)
	}
	if line.ProductName != "Tape" {
		t.Fatalf("expected denormalized product name on branch line; got %q", line.ProductName)
	}
	// same product twice in one branch is a conflict
	if _, err := models.AddBranchProduct(ctx, branch.ID, &models.NewBranchProduct{
		ProductId: active.ID, Count: decimal.NewFromInt(1),
	}); utils.KindOf(err) != utils.ErrorKindConflict {
		t.Fatalf("expected conflict adding product twice; got %v", err)
	}
}

func TestUserLoginSessionRoundTrip(t *testing.T) {
	setupIntegrationEnv(t)
	ctx := inventoryContext()

	branch, err := models.CreateBranch(ctx, &models.NewBranch{Name: "Downtown"})
	if err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}

	user, err := models.CreateUser(ctx, &models.NewUser{
		Username: "clerk",
		Password: "secret123",
		Role:     models.UserRoleBranch,
		BranchId: branch.ID,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.BranchName != branch.Name {
		t.Fatalf("expected denormalized branch name; got %q", user.BranchName)
	}

	if _, err := models.CreateUser(ctx, &models.NewUser{
		Username: "CLERK", Password: "x", Role: models.UserRoleBranch, BranchId: branch.ID,
	}); utils.KindOf(err) != utils.ErrorKindConflict {
		t.Fatalf("expected username conflict; got %v", err)
	}

	if _, err := models.Login(ctx, "clerk", "wrong"); utils.KindOf(err) != utils.ErrorKindUnauthorized {
		t.Fatalf("expected unauthorized on bad password; got %v", err)
	}

	info, err := models.Login(ctx, "clerk", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if info.Token == "" || info.ApiToken == "" {
		t.Fatalf("expected session and api tokens; got %+v", info)
	}
	if info.Role != models.UserRoleBranch || info.BranchId != branch.ID {
		t.Fatalf("expected branch identity on login info; got %+v", info)
	}

	cached, err := models.GetSessionUser(ctx, "clerk")
	if err != nil {
		t.Fatalf("GetSessionUser: %v", err)
	}
	if cached.ID != user.ID {
		t.Fatalf("expected cached session user %d; got %d", user.ID, cached.ID)
	}

	sessionCtx := utils.SetTokenInContext(utils.SetUsernameInContext(ctx, "clerk"), info.Token)
	if _, err := models.Logout(sessionCtx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
}

func TestLoginRejectsMalformedStoredHash(t *testing.T) {
	setupIntegrationEnv(t)
	ctx := inventoryContext()

	// a row whose password column does not hold a bcrypt hash, e.g. legacy
	// data or a botched manual insert, must never authenticate
	broken := models.User{
		Username: "legacy",
		Password: "plaintext-not-a-hash",
		Role:     models.UserRoleInventory,
		IsActive: utils.NewTrue(),
	}
	if err := config.GetDB().WithContext(ctx).Create(&broken).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if _, err := models.Login(ctx, "legacy", "plaintext-not-a-hash"); utils.KindOf(err) != utils.ErrorKindUnauthorized {
		t.Fatalf("expected unauthorized for malformed stored hash; got %v", err)
	}
	if _, err := models.Login(ctx, "legacy", "anything"); utils.KindOf(err) != utils.ErrorKindUnauthorized {
		t.Fatalf("expected unauthorized for malformed stored hash; got %v", err)
	}
}

func TestDeleteUserRevokesAllSessions(t *testing.T) {
	setupIntegrationEnv(t)
	ctx := inventoryContext()

	user, err := models.CreateUser(ctx, &models.NewUser{
		Username: "clerk",
		Password: "secret123",
		Role:     models.UserRoleInventory,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	first, err := models.Login(ctx, "clerk", "secret123")
	if err != nil {
		t.Fatalf("Login #1: %v", err)
	}
	second, err := models.Login(ctx, "clerk", "secret123")
	if err != nil {
		t.Fatalf("Login #2: %v", err)
	}

	if err := models.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	// every live session token is gone, not just the most recent one
	for i, token := range []string{first.Token, second.Token} {
		if _, exists, err := config.GetRedisValue("Token:" + token); err != nil || exists {
			t.Fatalf("expected session #%d revoked; exists=%v err=%v", i+1, exists, err)
		}
	}
	tokens, err := config.GetRedisSetMembers("Tokens:clerk")
	if err != nil {
		t.Fatalf("GetRedisSetMembers: %v", err)
	}
	if len(tokens) != 0 {
		t.Fatalf("expected empty token set; got %v", tokens)
	}

	// the cached user record is dropped and fresh logins are refused
	if _, exists, err := config.GetRedisValue("User:clerk"); err != nil || exists {
		t.Fatalf("expected cached user removed; exists=%v err=%v", exists, err)
	}
	if _, err := models.Login(ctx, "clerk", "secret123"); utils.KindOf(err) != utils.ErrorKindUnauthorized {
		t.Fatalf("expected unauthorized after deactivation; got %v", err)
	}
}
