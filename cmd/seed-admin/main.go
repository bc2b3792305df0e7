// seed-admin creates or updates the bootstrap inventory user. A fresh
// deployment runs this once so the first login can create branches and
// further accounts.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-admin
//
// SEED_ADMIN_USERNAME / SEED_ADMIN_PASSWORD override the defaults.
package main

import (
	"context"
	"fmt"
	"os"

	"bitbucket.org/mmdatafocus/vms_backend/config"
	"bitbucket.org/mmdatafocus/vms_backend/models"
	"bitbucket.org/mmdatafocus/vms_backend/utils"
	"gorm.io/gorm"
)

const (
	defaultAdminUsername = "vmsAdmin"
	defaultAdminPassword = "Vm$Admin123"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	username := os.Getenv("SEED_ADMIN_USERNAME")
	if username == "" {
		username = defaultAdminUsername
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = defaultAdminPassword
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}
	hashedStr := string(hashed)

	var existing models.User
	err = db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
			os.Exit(1)
		}
		// Create new admin user
		u := models.User{
			Username: username,
			Password: hashedStr,
			Role:     models.UserRoleInventory,
			IsActive: utils.NewTrue(),
		}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created inventory admin user: username=%q\n", username)
		return
	}

	// Update existing user: ensure password and inventory role
	if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Updates(map[string]any{
		"password":  hashedStr,
		"is_active": utils.NewTrue(),
		"role":      models.UserRoleInventory,
	}).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to update admin user: %v\n", err)
		os.Exit(1)
	}
	_ = existing.RemoveInstanceRedis()
	fmt.Printf("Updated inventory admin user: username=%q\n", username)
}
