package models

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/vms_backend/config"
	"bitbucket.org/mmdatafocus/vms_backend/utils"
	"github.com/google/uuid"
)

type User struct {
	ID         int       `gorm:"primary_key" json:"id"`
	Username   string    `gorm:"size:100;not null;unique" json:"username"`
	Password   string    `gorm:"size:255;not null" json:"password"`
	Role       UserRole  `gorm:"type:enum('inventory','branch');default:'branch'" json:"role"`
	BranchId   int       `gorm:"index;default:0" json:"branch_id,omitempty"`
	BranchName string    `gorm:"size:100" json:"branch_name,omitempty"`
	IsActive   *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy  int       `json:"created_by"`
	UpdatedBy  int       `json:"updated_by"`
}

type NewUser struct {
	Username string   `json:"username" binding:"required"`
	Password string   `json:"password" binding:"required"`
	Role     UserRole `json:"role" binding:"required"`
	BranchId int      `json:"branch_id"`
}

/*
caches:
	User:$username
	Tokens:$username (set of live session tokens)
	Token:$token => username
*/

func (user User) RemoveInstanceRedis() error {
	if err := config.RemoveRedisKey("User:" + user.Username); err != nil {
		return err
	}
	return nil
}

func (result *User) PrepareGive() {
	result.Password = ""
}

type LoginInfo struct {
	Token      string   `json:"token"`
	ApiToken   string   `json:"api_token"`
	Username   string   `json:"username"`
	Role       UserRole `json:"role"`
	BranchId   int      `json:"branch_id,omitempty"`
	BranchName string   `json:"branch_name,omitempty"`
}

// GetSessionUser retrieves a user from redis or db, caching on miss.
func GetSessionUser(ctx context.Context, username string) (*User, error) {
	var user User
	exists, err := config.GetRedisObject("User:"+username, &user)
	if err != nil {
		return nil, err
	}

	if !exists {
		db := config.GetDB()
		if err := db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Take(&user).Error; err != nil {
			return nil, utils.NewNotFoundError("user not found")
		}

		tokenLifespan, err := strconv.Atoi(os.Getenv("TOKEN_HOUR_LIFESPAN"))
		if err != nil {
			tokenLifespan = 1
		}
		if err := config.SetRedisObject("User:"+user.Username, &user, time.Duration(tokenLifespan)*time.Hour); err != nil {
			return nil, err
		}
	}
	return &user, nil
}

func GetUserById(ctx context.Context, id int) (*User, error) {
	return utils.FetchModel[User](ctx, id)
}

func Login(ctx context.Context, username string, password string) (*LoginInfo, error) {

	db := config.GetDB()
	var result LoginInfo

	user := User{}

	exists, err := config.GetRedisObject("User:"+username, &user)
	if err != nil {
		return nil, err
	}
	if !exists {
		err = db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Take(&user).Error
		if err != nil {
			return nil, utils.NewUnauthorizedError("invalid username or password")
		}
	}

	// check login credentials; any comparison failure, including a stored
	// hash bcrypt cannot parse, reads as bad credentials
	if err := utils.ComparePassword(user.Password, password); err != nil {
		return nil, utils.NewUnauthorizedError("invalid username or password")
	}

	if user.IsActive != nil && !*user.IsActive {
		return nil, utils.NewUnauthorizedError("user is disabled")
	}

	// generate session token & response
	token := uuid.New()
	result.Token = token.String()
	result.Username = user.Username
	result.Role = user.Role
	result.BranchId = user.BranchId
	result.BranchName = user.BranchName

	// signed API token for non-browser clients
	apiToken, err := utils.JwtGenerate(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	result.ApiToken = apiToken

	tokenLifespan, err := strconv.Atoi(os.Getenv("TOKEN_HOUR_LIFESPAN"))
	if err != nil {
		return nil, err
	}

	// add new token to the user's tokens set, store the session in redis
	if err := config.AddRedisSet("Tokens:"+user.Username, token.String()); err != nil {
		return nil, err
	}
	if err := config.SetRedisValue("Token:"+token.String(), user.Username, time.Duration(tokenLifespan)*time.Hour); err != nil {
		return nil, err
	}
	if !exists {
		if err := config.SetRedisObject("User:"+user.Username, &user, time.Duration(tokenLifespan)*time.Hour); err != nil {
			return nil, err
		}
	}

	return &result, nil
}

// destroy current session
func Logout(ctx context.Context) (bool, error) {
	token, ok := utils.GetTokenFromContext(ctx)
	if !ok || token == "" {
		return false, utils.NewUnauthorizedError("token is required")
	}
	err := config.RemoveRedisKey("Token:" + fmt.Sprint(token))
	if err != nil {
		return false, nil
	}
	// remove current token from the tokens list
	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok || username == "" {
		return false, utils.NewUnauthorizedError("user not found")
	}
	if err := config.RemoveRedisSetMember("Tokens:"+username, token); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteUser deactivates a user and destroys every live session they hold,
// so a revoked account cannot keep using an old token.
func DeleteUser(ctx context.Context, id int) error {

	user, err := GetUserById(ctx, id)
	if err != nil {
		return err
	}

	// soft delete
	db := config.GetDB()
	err = db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"IsActive":  utils.NewFalse(),
		"UpdatedBy": auditUserId(ctx),
	}).Error
	if err != nil {
		return err
	}

	// drop every session token issued to the user, then the set itself and
	// the cached user record
	tokens, err := config.GetRedisSetMembers("Tokens:" + user.Username)
	if err != nil {
		return err
	}
	for _, token := range tokens {
		if err := config.RemoveRedisKey("Token:" + token); err != nil {
			return err
		}
	}
	if err := config.RemoveRedisKey("Tokens:" + user.Username); err != nil {
		return err
	}
	return user.RemoveInstanceRedis()
}

func (input *NewUser) validate(ctx context.Context) error {
	if input.Role != UserRoleInventory && input.Role != UserRoleBranch {
		return utils.NewValidationError("invalid user role")
	}
	if input.Role == UserRoleBranch && input.BranchId <= 0 {
		return utils.NewValidationError("branch id is required for branch users")
	}
	if err := utils.ValidateUniqueName[User](ctx, "username", input.Username, 0, false); err != nil {
		return utils.NewConflictError("username already exists")
	}
	return nil
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		Username:  input.Username,
		Password:  string(hashed),
		Role:      input.Role,
		IsActive:  utils.NewTrue(),
		CreatedBy: auditUserId(ctx),
		UpdatedBy: auditUserId(ctx),
	}

	// branch users carry the branch display name denormalized
	if input.Role == UserRoleBranch {
		branch, err := GetBranch(ctx, input.BranchId)
		if err != nil {
			return nil, utils.NewValidationError("branch not found")
		}
		user.BranchId = branch.ID
		user.BranchName = branch.Name
	}

	// db action
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
