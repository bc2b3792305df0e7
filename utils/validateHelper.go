package utils

import (
	"context"

	"bitbucket.org/mmdatafocus/vms_backend/config"
)

// check if id exists, return RecordNotFound error
func ValidateResourceId[T any](ctx context.Context, id interface{}) error {

	count, err := ResourceCountWhere[T](ctx, "id = ?", id)
	if err != nil {
		return err
	}
	if count <= 0 {
		return ErrorRecordNotFound
	}

	return nil
}

// ValidateUniqueName checks case-insensitive name uniqueness, optionally
// scoped to active records only, excluding exceptId on update.
func ValidateUniqueName[T any](ctx context.Context, column string, value string, exceptId int, activeOnly bool) error {
	condition := "LOWER(" + column + ") = LOWER(?)"
	values := []interface{}{value}
	if activeOnly {
		condition += " AND is_active = ?"
		values = append(values, true)
	}
	if exceptId > 0 {
		condition += " AND NOT id = ?"
		values = append(values, exceptId)
	}

	count, err := ResourceCountWhere[T](ctx, condition, values...)
	if err != nil {
		return err
	}
	if count > 0 {
		return NewConflictError("duplicate " + column)
	}
	return nil
}

// count records matching condition
func ResourceCountWhere[T any](ctx context.Context, condition string, value ...interface{}) (int64, error) {
	var model T

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&model)
	var count int64
	dbCtx.Where(condition, value...)
	if err := dbCtx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
