package models

import (
	"context"

	"bitbucket.org/mmdatafocus/vms_backend/utils"
)

// auditUserId returns the acting user id for audit stamping. Zero means the
// operation ran without a user identity (seeding, registration).
func auditUserId(ctx context.Context) int {
	id, ok := utils.GetUserIdFromContext(ctx)
	if !ok {
		return 0
	}
	return id
}
