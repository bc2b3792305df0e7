package models

type UserRole string

const (
	UserRoleInventory UserRole = "inventory"
	UserRoleBranch    UserRole = "branch"
)

func RoleAllowed(role UserRole, allowed []UserRole) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

type RequestStatus string

// RequestStatusDraft exists in the stored enum but no operation produces or
// consumes it; the only transition is OnRequest -> Accepted via AcceptRequest.
const (
	RequestStatusDraft     RequestStatus = "draft"
	RequestStatusOnRequest RequestStatus = "on request"
	RequestStatusAccepted  RequestStatus = "accepted"
)
