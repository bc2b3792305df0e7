package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/mmdatafocus/vms_backend/models"
	"bitbucket.org/mmdatafocus/vms_backend/utils"
	"github.com/gin-gonic/gin"
)

func runRoleGate(t *testing.T, role string, allowed ...models.UserRole) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if role != "" {
		req = req.WithContext(utils.SetUserRoleInContext(req.Context(), role))
	}
	c.Request = req

	reached := false
	VerifyRole(allowed...)(c)
	if !c.IsAborted() {
		reached = true
	}
	return w, reached
}

func TestVerifyRoleAllowsMatchingRole(t *testing.T) {
	_, reached := runRoleGate(t, "inventory", models.UserRoleInventory)
	if !reached {
		t.Fatalf("expected request to pass the role gate")
	}
}

func TestVerifyRoleAllowsAnyOfSet(t *testing.T) {
	_, reached := runRoleGate(t, "branch", models.UserRoleInventory, models.UserRoleBranch)
	if !reached {
		t.Fatalf("expected branch role to pass a multi-role gate")
	}
}

func TestVerifyRoleForbidsMismatch(t *testing.T) {
	w, reached := runRoleGate(t, "branch", models.UserRoleInventory)
	if reached {
		t.Fatalf("expected request to be rejected")
	}
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403; got %d", w.Code)
	}
}

func TestVerifyRoleRejectsMissingIdentity(t *testing.T) {
	w, reached := runRoleGate(t, "", models.UserRoleInventory)
	if reached {
		t.Fatalf("expected request to be rejected")
	}
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401; got %d", w.Code)
	}
}
