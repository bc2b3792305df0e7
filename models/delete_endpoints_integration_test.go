package models_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/mmdatafocus/vms_backend/handlers"
	"bitbucket.org/mmdatafocus/vms_backend/middlewares"
	"bitbucket.org/mmdatafocus/vms_backend/models"
	"bitbucket.org/mmdatafocus/vms_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// newTestRouter builds the API surface the way main does, session resolution
// in front of the route tree.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middlewares.SessionMiddleware())
	handlers.RegisterRoutes(r)
	return r
}

func loginForToken(t *testing.T, r *gin.Engine, username string, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200; got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Data models.LoginInfo `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("login: decode response: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatalf("login: missing session token in %s", w.Body.String())
	}
	return resp.Data.Token
}

func TestDeleteEndpointsReturnNoContent(t *testing.T) {
	setupIntegrationEnv(t)
	ctx := inventoryContext()

	if _, err := models.CreateUser(ctx, &models.NewUser{
		Username: "admin",
		Password: "secret123",
		Role:     models.UserRoleInventory,
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	bank, err := models.CreateMasterBank(ctx, &models.NewMasterBank{Name: "Bank Central"})
	if err != nil {
		t.Fatalf("CreateMasterBank: %v", err)
	}
	vendor, err := models.CreateVendor(ctx, &models.NewVendor{Name: "Acme Supplies"})
	if err != nil {
		t.Fatalf("CreateVendor: %v", err)
	}
	product, err := models.CreateProduct(ctx, &models.NewProduct{
		Name: "Stapler", Count: decimal.NewFromInt(3), VendorId: vendor.ID,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	r := newTestRouter()
	token := loginForToken(t, r, "admin", "secret123")

	targets := []string{
		fmt.Sprintf("/v1/master-bank/%d", bank.ID),
		fmt.Sprintf("/v1/product/%d", product.ID),
		fmt.Sprintf("/v1/vendor/%d", vendor.ID),
	}
	for _, target := range targets {
		req := httptest.NewRequest(http.MethodDelete, target, nil)
		req.Header.Set("token", token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("DELETE %s: expected 204; got %d body=%s", target, w.Code, w.Body.String())
		}
		if w.Body.Len() != 0 {
			t.Fatalf("DELETE %s: expected empty body; got %s", target, w.Body.String())
		}
	}

	// the rows really were deactivated, not just acknowledged
	if _, err := models.GetMasterBank(ctx, bank.ID); utils.KindOf(err) != utils.ErrorKindNotFound {
		t.Fatalf("expected bank deactivated; got %v", err)
	}
	if _, err := models.GetVendor(ctx, vendor.ID); utils.KindOf(err) != utils.ErrorKindNotFound {
		t.Fatalf("expected vendor deactivated; got %v", err)
	}
	if _, err := models.GetProduct(ctx, product.ID); utils.KindOf(err) != utils.ErrorKindNotFound {
		t.Fatalf("expected product deactivated; got %v", err)
	}
}
