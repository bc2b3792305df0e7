package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/mmdatafocus/vms_backend/utils"
	"github.com/gin-gonic/gin"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", utils.NewValidationError("bad"), http.StatusUnprocessableEntity},
		{"not found", utils.NewNotFoundError("missing"), http.StatusNotFound},
		{"conflict", utils.NewConflictError("dup"), http.StatusConflict},
		{"unauthorized", utils.NewUnauthorizedError("no"), http.StatusUnauthorized},
		{"forbidden", utils.NewForbiddenError("no"), http.StatusForbidden},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		respondError(c, "handlers", "test", tc.err)
		if w.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, w.Code, tc.want)
		}
	}

	// internal errors are masked
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	respondError(c, "handlers", "test", errors.New("secret detail"))
	if body := w.Body.String(); body != `{"message":"internal server error"}` {
		t.Fatalf("internal error body leaked: %s", body)
	}
}

func TestIdParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	id, ok := idParam(c, "id")
	if !ok || id != 12 {
		t.Fatalf("expected id=12; got %d ok=%v", id, ok)
	}

	for _, bad := range []string{"0", "-3", "abc", ""} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: bad}}
		if _, ok := idParam(c, "id"); ok {
			t.Errorf("expected %q to be rejected", bad)
		}
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for %q; got %d", bad, w.Code)
		}
	}
}

func TestActiveOnlyQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for query, want := range map[string]bool{"": true, "active=true": true, "active=false": false} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
		if got := activeOnly(c); got != want {
			t.Errorf("query %q: activeOnly = %v, want %v", query, got, want)
		}
	}
}
