package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/faturaime/admin-api/pkg/jwtutil"
	"github.com/labstack/echo/v4"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(ran *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*ran = true
		return c.NoContent(http.StatusOK)
	}
}

func TestRequireAdminRole(t *testing.T) {
	t.Run("admin role passes", func(t *testing.T) {
		c, rec := newTestContext(t)
		c.Set("user", &jwtutil.UserClaims{UserID: 1, Roles: []string{"ROLE_ADMIN", "ROLE_USER"}})

		ran := false
		if err := RequireAdminRole(okHandler(&ran))(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ran {
			t.Error("handler did not run")
		}
		if rec.Code != http.StatusOK {
			t.Errorf("unexpected status %d", rec.Code)
		}
	})

	t.Run("missing role is rejected before the handler runs", func(t *testing.T) {
		c, rec := newTestContext(t)
		c.Set("user", &jwtutil.UserClaims{UserID: 1, Roles: []string{"ROLE_USER"}})

		ran := false
		if err := RequireAdminRole(okHandler(&ran))(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ran {
			t.Error("handler must not run without the role")
		}
		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		c, rec := newTestContext(t)

		ran := false
		if err := RequireAdminRole(okHandler(&ran))(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ran {
			t.Error("handler must not run unauthenticated")
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})
}

func TestRequireTenantAdmin(t *testing.T) {
	t.Run("tenant admin passes", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Set("user", &jwtutil.UserClaims{UserID: 1, TenantAdmin: true})

		ran := false
		if err := RequireTenantAdmin(okHandler(&ran))(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ran {
			t.Error("handler did not run")
		}
	})

	t.Run("the two capabilities are independent", func(t *testing.T) {
		// An admin-role user without tenant admin scope must still be blocked
		c, rec := newTestContext(t)
		c.Set("user", &jwtutil.UserClaims{UserID: 1, Roles: []string{"ROLE_ADMIN"}, TenantAdmin: false})

		ran := false
		if err := RequireTenantAdmin(okHandler(&ran))(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ran {
			t.Error("handler must not run without tenant admin scope")
		}
		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
	})
}
