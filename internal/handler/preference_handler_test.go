package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/faturaime/admin-api/internal/prefstore"
	"github.com/faturaime/admin-api/pkg/jwtutil"
	"github.com/labstack/echo/v4"
)

func preferenceContext(t *testing.T, method, body, collection string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, "/api/preferences/view-mode/"+collection, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, "/api/preferences/view-mode/"+collection, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("collection")
	c.SetParamValues(collection)
	c.Set("user", &jwtutil.UserClaims{UserID: userID})
	return c, rec
}

func TestViewModeHandlers(t *testing.T) {
	InitPreferences(prefstore.New(prefstore.NewMemoryKV(), nil))

	t.Run("defaults per collection", func(t *testing.T) {
		c, rec := preferenceContext(t, http.MethodGet, "", "taxes", 1)
		if err := GetViewMode(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("unexpected status %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"view_mode":"grid"`) {
			t.Errorf("expected grid default for taxes, got %s", rec.Body.String())
		}

		c, rec = preferenceContext(t, http.MethodGet, "", "articles", 1)
		if err := GetViewMode(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(rec.Body.String(), `"view_mode":"list"`) {
			t.Errorf("expected list default for articles, got %s", rec.Body.String())
		}
	})

	t.Run("set then get round-trip with key independence", func(t *testing.T) {
		c, rec := preferenceContext(t, http.MethodPut, `{"view_mode":"grid"}`, "users", 2)
		if err := SetViewMode(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
		}

		c, rec = preferenceContext(t, http.MethodGet, "", "users", 2)
		if err := GetViewMode(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(rec.Body.String(), `"view_mode":"grid"`) {
			t.Errorf("expected grid after write, got %s", rec.Body.String())
		}

		// Articles stays on its default
		c, rec = preferenceContext(t, http.MethodGet, "", "articles", 2)
		if err := GetViewMode(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(rec.Body.String(), `"view_mode":"list"`) {
			t.Errorf("expected articles unaffected, got %s", rec.Body.String())
		}
	})

	t.Run("invalid mode rejected", func(t *testing.T) {
		c, rec := preferenceContext(t, http.MethodPut, `{"view_mode":"table"}`, "users", 3)
		if err := SetViewMode(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown collection rejected", func(t *testing.T) {
		c, rec := preferenceContext(t, http.MethodGet, "", "widgets", 1)
		if err := GetViewMode(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}
