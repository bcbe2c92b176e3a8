package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestPageTitle(t *testing.T) {
	cases := []struct {
		path  string
		title string
	}{
		{"/businesses/12/invoices/7/edit", "Edit Invoice"},
		{"/login", "Login"},
		{"/nonexistent", "Faturëime"},
	}

	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/nav/title?path="+url.QueryEscape(tc.path), nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := PageTitle(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("unexpected status %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), `"title":"`+tc.title+`"`) {
				t.Errorf("expected title %q, got %s", tc.title, rec.Body.String())
			}
		})
	}
}
