package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestLoadSessionWithoutClaims(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if _, err := loadSession(c); !errors.Is(err, echo.ErrUnauthorized) {
		t.Errorf("expected unauthorized for a request without claims, got %v", err)
	}
}

func TestSessionError(t *testing.T) {
	e := echo.New()
	render := func(err error) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		if respErr := sessionError(c, err); respErr != nil {
			t.Fatalf("sessionError must write the response itself, got %v", respErr)
		}
		return rec
	}

	t.Run("missing credentials are unauthorized", func(t *testing.T) {
		if rec := render(echo.ErrUnauthorized); rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("tenant lookup failure is a server error", func(t *testing.T) {
		err := echo.NewHTTPError(http.StatusInternalServerError,
			"failed to load tenant").SetInternal(errors.New("connection refused"))
		if rec := render(err); rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})
}
