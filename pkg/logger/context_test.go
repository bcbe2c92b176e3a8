package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func TestFromEcho(t *testing.T) {
	e := echo.New()

	t.Run("returns the attached logger", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		attached := zap.NewNop().With(zap.String("request_id", "abc"))
		Attach(c, attached)
		if FromEcho(c) != attached {
			t.Error("expected the attached request logger")
		}
	})

	t.Run("falls back when nothing attached", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if FromEcho(c) == nil {
			t.Error("expected a usable fallback logger")
		}
	})
}
