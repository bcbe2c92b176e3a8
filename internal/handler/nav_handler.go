package handler

import (
	"net/http"

	"github.com/faturaime/admin-api/internal/nav"
	"github.com/labstack/echo/v4"
)

// PageTitle resolves the display title for a client route path
func PageTitle(c echo.Context) error {
	path := c.QueryParam("path")
	return c.JSON(http.StatusOK, echo.Map{
		"path":  path,
		"title": nav.Classify(path),
	})
}
