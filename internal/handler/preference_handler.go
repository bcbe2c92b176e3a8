package handler

import (
	"net/http"

	"github.com/faturaime/admin-api/internal/middleware"
	"github.com/faturaime/admin-api/internal/prefstore"
	"github.com/faturaime/admin-api/pkg/logger"
	"github.com/faturaime/admin-api/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var preferences *prefstore.Store

// InitPreferences injects the preference store used by the handlers
func InitPreferences(store *prefstore.Store) {
	preferences = store
}

// GetViewMode returns the persisted view mode for a collection, falling back
// to the collection's documented default.
func GetViewMode(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := middleware.ClaimsFromEcho(c)
	if !ok {
		log.Error("Failed to get user claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	collection := c.Param("collection")
	if !prefstore.KnownCollection(collection) {
		log.Error("Unknown collection", zap.String("collection", collection))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown collection"})
	}

	prometheus.PreferenceCounter.WithLabelValues("get", collection).Inc()

	mode := preferences.GetViewMode(c.Request().Context(), claims.UserID, collection, prefstore.DefaultMode(collection))
	return c.JSON(http.StatusOK, echo.Map{
		"collection": collection,
		"view_mode":  mode,
	})
}

// SetViewMode persists the view mode for a collection
func SetViewMode(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := middleware.ClaimsFromEcho(c)
	if !ok {
		log.Error("Failed to get user claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	collection := c.Param("collection")
	if !prefstore.KnownCollection(collection) {
		log.Error("Unknown collection", zap.String("collection", collection))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown collection"})
	}

	var req struct {
		ViewMode string `json:"view_mode"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse view mode request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := preferences.SetViewMode(c.Request().Context(), claims.UserID, collection, req.ViewMode); err != nil {
		log.Error("Invalid view mode", zap.String("view_mode", req.ViewMode))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "view_mode must be \"list\" or \"grid\""})
	}

	prometheus.PreferenceCounter.WithLabelValues("set", collection).Inc()

	log.Info("View mode updated",
		zap.Uint("user_id", claims.UserID),
		zap.String("collection", collection),
		zap.String("view_mode", req.ViewMode))

	return c.JSON(http.StatusOK, echo.Map{
		"collection": collection,
		"view_mode":  req.ViewMode,
	})
}
