package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/faturaime/admin-api/internal/model"
	"github.com/faturaime/admin-api/internal/scope"
	"github.com/faturaime/admin-api/pkg/database"
	"github.com/faturaime/admin-api/pkg/logger"
	"github.com/faturaime/admin-api/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Per-user reload guards: concurrent context requests for the same user
// race on scope changes, and only the latest scope's data may win.
var (
	reloadersMu sync.Mutex
	reloaders   = make(map[uint]*scope.Reloader)
)

func reloaderFor(userID uint) *scope.Reloader {
	reloadersMu.Lock()
	defer reloadersMu.Unlock()
	r, ok := reloaders[userID]
	if !ok {
		r = &scope.Reloader{}
		reloaders[userID] = r
	}
	return r
}

// GetContext resolves the session's effective business scope and assembles
// the scope-dependent summary the client shell renders. Results computed for
// a superseded scope are discarded rather than returned.
func GetContext(c echo.Context) error {
	log := logger.FromEcho(c)

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	businessID, outcome, err := session.resolveScope(c, "")
	if err != nil {
		log.Error("Failed to resolve business scope", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve business scope"})
	}
	prometheus.ScopeResolutionCounter.WithLabelValues(string(outcome)).Inc()

	if businessID == nil {
		log.Warn("No resolvable business scope",
			zap.Uint("user_id", session.Claims.UserID),
			zap.Uint("tenant_id", session.Tenant.ID))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "no business is in scope; select a business or configure an issuer business",
		})
	}

	reloader := reloaderFor(session.Claims.UserID)
	gen := reloader.Begin(*businessID)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var articleCount, invoiceCount, draftCount int64
	database.GetDB().Model(&model.Article{}).Where("business_id = ?", *businessID).Count(&articleCount)
	database.GetDB().Model(&model.Invoice{}).Where("business_id = ?", *businessID).Count(&invoiceCount)
	database.GetDB().Model(&model.Invoice{}).
		Where("business_id = ? AND status = ?", *businessID, model.InvoiceStatusDraft).Count(&draftCount)

	var response echo.Map
	applied := reloader.Apply(gen, func() {
		response = echo.Map{
			"business_id":    *businessID,
			"scope_outcome":  string(outcome),
			"tenant_admin":   session.Tenant.IsAdmin,
			"article_count":  articleCount,
			"invoice_count":  invoiceCount,
			"draft_invoices": draftCount,
		}
	})
	if !applied {
		// A newer request changed the scope while this one was loading
		prometheus.StaleReloadCounter.Inc()
		log.Debug("Discarding stale context reload",
			zap.Uint("user_id", session.Claims.UserID),
			zap.Uint("business_id", *businessID))
		return c.JSON(http.StatusConflict, echo.Map{"error": "scope changed during load, retry"})
	}

	return c.JSON(http.StatusOK, response)
}
