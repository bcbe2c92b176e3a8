package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/faturaime/admin-api/internal/model"
	"github.com/faturaime/admin-api/pkg/database"
	"github.com/faturaime/admin-api/pkg/logger"
	"github.com/faturaime/admin-api/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListTenants retrieves all tenants. Routed behind RequireTenantAdmin.
func ListTenants(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var tenants []model.Tenant
	if result := database.GetDB().Order("id").Find(&tenants); result.Error != nil {
		log.Error("Failed to retrieve tenants", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve tenants"})
	}

	return c.JSON(http.StatusOK, tenants)
}

// GetTenant retrieves tenant details. The session's own tenant is always
// readable; other tenants require administrative tenant scope.
func GetTenant(c echo.Context) error {
	log := logger.FromEcho(c)

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid tenant ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tenant ID"})
	}

	if uint(id) != session.Tenant.ID && !session.Tenant.IsAdmin {
		log.Warn("Cross-tenant read attempt",
			zap.Uint("requesting_tenant_id", session.Tenant.ID),
			zap.Uint64("tenant_id", id))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var tenant model.Tenant
	if result := database.GetDB().First(&tenant, id); result.Error != nil {
		log.Error("Tenant not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tenant not found"})
	}

	return c.JSON(http.StatusOK, tenant)
}

// SetIssuerBusiness designates the business the session's tenant issues
// invoices as. The business must belong to the tenant.
func SetIssuerBusiness(c echo.Context) error {
	log := logger.FromEcho(c)

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	var req struct {
		BusinessID *uint `json:"business_id"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse issuer business request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.BusinessID != nil {
		var business model.Business
		if result := database.GetDB().First(&business, *req.BusinessID); result.Error != nil {
			log.Error("Business not found", zap.Uint("id", *req.BusinessID), zap.Error(result.Error))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "business not found"})
		}
		if business.TenantID != session.Tenant.ID {
			log.Warn("Issuer designation for foreign business",
				zap.Uint("tenant_id", session.Tenant.ID),
				zap.Uint("business_tenant_id", business.TenantID))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "business does not belong to your tenant"})
		}
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Model(&session.Tenant).Update("issuer_business_id", req.BusinessID); result.Error != nil {
		log.Error("Failed to set issuer business", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to set issuer business"})
	}

	log.Info("Issuer business updated",
		zap.Uint("tenant_id", session.Tenant.ID),
		zap.Any("business_id", req.BusinessID))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Issuer business updated successfully",
		"tenant":  session.Tenant,
	})
}
