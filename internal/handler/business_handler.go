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

// CreateBusiness handles business creation
func CreateBusiness(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.BusinessOperationCounter.WithLabelValues("create").Inc()

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	// Parse request
	var req struct {
		Name      string `json:"name"`
		TaxNumber string `json:"tax_number"`
		Address   string `json:"address"`
		City      string `json:"city"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse business creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" {
		log.Error("Invalid business data", zap.String("name", req.Name))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	business := model.Business{
		TenantID:  session.Tenant.ID,
		Name:      req.Name,
		TaxNumber: req.TaxNumber,
		Address:   req.Address,
		City:      req.City,
		Active:    true,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&business); result.Error != nil {
		log.Error("Failed to create business", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "business creation failed"})
	}

	log.Info("Business created",
		zap.String("name", business.Name),
		zap.Uint("id", business.ID),
		zap.Uint("tenant_id", business.TenantID))

	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Business created successfully",
		"business": business,
	})
}

// ListBusinesses retrieves the businesses visible to the session's tenant
func ListBusinesses(c echo.Context) error {
	log := logger.FromEcho(c)

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	businesses, err := session.visibleBusinesses()
	if err != nil {
		log.Error("Failed to retrieve businesses", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve businesses"})
	}

	return c.JSON(http.StatusOK, businesses)
}

// GetBusiness retrieves business details
func GetBusiness(c echo.Context) error {
	log := logger.FromEcho(c)

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	id, err := strconv.ParseUint(c.Param("business_id"), 10, 32)
	if err != nil {
		log.Error("Invalid business ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid business ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var business model.Business
	if result := database.GetDB().First(&business, id); result.Error != nil {
		log.Error("Business not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "business not found"})
	}

	// Cross-tenant reads require administrative tenant scope
	if business.TenantID != session.Tenant.ID && !session.Tenant.IsAdmin {
		log.Warn("Cross-tenant business access attempt",
			zap.Uint("requesting_tenant_id", session.Tenant.ID),
			zap.Uint("business_tenant_id", business.TenantID))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	return c.JSON(http.StatusOK, business)
}

// UpdateBusiness updates business details
func UpdateBusiness(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.BusinessOperationCounter.WithLabelValues("update").Inc()

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	id, err := strconv.ParseUint(c.Param("business_id"), 10, 32)
	if err != nil {
		log.Error("Invalid business ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid business ID"})
	}

	var business model.Business
	if result := database.GetDB().First(&business, id); result.Error != nil {
		log.Error("Business not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "business not found"})
	}

	if business.TenantID != session.Tenant.ID && !session.Tenant.IsAdmin {
		log.Warn("Cross-tenant business update attempt",
			zap.Uint("requesting_tenant_id", session.Tenant.ID),
			zap.Uint("business_tenant_id", business.TenantID))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	var req struct {
		Name      *string `json:"name"`
		TaxNumber *string `json:"tax_number"`
		Address   *string `json:"address"`
		City      *string `json:"city"`
		Active    *bool   `json:"active"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse business update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.TaxNumber != nil {
		updates["tax_number"] = *req.TaxNumber
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Model(&business).Updates(updates); result.Error != nil {
		log.Error("Failed to update business", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "business update failed"})
	}

	log.Info("Business updated", zap.Uint("id", business.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Business updated successfully",
		"business": business,
	})
}

// DeleteBusiness removes a business. A business currently designated as the
// session tenant's issuer business is refused before any row is touched.
func DeleteBusiness(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.BusinessOperationCounter.WithLabelValues("delete").Inc()

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	id, err := strconv.ParseUint(c.Param("business_id"), 10, 32)
	if err != nil {
		log.Error("Invalid business ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid business ID"})
	}
	businessID := uint(id)

	// Issuer protection runs before any lookup or delete is attempted
	if session.Tenant.IsIssuerBusiness(businessID) {
		log.Warn("Refusing to delete issuer business",
			zap.Uint("business_id", businessID),
			zap.Uint("tenant_id", session.Tenant.ID))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "this business is designated as your issuer business and cannot be deleted",
		})
	}

	var business model.Business
	if result := database.GetDB().First(&business, businessID); result.Error != nil {
		log.Error("Business not found", zap.Uint("id", businessID), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "business not found"})
	}

	if business.TenantID != session.Tenant.ID && !session.Tenant.IsAdmin {
		log.Warn("Cross-tenant business delete attempt",
			zap.Uint("requesting_tenant_id", session.Tenant.ID),
			zap.Uint("business_tenant_id", business.TenantID))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	// A business may also be another tenant's issuer; protect those too
	var issuerCount int64
	database.GetDB().Model(&model.Tenant{}).Where("issuer_business_id = ?", businessID).Count(&issuerCount)
	if issuerCount > 0 {
		log.Warn("Refusing to delete business designated as an issuer",
			zap.Uint("business_id", businessID), zap.Int64("tenants", issuerCount))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "this business is designated as an issuer business and cannot be deleted",
		})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(&business); result.Error != nil {
		log.Error("Failed to delete business", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "business deletion failed"})
	}

	log.Info("Business deleted", zap.Uint("id", businessID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Business deleted successfully"})
}
