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

// ListTaxes retrieves all configured tax rates
func ListTaxes(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var taxes []model.Tax
	if result := database.GetDB().Order("id").Find(&taxes); result.Error != nil {
		log.Error("Failed to retrieve taxes", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve taxes"})
	}

	return c.JSON(http.StatusOK, taxes)
}

// CreateTax adds a tax rate
func CreateTax(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Name string  `json:"name"`
		Rate float64 `json:"rate"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse tax creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" {
		log.Error("Invalid tax data", zap.String("name", req.Name))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.Rate < 0 || req.Rate > 100 {
		log.Error("Invalid tax rate", zap.Float64("rate", req.Rate))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rate must be between 0 and 100"})
	}

	tax := model.Tax{
		Name: req.Name,
		Rate: req.Rate,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&tax); result.Error != nil {
		log.Error("Failed to create tax", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "tax creation failed"})
	}

	log.Info("Tax created", zap.String("name", tax.Name), zap.Float64("rate", tax.Rate))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Tax created successfully",
		"tax":     tax,
	})
}

// UpdateTax updates a tax rate
func UpdateTax(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid tax ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tax ID"})
	}

	var tax model.Tax
	if result := database.GetDB().First(&tax, id); result.Error != nil {
		log.Error("Tax not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tax not found"})
	}

	var req struct {
		Name *string  `json:"name"`
		Rate *float64 `json:"rate"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse tax update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Rate != nil {
		if *req.Rate < 0 || *req.Rate > 100 {
			log.Error("Invalid tax rate", zap.Float64("rate", *req.Rate))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "rate must be between 0 and 100"})
		}
		updates["rate"] = *req.Rate
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Model(&tax).Updates(updates); result.Error != nil {
		log.Error("Failed to update tax", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "tax update failed"})
	}

	log.Info("Tax updated", zap.Uint("id", tax.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Tax updated successfully",
		"tax":     tax,
	})
}

// DeleteTax removes a tax rate that no article references
func DeleteTax(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid tax ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tax ID"})
	}

	var tax model.Tax
	if result := database.GetDB().First(&tax, id); result.Error != nil {
		log.Error("Tax not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tax not found"})
	}

	var articleCount int64
	database.GetDB().Model(&model.Article{}).Where("tax_id = ?", tax.ID).Count(&articleCount)
	if articleCount > 0 {
		log.Warn("Refusing to delete tax in use",
			zap.Uint("id", tax.ID), zap.Int64("articles", articleCount))
		return c.JSON(http.StatusConflict, echo.Map{"error": "tax is referenced by articles and cannot be deleted"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(&tax); result.Error != nil {
		log.Error("Failed to delete tax", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "tax deletion failed"})
	}

	log.Info("Tax deleted", zap.Uint("id", tax.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Tax deleted successfully"})
}
