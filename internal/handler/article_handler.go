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

// articleScope resolves the business the article operation targets. The
// business id may arrive as a route parameter (business-nested routes) or
// fall out of the session's scope resolution.
func articleScope(c echo.Context, session *sessionContext) (*uint, error) {
	id, outcome, err := session.resolveScope(c, c.Param("business_id"))
	if err != nil {
		return nil, err
	}
	prometheus.ScopeResolutionCounter.WithLabelValues(string(outcome)).Inc()
	return id, nil
}

// ListArticles retrieves the articles of the resolved business
func ListArticles(c echo.Context) error {
	log := logger.FromEcho(c)

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	businessID, err := articleScope(c, session)
	if err != nil {
		log.Error("Failed to resolve business scope", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve business scope"})
	}
	if businessID == nil {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "no business is in scope; select a business or configure an issuer business",
		})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var articles []model.Article
	result := database.GetDB().Preload("Tax").Where("business_id = ?", *businessID).Order("id").Find(&articles)
	if result.Error != nil {
		log.Error("Failed to retrieve articles",
			zap.Uint("business_id", *businessID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve articles"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"business_id": *businessID,
		"articles":    articles,
	})
}

// CreateArticle adds an article to the resolved business
func CreateArticle(c echo.Context) error {
	log := logger.FromEcho(c)

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	businessID, err := articleScope(c, session)
	if err != nil {
		log.Error("Failed to resolve business scope", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve business scope"})
	}
	if businessID == nil {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "no business is in scope; select a business or configure an issuer business",
		})
	}

	var req struct {
		Code  string  `json:"code"`
		Name  string  `json:"name"`
		Unit  string  `json:"unit"`
		Price float64 `json:"price"`
		TaxID *uint   `json:"tax_id"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse article creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" {
		log.Error("Invalid article data", zap.String("name", req.Name))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	article := model.Article{
		BusinessID: *businessID,
		Code:       req.Code,
		Name:       req.Name,
		Unit:       req.Unit,
		Price:      req.Price,
		TaxID:      req.TaxID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&article); result.Error != nil {
		log.Error("Failed to create article", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "article creation failed"})
	}

	log.Info("Article created",
		zap.String("name", article.Name),
		zap.Uint("id", article.ID),
		zap.Uint("business_id", article.BusinessID))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Article created successfully",
		"article": article,
	})
}

// GetArticle retrieves a single article within the resolved business
func GetArticle(c echo.Context) error {
	log := logger.FromEcho(c)

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	businessID, err := articleScope(c, session)
	if err != nil {
		log.Error("Failed to resolve business scope", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve business scope"})
	}
	if businessID == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no business is in scope"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid article ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid article ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var article model.Article
	result := database.GetDB().Preload("Tax").Where("business_id = ?", *businessID).First(&article, id)
	if result.Error != nil {
		log.Error("Article not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
	}

	return c.JSON(http.StatusOK, article)
}

// UpdateArticle updates an article within the resolved business
func UpdateArticle(c echo.Context) error {
	log := logger.FromEcho(c)

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	businessID, err := articleScope(c, session)
	if err != nil {
		log.Error("Failed to resolve business scope", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve business scope"})
	}
	if businessID == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no business is in scope"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid article ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid article ID"})
	}

	var article model.Article
	result := database.GetDB().Where("business_id = ?", *businessID).First(&article, id)
	if result.Error != nil {
		log.Error("Article not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
	}

	var req struct {
		Code  *string  `json:"code"`
		Name  *string  `json:"name"`
		Unit  *string  `json:"unit"`
		Price *float64 `json:"price"`
		TaxID *uint    `json:"tax_id"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse article update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updates := map[string]interface{}{}
	if req.Code != nil {
		updates["code"] = *req.Code
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.TaxID != nil {
		updates["tax_id"] = *req.TaxID
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Model(&article).Updates(updates); result.Error != nil {
		log.Error("Failed to update article", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "article update failed"})
	}

	log.Info("Article updated", zap.Uint("id", article.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Article updated successfully",
		"article": article,
	})
}

// DeleteArticle removes an article within the resolved business
func DeleteArticle(c echo.Context) error {
	log := logger.FromEcho(c)

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	businessID, err := articleScope(c, session)
	if err != nil {
		log.Error("Failed to resolve business scope", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve business scope"})
	}
	if businessID == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no business is in scope"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid article ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid article ID"})
	}

	var article model.Article
	result := database.GetDB().Where("business_id = ?", *businessID).First(&article, id)
	if result.Error != nil {
		log.Error("Article not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(&article); result.Error != nil {
		log.Error("Failed to delete article", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "article deletion failed"})
	}

	log.Info("Article deleted", zap.Uint("id", article.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Article deleted successfully"})
}
