package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/faturaime/admin-api/internal/model"
	"github.com/faturaime/admin-api/pkg/database"
	"github.com/faturaime/admin-api/pkg/logger"
	"github.com/faturaime/admin-api/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// invoiceBusiness loads the business a business-nested invoice route targets
// and verifies the session may operate on it.
func invoiceBusiness(c echo.Context, session *sessionContext) (*model.Business, error) {
	id, err := strconv.ParseUint(c.Param("business_id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid business ID")
	}

	var business model.Business
	if result := database.GetDB().First(&business, id); result.Error != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "business not found")
	}

	if business.TenantID != session.Tenant.ID && !session.Tenant.IsAdmin {
		return nil, echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	return &business, nil
}

// ListInvoices retrieves the invoices of a business
func ListInvoices(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.InvoiceOperationCounter.WithLabelValues("list").Inc()

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	business, err := invoiceBusiness(c, session)
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var invoices []model.Invoice
	result := database.GetDB().Where("business_id = ?", business.ID).Order("id desc").Find(&invoices)
	if result.Error != nil {
		log.Error("Failed to retrieve invoices",
			zap.Uint("business_id", business.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve invoices"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"business_id": business.ID,
		"invoices":    invoices,
	})
}

// GetInvoice retrieves an invoice with its lines
func GetInvoice(c echo.Context) error {
	log := logger.FromEcho(c)

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	business, err := invoiceBusiness(c, session)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("invoice_id"), 10, 32)
	if err != nil {
		log.Error("Invalid invoice ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invoice ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var invoice model.Invoice
	result := database.GetDB().Preload("Lines").Where("business_id = ?", business.ID).First(&invoice, id)
	if result.Error != nil {
		log.Error("Invoice not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
	}

	return c.JSON(http.StatusOK, invoice)
}

type invoiceLineRequest struct {
	ArticleID *uint   `json:"article_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	TaxRate   float64 `json:"tax_rate"`
}

// CreateInvoice creates a draft invoice with its lines
func CreateInvoice(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.InvoiceOperationCounter.WithLabelValues("create").Inc()

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	business, err := invoiceBusiness(c, session)
	if err != nil {
		return err
	}

	var req struct {
		BuyerName string               `json:"buyer_name"`
		Lines     []invoiceLineRequest `json:"lines"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse invoice creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if len(req.Lines) == 0 {
		log.Error("Invoice without lines")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one line is required"})
	}

	invoice := model.Invoice{
		BusinessID: business.ID,
		Status:     model.InvoiceStatusDraft,
		BuyerName:  req.BuyerName,
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&invoice); result.Error != nil {
			return result.Error
		}

		invoice.Number = fmt.Sprintf("%d/%d", business.ID, invoice.ID)

		var total float64
		for _, lineReq := range req.Lines {
			line := model.InvoiceLine{
				InvoiceID: invoice.ID,
				ArticleID: lineReq.ArticleID,
				Name:      lineReq.Name,
				Quantity:  lineReq.Quantity,
				UnitPrice: lineReq.UnitPrice,
				TaxRate:   lineReq.TaxRate,
			}
			if result := tx.Create(&line); result.Error != nil {
				return result.Error
			}
			total += line.LineTotal()
			invoice.Lines = append(invoice.Lines, line)
		}

		invoice.Total = total
		return tx.Model(&model.Invoice{}).Where("id = ?", invoice.ID).
			Updates(map[string]interface{}{"number": invoice.Number, "total": total}).Error
	})
	if err != nil {
		log.Error("Failed to create invoice", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invoice creation failed"})
	}

	log.Info("Invoice created",
		zap.Uint("id", invoice.ID),
		zap.String("number", invoice.Number),
		zap.Uint("business_id", business.ID),
		zap.Float64("total", invoice.Total))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Invoice created successfully",
		"invoice": invoice,
	})
}

// UpdateInvoice updates a draft invoice's header fields or issues it
func UpdateInvoice(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.InvoiceOperationCounter.WithLabelValues("update").Inc()

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	business, err := invoiceBusiness(c, session)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("invoice_id"), 10, 32)
	if err != nil {
		log.Error("Invalid invoice ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invoice ID"})
	}

	var invoice model.Invoice
	result := database.GetDB().Where("business_id = ?", business.ID).First(&invoice, id)
	if result.Error != nil {
		log.Error("Invoice not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
	}

	var req struct {
		BuyerName *string `json:"buyer_name"`
		Status    *string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse invoice update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updates := map[string]interface{}{}

	if req.BuyerName != nil {
		if invoice.Status != model.InvoiceStatusDraft {
			log.Warn("Attempt to edit non-draft invoice",
				zap.Uint("id", invoice.ID), zap.String("status", invoice.Status))
			return c.JSON(http.StatusConflict, echo.Map{"error": "only draft invoices can be edited"})
		}
		updates["buyer_name"] = *req.BuyerName
	}

	if req.Status != nil {
		switch *req.Status {
		case model.InvoiceStatusIssued:
			if invoice.Status != model.InvoiceStatusDraft {
				return c.JSON(http.StatusConflict, echo.Map{"error": "only draft invoices can be issued"})
			}
			now := time.Now()
			updates["status"] = model.InvoiceStatusIssued
			updates["issue_date"] = &now
		case model.InvoiceStatusCancelled:
			if invoice.Status == model.InvoiceStatusCancelled {
				return c.JSON(http.StatusConflict, echo.Map{"error": "invoice is already cancelled"})
			}
			updates["status"] = model.InvoiceStatusCancelled
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status transition"})
		}
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Model(&invoice).Updates(updates); result.Error != nil {
		log.Error("Failed to update invoice", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invoice update failed"})
	}

	log.Info("Invoice updated", zap.Uint("id", invoice.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Invoice updated successfully",
		"invoice": invoice,
	})
}

// DeleteInvoice removes a draft invoice
func DeleteInvoice(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.InvoiceOperationCounter.WithLabelValues("delete").Inc()

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	business, err := invoiceBusiness(c, session)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("invoice_id"), 10, 32)
	if err != nil {
		log.Error("Invalid invoice ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invoice ID"})
	}

	var invoice model.Invoice
	result := database.GetDB().Where("business_id = ?", business.ID).First(&invoice, id)
	if result.Error != nil {
		log.Error("Invoice not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
	}

	if invoice.Status != model.InvoiceStatusDraft {
		log.Warn("Attempt to delete non-draft invoice",
			zap.Uint("id", invoice.ID), zap.String("status", invoice.Status))
		return c.JSON(http.StatusConflict, echo.Map{"error": "only draft invoices can be deleted"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(&invoice); result.Error != nil {
		log.Error("Failed to delete invoice", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invoice deletion failed"})
	}

	log.Info("Invoice deleted", zap.Uint("id", invoice.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Invoice deleted successfully"})
}
