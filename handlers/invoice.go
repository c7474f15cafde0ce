package handlers

import (
	"net/http"

	"invoicepay/models"
	"invoicepay/services/invoice"
	"invoicepay/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InvoiceHandler struct {
	service invoice.InvoiceService
}

func NewInvoiceHandler(service invoice.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// GetInvoiceByNumber handles GET /api/invoices/:number.
func (h *InvoiceHandler) GetInvoiceByNumber(c *gin.Context) {
	inv, err := h.service.FindByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		getLogger(c).Info("invoice lookup failed", zap.String("invoice_number", c.Param("number")), zap.Error(err))
		utils.JSONError(c, utils.StatusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// CreateManualInvoice handles POST /api/invoices/manual.
func (h *InvoiceHandler) CreateManualInvoice(c *gin.Context) {
	var input models.ManualInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.InvalidArgument("Please fill in all required fields"))
		return
	}

	inv, err := h.service.CreateManual(c.Request.Context(), input)
	if err != nil {
		getLogger(c).Warn("manual invoice rejected", zap.Error(err))
		utils.JSONError(c, utils.StatusFor(err), err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}
