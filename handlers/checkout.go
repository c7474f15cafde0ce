package handlers

import (
	"net/http"

	"invoicepay/models"
	"invoicepay/services/checkout"
	"invoicepay/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler serves the two payment operations. Every failure is
// answered with 500 and {"error": message}.
type CheckoutHandler struct {
	initiator checkout.SessionInitiator
	verifier  checkout.PaymentVerifier
}

func NewCheckoutHandler(initiator checkout.SessionInitiator, verifier checkout.PaymentVerifier) *CheckoutHandler {
	return &CheckoutHandler{initiator: initiator, verifier: verifier}
}

// CreateCheckout handles POST {invoiceId, customerEmail?, customerName?}.
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	logger := getLogger(c)

	var req models.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rejectBody(c, utils.ComponentCreateCheckout, err)
		return
	}

	resp, err := h.initiator.CreateCheckoutSession(c.Request.Context(), req, c.GetHeader("Origin"))
	if err != nil {
		logger.Error("ERROR in create-checkout", zap.String("kind", string(utils.KindOf(err))), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyPayment handles POST {sessionId}.
func (h *CheckoutHandler) VerifyPayment(c *gin.Context) {
	logger := getLogger(c)

	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rejectBody(c, utils.ComponentVerifyPayment, err)
		return
	}

	resp, err := h.verifier.VerifyPaymentSession(c.Request.Context(), req.SessionID)
	if err != nil {
		logger.Error("ERROR in verify-payment", zap.String("kind", string(utils.KindOf(err))), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// rejectBody answers a body that does not decode into the request shape.
// Missing fields decode to empty values and are left to the operation.
func rejectBody(c *gin.Context, component string, cause error) {
	err := utils.InvalidArgument("Invalid request body")
	utils.NewStepLogger(getLogger(c), component).Fail("Request rejected", err, zap.NamedError("cause", cause))
	utils.JSONError(c, http.StatusInternalServerError, err)
}

// Preflight answers OPTIONS with permissive CORS headers and no body. The
// cors middleware handles requests carrying an Origin before they get here.
func Preflight(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", AllowedHeaders)
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Status(http.StatusOK)
}

// AllowedHeaders are the request headers browsers may send cross-origin.
const AllowedHeaders = "authorization, x-client-info, apikey, content-type"
