// File: invoicepay/handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Payment endpoints
	CreateCheckout gin.HandlerFunc
	VerifyPayment  gin.HandlerFunc

	// Invoice endpoints
	GetInvoiceByNumber  gin.HandlerFunc
	CreateManualInvoice gin.HandlerFunc

	Health gin.HandlerFunc
}
