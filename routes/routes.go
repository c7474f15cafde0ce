package routes

import (
	"net/http"
	"strings"
	"time"

	"invoicepay/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPaymentRoutes mounts the two payment operations under their
// function names and under /api/payments.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	functions := r.Group("/functions/v1")
	{
		functions.POST("/create-checkout", hb.CreateCheckout)
		functions.OPTIONS("/create-checkout", handlers.Preflight)
		functions.POST("/verify-payment", hb.VerifyPayment)
		functions.OPTIONS("/verify-payment", handlers.Preflight)
	}

	api := r.Group("/api/payments")
	{
		api.POST("/checkout", hb.CreateCheckout)
		api.OPTIONS("/checkout", handlers.Preflight)
		api.POST("/verify", hb.VerifyPayment)
		api.OPTIONS("/verify", handlers.Preflight)
	}
}

// RegisterInvoiceRoutes registers invoice lookup and manual entry.
func RegisterInvoiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/invoices")
	{
		api.GET("/:number", hb.GetInvoiceByNumber)
		api.POST("/manual", hb.CreateManualInvoice)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.Health == nil {
		r.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		return
	}
	r.GET("/health", hb.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    strings.Split(strings.ReplaceAll(handlers.AllowedHeaders, " ", ""), ","),
		ExposeHeaders:   []string{"Content-Length", "X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))

	RegisterPaymentRoutes(r, hb)
	RegisterInvoiceRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
