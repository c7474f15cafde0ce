// File: invoicepay/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"invoicepay/config"
	"invoicepay/database"
	invoiceRepo "invoicepay/database/repository/invoice"
	paymentRepo "invoicepay/database/repository/payment"
	"invoicepay/handlers"
	"invoicepay/middleware"
	"invoicepay/routes"
	"invoicepay/services/checkout"
	"invoicepay/services/invoice"
	"invoicepay/services/processor"
	"invoicepay/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: %v", err)
	}
	logger, err := utils.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("main: %v", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("main: invalid configuration", zap.Error(err))
	}

	// Amounts go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := database.Connect(ctx, database.Options{
		URL:         cfg.DatabaseURL,
		ServiceUser: cfg.DatabaseServiceUser,
		ServiceKey:  cfg.DatabaseServiceKey,
	})
	if err != nil {
		logger.Fatal("main: record store unavailable", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.DatabaseName)

	cacheClient, err := utils.NewCacheClient(ctx, utils.CacheOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisCacheDB,
	})
	if err != nil {
		logger.Fatal("main: cache unavailable", zap.Error(err))
	}

	// repositories.
	mongoInvoices, err := invoiceRepo.NewMongoInvoiceRepo(ctx, db)
	if err != nil {
		logger.Fatal("main: invoice store setup failed", zap.Error(err))
	}
	var invoices invoiceRepo.InvoiceRepository = mongoInvoices
	if cacheClient != nil {
		defer cacheClient.Close()
		invoices = invoiceRepo.NewCachedInvoiceRepo(
			mongoInvoices,
			invoiceRepo.NewRedisInvoiceCache(cacheClient, cfg.InvoiceCacheTTL),
			logger.Named("invoice-cache"),
		)
		logger.Info("invoice cache enabled", zap.String("addr", cfg.RedisAddr))
	}
	payments, err := paymentRepo.NewMongoPaymentRepo(ctx, db)
	if err != nil {
		logger.Fatal("main: payment store setup failed", zap.Error(err))
	}

	// services.
	stripeProcessor := processor.NewStripeProcessor(cfg.StripeSecretKey, nil)
	initiator := checkout.NewInitiator(invoices, payments, stripeProcessor, checkout.RedirectPolicy{
		AllowedOrigins: cfg.Origins(),
		FallbackOrigin: cfg.PublicBaseURL,
	}, logger)
	verifier := checkout.NewVerifier(invoices, payments, stripeProcessor, logger)
	invoiceService := &invoice.DefaultInvoiceService{Repo: invoices, Logger: logger.Named("invoice")}

	health := utils.NewHealthMonitor(mongoClient, cacheClient, 60*time.Second)
	health.Start(ctx)

	checkoutHandler := handlers.NewCheckoutHandler(initiator, verifier)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)

	handlerBundle := &handlers.HandlerBundle{
		CreateCheckout:      checkoutHandler.CreateCheckout,
		VerifyPayment:       checkoutHandler.VerifyPayment,
		GetInvoiceByNumber:  invoiceHandler.GetInvoiceByNumber,
		CreateManualInvoice: invoiceHandler.CreateManualInvoice,
		Health:              handlers.HealthHandler(health),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))
	router.Use(middleware.Timeout(cfg.RequestTimeout))
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	logger.Sugar().Info("main: server stopped gracefully")
}
