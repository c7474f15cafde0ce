package checkout

import (
	"context"
	"strings"

	invoiceRepo "invoicepay/database/repository/invoice"
	paymentRepo "invoicepay/database/repository/payment"
	"invoicepay/models"
	"invoicepay/services/processor"
	"invoicepay/utils"

	"go.uber.org/zap"
)

// Initiator creates a checkout session for an invoice and records the
// pending payment attempt. Each call opens a new provider session.
type Initiator struct {
	invoices invoiceRepo.InvoiceRepository
	payments paymentRepo.PaymentRepository
	provider processor.CheckoutProvider
	redirect RedirectPolicy
	log      *utils.StepLogger
}

func NewInitiator(
	invoices invoiceRepo.InvoiceRepository,
	payments paymentRepo.PaymentRepository,
	provider processor.CheckoutProvider,
	redirect RedirectPolicy,
	logger *zap.Logger,
) *Initiator {
	return &Initiator{
		invoices: invoices,
		payments: payments,
		provider: provider,
		redirect: redirect,
		log:      utils.NewStepLogger(logger, utils.ComponentCreateCheckout),
	}
}

func (i *Initiator) CreateCheckoutSession(ctx context.Context, req models.CreateCheckoutRequest, origin string) (*models.CreateCheckoutResponse, error) {
	i.log.Step("Function started")

	invoiceID := strings.TrimSpace(req.InvoiceID)
	if invoiceID == "" {
		err := utils.InvalidArgument("Invoice ID is required")
		i.log.Fail("Request rejected", err)
		return nil, err
	}
	base, err := i.redirect.resolve(origin)
	if err != nil {
		i.log.Fail("Request rejected", err, zap.String("origin", origin))
		return nil, err
	}
	log := i.log.With(zap.String("invoiceId", invoiceID))
	log.Step("Request validated",
		zap.String("customerEmail", req.CustomerEmail),
		zap.String("customerName", req.CustomerName),
	)

	invoice, err := i.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		err = classifyLookup(err, "Invoice not found", "Failed to load invoice")
		log.Fail("Invoice lookup failed", err)
		return nil, err
	}
	if !invoice.Amount.IsPositive() {
		err := utils.InvalidArgument("Invoice amount must be greater than zero")
		log.Fail("Invoice rejected", err, zap.String("amount", invoice.Amount.String()))
		return nil, err
	}
	if invoice.Status == models.InvoiceStatusPaid {
		err := utils.InvalidArgument("Invoice is already paid")
		log.Fail("Invoice rejected", err, zap.String("invoiceNumber", invoice.InvoiceNumber))
		return nil, err
	}
	log.Step("Invoice found",
		zap.String("invoiceNumber", invoice.InvoiceNumber),
		zap.String("amount", invoice.Amount.String()),
		zap.String("currency", invoice.Currency),
	)

	input := buildSessionInput(invoice, req.CustomerEmail, base)
	session, err := i.provider.CreateSession(ctx, input)
	if err != nil {
		err = utils.ProviderError("Failed to create checkout session", err)
		log.Fail("Checkout session creation failed", err)
		return nil, err
	}
	if session == nil || session.ID == "" || session.URL == "" {
		err := utils.ProviderError("Checkout provider returned no session", nil)
		log.Fail("Checkout session creation failed", err)
		return nil, err
	}

	// The provider session exists from here on. A failed insert leaves it
	// without a local record; verification for it will then fail.
	_, err = i.payments.Create(ctx, models.Payment{
		InvoiceID:       invoice.ID,
		StripeSessionID: session.ID,
		Amount:          invoice.Amount,
		Currency:        invoice.Currency,
		Status:          models.PaymentStatusPending,
	})
	if err != nil {
		err = utils.PersistenceError("Failed to create payment record", err)
		log.Fail("Payment record creation failed", err, zap.String("sessionId", session.ID))
		return nil, err
	}

	log.Step("Checkout session created", zap.String("sessionId", session.ID), zap.String("url", session.URL))
	return &models.CreateCheckoutResponse{URL: session.URL, SessionID: session.ID}, nil
}

func buildSessionInput(invoice *models.Invoice, customerEmail, origin string) models.CheckoutSessionInput {
	description := invoice.Description
	if description == "" {
		description = "Payment for invoice " + invoice.InvoiceNumber
	}
	email := strings.TrimSpace(customerEmail)
	if email == "" {
		email = invoice.CustomerEmail
	}

	return models.CheckoutSessionInput{
		UnitAmount:    models.MinorUnits(invoice.Amount),
		Currency:      strings.ToLower(invoice.Currency),
		ProductName:   "Invoice " + invoice.InvoiceNumber,
		Description:   description,
		SuccessURL:    successURL(origin),
		CancelURL:     cancelURL(origin),
		CustomerEmail: email,
		Metadata: map[string]string{
			models.MetadataInvoiceID:     invoice.ID,
			models.MetadataInvoiceNumber: invoice.InvoiceNumber,
		},
	}
}
