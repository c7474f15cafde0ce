package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	invoiceRepo "invoicepay/database/repository/invoice"
	paymentRepo "invoicepay/database/repository/payment"
	"invoicepay/models"
	"invoicepay/services/processor"
	"invoicepay/utils"

	"go.uber.org/zap"
)

// Verifier pulls a session's status from the provider and, once it reports
// paid, moves the payment record and its invoice to paid. Both writes are
// guarded transitions, so repeating a verification changes nothing.
type Verifier struct {
	invoices invoiceRepo.InvoiceRepository
	payments paymentRepo.PaymentRepository
	provider processor.CheckoutProvider
	log      *utils.StepLogger
	now      func() time.Time
}

func NewVerifier(
	invoices invoiceRepo.InvoiceRepository,
	payments paymentRepo.PaymentRepository,
	provider processor.CheckoutProvider,
	logger *zap.Logger,
) *Verifier {
	return &Verifier{
		invoices: invoices,
		payments: payments,
		provider: provider,
		log:      utils.NewStepLogger(logger, utils.ComponentVerifyPayment),
		now:      time.Now,
	}
}

func (v *Verifier) VerifyPaymentSession(ctx context.Context, sessionID string) (*models.VerifyPaymentResponse, error) {
	v.log.Step("Function started")

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		err := utils.InvalidArgument("Session ID is required")
		v.log.Fail("Request rejected", err)
		return nil, err
	}
	log := v.log.With(zap.String("sessionId", sessionID))
	log.Step("Session ID received")

	session, err := v.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, processor.ErrSessionNotFound) {
			err = utils.NotFound("Checkout session not found", err)
		} else {
			err = utils.ProviderError("Failed to retrieve checkout session", err)
		}
		log.Fail("Session retrieval failed", err)
		return nil, err
	}
	log.Step("Stripe session retrieved", zap.String("status", session.PaymentStatus))

	invoiceID := session.Metadata[models.MetadataInvoiceID]
	resp := &models.VerifyPaymentResponse{
		Status:        session.PaymentStatus,
		InvoiceNumber: session.Metadata[models.MetadataInvoiceNumber],
	}

	if session.PaymentStatus != models.ProviderStatusPaid {
		log.Step("Payment not completed, nothing to update")
		return resp, nil
	}

	now := v.now().UTC()
	changed, err := v.payments.MarkPaid(ctx, sessionID, session.PaymentIntentID, now)
	if err != nil {
		err = utils.PersistenceError("Failed to update payment record", err)
		log.Fail("Payment update failed", err)
		return nil, err
	}
	if !changed {
		v.logSettled(ctx, log, sessionID)
	}

	// The provider has captured the funds; an invoice that fails to update is
	// reconciled out of band and does not change the reported status.
	if invoiceID != "" {
		if _, err := v.invoices.MarkPaid(ctx, invoiceID, now); err != nil {
			log.Warn("Invoice update failed", err, zap.String("invoiceId", invoiceID))
		}
	} else {
		log.Step("Session has no invoice metadata, invoice left unchanged")
	}

	log.Step("Payment verified and updated successfully", zap.String("invoiceNumber", resp.InvoiceNumber))
	return resp, nil
}

// logSettled records when an already paid record was first settled.
func (v *Verifier) logSettled(ctx context.Context, log *utils.StepLogger, sessionID string) {
	record, err := v.payments.GetBySessionID(ctx, sessionID)
	if err != nil {
		log.Warn("Payment record already paid, lookup failed", err)
		return
	}
	fields := []zap.Field{zap.String("paymentId", record.ID)}
	if record.PaidAt != nil {
		fields = append(fields, zap.Time("paidAt", *record.PaidAt))
	}
	log.Step("Payment record already paid", fields...)
}
