package checkout

import (
	"context"

	"invoicepay/models"
)

// SessionInitiator starts a hosted checkout for an invoice.
type SessionInitiator interface {
	CreateCheckoutSession(ctx context.Context, req models.CreateCheckoutRequest, origin string) (*models.CreateCheckoutResponse, error)
}

// PaymentVerifier reconciles a checkout session's outcome into the stores.
type PaymentVerifier interface {
	VerifyPaymentSession(ctx context.Context, sessionID string) (*models.VerifyPaymentResponse, error)
}
