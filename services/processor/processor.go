package processor

import (
	"context"
	"errors"

	"invoicepay/models"
)

// ErrSessionNotFound is returned when the provider does not know a session id.
var ErrSessionNotFound = errors.New("checkout session not found")

// CheckoutProvider is the hosted-payment service behind the checkout flow.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, in models.CheckoutSessionInput) (*models.CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
}
