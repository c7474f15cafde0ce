package processor

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"invoicepay/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// Stripe opens and reads Checkout Sessions. It holds its own key and backend
// instead of the SDK globals, and never retries: failures surface to the
// caller as they happen.
type Stripe struct {
	sessions *session.Client
}

// NewStripeProcessor builds the adapter. A nil backend selects the live API
// with network retries turned off.
func NewStripeProcessor(apiKey string, backend stripe.Backend) *Stripe {
	if backend == nil {
		backend = stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			MaxNetworkRetries: stripe.Int64(0),
		})
	}
	return &Stripe{
		sessions: &session.Client{B: backend, Key: apiKey},
	}
}

// CreateSession opens a one-off payment session with a single line item.
func (s *Stripe) CreateSession(ctx context.Context, in models.CheckoutSessionInput) (*models.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(in.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(in.ProductName),
						Description: stripe.String(in.Description),
					},
					UnitAmount: stripe.Int64(in.UnitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		Metadata:   in.Metadata,
	}
	if in.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(in.CustomerEmail)
	}
	params.Context = ctx

	result, err := s.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe session: %w", err)
	}
	return toCheckoutSession(result), nil
}

// RetrieveSession reads back a session's payment status and metadata.
func (s *Stripe) RetrieveSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	result, err := s.sessions.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) &&
			(stripeErr.HTTPStatusCode == http.StatusNotFound || stripeErr.Code == stripe.ErrorCodeResourceMissing) {
			return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve stripe session %s: %w", sessionID, err)
	}
	return toCheckoutSession(result), nil
}

func toCheckoutSession(cs *stripe.CheckoutSession) *models.CheckoutSession {
	out := &models.CheckoutSession{
		ID:            cs.ID,
		URL:           cs.URL,
		PaymentStatus: string(cs.PaymentStatus),
		AmountTotal:   cs.AmountTotal,
		Metadata:      cs.Metadata,
	}
	if cs.PaymentIntent != nil {
		out.PaymentIntentID = cs.PaymentIntent.ID
	}
	return out
}
