package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment record statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Payment tracks one checkout attempt for an invoice. Amount and currency are
// copied from the invoice when the attempt starts.
type Payment struct {
	ID                    string          `json:"id"`
	InvoiceID             string          `json:"invoice_id"`
	StripeSessionID       string          `json:"stripe_session_id"`
	StripePaymentIntentID string          `json:"stripe_payment_intent_id,omitempty"`
	Amount                decimal.Decimal `json:"amount"`
	Currency              string          `json:"currency"`
	Status                string          `json:"status"`
	PaidAt                *time.Time      `json:"paid_at,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}
