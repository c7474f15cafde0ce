package models

import "github.com/shopspring/decimal"

// CreateCheckoutRequest starts a hosted checkout for an invoice. Field
// checks happen in the operation so rejections carry its messages.
type CreateCheckoutRequest struct {
	InvoiceID     string `json:"invoiceId"`
	CustomerEmail string `json:"customerEmail"`
	CustomerName  string `json:"customerName"`
}

type CreateCheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// VerifyPaymentRequest reconciles a returning checkout session.
type VerifyPaymentRequest struct {
	SessionID string `json:"sessionId"`
}

type VerifyPaymentResponse struct {
	Status        string `json:"status"`
	InvoiceNumber string `json:"invoiceNumber,omitempty"`
}

// Provider payment statuses as reported by the hosted checkout.
const (
	ProviderStatusPaid              = "paid"
	ProviderStatusUnpaid            = "unpaid"
	ProviderStatusNoPaymentRequired = "no_payment_required"
)

// Session metadata keys attached at creation and read back on verification.
const (
	MetadataInvoiceID     = "invoice_id"
	MetadataInvoiceNumber = "invoice_number"
)

// CheckoutSessionInput is what the checkout provider needs to open a session
// for a single line item.
type CheckoutSessionInput struct {
	UnitAmount    int64 // Minor units.
	Currency      string
	ProductName   string
	Description   string
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
	Metadata      map[string]string
}

// CheckoutSession is the provider's view of a session.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentStatus   string
	PaymentIntentID string
	AmountTotal     int64
	Metadata        map[string]string
}

// MinorUnits converts a major-unit amount to minor units, rounding half away
// from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
