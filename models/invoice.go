package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses. Only pending→paid is driven by this service.
const (
	InvoiceStatusPending   = "pending"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// DefaultCurrency applies when an invoice is entered without one.
const DefaultCurrency = "AED"

// Invoice is a customer-facing bill located by its invoice number.
type Invoice struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	Amount        decimal.Decimal `json:"amount"`   // Major units.
	Currency      string          `json:"currency"` // ISO 4217.
	Description   string          `json:"description,omitempty"`
	Status        string          `json:"status"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ManualInvoiceInput is the payload of the manual payment entry path.
type ManualInvoiceInput struct {
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerEmail string `json:"customerEmail" binding:"required,email"`
	Amount        string `json:"amount" binding:"required"`
	Currency      string `json:"currency"`
	Description   string `json:"description"`
}
