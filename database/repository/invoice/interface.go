package invoiceRepo

import (
	"context"
	"time"

	"invoicepay/models"
)

// InvoiceRepository is the Invoice Store.
type InvoiceRepository interface {
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*models.Invoice, error)
	Create(ctx context.Context, invoice models.Invoice) (*models.Invoice, error)
	// MarkPaid moves a non-paid invoice to paid. It reports whether this call
	// changed the invoice; an already paid invoice is a successful no-op.
	MarkPaid(ctx context.Context, id string, at time.Time) (bool, error)
}
