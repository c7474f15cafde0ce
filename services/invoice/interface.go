package invoice

import (
	"context"

	"invoicepay/models"
)

// InvoiceService covers the invoice side of the payment portal: locating an
// invoice by number and entering one by hand.
type InvoiceService interface {
	FindByNumber(ctx context.Context, number string) (*models.Invoice, error)
	CreateManual(ctx context.Context, input models.ManualInvoiceInput) (*models.Invoice, error)
}
