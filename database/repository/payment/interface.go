package paymentRepo

import (
	"context"
	"time"

	"invoicepay/models"
)

// PaymentRepository is the Payment Record Store.
type PaymentRepository interface {
	Create(ctx context.Context, payment models.Payment) (*models.Payment, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.Payment, error)
	// MarkPaid performs the guarded pending→paid transition for the record
	// keyed by sessionID. It reports whether this call changed the record; a
	// record that is already paid is left untouched and is not an error.
	MarkPaid(ctx context.Context, sessionID, paymentIntentID string, paidAt time.Time) (bool, error)
}
