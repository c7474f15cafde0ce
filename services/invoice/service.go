package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"invoicepay/database/repository"
	invoiceRepo "invoicepay/database/repository/invoice"
	"invoicepay/models"
	"invoicepay/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultManualDescription = "Manual payment entry"

// DefaultInvoiceService implements InvoiceService.
type DefaultInvoiceService struct {
	Repo   invoiceRepo.InvoiceRepository
	Logger *zap.Logger
	Now    func() time.Time
}

func (s *DefaultInvoiceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultInvoiceService) FindByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, utils.InvalidArgument("Please enter an invoice number")
	}

	inv, err := s.Repo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("Invoice not found", err)
		}
		s.Logger.Error("invoice lookup failed", zap.String("invoice_number", number), zap.Error(err))
		return nil, utils.PersistenceError("Failed to find invoice", err)
	}
	return inv, nil
}

// CreateManual stores a pending invoice for a payment entered without an
// existing invoice. Its number is MANUAL-<unix milliseconds>.
func (s *DefaultInvoiceService) CreateManual(ctx context.Context, input models.ManualInvoiceInput) (*models.Invoice, error) {
	name := strings.TrimSpace(input.CustomerName)
	email := strings.TrimSpace(input.CustomerEmail)
	if name == "" || email == "" || strings.TrimSpace(input.Amount) == "" {
		return nil, utils.InvalidArgument("Please fill in all required fields")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(input.Amount))
	if err != nil || !amount.IsPositive() {
		return nil, utils.InvalidArgument("Please enter a valid amount")
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = models.DefaultCurrency
	}
	if len(currency) != 3 {
		return nil, utils.InvalidArgument(fmt.Sprintf("Unsupported currency %q", input.Currency))
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = defaultManualDescription
	}

	now := s.now()
	inv, err := s.Repo.Create(ctx, models.Invoice{
		InvoiceNumber: fmt.Sprintf("MANUAL-%d", now.UnixMilli()),
		CustomerName:  name,
		CustomerEmail: email,
		Amount:        amount,
		Currency:      currency,
		Description:   description,
		Status:        models.InvoiceStatusPending,
		CreatedAt:     now.UTC(),
	})
	if err != nil {
		s.Logger.Error("manual invoice creation failed", zap.Error(err))
		return nil, utils.PersistenceError("Payment setup failed", err)
	}

	s.Logger.Info("manual invoice created",
		zap.String("invoice_id", inv.ID),
		zap.String("invoice_number", inv.InvoiceNumber),
	)
	return inv, nil
}
