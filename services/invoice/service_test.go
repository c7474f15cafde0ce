package invoice

import (
	"context"
	"errors"
	"testing"
	"time"

	"invoicepay/database/repository"
	"invoicepay/models"
	"invoicepay/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryRepo struct {
	invoices  map[string]models.Invoice
	createErr error
	getErr    error
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*models.Invoice, error) {
	for _, inv := range m.invoices {
		if inv.ID == id {
			return &inv, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryRepo) GetByNumber(_ context.Context, number string) (*models.Invoice, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	inv, ok := m.invoices[number]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &inv, nil
}

func (m *memoryRepo) Create(_ context.Context, inv models.Invoice) (*models.Invoice, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	inv.ID = "generated-id"
	m.invoices[inv.InvoiceNumber] = inv
	return &inv, nil
}

func (m *memoryRepo) MarkPaid(context.Context, string, time.Time) (bool, error) {
	return false, nil
}

func newService(repo *memoryRepo) *DefaultInvoiceService {
	return &DefaultInvoiceService{
		Repo:   repo,
		Logger: zap.NewNop(),
		Now:    func() time.Time { return time.UnixMilli(1767225600123) },
	}
}

func TestFindByNumber(t *testing.T) {
	repo := &memoryRepo{invoices: map[string]models.Invoice{
		"INV-001": {ID: "inv-001-id", InvoiceNumber: "INV-001", Amount: decimal.RequireFromString("150")},
	}}
	svc := newService(repo)

	inv, err := svc.FindByNumber(context.Background(), "  INV-001 ")
	require.NoError(t, err)
	assert.Equal(t, "inv-001-id", inv.ID)

	_, err = svc.FindByNumber(context.Background(), "INV-404")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	assert.Equal(t, "Invoice not found", utils.Message(err))

	_, err = svc.FindByNumber(context.Background(), "   ")
	assert.Equal(t, utils.KindInvalidArgument, utils.KindOf(err))

	repo.getErr = errors.New("server selection timeout")
	_, err = svc.FindByNumber(context.Background(), "INV-001")
	assert.Equal(t, utils.KindPersistence, utils.KindOf(err))
}

func TestCreateManual(t *testing.T) {
	repo := &memoryRepo{invoices: map[string]models.Invoice{}}
	svc := newService(repo)

	inv, err := svc.CreateManual(context.Background(), models.ManualInvoiceInput{
		CustomerName:  "Bob",
		CustomerEmail: "bob@example.com",
		Amount:        "99.50",
		Currency:      "usd",
	})

	require.NoError(t, err)
	assert.Equal(t, "MANUAL-1767225600123", inv.InvoiceNumber)
	assert.Equal(t, "USD", inv.Currency)
	assert.Equal(t, "Manual payment entry", inv.Description)
	assert.Equal(t, models.InvoiceStatusPending, inv.Status)
	assert.True(t, inv.Amount.Equal(decimal.RequireFromString("99.5")))
	assert.Contains(t, repo.invoices, "MANUAL-1767225600123")
}

func TestCreateManual_DefaultsCurrency(t *testing.T) {
	svc := newService(&memoryRepo{invoices: map[string]models.Invoice{}})

	inv, err := svc.CreateManual(context.Background(), models.ManualInvoiceInput{
		CustomerName:  "Bob",
		CustomerEmail: "bob@example.com",
		Amount:        "10",
		Description:   "Deposit",
	})

	require.NoError(t, err)
	assert.Equal(t, models.DefaultCurrency, inv.Currency)
	assert.Equal(t, "Deposit", inv.Description)
}

func TestCreateManual_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input models.ManualInvoiceInput
		want  string
	}{
		{"missing name", models.ManualInvoiceInput{CustomerEmail: "a@b.c", Amount: "1"}, "Please fill in all required fields"},
		{"missing amount", models.ManualInvoiceInput{CustomerName: "A", CustomerEmail: "a@b.c"}, "Please fill in all required fields"},
		{"zero amount", models.ManualInvoiceInput{CustomerName: "A", CustomerEmail: "a@b.c", Amount: "0"}, "Please enter a valid amount"},
		{"negative amount", models.ManualInvoiceInput{CustomerName: "A", CustomerEmail: "a@b.c", Amount: "-5"}, "Please enter a valid amount"},
		{"not a number", models.ManualInvoiceInput{CustomerName: "A", CustomerEmail: "a@b.c", Amount: "ten"}, "Please enter a valid amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryRepo{invoices: map[string]models.Invoice{}}

			_, err := newService(repo).CreateManual(context.Background(), tt.input)

			assert.Equal(t, utils.KindInvalidArgument, utils.KindOf(err))
			assert.Equal(t, tt.want, utils.Message(err))
			assert.Empty(t, repo.invoices)
		})
	}
}

func TestCreateManual_StoreFailure(t *testing.T) {
	repo := &memoryRepo{invoices: map[string]models.Invoice{}, createErr: repository.ErrDuplicate}

	_, err := newService(repo).CreateManual(context.Background(), models.ManualInvoiceInput{
		CustomerName: "A", CustomerEmail: "a@b.c", Amount: "1",
	})

	assert.Equal(t, utils.KindPersistence, utils.KindOf(err))
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}
