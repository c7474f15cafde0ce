package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"invoicepay/database/repository"
	"invoicepay/models"
	"invoicepay/services/processor"
)

type fakeInvoices struct {
	mu        sync.Mutex
	byID      map[string]*models.Invoice
	markErr   error
	markCalls int
}

func newFakeInvoices(invoices ...models.Invoice) *fakeInvoices {
	f := &fakeInvoices{byID: map[string]*models.Invoice{}}
	for i := range invoices {
		inv := invoices[i]
		f.byID[inv.ID] = &inv
	}
	return f
}

func (f *fakeInvoices) GetByID(_ context.Context, id string) (*models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("invoice %s: %w", id, repository.ErrNotFound)
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoices) GetByNumber(_ context.Context, number string) (*models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.byID {
		if inv.InvoiceNumber == number {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeInvoices) Create(_ context.Context, inv models.Invoice) (*models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[inv.ID] = &inv
	return &inv, nil
}

func (f *fakeInvoices) MarkPaid(_ context.Context, id string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markCalls++
	if f.markErr != nil {
		return false, f.markErr
	}
	inv, ok := f.byID[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	if inv.Status == models.InvoiceStatusPaid {
		return false, nil
	}
	inv.Status = models.InvoiceStatusPaid
	inv.UpdatedAt = at
	return true, nil
}

func (f *fakeInvoices) get(id string) models.Invoice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.byID[id]
}

type fakePayments struct {
	mu        sync.Mutex
	bySession map[string]*models.Payment
	createErr error
	markErr   error
}

func newFakePayments() *fakePayments {
	return &fakePayments{bySession: map[string]*models.Payment{}}
}

func (f *fakePayments) Create(_ context.Context, p models.Payment) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, exists := f.bySession[p.StripeSessionID]; exists {
		return nil, repository.ErrDuplicate
	}
	p.ID = "pay-" + p.StripeSessionID
	f.bySession[p.StripeSessionID] = &p
	return &p, nil
}

func (f *fakePayments) GetBySessionID(_ context.Context, sessionID string) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.bySession[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePayments) MarkPaid(_ context.Context, sessionID, paymentIntentID string, paidAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return false, f.markErr
	}
	p, ok := f.bySession[sessionID]
	if !ok {
		return false, repository.ErrNotFound
	}
	if p.Status == models.PaymentStatusPaid {
		return false, nil
	}
	p.Status = models.PaymentStatusPaid
	p.StripePaymentIntentID = paymentIntentID
	p.PaidAt = &paidAt
	p.UpdatedAt = paidAt
	return true, nil
}

func (f *fakePayments) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bySession)
}

type fakeProvider struct {
	mu        sync.Mutex
	created   []models.CheckoutSessionInput
	next      *models.CheckoutSession
	createErr error
	sessions  map[string]*models.CheckoutSession
	getErr    error
	getCalls  int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{sessions: map[string]*models.CheckoutSession{}}
}

func (f *fakeProvider) CreateSession(_ context.Context, in models.CheckoutSessionInput) (*models.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.next == nil {
		return nil, errors.New("no session configured")
	}
	s := *f.next
	s.Metadata = in.Metadata
	f.sessions[s.ID] = &s
	return &s, nil
}

func (f *fakeProvider) RetrieveSession(_ context.Context, sessionID string) (*models.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, processor.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeProvider) complete(sessionID, paymentIntentID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.sessions[sessionID]
	s.PaymentStatus = models.ProviderStatusPaid
	s.PaymentIntentID = paymentIntentID
}
