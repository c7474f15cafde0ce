package invoiceRepo

import (
	"context"
	"time"

	"invoicepay/models"

	"go.uber.org/zap"
)

// CachedInvoiceRepo puts a cache-aside layer in front of number lookups.
// Cache failures are logged and never fail the call.
type CachedInvoiceRepo struct {
	InvoiceRepository
	cache  InvoiceCache
	logger *zap.Logger
}

func NewCachedInvoiceRepo(store InvoiceRepository, cache InvoiceCache, logger *zap.Logger) *CachedInvoiceRepo {
	return &CachedInvoiceRepo{
		InvoiceRepository: store,
		cache:             cache,
		logger:            logger,
	}
}

func (r *CachedInvoiceRepo) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	cached, err := r.cache.Get(ctx, number)
	if err != nil {
		r.logger.Warn("invoice cache read failed", zap.String("invoice_number", number), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	inv, err := r.InvoiceRepository.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, inv); err != nil {
		r.logger.Warn("invoice cache write failed", zap.String("invoice_number", number), zap.Error(err))
	}
	return inv, nil
}

// MarkPaid evicts the cached copy once the status actually changed.
func (r *CachedInvoiceRepo) MarkPaid(ctx context.Context, id string, at time.Time) (bool, error) {
	changed, err := r.InvoiceRepository.MarkPaid(ctx, id, at)
	if err != nil || !changed {
		return changed, err
	}

	inv, err := r.InvoiceRepository.GetByID(ctx, id)
	if err != nil {
		r.logger.Warn("invoice cache eviction lookup failed", zap.String("invoice_id", id), zap.Error(err))
		return changed, nil
	}
	if err := r.cache.Delete(ctx, inv.InvoiceNumber); err != nil {
		r.logger.Warn("invoice cache eviction failed", zap.String("invoice_number", inv.InvoiceNumber), zap.Error(err))
	}
	return changed, nil
}
