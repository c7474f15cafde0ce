package invoiceRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"invoicepay/models"

	"github.com/go-redis/redis/v8"
)

// InvoiceCache holds invoices keyed by invoice number. Get returns nil, nil
// on a miss.
type InvoiceCache interface {
	Get(ctx context.Context, number string) (*models.Invoice, error)
	Set(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, number string) error
}

// RedisInvoiceCache stores invoices as JSON strings with a TTL.
type RedisInvoiceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisInvoiceCache(client *redis.Client, ttl time.Duration) *RedisInvoiceCache {
	return &RedisInvoiceCache{client: client, ttl: ttl}
}

func cacheKey(number string) string {
	return fmt.Sprintf("invoice:number:%s", number)
}

func (c *RedisInvoiceCache) Get(ctx context.Context, number string) (*models.Invoice, error) {
	data, err := c.client.Get(ctx, cacheKey(number)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get error: %w", err)
	}

	var inv models.Invoice
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached invoice: %w", err)
	}
	return &inv, nil
}

func (c *RedisInvoiceCache) Set(ctx context.Context, invoice *models.Invoice) error {
	data, err := json.Marshal(invoice)
	if err != nil {
		return fmt.Errorf("failed to marshal invoice: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(invoice.InvoiceNumber), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

func (c *RedisInvoiceCache) Delete(ctx context.Context, number string) error {
	if err := c.client.Del(ctx, cacheKey(number)).Err(); err != nil {
		return fmt.Errorf("redis del error: %w", err)
	}
	return nil
}
