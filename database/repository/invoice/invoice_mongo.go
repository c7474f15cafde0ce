package invoiceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"invoicepay/database/repository"
	"invoicepay/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "invoices"

// MongoInvoiceRepo implements InvoiceRepository using MongoDB.
type MongoInvoiceRepo struct {
	coll *mongo.Collection
}

// NewMongoInvoiceRepo binds the invoices collection and makes sure its
// indexes exist.
func NewMongoInvoiceRepo(ctx context.Context, db *mongo.Database) (*MongoInvoiceRepo, error) {
	repo := &MongoInvoiceRepo{coll: db.Collection(collectionName)}
	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

type invoiceDoc struct {
	ID            string               `bson:"id"`
	InvoiceNumber string               `bson:"invoice_number"`
	CustomerName  string               `bson:"customer_name"`
	CustomerEmail string               `bson:"customer_email,omitempty"`
	Amount        primitive.Decimal128 `bson:"amount"`
	Currency      string               `bson:"currency"`
	Description   string               `bson:"description,omitempty"`
	Status        string               `bson:"status"`
	DueDate       *time.Time           `bson:"due_date,omitempty"`
	CreatedAt     time.Time            `bson:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at"`
}

func toDoc(inv models.Invoice) (invoiceDoc, error) {
	amount, err := repository.ToDecimal128(inv.Amount)
	if err != nil {
		return invoiceDoc{}, err
	}
	return invoiceDoc{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerName:  inv.CustomerName,
		CustomerEmail: inv.CustomerEmail,
		Amount:        amount,
		Currency:      inv.Currency,
		Description:   inv.Description,
		Status:        inv.Status,
		DueDate:       inv.DueDate,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}, nil
}

func (d invoiceDoc) toModel() (*models.Invoice, error) {
	amount, err := repository.FromDecimal128(d.Amount)
	if err != nil {
		return nil, err
	}
	return &models.Invoice{
		ID:            d.ID,
		InvoiceNumber: d.InvoiceNumber,
		CustomerName:  d.CustomerName,
		CustomerEmail: d.CustomerEmail,
		Amount:        amount,
		Currency:      d.Currency,
		Description:   d.Description,
		Status:        d.Status,
		DueDate:       d.DueDate,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

func (r *MongoInvoiceRepo) findOne(ctx context.Context, filter bson.M) (*models.Invoice, error) {
	var doc invoiceDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toModel()
}

// GetByID returns the invoice with the given opaque id.
func (r *MongoInvoiceRepo) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	inv, err := r.findOne(ctx, bson.M{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoice with id %s: %w", id, err)
	}
	return inv, nil
}

// GetByNumber returns the invoice with the given human-facing number.
func (r *MongoInvoiceRepo) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	inv, err := r.findOne(ctx, bson.M{"invoice_number": number})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoice %s: %w", number, err)
	}
	return inv, nil
}

// Create inserts a new invoice, assigning an id and timestamps when unset.
func (r *MongoInvoiceRepo) Create(ctx context.Context, invoice models.Invoice) (*models.Invoice, error) {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = now
	}
	invoice.UpdatedAt = now

	doc, err := toDoc(invoice)
	if err != nil {
		return nil, err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("invoice %s: %w", invoice.InvoiceNumber, repository.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to insert invoice: %w", err)
	}
	return &invoice, nil
}

// MarkPaid sets status=paid only when the invoice is not paid yet.
func (r *MongoInvoiceRepo) MarkPaid(ctx context.Context, id string, at time.Time) (bool, error) {
	filter := bson.M{"id": id, "status": bson.M{"$ne": models.InvoiceStatusPaid}}
	update := bson.M{"$set": bson.M{
		"status":     models.InvoiceStatusPaid,
		"updated_at": at,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update invoice %s: %w", id, err)
	}
	if res.MatchedCount > 0 {
		return true, nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("failed to check invoice %s: %w", id, err)
	}
	if n == 0 {
		return false, fmt.Errorf("invoice %s: %w", id, repository.ErrNotFound)
	}
	return false, nil
}
