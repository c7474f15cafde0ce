package paymentRepo

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

const collectionName = "payments"

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

func NewMongoPaymentRepo(ctx context.Context, db *mongo.Database) (*MongoPaymentRepo, error) {
	repo := &MongoPaymentRepo{coll: db.Collection(collectionName)}
	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

type paymentDoc struct {
	ID                    string               `bson:"id"`
	InvoiceID             string               `bson:"invoice_id"`
	StripeSessionID       string               `bson:"stripe_session_id"`
	StripePaymentIntentID string               `bson:"stripe_payment_intent_id,omitempty"`
	Amount                primitive.Decimal128 `bson:"amount"`
	Currency              string               `bson:"currency"`
	Status                string               `bson:"status"`
	PaidAt                *time.Time           `bson:"paid_at,omitempty"`
	CreatedAt             time.Time            `bson:"created_at"`
	UpdatedAt             time.Time            `bson:"updated_at"`
}

func (d paymentDoc) toModel() (*models.Payment, error) {
	amount, err := repository.FromDecimal128(d.Amount)
	if err != nil {
		return nil, err
	}
	return &models.Payment{
		ID:                    d.ID,
		InvoiceID:             d.InvoiceID,
		StripeSessionID:       d.StripeSessionID,
		StripePaymentIntentID: d.StripePaymentIntentID,
		Amount:                amount,
		Currency:              d.Currency,
		Status:                d.Status,
		PaidAt:                d.PaidAt,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}, nil
}

// Create inserts a payment record, assigning an id and timestamps.
func (r *MongoPaymentRepo) Create(ctx context.Context, payment models.Payment) (*models.Payment, error) {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	amount, err := repository.ToDecimal128(payment.Amount)
	if err != nil {
		return nil, err
	}
	doc := paymentDoc{
		ID:                    payment.ID,
		InvoiceID:             payment.InvoiceID,
		StripeSessionID:       payment.StripeSessionID,
		StripePaymentIntentID: payment.StripePaymentIntentID,
		Amount:                amount,
		Currency:              payment.Currency,
		Status:                payment.Status,
		PaidAt:                payment.PaidAt,
		CreatedAt:             payment.CreatedAt,
		UpdatedAt:             payment.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("payment for session %s: %w", payment.StripeSessionID, repository.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}
	return &payment, nil
}

// GetBySessionID returns the record created for a checkout session.
func (r *MongoPaymentRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Payment, error) {
	var doc paymentDoc
	if err := r.coll.FindOne(ctx, bson.M{"stripe_session_id": sessionID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("payment for session %s: %w", sessionID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch payment for session %s: %w", sessionID, err)
	}
	return doc.toModel()
}

// MarkPaid only matches records that are not paid yet, so repeated or
// concurrent calls leave paid_at at its first value.
func (r *MongoPaymentRepo) MarkPaid(ctx context.Context, sessionID, paymentIntentID string, paidAt time.Time) (bool, error) {
	filter := bson.M{
		"stripe_session_id": sessionID,
		"status":            bson.M{"$ne": models.PaymentStatusPaid},
	}
	update := bson.M{"$set": bson.M{
		"status":                   models.PaymentStatusPaid,
		"stripe_payment_intent_id": paymentIntentID,
		"paid_at":                  paidAt,
		"updated_at":               paidAt,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update payment for session %s: %w", sessionID, err)
	}
	if res.MatchedCount > 0 {
		return true, nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"stripe_session_id": sessionID})
	if err != nil {
		return false, fmt.Errorf("failed to check payment for session %s: %w", sessionID, err)
	}
	if n == 0 {
		return false, fmt.Errorf("payment for session %s: %w", sessionID, repository.ErrNotFound)
	}
	return false, nil
}
