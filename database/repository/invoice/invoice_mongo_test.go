package invoiceRepo

import (
	"context"
	"testing"
	"time"

	"invoicepay/database/repository"
	"invoicepay/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func cursorResponse(mt *mtest.T, docs ...bson.D) bson.D {
	ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, docs...)
}

func TestMongoInvoiceRepo_MarkPaid(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	matched := func(n int32) bson.D {
		return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n}, bson.E{Key: "nModified", Value: n})
	}

	tests := []struct {
		name        string
		responses   func(mt *mtest.T) []bson.D
		wantChanged bool
		wantErr     error
		wantCmds    []string
	}{
		{
			name:        "pending invoice",
			responses:   func(*mtest.T) []bson.D { return []bson.D{matched(1)} },
			wantChanged: true,
			wantCmds:    []string{"update"},
		},
		{
			name: "already paid",
			responses: func(mt *mtest.T) []bson.D {
				return []bson.D{matched(0), cursorResponse(mt, bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: 1}})}
			},
			wantCmds: []string{"update", "aggregate"},
		},
		{
			name:      "missing",
			responses: func(mt *mtest.T) []bson.D { return []bson.D{matched(0), cursorResponse(mt)} },
			wantErr:   repository.ErrNotFound,
			wantCmds:  []string{"update", "aggregate"},
		},
	}

	for _, tt := range tests {
		mt.Run(tt.name, func(mt *mtest.T) {
			repo := &MongoInvoiceRepo{coll: mt.Coll}
			mt.AddMockResponses(tt.responses(mt)...)

			changed, err := repo.MarkPaid(context.Background(), "inv-001-id", at)

			if tt.wantErr != nil {
				assert.ErrorIs(mt, err, tt.wantErr)
			} else {
				require.NoError(mt, err)
			}
			assert.Equal(mt, tt.wantChanged, changed)

			var cmds []string
			for e := mt.GetStartedEvent(); e != nil; e = mt.GetStartedEvent() {
				if e.CommandName == "update" {
					q := e.Command.Lookup("updates", "0", "q").Document()
					assert.Equal(mt, "inv-001-id", q.Lookup("id").StringValue())
					assert.Equal(mt, models.InvoiceStatusPaid, q.Lookup("status", "$ne").StringValue())
				}
				cmds = append(cmds, e.CommandName)
			}
			assert.Equal(mt, tt.wantCmds, cmds)
		})
	}
}

func TestMongoInvoiceRepo_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	inv := models.Invoice{
		InvoiceNumber: "INV-001",
		CustomerName:  "Acme",
		Amount:        decimal.RequireFromString("19.995"),
		Currency:      "AED",
		Status:        models.InvoiceStatusPending,
	}

	mt.Run("stores amount as decimal128", func(mt *mtest.T) {
		repo := &MongoInvoiceRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		created, err := repo.Create(context.Background(), inv)

		require.NoError(mt, err)
		assert.NotEmpty(mt, created.ID)
		doc := mt.GetStartedEvent().Command.Lookup("documents", "0").Document()
		assert.Equal(mt, "19.995", doc.Lookup("amount").Decimal128().String())
	})

	mt.Run("duplicate number", func(mt *mtest.T) {
		repo := &MongoInvoiceRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error",
		}))

		_, err := repo.Create(context.Background(), inv)

		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})
}

func TestMongoInvoiceRepo_GetByNumber(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := &MongoInvoiceRepo{coll: mt.Coll}
		amount, err := primitive.ParseDecimal128("150.00")
		require.NoError(mt, err)
		mt.AddMockResponses(cursorResponse(mt, bson.D{
			{Key: "id", Value: "inv-001-id"},
			{Key: "invoice_number", Value: "INV-001"},
			{Key: "amount", Value: amount},
			{Key: "currency", Value: "AED"},
			{Key: "status", Value: models.InvoiceStatusPending},
		}))

		inv, err := repo.GetByNumber(context.Background(), "INV-001")

		require.NoError(mt, err)
		assert.Equal(mt, "inv-001-id", inv.ID)
		assert.True(mt, inv.Amount.Equal(decimal.RequireFromString("150")))
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := &MongoInvoiceRepo{coll: mt.Coll}
		mt.AddMockResponses(cursorResponse(mt))

		_, err := repo.GetByNumber(context.Background(), "INV-404")

		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}
