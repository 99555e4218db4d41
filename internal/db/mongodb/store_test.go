package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/githbnaboulsi/shipcore-api/internal/db/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestFindToken(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	refreshAt := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	mt.Run("native date", func(mt *mtest.T) {
		store := NewStoreWithCollections(mt.Coll, mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "shipcore.ebay_tokens", mtest.FirstBatch, bson.D{
			{Key: "account", Value: "default"},
			{Key: "env", Value: "production"},
			{Key: "refresh_token", Value: "r"},
			{Key: "refresh_expires_at", Value: refreshAt},
			{Key: "access_expires_at", Value: nil},
		}))

		rec, err := store.FindToken(context.Background(), "default")
		if err != nil {
			mt.Fatalf("find: %v", err)
		}
		if rec == nil || rec.RefreshExpiresAt == nil || !rec.RefreshExpiresAt.Equal(refreshAt) {
			mt.Fatalf("unexpected record: %+v", rec)
		}
		if rec.AccessExpiresAt != nil {
			mt.Fatalf("null access expiry should be absent")
		}
	})

	mt.Run("iso strings", func(mt *mtest.T) {
		store := NewStoreWithCollections(mt.Coll, mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "shipcore.ebay_tokens", mtest.FirstBatch, bson.D{
			{Key: "account", Value: "default"},
			{Key: "refresh_expires_at", Value: "2027-01-01T00:00:00"},
			{Key: "issued_at", Value: "not a date"},
		}))

		rec, err := store.FindToken(context.Background(), "default")
		if err != nil {
			mt.Fatalf("find: %v", err)
		}
		if rec.RefreshExpiresAt == nil || !rec.RefreshExpiresAt.Equal(refreshAt) {
			mt.Fatalf("naive string should be read as UTC, got %v", rec.RefreshExpiresAt)
		}
		if !rec.IssuedAt.IsZero() {
			mt.Fatalf("unparsable issued_at should be left empty, got %s", rec.IssuedAt)
		}
	})

	mt.Run("missing", func(mt *mtest.T) {
		store := NewStoreWithCollections(mt.Coll, mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "shipcore.ebay_tokens", mtest.FirstBatch))

		rec, err := store.FindToken(context.Background(), "default")
		if err != nil {
			mt.Fatalf("find: %v", err)
		}
		if rec != nil {
			mt.Fatalf("expected nil, got %+v", rec)
		}
	})
}

func TestUpsertToken(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		store := NewStoreWithCollections(mt.Coll, mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "x"}}}},
		))

		err := store.UpsertToken(context.Background(), &models.TokenRecord{Account: "default", IssuedAt: time.Now().UTC()})
		if err != nil {
			mt.Fatalf("upsert: %v", err)
		}
	})

	mt.Run("write error", func(mt *mtest.T) {
		store := NewStoreWithCollections(mt.Coll, mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		if err := store.UpsertToken(context.Background(), &models.TokenRecord{Account: "default"}); err == nil {
			mt.Fatal("expected write error")
		}
	})

	mt.Run("requires account", func(mt *mtest.T) {
		store := NewStoreWithCollections(mt.Coll, mt.Coll)
		if err := store.UpsertToken(context.Background(), &models.TokenRecord{}); err == nil {
			mt.Fatal("expected error for empty account")
		}
	})
}

func TestListProducts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("two documents", func(mt *mtest.T) {
		store := NewStoreWithCollections(mt.Coll, mt.Coll)
		first := mtest.CreateCursorResponse(1, "shipcore.product", mtest.FirstBatch, bson.D{
			{Key: "upc", Value: "1"}, {Key: "brand", Value: "Acme"},
		})
		second := mtest.CreateCursorResponse(1, "shipcore.product", mtest.NextBatch, bson.D{
			{Key: "upc", Value: "2"}, {Key: "brand", Value: "Globex"},
		})
		done := mtest.CreateCursorResponse(0, "shipcore.product", mtest.NextBatch)
		mt.AddMockResponses(first, second, done)

		products, err := store.ListProducts(context.Background())
		if err != nil {
			mt.Fatalf("list: %v", err)
		}
		if len(products) != 2 || products[1]["brand"] != "Globex" {
			mt.Fatalf("unexpected products: %#v", products)
		}
	})
}
