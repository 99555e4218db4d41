// Package mongodb implements the token and product stores on a MongoDB
// database, using the collection names of the relational schema.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/githbnaboulsi/shipcore-api/internal/auth/token"
	"github.com/githbnaboulsi/shipcore-api/internal/db/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is backed by two collections of one database.
type Store struct {
	tokens   *mongo.Collection
	products *mongo.Collection
}

// Connect opens a client for uri and pings it. The client is meant to live
// for the whole process.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	log.Printf("📦 MongoDB connected")
	return client, nil
}

// NewStore uses database for both collections.
func NewStore(database *mongo.Database) *Store {
	return NewStoreWithCollections(
		database.Collection(models.TokenRecord{}.TableName()),
		database.Collection(models.Product{}.TableName()),
	)
}

// NewStoreWithCollections wires explicit collections.
func NewStoreWithCollections(tokens, products *mongo.Collection) *Store {
	return &Store{tokens: tokens, products: products}
}

// tokenDocument mirrors models.TokenRecord with loosely typed timestamps;
// documents written by other tools may hold ISO strings instead of dates.
type tokenDocument struct {
	Account          string        `bson:"account"`
	Environment      string        `bson:"env"`
	TokenType        string        `bson:"token_type"`
	Scope            string        `bson:"scope"`
	AccessToken      string        `bson:"access_token"`
	RefreshToken     string        `bson:"refresh_token"`
	AccessExpiresIn  *int64        `bson:"access_expires_in"`
	RefreshExpiresIn *int64        `bson:"refresh_expires_in"`
	AccessExpiresAt  bson.RawValue `bson:"access_expires_at"`
	RefreshExpiresAt bson.RawValue `bson:"refresh_expires_at"`
	IssuedAt         bson.RawValue `bson:"issued_at"`
}

// FindToken implements token.Store.
func (s *Store) FindToken(ctx context.Context, account string) (*models.TokenRecord, error) {
	var doc tokenDocument
	err := s.tokens.FindOne(ctx, bson.M{"account": account}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find token for %s: %w", account, err)
	}

	rec := &models.TokenRecord{
		Account:          doc.Account,
		Environment:      doc.Environment,
		TokenType:        doc.TokenType,
		Scope:            doc.Scope,
		AccessToken:      doc.AccessToken,
		RefreshToken:     doc.RefreshToken,
		AccessExpiresIn:  doc.AccessExpiresIn,
		RefreshExpiresIn: doc.RefreshExpiresIn,
		AccessExpiresAt:  rawTime(doc.AccessExpiresAt),
		RefreshExpiresAt: rawTime(doc.RefreshExpiresAt),
	}
	if issued := rawTime(doc.IssuedAt); issued != nil {
		rec.IssuedAt = *issued
	}
	return rec, nil
}

// UpsertToken implements token.Store with a keyed full-document replace.
func (s *Store) UpsertToken(ctx context.Context, rec *models.TokenRecord) error {
	if rec.Account == "" {
		return fmt.Errorf("upsert token: account is required")
	}
	_, err := s.tokens.ReplaceOne(ctx,
		bson.M{"account": rec.Account},
		rec,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert token for %s: %w", rec.Account, err)
	}
	return nil
}

// InsertProduct stores doc unchanged.
func (s *Store) InsertProduct(ctx context.Context, doc map[string]interface{}) error {
	if _, err := s.products.InsertOne(ctx, bson.M(doc)); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// ListProducts returns every product without its _id.
func (s *Store) ListProducts(ctx context.Context) ([]map[string]interface{}, error) {
	cursor, err := s.products.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 0}))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []map[string]interface{}{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, map[string]interface{}(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// rawTime accepts BSON dates and ISO-8601 strings; anything else is absent.
func rawTime(v bson.RawValue) *time.Time {
	switch v.Type {
	case bson.TypeDateTime:
		return token.CoerceUTC(v.Time())
	case bson.TypeString:
		return token.CoerceUTC(v.StringValue())
	default:
		return nil
	}
}
