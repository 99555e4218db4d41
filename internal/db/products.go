package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/githbnaboulsi/shipcore-api/internal/db/models"
	"github.com/google/uuid"
)

// InsertProduct stores doc as-is. The upc, mpn, category and brand fields are
// also copied into indexed columns.
func (s *Store) InsertProduct(ctx context.Context, doc map[string]interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}
	product := models.Product{
		ID:        uuid.New().String(),
		UPC:       stringField(doc, "upc"),
		MPN:       stringField(doc, "mpn"),
		Category:  stringField(doc, "category"),
		Brand:     stringField(doc, "brand"),
		Document:  string(raw),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// ListProducts returns every stored product document in insertion order.
func (s *Store) ListProducts(ctx context.Context) ([]map[string]interface{}, error) {
	var rows []models.Product
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		var doc map[string]interface{}
		if err := json.Unmarshal([]byte(row.Document), &doc); err != nil {
			return nil, fmt.Errorf("decode product %s: %w", row.ID, err)
		}
		products = append(products, doc)
	}
	return products, nil
}

func stringField(doc map[string]interface{}, key string) string {
	v, ok := doc[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
