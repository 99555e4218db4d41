package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/githbnaboulsi/shipcore-api/internal/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store serves token and product persistence from a gorm handle.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an already migrated database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindToken returns the record for account, or nil when none exists.
func (s *Store) FindToken(ctx context.Context, account string) (*models.TokenRecord, error) {
	var rec models.TokenRecord
	err := s.db.WithContext(ctx).Where("account = ?", account).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find token for %s: %w", account, err)
	}
	return &rec, nil
}

// UpsertToken inserts rec or overwrites every column of the existing row for
// the same account. Nil expiry fields are written as NULL.
func (s *Store) UpsertToken(ctx context.Context, rec *models.TokenRecord) error {
	if rec.Account == "" {
		return fmt.Errorf("upsert token: account is required")
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account"}},
		UpdateAll: true,
	}).Create(rec).Error
	if err != nil {
		return fmt.Errorf("upsert token for %s: %w", rec.Account, err)
	}
	return nil
}
