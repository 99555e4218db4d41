package db

import (
	"context"
	"testing"
	"time"

	"github.com/githbnaboulsi/shipcore-api/internal/db/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.New().String()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestFindToken_Missing(t *testing.T) {
	store := NewStore(newTestDB(t))

	rec, err := store.FindToken(context.Background(), "default")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record, got %+v", rec)
	}
}

func TestUpsertToken_ReplacesEveryColumn(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	issued := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	refreshIn := int64(47304000)
	refreshAt := issued.Add(time.Duration(refreshIn) * time.Second)
	first := &models.TokenRecord{
		Account:          "default",
		Environment:      "production",
		AccessToken:      "access-1",
		RefreshToken:     "refresh-1",
		RefreshExpiresIn: &refreshIn,
		RefreshExpiresAt: &refreshAt,
		IssuedAt:         issued,
	}
	if err := store.UpsertToken(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := &models.TokenRecord{
		Account:     "default",
		Environment: "production",
		AccessToken: "access-2",
		IssuedAt:    issued.Add(time.Hour),
	}
	if err := store.UpsertToken(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int64
	store.db.Model(&models.TokenRecord{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one record, got %d", count)
	}

	rec, err := store.FindToken(ctx, "default")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if rec.AccessToken != "access-2" || rec.RefreshToken != "" {
		t.Errorf("tokens not replaced: %+v", rec)
	}
	if rec.RefreshExpiresAt != nil || rec.RefreshExpiresIn != nil {
		t.Errorf("refresh expiry should be cleared, got at=%v in=%v", rec.RefreshExpiresAt, rec.RefreshExpiresIn)
	}
	if !rec.IssuedAt.Equal(issued.Add(time.Hour)) {
		t.Errorf("issued_at = %s", rec.IssuedAt)
	}
}

func TestUpsertToken_KeyedByAccount(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	for _, account := range []string{"default", "outlet"} {
		if err := store.UpsertToken(ctx, &models.TokenRecord{Account: account, AccessToken: account, IssuedAt: time.Now().UTC()}); err != nil {
			t.Fatalf("upsert %s: %v", account, err)
		}
	}

	rec, _ := store.FindToken(ctx, "outlet")
	if rec == nil || rec.AccessToken != "outlet" {
		t.Fatalf("expected outlet record, got %+v", rec)
	}
}

func TestUpsertToken_RequiresAccount(t *testing.T) {
	store := NewStore(newTestDB(t))
	if err := store.UpsertToken(context.Background(), &models.TokenRecord{}); err == nil {
		t.Fatal("expected error for empty account")
	}
}

func TestProducts_InsertAndList(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	doc := map[string]interface{}{
		"upc":      "012345678905",
		"mpn":      "MPN-1",
		"category": "Tools",
		"brand":    "Acme",
		"price":    19.99,
	}
	if err := store.InsertProduct(ctx, doc); err != nil {
		t.Fatalf("insert: %v", err)
	}

	products, err := store.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if products[0]["brand"] != "Acme" || products[0]["price"] != 19.99 {
		t.Errorf("document not preserved: %#v", products[0])
	}

	var row models.Product
	store.db.First(&row)
	if row.UPC != "012345678905" || row.Category != "Tools" {
		t.Errorf("indexed columns not populated: %+v", row)
	}
}

func TestInitDB_UnknownDriver(t *testing.T) {
	if _, err := InitDB("oracle", "x", "silent"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
