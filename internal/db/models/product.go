package models

import "time"

// Product is a catalog entry. Document holds the full JSON body as submitted;
// the indexed columns are copied out of it.
type Product struct {
	ID        string `gorm:"primaryKey"` // UUID
	UPC       string `gorm:"index"`
	MPN       string
	Category  string `gorm:"index"`
	Brand     string
	Document  string // raw JSON object
	CreatedAt time.Time
}

func (Product) TableName() string {
	return "product"
}
