package models

import "time"

// TokenRecord is the latest marketplace OAuth grant for one account.
// Each successful exchange replaces the whole row.
type TokenRecord struct {
	Account          string     `gorm:"primaryKey" json:"account" bson:"account"`
	Environment      string     `json:"env" bson:"env"`
	TokenType        string     `json:"token_type" bson:"token_type"`
	Scope            string     `json:"scope" bson:"scope"`
	AccessToken      string     `json:"-" bson:"access_token"`
	RefreshToken     string     `json:"-" bson:"refresh_token"`
	AccessExpiresIn  *int64     `json:"access_expires_in" bson:"access_expires_in"`
	RefreshExpiresIn *int64     `json:"refresh_expires_in" bson:"refresh_expires_in"`
	AccessExpiresAt  *time.Time `json:"access_expires_at" bson:"access_expires_at"`
	RefreshExpiresAt *time.Time `json:"refresh_expires_at" bson:"refresh_expires_at"`
	IssuedAt         time.Time  `json:"issued_at" bson:"issued_at"`
}

// TableName keeps the collection name used by the document store.
func (TokenRecord) TableName() string {
	return "ebay_tokens"
}
