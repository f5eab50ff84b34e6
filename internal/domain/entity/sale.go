package entity

import (
	"encoding/json"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultCustomer is recorded when no customer name is supplied
const DefaultCustomer = "Walk-in"

// Sale is a single line item in the sale ledger. Ledger entries are facts:
// they are written once at checkout commit and never updated or deleted.
// ProductName is a denormalized snapshot so history survives product removal.
type Sale struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ProductID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName   string             `gorm:"size:255;not null" json:"product_name"`
	Quantity      int                `gorm:"not null" json:"quantity"`
	UnitPrice     int64              `gorm:"not null" json:"-"` // Stored in cents
	UnitCost      int64              `gorm:"not null" json:"-"` // Stored in cents
	Total         int64              `gorm:"not null" json:"-"` // Stored in cents
	Profit        int64              `gorm:"not null" json:"-"` // Stored in cents
	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	Customer      string             `gorm:"size:255;not null;default:'Walk-in'" json:"customer"`
	Discount      float64            `gorm:"not null;default:0" json:"discount"`
	Timestamp     time.Time          `gorm:"not null;index" json:"timestamp"`
	CreatedAt     time.Time          `json:"-"`
}

// BeforeCreate generates a UUID and stamps the entry before it is written
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now()
	}
	if s.Customer == "" {
		s.Customer = DefaultCustomer
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		UnitCost  float64 `json:"unit_cost"`
		Total     float64 `json:"total"`
		Profit    float64 `json:"profit"`
	}{
		Alias:     Alias(s),
		UnitPrice: float64(s.UnitPrice) / 100,
		UnitCost:  float64(s.UnitCost) / 100,
		Total:     float64(s.Total) / 100,
		Profit:    float64(s.Profit) / 100,
	})
}
