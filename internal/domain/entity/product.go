package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxProductImages caps the number of image URIs a product may carry
const MaxProductImages = 5

// DefaultLowStockThreshold is applied when a product is created without one
const DefaultLowStockThreshold = 5

// Product represents a product in the catalog. Stock is the authoritative
// count: it is mutated only by the checkout engine's conditional decrement
// and by explicit restock operations.
type Product struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name              string         `gorm:"size:255;not null" json:"name"`
	Slug              string         `gorm:"size:255;unique;not null" json:"slug"`
	CostPrice         int64          `gorm:"not null" json:"cost_price"`    // Stored in cents
	SellingPrice      int64          `gorm:"not null" json:"selling_price"` // Stored in cents
	Stock             int            `gorm:"not null;default:0" json:"stock"`
	LowStockThreshold int            `gorm:"not null;default:5" json:"low_stock_threshold"`
	Category          string         `gorm:"size:255" json:"category"`
	Description       string         `gorm:"type:text" json:"description"`
	Supplier          string         `gorm:"size:255" json:"supplier"`
	Images            []string       `gorm:"serializer:json;type:text" json:"images"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID and applies defaults before creating a product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.LowStockThreshold <= 0 {
		p.LowStockThreshold = DefaultLowStockThreshold
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether the product is at or below its alert threshold
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.LowStockThreshold
}

// GetCostPriceDecimal returns the cost price as a decimal (for display)
func (p *Product) GetCostPriceDecimal() float64 {
	return float64(p.CostPrice) / 100
}

// GetSellingPriceDecimal returns the selling price as a decimal (for display)
func (p *Product) GetSellingPriceDecimal() float64 {
	return float64(p.SellingPrice) / 100
}

// SetCostPriceFromDecimal sets the cost price from a decimal value
func (p *Product) SetCostPriceFromDecimal(price float64) {
	p.CostPrice = int64(price*100 + 0.5)
}

// SetSellingPriceFromDecimal sets the selling price from a decimal value
func (p *Product) SetSellingPriceFromDecimal(price float64) {
	p.SellingPrice = int64(price*100 + 0.5)
}

// ProductJSON is a helper struct for JSON marshaling with decimal prices
type ProductJSON struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	CostPrice         float64   `json:"cost_price"`
	SellingPrice      float64   `json:"selling_price"`
	Stock             int       `json:"stock"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	LowStock          bool      `json:"low_stock"`
	Category          string    `json:"category"`
	Description       string    `json:"description"`
	Supplier          string    `json:"supplier"`
	Images            []string  `json:"images"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// MarshalJSON converts Product to JSON with decimal prices
func (p Product) MarshalJSON() ([]byte, error) {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return json.Marshal(ProductJSON{
		ID:                p.ID,
		Name:              p.Name,
		Slug:              p.Slug,
		CostPrice:         p.GetCostPriceDecimal(),
		SellingPrice:      p.GetSellingPriceDecimal(),
		Stock:             p.Stock,
		LowStockThreshold: p.LowStockThreshold,
		LowStock:          p.IsLowStock(),
		Category:          p.Category,
		Description:       p.Description,
		Supplier:          p.Supplier,
		Images:            images,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	})
}
