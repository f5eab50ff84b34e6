package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockReconciliationTask records a stock decrement that failed after the
// sale ledger was already written. The sale is economically final at that
// point, so the discrepancy is queued for manual follow-up instead of being
// rolled back or dropped.
type StockReconciliationTask struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ProductID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	SaleID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"sale_id"`
	Quantity   int        `gorm:"not null" json:"quantity"`
	Reason     string     `gorm:"size:512;not null" json:"reason"`
	Resolved   bool       `gorm:"not null;default:false;index" json:"resolved"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy *uuid.UUID `gorm:"type:uuid" json:"resolved_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"-"`
}

// BeforeCreate generates a UUID before creating a reconciliation task
func (t *StockReconciliationTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockReconciliationTask model
func (StockReconciliationTask) TableName() string {
	return "stock_reconciliation_tasks"
}
