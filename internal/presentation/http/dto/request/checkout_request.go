package request

import "github.com/google/uuid"

// CheckoutLineRequest is one cart line submitted for checkout
type CheckoutLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// CheckoutRequest represents a checkout submission
type CheckoutRequest struct {
	Lines         []CheckoutLineRequest `json:"lines" binding:"required,min=1,dive"`
	PaymentMethod string                `json:"payment_method" binding:"required"`
	Customer      string                `json:"customer" binding:"omitempty,max=255"`
	Discount      float64               `json:"discount" binding:"min=0,max=100"`
}

// SaleFilterRequest represents sales history filter parameters
type SaleFilterRequest struct {
	Start         string `form:"start"`
	End           string `form:"end"`
	PaymentMethod string `form:"payment_method"`
	Customer      string `form:"customer"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
	Cursor        string `form:"cursor"`
	Limit         int    `form:"limit"`
}

// ResolveReconciliationRequest represents a reconciliation task resolution
type ResolveReconciliationRequest struct {
	ApplyDecrement bool `json:"apply_decrement"`
}

// AnalyticsRangeRequest represents an analytics window query
type AnalyticsRangeRequest struct {
	Start string `form:"start"`
	End   string `form:"end"`
	Limit int    `form:"limit"`
}
