package repository

import (
	"context"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/pkg/pagination"
)

// SaleRepository is the sale ledger boundary. The ledger is append-only:
// there are no update or delete operations, concurrent appends are
// independent and need no locking.
type SaleRepository interface {
	// AppendBatch writes all lines of one checkout as a single batch. Either
	// every line is durable or none is.
	AppendBatch(ctx context.Context, sales []entity.Sale) error
	// QueryInRange returns ledger entries in [start, end), newest first
	QueryInRange(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// ListWithCursor returns ledger entries using keyset pagination on
	// (timestamp, id), newest first
	ListWithCursor(ctx context.Context, params *SaleCursorFilterParams) ([]entity.Sale, error)
	// SumInRange returns total revenue and profit in cents over [start, end)
	SumInRange(ctx context.Context, start, end time.Time) (revenue, profit int64, err error)
	// TopSellers groups entries by product name over [start, end), summing
	// quantities, ordered by quantity descending with ties broken by name
	TopSellers(ctx context.Context, start, end time.Time, limit int) ([]TopSellerResult, error)
}

// SaleFilterParams contains filtering parameters for ledger history queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	Start         *time.Time
	End           *time.Time
	PaymentMethod string
	Customer      string
}

// SaleCursorFilterParams contains cursor-based filtering parameters for
// ledger history queries
type SaleCursorFilterParams struct {
	Cursor        *pagination.CursorParams
	Start         *time.Time
	End           *time.Time
	PaymentMethod string
}

// TopSellerResult is one row of the top-sellers aggregation
type TopSellerResult struct {
	ProductName  string `json:"product_name"`
	QuantitySold int    `json:"quantity_sold"`
	Revenue      int64  `json:"-"` // cents
}
