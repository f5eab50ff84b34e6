package repository

import (
	"context"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
)

// ProductRepository is the catalog store boundary. Lookups return (nil, nil)
// when no product matches.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete soft-deletes a product. Rows referenced by ledger entries are
	// retained; only the deleted_at flag is set.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// ConditionalDecrementStock decrements stock only if at least qty units
	// remain, as a single conditional update. Returns (false, nil) when the
	// guard fails. This is the cross-process oversell guard: stock is never
	// read-modify-written.
	ConditionalDecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	// IncrementStock adds qty units (restock)
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) error
}

// ProductFilterParams contains filtering parameters for catalog queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	LowStock   bool
	SortBy     string
	SortOrder  string
}
