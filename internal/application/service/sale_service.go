package service

import (
	"context"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/apperror"
	"github.com/dukapos/dukapos-api/pkg/pagination"
)

// SaleService exposes read access to the sale ledger. Writes go through
// CheckoutService only.
type SaleService struct {
	saleRepo repository.SaleRepository
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// ListSales returns the sales history page for the given filters, newest first
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	if params.Start != nil && params.End != nil && params.End.Before(*params.Start) {
		return nil, apperror.NewBadRequestError("End of range must not precede its start")
	}

	sales, total, err := s.saleRepo.QueryInRange(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// ListSalesWithCursor returns a keyset-paginated slice of the sales history,
// newest first. Suited to infinite scroll over a ledger that only grows.
func (s *SaleService) ListSalesWithCursor(ctx context.Context, params *repository.SaleCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Sale], error) {
	if params.Start != nil && params.End != nil && params.End.Before(*params.Start) {
		return nil, apperror.NewBadRequestError("End of range must not precede its start")
	}

	sales, err := s.saleRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	pag, items := pagination.NewCursorPagination(sales, params.Cursor.Limit,
		func(sale entity.Sale) string { return sale.ID.String() },
		func(sale entity.Sale) time.Time { return sale.Timestamp },
	)
	pag.HasPrev = params.Cursor.Cursor != ""

	return pagination.NewCursorPaginatedResult(items, pag), nil
}
