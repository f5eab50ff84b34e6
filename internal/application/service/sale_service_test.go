package service

import (
	"context"
	"testing"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listingSaleRepo struct {
	fakeSaleRepo

	sales []entity.Sale
}

func (r *listingSaleRepo) QueryInRange(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return r.sales, int64(len(r.sales)), nil
}

func (r *listingSaleRepo) ListWithCursor(ctx context.Context, params *repository.SaleCursorFilterParams) ([]entity.Sale, error) {
	return r.sales, nil
}

func historyLine(ts time.Time) entity.Sale {
	return entity.Sale{ID: uuid.New(), ProductName: "Soda", Quantity: 1, Timestamp: ts}
}

func TestListSalesRejectsInvertedRange(t *testing.T) {
	svc := NewSaleService(&listingSaleRepo{})

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	_, err := svc.ListSales(context.Background(), &repository.SaleFilterParams{
		Pagination: pagination.DefaultPagination(),
		Start:      &start,
		End:        &end,
	})
	assert.Error(t, err)
}

func TestListSalesPaginates(t *testing.T) {
	now := time.Now()
	repo := &listingSaleRepo{sales: []entity.Sale{historyLine(now), historyLine(now.Add(-time.Minute))}}
	svc := NewSaleService(repo)

	result, err := svc.ListSales(context.Background(), &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 15},
	})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Pagination.Total)
	assert.False(t, result.Pagination.HasNext)
}

func TestListSalesWithCursorTrimsExtraRow(t *testing.T) {
	now := time.Now()
	// limit+1 rows fetched signals another page
	repo := &listingSaleRepo{sales: []entity.Sale{
		historyLine(now),
		historyLine(now.Add(-time.Minute)),
		historyLine(now.Add(-2 * time.Minute)),
	}}
	svc := NewSaleService(repo)

	result, err := svc.ListSalesWithCursor(context.Background(), &repository.SaleCursorFilterParams{
		Cursor: &pagination.CursorParams{Limit: 2},
	})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.True(t, result.Pagination.HasNext)
	assert.False(t, result.Pagination.HasPrev)
	require.NotNil(t, result.Pagination.NextCursor)

	// A caller holding a cursor can page backwards
	withCursor, err := svc.ListSalesWithCursor(context.Background(), &repository.SaleCursorFilterParams{
		Cursor: &pagination.CursorParams{Limit: 2, Cursor: *result.Pagination.NextCursor},
	})
	require.NoError(t, err)
	assert.True(t, withCursor.Pagination.HasPrev)
}
