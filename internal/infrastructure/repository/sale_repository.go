package repository

import (
	"context"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	domainRepo "github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/pagination"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale ledger repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// AppendBatch writes all lines of a checkout inside one transaction so the
// ledger never holds a partial sale
func (r *saleRepository) AppendBatch(ctx context.Context, sales []entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&sales).Error
	})
}

func (r *saleRepository) QueryInRange(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.Start != nil {
		query = query.Where("timestamp >= ?", *params.Start)
	}
	if params.End != nil {
		query = query.Where("timestamp < ?", *params.End)
	}
	if params.PaymentMethod != "" {
		query = query.Where("payment_method = ?", params.PaymentMethod)
	}
	if params.Customer != "" {
		query = query.Where("customer ILIKE ?", "%"+params.Customer+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("timestamp DESC, id DESC").
		Find(&sales).Error

	return sales, total, err
}

// ListWithCursor pages through the ledger with a (timestamp, id) keyset,
// newest first
func (r *saleRepository) ListWithCursor(ctx context.Context, params *domainRepo.SaleCursorFilterParams) ([]entity.Sale, error) {
	var sales []entity.Sale

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.Start != nil {
		query = query.Where("timestamp >= ?", *params.Start)
	}
	if params.End != nil {
		query = query.Where("timestamp < ?", *params.End)
	}
	if params.PaymentMethod != "" {
		query = query.Where("payment_method = ?", params.PaymentMethod)
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(timestamp, id) < (?, ?)", cursor.Timestamp, cursor.ID)
		} else {
			query = query.Where("(timestamp, id) > (?, ?)", cursor.Timestamp, cursor.ID)
		}
	}

	// Fetch limit+1 to detect hasMore
	err = query.Limit(params.Cursor.Limit + 1).
		Order("timestamp DESC, id DESC").
		Find(&sales).Error

	return sales, err
}

func (r *saleRepository) SumInRange(ctx context.Context, start, end time.Time) (int64, int64, error) {
	var row struct {
		Revenue int64
		Profit  int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(total), 0) as revenue,
			COALESCE(SUM(profit), 0) as profit
		FROM sales
		WHERE timestamp >= ? AND timestamp < ?
	`, start, end).Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Revenue, row.Profit, nil
}

func (r *saleRepository) TopSellers(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.TopSellerResult, error) {
	var results []domainRepo.TopSellerResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			product_name,
			COALESCE(SUM(quantity), 0) as quantity_sold,
			COALESCE(SUM(total), 0) as revenue
		FROM sales
		WHERE timestamp >= ? AND timestamp < ?
		GROUP BY product_name
		ORDER BY quantity_sold DESC, product_name ASC
		LIMIT ?
	`, start, end, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}
