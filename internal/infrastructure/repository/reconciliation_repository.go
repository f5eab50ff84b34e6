package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	domainRepo "github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reconciliationRepository struct {
	db *gorm.DB
}

// NewReconciliationRepository creates a new reconciliation task repository
func NewReconciliationRepository(db *gorm.DB) domainRepo.ReconciliationRepository {
	return &reconciliationRepository{db: db}
}

func (r *reconciliationRepository) Create(ctx context.Context, task *entity.StockReconciliationTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *reconciliationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockReconciliationTask, error) {
	var task entity.StockReconciliationTask
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *reconciliationRepository) ListPending(ctx context.Context, params *pagination.PaginationParams) ([]entity.StockReconciliationTask, int64, error) {
	var tasks []entity.StockReconciliationTask
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockReconciliationTask{}).
		Where("resolved = ?", false)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at ASC").
		Find(&tasks).Error

	return tasks, total, err
}

func (r *reconciliationRepository) Resolve(ctx context.Context, id uuid.UUID, resolvedBy uuid.UUID) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&entity.StockReconciliationTask{}).
		Where("id = ? AND resolved = ?", id, false).
		Updates(map[string]interface{}{
			"resolved":    true,
			"resolved_at": now,
			"resolved_by": resolvedBy,
		})
	if result.Error != nil {
		return false, result.Error
	}

	// No rows affected means another resolver won, or the task does not exist
	return result.RowsAffected > 0, nil
}

func (r *reconciliationRepository) Reopen(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.StockReconciliationTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"resolved":    false,
			"resolved_at": nil,
			"resolved_by": nil,
		}).Error
}
