package repository

import (
	"context"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
)

// ReconciliationRepository queues stock discrepancies detected after the
// ledger write for manual follow-up
type ReconciliationRepository interface {
	Create(ctx context.Context, task *entity.StockReconciliationTask) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StockReconciliationTask, error)
	ListPending(ctx context.Context, params *pagination.PaginationParams) ([]entity.StockReconciliationTask, int64, error)
	// Resolve marks a task resolved as a single conditional update guarded on
	// resolved = false. Returns (false, nil) when another caller already
	// resolved it, so at most one resolver ever wins a task.
	Resolve(ctx context.Context, id uuid.UUID, resolvedBy uuid.UUID) (bool, error)
	// Reopen clears the resolved flag after a resolution step failed
	Reopen(ctx context.Context, id uuid.UUID) error
}
