package service

import (
	"context"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/apperror"
	"github.com/dukapos/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReconciliationService manages the queue of stock discrepancies left behind
// when a decrement failed after its ledger write
type ReconciliationService struct {
	reconRepo   repository.ReconciliationRepository
	productRepo repository.ProductRepository
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(reconRepo repository.ReconciliationRepository, productRepo repository.ProductRepository) *ReconciliationService {
	return &ReconciliationService{reconRepo: reconRepo, productRepo: productRepo}
}

// ListPending returns unresolved reconciliation tasks, oldest first
func (s *ReconciliationService) ListPending(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.StockReconciliationTask], error) {
	tasks, total, err := s.reconRepo.ListPending(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(tasks, pag), nil
}

// ResolveInput represents the resolve reconciliation task input
type ResolveInput struct {
	TaskID     uuid.UUID
	ResolvedBy uuid.UUID
	// ApplyDecrement retries the stock decrement that originally failed.
	// Resolving without it records that the count was fixed by hand.
	ApplyDecrement bool
}

// Resolve marks a task resolved, optionally retrying the failed decrement
// first. The retry is still conditional, so stock cannot go negative here
// either; if it cannot be applied the task stays open.
func (s *ReconciliationService) Resolve(ctx context.Context, input *ResolveInput) (*entity.StockReconciliationTask, error) {
	task, err := s.reconRepo.GetByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperror.NewNotFoundError("Reconciliation task")
	}
	if task.Resolved {
		return nil, apperror.NewConflictError("Task is already resolved")
	}

	// Claim the task before touching stock. The resolved = false guard on the
	// update lets exactly one concurrent resolver through, so the decrement
	// below runs at most once per task.
	won, err := s.reconRepo.Resolve(ctx, input.TaskID, input.ResolvedBy)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, apperror.NewConflictError("Task is already resolved")
	}

	if input.ApplyDecrement {
		ok, err := s.productRepo.ConditionalDecrementStock(ctx, task.ProductID, task.Quantity)
		if err != nil || !ok {
			if reopenErr := s.reconRepo.Reopen(ctx, input.TaskID); reopenErr != nil {
				zap.L().Error("reconciliation: failed to reopen task after decrement failure",
					zap.String("task_id", input.TaskID.String()),
					zap.Error(reopenErr))
			}
			if err != nil {
				return nil, err
			}
			return nil, apperror.NewConflictError("Stock is still insufficient to apply the decrement")
		}
	}

	return s.reconRepo.GetByID(ctx, input.TaskID)
}
