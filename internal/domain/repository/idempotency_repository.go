package repository

import (
	"context"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/google/uuid"
)

// IdempotencyRepository stores processed request keys and their cached
// responses
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
