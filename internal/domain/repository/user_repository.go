package repository

import (
	"context"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations. Lookups
// return (nil, nil) when no user matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
