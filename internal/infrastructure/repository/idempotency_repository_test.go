package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyCreateUpsertsOnConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIdempotencyRepository(db)

	// Racing inserts for the same (key, user_id) land on the existing row
	mock.ExpectQuery(`INSERT INTO "idempotency_keys" .* ON CONFLICT \("key","user_id"\) DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

	err := repo.Create(context.Background(), &entity.IdempotencyKey{
		Key:          "checkout-7f3a",
		UserID:       uuid.New(),
		Endpoint:     "POST /api/v1/checkout",
		ResponseCode: 201,
		ResponseBody: `{"success":true}`,
		ExpiresAt:    time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyDeleteExpired(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIdempotencyRepository(db)

	mock.ExpectExec(`DELETE FROM "idempotency_keys"`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.DeleteExpired(context.Background())
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
