package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerLine(name string, qty int, total int64) entity.Sale {
	return entity.Sale{
		ID:            uuid.New(),
		ProductID:     uuid.New(),
		ProductName:   name,
		Quantity:      qty,
		UnitPrice:     total / int64(qty),
		Total:         total,
		PaymentMethod: enum.PaymentMethodCash,
		Customer:      entity.DefaultCustomer,
		Timestamp:     time.Now(),
	}
}

func TestAppendBatchWrapsInTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSaleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "sales"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	sales := []entity.Sale{
		ledgerLine("Soda", 2, 30000),
		ledgerLine("Bread", 1, 5000),
	}
	require.NoError(t, repo.AppendBatch(context.Background(), sales))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendBatchRollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSaleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "sales"`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.AppendBatch(context.Background(), []entity.Sale{ledgerLine("Soda", 1, 15000)})
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendBatchEmptyIsNoop(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSaleRepository(db)

	require.NoError(t, repo.AppendBatch(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumInRange(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSaleRepository(db)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	mock.ExpectQuery(`SELECT`).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"revenue", "profit"}).
			AddRow(int64(123450), int64(40500)))

	revenue, profit, err := repo.SumInRange(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(123450), revenue)
	assert.Equal(t, int64(40500), profit)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopSellers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSaleRepository(db)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	mock.ExpectQuery(`GROUP BY product_name`).
		WithArgs(start, end, 2).
		WillReturnRows(sqlmock.NewRows([]string{"product_name", "quantity_sold", "revenue"}).
			AddRow("Soda", 12, int64(180000)).
			AddRow("Bread", 7, int64(35000)))

	results, err := repo.TopSellers(context.Background(), start, end, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Soda", results[0].ProductName)
	assert.Equal(t, 12, results[0].QuantitySold)
	assert.Equal(t, "Bread", results[1].ProductName)

	assert.NoError(t, mock.ExpectationsWereMet())
}
