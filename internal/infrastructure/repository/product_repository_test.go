package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	domainRepo "github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB wires a sqlmock connection through gorm. Default transactions are
// skipped so single-statement writes map to a single ExpectExec.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestConditionalDecrementStockGuard(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)
	id := uuid.New()

	// Guard holds: one row updated
	mock.ExpectExec(`UPDATE "products" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.ConditionalDecrementStock(context.Background(), id, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	// Guard fails: zero rows updated, no error
	mock.ExpectExec(`UPDATE "products" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err = repo.ConditionalDecrementStock(context.Background(), id, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFoundReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "stock"}))

	product, err := repo.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, product)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBySlugScansRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "name", "slug", "cost_price", "selling_price", "stock"}).
		AddRow(id.String(), "Fresh Milk", "fresh-milk", int64(4550), int64(6000), 24)
	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(rows)

	product, err := repo.GetBySlug(context.Background(), "fresh-milk")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, id, product.ID)
	assert.Equal(t, int64(6000), product.SellingPrice)
	assert.Equal(t, 24, product.Stock)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSortingIsWhitelisted(t *testing.T) {
	cases := []struct {
		name      string
		sortBy    string
		sortOrder string
		wantOrder string
	}{
		{
			name:      "known column and order pass through",
			sortBy:    "stock",
			sortOrder: "asc",
			wantOrder: `ORDER BY stock ASC`,
		},
		{
			name:      "unknown column falls back to created_at",
			sortBy:    "price; DROP TABLE products",
			sortOrder: "asc",
			wantOrder: `ORDER BY created_at ASC`,
		},
		{
			name:      "subquery payload falls back to created_at",
			sortBy:    "(SELECT CASE WHEN (SELECT password FROM users LIMIT 1) > 'm' THEN name ELSE category END)",
			sortOrder: "desc",
			wantOrder: `ORDER BY created_at DESC`,
		},
		{
			name:      "unknown order falls back to DESC",
			sortBy:    "name",
			sortOrder: "sideways",
			wantOrder: `ORDER BY name DESC`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewProductRepository(db)

			mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
			mock.ExpectQuery(tc.wantOrder).
				WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "stock"}))

			_, _, err := repo.List(context.Background(), &domainRepo.ProductFilterParams{
				Pagination: &pagination.PaginationParams{Page: 1, PerPage: 20},
				SortBy:     tc.sortBy,
				SortOrder:  tc.sortOrder,
			})
			require.NoError(t, err)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestIncrementStockOnMissingProduct(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectExec(`UPDATE "products" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementStock(context.Background(), uuid.New(), 5)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
