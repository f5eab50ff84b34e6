package cart

import (
	"testing"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeProduct(name string, price int64, stock int) *entity.Product {
	return &entity.Product{
		ID:           uuid.New(),
		Name:         name,
		CostPrice:    price / 2,
		SellingPrice: price,
		Stock:        stock,
	}
}

func TestAddCreatesLineWithSnapshots(t *testing.T) {
	c := New()
	soda := makeProduct("Soda", 5000, 10)

	result := c.Add(soda, 2)

	assert.Equal(t, Added, result)
	require.Equal(t, 1, c.Len())
	line := c.Lines()[0]
	assert.Equal(t, soda.ID, line.ProductID)
	assert.Equal(t, "Soda", line.ProductName)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, int64(5000), line.UnitPrice)
	assert.Equal(t, 10, line.StockSnapshot)
}

func TestAddMergesExistingLine(t *testing.T) {
	c := New()
	soda := makeProduct("Soda", 5000, 10)

	c.Add(soda, 2)
	result := c.Add(soda, 3)

	assert.Equal(t, Added, result)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 5, c.Lines()[0].Quantity)
}

func TestAddClampsToStockSnapshot(t *testing.T) {
	c := New()
	soda := makeProduct("Soda", 5000, 4)

	c.Add(soda, 3)
	result := c.Add(soda, 5)

	assert.Equal(t, Added, result)
	assert.Equal(t, 4, c.Lines()[0].Quantity)

	// The line sits at the cap now, so another add is a no-op
	result = c.Add(soda, 1)
	assert.Equal(t, StockLimitReached, result)
	assert.Equal(t, 4, c.Lines()[0].Quantity)
}

func TestAddOutOfStockProduct(t *testing.T) {
	c := New()
	soda := makeProduct("Soda", 5000, 0)

	result := c.Add(soda, 1)

	assert.Equal(t, StockLimitReached, result)
	assert.Equal(t, 0, c.Len())
}

func TestAddNormalizesQuantityBelowOne(t *testing.T) {
	c := New()
	soda := makeProduct("Soda", 5000, 10)

	c.Add(soda, -3)

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestSetQuantity(t *testing.T) {
	c := New()
	soda := makeProduct("Soda", 5000, 6)
	c.Add(soda, 1)

	c.SetQuantity(soda.ID, 4)
	assert.Equal(t, 4, c.Lines()[0].Quantity)

	// Clamped to snapshot
	c.SetQuantity(soda.ID, 100)
	assert.Equal(t, 6, c.Lines()[0].Quantity)

	// Zero removes the line
	c.SetQuantity(soda.ID, 0)
	assert.Equal(t, 0, c.Len())

	// Absent product is a no-op
	c.SetQuantity(uuid.New(), 3)
	assert.Equal(t, 0, c.Len())
}

func TestRemoveReindexesRemainingLines(t *testing.T) {
	c := New()
	a := makeProduct("A", 100, 5)
	b := makeProduct("B", 200, 5)
	d := makeProduct("D", 300, 5)
	c.Add(a, 1)
	c.Add(b, 1)
	c.Add(d, 1)

	c.Remove(b.ID)

	require.Equal(t, 2, c.Len())
	assert.Equal(t, a.ID, c.Lines()[0].ProductID)
	assert.Equal(t, d.ID, c.Lines()[1].ProductID)

	// The index still resolves the shifted line
	c.SetQuantity(d.ID, 3)
	assert.Equal(t, 3, c.Lines()[1].Quantity)
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(makeProduct("A", 100, 5), 2)
	c.Add(makeProduct("B", 200, 5), 1)

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.Subtotal())
}

func TestSubtotal(t *testing.T) {
	c := New()
	c.Add(makeProduct("A", 15000, 10), 3) // 450.00
	c.Add(makeProduct("B", 2500, 10), 2)  // 50.00

	assert.Equal(t, int64(50000), c.Subtotal())
}

func TestLinesReturnsCopy(t *testing.T) {
	c := New()
	soda := makeProduct("Soda", 5000, 10)
	c.Add(soda, 2)

	lines := c.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 2, c.Lines()[0].Quantity)
}
