package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductStoresPricesInCents(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	product, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:         "Fresh Milk 500ml",
		CostPrice:    45.50,
		SellingPrice: 60.00,
		Stock:        24,
	})

	require.NoError(t, err)
	assert.Equal(t, "fresh-milk-500ml", product.Slug)
	assert.Equal(t, int64(4550), product.CostPrice)
	assert.Equal(t, int64(6000), product.SellingPrice)
	assert.Equal(t, 60.00, product.GetSellingPriceDecimal())
	assert.Equal(t, 24, product.Stock)
}

func TestCreateProductValidation(t *testing.T) {
	tests := []struct {
		name  string
		input *CreateProductInput
	}{
		{
			name:  "missing name",
			input: &CreateProductInput{CostPrice: 10, SellingPrice: 20},
		},
		{
			name:  "non-positive price",
			input: &CreateProductInput{Name: "Soda", CostPrice: 0, SellingPrice: 20},
		},
		{
			name:  "selling below cost",
			input: &CreateProductInput{Name: "Soda", CostPrice: 20, SellingPrice: 10},
		},
		{
			name:  "negative stock",
			input: &CreateProductInput{Name: "Soda", CostPrice: 10, SellingPrice: 20, Stock: -1},
		},
		{
			name: "too many images",
			input: &CreateProductInput{
				Name: "Soda", CostPrice: 10, SellingPrice: 20,
				Images: []string{"a", "b", "c", "d", "e", "f"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewProductService(newFakeProductRepo())
			_, err := svc.CreateProduct(context.Background(), tt.input)
			assert.Error(t, err)
		})
	}
}

func TestCreateProductRejectsDuplicateSlug(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	input := &CreateProductInput{Name: "Fresh Milk", CostPrice: 45, SellingPrice: 60}
	_, err := svc.CreateProduct(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), input)
	assert.Error(t, err)
}

func TestUpdateProductCrossValidatesPrices(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	created, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name: "Soda", CostPrice: 100, SellingPrice: 150,
	})
	require.NoError(t, err)

	// Lowering the selling price below the existing cost price must fail even
	// though the cost price is not part of the update
	badPrice := 80.0
	_, err = svc.UpdateProduct(context.Background(), &UpdateProductInput{
		Slug:         created.Slug,
		SellingPrice: &badPrice,
	})
	assert.Error(t, err)

	goodPrice := 120.0
	updated, err := svc.UpdateProduct(context.Background(), &UpdateProductInput{
		Slug:         created.Slug,
		SellingPrice: &goodPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12000), updated.SellingPrice)
}

func TestUpdateProductRenameRegeneratesSlug(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	created, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name: "Soda", CostPrice: 100, SellingPrice: 150,
	})
	require.NoError(t, err)

	newName := "Orange Soda 300ml"
	updated, err := svc.UpdateProduct(context.Background(), &UpdateProductInput{
		Slug: created.Slug,
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "orange-soda-300ml", updated.Slug)
}

func TestRestock(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	created, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name: "Soda", CostPrice: 100, SellingPrice: 150, Stock: 2,
	})
	require.NoError(t, err)

	_, err = svc.Restock(context.Background(), created.Slug, 0)
	assert.Error(t, err)

	restocked, err := svc.Restock(context.Background(), created.Slug, 10)
	require.NoError(t, err)
	assert.Equal(t, 12, restocked.Stock)
}

func TestDeleteProductNotFound(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())
	err := svc.DeleteProduct(context.Background(), "missing-slug")
	assert.Error(t, err)
}

func TestGetProductByIDNotFound(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())
	_, err := svc.GetProduct(context.Background(), "nope")
	assert.Error(t, err)
}
