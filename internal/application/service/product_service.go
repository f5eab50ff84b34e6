package service

import (
	"context"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/apperror"
	"github.com/dukapos/dukapos-api/pkg/pagination"
	"github.com/dukapos/dukapos-api/pkg/utils"
	"github.com/google/uuid"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input. Prices are decimal
// amounts; they are stored in cents.
type CreateProductInput struct {
	Name              string
	CostPrice         float64
	SellingPrice      float64
	Stock             int
	LowStockThreshold int
	Category          string
	Description       string
	Supplier          string
	Images            []string
}

func validatePrices(costPrice, sellingPrice float64) error {
	if costPrice <= 0 || sellingPrice <= 0 {
		return apperror.NewBadRequestError("Prices must be positive")
	}
	if sellingPrice < costPrice {
		return apperror.NewBadRequestError("Selling price must not be below cost price")
	}
	return nil
}

// CreateProduct creates a new catalog product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}
	if err := validatePrices(input.CostPrice, input.SellingPrice); err != nil {
		return nil, err
	}
	if input.Stock < 0 {
		return nil, apperror.NewBadRequestError("Stock must not be negative")
	}
	if len(input.Images) > entity.MaxProductImages {
		return nil, apperror.NewBadRequestError("A product may carry at most 5 images")
	}

	slug := utils.Slugify(input.Name)
	existing, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A product with this name already exists")
	}

	product := &entity.Product{
		Name:              input.Name,
		Slug:              slug,
		Stock:             input.Stock,
		LowStockThreshold: input.LowStockThreshold,
		Category:          input.Category,
		Description:       input.Description,
		Supplier:          input.Supplier,
		Images:            input.Images,
	}
	product.SetCostPriceFromDecimal(input.CostPrice)
	product.SetSellingPriceFromDecimal(input.SellingPrice)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by slug
func (s *ProductService) GetProduct(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStock returns products at or below their low-stock threshold
func (s *ProductService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	Slug              string
	Name              *string
	CostPrice         *float64
	SellingPrice      *float64
	LowStockThreshold *int
	Category          *string
	Description       *string
	Supplier          *string
	Images            []string
}

// UpdateProduct updates a product's descriptive fields and prices. Stock is
// deliberately absent: it moves only through checkout and restock.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewBadRequestError("Product name is required")
		}
		newSlug := utils.Slugify(*input.Name)
		if newSlug != product.Slug {
			existing, err := s.productRepo.GetBySlug(ctx, newSlug)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != product.ID {
				return nil, apperror.NewConflictError("A product with this name already exists")
			}
		}
		product.Name = *input.Name
		product.Slug = newSlug
	}

	cost := product.GetCostPriceDecimal()
	sell := product.GetSellingPriceDecimal()
	if input.CostPrice != nil {
		cost = *input.CostPrice
	}
	if input.SellingPrice != nil {
		sell = *input.SellingPrice
	}
	if err := validatePrices(cost, sell); err != nil {
		return nil, err
	}
	product.SetCostPriceFromDecimal(cost)
	product.SetSellingPriceFromDecimal(sell)

	if input.LowStockThreshold != nil {
		if *input.LowStockThreshold <= 0 {
			return nil, apperror.NewBadRequestError("Low stock threshold must be positive")
		}
		product.LowStockThreshold = *input.LowStockThreshold
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Supplier != nil {
		product.Supplier = *input.Supplier
	}
	if input.Images != nil {
		if len(input.Images) > entity.MaxProductImages {
			return nil, apperror.NewBadRequestError("A product may carry at most 5 images")
		}
		product.Images = input.Images
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct soft-deletes a product. Ledger entries that reference it keep
// their denormalized product name, and history queries keep working.
func (s *ProductService) DeleteProduct(ctx context.Context, slug string) error {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, product.ID)
}

// Restock increments a product's stock by qty
func (s *ProductService) Restock(ctx context.Context, slug string, qty int) (*entity.Product, error) {
	if qty <= 0 {
		return nil, apperror.NewBadRequestError("Restock quantity must be positive")
	}
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if err := s.productRepo.IncrementStock(ctx, product.ID, qty); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, product.ID)
}
