package request

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name              string   `json:"name" binding:"required,min=2,max=255"`
	CostPrice         float64  `json:"cost_price" binding:"required,gt=0"`
	SellingPrice      float64  `json:"selling_price" binding:"required,gt=0"`
	Stock             int      `json:"stock" binding:"min=0"`
	LowStockThreshold int      `json:"low_stock_threshold" binding:"omitempty,min=1"`
	Category          string   `json:"category" binding:"omitempty,max=100"`
	Description       string   `json:"description"`
	Supplier          string   `json:"supplier" binding:"omitempty,max=255"`
	Images            []string `json:"images" binding:"omitempty,max=5,dive,uri"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name              *string  `json:"name" binding:"omitempty,min=2,max=255"`
	CostPrice         *float64 `json:"cost_price" binding:"omitempty,gt=0"`
	SellingPrice      *float64 `json:"selling_price" binding:"omitempty,gt=0"`
	LowStockThreshold *int     `json:"low_stock_threshold" binding:"omitempty,min=1"`
	Category          *string  `json:"category" binding:"omitempty,max=100"`
	Description       *string  `json:"description"`
	Supplier          *string  `json:"supplier" binding:"omitempty,max=255"`
	Images            []string `json:"images" binding:"omitempty,max=5,dive,uri"`
}

// RestockProductRequest represents a stock replenishment request
type RestockProductRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
