package handler

import (
	"time"

	"github.com/dukapos/dukapos-api/internal/application/service"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/response"
	"github.com/dukapos/dukapos-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// SaleHandler handles sales history HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List handles listing the sales history. Supports page-based and
// cursor-based pagination.
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	start, err := parseTimeParam(filter.Start)
	if err != nil {
		response.BadRequest(c, "Invalid start parameter")
		return
	}
	end, err := parseTimeParam(filter.End)
	if err != nil {
		response.BadRequest(c, "Invalid end parameter")
		return
	}

	if filter.Cursor != "" || filter.Limit > 0 {
		h.listWithCursor(c, &filter, start, end)
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Start:         start,
		End:           end,
		PaymentMethod: filter.PaymentMethod,
		Customer:      filter.Customer,
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

func (h *SaleHandler) listWithCursor(c *gin.Context, filter *request.SaleFilterRequest, start, end *time.Time) {
	params := &repository.SaleCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor: filter.Cursor,
			Limit:  filter.Limit,
		},
		Start:         start,
		End:           end,
		PaymentMethod: filter.PaymentMethod,
	}

	result, err := h.saleService.ListSalesWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithCursor(c, 200, "Sales retrieved successfully", result)
}
