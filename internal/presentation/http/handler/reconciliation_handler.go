package handler

import (
	"github.com/dukapos/dukapos-api/internal/application/service"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/response"
	"github.com/dukapos/dukapos-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReconciliationHandler handles stock reconciliation HTTP requests
type ReconciliationHandler struct {
	reconService *service.ReconciliationService
}

// NewReconciliationHandler creates a new reconciliation handler
func NewReconciliationHandler(reconService *service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconService: reconService}
}

// ListPending handles listing unresolved reconciliation tasks
func (h *ReconciliationHandler) ListPending(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.reconService.ListPending(c.Request.Context(), &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Pending tasks retrieved successfully", result)
}

// Resolve handles resolving a reconciliation task
func (h *ReconciliationHandler) Resolve(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid task ID")
		return
	}

	var req request.ResolveReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.reconService.Resolve(c.Request.Context(), &service.ResolveInput{
		TaskID:         taskID,
		ResolvedBy:     *userID,
		ApplyDecrement: req.ApplyDecrement,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Task resolved successfully", task)
}
