package handler

import (
	"github.com/dukapos/dukapos-api/internal/application/service"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles checkout HTTP requests
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout handles a checkout submission
// @Summary Checkout
// @Description Validate the cart, record the sale and decrement stock
// @Tags checkout
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.CheckoutRequest true "Cart contents"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CheckoutInput{
		UserID:        *userID,
		PaymentMethod: req.PaymentMethod,
		Customer:      req.Customer,
		Discount:      req.Discount,
	}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, service.CheckoutLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Sale recorded successfully"
	if len(result.Warnings) > 0 {
		message = "Sale recorded with stock reconciliation warnings"
	}
	response.Created(c, message, gin.H{
		"sales":    result.Lines,
		"warnings": result.Warnings,
	})
}
