package apperror

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Checkout validation errors. All of them are raised before any write
// happens, so the caller may adjust the cart and retry freely.
var (
	ErrEmptyCart            = &AppError{Code: http.StatusBadRequest, Message: "Cart is empty"}
	ErrInvalidPaymentMethod = &AppError{Code: http.StatusBadRequest, Message: "Invalid payment method"}
	ErrInvalidDiscount      = &AppError{Code: http.StatusBadRequest, Message: "Discount must be between 0 and 100"}
	ErrCatalogIntegrity     = &AppError{Code: http.StatusConflict, Message: "Catalog integrity fault: selling price below cost price"}
	ErrUnavailable          = &AppError{Code: http.StatusServiceUnavailable, Message: "Store temporarily unavailable"}
)

// InsufficientStockError is returned when a cart line requests more units
// than are currently in stock. The whole checkout fails; nothing is written.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, only %d in stock",
		e.ProductID, e.Requested, e.Available)
}

// NewInsufficientStockError creates an insufficient stock error for a product
func NewInsufficientStockError(productID uuid.UUID, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Requested: requested, Available: available}
}

// LedgerWriteError is returned when the batch append to the sale ledger
// fails. No stock has been touched yet, so the checkout is safe to retry.
type LedgerWriteError struct {
	Err error
}

func (e *LedgerWriteError) Error() string {
	return fmt.Sprintf("sale ledger write failed: %v", e.Err)
}

func (e *LedgerWriteError) Unwrap() error {
	return e.Err
}

// CommitUncertainError is returned when the commit phase times out and the
// outcome is unknown. A ledger entry may or may not exist; blindly retrying
// would risk a duplicate sale, so the ambiguity is surfaced to the caller.
type CommitUncertainError struct {
	Err error
}

func (e *CommitUncertainError) Error() string {
	return fmt.Sprintf("checkout outcome uncertain: %v", e.Err)
}

func (e *CommitUncertainError) Unwrap() error {
	return e.Err
}
