package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/apperror"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TopicSaleRecorded is published on the event bus after a checkout commits.
// The payload is the []entity.Sale that was appended to the ledger.
const TopicSaleRecorded = "sale:recorded"

const defaultIOTimeout = 5 * time.Second

// CheckoutService converts a client-proposed cart into a durable sale record
// and a consistent stock decrement, or rejects the whole operation. It never
// produces a partially-applied sale: the ledger batch write is all-or-nothing,
// and once it succeeds the sale is final regardless of what the stock
// decrements do afterwards.
type CheckoutService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	reconRepo   repository.ReconciliationRepository
	bus         EventBus.Bus
	locker      *productLocker
	ioTimeout   time.Duration
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	reconRepo repository.ReconciliationRepository,
	bus EventBus.Bus,
) *CheckoutService {
	return &CheckoutService{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		reconRepo:   reconRepo,
		bus:         bus,
		locker:      newProductLocker(),
		ioTimeout:   defaultIOTimeout,
	}
}

// SetIOTimeout overrides the per-call timeout for catalog reads, ledger
// appends and stock decrements
func (s *CheckoutService) SetIOTimeout(d time.Duration) {
	if d > 0 {
		s.ioTimeout = d
	}
}

// CheckoutLineInput is one client-proposed cart line. Quantities and product
// IDs come from the client; prices do not — the engine always uses the
// authoritative catalog prices read at commit time.
type CheckoutLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CheckoutInput is the checkout request boundary
type CheckoutInput struct {
	UserID        uuid.UUID
	Lines         []CheckoutLineInput
	PaymentMethod string
	Customer      string
	Discount      float64
}

// StockReconciliationWarning reports a stock decrement that failed after the
// ledger write. The sale stands; the discrepancy has been queued.
type StockReconciliationWarning struct {
	ProductID uuid.UUID `json:"product_id"`
	SaleID    uuid.UUID `json:"sale_id"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason"`
}

// CheckoutResult is the outcome of a committed checkout. Committed is true
// whenever ledger entries exist, even if some stock decrements failed — in
// that case Warnings is non-empty and the caller must still report the sale
// as recorded.
type CheckoutResult struct {
	Committed bool                         `json:"committed"`
	Lines     []entity.Sale                `json:"lines"`
	Warnings  []StockReconciliationWarning `json:"warnings,omitempty"`
}

// Checkout validates the cart against current stock, computes totals from
// authoritative prices, appends the sale to the ledger and decrements stock.
//
// Validation is fail-fast with no side effects. The commit is two-phase
// because ledger and catalog are independent systems of record: the ledger
// write is the point of no return, and a stock decrement failing after it is
// surfaced as a warning, never as a checkout failure.
func (s *CheckoutService) Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutResult, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.ErrEmptyCart
	}

	method, ok := enum.ParsePaymentMethod(input.PaymentMethod)
	if !ok {
		return nil, apperror.ErrInvalidPaymentMethod
	}

	if input.Discount < 0 || input.Discount > 100 {
		return nil, apperror.ErrInvalidDiscount
	}

	productIDs := make([]uuid.UUID, 0, len(input.Lines))
	seen := make(map[uuid.UUID]bool, len(input.Lines))
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Line quantity must be positive")
		}
		if seen[line.ProductID] {
			return nil, apperror.NewBadRequestError("Duplicate product in cart")
		}
		seen[line.ProductID] = true
		productIDs = append(productIDs, line.ProductID)
	}

	// Serialize against other checkouts touching the same products so the
	// re-validation below stays true through our own commit. Checkouts for
	// unrelated products proceed in parallel.
	unlock := s.locker.lockAll(productIDs)
	defer unlock()

	// Re-read authoritative stock and prices; the client's snapshots may be
	// stale and are never trusted for money math.
	readCtx, cancel := context.WithTimeout(ctx, s.ioTimeout)
	products, err := s.productRepo.GetByIDs(readCtx, productIDs)
	cancel()
	if err != nil {
		zap.L().Error("checkout: catalog read failed", zap.Error(err))
		return nil, apperror.ErrUnavailable
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	customer := input.Customer
	if customer == "" {
		customer = entity.DefaultCustomer
	}

	now := time.Now()
	sales := make([]entity.Sale, 0, len(input.Lines))
	for _, line := range input.Lines {
		product, exists := productMap[line.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError("Product")
		}
		if line.Quantity > product.Stock {
			return nil, apperror.NewInsufficientStockError(product.ID, line.Quantity, product.Stock)
		}
		// Concurrent price edits could have inverted the margin since the
		// client last looked; a sale at a loss is a catalog fault, not a
		// checkout outcome.
		if product.SellingPrice < product.CostPrice {
			return nil, apperror.ErrCatalogIntegrity
		}

		sales = append(sales, entity.Sale{
			ID:            uuid.New(),
			ProductID:     product.ID,
			ProductName:   product.Name,
			Quantity:      line.Quantity,
			UnitPrice:     product.SellingPrice,
			UnitCost:      product.CostPrice,
			Total:         lineTotal(product.SellingPrice, line.Quantity, input.Discount),
			Profit:        (product.SellingPrice - product.CostPrice) * int64(line.Quantity),
			PaymentMethod: method,
			Customer:      customer,
			Discount:      input.Discount,
			Timestamp:     now,
		})
	}

	// Phase one: the ledger batch. Failure here means nothing happened and
	// the whole checkout may be retried. A timeout is different: the write
	// may or may not have landed, and retrying blindly could ring the sale
	// twice.
	writeCtx, cancel := context.WithTimeout(ctx, s.ioTimeout)
	err = s.saleRepo.AppendBatch(writeCtx, sales)
	cancel()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, &apperror.CommitUncertainError{Err: err}
		}
		return nil, &apperror.LedgerWriteError{Err: err}
	}

	// Phase two: stock decrements, one conditional update per product. The
	// sale is already durable, so failures here are queued for manual
	// reconciliation and reported as warnings on a successful result.
	var warnings []StockReconciliationWarning
	for _, sale := range sales {
		warning := s.decrementStock(ctx, sale)
		if warning != nil {
			warnings = append(warnings, *warning)
		}
	}

	if s.bus != nil {
		s.bus.Publish(TopicSaleRecorded, sales)
	}

	return &CheckoutResult{
		Committed: true,
		Lines:     sales,
		Warnings:  warnings,
	}, nil
}

// decrementStock applies one conditional decrement. On any failure it queues
// a reconciliation task and returns the warning; it never returns an error
// because the sale is past the point of no return.
func (s *CheckoutService) decrementStock(ctx context.Context, sale entity.Sale) *StockReconciliationWarning {
	decCtx, cancel := context.WithTimeout(ctx, s.ioTimeout)
	ok, err := s.productRepo.ConditionalDecrementStock(decCtx, sale.ProductID, sale.Quantity)
	cancel()

	var reason string
	switch {
	case err != nil:
		reason = "stock decrement failed: " + err.Error()
	case !ok:
		reason = "insufficient stock at decrement time"
	default:
		return nil
	}

	warning := &StockReconciliationWarning{
		ProductID: sale.ProductID,
		SaleID:    sale.ID,
		Quantity:  sale.Quantity,
		Reason:    reason,
	}

	task := &entity.StockReconciliationTask{
		ProductID: sale.ProductID,
		SaleID:    sale.ID,
		Quantity:  sale.Quantity,
		Reason:    reason,
	}
	// Queue with a fresh timeout: the request context may already be the
	// reason the decrement failed.
	queueCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.ioTimeout)
	defer cancel()
	if qerr := s.reconRepo.Create(queueCtx, task); qerr != nil {
		zap.L().Error("checkout: failed to queue stock reconciliation task",
			zap.String("product_id", sale.ProductID.String()),
			zap.String("sale_id", sale.ID.String()),
			zap.Int("quantity", sale.Quantity),
			zap.String("reason", reason),
			zap.Error(qerr))
	}
	zap.L().Warn("checkout: stock decrement needs reconciliation",
		zap.String("product_id", sale.ProductID.String()),
		zap.String("sale_id", sale.ID.String()),
		zap.String("reason", reason))

	return warning
}

// lineTotal computes unitPrice * qty * (1 - discount/100) in cents, rounded
// half away from zero
func lineTotal(unitPrice int64, qty int, discount float64) int64 {
	gross := float64(unitPrice * int64(qty))
	return int64(math.Round(gross * (1 - discount/100)))
}
