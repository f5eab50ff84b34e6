package service

import (
	"context"
	"sync"
	"testing"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTask(t *testing.T, reconRepo *fakeReconRepo, productID uuid.UUID, qty int) *entity.StockReconciliationTask {
	t.Helper()
	task := &entity.StockReconciliationTask{
		ProductID: productID,
		SaleID:    uuid.New(),
		Quantity:  qty,
		Reason:    "stock decrement failed: connection lost",
	}
	require.NoError(t, reconRepo.Create(context.Background(), task))
	return task
}

func TestResolveWithDecrementAppliesConditionally(t *testing.T) {
	soda := catalogProduct("Soda", 10000, 15000, 5)
	productRepo := newFakeProductRepo(soda)
	reconRepo := &fakeReconRepo{}
	svc := NewReconciliationService(reconRepo, productRepo)

	task := seedTask(t, reconRepo, soda.ID, 2)
	resolver := uuid.New()

	resolved, err := svc.Resolve(context.Background(), &ResolveInput{
		TaskID:         task.ID,
		ResolvedBy:     resolver,
		ApplyDecrement: true,
	})

	require.NoError(t, err)
	assert.True(t, resolved.Resolved)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, resolver, *resolved.ResolvedBy)
	assert.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, 3, productRepo.stockOf(soda.ID))
}

func TestResolveWithDecrementStaysOpenWhenStockShort(t *testing.T) {
	soda := catalogProduct("Soda", 10000, 15000, 1)
	productRepo := newFakeProductRepo(soda)
	reconRepo := &fakeReconRepo{}
	svc := NewReconciliationService(reconRepo, productRepo)

	task := seedTask(t, reconRepo, soda.ID, 2)

	_, err := svc.Resolve(context.Background(), &ResolveInput{
		TaskID:         task.ID,
		ResolvedBy:     uuid.New(),
		ApplyDecrement: true,
	})

	require.Error(t, err)
	assert.False(t, task.Resolved)
	assert.Equal(t, 1, productRepo.stockOf(soda.ID))
}

func TestResolveWithoutDecrementLeavesStockAlone(t *testing.T) {
	soda := catalogProduct("Soda", 10000, 15000, 5)
	productRepo := newFakeProductRepo(soda)
	reconRepo := &fakeReconRepo{}
	svc := NewReconciliationService(reconRepo, productRepo)

	task := seedTask(t, reconRepo, soda.ID, 2)

	resolved, err := svc.Resolve(context.Background(), &ResolveInput{
		TaskID:     task.ID,
		ResolvedBy: uuid.New(),
	})

	require.NoError(t, err)
	assert.True(t, resolved.Resolved)
	assert.Equal(t, 5, productRepo.stockOf(soda.ID))
}

func TestConcurrentResolversDecrementOnce(t *testing.T) {
	soda := catalogProduct("Soda", 10000, 15000, 10)
	productRepo := newFakeProductRepo(soda)
	reconRepo := &fakeReconRepo{}
	svc := NewReconciliationService(reconRepo, productRepo)

	task := seedTask(t, reconRepo, soda.ID, 3)

	// Hold both resolvers at their initial read so each sees the task as
	// unresolved before either claims it. The conditional resolve decides the
	// winner; only the winner may decrement.
	var gateMu sync.Mutex
	reads := 0
	bothRead := make(chan struct{})
	reconRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.StockReconciliationTask, error) {
		gateMu.Lock()
		reads++
		n := reads
		gateMu.Unlock()
		if n == 2 {
			close(bothRead)
		}
		if n <= 2 {
			<-bothRead
		}
		return reconRepo.lookup(id), nil
	}

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Resolve(context.Background(), &ResolveInput{
				TaskID:         task.ID,
				ResolvedBy:     uuid.New(),
				ApplyDecrement: true,
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		}
	}
	assert.Equal(t, 1, successes, "exactly one resolver should win the task")
	assert.Equal(t, 7, productRepo.stockOf(soda.ID), "the discrepancy must be decremented once")
	assert.True(t, task.Resolved)
}

func TestReopenedTaskAcceptsASecondAttempt(t *testing.T) {
	soda := catalogProduct("Soda", 10000, 15000, 1)
	productRepo := newFakeProductRepo(soda)
	reconRepo := &fakeReconRepo{}
	svc := NewReconciliationService(reconRepo, productRepo)

	task := seedTask(t, reconRepo, soda.ID, 2)
	input := &ResolveInput{TaskID: task.ID, ResolvedBy: uuid.New(), ApplyDecrement: true}

	_, err := svc.Resolve(context.Background(), input)
	require.Error(t, err)
	assert.False(t, task.Resolved)

	// After a restock the same task resolves normally
	require.NoError(t, productRepo.IncrementStock(context.Background(), soda.ID, 5))
	resolved, err := svc.Resolve(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, resolved.Resolved)
	assert.Equal(t, 4, productRepo.stockOf(soda.ID))
}

func TestResolveRejectsUnknownAndAlreadyResolved(t *testing.T) {
	soda := catalogProduct("Soda", 10000, 15000, 5)
	productRepo := newFakeProductRepo(soda)
	reconRepo := &fakeReconRepo{}
	svc := NewReconciliationService(reconRepo, productRepo)

	_, err := svc.Resolve(context.Background(), &ResolveInput{
		TaskID:     uuid.New(),
		ResolvedBy: uuid.New(),
	})
	require.Error(t, err)

	task := seedTask(t, reconRepo, soda.ID, 1)
	input := &ResolveInput{TaskID: task.ID, ResolvedBy: uuid.New()}
	_, err = svc.Resolve(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), input)
	assert.Error(t, err)
}
