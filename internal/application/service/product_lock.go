package service

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// productLocker serializes checkout commits per product within this process.
// Unrelated products never contend; the cross-process guard remains the
// conditional stock update in the catalog store.
type productLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*productLock
}

type productLock struct {
	mu   sync.Mutex
	refs int
}

func newProductLocker() *productLocker {
	return &productLocker{locks: make(map[uuid.UUID]*productLock)}
}

// lockAll acquires the lock for every product in the set, in sorted ID order
// so that overlapping carts cannot deadlock. The returned function releases
// all of them.
func (l *productLocker) lockAll(ids []uuid.UUID) (unlock func()) {
	sorted := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			sorted = append(sorted, id)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})

	acquired := make([]*productLock, 0, len(sorted))
	for _, id := range sorted {
		l.mu.Lock()
		entry, ok := l.locks[id]
		if !ok {
			entry = &productLock{}
			l.locks[id] = entry
		}
		entry.refs++
		l.mu.Unlock()

		entry.mu.Lock()
		acquired = append(acquired, entry)
	}

	released := sorted
	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].mu.Unlock()

			l.mu.Lock()
			entry := acquired[i]
			entry.refs--
			if entry.refs == 0 {
				delete(l.locks, released[i])
			}
			l.mu.Unlock()
		}
	}
}
