// Package orderd is the reference order backend: the HTTP contract the
// storefront consumes, backed by an in-memory store.
package orderd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ZuberiPay/songsnap.xyz/internal/domain"
	apperrors "github.com/ZuberiPay/songsnap.xyz/internal/errors"
)

type OrderRepository interface {
	Insert(ctx context.Context, order domain.Order) error
	FindByID(ctx context.Context, orderID string) (*domain.Order, error)
	List(ctx context.Context, limit int, fulfilled *bool) ([]domain.Order, error)
	MarkFulfilled(ctx context.Context, orderID string, at time.Time) error
	Stats(ctx context.Context) (*domain.Stats, error)
}

// MemoryStore keeps orders in insertion order and serves reads most recent
// first. It is the only storage in the system; orders are never deleted.
type MemoryStore struct {
	mu     sync.RWMutex
	orders []domain.Order
	byID   map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]int)}
}

func (s *MemoryStore) Insert(_ context.Context, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[order.OrderID]; exists {
		return apperrors.NewInternalError(fmt.Sprintf("duplicate order id %s", order.OrderID), nil)
	}

	s.byID[order.OrderID] = len(s.orders)
	s.orders = append(s.orders, order)
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, orderID string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[orderID]
	if !ok {
		return nil, apperrors.NewNotFoundError("Order not found")
	}

	order := s.orders[idx]
	return &order, nil
}

func (s *MemoryStore) List(_ context.Context, limit int, fulfilled *bool) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, 0, limit)
	for i := len(s.orders) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		order := s.orders[i]
		if fulfilled != nil && order.Fulfilled != *fulfilled {
			continue
		}
		out = append(out, order)
	}
	return out, nil
}

// MarkFulfilled transitions an order to fulfilled. Fulfilling an already
// fulfilled order is a no-op success.
func (s *MemoryStore) MarkFulfilled(_ context.Context, orderID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[orderID]
	if !ok {
		return apperrors.NewNotFoundError("Order not found")
	}

	if s.orders[idx].Fulfilled {
		return nil
	}

	s.orders[idx].Fulfilled = true
	s.orders[idx].FulfilledAt = &at
	return nil
}

func (s *MemoryStore) Stats(_ context.Context) (*domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.Stats{PlanBreakdown: make(map[string]int)}
	for _, order := range s.orders {
		stats.TotalOrders++
		if order.Fulfilled {
			stats.FulfilledOrders++
		} else {
			stats.PendingOrders++
		}
		stats.PlanBreakdown[order.Plan]++
	}
	return stats, nil
}
