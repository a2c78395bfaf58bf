// Package admin gates the operator dashboard and owns its data-loading
// lifecycle.
package admin

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ZuberiPay/songsnap.xyz/internal/domain"
	apperrors "github.com/ZuberiPay/songsnap.xyz/internal/errors"
)

type Client interface {
	ListOrders(ctx context.Context, limit int) ([]domain.Order, error)
	FetchStats(ctx context.Context) (*domain.Stats, error)
	FulfillOrder(ctx context.Context, orderID string) error
}

// Snapshot is one combined dashboard load. Orders and stats are independent
// failure domains: either side may carry data while the other carries an
// error.
type Snapshot struct {
	Orders    []domain.Order
	Stats     *domain.Stats
	OrdersErr error
	StatsErr  error
	LoadedAt  time.Time
}

// Session holds the ephemeral admin state for the active page view. It is
// never persisted; leaving the dashboard resets it and re-entry requires the
// secret again.
type Session struct {
	mu            sync.Mutex
	authenticated bool
	gen           uint64
	snapshot      *Snapshot

	secret string
	limit  int
	client Client
	logger *zap.Logger
}

func NewSession(client Client, secret string, orderLimit int, logger *zap.Logger) *Session {
	return &Session{
		secret: secret,
		limit:  orderLimit,
		client: client,
		logger: logger,
	}
}

// SubmitCredential checks the shared secret. A match authenticates the
// session and immediately triggers the combined dashboard load; a mismatch
// leaves the session untouched and issues no backend calls.
func (s *Session) SubmitCredential(ctx context.Context, secret string) (*Snapshot, error) {
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.secret)) != 1 {
		s.logger.Warn("admin authentication failed")
		return nil, apperrors.NewAuthenticationError("invalid admin secret")
	}

	s.mu.Lock()
	s.authenticated = true
	s.mu.Unlock()

	s.logger.Info("admin authenticated")
	return s.Refresh(ctx)
}

// Refresh issues the order list and stats requests concurrently and replaces
// the cached snapshot atomically. If a newer refresh was initiated while this
// one was in flight, its result is discarded so the dashboard never regresses
// to older data. The returned snapshot is whatever the session holds after
// the attempt.
func (s *Session) Refresh(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	if !s.authenticated {
		s.mu.Unlock()
		return nil, apperrors.NewAuthenticationError("not authenticated")
	}
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	snap := &Snapshot{LoadedAt: time.Now()}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		snap.Orders, snap.OrdersErr = s.client.ListOrders(ctx, s.limit)
	}()
	go func() {
		defer wg.Done()
		snap.Stats, snap.StatsErr = s.client.FetchStats(ctx)
	}()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated || gen != s.gen {
		s.logger.Debug("discarding stale dashboard load", zap.Uint64("gen", gen))
		return s.snapshot, nil
	}

	if snap.OrdersErr != nil {
		s.logger.Warn("order list load failed", zap.Error(snap.OrdersErr))
	}
	if snap.StatsErr != nil {
		s.logger.Warn("stats load failed", zap.Error(snap.StatsErr))
	}

	s.snapshot = snap
	return snap, nil
}

// Fulfill marks an order fulfilled and unconditionally refreshes so the
// dashboard reflects the backend's view rather than an optimistic local
// mutation.
func (s *Session) Fulfill(ctx context.Context, orderID string) (*Snapshot, error) {
	s.mu.Lock()
	if !s.authenticated {
		s.mu.Unlock()
		return nil, apperrors.NewAuthenticationError("not authenticated")
	}
	s.mu.Unlock()

	fulfillErr := s.client.FulfillOrder(ctx, orderID)

	snap, refreshErr := s.Refresh(ctx)
	if fulfillErr != nil {
		return snap, fulfillErr
	}
	return snap, refreshErr
}

// Leave resets to unauthenticated and drops cached data, as when the operator
// navigates home. Any load still in flight becomes stale.
func (s *Session) Leave() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authenticated {
		s.logger.Info("admin session ended")
	}
	s.authenticated = false
	s.snapshot = nil
	s.gen++
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Snapshot returns the most recently applied dashboard load, or nil before
// the first one completes.
func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}
