// Package checkout drives the visitor-facing purchase sequence: plan
// selection, the payment confirmation gate, order creation, success.
package checkout

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ZuberiPay/songsnap.xyz/internal/catalog"
	"github.com/ZuberiPay/songsnap.xyz/internal/domain"
	apperrors "github.com/ZuberiPay/songsnap.xyz/internal/errors"
)

type State int

const (
	StateIdle State = iota
	StateConfirming
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConfirming:
		return "confirming"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, planID string) (*domain.Order, error)
}

// Flow is the checkout state machine:
//
//	Idle -> Confirming -> Submitting -> Succeeded | Failed
//
// Declining the confirmation returns to Idle with no side effect. Every
// Submitting entry exits to Succeeded or Failed; there is no hanging state.
type Flow struct {
	mu        sync.Mutex
	state     State
	plan      domain.Plan
	order     *domain.Order
	orders    OrderCreator
	confirmer PaymentConfirmer
	logger    *zap.Logger
}

func NewFlow(orders OrderCreator, confirmer PaymentConfirmer, logger *zap.Logger) *Flow {
	return &Flow{
		state:     StateIdle,
		orders:    orders,
		confirmer: confirmer,
		logger:    logger,
	}
}

// Select moves Idle to Confirming for a catalog plan. Unknown identifiers
// are rejected before any side effect.
func (f *Flow) Select(planID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateIdle {
		return apperrors.NewValidationError(fmt.Sprintf("cannot select a plan while %s", f.state))
	}

	plan, err := catalog.Lookup(planID)
	if err != nil {
		return apperrors.NewValidationError("unknown plan identifier", apperrors.ValidationDetail{
			Field:   "plan",
			Message: fmt.Sprintf("%q is not a purchasable plan", planID),
		})
	}

	f.plan = plan
	f.state = StateConfirming
	return nil
}

// Confirm runs the payment gate and, on approval, creates the order. A
// declined gate returns to Idle; a redirect decision also returns to Idle
// since the visitor re-enters through the success URL.
func (f *Flow) Confirm(ctx context.Context) (Confirmation, error) {
	f.mu.Lock()
	if f.state != StateConfirming {
		state := f.state
		f.mu.Unlock()
		return Confirmation{}, apperrors.NewValidationError(fmt.Sprintf("cannot confirm while %s", state))
	}
	plan := f.plan
	f.mu.Unlock()

	conf, err := f.confirmer.Confirm(ctx, plan)
	if err != nil {
		f.setState(StateFailed)
		return Confirmation{}, err
	}

	switch conf.Decision {
	case DecisionDeclined:
		f.logger.Info("payment declined", zap.String("plan", plan.ID))
		f.setState(StateIdle)
		return conf, nil
	case DecisionRedirect:
		f.logger.Info("handing off to hosted checkout", zap.String("plan", plan.ID))
		f.setState(StateIdle)
		return conf, nil
	}

	f.setState(StateSubmitting)

	order, err := f.orders.CreateOrder(ctx, plan.ID)
	if err != nil {
		f.logger.Warn("order creation failed", zap.String("plan", plan.ID), zap.Error(err))
		f.setState(StateFailed)
		return conf, err
	}

	f.mu.Lock()
	f.order = order
	f.state = StateSucceeded
	f.mu.Unlock()

	return conf, nil
}

// Decline abandons the confirmation with no side effect.
func (f *Flow) Decline() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateConfirming {
		return apperrors.NewValidationError(fmt.Sprintf("cannot decline while %s", f.state))
	}

	f.state = StateIdle
	f.plan = domain.Plan{}
	return nil
}

// Reset returns to Idle from any state and drops the held order, as when the
// visitor navigates back to the landing screen. A fresh attempt can then be
// started.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = StateIdle
	f.plan = domain.Plan{}
	f.order = nil
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Order returns the order held after a successful confirmation, or nil.
func (f *Flow) Order() *domain.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.order
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}
