package checkout

import (
	"context"
	"net/url"

	"github.com/ZuberiPay/songsnap.xyz/internal/domain"
)

type Decision int

const (
	DecisionApproved Decision = iota
	DecisionDeclined
	DecisionRedirect
)

type Confirmation struct {
	Decision    Decision
	RedirectURL string
}

// PaymentConfirmer is the payment gate standing between plan selection and
// order creation. The stub implementation simulates the confirmation; the
// redirect implementation hands the visitor to a hosted checkout page which
// returns them via the success URL.
type PaymentConfirmer interface {
	Confirm(ctx context.Context, plan domain.Plan) (Confirmation, error)
}

// StubConfirmer approves (or declines) every confirmation locally. It stands
// in for a real payment provider.
type StubConfirmer struct {
	Decline bool
}

func (s StubConfirmer) Confirm(_ context.Context, _ domain.Plan) (Confirmation, error) {
	if s.Decline {
		return Confirmation{Decision: DecisionDeclined}, nil
	}
	return Confirmation{Decision: DecisionApproved}, nil
}

// RedirectConfirmer builds a hosted-checkout URL that returns the visitor to
// the success screen for the selected plan once payment completes.
type RedirectConfirmer struct {
	CheckoutURL string
	ReturnBase  string
}

func (r RedirectConfirmer) Confirm(_ context.Context, plan domain.Plan) (Confirmation, error) {
	success := r.ReturnBase + "/?success=true&plan=" + url.QueryEscape(plan.ID)
	return Confirmation{
		Decision:    DecisionRedirect,
		RedirectURL: r.CheckoutURL + "?success_url=" + url.QueryEscape(success),
	}, nil
}
