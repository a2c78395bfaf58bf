package checkout

import (
	"go.uber.org/zap"

	"github.com/ZuberiPay/songsnap.xyz/internal/config"
)

// NewModule wires the checkout controller with the payment confirmer the
// configuration selects.
func NewModule(cfg *config.Config, orders OrderCreator, logger *zap.Logger) *Controller {
	var confirmer PaymentConfirmer = StubConfirmer{}
	if cfg.Payment.Mode == config.PaymentModeRedirect {
		confirmer = RedirectConfirmer{
			CheckoutURL: cfg.Payment.CheckoutURL,
			ReturnBase:  cfg.Server.PublicURL,
		}
	}

	return NewController(orders, confirmer, cfg.Orderd.WhatsAppNumber, logger)
}
