package admin

import (
	"go.uber.org/zap"

	"github.com/ZuberiPay/songsnap.xyz/internal/config"
)

func NewModule(cfg *config.Config, client Client, logger *zap.Logger) *Controller {
	session := NewSession(client, cfg.Admin.Secret, cfg.Admin.OrderLimit, logger)
	return NewController(session, logger)
}
