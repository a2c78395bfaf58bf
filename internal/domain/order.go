package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order binds a purchased plan to a backend-assigned identifier and a
// fulfillment status. Orders are never deleted; Fulfilled may transition
// from false to true exactly once.
type Order struct {
	OrderID        string          `json:"orderId"`
	Plan           string          `json:"plan"`
	Price          decimal.Decimal `json:"price"`
	Timestamp      time.Time       `json:"timestamp"`
	Fulfilled      bool            `json:"fulfilled"`
	FulfilledAt    *time.Time      `json:"fulfilledAt,omitempty"`
	WhatsAppNumber string          `json:"whatsappNumber,omitempty"`
}
