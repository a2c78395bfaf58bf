package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrder_Creation(t *testing.T) {
	ts := time.Now()

	order := Order{
		OrderID:        "SS-1A2B3C4D",
		Plan:           "snap",
		Price:          decimal.RequireFromString("3.99"),
		Timestamp:      ts,
		Fulfilled:      false,
		WhatsAppNumber: "+1234567890",
	}

	assert.Equal(t, "SS-1A2B3C4D", order.OrderID)
	assert.Equal(t, "snap", order.Plan)
	assert.True(t, order.Price.Equal(decimal.RequireFromString("3.99")))
	assert.Equal(t, ts, order.Timestamp)
	assert.False(t, order.Fulfilled)
	assert.Nil(t, order.FulfilledAt)
}
