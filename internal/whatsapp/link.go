// Package whatsapp builds the hand-off link the visitor follows after a
// purchase to share their song idea. The order ID travels in the prefilled
// message text so the operator can match the chat to the order.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ZuberiPay/songsnap.xyz/internal/catalog"
	"github.com/ZuberiPay/songsnap.xyz/internal/domain"
)

// Link returns a wa.me URL for the given number with a prefilled message
// referencing the order.
func Link(number string, order domain.Order, plan domain.Plan) string {
	message := fmt.Sprintf(
		"Hi! I just purchased %s. My order ID is: %s. I'm excited to share my song idea with you!",
		planText(plan), order.OrderID,
	)

	return "https://wa.me/" + sanitizeNumber(number) + "?text=" + url.QueryEscape(message)
}

func planText(plan domain.Plan) string {
	if !catalog.IsValid(plan.ID) {
		return "a custom song"
	}
	return "the " + plan.Name + " plan"
}

// wa.me wants digits only, no leading plus.
func sanitizeNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
