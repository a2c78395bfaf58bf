package domain

import "github.com/shopspring/decimal"

// Plan is a purchasable fulfillment package. The set of valid identifiers is
// fixed at build time; see the catalog package.
type Plan struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Delivery string          `json:"delivery"`
	Features []string        `json:"features"`
}
