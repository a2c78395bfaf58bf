// Package catalog holds the fixed set of purchasable plans. It is the single
// source of truth for validating plan identifiers arriving from the URL or
// from backend responses.
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ZuberiPay/songsnap.xyz/internal/domain"
	apperrors "github.com/ZuberiPay/songsnap.xyz/internal/errors"
)

const (
	PlanSnap     = "snap"
	PlanSnapPack = "snappack"
	PlanCreator  = "creator"
)

var plans = []domain.Plan{
	{
		ID:       PlanSnap,
		Name:     "Snap",
		Price:    decimal.RequireFromString("3.99"),
		Delivery: "Within 2 hours",
		Features: []string{"1 personalized song", "Delivered to your WhatsApp", "One free revision"},
	},
	{
		ID:       PlanSnapPack,
		Name:     "Snap Pack",
		Price:    decimal.RequireFromString("9.99"),
		Delivery: "Within 24 hours",
		Features: []string{"3 personalized songs", "Delivered to your WhatsApp", "One free revision per song"},
	},
	{
		ID:       PlanCreator,
		Name:     "Creator",
		Price:    decimal.RequireFromString("14.99"),
		Delivery: "Within 30 minutes",
		Features: []string{"Unlimited songs for a month", "Priority delivery", "Unlimited revisions"},
	},
}

// Plans returns every plan in display order.
func Plans() []domain.Plan {
	out := make([]domain.Plan, len(plans))
	copy(out, plans)
	return out
}

// Lookup resolves a plan identifier. Unknown identifiers yield a
// NotFoundError.
func Lookup(id string) (domain.Plan, error) {
	for _, p := range plans {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Plan{}, apperrors.NewNotFoundError(fmt.Sprintf("unknown plan %q", id))
}

// IsValid reports whether id names a plan in the catalog.
func IsValid(id string) bool {
	_, err := Lookup(id)
	return err == nil
}

// Display resolves a plan for rendering. Identifiers the catalog does not
// recognize (the backend catalog may drift ahead of this one) degrade to a
// generic entry instead of failing.
func Display(id string) domain.Plan {
	if p, err := Lookup(id); err == nil {
		return p
	}
	return domain.Plan{
		ID:       id,
		Name:     "Custom plan",
		Delivery: "See your order confirmation",
	}
}
