// Package view derives the active screen from URL query parameters. The
// parameters success, plan and admin are the entire externally visible
// navigation state; at most one of the success and admin flows is active at
// a time, admin taking precedence.
package view

import "net/url"

type Screen int

const (
	ScreenLanding Screen = iota
	ScreenSuccess
	ScreenAdminLogin
	ScreenAdminDashboard
)

func (s Screen) String() string {
	switch s {
	case ScreenLanding:
		return "landing"
	case ScreenSuccess:
		return "success"
	case ScreenAdminLogin:
		return "admin-login"
	case ScreenAdminDashboard:
		return "admin-dashboard"
	}
	return "unknown"
}

const (
	paramSuccess = "success"
	paramPlan    = "plan"
	paramAdmin   = "admin"
)

// Resolve maps query parameters to a screen. authenticated selects the admin
// sub-state. Pure: no side effects, deterministic for a given input.
func Resolve(params url.Values, authenticated bool) Screen {
	if params.Get(paramAdmin) == "true" {
		if authenticated {
			return ScreenAdminDashboard
		}
		return ScreenAdminLogin
	}

	if params.Get(paramSuccess) == "true" && params.Get(paramPlan) != "" {
		return ScreenSuccess
	}

	return ScreenLanding
}

// PlanParam returns the plan identifier carried by the navigation state, or
// an empty string.
func PlanParam(params url.Values) string {
	return params.Get(paramPlan)
}

// SuccessParams builds the navigation state for the success screen of a plan.
func SuccessParams(planID string) url.Values {
	return url.Values{
		paramSuccess: []string{"true"},
		paramPlan:    []string{planID},
	}
}

// AdminParams builds the navigation state for the admin flow.
func AdminParams() url.Values {
	return url.Values{paramAdmin: []string{"true"}}
}

// HomeParams strips every navigation parameter so the derived screen is
// deterministically the landing screen; a reload must not re-trigger order
// creation.
func HomeParams(params url.Values) url.Values {
	out := url.Values{}
	for key, values := range params {
		if key == paramSuccess || key == paramPlan || key == paramAdmin {
			continue
		}
		out[key] = values
	}
	return out
}
