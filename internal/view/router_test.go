package view

import (
	"net/url"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		authenticated bool
		want          Screen
	}{
		{"no params", "", false, ScreenLanding},
		{"success with plan", "success=true&plan=snap", false, ScreenSuccess},
		{"success without plan", "success=true", false, ScreenLanding},
		{"success false", "success=false&plan=snap", false, ScreenLanding},
		{"plan without success", "plan=snap", false, ScreenLanding},
		{"admin unauthenticated", "admin=true", false, ScreenAdminLogin},
		{"admin authenticated", "admin=true", true, ScreenAdminDashboard},
		{"admin wins over success", "admin=true&success=true&plan=snap", false, ScreenAdminLogin},
		{"admin not true", "admin=1", false, ScreenLanding},
		{"unknown plan still routes to success", "success=true&plan=mixtape", false, ScreenSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parsing query: %v", err)
			}
			if got := Resolve(params, tt.authenticated); got != tt.want {
				t.Errorf("Resolve(%q, auth=%v) = %v, want %v", tt.query, tt.authenticated, got, tt.want)
			}
		})
	}
}

func TestHomeParams_StripsNavigationState(t *testing.T) {
	params, _ := url.ParseQuery("success=true&plan=snap&admin=true&utm_source=ad")

	home := HomeParams(params)

	if Resolve(home, true) != ScreenLanding {
		t.Error("home params must deterministically resolve to landing")
	}
	if home.Get("utm_source") != "ad" {
		t.Error("unrelated params must survive")
	}
}

func TestSuccessParams_RoundTrip(t *testing.T) {
	params := SuccessParams("snappack")

	if Resolve(params, false) != ScreenSuccess {
		t.Error("success params must resolve to the success screen")
	}
	if PlanParam(params) != "snappack" {
		t.Errorf("unexpected plan param %q", PlanParam(params))
	}
}

func TestAdminParams(t *testing.T) {
	if Resolve(AdminParams(), false) != ScreenAdminLogin {
		t.Error("admin params must resolve to the admin flow")
	}
}
