package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ZuberiPay/songsnap.xyz/internal/admin"
	"github.com/ZuberiPay/songsnap.xyz/internal/catalog"
	"github.com/ZuberiPay/songsnap.xyz/internal/checkout"
	"github.com/ZuberiPay/songsnap.xyz/internal/domain"
	apperrors "github.com/ZuberiPay/songsnap.xyz/internal/errors"
	"github.com/ZuberiPay/songsnap.xyz/internal/view"
)

// Screens derives the active screen from the request's query parameters and
// renders its payload. The same derivation runs on every request, so browser
// back/forward navigation lands on the right screen without extra state.
type Screens struct {
	checkout *checkout.Controller
	admin    *admin.Controller
	logger   *zap.Logger
}

func NewScreens(checkoutCtrl *checkout.Controller, adminCtrl *admin.Controller, logger *zap.Logger) *Screens {
	return &Screens{
		checkout: checkoutCtrl,
		admin:    adminCtrl,
		logger:   logger,
	}
}

type screenResponse struct {
	Screen       string                  `json:"screen"`
	Plans        []domain.Plan           `json:"plans,omitempty"`
	Plan         *domain.Plan            `json:"plan,omitempty"`
	Order        *domain.Order           `json:"order,omitempty"`
	WhatsAppLink string                  `json:"whatsappLink,omitempty"`
	Dashboard    *admin.DashboardPayload `json:"dashboard,omitempty"`
	Error        string                  `json:"error,omitempty"`
	Message      string                  `json:"message,omitempty"`
}

func (s *Screens) HandleScreen(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	session := s.admin.Session()

	switch screen := view.Resolve(params, session.Authenticated()); screen {
	case view.ScreenSuccess:
		s.renderSuccess(w, r, view.PlanParam(params))

	case view.ScreenAdminLogin:
		s.writeJSON(w, http.StatusOK, screenResponse{Screen: screen.String()})

	case view.ScreenAdminDashboard:
		dashboard := s.admin.Dashboard()
		s.writeJSON(w, http.StatusOK, screenResponse{
			Screen:    screen.String(),
			Dashboard: &dashboard,
		})

	default:
		// navigating home ends any admin session
		session.Leave()
		s.writeJSON(w, http.StatusOK, screenResponse{
			Screen: screen.String(),
			Plans:  catalog.Plans(),
		})
	}
}

// renderSuccess re-runs order creation for the navigated plan. Unknown plan
// identifiers render the fallback description with no order; creation
// failures surface with a retry left to the visitor.
func (s *Screens) renderSuccess(w http.ResponseWriter, r *http.Request, planID string) {
	display := catalog.Display(planID)
	resp := screenResponse{
		Screen: view.ScreenSuccess.String(),
		Plan:   &display,
	}

	order, err := s.checkout.ResumeOrder(r.Context(), planID)
	if err != nil {
		s.logger.Warn("order generation on success navigation failed", zap.String("plan", planID), zap.Error(err))
		resp.Message = err.Error()
		resp.Error = "BACKEND_ERROR"
		if _, ok := apperrors.IsNetworkError(err); ok {
			resp.Error = "NETWORK_ERROR"
		}
		s.writeJSON(w, http.StatusBadGateway, resp)
		return
	}

	if order != nil {
		resp.Order = order
		resp.WhatsAppLink = s.checkout.WhatsAppLink(*order)
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Screens) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}
