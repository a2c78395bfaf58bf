package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ZuberiPay/songsnap.xyz/internal/admin"
	"github.com/ZuberiPay/songsnap.xyz/internal/checkout"
)

func NewRouter(screens *Screens, checkoutCtrl *checkout.Controller, adminCtrl *admin.Controller, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", screens.HandleScreen)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handleHealth)
		r.Post("/checkout", checkoutCtrl.HandleCheckout)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminCtrl.HandleLogin)
			r.Post("/refresh", adminCtrl.HandleRefresh)
			r.Post("/logout", adminCtrl.HandleLogout)
			r.Put("/orders/{orderId}/fulfill", adminCtrl.HandleFulfill)
		})
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
