package orderd

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ZuberiPay/songsnap.xyz/internal/catalog"
	"github.com/ZuberiPay/songsnap.xyz/internal/domain"
	apperrors "github.com/ZuberiPay/songsnap.xyz/internal/errors"
)

type Handler struct {
	repo           OrderRepository
	whatsappNumber string
	logger         *zap.Logger
}

func NewHandler(repo OrderRepository, whatsappNumber string, logger *zap.Logger) *Handler {
	return &Handler{
		repo:           repo,
		whatsappNumber: whatsappNumber,
		logger:         logger,
	}
}

// NewRouter mounts the order backend contract.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", h.handleRoot)
	r.Get("/api/health", h.handleHealth)
	r.Post("/api/generate-order", h.handleGenerateOrder)
	r.Get("/api/orders", h.handleListOrders)
	r.Get("/api/stats", h.handleStats)
	r.Get("/api/order/{orderId}", h.handleGetOrder)
	r.Put("/api/order/{orderId}/fulfill", h.handleFulfill)

	return r
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "SongSnap order API is running",
		"status":  "healthy",
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := h.repo.Stats(r.Context()); err != nil {
		h.logger.Error("health check failed", zap.Error(err))
		h.writeDetail(w, http.StatusInternalServerError, "Service unhealthy")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type generateOrderRequest struct {
	Plan string `json:"plan"`
}

func (h *Handler) handleGenerateOrder(w http.ResponseWriter, r *http.Request) {
	var req generateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeDetail(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	plan, err := catalog.Lookup(req.Plan)
	if err != nil {
		h.writeDetail(w, http.StatusBadRequest, "Invalid plan type")
		return
	}

	order := domain.Order{
		OrderID:        newOrderID(),
		Plan:           plan.ID,
		Price:          plan.Price,
		Timestamp:      time.Now().UTC(),
		Fulfilled:      false,
		WhatsAppNumber: h.whatsappNumber,
	}

	if err := h.repo.Insert(r.Context(), order); err != nil {
		h.logger.Error("failed to store order", zap.Error(err))
		h.writeDetail(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	h.logger.Info("order created", zap.String("orderId", order.OrderID), zap.String("plan", order.Plan))
	h.writeJSON(w, http.StatusOK, order)
}

type listOrdersResponse struct {
	Orders []domain.Order `json:"orders"`
	Count  int            `json:"count"`
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.writeDetail(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	var fulfilled *bool
	if raw := r.URL.Query().Get("fulfilled"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.writeDetail(w, http.StatusBadRequest, "fulfilled must be a boolean")
			return
		}
		fulfilled = &parsed
	}

	orders, err := h.repo.List(r.Context(), limit, fulfilled)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		h.writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, listOrdersResponse{Orders: orders, Count: len(orders)})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to compute stats", zap.Error(err))
		h.writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	order, err := h.repo.FindByID(r.Context(), orderID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			h.writeDetail(w, http.StatusNotFound, "Order not found")
			return
		}
		h.logger.Error("failed to fetch order", zap.String("orderId", orderID), zap.Error(err))
		h.writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) handleFulfill(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	if err := h.repo.MarkFulfilled(r.Context(), orderID, time.Now().UTC()); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			h.writeDetail(w, http.StatusNotFound, "Order not found")
			return
		}
		h.logger.Error("failed to fulfill order", zap.String("orderId", orderID), zap.Error(err))
		h.writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("order marked fulfilled", zap.String("orderId", orderID))
	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Order fulfilled successfully",
		"orderId": orderID,
	})
}

// newOrderID mints the visitor-facing order identifier.
func newOrderID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "SS-" + strings.ToUpper(hex[:8])
}

func (h *Handler) writeDetail(w http.ResponseWriter, status int, detail string) {
	h.writeJSON(w, status, map[string]string{"detail": detail})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}
