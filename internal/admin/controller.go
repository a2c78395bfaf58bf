package admin

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ZuberiPay/songsnap.xyz/internal/domain"
	apperrors "github.com/ZuberiPay/songsnap.xyz/internal/errors"
)

type Controller struct {
	session *Session
	logger  *zap.Logger
}

func NewController(session *Session, logger *zap.Logger) *Controller {
	return &Controller{
		session: session,
		logger:  logger,
	}
}

func (c *Controller) Session() *Session {
	return c.session
}

// Dashboard renders the session's current snapshot.
func (c *Controller) Dashboard() DashboardPayload {
	return payloadFrom(c.session.Snapshot())
}

type loginRequest struct {
	Secret string `json:"secret"`
}

// DashboardPayload is the rendered form of a Snapshot. The two failure
// domains stay separate so a stats failure never hides a loaded order list.
type DashboardPayload struct {
	Orders      []domain.Order `json:"orders"`
	Stats       *domain.Stats  `json:"stats,omitempty"`
	OrdersError string         `json:"ordersError,omitempty"`
	StatsError  string         `json:"statsError,omitempty"`
}

func payloadFrom(snap *Snapshot) DashboardPayload {
	payload := DashboardPayload{Orders: []domain.Order{}}
	if snap == nil {
		return payload
	}
	if snap.Orders != nil {
		payload.Orders = snap.Orders
	}
	payload.Stats = snap.Stats
	if snap.OrdersErr != nil {
		payload.OrdersError = snap.OrdersErr.Error()
	}
	if snap.StatsErr != nil {
		payload.StatsError = snap.StatsErr.Error()
	}
	return payload
}

// HandleLogin checks the submitted secret and, on success, returns the first
// dashboard load.
func (c *Controller) HandleLogin(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "VALIDATION_ERROR",
			"message": "request body must be valid JSON",
		})
		return
	}

	snap, err := c.session.SubmitCredential(r.Context(), req.Secret)
	if err != nil {
		if _, ok := apperrors.IsAuthenticationError(err); ok {
			c.writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":   "AUTHENTICATION_ERROR",
				"message": "invalid admin secret",
			})
			return
		}
		logger.Error("login failed unexpectedly", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, payloadFrom(snap))
}

// HandleRefresh re-runs the combined dashboard load.
func (c *Controller) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	snap, err := c.session.Refresh(r.Context())
	if err != nil {
		c.writeAuthRequired(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, payloadFrom(snap))
}

// HandleFulfill marks an order fulfilled and returns the refreshed dashboard.
func (c *Controller) HandleFulfill(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "VALIDATION_ERROR",
			"message": "orderId is required",
		})
		return
	}

	snap, err := c.session.Fulfill(r.Context(), orderID)
	if err != nil {
		if _, ok := apperrors.IsAuthenticationError(err); ok {
			c.writeAuthRequired(w, err)
			return
		}
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]string{
				"error":   "NOT_FOUND",
				"message": err.Error(),
			})
			return
		}
		c.logger.Warn("fulfillment failed", zap.String("orderId", orderID), zap.Error(err))
		c.writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":   "BACKEND_ERROR",
			"message": err.Error(),
		})
		return
	}

	c.writeJSON(w, http.StatusOK, payloadFrom(snap))
}

// HandleLogout ends the admin session.
func (c *Controller) HandleLogout(w http.ResponseWriter, r *http.Request) {
	c.session.Leave()
	c.writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (c *Controller) writeAuthRequired(w http.ResponseWriter, err error) {
	c.writeJSON(w, http.StatusUnauthorized, map[string]string{
		"error":   "AUTHENTICATION_ERROR",
		"message": err.Error(),
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
