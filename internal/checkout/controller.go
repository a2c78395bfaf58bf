package checkout

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ZuberiPay/songsnap.xyz/internal/catalog"
	"github.com/ZuberiPay/songsnap.xyz/internal/domain"
	apperrors "github.com/ZuberiPay/songsnap.xyz/internal/errors"
	"github.com/ZuberiPay/songsnap.xyz/internal/whatsapp"
)

type Controller struct {
	orders         OrderCreator
	confirmer      PaymentConfirmer
	whatsappNumber string
	logger         *zap.Logger
}

func NewController(orders OrderCreator, confirmer PaymentConfirmer, whatsappNumber string, logger *zap.Logger) *Controller {
	return &Controller{
		orders:         orders,
		confirmer:      confirmer,
		whatsappNumber: whatsappNumber,
		logger:         logger,
	}
}

type checkoutRequest struct {
	Plan string `json:"plan"`
}

type checkoutResponse struct {
	TraceID      string        `json:"traceId"`
	Status       string        `json:"status"`
	Order        *domain.Order `json:"order,omitempty"`
	WhatsAppLink string        `json:"whatsappLink,omitempty"`
	RedirectURL  string        `json:"redirectUrl,omitempty"`
}

// HandleCheckout runs one full checkout attempt: select the plan, pass the
// payment gate, create the order.
func (c *Controller) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	flow := NewFlow(c.orders, c.confirmer, logger)

	if err := flow.Select(req.Plan); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	conf, err := flow.Confirm(r.Context())
	if err != nil {
		c.writeFlowError(w, traceID, err, logger)
		return
	}

	resp := checkoutResponse{TraceID: traceID}
	switch conf.Decision {
	case DecisionDeclined:
		resp.Status = "declined"
	case DecisionRedirect:
		resp.Status = "redirect"
		resp.RedirectURL = conf.RedirectURL
	default:
		order := flow.Order()
		resp.Status = "succeeded"
		resp.Order = order
		resp.WhatsAppLink = c.whatsappLink(*order)
	}

	c.writeJSON(w, http.StatusOK, resp)
}

// ResumeOrder re-runs order creation for success-screen navigation
// (success=true&plan=X). An identifier the catalog does not recognize
// produces no order; the success screen then renders its fallback.
func (c *Controller) ResumeOrder(ctx context.Context, planID string) (*domain.Order, error) {
	if !catalog.IsValid(planID) {
		c.logger.Warn("success navigation with unknown plan", zap.String("plan", planID))
		return nil, nil
	}
	return c.orders.CreateOrder(ctx, planID)
}

// WhatsAppLink builds the post-purchase hand-off link for an order.
func (c *Controller) WhatsAppLink(order domain.Order) string {
	return c.whatsappLink(order)
}

func (c *Controller) whatsappLink(order domain.Order) string {
	number := order.WhatsAppNumber
	if number == "" {
		number = c.whatsappNumber
	}
	return whatsapp.Link(number, order, catalog.Display(order.Plan))
}

func (c *Controller) writeFlowError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	status := http.StatusBadGateway
	var code string

	if _, ok := apperrors.IsNetworkError(err); ok {
		code = "NETWORK_ERROR"
	} else if be, ok := apperrors.IsBackendError(err); ok {
		code = "BACKEND_ERROR"
		if be.Status == 0 {
			code = "INVALID_RESPONSE"
		}
	} else {
		logger.Error("unexpected checkout error", zap.Error(err))
		status = http.StatusInternalServerError
		code = "INTERNAL_ERROR"
	}

	c.writeJSON(w, status, map[string]string{
		"traceId": traceID,
		"status":  "failed",
		"error":   code,
		"message": err.Error(),
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
