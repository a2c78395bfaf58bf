// Package orderclient talks to the order backend over its HTTP contract.
// Each operation is a single request/response exchange: no retries, no
// client-side timeout (the transport default applies), failures surfaced as
// typed errors for the caller to act on.
package orderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ZuberiPay/songsnap.xyz/internal/domain"
	apperrors "github.com/ZuberiPay/songsnap.xyz/internal/errors"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// NewWithHTTPClient injects the HTTP client, for tests and callers that need
// a custom transport.
func NewWithHTTPClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	c := New(baseURL, logger)
	c.httpClient = httpClient
	return c
}

type createOrderRequest struct {
	Plan string `json:"plan"`
}

type listOrdersResponse struct {
	Orders []domain.Order `json:"orders"`
	Count  int            `json:"count"`
}

// CreateOrder persists one order for the given plan on the backend and
// returns it as echoed back.
func (c *Client) CreateOrder(ctx context.Context, planID string) (*domain.Order, error) {
	const op = "createOrder"

	body, err := json.Marshal(createOrderRequest{Plan: planID})
	if err != nil {
		return nil, apperrors.NewInternalError("encoding create order request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate-order", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError("building create order request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var order domain.Order
	if err := c.do(op, req, &order); err != nil {
		return nil, err
	}

	c.logger.Info("order created", zap.String("orderId", order.OrderID), zap.String("plan", order.Plan))
	return &order, nil
}

// ListOrders fetches up to limit orders in the backend's own ordering,
// most recent first.
func (c *Client) ListOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	const op = "listOrders"

	u := c.baseURL + "/api/orders"
	if limit > 0 {
		u += "?limit=" + strconv.Itoa(limit)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("building list orders request", err)
	}

	var resp listOrdersResponse
	if err := c.do(op, req, &resp); err != nil {
		return nil, err
	}

	return resp.Orders, nil
}

// FetchStats fetches a fresh aggregate snapshot.
func (c *Client) FetchStats(ctx context.Context) (*domain.Stats, error) {
	const op = "fetchStats"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/stats", nil)
	if err != nil {
		return nil, apperrors.NewInternalError("building stats request", err)
	}

	var stats domain.Stats
	if err := c.do(op, req, &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

// GetOrder fetches a single order by its backend-assigned identifier.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	const op = "getOrder"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/order/"+url.PathEscape(orderID), nil)
	if err != nil {
		return nil, apperrors.NewInternalError("building get order request", err)
	}

	var order domain.Order
	if err := c.do(op, req, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// FulfillOrder marks an order fulfilled. Whatever the backend reports is
// propagated; a 404 maps to NotFoundError.
func (c *Client) FulfillOrder(ctx context.Context, orderID string) error {
	const op = "fulfillOrder"

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/order/"+url.PathEscape(orderID)+"/fulfill", nil)
	if err != nil {
		return apperrors.NewInternalError("building fulfill request", err)
	}

	if err := c.do(op, req, nil); err != nil {
		return err
	}

	c.logger.Info("order fulfilled", zap.String("orderId", orderID))
	return nil
}

func (c *Client) do(op string, req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", zap.String("op", op), zap.Error(err))
		return apperrors.NewNetworkError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s: not found", op))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readErrorDetail(resp.Body)
		c.logger.Warn("backend returned error status", zap.String("op", op), zap.Int("status", resp.StatusCode), zap.String("detail", msg))
		return apperrors.NewBackendError(op, resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Warn("malformed backend response", zap.String("op", op), zap.Error(err))
		return apperrors.NewBackendError(op, 0, fmt.Sprintf("decoding response: %v", err))
	}

	return nil
}

type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func readErrorDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return "no error detail"
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Message != "" {
			return body.Message
		}
	}

	return string(data)
}
