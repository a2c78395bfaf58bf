package orderd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ZuberiPay/songsnap.xyz/internal/domain"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	handler := NewHandler(NewMemoryStore(), "+1234567890", zap.NewNop())
	srv := httptest.NewServer(NewRouter(handler))
	t.Cleanup(srv.Close)
	return srv
}

func postOrder(t *testing.T, srv *httptest.Server, plan string) (*http.Response, domain.Order) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"plan": plan})
	resp, err := http.Post(srv.URL+"/api/generate-order", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("posting order: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var order domain.Order
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
			t.Fatalf("decoding order: %v", err)
		}
	}
	return resp, order
}

func TestGenerateOrder(t *testing.T) {
	srv := newTestServer(t)

	resp, order := postOrder(t, srv, "snap")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if !strings.HasPrefix(order.OrderID, "SS-") || len(order.OrderID) != 11 {
		t.Errorf("unexpected order id format %q", order.OrderID)
	}
	if order.OrderID != strings.ToUpper(order.OrderID) {
		t.Errorf("order id must be uppercase, got %q", order.OrderID)
	}
	if order.Plan != "snap" {
		t.Errorf("expected plan snap, got %q", order.Plan)
	}
	if !order.Price.Equal(decimal.RequireFromString("3.99")) {
		t.Errorf("price must be echoed from the catalog, got %s", order.Price)
	}
	if order.Fulfilled {
		t.Error("new order must be pending")
	}
	if order.WhatsAppNumber != "+1234567890" {
		t.Errorf("unexpected whatsapp number %q", order.WhatsAppNumber)
	}
}

func TestGenerateOrder_InvalidPlan(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postOrder(t, srv, "platinum")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid plan, got %d", resp.StatusCode)
	}
}

func TestListOrders_MostRecentFirst(t *testing.T) {
	srv := newTestServer(t)

	_, first := postOrder(t, srv, "snap")
	_, second := postOrder(t, srv, "creator")

	resp, err := http.Get(srv.URL + "/api/orders?limit=10")
	if err != nil {
		t.Fatalf("listing orders: %v", err)
	}
	defer resp.Body.Close()

	var list struct {
		Orders []domain.Order `json:"orders"`
		Count  int            `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}

	if list.Count != 2 {
		t.Fatalf("expected 2 orders, got %d", list.Count)
	}
	if list.Orders[0].OrderID != second.OrderID || list.Orders[1].OrderID != first.OrderID {
		t.Errorf("expected most-recent-first ordering, got %v then %v", list.Orders[0].OrderID, list.Orders[1].OrderID)
	}
}

func TestFulfillFlow(t *testing.T) {
	srv := newTestServer(t)
	_, order := postOrder(t, srv, "snappack")

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/order/"+order.OrderID+"/fulfill", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("fulfilling order: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	// second fulfillment is a no-op success
	resp, err = http.DefaultClient.Do(req.Clone(req.Context()))
	if err != nil {
		t.Fatalf("re-fulfilling order: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("double fulfillment must be a no-op success, got %d", resp.StatusCode)
	}

	getResp, err := http.Get(srv.URL + "/api/order/" + order.OrderID)
	if err != nil {
		t.Fatalf("fetching order: %v", err)
	}
	defer getResp.Body.Close()

	var fetched domain.Order
	json.NewDecoder(getResp.Body).Decode(&fetched)
	if !fetched.Fulfilled {
		t.Error("order must be fulfilled after the fulfill call")
	}
}

func TestFulfill_UnknownOrder(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/order/SS-MISSING1/fulfill", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("fulfilling order: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestStats_TracksFulfillment(t *testing.T) {
	srv := newTestServer(t)

	_, order := postOrder(t, srv, "snap")
	postOrder(t, srv, "snap")
	postOrder(t, srv, "creator")

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/order/"+order.OrderID+"/fulfill", nil)
	resp, _ := http.DefaultClient.Do(req)
	resp.Body.Close()

	statsResp, err := http.Get(srv.URL + "/api/stats")
	if err != nil {
		t.Fatalf("fetching stats: %v", err)
	}
	defer statsResp.Body.Close()

	var stats domain.Stats
	if err := json.NewDecoder(statsResp.Body).Decode(&stats); err != nil {
		t.Fatalf("decoding stats: %v", err)
	}

	if stats.TotalOrders != 3 || stats.FulfilledOrders != 1 || stats.PendingOrders != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.PlanBreakdown["snap"] != 2 || stats.PlanBreakdown["creator"] != 1 {
		t.Errorf("unexpected plan breakdown: %+v", stats.PlanBreakdown)
	}
	if !stats.Consistent() {
		t.Error("stats must satisfy the consistency identities")
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("health check: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}
