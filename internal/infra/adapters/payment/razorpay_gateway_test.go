//go:build !integration

package payment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"saas-background-remover/internal/domain"
)

// mockOrderCreator stands in for the Razorpay SDK order resource.
type mockOrderCreator struct {
	CreateFunc func(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	calls      int
	lastData   map[string]interface{}
}

func (m *mockOrderCreator) Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error) {
	m.calls++
	m.lastData = data
	if m.CreateFunc != nil {
		return m.CreateFunc(data, extraHeaders)
	}
	return map[string]interface{}{
		"id":       "order_1",
		"amount":   float64(data["amount"].(int64)),
		"currency": data["currency"],
		"status":   "created",
		"receipt":  data["receipt"],
	}, nil
}

func newTestGateway(creator orderCreator) *RazorpayGateway {
	return &RazorpayGateway{orders: creator, timeout: 2 * time.Second}
}

func TestRazorpayGateway_CreateOrder_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects non-positive amount without calling provider", func(t *testing.T) {
		creator := &mockOrderCreator{}
		g := newTestGateway(creator)

		for _, amount := range []int64{0, -1, -500} {
			_, err := g.CreateOrder(ctx, amount, "INR")
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("amount %d: expected ErrInvalidArgument, got %v", amount, err)
			}
		}
		if creator.calls != 0 {
			t.Errorf("expected no outbound calls, got %d", creator.calls)
		}
	})

	t.Run("rejects unsupported currency without calling provider", func(t *testing.T) {
		creator := &mockOrderCreator{}
		g := newTestGateway(creator)

		for _, currency := range []string{"USD", "EUR", "inrr", ""} {
			_, err := g.CreateOrder(ctx, 500, currency)
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("currency %q: expected ErrInvalidArgument, got %v", currency, err)
			}
		}
		if creator.calls != 0 {
			t.Errorf("expected no outbound calls, got %d", creator.calls)
		}
	})

	t.Run("accepts the supported currency case-insensitively", func(t *testing.T) {
		for _, currency := range []string{"INR", "inr", "Inr"} {
			creator := &mockOrderCreator{}
			g := newTestGateway(creator)
			if _, err := g.CreateOrder(ctx, 500, currency); err != nil {
				t.Errorf("currency %q: expected success, got %v", currency, err)
			}
		}
	})
}

func TestRazorpayGateway_CreateOrder_OutboundPayload(t *testing.T) {
	creator := &mockOrderCreator{}
	g := newTestGateway(creator)

	if _, err := g.CreateOrder(context.Background(), 500, "inr"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := creator.lastData["amount"]; got != int64(50000) {
		t.Errorf("expected amount 50000 paise, got %v", got)
	}
	if got := creator.lastData["currency"]; got != "INR" {
		t.Errorf("expected uppercase currency INR, got %v", got)
	}
	receipt, _ := creator.lastData["receipt"].(string)
	if !strings.HasPrefix(receipt, "order_") {
		t.Errorf("expected receipt with order_ prefix, got %q", receipt)
	}
}

func TestRazorpayGateway_CreateOrder_UniqueReceipts(t *testing.T) {
	creator := &mockOrderCreator{}
	g := newTestGateway(creator)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		if _, err := g.CreateOrder(context.Background(), 500, "INR"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		receipt := creator.lastData["receipt"].(string)
		if seen[receipt] {
			t.Fatalf("duplicate receipt %q", receipt)
		}
		seen[receipt] = true
	}
}

func TestRazorpayGateway_CreateOrder_MapsProviderResponse(t *testing.T) {
	creator := &mockOrderCreator{
		CreateFunc: func(data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
			return map[string]interface{}{
				"id":       "order_1",
				"amount":   float64(50000),
				"currency": "INR",
				"status":   "created",
				"receipt":  "order_1716200000000",
			}, nil
		},
	}
	g := newTestGateway(creator)

	order, err := g.CreateOrder(context.Background(), 500, "INR")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if order.ID == nil || *order.ID != "order_1" {
		t.Errorf("unexpected id: %v", order.ID)
	}
	if order.Amount == nil || *order.Amount != 50000 {
		t.Errorf("unexpected amount: %v", order.Amount)
	}
	if order.Currency == nil || *order.Currency != "INR" {
		t.Errorf("unexpected currency: %v", order.Currency)
	}
	if order.Status == nil || *order.Status != "created" {
		t.Errorf("unexpected status: %v", order.Status)
	}
	if order.Receipt == nil || *order.Receipt != "order_1716200000000" {
		t.Errorf("unexpected receipt: %v", order.Receipt)
	}
}

func TestRazorpayGateway_CreateOrder_MissingFieldsStayNil(t *testing.T) {
	creator := &mockOrderCreator{
		CreateFunc: func(map[string]interface{}, map[string]string) (map[string]interface{}, error) {
			return map[string]interface{}{"id": "order_1"}, nil
		},
	}
	g := newTestGateway(creator)

	order, err := g.CreateOrder(context.Background(), 500, "INR")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if order.ID == nil {
		t.Error("expected id to be present")
	}
	if order.Amount != nil || order.Currency != nil || order.Status != nil || order.Receipt != nil {
		t.Errorf("expected absent fields to stay nil, got %+v", order)
	}
}

func TestRazorpayGateway_CreateOrder_ProviderFailure(t *testing.T) {
	creator := &mockOrderCreator{
		CreateFunc: func(map[string]interface{}, map[string]string) (map[string]interface{}, error) {
			return nil, errors.New("BAD_REQUEST_ERROR: authentication failed")
		},
	}
	g := newTestGateway(creator)

	_, err := g.CreateOrder(context.Background(), 500, "INR")
	if !errors.Is(err, domain.ErrGatewayFailure) {
		t.Fatalf("expected ErrGatewayFailure, got %v", err)
	}
	if !strings.Contains(err.Error(), "authentication failed") {
		t.Errorf("expected provider message to be carried, got %q", err.Error())
	}
	if creator.calls != 1 {
		t.Errorf("expected exactly one call (no retry), got %d", creator.calls)
	}
}

func TestRazorpayGateway_CreateOrder_HonorsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	creator := &mockOrderCreator{
		CreateFunc: func(map[string]interface{}, map[string]string) (map[string]interface{}, error) {
			<-release
			return map[string]interface{}{}, nil
		},
	}
	defer close(release)
	g := &RazorpayGateway{orders: creator, timeout: 20 * time.Millisecond}

	_, err := g.CreateOrder(context.Background(), 500, "INR")
	if !errors.Is(err, domain.ErrGatewayFailure) {
		t.Fatalf("expected ErrGatewayFailure on timeout, got %v", err)
	}
}

func TestNoopOrderGateway_CreateOrder(t *testing.T) {
	g := NewNoopOrderGateway()

	first, err := g.CreateOrder(context.Background(), 500, "inr")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first.Amount == nil || *first.Amount != 50000 {
		t.Errorf("unexpected amount: %v", first.Amount)
	}
	if first.Currency == nil || *first.Currency != "INR" {
		t.Errorf("unexpected currency: %v", first.Currency)
	}

	second, _ := g.CreateOrder(context.Background(), 500, "INR")
	if *first.ID == *second.ID {
		t.Error("expected unique order ids")
	}

	if _, err := g.CreateOrder(context.Background(), -1, "INR"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
