package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	razorpay "github.com/razorpay/razorpay-go"

	"saas-background-remover/internal/domain"
	"saas-background-remover/internal/domain/model"
	"saas-background-remover/internal/domain/ports/adapter"
)

var _ adapter.OrderGateway = (*RazorpayGateway)(nil)

// supportedCurrency is the only currency the provider account accepts.
// Matched case-insensitively, sent uppercase.
const supportedCurrency = "INR"

// orderCreator is the slice of the Razorpay SDK the gateway depends on,
// kept as an interface so tests can substitute the provider.
type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// RazorpayGateway implements adapter.OrderGateway on top of the official
// Razorpay SDK. The SDK owns authentication (basic auth with key/secret);
// the credentials never appear in logs or errors.
type RazorpayGateway struct {
	orders  orderCreator
	timeout time.Duration
}

func NewRazorpayGateway(keyID, keySecret string, timeout time.Duration) (*RazorpayGateway, error) {
	if keyID == "" || keySecret == "" {
		return nil, fmt.Errorf("razorpay credentials missing")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := razorpay.NewClient(keyID, keySecret)
	return &RazorpayGateway{orders: client.Order, timeout: timeout}, nil
}

func (g *RazorpayGateway) Name() string { return "razorpay" }

// CreateOrder validates the request, then creates an order at Razorpay.
// amount is in major units (rupees) and is converted to paise; this assumes
// a 2-decimal currency, which holds for the single supported code.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency string) (*model.Order, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidArgument)
	}
	if !strings.EqualFold(currency, supportedCurrency) {
		return nil, fmt.Errorf("%w: unsupported currency %q", domain.ErrInvalidArgument, currency)
	}

	payload := map[string]interface{}{
		"amount":   amount * 100,
		"currency": strings.ToUpper(currency),
		"receipt":  newReceipt(),
	}
	raw, err := g.create(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayFailure, err)
	}
	return mapOrder(raw), nil
}

// create runs the SDK call under the caller's deadline. The SDK performs a
// blocking HTTP round trip with no context support, so the call runs in a
// goroutine and its result is discarded if the deadline expires first.
func (g *RazorpayGateway) create(ctx context.Context, payload map[string]interface{}) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	type result struct {
		raw map[string]interface{}
		err error
	}
	ch := make(chan result, 1)
	go func() {
		raw, err := g.orders.Create(payload, nil)
		ch <- result{raw: raw, err: err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		return r.raw, r.err
	}
}

// newReceipt returns a unique, time-ordered receipt identifier. Used only
// for provider bookkeeping, never for verification.
func newReceipt() string {
	return "order_" + ulid.Make().String()
}

// mapOrder normalizes the provider response. Fields the provider omitted
// stay nil so they serialize as JSON null instead of a silent zero.
func mapOrder(raw map[string]interface{}) *model.Order {
	o := &model.Order{
		ID:       strField(raw, "id"),
		Amount:   int64Field(raw, "amount"),
		Currency: strField(raw, "currency"),
		Receipt:  strField(raw, "receipt"),
	}
	if s := strField(raw, "status"); s != nil {
		st := model.OrderStatus(*s)
		o.Status = &st
	}
	return o
}

func strField(raw map[string]interface{}, key string) *string {
	if v, ok := raw[key].(string); ok {
		return &v
	}
	return nil
}

// The SDK decodes JSON numbers to float64; accept int64 too for test doubles.
func int64Field(raw map[string]interface{}, key string) *int64 {
	switch v := raw[key].(type) {
	case float64:
		n := int64(v)
		return &n
	case int64:
		return &v
	case int:
		n := int64(v)
		return &n
	}
	return nil
}
