package payment

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"saas-background-remover/internal/domain"
	"saas-background-remover/internal/domain/model"
	"saas-background-remover/internal/domain/ports/adapter"
)

var _ adapter.OrderGateway = (*NoopOrderGateway)(nil)

// NoopOrderGateway is a simple in-memory gateway for dev mode and tests.
// It applies the same validation as the real gateway but never leaves the
// process.
type NoopOrderGateway struct {
	mu  sync.Mutex
	seq int64
}

func NewNoopOrderGateway() *NoopOrderGateway { return &NoopOrderGateway{} }

func (g *NoopOrderGateway) Name() string { return "noop" }

func (g *NoopOrderGateway) CreateOrder(ctx context.Context, amount int64, currency string) (*model.Order, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidArgument)
	}
	if !strings.EqualFold(currency, supportedCurrency) {
		return nil, fmt.Errorf("%w: unsupported currency %q", domain.ErrInvalidArgument, currency)
	}

	g.mu.Lock()
	g.seq++
	id := fmt.Sprintf("order_noop_%d", g.seq)
	g.mu.Unlock()

	minor := amount * 100
	cur := strings.ToUpper(currency)
	status := model.OrderStatusCreated
	receipt := newReceipt()
	return &model.Order{
		ID:       &id,
		Amount:   &minor,
		Currency: &cur,
		Status:   &status,
		Receipt:  &receipt,
	}, nil
}
