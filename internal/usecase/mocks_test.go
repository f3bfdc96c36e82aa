//go:build !integration

package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"saas-background-remover/internal/domain/model"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// MockOrderGateway records calls and delegates to overridable funcs.
type MockOrderGateway struct {
	mu              sync.Mutex
	CreateOrderFunc func(ctx context.Context, amount int64, currency string) (*model.Order, error)
	Calls           int
}

func (m *MockOrderGateway) Name() string { return "mock" }

func (m *MockOrderGateway) CreateOrder(ctx context.Context, amount int64, currency string) (*model.Order, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, amount, currency)
	}
	id := "order_mock"
	minor := amount * 100
	status := model.OrderStatusCreated
	receipt := "order_rcpt"
	return &model.Order{ID: &id, Amount: &minor, Currency: &currency, Status: &status, Receipt: &receipt}, nil
}

// MockIdempotencyStore is an in-memory IdempotencyStore with overridable funcs.
type MockIdempotencyStore struct {
	mu           sync.Mutex
	claims       map[string]*model.Order // nil value = claim in flight
	ClaimFunc    func(ctx context.Context, key string) (*model.Order, bool, error)
	CompleteFunc func(ctx context.Context, key string, order *model.Order) error
	ReleaseFunc  func(ctx context.Context, key string) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{claims: make(map[string]*model.Order)}
}

func (m *MockIdempotencyStore) Claim(ctx context.Context, key string) (*model.Order, bool, error) {
	if m.ClaimFunc != nil {
		return m.ClaimFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if order, ok := m.claims[key]; ok {
		return order, false, nil
	}
	m.claims[key] = nil
	return nil, true, nil
}

func (m *MockIdempotencyStore) Complete(ctx context.Context, key string, order *model.Order) error {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, key, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claims[key] = order
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.claims, key)
	return nil
}

// MockBackgroundRemover delegates to an overridable func.
type MockBackgroundRemover struct {
	RemoveFunc func(ctx context.Context, filename string, image []byte) ([]byte, error)
	Calls      int
}

func (m *MockBackgroundRemover) Name() string { return "mock" }

func (m *MockBackgroundRemover) Remove(ctx context.Context, filename string, image []byte) ([]byte, error) {
	m.Calls++
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, filename, image)
	}
	return []byte("processed"), nil
}
