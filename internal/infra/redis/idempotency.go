package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"saas-background-remover/internal/domain"
	"saas-background-remover/internal/domain/model"
	"saas-background-remover/internal/domain/ports/repository"
)

var _ repository.IdempotencyStore = (*IdempotencyStore)(nil)

// claimPending marks a key whose order creation is still in flight.
const claimPending = "__pending__"

// kv is the subset of Client the store uses; tests substitute an in-memory
// implementation.
type kv interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// IdempotencyStore implements the order-creation idempotency protocol on
// Redis: SETNX claims a key before the outbound provider call, the created
// order is stored under it afterwards, and both share one TTL so stale
// claims age out on their own.
type IdempotencyStore struct {
	client kv
	ttl    time.Duration
}

func NewIdempotencyStore(client *Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

func idemKey(key string) string { return "idempotency:order:" + key }

func (s *IdempotencyStore) Claim(ctx context.Context, key string) (*model.Order, bool, error) {
	ok, err := s.client.SetNX(ctx, idemKey(key), claimPending, s.ttl)
	if err != nil {
		return nil, false, fmt.Errorf("idempotency claim: %w", err)
	}
	if ok {
		return nil, true, nil
	}

	val, err := s.client.Get(ctx, idemKey(key))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Claim expired between SETNX and GET; treat as in flight and
			// let the client retry.
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("idempotency lookup: %w", err)
	}
	if val == claimPending {
		return nil, false, nil
	}

	var order model.Order
	if err := json.Unmarshal([]byte(val), &order); err != nil {
		return nil, false, fmt.Errorf("idempotency decode: %w", err)
	}
	return &order, false, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key string, order *model.Order) error {
	b, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("idempotency encode: %w", err)
	}
	return s.client.Set(ctx, idemKey(key), b, s.ttl)
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, idemKey(key))
}
