package repository

import (
	"context"

	"saas-background-remover/internal/domain/model"
)

// IdempotencyStore guards order creation against duplicate submissions.
// A key is claimed before the outbound provider call; the created order is
// stored under the key afterwards so replays return the same order instead
// of creating a second one at the provider.
type IdempotencyStore interface {
	// Claim reserves key for this call. Returns (nil, true) when the claim
	// was obtained, (order, false) when a completed order already exists for
	// the key, and (nil, false) when another call holds the claim in flight.
	Claim(ctx context.Context, key string) (*model.Order, bool, error)
	// Complete stores the created order under a previously claimed key.
	Complete(ctx context.Context, key string, order *model.Order) error
	// Release drops a claim after a failed creation so the client may retry.
	Release(ctx context.Context, key string) error
}
