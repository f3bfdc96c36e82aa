package adapter

import (
	"context"

	"saas-background-remover/internal/domain/model"
)

// OrderGateway creates orders at the external payment provider.
type OrderGateway interface {
	Name() string
	// CreateOrder validates amount (major units) and currency, then creates
	// a provider-side order. Validation failures wrap domain.ErrInvalidArgument
	// and never reach the provider; provider failures wrap
	// domain.ErrGatewayFailure. The call is never retried automatically.
	CreateOrder(ctx context.Context, amount int64, currency string) (*model.Order, error)
}
