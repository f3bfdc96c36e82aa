package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"saas-background-remover/internal/domain"
	"saas-background-remover/internal/domain/model"
	"saas-background-remover/internal/domain/ports/adapter"
	"saas-background-remover/internal/domain/ports/repository"
	"saas-background-remover/internal/infra/logging"
	"saas-background-remover/internal/infra/metrics"
	paysig "saas-background-remover/internal/infra/payment"
)

// Compile-time check
var _ PaymentUseCase = (*paymentUC)(nil)

type PaymentUseCase interface {
	// CreateOrder validates the request and creates an order at the payment
	// provider. idempotencyKey is optional; when set, a replay with the same
	// key returns the originally created order instead of creating a new one.
	CreateOrder(ctx context.Context, amount int64, currency, idempotencyKey string) (*model.Order, error)
	// VerifyPayment reports whether the provider-signed payment confirmation
	// is authentic. It never returns an error: any internal failure counts
	// as a failed verification (fail closed). It mutates no state; granting
	// credits on a true result is the caller's ledger, not this service.
	VerifyPayment(ctx context.Context, orderID, paymentID, signature string) bool
}

type paymentUC struct {
	gateway adapter.OrderGateway
	claims  repository.IdempotencyStore
	secret  []byte
	log     *zerolog.Logger
}

// NewPaymentUseCase wires the facade. apiSecret is the provider signing
// secret shared with the gateway account; it is held here and in the
// verifier only, and never logged.
func NewPaymentUseCase(gateway adapter.OrderGateway, claims repository.IdempotencyStore, apiSecret string, logger *zerolog.Logger) *paymentUC {
	return &paymentUC{gateway: gateway, claims: claims, secret: []byte(apiSecret), log: logger}
}

func (u *paymentUC) CreateOrder(ctx context.Context, amount int64, currency, idempotencyKey string) (*model.Order, error) {
	defer logging.TraceDuration(u.log, "PaymentUC.CreateOrder")()

	if idempotencyKey == "" {
		return u.createAtProvider(ctx, amount, currency)
	}

	existing, claimed, err := u.claims.Claim(ctx, idempotencyKey)
	if err != nil {
		// Proceeding without the claim could create a duplicate provider
		// order, which is exactly what the key is meant to prevent.
		return nil, fmt.Errorf("%w: idempotency store unavailable: %v", domain.ErrGatewayFailure, err)
	}
	if existing != nil {
		metrics.IncOrder("replayed")
		u.log.Info().Str("idempotency_key", idempotencyKey).Msg("order creation replayed from idempotency store")
		return existing, nil
	}
	if !claimed {
		return nil, fmt.Errorf("%w: order creation already in progress for this idempotency key", domain.ErrAlreadyExists)
	}

	order, err := u.createAtProvider(ctx, amount, currency)
	if err != nil {
		if relErr := u.claims.Release(ctx, idempotencyKey); relErr != nil {
			u.log.Warn().Err(relErr).Str("idempotency_key", idempotencyKey).Msg("failed to release idempotency claim")
		}
		return nil, err
	}
	if err := u.claims.Complete(ctx, idempotencyKey, order); err != nil {
		// The order exists at the provider; a replay will create a duplicate
		// until the claim TTL expires. Worth an operator's attention.
		u.log.Error().Err(err).Str("idempotency_key", idempotencyKey).Msg("failed to store order under idempotency key")
	}
	return order, nil
}

func (u *paymentUC) createAtProvider(ctx context.Context, amount int64, currency string) (*model.Order, error) {
	order, err := u.gateway.CreateOrder(ctx, amount, currency)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			metrics.IncOrder("rejected")
		default:
			metrics.IncOrder("failed")
			u.log.Error().Err(err).Str("gateway", u.gateway.Name()).Msg("order creation failed")
		}
		return nil, err
	}

	metrics.IncOrder("created")
	if order.Amount != nil && order.Currency != nil {
		metrics.AddOrderAmount(*order.Currency, *order.Amount)
	}
	evt := u.log.Info().Str("gateway", u.gateway.Name())
	if order.ID != nil {
		evt = evt.Str("order_id", *order.ID)
	}
	if order.Receipt != nil {
		evt = evt.Str("receipt", *order.Receipt)
	}
	evt.Msg("order created")
	return order, nil
}

func (u *paymentUC) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (ok bool) {
	defer func() {
		// Fail closed: a failure inside verification must look exactly like
		// a failed verification to the caller, logged separately for ops.
		if r := recover(); r != nil {
			u.log.Error().Interface("panic", r).Str("order_id", orderID).Msg("payment verification panicked")
			ok = false
		}
	}()
	defer logging.TraceDuration(u.log, "PaymentUC.VerifyPayment")()

	ok = paysig.VerifySignature(orderID, paymentID, signature, u.secret)
	u.log.Info().
		Str("order_id", orderID).
		Str("payment_id", paymentID).
		Bool("verified", ok).
		Msg("payment verification")
	return ok
}
