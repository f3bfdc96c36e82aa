package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"saas-background-remover/internal/domain"
	"saas-background-remover/internal/domain/ports/adapter"
	"saas-background-remover/internal/infra/metrics"
)

var _ RemovalUseCase = (*removalUC)(nil)

type RemovalUseCase interface {
	// Remove forwards the image to the background-removal provider and
	// returns the processed bytes.
	Remove(ctx context.Context, filename string, image []byte) ([]byte, error)
}

type removalUC struct {
	remover adapter.BackgroundRemover
	log     *zerolog.Logger
}

func NewRemovalUseCase(remover adapter.BackgroundRemover, logger *zerolog.Logger) *removalUC {
	return &removalUC{remover: remover, log: logger}
}

func (u *removalUC) Remove(ctx context.Context, filename string, image []byte) ([]byte, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrInvalidArgument)
	}

	start := time.Now()
	out, err := u.remover.Remove(ctx, filename, image)
	metrics.ObserveRemoval(u.remover.Name(), time.Since(start).Seconds(), err == nil)
	if err != nil {
		u.log.Error().Err(err).Str("provider", u.remover.Name()).Msg("background removal failed")
		return nil, err
	}
	u.log.Debug().
		Str("provider", u.remover.Name()).
		Int("bytes_in", len(image)).
		Int("bytes_out", len(out)).
		Dur("duration", time.Since(start)).
		Msg("background removed")
	return out, nil
}
