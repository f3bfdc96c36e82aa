package imaging

import (
	"context"
	"fmt"

	"saas-background-remover/internal/domain"
	"saas-background-remover/internal/domain/ports/adapter"
)

var _ adapter.BackgroundRemover = (*NoopRemover)(nil)

// NoopRemover echoes the input image back. Dev mode only.
type NoopRemover struct{}

func NewNoopRemover() *NoopRemover { return &NoopRemover{} }

func (n *NoopRemover) Name() string { return "noop" }

func (n *NoopRemover) Remove(ctx context.Context, filename string, image []byte) ([]byte, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrInvalidArgument)
	}
	out := make([]byte, len(image))
	copy(out, image)
	return out, nil
}
