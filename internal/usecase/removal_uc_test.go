//go:build !integration

package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"saas-background-remover/internal/domain"
)

func TestRemovalUseCase_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates to the provider", func(t *testing.T) {
		remover := &MockBackgroundRemover{
			RemoveFunc: func(ctx context.Context, filename string, image []byte) ([]byte, error) {
				if filename != "photo.jpg" {
					t.Errorf("expected filename to pass through, got %q", filename)
				}
				return []byte("png"), nil
			},
		}
		uc := NewRemovalUseCase(remover, newTestLogger())

		out, err := uc.Remove(ctx, "photo.jpg", []byte("raw"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(out) != "png" {
			t.Errorf("expected provider bytes back, got %q", out)
		}
	})

	t.Run("rejects empty input without calling the provider", func(t *testing.T) {
		remover := &MockBackgroundRemover{}
		uc := NewRemovalUseCase(remover, newTestLogger())

		_, err := uc.Remove(ctx, "photo.jpg", nil)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
		if remover.Calls != 0 {
			t.Errorf("expected no provider call, got %d", remover.Calls)
		}
	})

	t.Run("propagates provider failures", func(t *testing.T) {
		remover := &MockBackgroundRemover{
			RemoveFunc: func(ctx context.Context, filename string, image []byte) ([]byte, error) {
				return nil, fmt.Errorf("%w: clipdrop http 500", domain.ErrGatewayFailure)
			},
		}
		uc := NewRemovalUseCase(remover, newTestLogger())

		_, err := uc.Remove(ctx, "photo.jpg", []byte("raw"))
		if !errors.Is(err, domain.ErrGatewayFailure) {
			t.Fatalf("expected ErrGatewayFailure, got %v", err)
		}
	})
}
