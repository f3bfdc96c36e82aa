package adapter

import "context"

// BackgroundRemover sends an image to the external background-removal
// provider and returns the processed image bytes.
type BackgroundRemover interface {
	Name() string
	Remove(ctx context.Context, filename string, image []byte) ([]byte, error)
}
